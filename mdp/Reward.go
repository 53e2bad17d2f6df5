package mdp

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RewardSampler is a distribution over rewards for a single
// (state, action) pair
type RewardSampler interface {
	Sample(rng *rand.Rand) float64
	Expectation() float64
}

// Constant is a deterministic reward
type Constant float64

// Sample returns the constant reward
func (c Constant) Sample(*rand.Rand) float64 {
	return float64(c)
}

// Expectation returns the constant reward
func (c Constant) Expectation() float64 {
	return float64(c)
}

// Bernoulli is a reward of Value with probability P and 0 otherwise
type Bernoulli struct {
	P     float64
	Value float64
}

// NewBernoulli returns a new Bernoulli reward
func NewBernoulli(p, value float64) (Bernoulli, error) {
	if p < 0 || p > 1 {
		return Bernoulli{}, fmt.Errorf("newBernoulli: probability %v not "+
			"in [0, 1]", p)
	}
	return Bernoulli{P: p, Value: value}, nil
}

// Sample samples a reward
func (b Bernoulli) Sample(rng *rand.Rand) float64 {
	dist := distuv.Bernoulli{P: b.P, Src: rng}
	return dist.Rand() * b.Value
}

// Expectation returns the expected reward
func (b Bernoulli) Expectation() float64 {
	return b.P * b.Value
}

// Gaussian is a normally distributed reward
type Gaussian struct {
	Mean   float64
	StdDev float64
}

// Sample samples a reward
func (g Gaussian) Sample(rng *rand.Rand) float64 {
	dist := distuv.Normal{Mu: g.Mean, Sigma: g.StdDev, Src: rng}
	return dist.Rand()
}

// Expectation returns the expected reward
func (g Gaussian) Expectation() float64 {
	return g.Mean
}
