package mdp

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// NewGeneratedSparse returns a randomly generated Simple MDP.
//
// Each (state, action) pair transitions to successorsPerState distinct
// next states chosen uniformly at random, with uniformly random weights.
// With probability nonNullRewardProbability a pair has a Bernoulli
// reward of 1 whose success probability is itself drawn uniformly in
// [0, 1), otherwise the pair always yields a reward of 0.
func NewGeneratedSparse(rng *rand.Rand, numStates, numActions int,
	discount float64, successorsPerState int,
	nonNullRewardProbability float64) (*Simple, error) {
	if successorsPerState <= 0 || successorsPerState > numStates {
		return nil, fmt.Errorf("newGeneratedSparse: %w: %d successors for %d "+
			"states", ErrShapeMismatch, successorsPerState, numStates)
	}
	if nonNullRewardProbability < 0 || nonNullRewardProbability > 1 {
		return nil, fmt.Errorf("newGeneratedSparse: non-null reward "+
			"probability %v not in [0, 1]", nonNullRewardProbability)
	}

	m, err := NewSimple(numStates, numActions, discount)
	if err != nil {
		return nil, fmt.Errorf("newGeneratedSparse: %w", err)
	}

	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			var p float64
			if rng.Float64() < nonNullRewardProbability {
				p = rng.Float64()
			}
			reward, err := NewBernoulli(p, 1.0)
			if err != nil {
				return nil, fmt.Errorf("newGeneratedSparse: %v", err)
			}

			order := rng.Perm(numStates)
			next := make([]Transition, successorsPerState)
			for k := range next {
				// Guard against a zero draw so that every listed
				// successor is reachable
				w := rng.Float64()
				for w == 0 {
					w = rng.Float64()
				}
				next[k] = Transition{State: order[k], Weight: w}
			}

			if err := m.SetInfo(s, a, reward, next); err != nil {
				return nil, fmt.Errorf("newGeneratedSparse: %w", err)
			}
		}
	}

	return m, nil
}

// GeneratedSparse is a Sampler of randomly generated sparse MDPs
type GeneratedSparse struct {
	NumStates                int
	NumActions               int
	Discount                 float64
	SuccessorsPerState       int
	NonNullRewardProbability float64
}

// Sample generates a new MDP
func (g GeneratedSparse) Sample(rng *rand.Rand) (MDP, error) {
	return NewGeneratedSparse(rng, g.NumStates, g.NumActions, g.Discount,
		g.SuccessorsPerState, g.NonNullRewardProbability)
}
