// Package mdp implements finite Markov Decision Processes with discrete
// states and actions.
//
// States are enumerated 0, 1, ..., NumStates()-1 and actions are
// enumerated 0, 1, ..., NumActions()-1. Transition distributions are
// sparse and unnormalized: for each (state, action) pair an MDP returns
// a list of (next state, weight) pairs together with a normalizing
// constant Z, so that the probability of a next state is weight / Z.
// This way, an MDP built from observation counts (see Empirical) can be
// used in place of an MDP with known probabilities without dividing
// each count.
package mdp

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/utils/floatutils"
)

// Transition is a single entry of a sparse transition distribution
type Transition struct {
	State  int
	Weight float64
}

// MDP is a finite Markov Decision Process
type MDP interface {
	NumStates() int
	NumActions() int

	// Discount returns the discount factor, in (0, 1]
	Discount() float64

	// InitialState returns the state that episodes start in
	InitialState() int

	// Transitions returns the sparse, unnormalized transition
	// distribution of a (state, action) pair and its normalizing
	// constant. The returned slice must not be modified by callers.
	Transitions(state, action int) (next []Transition, z float64)

	// RewardExpectation returns the expected reward of transitioning
	// from state to next by taking action
	RewardExpectation(state, action, next int) float64

	// SampleReward samples a reward for transitioning from state to
	// next by taking action
	SampleReward(rng *rand.Rand, state, action, next int) float64
}

// Sampler samples MDP instances, for example from a distribution over
// randomly generated MDPs
type Sampler interface {
	Sample(rng *rand.Rand) (MDP, error)
}

// Fixed is a Sampler which always returns the same MDP
type Fixed struct {
	MDP
}

// Sample returns the wrapped MDP
func (f Fixed) Sample(*rand.Rand) (MDP, error) {
	return f.MDP, nil
}

// SampleTransition samples a next state and reward for taking action in
// state.
//
// A value is drawn uniformly in [0, Z) and the transition list is walked,
// subtracting weights until the draw falls within the current weight. If
// floating point error causes no entry to match, the last listed next
// state is used. If the pair has no transitions at all, which can only
// happen for an unobserved pair of an empirical model, the state itself
// is returned with a reward of 0.
func SampleTransition(m MDP, rng *rand.Rand, state,
	action int) (next int, reward float64) {
	transitions, z := m.Transitions(state, action)
	if len(transitions) == 0 {
		return state, 0
	}

	next = transitions[len(transitions)-1].State
	p := rng.Float64() * z
	for _, tr := range transitions {
		if p <= tr.Weight {
			next = tr.State
			break
		}
		p -= tr.Weight
	}

	return next, m.SampleReward(rng, state, action, next)
}

// Probability returns the probability of transitioning to next when
// taking action in state
func Probability(m MDP, state, action, next int) float64 {
	transitions, z := m.Transitions(state, action)
	if z == 0 {
		return 0
	}
	for _, tr := range transitions {
		if tr.State == next {
			return tr.Weight / z
		}
	}
	return 0
}

// MaxReturn returns 1/(1-γ), the maximum discounted return of an MDP
// whose rewards are bounded by 1. This is the optimistic initial value
// for action values.
func MaxReturn(discount float64) float64 {
	return 1.0 / (1.0 - discount)
}

// Validate checks that an MDP is well formed. The discount must lie in
// (0, 1] and every (state, action) pair must have a non-empty transition
// list with non-negative weights and a positive total weight, with all
// next states in range.
func Validate(m MDP) error {
	if m.NumStates() <= 0 || m.NumActions() <= 0 {
		return fmt.Errorf("validate: %w: %d states, %d actions",
			ErrShapeMismatch, m.NumStates(), m.NumActions())
	}
	if d := m.Discount(); d <= 0 || d > 1 {
		return fmt.Errorf("validate: %w: %v", ErrDiscount, d)
	}
	if s := m.InitialState(); s < 0 || s >= m.NumStates() {
		return fmt.Errorf("validate: %w: initial state %d", ErrShapeMismatch,
			s)
	}

	for s := 0; s < m.NumStates(); s++ {
		for a := 0; a < m.NumActions(); a++ {
			transitions, z := m.Transitions(s, a)
			if err := checkTransitions(transitions, m.NumStates()); err != nil {
				return fmt.Errorf("validate: (%d, %d): %w", s, a, err)
			}
			if z <= 0 {
				return fmt.Errorf("validate: (%d, %d): %w", s, a,
					ErrZeroWeight)
			}
		}
	}
	return nil
}

// checkTransitions checks a single transition list
func checkTransitions(transitions []Transition, numStates int) error {
	if len(transitions) == 0 {
		return ErrNoTransitions
	}

	var total float64
	for _, tr := range transitions {
		if tr.State < 0 || tr.State >= numStates {
			return fmt.Errorf("%w: next state %d", ErrShapeMismatch, tr.State)
		}
		if !floatutils.IsFinite(tr.Weight) {
			return fmt.Errorf("%w: %v", ErrInvalidWeight, tr.Weight)
		}
		if tr.Weight < 0 {
			return fmt.Errorf("%w: %v", ErrNegativeWeight, tr.Weight)
		}
		total += tr.Weight
	}
	if math.IsInf(total, 0) {
		return fmt.Errorf("%w: weights sum to %v", ErrInvalidWeight, total)
	}
	if total <= 0 {
		return ErrZeroWeight
	}
	return nil
}
