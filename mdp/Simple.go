package mdp

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// pairInfo holds the model of a single (state, action) pair of a Simple
// MDP
type pairInfo struct {
	reward RewardSampler
	next   []Transition
}

// Simple is a table-based MDP in which each (state, action) pair has a
// reward distribution and a normalized sparse transition distribution.
// Rewards do not depend on the next state.
type Simple struct {
	model        [][]pairInfo // state -> action -> model
	discount     float64
	initialState int
}

// NewSimple returns a new Simple MDP with no transitions set. Every
// (state, action) pair must be set with SetInfo before the MDP is used.
func NewSimple(numStates, numActions int, discount float64) (*Simple,
	error) {
	if numStates <= 0 || numActions <= 0 {
		return nil, fmt.Errorf("newSimple: %w: %d states, %d actions",
			ErrShapeMismatch, numStates, numActions)
	}
	if discount <= 0 || discount > 1 {
		return nil, fmt.Errorf("newSimple: %w: %v", ErrDiscount, discount)
	}

	model := make([][]pairInfo, numStates)
	for i := range model {
		model[i] = make([]pairInfo, numActions)
	}
	return &Simple{model: model, discount: discount}, nil
}

// NewDense returns a new Simple MDP from dense tables, where
// transitions[s][a][s'] is the (possibly unnormalized) weight of
// transitioning from s to s' with action a, and rewards[s][a] is the
// deterministic reward of taking action a in state s.
func NewDense(transitions [][][]float64, rewards [][]float64,
	discount float64) (*Simple, error) {
	return newDense(transitions, rewards, discount,
		func(mean float64) RewardSampler { return Constant(mean) })
}

// NewDenseGaussian is like NewDense, but the reward of taking action a
// in state s is normally distributed with mean rewards[s][a] and
// standard deviation stdDev.
func NewDenseGaussian(transitions [][][]float64, rewards [][]float64,
	stdDev, discount float64) (*Simple, error) {
	if !(stdDev >= 0) || math.IsInf(stdDev, 1) {
		return nil, fmt.Errorf("newDenseGaussian: invalid reward standard "+
			"deviation %v", stdDev)
	}
	return newDense(transitions, rewards, discount,
		func(mean float64) RewardSampler {
			return Gaussian{Mean: mean, StdDev: stdDev}
		})
}

func newDense(transitions [][][]float64, rewards [][]float64,
	discount float64, reward func(mean float64) RewardSampler) (*Simple,
	error) {
	numStates := len(transitions)
	if numStates == 0 || len(transitions[0]) == 0 {
		return nil, fmt.Errorf("newDense: %w: empty transition table",
			ErrShapeMismatch)
	}
	numActions := len(transitions[0])

	if len(rewards) != numStates {
		return nil, fmt.Errorf("newDense: %w: %d reward rows for %d states",
			ErrShapeMismatch, len(rewards), numStates)
	}

	m, err := NewSimple(numStates, numActions, discount)
	if err != nil {
		return nil, fmt.Errorf("newDense: %w", err)
	}

	for s := range transitions {
		if len(transitions[s]) != numActions || len(rewards[s]) != numActions {
			return nil, fmt.Errorf("newDense: %w: state %d does not have %d "+
				"actions", ErrShapeMismatch, s, numActions)
		}
		for a := range transitions[s] {
			if len(transitions[s][a]) != numStates {
				return nil, fmt.Errorf("newDense: %w: (%d, %d) has %d next "+
					"states", ErrShapeMismatch, s, a, len(transitions[s][a]))
			}

			next := make([]Transition, 0, numStates)
			for n, w := range transitions[s][a] {
				if w != 0 {
					next = append(next, Transition{State: n, Weight: w})
				}
			}
			if err := m.SetInfo(s, a, reward(rewards[s][a]), next); err != nil {
				return nil, fmt.Errorf("newDense: %w", err)
			}
		}
	}

	return m, nil
}

// SetInfo sets the reward distribution and transition distribution of a
// (state, action) pair. The transition weights are normalized to sum to
// 1, and an error is returned if they are negative, non-finite or sum
// to zero.
func (m *Simple) SetInfo(state, action int, reward RewardSampler,
	next []Transition) error {
	if state < 0 || state >= m.NumStates() || action < 0 ||
		action >= m.NumActions() {
		return fmt.Errorf("setInfo: %w: pair (%d, %d) out of range",
			ErrShapeMismatch, state, action)
	}
	if err := checkTransitions(next, m.NumStates()); err != nil {
		return fmt.Errorf("setInfo: (%d, %d): %w", state, action, err)
	}

	var z float64
	for _, tr := range next {
		z += tr.Weight
	}
	normalized := make([]Transition, len(next))
	for i, tr := range next {
		normalized[i] = Transition{State: tr.State, Weight: tr.Weight / z}
	}

	m.model[state][action] = pairInfo{reward: reward, next: normalized}
	return nil
}

// SetInitialState sets the state in which episodes start
func (m *Simple) SetInitialState(state int) error {
	if state < 0 || state >= m.NumStates() {
		return fmt.Errorf("setInitialState: %w: state %d", ErrShapeMismatch,
			state)
	}
	m.initialState = state
	return nil
}

// NumStates returns the number of states
func (m *Simple) NumStates() int {
	return len(m.model)
}

// NumActions returns the number of actions
func (m *Simple) NumActions() int {
	return len(m.model[0])
}

// Discount returns the discount factor
func (m *Simple) Discount() float64 {
	return m.discount
}

// InitialState returns the starting state
func (m *Simple) InitialState() int {
	return m.initialState
}

// Transitions returns the normalized transition distribution of a pair,
// so that Z is always 1
func (m *Simple) Transitions(state, action int) ([]Transition, float64) {
	return m.model[state][action].next, 1.0
}

// RewardExpectation returns the expected reward of a pair
func (m *Simple) RewardExpectation(state, action, _ int) float64 {
	reward := m.model[state][action].reward
	if reward == nil {
		return 0
	}
	return reward.Expectation()
}

// SampleReward samples the reward of a pair
func (m *Simple) SampleReward(rng *rand.Rand, state, action, _ int) float64 {
	reward := m.model[state][action].reward
	if reward == nil {
		return 0
	}
	return reward.Sample(rng)
}
