package mdp

import (
	"golang.org/x/exp/rand"
)

// observations accumulates the observed rewards and next states of a
// single (state, action) pair. Rewards are summarized by a running
// mean and variance (Welford's algorithm).
type observations struct {
	count int
	mean  float64
	m2    float64

	next  []Transition // observed next states, in order of first visit
	index map[int]int  // next state -> position in next
}

// observe records a single transition
func (o *observations) observe(next int, reward float64) {
	o.count++
	delta := reward - o.mean
	o.mean += delta / float64(o.count)
	o.m2 += delta * (reward - o.mean)

	if o.index == nil {
		o.index = make(map[int]int)
	}
	if i, ok := o.index[next]; ok {
		o.next[i].Weight++
		return
	}
	o.index[next] = len(o.next)
	o.next = append(o.next, Transition{State: next, Weight: 1.0})
}

// variance returns the sample variance of observed rewards
func (o *observations) variance() float64 {
	if o.count < 2 {
		return 0
	}
	return o.m2 / float64(o.count-1)
}

// clone returns a deep copy
func (o *observations) clone() observations {
	c := observations{count: o.count, mean: o.mean, m2: o.m2}
	if o.next != nil {
		c.next = make([]Transition, len(o.next))
		copy(c.next, o.next)
		c.index = make(map[int]int, len(o.index))
		for k, v := range o.index {
			c.index[k] = v
		}
	}
	return c
}

// Empirical is a maximum-likelihood model of an MDP built online from
// observed transitions.
//
// Empirical implements the MDP interface: observation counts are used as
// unnormalized transition weights, with Z the number of observations of
// the pair, and the mean observed reward is used as the reward
// expectation. Pairs that were never observed have an empty transition
// list and Z = 0. An Empirical model never forgets observations.
type Empirical struct {
	model        [][]observations // state -> action -> observations
	discount     float64
	initialState int
}

// NewEmpirical returns a new, empty Empirical model
func NewEmpirical(numStates, numActions int, discount float64) *Empirical {
	model := make([][]observations, numStates)
	for i := range model {
		model[i] = make([]observations, numActions)
	}
	return &Empirical{model: model, discount: discount}
}

// NewEmpiricalLike returns a new, empty Empirical model with the same
// shape, discount and initial state as m
func NewEmpiricalLike(m MDP) *Empirical {
	e := NewEmpirical(m.NumStates(), m.NumActions(), m.Discount())
	e.initialState = m.InitialState()
	return e
}

// Observe records that taking action in state lead to next with the
// given reward
func (e *Empirical) Observe(state, action, next int, reward float64) {
	e.model[state][action].observe(next, reward)
}

// NumObservations returns the number of times a pair was observed
func (e *Empirical) NumObservations(state, action int) int {
	return e.model[state][action].count
}

// RewardVariance returns the sample variance of the rewards observed for
// a pair
func (e *Empirical) RewardVariance(state, action int) float64 {
	return e.model[state][action].variance()
}

// Clone returns a deep copy of the model
func (e *Empirical) Clone() *Empirical {
	model := make([][]observations, len(e.model))
	for s := range e.model {
		model[s] = make([]observations, len(e.model[s]))
		for a := range e.model[s] {
			model[s][a] = e.model[s][a].clone()
		}
	}
	return &Empirical{
		model:        model,
		discount:     e.discount,
		initialState: e.initialState,
	}
}

// NumStates returns the number of states
func (e *Empirical) NumStates() int {
	return len(e.model)
}

// NumActions returns the number of actions
func (e *Empirical) NumActions() int {
	return len(e.model[0])
}

// Discount returns the discount factor
func (e *Empirical) Discount() float64 {
	return e.discount
}

// InitialState returns the starting state
func (e *Empirical) InitialState() int {
	return e.initialState
}

// Transitions returns the observed next states of a pair weighted by
// their counts, with Z the total number of observations
func (e *Empirical) Transitions(state, action int) ([]Transition, float64) {
	o := &e.model[state][action]
	return o.next, float64(o.count)
}

// RewardExpectation returns the mean observed reward of a pair
func (e *Empirical) RewardExpectation(state, action, _ int) float64 {
	return e.model[state][action].mean
}

// SampleReward returns the mean observed reward of a pair. The
// empirical model keeps no reward distribution to sample from.
func (e *Empirical) SampleReward(_ *rand.Rand, state, action, _ int) float64 {
	return e.model[state][action].mean
}
