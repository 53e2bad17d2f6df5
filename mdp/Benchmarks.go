package mdp

import (
	"fmt"
	"math"
)

// benchmark builds a Simple MDP from a function describing each pair.
// Zero weights are dropped from the transition lists.
func benchmark(numStates, numActions int, discount float64,
	pair func(s, a int) (RewardSampler, []Transition)) *Simple {
	m, err := NewSimple(numStates, numActions, discount)
	if err != nil {
		panic(fmt.Sprintf("benchmark: %v", err))
	}

	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			reward, transitions := pair(s, a)

			next := make([]Transition, 0, len(transitions))
			for _, tr := range transitions {
				if tr.Weight > 0 {
					next = append(next, tr)
				}
			}
			if err := m.SetInfo(s, a, reward, next); err != nil {
				panic(fmt.Sprintf("benchmark: %v", err))
			}
		}
	}
	return m
}

// NewHallways returns the Hallways MDP: 47 states, 2 actions, discount
// 0.95.
//
// From the initial states 0, 1 and 2 the agent chooses one of 4
// hallways. Inside a hallway action 0 moves forward and action 1 stays
// put. At the end of hallway i (i = 1, ..., 4) action 0 returns to state
// 0 and pays 1.5^(i+5) with probability 1/i.
func NewHallways() *Simple {
	return benchmark(47, 2, 0.95, func(s, a int) (RewardSampler,
		[]Transition) {
		var reward RewardSampler = Constant(0)
		var next int

		switch {
		case s <= 2:
			next = s*2 + a + 1
		case s <= 42:
			if a == 0 {
				next = s + 4
			} else {
				next = s
			}
		default:
			if a == 0 {
				next = 0
				i := float64(s - 42)
				reward = Bernoulli{P: 1.0 / i, Value: math.Pow(1.5, i+5.0)}
			} else {
				next = s
			}
		}
		return reward, []Transition{{State: next, Weight: 1.0}}
	})
}

// NewBandit returns the Bandit MDP: 7 states, 6 actions, discount 0.95.
//
// In state 0, action a moves to state j = a+1 with probability 1/j and
// stays in state 0 otherwise. Every other state returns to state 0, and
// action 0 there pays 1.5^state.
func NewBandit() *Simple {
	return benchmark(7, 6, 0.95, func(s, a int) (RewardSampler,
		[]Transition) {
		if s == 0 {
			j := a + 1
			p := 1.0 / float64(j)
			return Constant(0), []Transition{
				{State: 0, Weight: 1.0 - p},
				{State: j, Weight: p},
			}
		}

		var reward float64
		if a == 0 {
			reward = math.Pow(1.5, float64(s))
		}
		return Constant(reward), []Transition{{State: 0, Weight: 1.0}}
	})
}

// NewLongChain returns the LongChain MDP: 20 states, 2 actions and a
// discount of 0.5^(1/18), starting in state 1.
//
// In states 1 to 18, action 0 moves one step along the chain with no
// reward, while action 1 pays 0.25 and falls to state 0. The last state
// pays 1 with probability 0.75 and falls to state 0. State 0 is a
// trap which returns to state 1 with probability 0.025.
func NewLongChain() *Simple {
	const numStates = 20
	discount := math.Pow(0.5, 1.0/(numStates-2))

	m := benchmark(numStates, 2, discount, func(s, a int) (RewardSampler,
		[]Transition) {
		switch {
		case s == 0:
			return Constant(0), []Transition{
				{State: 1, Weight: 0.025},
				{State: 0, Weight: 0.975},
			}

		case s == numStates-1:
			return Bernoulli{P: 0.75, Value: 1.0},
				[]Transition{{State: 0, Weight: 1.0}}

		case a == 0:
			return Constant(0), []Transition{{State: s + 1, Weight: 1.0}}

		default:
			return Constant(0.25), []Transition{{State: 0, Weight: 1.0}}
		}
	})

	if err := m.SetInitialState(1); err != nil {
		panic(fmt.Sprintf("newLongChain: %v", err))
	}
	return m
}
