// Package experiment implements functionality for evaluating policies
// by simulating them against finite MDPs
package experiment

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/environment"
	"github.com/samuelfneumann/smallmdp/experiment/tracker"
	"github.com/samuelfneumann/smallmdp/mdp"
	ts "github.com/samuelfneumann/smallmdp/timestep"
)

// TailFraction is the fraction of the maximum possible return which the
// discounted tail of a rollout may contribute beyond its horizon
const TailFraction = 0.05

// Horizon returns the number of steps after which the discounted tail
// of a rollout contributes less than TailFraction of the maximum
// possible return, ceil(log(TailFraction·(1-γ)) / log(γ)). Undiscounted
// MDPs have no such horizon.
func Horizon(discount float64) (int, error) {
	if discount <= 0 || discount >= 1 {
		return 0, fmt.Errorf("horizon: discount %v not in (0, 1)", discount)
	}

	steps := math.Ceil(math.Log(TailFraction*(1-discount)) /
		math.Log(discount))
	if steps < 1 {
		return 1, nil
	}
	return int(steps), nil
}

// Rollout evaluates a clone of policy on m for Horizon(m.Discount())
// steps starting from the initial state of m and returns the discounted
// return Σ γ^t r_t. The policy itself is never modified. All randomness
// is drawn from rng, so that rollouts with identically seeded
// generators are identical.
//
// Each TimeStep of the rollout is passed to the trackers.
func Rollout(policy agent.Policy, m mdp.MDP, rng *rand.Rand,
	trackers ...tracker.Tracker) (float64, error) {
	ret, _, err := rollout(policy, m, rng, trackers)
	return ret, err
}

// rollout runs a rollout and returns the discounted return together
// with the clone which acted in the rollout
func rollout(policy agent.Policy, m mdp.MDP, rng *rand.Rand,
	trackers []tracker.Tracker) (float64, agent.Policy, error) {
	horizon, err := Horizon(m.Discount())
	if err != nil {
		return 0, nil, fmt.Errorf("rollout: %v", err)
	}

	p := policy.Clone()
	if c, ok := p.(io.Closer); ok {
		defer c.Close()
	}
	if err := p.Initialize(m); err != nil {
		return 0, nil, fmt.Errorf("rollout: could not initialize policy: %v",
			err)
	}

	env, first := environment.New(m, rng, environment.NewStepLimit(horizon))
	track(trackers, first)

	var ret float64
	for cur := env.CurrentTimeStep(); !cur.Last(); cur = env.CurrentTimeStep() {
		state := env.CurrentTimeStep().State
		action := p.SelectAction(rng, state)

		step, _, err := env.Step(action)
		if err != nil {
			return 0, nil, fmt.Errorf("rollout: %v", err)
		}
		track(trackers, step)

		p.Observe(state, action, step.State, step.Reward)
		ret += step.DiscountedReward()
	}

	return ret, p, nil
}

func track(trackers []tracker.Tracker, step ts.TimeStep) {
	for _, t := range trackers {
		t.Track(step)
	}
}
