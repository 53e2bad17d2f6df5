// Package environment implements a stepping environment over a finite
// MDP, which produces the TimeSteps of a rollout
package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/mdp"
	ts "github.com/samuelfneumann/smallmdp/timestep"
)

// Ender determines when episodes end
type Ender interface {
	// End determines whether the episode should end, modifying the
	// TimeStep to be the last if so
	End(*ts.TimeStep) bool
}

// MDP is an environment which steps a finite MDP. Every transition and
// reward is sampled from the injected random number generator, so that
// two environments with identically seeded generators produce identical
// trajectories.
type MDP struct {
	model mdp.MDP
	rng   *rand.Rand
	ender Ender

	currentStep ts.TimeStep
}

// New returns a new environment on model starting in the model's
// initial state. Episodes end when ender says so. A nil ender never
// ends episodes.
func New(model mdp.MDP, rng *rand.Rand, ender Ender) (*MDP, ts.TimeStep) {
	e := &MDP{
		model: model,
		rng:   rng,
		ender: ender,
	}
	return e, e.Reset()
}

// Reset resets the environment to the initial state of the model and
// returns the first TimeStep of a new episode
func (e *MDP) Reset() ts.TimeStep {
	e.currentStep = ts.New(ts.First, 0, e.model.Discount(),
		e.model.InitialState(), -1, 0)
	return e.currentStep
}

// Step takes one step in the environment and returns the next TimeStep
// and whether the episode ended
func (e *MDP) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= e.model.NumActions() {
		return ts.TimeStep{}, false, fmt.Errorf("step: action %d out of "+
			"range [0, %d)", action, e.model.NumActions())
	}
	if e.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode ended, " +
			"reset required")
	}

	next, reward := mdp.SampleTransition(e.model, e.rng,
		e.currentStep.State, action)
	step := ts.New(ts.Mid, reward, e.model.Discount(), next, action,
		e.currentStep.Number+1)

	var last bool
	if e.ender != nil {
		last = e.ender.End(&step)
	}
	e.currentStep = step

	return step, last, nil
}

// CurrentTimeStep returns the last TimeStep produced by the environment
func (e *MDP) CurrentTimeStep() ts.TimeStep {
	return e.currentStep
}

// Model returns the underlying MDP
func (e *MDP) Model() mdp.MDP {
	return e.model
}
