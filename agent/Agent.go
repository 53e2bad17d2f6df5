// Package agent defines the policy interfaces shared by all policies
// which act and learn over finite MDPs
package agent

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/mdp"
)

// Policy selects actions in a finite MDP and learns from the
// transitions it observes.
//
// A Policy is used for a single rollout at a time: Initialize is called
// once with the MDP to act in, after which SelectAction and Observe
// alternate for every step. Policies are not safe for concurrent use;
// concurrent rollouts each use their own Clone.
type Policy interface {
	// Initialize prepares the policy to act in m, discarding anything
	// learned before
	Initialize(m mdp.MDP) error

	// SelectAction selects an action in state. All randomness is drawn
	// from rng.
	SelectAction(rng *rand.Rand, state int) int

	// Observe records that taking action in state led to next with
	// some reward
	Observe(state, action, next int, reward float64)

	// Clone returns a deep copy of the policy which shares no mutable
	// state with the original
	Clone() Policy

	// Config returns the configuration which creates the policy
	Config() Config
}

// Parameterized is a Policy with a vector of real-valued parameters,
// which can be tuned by an external optimizer
type Parameterized interface {
	Policy

	// ParameterNames returns the names of the parameters, in the order
	// of Parameters
	ParameterNames() []string

	// Parameters returns a copy of the parameter vector
	Parameters() []float64

	// SetParameters sets the parameter vector, which must have the
	// same length as ParameterNames
	SetParameters([]float64) error

	// ParameterSampler returns the prior distribution over parameter
	// vectors, used to draw initial points for a search
	ParameterSampler() ParameterSampler
}

// ParameterSampler samples parameter vectors
type ParameterSampler interface {
	Sample(rng *rand.Rand) []float64
}

// ParameterSamplerFunc is an adapter to use a function as a
// ParameterSampler
type ParameterSamplerFunc func(rng *rand.Rand) []float64

// Sample calls f(rng)
func (f ParameterSamplerFunc) Sample(rng *rand.Rand) []float64 {
	return f(rng)
}

// Solver is implemented by policies which plan by value iteration.
// Unconverged returns the number of value iteration runs which reached
// their iteration cap before converging.
type Solver interface {
	Unconverged() int
}
