package modelbased

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/utils/floatutils"
)

// MBIEEB implements Model-Based Interval Estimation with Exploration
// Bonus. Every observation re-solves the action values of all observed
// pairs on the empirical model, adding a bonus of β/√n(s, a) to the
// backup of each pair observed n(s, a) times. Pairs which were never
// observed keep their optimistic value.
type MBIEEB struct {
	core
	config MBIEEBConfig
}

// NewMBIEEB returns a new MBIEEB policy
func NewMBIEEB(c MBIEEBConfig) (*MBIEEB, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newMBIEEB: %v", err)
	}
	return &MBIEEB{config: c}, nil
}

// Initialize resets the model and action values
func (m *MBIEEB) Initialize(model mdp.MDP) error {
	return m.initialize(model)
}

// Observe feeds a transition to the model and re-solves
func (m *MBIEEB) Observe(state, action, next int, reward float64) {
	m.model.Observe(state, action, next, reward)
	m.solve(m.bonus)
}

// bonus returns the exploration bonus of a pair, skipping unobserved
// pairs
func (m *MBIEEB) bonus(state, action int) (float64, bool) {
	n := m.model.NumObservations(state, action)
	if n == 0 {
		return 0, true
	}
	return m.config.Beta / math.Sqrt(float64(n)), false
}

// Clone clones the policy
func (m *MBIEEB) Clone() agent.Policy {
	return &MBIEEB{core: m.clone(), config: m.config}
}

// Config returns the configuration of the policy
func (m *MBIEEB) Config() agent.Config {
	return m.config
}

// ParameterNames returns the names of the tunable parameters
func (m *MBIEEB) ParameterNames() []string {
	return []string{"Beta"}
}

// Parameters returns the tunable parameters
func (m *MBIEEB) Parameters() []float64 {
	return []float64{m.config.Beta}
}

// SetParameters sets the tunable parameters
func (m *MBIEEB) SetParameters(params []float64) error {
	if len(params) != 1 {
		return fmt.Errorf("setParameters: expected 1 parameter but got %d",
			len(params))
	}
	if !floatutils.IsFinite(params[0]) {
		return fmt.Errorf("setParameters: beta must be finite")
	}
	m.config.Beta = params[0]
	return nil
}

// ParameterSampler returns the uniform distribution over [0, 2]
func (m *MBIEEB) ParameterSampler() agent.ParameterSampler {
	return agent.ParameterSamplerFunc(func(rng *rand.Rand) []float64 {
		dist := distuv.Uniform{Min: 0, Max: 2, Src: rng}
		return []float64{dist.Rand()}
	})
}
