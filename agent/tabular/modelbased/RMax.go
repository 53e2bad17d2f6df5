package modelbased

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/mdp"
)

// RMax implements the R-max algorithm. A pair is known once it has been
// observed M times. Each observation of a pair which is not yet known
// re-solves the action values of the known pairs on the empirical
// model, while unknown pairs keep their optimistic value.
type RMax struct {
	core
	config RMaxConfig
}

// NewRMax returns a new RMax policy
func NewRMax(c RMaxConfig) (*RMax, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newRMax: %v", err)
	}
	return &RMax{config: c}, nil
}

// Initialize resets the model and action values
func (r *RMax) Initialize(m mdp.MDP) error {
	return r.initialize(m)
}

// Observe feeds a transition to the model and re-solves the known pairs
// if the pair was not known before the observation
func (r *RMax) Observe(state, action, next int, reward float64) {
	prior := r.model.NumObservations(state, action)
	r.model.Observe(state, action, next, reward)

	if prior < r.config.M {
		r.solve(r.unknown)
	}
}

// unknown skips pairs which are not yet known
func (r *RMax) unknown(state, action int) (float64, bool) {
	return 0, r.model.NumObservations(state, action) < r.config.M
}

// Clone clones the policy
func (r *RMax) Clone() agent.Policy {
	return &RMax{core: r.clone(), config: r.config}
}

// Config returns the configuration of the policy
func (r *RMax) Config() agent.Config {
	return r.config
}
