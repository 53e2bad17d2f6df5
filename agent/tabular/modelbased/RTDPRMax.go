package modelbased

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// minChange is the smallest change of an action value that RTDPRMax
// commits
const minChange = 1e-9

// RTDPRMax implements the RTDP-R-max algorithm, an asynchronous variant
// of R-max. Instead of re-solving the known pairs, each observation of
// a known pair performs a single Bellman backup of that pair on the
// empirical model.
type RTDPRMax struct {
	core
	config RTDPRMaxConfig
}

// NewRTDPRMax returns a new RTDPRMax policy
func NewRTDPRMax(c RTDPRMaxConfig) (*RTDPRMax, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newRTDPRMax: %v", err)
	}
	return &RTDPRMax{config: c}, nil
}

// Initialize resets the model and action values
func (r *RTDPRMax) Initialize(m mdp.MDP) error {
	return r.initialize(m)
}

// Observe feeds a transition to the model and backs up the pair if it
// is known after the observation
func (r *RTDPRMax) Observe(state, action, next int, reward float64) {
	r.model.Observe(state, action, next, reward)
	if r.model.NumObservations(state, action) < r.config.M {
		return
	}

	value, ok := valuetable.BackupPair(r.model, r.q, state, action, 0)
	if ok && math.Abs(value-r.q.At(state, action)) > minChange {
		r.q.Set(state, action, value)
	}
}

// Clone clones the policy
func (r *RTDPRMax) Clone() agent.Policy {
	return &RTDPRMax{core: r.clone(), config: r.config}
}

// Config returns the configuration of the policy
func (r *RTDPRMax) Config() agent.Config {
	return r.config
}
