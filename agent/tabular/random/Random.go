// Package random implements a policy which selects actions uniformly at
// random
package random

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/mdp"
)

// Random selects actions uniformly at random and ignores observations
type Random struct {
	numActions int
}

// New returns a new Random policy
func New() *Random {
	return &Random{}
}

// Initialize records the number of actions of m
func (r *Random) Initialize(m mdp.MDP) error {
	if m.NumActions() <= 0 {
		return fmt.Errorf("initialize: %w: no actions", mdp.ErrShapeMismatch)
	}
	r.numActions = m.NumActions()
	return nil
}

// SelectAction selects an action uniformly at random
func (r *Random) SelectAction(rng *rand.Rand, _ int) int {
	return rng.Intn(r.numActions)
}

// Observe does nothing
func (r *Random) Observe(int, int, int, float64) {}

// Clone clones the policy
func (r *Random) Clone() agent.Policy {
	return &Random{r.numActions}
}

// Config returns the configuration of the policy
func (r *Random) Config() agent.Config {
	return Config{}
}
