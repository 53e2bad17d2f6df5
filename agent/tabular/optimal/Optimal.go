// Package optimal implements a policy which knows the MDP it acts in
// and acts greedily with respect to the optimal action values
package optimal

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/agent/tabular/policy"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// Optimal computes the optimal action values of the MDP by value
// iteration upon initialization and then acts greedily. Observations
// are ignored.
type Optimal struct {
	q           *valuetable.Table
	greedy      *policy.EGreedy
	result      valuetable.Result
	unconverged int
}

// New returns a new Optimal policy. The policy must be initialized
// before it can act.
func New() *Optimal {
	return &Optimal{}
}

// Initialize solves m
func (o *Optimal) Initialize(m mdp.MDP) error {
	if err := mdp.Validate(m); err != nil {
		return fmt.Errorf("initialize: %v", err)
	}

	o.q, o.result = valuetable.OptimalQ(m)
	if !o.result.Converged {
		o.unconverged++
	}
	o.greedy = policy.NewGreedy(o.q)

	return nil
}

// SelectAction selects a greedy action
func (o *Optimal) SelectAction(rng *rand.Rand, state int) int {
	return o.greedy.SelectAction(rng, state)
}

// Observe does nothing since the policy knows the MDP
func (o *Optimal) Observe(int, int, int, float64) {}

// Clone clones the policy
func (o *Optimal) Clone() agent.Policy {
	clone := &Optimal{result: o.result, unconverged: o.unconverged}
	if o.q != nil {
		clone.q = o.q.Clone()
		clone.greedy = policy.NewGreedy(clone.q)
	}
	return clone
}

// Config returns the configuration of the policy
func (o *Optimal) Config() agent.Config {
	return Config{}
}

// Q returns the optimal action values, or nil before initialization
func (o *Optimal) Q() *valuetable.Table {
	return o.q
}

// Result returns the outcome of the last value iteration run
func (o *Optimal) Result() valuetable.Result {
	return o.result
}

// Unconverged returns the number of value iteration runs which stopped
// at their iteration cap
func (o *Optimal) Unconverged() int {
	return o.unconverged
}
