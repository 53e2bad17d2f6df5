// Package modelbased implements model-based policies which learn an
// empirical model of the MDP they act in and plan on it, acting
// greedily with respect to optimistic action values.
//
// All policies of the package start from action values of 1/(1-γ), the
// largest possible discounted return for rewards in [0, 1], and differ
// in when and how the action values are recomputed from the model:
//
//   - RMax re-solves the known pairs each time an unknown pair is
//     observed
//   - RTDPRMax performs a single backup of each observed known pair
//   - MBIEEB re-solves all observed pairs on every observation with an
//     exploration bonus
package modelbased

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/agent/tabular/policy"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// core implements the functionality shared by all model-based policies.
// Observations always feed the empirical model, and actions are greedy
// with respect to the action values.
type core struct {
	model  *mdp.Empirical
	q      *valuetable.Table
	greedy *policy.EGreedy

	solves      int
	unconverged int
}

// initialize creates a new empirical model and optimistic action values
// for m
func (c *core) initialize(m mdp.MDP) error {
	if m.NumStates() <= 0 || m.NumActions() <= 0 {
		return fmt.Errorf("initialize: %w: %d states, %d actions",
			mdp.ErrShapeMismatch, m.NumStates(), m.NumActions())
	}
	if d := m.Discount(); d <= 0 || d >= 1 {
		return fmt.Errorf("initialize: %w: optimistic values need a "+
			"discount in (0, 1) but got %v", mdp.ErrDiscount, d)
	}

	c.model = mdp.NewEmpiricalLike(m)
	c.q = valuetable.NewOptimistic(m.NumStates(), m.NumActions(),
		m.Discount())
	c.greedy = policy.NewGreedy(c.q)
	c.solves = 0
	c.unconverged = 0

	return nil
}

// SelectAction selects a greedy action, breaking ties randomly
func (c *core) SelectAction(rng *rand.Rand, state int) int {
	return c.greedy.SelectAction(rng, state)
}

// solve runs value iteration on the empirical model over the pairs
// selected by rule, until the largest change falls below 1e-9, and
// replaces the action values with the solution
func (c *core) solve(rule valuetable.Rule) {
	q, result := valuetable.Solve(c.model, c.q, valuetable.Options{
		Criterion: valuetable.MaxAbs,
		Rule:      rule,
	})

	c.solves++
	if !result.Converged {
		c.unconverged++
	}

	c.q = q
	c.greedy.SetTable(q)
}

// clone returns a deep copy
func (c *core) clone() core {
	clone := core{solves: c.solves, unconverged: c.unconverged}
	if c.model != nil {
		clone.model = c.model.Clone()
		clone.q = c.q.Clone()
		clone.greedy = policy.NewGreedy(clone.q)
	}
	return clone
}

// Q returns the action values, or nil before initialization
func (c *core) Q() *valuetable.Table {
	return c.q
}

// Model returns the empirical model, or nil before initialization
func (c *core) Model() *mdp.Empirical {
	return c.model
}

// Solves returns the number of value iteration runs performed
func (c *core) Solves() int {
	return c.solves
}

// Unconverged returns the number of value iteration runs which stopped
// at their iteration cap
func (c *core) Unconverged() int {
	return c.unconverged
}
