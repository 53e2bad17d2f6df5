package formula

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/agent/tabular/policy"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/utils/floatutils"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// table implements the functionality shared by the policies of the
// package: action values, greedy action selection and rejection of
// non-finite updates
type table struct {
	q        *valuetable.Table
	greedy   *policy.EGreedy
	rejected int
}

// initialize creates new action values for m
func (t *table) initialize(m mdp.MDP, initialValue float64) error {
	if m.NumStates() <= 0 || m.NumActions() <= 0 {
		return fmt.Errorf("initialize: %w: %d states, %d actions",
			mdp.ErrShapeMismatch, m.NumStates(), m.NumActions())
	}
	t.q = valuetable.New(m.NumStates(), m.NumActions(), initialValue)
	t.greedy = policy.NewGreedy(t.q)
	t.rejected = 0
	return nil
}

// update sets Q(state, action) to value if value is finite
func (t *table) update(state, action int, value float64) {
	if !floatutils.IsFinite(value) {
		t.rejected++
		return
	}
	t.q.Set(state, action, value)
}

// SelectAction selects a greedy action, breaking ties randomly
func (t *table) SelectAction(rng *rand.Rand, state int) int {
	return t.greedy.SelectAction(rng, state)
}

// clone returns a deep copy
func (t *table) clone() table {
	clone := table{rejected: t.rejected}
	if t.q != nil {
		clone.q = t.q.Clone()
		clone.greedy = policy.NewGreedy(clone.q)
	}
	return clone
}

// Q returns the action values, or nil before initialization
func (t *table) Q() *valuetable.Table {
	return t.q
}

// Rejected returns the number of updates rejected because they
// produced a non-finite value
func (t *table) Rejected() int {
	return t.rejected
}
