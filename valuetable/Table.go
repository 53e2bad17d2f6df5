// Package valuetable implements dense tables of action values over
// finite MDPs, the Bellman backup operator and value iteration.
package valuetable

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/utils/floatutils"
	"github.com/samuelfneumann/smallmdp/utils/matutils"
)

// Table is a dense numStates × numActions table of action values. Rows
// are indexed by state and columns by action.
//
// State values V(s) = max_a Q(s, a) are always computed from the
// action values and never stored.
type Table struct {
	q *mat.Dense
}

// New returns a new Table with all action values set to initial
func New(numStates, numActions int, initial float64) *Table {
	q := mat.NewDense(numStates, numActions, nil)
	if initial != 0 {
		matutils.Fill(q, initial)
	}
	return &Table{q}
}

// NewOptimistic returns a new Table with all action values set to the
// maximum discounted return 1/(1-γ), so that actions which were never
// tried look better than any achievable return.
func NewOptimistic(numStates, numActions int, discount float64) *Table {
	return New(numStates, numActions, mdp.MaxReturn(discount))
}

// Dims returns the number of states and actions of the table
func (t *Table) Dims() (states, actions int) {
	return t.q.Dims()
}

// At returns the action value Q(state, action)
func (t *Table) At(state, action int) float64 {
	return t.q.At(state, action)
}

// Set sets the action value Q(state, action)
func (t *Table) Set(state, action int, value float64) {
	t.q.Set(state, action, value)
}

// Row returns the action values of a state. The returned slice is a
// view into the table and must not be modified.
func (t *Table) Row(state int) []float64 {
	return t.q.RawRowView(state)
}

// V returns the value of a state, max_a Q(state, a)
func (t *Table) V(state int) float64 {
	return floats.Max(t.Row(state))
}

// Greedy returns an action of maximum value in state. If multiple
// actions have the maximum value, one of them is chosen uniformly at
// random.
func (t *Table) Greedy(rng *rand.Rand, state int) int {
	_, maxIndices := floatutils.MaxSlice(t.Row(state))
	if len(maxIndices) == 1 {
		return maxIndices[0]
	}
	return maxIndices[rng.Intn(len(maxIndices))]
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	return &Table{mat.DenseCopyOf(t.q)}
}

// MaxAbsDiff returns the largest absolute difference between the action
// values of two tables of the same dimensions
func (t *Table) MaxAbsDiff(other *Table) float64 {
	return matutils.MaxAbsDiff(t.q, other.q)
}

// Matrix returns the table as a read-only matrix
func (t *Table) Matrix() mat.Matrix {
	return t.q
}
