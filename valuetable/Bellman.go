package valuetable

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/smallmdp/mdp"
)

// Rule decides, for each (state, action) pair, whether the pair takes
// part in a Bellman backup and which exploration bonus is added to its
// expected return. Skipped pairs keep their current value.
type Rule func(state, action int) (bonus float64, skip bool)

// BackupPair computes the Bellman backup of a single pair,
//
//	Σ_{s'} P(s'|s,a) · (R(s,a,s') + γ·V(s')) + bonus
//
// using the state values of q. The second return value is false if the
// pair has no transitions, in which case no backup is defined.
func BackupPair(m mdp.MDP, q *Table, state, action int,
	bonus float64) (float64, bool) {
	return backupPair(m, state, action, bonus, q.V)
}

// backupPair computes a single backup using the state values given by v
func backupPair(m mdp.MDP, state, action int, bonus float64,
	v func(int) float64) (float64, bool) {
	transitions, z := m.Transitions(state, action)
	if len(transitions) == 0 || z <= 0 {
		return 0, false
	}

	discount := m.Discount()
	var value float64
	for _, tr := range transitions {
		next := tr.State
		value += tr.Weight * (m.RewardExpectation(state, action, next) +
			discount*v(next))
	}
	return value/z + bonus, true
}

// Backup performs one synchronous Bellman backup of src into dst. Every
// pair is backed up using the state values of src, so that dst never
// depends on the order in which pairs are visited. Pairs which are
// skipped by rule, or which have no transitions, are copied unchanged.
// A nil rule backs up every pair without a bonus.
//
// Backup returns the sum of squared changes and the largest absolute
// change between src and dst.
func Backup(m mdp.MDP, src, dst *Table,
	rule Rule) (sumSquaredDelta, maxAbsDelta float64) {
	numStates, numActions := src.Dims()

	// Compute state values once per sweep
	values := make([]float64, numStates)
	for s := range values {
		values[s] = src.V(s)
	}
	v := func(s int) float64 { return values[s] }

	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			current := src.At(s, a)

			var bonus float64
			if rule != nil {
				var skip bool
				bonus, skip = rule(s, a)
				if skip {
					dst.Set(s, a, current)
					continue
				}
			}

			value, ok := backupPair(m, s, a, bonus, v)
			if !ok {
				dst.Set(s, a, current)
				continue
			}
			dst.Set(s, a, value)

			delta := value - current
			sumSquaredDelta += delta * delta
			maxAbsDelta = math.Max(maxAbsDelta, math.Abs(delta))
		}
	}
	return sumSquaredDelta, maxAbsDelta
}

// Criterion determines which change statistic value iteration compares
// against its threshold
type Criterion int

const (
	// SumSquared stops when the sum of squared changes falls below
	// the threshold
	SumSquared Criterion = iota

	// MaxAbs stops when the largest absolute change falls below the
	// threshold
	MaxAbs
)

// Default thresholds of each Criterion
const (
	DefaultSumSquaredThreshold = 1e-12
	DefaultMaxAbsThreshold     = 1e-9
)

// String implements the fmt.Stringer interface
func (c Criterion) String() string {
	switch c {
	case SumSquared:
		return "SumSquared"
	case MaxAbs:
		return "MaxAbs"
	}
	return fmt.Sprintf("Criterion(%d)", int(c))
}

// Options configures value iteration
type Options struct {
	// MaxIterations caps the number of sweeps. If zero, the cap is
	// numStates · numActions · 100.
	MaxIterations int

	// Threshold is the convergence threshold. If zero, the default
	// threshold of Criterion is used.
	Threshold float64
	Criterion Criterion

	// Rule restricts the backed up pairs and adds bonuses
	Rule Rule
}

// Result describes a run of value iteration
type Result struct {
	Iterations      int
	Converged       bool
	SumSquaredDelta float64 // Of the last sweep
	MaxAbsDelta     float64 // Of the last sweep
}

// DefaultMaxIterations returns the default cap on value iteration
// sweeps for an MDP
func DefaultMaxIterations(m mdp.MDP) int {
	return m.NumStates() * m.NumActions() * 100
}

// Solve runs value iteration on m starting from q, until the change
// statistic selected by opts.Criterion falls below the threshold or the
// iteration cap is reached.
//
// Solve never modifies q. The solution is built in a pair of tables
// owned by Solve which are swapped after each sweep, and the final table
// is returned so that callers replace their table as a whole. Reaching
// the iteration cap is not an error: the returned table is still the
// best approximation found, and Result.Converged reports the outcome.
func Solve(m mdp.MDP, q *Table, opts Options) (*Table, Result) {
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations(m)
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		switch opts.Criterion {
		case MaxAbs:
			threshold = DefaultMaxAbsThreshold
		default:
			threshold = DefaultSumSquaredThreshold
		}
	}

	current := q.Clone()
	next := q.Clone()

	var result Result
	for result.Iterations < maxIterations {
		result.Iterations++
		result.SumSquaredDelta, result.MaxAbsDelta = Backup(m, current, next,
			opts.Rule)
		current, next = next, current

		delta := result.SumSquaredDelta
		if opts.Criterion == MaxAbs {
			delta = result.MaxAbsDelta
		}
		if delta < threshold {
			result.Converged = true
			break
		}
	}

	return current, result
}

// OptimalQ computes the optimal action values of an MDP by value
// iteration from an optimistic table, stopping when the sum of squared
// changes falls below 1e-12. Undiscounted MDPs start from a table of
// zeros since no finite optimistic value exists.
func OptimalQ(m mdp.MDP) (*Table, Result) {
	var q *Table
	if m.Discount() < 1 {
		q = NewOptimistic(m.NumStates(), m.NumActions(), m.Discount())
	} else {
		q = New(m.NumStates(), m.NumActions(), 0)
	}
	return Solve(m, q, Options{Criterion: SumSquared})
}
