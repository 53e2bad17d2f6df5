package valuetable_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// rows returns the action values of a table as a slice of rows
func rows(q *valuetable.Table) [][]float64 {
	states, _ := q.Dims()
	out := make([][]float64, states)
	for s := range out {
		out[s] = append([]float64(nil), q.Row(s)...)
	}
	return out
}

func twoState(t testing.TB) *mdp.Simple {
	m, err := mdp.NewDense(
		[][][]float64{
			{{0, 1}, {1, 0}},
			{{0, 1}, {0, 1}},
		},
		[][]float64{{1, 0}, {0, 0}},
		0.9,
	)
	require.NoError(t, err)
	return m
}

func TestOptimalQAbsorbing(t *testing.T) {
	m, err := mdp.NewDense(
		[][][]float64{
			{{0, 1}, {0, 1}},
			{{0, 1}, {0, 1}},
		},
		[][]float64{{0, 0}, {0, 0}},
		0.9,
	)
	require.NoError(t, err)

	q, result := valuetable.OptimalQ(m)
	assert.True(t, result.Converged)
	assert.LessOrEqual(t, result.Iterations, valuetable.DefaultMaxIterations(m))

	zeros := [][]float64{{0, 0}, {0, 0}}
	assert.True(t, cmp.Equal(zeros, rows(q), cmpopts.EquateApprox(0, 1e-4)),
		cmp.Diff(zeros, rows(q)))
}

func TestOptimalQTwoState(t *testing.T) {
	q, result := valuetable.OptimalQ(twoState(t))
	require.True(t, result.Converged)

	want := [][]float64{{1, 0.9}, {0, 0}}
	assert.True(t, cmp.Equal(want, rows(q), cmpopts.EquateApprox(0, 1e-4)),
		cmp.Diff(want, rows(q)))
}

func TestBackupIsContraction(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m, err := mdp.NewGeneratedSparse(rng, 8, 3, 0.9, 3, 0.7)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		q1 := valuetable.New(8, 3, 0)
		q2 := valuetable.New(8, 3, 0)
		for s := 0; s < 8; s++ {
			for a := 0; a < 3; a++ {
				q1.Set(s, a, rng.Float64()*10-5)
				q2.Set(s, a, rng.Float64()*10-5)
			}
		}

		b1 := valuetable.New(8, 3, 0)
		b2 := valuetable.New(8, 3, 0)
		valuetable.Backup(m, q1, b1, nil)
		valuetable.Backup(m, q2, b2, nil)

		assert.LessOrEqual(t, b1.MaxAbsDiff(b2),
			m.Discount()*q1.MaxAbsDiff(q2)+1e-12)
	}
}

func TestSolveDoesNotModifyInput(t *testing.T) {
	m := twoState(t)
	q := valuetable.NewOptimistic(2, 2, m.Discount())
	before := rows(q)

	solved, _ := valuetable.Solve(m, q, valuetable.Options{})
	assert.Equal(t, before, rows(q))
	assert.NotEqual(t, before, rows(solved))
}

func TestSolveIterationCap(t *testing.T) {
	m := mdp.NewLongChain()
	q := valuetable.NewOptimistic(m.NumStates(), m.NumActions(), m.Discount())

	_, result := valuetable.Solve(m, q, valuetable.Options{MaxIterations: 3})
	assert.Equal(t, 3, result.Iterations)
	assert.False(t, result.Converged)
}

func TestBackupRule(t *testing.T) {
	m := twoState(t)
	src := valuetable.New(2, 2, 5)
	dst := valuetable.New(2, 2, 0)

	rule := func(s, a int) (float64, bool) {
		if s == 1 {
			return 0, true
		}
		return 0.5, false
	}
	valuetable.Backup(m, src, dst, rule)

	// Skipped pairs are copied, others get the bonus
	assert.Equal(t, 5.0, dst.At(1, 0))
	assert.Equal(t, 5.0, dst.At(1, 1))
	assert.InDelta(t, 1+0.9*5+0.5, dst.At(0, 0), 1e-12)
	assert.InDelta(t, 0.9*5+0.5, dst.At(0, 1), 1e-12)

	value, ok := valuetable.BackupPair(m, src, 0, 0, 0)
	assert.True(t, ok)
	assert.InDelta(t, 1+0.9*5, value, 1e-12)
}

func TestBackupSkipsUnobservedPairs(t *testing.T) {
	e := mdp.NewEmpirical(2, 2, 0.9)
	e.Observe(0, 0, 1, 1.0)

	src := valuetable.NewOptimistic(2, 2, 0.9)
	dst := valuetable.New(2, 2, 0)
	_, maxAbs := valuetable.Backup(e, src, dst, nil)

	assert.InDelta(t, 1+0.9*10, dst.At(0, 0), 1e-12)
	assert.InDelta(t, 10, dst.At(0, 1), 1e-12)
	assert.InDelta(t, 10, dst.At(1, 0), 1e-12)
	assert.InDelta(t, 0, maxAbs, 1e-12)
}

func TestGreedyBreaksTiesRandomly(t *testing.T) {
	q := valuetable.New(1, 3, 0)
	q.Set(0, 1, -1)
	rng := rand.New(rand.NewSource(4))

	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		counts[q.Greedy(rng, 0)]++
	}
	assert.Equal(t, 0, counts[1])
	assert.InDelta(t, 1500, counts[0], 150)
	assert.InDelta(t, 1500, counts[2], 150)

	q.Set(0, 2, 1)
	assert.Equal(t, 2, q.Greedy(rng, 0))
	assert.Equal(t, 1.0, q.V(0))
}

func TestOptimisticValue(t *testing.T) {
	q := valuetable.NewOptimistic(3, 2, 0.95)
	assert.InDelta(t, 20, q.At(2, 1), 1e-9)
	assert.False(t, math.IsInf(q.V(0), 0))
}

func BenchmarkBackup(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	m, err := mdp.NewGeneratedSparse(rng, 50, 5, 0.95, 5, 0.5)
	if err != nil {
		b.Fatal(err)
	}
	src := valuetable.NewOptimistic(50, 5, 0.95)
	dst := valuetable.New(50, 5, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		valuetable.Backup(m, src, dst, nil)
		src, dst = dst, src
	}
}
