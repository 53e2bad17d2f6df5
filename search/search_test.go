package search_test

import (
	"bytes"
	"context"
	"log"
	"math"
	"testing"

	"github.com/samuelfneumann/smallmdp/agent/tabular/modelbased"
	"github.com/samuelfneumann/smallmdp/experiment"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/report"
	"github.com/samuelfneumann/smallmdp/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
)

func newPolicy(t *testing.T) *modelbased.MBIEEB {
	p, err := modelbased.NewMBIEEB(modelbased.MBIEEBConfig{Beta: 1})
	require.NoError(t, err)
	return p
}

func batch() experiment.Batch {
	return experiment.Batch{
		Runs:    2,
		Seed:    3,
		Sampler: mdp.Fixed{MDP: mdp.NewBandit()},
	}
}

func TestObjective(t *testing.T) {
	p := newPolicy(t)
	objective := search.Objective(context.Background(), p, batch())

	score := objective([]float64{0.5})
	assert.False(t, math.IsInf(score, 0))
	assert.LessOrEqual(t, score, 0.0)
	assert.Equal(t, score, objective([]float64{0.5}))

	result, err := batch().Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, -result.Mean, objective([]float64{1}))

	assert.True(t, math.IsInf(objective([]float64{math.NaN()}), 1))
	assert.True(t, math.IsInf(objective([]float64{1, 2}), 1))

	// The searched policy is never modified
	assert.Equal(t, []float64{1}, p.Parameters())
}

func TestMinimize(t *testing.T) {
	var buf bytes.Buffer
	b := batch()
	b.Reporter = report.NewLog(log.New(&buf, "", 0))

	p := newPolicy(t)
	initial := search.RandomInitial(p, rand.New(rand.NewSource(1)))
	require.Len(t, initial, 1)

	result, err := search.MinimizeWithSettings(context.Background(), p, b,
		&optimize.NelderMead{}, initial,
		&optimize.Settings{FuncEvaluations: 12})
	require.NoError(t, err)

	assert.Equal(t, 1, result.NumParameters())
	assert.Equal(t, result.Parameters, result.Policy.Parameters())
	assert.Positive(t, result.Evaluations)

	initialScore := -search.Objective(context.Background(), p, b)(initial)
	assert.GreaterOrEqual(t, result.Score, initialScore)

	assert.Contains(t, buf.String(), "best score = ")
	assert.Contains(t, buf.String(), "parameters = 1\n")
	assert.Contains(t, buf.String(), "Beta = ")
}

func TestMinimizeErrors(t *testing.T) {
	p := newPolicy(t)
	_, err := search.Minimize(context.Background(), p, batch(), nil,
		[]float64{1, 2})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = search.MinimizeWithSettings(ctx, p, batch(),
		&optimize.NelderMead{}, []float64{1},
		&optimize.Settings{FuncEvaluations: 5})
	assert.ErrorIs(t, err, context.Canceled)
}
