package formula_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/agent/tabular/formula"
	"github.com/samuelfneumann/smallmdp/expression"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func twoState(t *testing.T) *mdp.Simple {
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

func TestFormulaZeroPower(t *testing.T) {
	f := formula.Formula{
		Weights: [formula.NumFeatures]float64{1, 1, 0, 2},
		Powers:  [formula.NumFeatures]float64{-1, 0.5, 100, 0},
	}

	// 0^p = 0 even for negative powers, and zero weights are skipped
	value := f.Evaluate([formula.NumFeatures]float64{0, 4, math.Inf(1), 3})
	assert.Equal(t, 0+2+0+2*1.0, value)
}

func TestIdentityIsNoOp(t *testing.T) {
	p, err := formula.NewParameterized(formula.Config{
		Formula:      formula.Identity(),
		InitialValue: 0.5,
	})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		s := rng.Intn(2)
		a := p.SelectAction(rng, s)
		next, r := mdp.SampleTransition(twoState(t), rng, s, a)
		p.Observe(s, a, next, r)
	}

	for s := 0; s < 2; s++ {
		for a := 0; a < 2; a++ {
			assert.Equal(t, 0.5, p.Q().At(s, a))
		}
	}
}

func TestParameterizedQLearningLike(t *testing.T) {
	// Q ← r + 0.9 · V(s')
	f := formula.Formula{
		Weights: [formula.NumFeatures]float64{0, 1, 0.9, 0},
		Powers:  [formula.NumFeatures]float64{0, 1, 1, 0},
	}
	p, err := formula.NewParameterized(formula.Config{Formula: f})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	p.Observe(0, 1, 0, 0)
	p.Observe(0, 0, 1, 1)
	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 1.0, p.Q().At(0, 0), 1e-12)
	assert.InDelta(t, 0.9, p.Q().At(0, 1), 1e-12)
	assert.Equal(t, 0, p.Rejected())
}

func TestNonFiniteUpdatesRejected(t *testing.T) {
	// Q ← Q^0.5 is NaN for negative action values
	f := formula.Formula{
		Weights: [formula.NumFeatures]float64{1, 0, 0, 0},
		Powers:  [formula.NumFeatures]float64{0.5, 0, 0, 0},
	}
	p, err := formula.NewParameterized(formula.Config{
		Formula:      f,
		InitialValue: -1,
	})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	p.Observe(0, 0, 1, 1)
	assert.Equal(t, -1.0, p.Q().At(0, 0))
	assert.Equal(t, 1, p.Rejected())
}

func TestModelBasedUsesExpectations(t *testing.T) {
	// Q ← E[r] + E[V(s')]
	f := formula.Formula{
		Weights: [formula.NumFeatures]float64{0, 1, 1, 0},
		Powers:  [formula.NumFeatures]float64{0, 1, 1, 0},
	}
	p, err := formula.NewParameterizedModelBased(
		formula.ModelBasedConfig{Formula: f})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	// Make V(1) = 2 and V(0) = 0
	p.Observe(1, 0, 1, 2)
	assert.InDelta(t, 2, p.Q().At(1, 0), 1e-12)

	p.Observe(0, 1, 1, 1)
	p.Observe(0, 1, 0, 3)
	// E[r] = 2, E[V] = (V(1) + V(0)) / 2 = (2 + 3) / 2
	assert.InDelta(t, 4.5, p.Q().At(0, 1), 1e-12)
	assert.Equal(t, 2, p.Model().NumObservations(0, 1))
}

func TestParameters(t *testing.T) {
	p, err := formula.NewParameterized(formula.Config{
		Formula: formula.Identity(),
	})
	require.NoError(t, err)

	assert.Len(t, p.ParameterNames(), 2*formula.NumFeatures)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0}, p.Parameters())

	params := []float64{0.1, 0.2, 0.3, 0.4, 1, 1.5, 2, 0}
	require.NoError(t, p.SetParameters(params))
	assert.Equal(t, params, p.Parameters())
	assert.Equal(t, params,
		p.Config().(formula.Config).Formula.Parameters())

	assert.Error(t, p.SetParameters(params[:3]))
	assert.Error(t, p.SetParameters([]float64{math.NaN(), 0, 0, 0, 0, 0,
		0, 0}))

	rng := rand.New(rand.NewSource(3))
	sample := p.ParameterSampler().Sample(rng)
	require.Len(t, sample, 2*formula.NumFeatures)
	for _, power := range sample[formula.NumFeatures:] {
		assert.True(t, power >= 0 && power <= 2)
	}
}

func TestCloneIndependence(t *testing.T) {
	f := formula.Formula{
		Weights: [formula.NumFeatures]float64{0, 1, 0, 0},
		Powers:  [formula.NumFeatures]float64{0, 1, 0, 0},
	}
	p, err := formula.NewParameterized(formula.Config{Formula: f})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))
	p.Observe(0, 0, 1, 1)

	clone := p.Clone().(*formula.Parameterized)
	clone.Observe(0, 0, 1, 5)
	assert.Equal(t, 1.0, p.Q().At(0, 0))
	assert.Equal(t, 5.0, clone.Q().At(0, 0))
}

// qLearningTree is Q + (r + 0.9 V - Q) / n over the package features
func qLearningTree() expression.Tree {
	q := expression.NewFeature(formula.QValue)
	target := expression.NewOp(expression.Add,
		expression.NewFeature(formula.Reward),
		expression.NewOp(expression.Mul, expression.NewConst(0.9),
			expression.NewFeature(formula.NextValue)))
	step := expression.NewOp(expression.Div,
		expression.NewOp(expression.Sub, target, q),
		expression.NewFeature(formula.Count))
	return expression.NewOp(expression.Add, q, step)
}

func TestExpressionPolicy(t *testing.T) {
	for _, compile := range []bool{false, true} {
		p, err := formula.NewExpression(formula.ExpressionConfig{
			Tree:    qLearningTree(),
			Compile: compile,
		})
		require.NoError(t, err)
		require.NoError(t, p.Initialize(twoState(t)))

		p.Observe(0, 1, 1, 2)
		p.Observe(0, 1, 1, 4)
		assert.InDelta(t, 3.0, p.Q().At(0, 1), 1e-9)

		clone := p.Clone().(*formula.Expression)
		clone.Observe(0, 1, 1, 0)
		assert.InDelta(t, 3.0, p.Q().At(0, 1), 1e-9)
		assert.InDelta(t, 2.0, clone.Q().At(0, 1), 1e-9)

		assert.NoError(t, p.Close())
		assert.NoError(t, clone.Close())
	}
}

func TestExpressionFuncRejects(t *testing.T) {
	p := formula.NewExpressionFunc(expression.Func(
		func([]float64) (float64, error) { return math.Inf(-1), nil }), 0)
	require.NoError(t, p.Initialize(twoState(t)))

	p.Observe(0, 0, 1, 1)
	assert.Equal(t, 0.0, p.Q().At(0, 0))
	assert.Equal(t, 1, p.Rejected())
}

func TestConfigJSON(t *testing.T) {
	configs := []agent.Config{
		formula.Config{Formula: formula.Identity(), InitialValue: 1},
		formula.ModelBasedConfig{Formula: formula.Identity()},
		formula.ExpressionConfig{Tree: qLearningTree(), Compile: true},
	}
	for _, c := range configs {
		data, err := json.Marshal(agent.NewTypedConfig(c))
		require.NoError(t, err)

		out, err := agent.UnmarshalConfig(data)
		require.NoError(t, err)
		assert.Equal(t, c, out)

		p, err := agent.Create(out)
		require.NoError(t, err)
		assert.True(t, c.ValidPolicy(p))
	}

	_, err := formula.NewExpression(formula.ExpressionConfig{
		Tree: expression.NewFeature(formula.NumFeatures),
	})
	assert.Error(t, err)
}
