package modelbased_test

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/agent/tabular/modelbased"
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

func TestRMaxSolvesKnownPairs(t *testing.T) {
	p, err := modelbased.NewRMax(modelbased.RMaxConfig{M: 2})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))
	assert.InDelta(t, 10.0, p.Q().At(0, 1), 1e-9)

	// Unknown pairs keep their optimistic value
	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 10.0, p.Q().At(0, 1), 1e-9)
	assert.Equal(t, 1, p.Solves())

	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 9.0, p.Q().At(0, 1), 1e-9)
	assert.Equal(t, 2, p.Solves())

	// Known pairs no longer trigger re-solving
	p.Observe(0, 1, 0, 0)
	assert.Equal(t, 2, p.Solves())
	assert.Equal(t, 0, p.Unconverged())
	assert.Equal(t, 3, p.Model().NumObservations(0, 1))
}

func TestRTDPRMaxSingleBackup(t *testing.T) {
	p, err := modelbased.NewRTDPRMax(modelbased.RTDPRMaxConfig{M: 2})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 10.0, p.Q().At(0, 1), 1e-9)

	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 9.0, p.Q().At(0, 1), 1e-12)

	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 9.0, p.Q().At(0, 1), 1e-12)
	assert.Equal(t, 0, p.Solves())
}

func TestMBIEEBBonus(t *testing.T) {
	p, err := modelbased.NewMBIEEB(modelbased.MBIEEBConfig{Beta: 0.5})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 9.5, p.Q().At(0, 1), 1e-8)

	// Unobserved pairs keep their optimistic value
	assert.InDelta(t, 10.0, p.Q().At(0, 0), 1e-9)
	assert.InDelta(t, 10.0, p.Q().At(1, 0), 1e-9)

	require.NoError(t, p.SetParameters([]float64{0}))
	assert.Equal(t, []float64{0}, p.Parameters())
	p.Observe(0, 1, 0, 0)
	assert.InDelta(t, 9.0, p.Q().At(0, 1), 1e-8)
}

func TestModelBasedRejectsUndiscounted(t *testing.T) {
	m, err := mdp.NewDense([][][]float64{{{1}}}, [][]float64{{0}}, 1)
	require.NoError(t, err)

	p, err := modelbased.NewRMax(modelbased.RMaxConfig{M: 1})
	require.NoError(t, err)
	assert.True(t, errors.Is(p.Initialize(m), mdp.ErrDiscount))
}

func TestModelBasedClone(t *testing.T) {
	policies := []agent.Policy{}
	for _, c := range []agent.Config{
		modelbased.RMaxConfig{M: 1},
		modelbased.RTDPRMaxConfig{M: 1},
		modelbased.MBIEEBConfig{Beta: 1},
	} {
		p, err := agent.Create(c)
		require.NoError(t, err)
		require.True(t, c.ValidPolicy(p))
		require.Equal(t, c, p.Config())
		policies = append(policies, p)
	}

	type modelled interface {
		agent.Policy
		Model() *mdp.Empirical
	}

	for _, p := range policies {
		require.NoError(t, p.Initialize(mdp.NewBandit()))
		p.Observe(0, 0, 1, 0)

		clone := p.Clone().(modelled)
		clone.Observe(0, 0, 1, 0)
		clone.Observe(0, 0, 1, 0)

		assert.Equal(t, 1, p.(modelled).Model().NumObservations(0, 0),
			p.Config().String())
		assert.Equal(t, 3, clone.Model().NumObservations(0, 0),
			p.Config().String())
	}
}

func TestModelBasedGreedy(t *testing.T) {
	p, err := modelbased.NewRMax(modelbased.RMaxConfig{M: 1})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(twoState(t)))

	// Known pair (0, 1) loses its optimism, so (0, 0) is preferred
	p.Observe(0, 1, 0, 0)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		assert.Equal(t, 0, p.SelectAction(rng, 0))
	}
}

func TestConfigValidation(t *testing.T) {
	_, err := modelbased.NewRMax(modelbased.RMaxConfig{M: 0})
	assert.Error(t, err)
	_, err = modelbased.NewRTDPRMax(modelbased.RTDPRMaxConfig{M: -1})
	assert.Error(t, err)
	assert.Equal(t, "MBIEEB(beta=0.5)",
		modelbased.MBIEEBConfig{Beta: 0.5}.String())
}
