package random_test

import (
	"testing"

	"github.com/samuelfneumann/smallmdp/agent/tabular/random"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomIsUniform(t *testing.T) {
	p := random.New()
	require.NoError(t, p.Initialize(mdp.NewBandit()))
	rng := rand.New(rand.NewSource(3))

	const n = 60000
	counts := make([]int, 6)
	for i := 0; i < n; i++ {
		counts[p.SelectAction(rng, 0)]++
	}
	for _, c := range counts {
		assert.InDelta(t, 1.0/6.0, float64(c)/n, 0.01)
	}
}
