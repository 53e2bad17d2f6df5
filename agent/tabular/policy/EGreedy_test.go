package policy_test

import (
	"testing"

	"github.com/samuelfneumann/smallmdp/agent/tabular/policy"
	"github.com/samuelfneumann/smallmdp/valuetable"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestGreedy(t *testing.T) {
	q := valuetable.New(2, 4, 0)
	q.Set(0, 2, 1)
	p := policy.NewGreedy(q)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		assert.Equal(t, 2, p.SelectAction(rng, 0))
	}
}

func TestEGreedyFrequencies(t *testing.T) {
	q := valuetable.New(1, 4, 0)
	q.Set(0, 3, 1)
	p := policy.NewEGreedy(0.4, q)
	rng := rand.New(rand.NewSource(2))

	const n = 20000
	counts := make([]int, 4)
	for i := 0; i < n; i++ {
		counts[p.SelectAction(rng, 0)]++
	}

	assert.InDelta(t, 0.7, float64(counts[3])/n, 0.02)
	for a := 0; a < 3; a++ {
		assert.InDelta(t, 0.1, float64(counts[a])/n, 0.02)
	}
}

func TestEGreedyEpsilonClipped(t *testing.T) {
	q := valuetable.New(1, 3, 0)
	q.Set(0, 1, 1)
	rng := rand.New(rand.NewSource(3))

	p := policy.NewEGreedy(3, q)
	counts := make([]int, 3)
	assert.NotPanics(t, func() {
		for i := 0; i < 3000; i++ {
			counts[p.SelectAction(rng, 0)]++
		}
	})
	for a := range counts {
		assert.InDelta(t, 1.0/3, float64(counts[a])/3000, 0.05)
	}

	p.SetEpsilon(-2)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, p.SelectAction(rng, 0))
	}
}
