package mdp_test

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridworld(t *testing.T) {
	m, err := mdp.NewGridworld(mdp.Gridworld{
		Rows:           2,
		Cols:           3,
		Start:          mdp.Cell{X: 0, Y: 0},
		Goals:          []mdp.Cell{{X: 2, Y: 1}},
		TimeStepReward: -1,
		Discount:       0.9,
	})
	require.NoError(t, err)
	require.NoError(t, mdp.Validate(m))

	assert.Equal(t, 6, m.NumStates())
	assert.Equal(t, 4, m.NumActions())
	assert.Equal(t, 0, m.InitialState())

	next := func(s, a int) int {
		tr, _ := m.Transitions(s, a)
		require.Len(t, tr, 1)
		return tr[0].State
	}

	// Walls keep the agent in place
	assert.Equal(t, 0, next(0, mdp.Left))
	assert.Equal(t, 0, next(0, mdp.Down))
	assert.Equal(t, 1, next(0, mdp.Right))
	assert.Equal(t, 3, next(0, mdp.Up))

	assert.Equal(t, -1.0, m.RewardExpectation(0, mdp.Right, 1))
	assert.Equal(t, 0.0, m.RewardExpectation(4, mdp.Right, 5))

	// Goals are absorbing
	for a := 0; a < m.NumActions(); a++ {
		assert.Equal(t, 5, next(5, a))
		assert.Equal(t, 0.0, m.RewardExpectation(5, a, 5))
	}
}

func TestGridworldOutOfBounds(t *testing.T) {
	_, err := mdp.NewGridworld(mdp.Gridworld{
		Rows:     2,
		Cols:     2,
		Start:    mdp.Cell{X: 2, Y: 0},
		Discount: 0.9,
	})
	assert.True(t, errors.Is(err, mdp.ErrShapeMismatch))

	_, err = mdp.NewGridworld(mdp.Gridworld{
		Rows:     2,
		Cols:     2,
		Goals:    []mdp.Cell{{X: 0, Y: -1}},
		Discount: 0.9,
	})
	assert.True(t, errors.Is(err, mdp.ErrShapeMismatch))
}
