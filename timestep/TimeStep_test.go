package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedReward(t *testing.T) {
	first := New(First, 5, 0.5, 0, -1, 0)
	assert.Equal(t, 0.0, first.DiscountedReward())

	step := New(Mid, 8, 0.5, 1, 0, 1)
	assert.Equal(t, 8.0, step.DiscountedReward())

	step = New(Mid, 8, 0.5, 1, 0, 4)
	assert.Equal(t, 1.0, step.DiscountedReward())
}

func TestEnd(t *testing.T) {
	step := New(Mid, 0, 0.9, 3, 1, 2)
	assert.True(t, step.Mid())
	assert.Equal(t, Unended, step.EndType())

	step.StepType = Last
	step.SetEnd(TerminalStateReached)
	assert.True(t, step.Last())
	assert.False(t, step.First())
	assert.Equal(t, "TerminalStateReached", step.EndType().String())
}
