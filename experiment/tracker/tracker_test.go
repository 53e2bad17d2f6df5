package tracker_test

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/smallmdp/experiment/tracker"
	ts "github.com/samuelfneumann/smallmdp/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 0.5, 0, -1, 0)}
	for i, r := range rewards {
		step := ts.New(ts.Mid, r, 0.5, 0, 0, i+1)
		if i == len(rewards)-1 {
			step.StepType = ts.Last
			step.SetEnd(ts.Timeout)
		}
		steps = append(steps, step)
	}
	return steps
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	r := tracker.NewReturn(filename)

	for _, step := range episode(1, 2, 4) {
		r.Track(step)
	}
	for _, step := range episode(8) {
		r.Track(step)
	}
	// Unfinished episodes are not saved
	for _, step := range episode(1, 1)[:2] {
		r.Track(step)
	}

	assert.Equal(t, []float64{3, 8}, r.Returns())

	require.NoError(t, r.Save())
	data, err := tracker.LoadData[float64](filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 8}, data)
}

func TestReturnNonSequential(t *testing.T) {
	r := tracker.NewReturn("")
	steps := episode(1, 2, 3)
	r.Track(steps[0])
	assert.Panics(t, func() { r.Track(steps[2]) })
}

func TestEpisodeLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	e := tracker.NewEpisodeLength(filename)

	for _, step := range append(episode(1, 2, 3), episode(1)...) {
		e.Track(step)
	}
	assert.Equal(t, []int{3, 1}, e.Lengths())
	assert.Equal(t, []ts.EndType{ts.Timeout, ts.Timeout}, e.EndTypes())

	require.NoError(t, e.Save())
	data, err := tracker.LoadData[int](filename)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, data)

	_, err = tracker.LoadData[int](filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
