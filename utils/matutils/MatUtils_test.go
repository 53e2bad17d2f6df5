package matutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestFill(t *testing.T) {
	m := mat.NewDense(2, 3, nil)
	Fill(m, 1.5)
	assert.Equal(t, []float64{1.5, 1.5, 1.5, 1.5, 1.5, 1.5}, m.RawMatrix().Data)
}

func TestMaxAbsDiff(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{1, 5, 3, 3})
	assert.Equal(t, 3.0, MaxAbsDiff(a, b))
	assert.Equal(t, 0.0, MaxAbsDiff(a, a))
}

func TestFormat(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	out := Format(m)
	assert.Contains(t, out, "⎡1")
	assert.Contains(t, out, "4⎦")
}
