// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// Fill sets every element of a matrix to value
func Fill(m *mat.Dense, value float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		for j := 0; j < c; j++ {
			row[j] = value
		}
	}
}

// MaxAbsDiff returns the largest absolute element-wise difference
// between two matrices of the same shape
func MaxAbsDiff(a, b mat.Matrix) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	return math.Max(math.Abs(mat.Max(&diff)), math.Abs(mat.Min(&diff)))
}
