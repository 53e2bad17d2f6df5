// Package expression implements expressions which compute a single
// value from a vector of features. Expressions are described by JSON
// serializable trees, which can be evaluated directly or compiled into
// Gorgonia expression graphs.
package expression

// Expression computes a value from a vector of features. Evaluating an
// Expression has no side effects, although an Expression may hold
// resources which make it unsafe for concurrent use.
type Expression interface {
	Evaluate(features []float64) (float64, error)
}

// Func is an adapter to use a function as an Expression
type Func func(features []float64) (float64, error)

// Evaluate returns f(features)
func (f Func) Evaluate(features []float64) (float64, error) {
	return f(features)
}
