package formula

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/expression"
	"github.com/samuelfneumann/smallmdp/mdp"
)

// Expression is a model-free policy updating the action value of each
// observed transition with an arbitrary expression of the features
// [Q(s, a), r, max_a' Q(s', a'), n(s, a)]. Updates for which the
// expression fails or is not finite are rejected.
type Expression struct {
	table
	config ExpressionConfig

	expr   expression.Expression
	graph  *expression.Graph
	visits []int
}

// NewExpression returns a new Expression policy
func NewExpression(c ExpressionConfig) (*Expression, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newExpression: %v", err)
	}
	return &Expression{config: c}, nil
}

// NewExpressionFunc returns a new Expression policy evaluating expr.
// Policies created this way cannot be persisted since their Config
// holds no expression tree.
func NewExpressionFunc(expr expression.Expression,
	initialValue float64) *Expression {
	return &Expression{
		config: ExpressionConfig{InitialValue: initialValue},
		expr:   expr,
	}
}

// Initialize resets the action values and visit counts, compiling the
// expression if needed
func (e *Expression) Initialize(m mdp.MDP) error {
	if err := e.initialize(m, e.config.InitialValue); err != nil {
		return err
	}
	e.visits = make([]int, m.NumStates()*m.NumActions())

	if e.expr == nil {
		return e.compile()
	}
	return nil
}

// compile sets the expression from the tree of the config
func (e *Expression) compile() error {
	if !e.config.Compile {
		e.expr = e.config.Tree
		return nil
	}

	graph, err := expression.Compile(e.config.Tree, NumFeatures)
	if err != nil {
		return fmt.Errorf("compile: %v", err)
	}
	e.graph = graph
	e.expr = graph
	return nil
}

// Observe updates the action value of (state, action)
func (e *Expression) Observe(state, action, next int, reward float64) {
	_, numActions := e.q.Dims()
	index := state*numActions + action
	e.visits[index]++

	features := []float64{
		QValue:    e.q.At(state, action),
		Reward:    reward,
		NextValue: e.q.V(next),
		Count:     float64(e.visits[index]),
	}

	value, err := e.expr.Evaluate(features)
	if err != nil {
		e.rejected++
		return
	}
	e.update(state, action, value)
}

// Clone clones the policy. Compiled expressions are compiled anew for
// the clone upon initialization.
func (e *Expression) Clone() agent.Policy {
	clone := &Expression{
		table:  e.clone(),
		config: e.config,
		visits: append([]int(nil), e.visits...),
	}
	if e.graph == nil {
		clone.expr = e.expr
	} else if err := clone.compile(); err != nil {
		// Unreachable, the tree compiled for e
		panic(fmt.Sprintf("clone: %v", err))
	}
	return clone
}

// Config returns the configuration of the policy
func (e *Expression) Config() agent.Config {
	return e.config
}

// Close releases the expression graph, if any
func (e *Expression) Close() error {
	if e.graph == nil {
		return nil
	}
	err := e.graph.Close()
	e.graph = nil
	e.expr = nil
	return err
}
