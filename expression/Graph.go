package expression

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Graph is an expression Tree compiled into a Gorgonia expression
// graph, evaluated by a tape machine. Each feature is an input node of
// the graph which is bound before every run.
//
// A Graph holds a VM and is not safe for concurrent use. Each rollout
// should compile its own Graph.
type Graph struct {
	tree   Tree
	g      *G.ExprGraph
	inputs []*G.Node
	output G.Value
	vm     G.VM
}

// Compile compiles tree into a Graph taking numFeatures features
func Compile(tree Tree, numFeatures int) (*Graph, error) {
	if err := tree.Validate(numFeatures); err != nil {
		return nil, fmt.Errorf("compile: %v", err)
	}

	g := G.NewGraph()
	inputs := make([]*G.Node, numFeatures)
	for i := range inputs {
		inputs[i] = G.NewScalar(g, tensor.Float64,
			G.WithName(fmt.Sprintf("f%d", i)))
	}

	b := builder{g: g, inputs: inputs}
	out, err := b.build(tree)
	if err != nil {
		return nil, fmt.Errorf("compile: %v", err)
	}

	graph := &Graph{
		tree:   tree,
		g:      g,
		inputs: inputs,
	}
	G.Read(out, &graph.output)
	graph.vm = G.NewTapeMachine(g)

	return graph, nil
}

// Evaluate binds features to the inputs of the graph and runs it
func (g *Graph) Evaluate(features []float64) (float64, error) {
	if len(features) != len(g.inputs) {
		return 0, fmt.Errorf("evaluate: expected %d features but got %d",
			len(g.inputs), len(features))
	}

	for i, input := range g.inputs {
		if err := G.Let(input, G.NewF64(features[i])); err != nil {
			return 0, fmt.Errorf("evaluate: could not set feature %d: %v",
				i, err)
		}
	}

	defer g.vm.Reset()
	if err := g.vm.RunAll(); err != nil {
		return 0, fmt.Errorf("evaluate: could not run graph: %v", err)
	}

	value, ok := g.output.Data().(float64)
	if !ok {
		return 0, fmt.Errorf("evaluate: graph output %v is not a float64",
			g.output)
	}
	return value, nil
}

// Tree returns the tree compiled into the graph
func (g *Graph) Tree() Tree {
	return g.tree
}

// Close releases the resources held by the VM of the graph
func (g *Graph) Close() error {
	return g.vm.Close()
}

// builder adds the nodes of a tree to an expression graph
type builder struct {
	g         *G.ExprGraph
	inputs    []*G.Node
	constants int
}

func (b *builder) build(t Tree) (*G.Node, error) {
	switch t.Op {
	case Const:
		b.constants++
		return G.NewScalar(b.g, tensor.Float64,
			G.WithName(fmt.Sprintf("c%d", b.constants)),
			G.WithValue(G.NewF64(t.Value))), nil

	case Feature:
		return b.inputs[t.Feature], nil
	}

	args := make([]*G.Node, len(t.Args))
	for i, arg := range t.Args {
		node, err := b.build(arg)
		if err != nil {
			return nil, err
		}
		args[i] = node
	}

	switch t.Op {
	case Add:
		return G.Add(args[0], args[1])
	case Sub:
		return G.Sub(args[0], args[1])
	case Mul:
		return G.Mul(args[0], args[1])
	case Div:
		return G.Div(args[0], args[1])
	case Pow:
		return G.Pow(args[0], args[1])
	case Neg:
		return G.Neg(args[0])
	case Abs:
		return G.Abs(args[0])
	case Log:
		return G.Log(args[0])
	case Exp:
		return G.Exp(args[0])
	case Sqrt:
		return G.Sqrt(args[0])
	}
	return nil, fmt.Errorf("build: unknown operation %q", t.Op)
}
