package expression

import (
	"fmt"
	"math"
	"strings"
)

// Op is an operation of a node in an expression Tree
type Op string

// Available operations
const (
	Const   Op = "const"
	Feature Op = "feature"

	Add Op = "add"
	Sub Op = "sub"
	Mul Op = "mul"
	Div Op = "div"
	Pow Op = "pow"

	Neg  Op = "neg"
	Abs  Op = "abs"
	Log  Op = "log"
	Exp  Op = "exp"
	Sqrt Op = "sqrt"
)

// arity returns the number of arguments of an operation, or -1 if the
// operation is unknown
func (o Op) arity() int {
	switch o {
	case Const, Feature:
		return 0
	case Neg, Abs, Log, Exp, Sqrt:
		return 1
	case Add, Sub, Mul, Div, Pow:
		return 2
	}
	return -1
}

// symbols of binary operations used when printing trees
var symbols = map[Op]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Pow: "^",
}

// Tree is an expression tree. Leaves are either constants, holding
// their value in Value, or features, holding the index of the feature
// in Feature.
type Tree struct {
	Op      Op
	Value   float64 `json:",omitempty"`
	Feature int     `json:",omitempty"`
	Args    []Tree  `json:",omitempty"`
}

// NewConst returns a constant leaf
func NewConst(value float64) Tree {
	return Tree{Op: Const, Value: value}
}

// NewFeature returns a feature leaf
func NewFeature(index int) Tree {
	return Tree{Op: Feature, Feature: index}
}

// NewOp returns a tree applying op to args
func NewOp(op Op, args ...Tree) Tree {
	return Tree{Op: op, Args: args}
}

// Validate checks that every operation of the tree is known and has the
// right number of arguments, and that every feature index is in
// [0, numFeatures)
func (t Tree) Validate(numFeatures int) error {
	arity := t.Op.arity()
	if arity < 0 {
		return fmt.Errorf("validate: unknown operation %q", t.Op)
	}
	if len(t.Args) != arity {
		return fmt.Errorf("validate: operation %q expects %d arguments "+
			"but got %d", t.Op, arity, len(t.Args))
	}
	if t.Op == Feature && (t.Feature < 0 || t.Feature >= numFeatures) {
		return fmt.Errorf("validate: feature %d out of range [0, %d)",
			t.Feature, numFeatures)
	}

	for _, arg := range t.Args {
		if err := arg.Validate(numFeatures); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates the tree on features
func (t Tree) Evaluate(features []float64) (float64, error) {
	switch t.Op {
	case Const:
		return t.Value, nil

	case Feature:
		if t.Feature < 0 || t.Feature >= len(features) {
			return 0, fmt.Errorf("evaluate: feature %d out of range "+
				"[0, %d)", t.Feature, len(features))
		}
		return features[t.Feature], nil
	}

	arity := t.Op.arity()
	if arity < 0 || len(t.Args) != arity {
		return 0, fmt.Errorf("evaluate: invalid operation %q with %d "+
			"arguments", t.Op, len(t.Args))
	}

	args := make([]float64, arity)
	for i, arg := range t.Args {
		value, err := arg.Evaluate(features)
		if err != nil {
			return 0, err
		}
		args[i] = value
	}

	switch t.Op {
	case Add:
		return args[0] + args[1], nil
	case Sub:
		return args[0] - args[1], nil
	case Mul:
		return args[0] * args[1], nil
	case Div:
		return args[0] / args[1], nil
	case Pow:
		return math.Pow(args[0], args[1]), nil
	case Neg:
		return -args[0], nil
	case Abs:
		return math.Abs(args[0]), nil
	case Log:
		return math.Log(args[0]), nil
	case Exp:
		return math.Exp(args[0]), nil
	default:
		return math.Sqrt(args[0]), nil
	}
}

// Size returns the number of nodes in the tree
func (t Tree) Size() int {
	size := 1
	for _, arg := range t.Args {
		size += arg.Size()
	}
	return size
}

// String implements the fmt.Stringer interface
func (t Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Tree) write(b *strings.Builder) {
	switch {
	case t.Op == Const:
		fmt.Fprintf(b, "%g", t.Value)
	case t.Op == Feature:
		fmt.Fprintf(b, "f%d", t.Feature)
	case len(t.Args) == 2 && symbols[t.Op] != "":
		b.WriteString("(")
		t.Args[0].write(b)
		fmt.Fprintf(b, " %s ", symbols[t.Op])
		t.Args[1].write(b)
		b.WriteString(")")
	default:
		b.WriteString(string(t.Op))
		b.WriteString("(")
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.write(b)
		}
		b.WriteString(")")
	}
}
