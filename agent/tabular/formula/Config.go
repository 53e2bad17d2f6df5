package formula

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/expression"
)

func init() {
	agent.Register(agent.Formula, Config{})
	agent.Register(agent.FormulaModelBased, ModelBasedConfig{})
	agent.Register(agent.Expression, ExpressionConfig{})
}

// validateFormula ensures every weight and power of a Formula is finite
func validateFormula(f Formula) error {
	if _, err := FromParameters(f.Parameters()); err != nil {
		return fmt.Errorf("invalid formula: %v", err)
	}
	return nil
}

// Config represents a configuration of the Parameterized policy
type Config struct {
	Formula      Formula
	InitialValue float64
}

// NewConfig returns a new Config with the identity formula as an
// agent.TypedConfig
func NewConfig(initialValue float64) agent.TypedConfig {
	return agent.NewTypedConfig(Config{
		Formula:      Identity(),
		InitialValue: initialValue,
	})
}

// CreatePolicy creates the policy described by the Config
func (c Config) CreatePolicy() (agent.Policy, error) {
	return NewParameterized(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c Config) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*Parameterized)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	return validateFormula(c.Formula)
}

// Type returns the type of the policy constructed by the Config
func (c Config) Type() agent.Type {
	return agent.Formula
}

func (c Config) String() string {
	return fmt.Sprintf("Formula(%v,q0=%g)", c.Formula, c.InitialValue)
}

// ModelBasedConfig represents a configuration of the
// ParameterizedModelBased policy
type ModelBasedConfig struct {
	Formula      Formula
	InitialValue float64
}

// CreatePolicy creates the policy described by the Config
func (c ModelBasedConfig) CreatePolicy() (agent.Policy, error) {
	return NewParameterizedModelBased(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c ModelBasedConfig) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*ParameterizedModelBased)
	return ok
}

// Validate ensures that the Config is valid
func (c ModelBasedConfig) Validate() error {
	return validateFormula(c.Formula)
}

// Type returns the type of the policy constructed by the Config
func (c ModelBasedConfig) Type() agent.Type {
	return agent.FormulaModelBased
}

func (c ModelBasedConfig) String() string {
	return fmt.Sprintf("FormulaModelBased(%v,q0=%g)", c.Formula,
		c.InitialValue)
}

// ExpressionConfig represents a configuration of the Expression policy
type ExpressionConfig struct {
	// Tree is the update expression over the features of the package,
	// indexed as QValue, Reward, NextValue and Count
	Tree expression.Tree

	// Compile determines whether the tree is compiled into an
	// expression graph or evaluated directly
	Compile bool

	InitialValue float64
}

// CreatePolicy creates the policy described by the Config
func (c ExpressionConfig) CreatePolicy() (agent.Policy, error) {
	return NewExpression(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c ExpressionConfig) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*Expression)
	return ok
}

// Validate ensures that the Config is valid
func (c ExpressionConfig) Validate() error {
	return c.Tree.Validate(NumFeatures)
}

// Type returns the type of the policy constructed by the Config
func (c ExpressionConfig) Type() agent.Type {
	return agent.Expression
}

func (c ExpressionConfig) String() string {
	return fmt.Sprintf("Expression(%v,q0=%g)", c.Tree, c.InitialValue)
}
