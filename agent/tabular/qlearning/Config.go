package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/iterfn"
)

func init() {
	// Register Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.EGreedyQLearning, Config{})
}

// Config represents a configuration for the QLearning policy
type Config struct {
	// DecayExponent w determines the step size (n+1)^-w of an update
	// to a pair which was visited n times before, w ∈ [0, 1]
	DecayExponent float64

	// Epsilon determines the exploration rate of the behaviour policy
	// from the number of updates performed so far
	Epsilon iterfn.IterFn

	// InitialValue is the initial value of each action value
	InitialValue float64
}

// NewConfig returns a new Config as an agent.TypedConfig so that it can
// easily be JSON serialized/deserialized without knowing the underlying
// concrete type.
func NewConfig(w float64, ɛ iterfn.IterFn,
	initialValue float64) agent.TypedConfig {
	return agent.NewTypedConfig(Config{
		DecayExponent: w,
		Epsilon:       ɛ,
		InitialValue:  initialValue,
	})
}

// CreatePolicy creates the policy from the Config
func (c Config) CreatePolicy() (agent.Policy, error) {
	return New(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c Config) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.DecayExponent < 0 || c.DecayExponent > 1 {
		return fmt.Errorf("decay exponent %v not in [0, 1]",
			c.DecayExponent)
	}
	if err := c.Epsilon.Valid(); err != nil {
		return fmt.Errorf("invalid epsilon: %v", err)
	}
	if min, max := c.Epsilon.Range(); min < 0 || max > 1 {
		return fmt.Errorf("epsilon %v takes values outside [0, 1]",
			c.Epsilon)
	}
	return nil
}

// Type returns the type of the policy constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearning
}

func (c Config) String() string {
	return fmt.Sprintf("QLearning(w=%g,eps=%v,q0=%g)", c.DecayExponent,
		c.Epsilon, c.InitialValue)
}
