package random

import "github.com/samuelfneumann/smallmdp/agent"

func init() {
	agent.Register(agent.Random, Config{})
}

// Config represents a configuration of the Random policy, which has no
// settings
type Config struct{}

// CreatePolicy creates the policy described by the Config
func (c Config) CreatePolicy() (agent.Policy, error) {
	return New(), nil
}

// ValidPolicy returns whether the argument policy is a valid policy
// for construction with the Config
func (c Config) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*Random)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	return nil
}

// Type returns the type of the policy constructed by the Config
func (c Config) Type() agent.Type {
	return agent.Random
}

func (c Config) String() string {
	return "Random"
}
