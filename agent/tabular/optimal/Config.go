package optimal

import "github.com/samuelfneumann/smallmdp/agent"

func init() {
	agent.Register(agent.Optimal, Config{})
}

// Config represents a configuration of the Optimal policy, which has no
// settings
type Config struct{}

// CreatePolicy creates the policy described by the Config
func (c Config) CreatePolicy() (agent.Policy, error) {
	return New(), nil
}

// ValidPolicy returns whether the argument policy is a valid policy
// for construction with the Config
func (c Config) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*Optimal)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	return nil
}

// Type returns the type of the policy constructed by the Config
func (c Config) Type() agent.Type {
	return agent.Optimal
}

func (c Config) String() string {
	return "Optimal"
}
