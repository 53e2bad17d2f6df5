package formula

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/mdp"
)

// Parameterized is a model-free policy updating the action value of
// each observed transition (s, a, r, s') with a Formula of the features
// [Q(s, a), r, max_a' Q(s', a'), n(s, a)].
type Parameterized struct {
	table
	config Config

	visits []int
}

// NewParameterized returns a new Parameterized policy
func NewParameterized(c Config) (*Parameterized, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newParameterized: %v", err)
	}
	return &Parameterized{config: c}, nil
}

// Initialize resets the action values and visit counts
func (p *Parameterized) Initialize(m mdp.MDP) error {
	if err := p.initialize(m, p.config.InitialValue); err != nil {
		return err
	}
	p.visits = make([]int, m.NumStates()*m.NumActions())
	return nil
}

// Observe updates the action value of (state, action)
func (p *Parameterized) Observe(state, action, next int, reward float64) {
	_, numActions := p.q.Dims()
	index := state*numActions + action
	p.visits[index]++

	features := [NumFeatures]float64{
		QValue:    p.q.At(state, action),
		Reward:    reward,
		NextValue: p.q.V(next),
		Count:     float64(p.visits[index]),
	}
	p.update(state, action, p.config.Formula.Evaluate(features))
}

// Clone clones the policy
func (p *Parameterized) Clone() agent.Policy {
	return &Parameterized{
		table:  p.clone(),
		config: p.config,
		visits: append([]int(nil), p.visits...),
	}
}

// Config returns the configuration of the policy
func (p *Parameterized) Config() agent.Config {
	return p.config
}

// ParameterNames returns the names of the formula parameters
func (p *Parameterized) ParameterNames() []string {
	return ParameterNames()
}

// Parameters returns the formula parameters
func (p *Parameterized) Parameters() []float64 {
	return p.config.Formula.Parameters()
}

// SetParameters sets the formula parameters
func (p *Parameterized) SetParameters(params []float64) error {
	f, err := FromParameters(params)
	if err != nil {
		return fmt.Errorf("setParameters: %v", err)
	}
	p.config.Formula = f
	return nil
}

// ParameterSampler returns the prior over formula parameters
func (p *Parameterized) ParameterSampler() agent.ParameterSampler {
	return Sampler()
}
