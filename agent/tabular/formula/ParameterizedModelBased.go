package formula

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/mdp"
)

// ParameterizedModelBased is a model-based policy which feeds each
// observed transition to an empirical model and updates the action
// value of the observed pair with a Formula of the features
//
//	[Q(s, a), E[r | s, a], E[max_a' Q(s', a') | s, a], n(s, a)]
//
// where expectations are taken under the empirical model.
type ParameterizedModelBased struct {
	table
	config ModelBasedConfig

	model *mdp.Empirical
}

// NewParameterizedModelBased returns a new ParameterizedModelBased
// policy
func NewParameterizedModelBased(c ModelBasedConfig) (*ParameterizedModelBased,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newParameterizedModelBased: %v", err)
	}
	return &ParameterizedModelBased{config: c}, nil
}

// Initialize resets the action values and the model
func (p *ParameterizedModelBased) Initialize(m mdp.MDP) error {
	if err := p.initialize(m, p.config.InitialValue); err != nil {
		return err
	}
	p.model = mdp.NewEmpiricalLike(m)
	return nil
}

// Observe feeds the transition to the model and updates the action
// value of (state, action)
func (p *ParameterizedModelBased) Observe(state, action, next int,
	reward float64) {
	p.model.Observe(state, action, next, reward)

	transitions, z := p.model.Transitions(state, action)
	var nextValue float64
	for _, tr := range transitions {
		nextValue += tr.Weight * p.q.V(tr.State)
	}
	nextValue /= z

	features := [NumFeatures]float64{
		QValue:    p.q.At(state, action),
		Reward:    p.model.RewardExpectation(state, action, next),
		NextValue: nextValue,
		Count:     float64(p.model.NumObservations(state, action)),
	}
	p.update(state, action, p.config.Formula.Evaluate(features))
}

// Clone clones the policy
func (p *ParameterizedModelBased) Clone() agent.Policy {
	clone := &ParameterizedModelBased{
		table:  p.clone(),
		config: p.config,
	}
	if p.model != nil {
		clone.model = p.model.Clone()
	}
	return clone
}

// Config returns the configuration of the policy
func (p *ParameterizedModelBased) Config() agent.Config {
	return p.config
}

// Model returns the empirical model, or nil before initialization
func (p *ParameterizedModelBased) Model() *mdp.Empirical {
	return p.model
}

// ParameterNames returns the names of the formula parameters
func (p *ParameterizedModelBased) ParameterNames() []string {
	return ParameterNames()
}

// Parameters returns the formula parameters
func (p *ParameterizedModelBased) Parameters() []float64 {
	return p.config.Formula.Parameters()
}

// SetParameters sets the formula parameters
func (p *ParameterizedModelBased) SetParameters(params []float64) error {
	f, err := FromParameters(params)
	if err != nil {
		return fmt.Errorf("setParameters: %v", err)
	}
	p.config.Formula = f
	return nil
}

// ParameterSampler returns the prior over formula parameters
func (p *ParameterizedModelBased) ParameterSampler() agent.ParameterSampler {
	return Sampler()
}
