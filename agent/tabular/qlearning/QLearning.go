// Package qlearning implements the tabular Q-Learning algorithm with a
// step size which decays with the number of visits to each pair and an
// ε-greedy behaviour policy.
package qlearning

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/agent/tabular/policy"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/utils/floatutils"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// QLearning implements the Q-Learning algorithm. On each transition
// (s, a, r, s') the action value of (s, a) is updated as
//
//	Q(s, a) ← (1 - α) Q(s, a) + α (r + γ max_a' Q(s', a'))
//
// with step size α = (n(s, a) + 1)^-w, where n(s, a) is the number of
// previous updates to (s, a).
type QLearning struct {
	config    Config
	q         *valuetable.Table
	behaviour *policy.EGreedy

	visits   []int
	epoch    int
	discount float64
}

// New creates a new QLearning policy. The policy must be initialized
// before it can act.
func New(c Config) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	return &QLearning{config: c}, nil
}

// Initialize resets the action values, visit counts and epoch
func (q *QLearning) Initialize(m mdp.MDP) error {
	numStates, numActions := m.NumStates(), m.NumActions()
	if numStates <= 0 || numActions <= 0 {
		return fmt.Errorf("initialize: %w: %d states, %d actions",
			mdp.ErrShapeMismatch, numStates, numActions)
	}

	q.q = valuetable.New(numStates, numActions, q.config.InitialValue)
	q.behaviour = policy.NewEGreedy(q.config.Epsilon.At(0), q.q)
	q.visits = make([]int, numStates*numActions)
	q.epoch = 0
	q.discount = m.Discount()

	return nil
}

// SelectAction selects an ε-greedy action, where ε is determined by the
// number of updates performed so far
func (q *QLearning) SelectAction(rng *rand.Rand, state int) int {
	q.behaviour.SetEpsilon(q.config.Epsilon.At(q.epoch))
	return q.behaviour.SelectAction(rng, state)
}

// Observe updates the action value of (state, action)
func (q *QLearning) Observe(state, action, next int, reward float64) {
	_, numActions := q.q.Dims()
	index := state*numActions + action

	alpha := math.Pow(float64(q.visits[index]+1), -q.config.DecayExponent)
	target := reward + q.discount*q.q.V(next)
	value := (1-alpha)*q.q.At(state, action) + alpha*target
	q.q.Set(state, action, value)

	q.visits[index]++
	q.epoch++
}

// Clone clones the policy
func (q *QLearning) Clone() agent.Policy {
	clone := &QLearning{
		config:   q.config,
		epoch:    q.epoch,
		discount: q.discount,
	}
	if q.q != nil {
		clone.q = q.q.Clone()
		clone.behaviour = policy.NewEGreedy(q.behaviour.Epsilon(), clone.q)
		clone.visits = append([]int(nil), q.visits...)
	}
	return clone
}

// Config returns the configuration of the policy
func (q *QLearning) Config() agent.Config {
	return q.config
}

// Q returns the action values, or nil before initialization
func (q *QLearning) Q() *valuetable.Table {
	return q.q
}

// Epoch returns the number of updates performed
func (q *QLearning) Epoch() int {
	return q.epoch
}

// ParameterNames returns the names of the tunable parameters
func (q *QLearning) ParameterNames() []string {
	return []string{"DecayExponent"}
}

// Parameters returns the tunable parameters
func (q *QLearning) Parameters() []float64 {
	return []float64{q.config.DecayExponent}
}

// SetParameters sets the tunable parameters. The decay exponent is
// clipped to [0, 1].
func (q *QLearning) SetParameters(params []float64) error {
	if len(params) != 1 {
		return fmt.Errorf("setParameters: expected 1 parameter but got %d",
			len(params))
	}
	if math.IsNaN(params[0]) {
		return fmt.Errorf("setParameters: decay exponent cannot be NaN")
	}
	q.config.DecayExponent = floatutils.Clip(params[0], 0, 1)
	return nil
}

// ParameterSampler returns the uniform distribution over [0, 1]
func (q *QLearning) ParameterSampler() agent.ParameterSampler {
	return agent.ParameterSamplerFunc(func(rng *rand.Rand) []float64 {
		dist := distuv.Uniform{Min: 0, Max: 1, Src: rng}
		return []float64{dist.Rand()}
	})
}
