// Package policy implements ε-greedy action selection over tables of
// action values
package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/smallmdp/utils/floatutils"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// EGreedy implements an ε-greedy policy over a table of action values.
// With probability ε an action is chosen uniformly at random, otherwise
// a greedy action is chosen, with ties broken uniformly at random.
type EGreedy struct {
	table   *valuetable.Table
	epsilon float64
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected
func NewEGreedy(e float64, table *valuetable.Table) *EGreedy {
	return &EGreedy{table, e}
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(rng *rand.Rand, state int) int {
	greedyAction := p.table.Greedy(rng, state)
	epsilon := floatutils.Clip(p.epsilon, 0, 1)
	if !(epsilon > 0) {
		return greedyAction
	}

	// Calculate the ε probability of choosing any action at random
	_, numActions := p.table.Dims()
	prob := epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += 1.0 - epsilon

	dist := distuv.NewCategorical(actionProbabilities, rng)
	return int(dist.Rand())
}

// SetEpsilon sets the probability of selecting a random action
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetTable sets the table of action values the policy acts greedily
// with respect to
func (p *EGreedy) SetTable(table *valuetable.Table) {
	p.table = table
}
