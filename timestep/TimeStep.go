// Package timestep implements timesteps of the policy-MDP interaction
package timestep

import (
	"fmt"
	"math"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes why an episode ended
type EndType int

const (
	Unended EndType = iota
	TerminalStateReached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unended"
	}
}

// TimeStep packages together a single timestep of a rollout. State is
// the state entered at this step, and Action and Reward are the action
// taken in the previous state and the reward received for it. On the
// first step Action is -1 and Reward is 0.
type TimeStep struct {
	StepType StepType
	Reward   float64
	Discount float64
	State    int
	Action   int
	Number   int

	endType EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, state, action, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, State: state,
		Action: action, Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason for which the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the reason for which the episode ended
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// DiscountedReward returns γ^(Number-1) · Reward, the contribution of this
// step's reward to the discounted return of the episode. The reward of
// step n was received for the action taken at time n-1.
func (t *TimeStep) DiscountedReward() float64 {
	if t.Number == 0 {
		return 0
	}
	return math.Pow(t.Discount, float64(t.Number-1)) * t.Reward
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  State: %d  |  Reward:  %.2f  |  " +
		"Discount: %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.State, t.Reward, t.Discount,
		t.Number)
}
