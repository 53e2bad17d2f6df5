// Package mdpconfig provides configuration structs for configuring
// MDPs, either one of the benchmark MDPs, an MDP given by dense tables
// or randomly generated sparse MDPs. Configurations in this package are
// JSON and YAML serializable.
package mdpconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/smallmdp/mdp"
)

// Name stores the names of MDPs that can be configured with this
// package
type Name string

// MDPs available for configuration
const (
	Hallways  Name = "Hallways"
	Bandit    Name = "Bandit"
	LongChain Name = "LongChain"
	Generated Name = "Generated"
	Dense     Name = "Dense"
	Gridworld Name = "Gridworld"
)

// Config implements a configuration of an MDP. Which fields are used
// depends on the MDP:
//
//	MDP         Fields
//	Hallways    -
//	Bandit      -
//	LongChain   -
//	Generated   NumStates, NumActions, Discount, SuccessorsPerState,
//	            NonNullRewardProbability, Resample
//	Dense       Transitions, Rewards, RewardStdDev, Discount
//	Gridworld   Rows, Cols, Start, Goals, TimeStepReward, GoalReward,
//	            Discount
type Config struct {
	MDP Name `yaml:"mdp"`

	NumStates                int     `json:",omitempty" yaml:"numStates,omitempty"`
	NumActions               int     `json:",omitempty" yaml:"numActions,omitempty"`
	Discount                 float64 `json:",omitempty" yaml:"discount,omitempty"`
	SuccessorsPerState       int     `json:",omitempty" yaml:"successorsPerState,omitempty"`
	NonNullRewardProbability float64 `json:",omitempty" yaml:"nonNullRewardProbability,omitempty"`

	// Resample determines whether a new MDP is generated for each
	// rollout, rather than once for all rollouts
	Resample bool `json:",omitempty" yaml:"resample,omitempty"`

	// Transitions[s][a][s'] is the weight of moving to s' and
	// Rewards[s][a] the deterministic reward of taking a in s
	Transitions [][][]float64 `json:",omitempty" yaml:"transitions,omitempty"`
	Rewards     [][]float64   `json:",omitempty" yaml:"rewards,omitempty"`

	// RewardStdDev makes the rewards of a Dense MDP Gaussian with
	// means Rewards when positive
	RewardStdDev float64 `json:",omitempty" yaml:"rewardStdDev,omitempty"`

	Rows           int        `json:",omitempty" yaml:"rows,omitempty"`
	Cols           int        `json:",omitempty" yaml:"cols,omitempty"`
	Start          mdp.Cell   `json:",omitempty" yaml:"start,omitempty"`
	Goals          []mdp.Cell `json:",omitempty" yaml:"goals,omitempty"`
	TimeStepReward float64    `json:",omitempty" yaml:"timeStepReward,omitempty"`
	GoalReward     float64    `json:",omitempty" yaml:"goalReward,omitempty"`
}

// NewGenerated returns a new Config of generated sparse MDPs
func NewGenerated(numStates, numActions int, discount float64,
	successorsPerState int, nonNullRewardProbability float64,
	resample bool) Config {
	return Config{
		MDP:                      Generated,
		NumStates:                numStates,
		NumActions:               numActions,
		Discount:                 discount,
		SuccessorsPerState:       successorsPerState,
		NonNullRewardProbability: nonNullRewardProbability,
		Resample:                 resample,
	}
}

// Validate returns an error if the Config cannot describe an MDP
func (c Config) Validate() error {
	switch c.MDP {
	case Hallways, Bandit, LongChain:
		return nil

	case Generated:
		if c.NumStates <= 0 || c.NumActions <= 0 {
			return fmt.Errorf("validate: %w: %d states, %d actions",
				mdp.ErrShapeMismatch, c.NumStates, c.NumActions)
		}
		if c.SuccessorsPerState <= 0 || c.SuccessorsPerState > c.NumStates {
			return fmt.Errorf("validate: %w: %d successors per state",
				mdp.ErrShapeMismatch, c.SuccessorsPerState)
		}
		if p := c.NonNullRewardProbability; p < 0 || p > 1 {
			return fmt.Errorf("validate: non-null reward probability %v "+
				"not in [0, 1]", p)
		}
		return validateDiscount(c.Discount)

	case Gridworld:
		if c.Rows <= 0 || c.Cols <= 0 {
			return fmt.Errorf("validate: %w: %d rows, %d cols",
				mdp.ErrShapeMismatch, c.Rows, c.Cols)
		}
		return validateDiscount(c.Discount)

	case Dense:
		if len(c.Transitions) == 0 {
			return fmt.Errorf("validate: %w: no transitions",
				mdp.ErrShapeMismatch)
		}
		if !(c.RewardStdDev >= 0) || math.IsInf(c.RewardStdDev, 1) {
			return fmt.Errorf("validate: invalid reward standard "+
				"deviation %v", c.RewardStdDev)
		}
		return validateDiscount(c.Discount)
	}

	return fmt.Errorf("validate: no such MDP %q", c.MDP)
}

func validateDiscount(d float64) error {
	if d <= 0 || d > 1 {
		return fmt.Errorf("validate: %w: %v", mdp.ErrDiscount, d)
	}
	return nil
}

// Create returns the MDP described by the Config. Generated MDPs are
// drawn from rng.
func (c Config) Create(rng *rand.Rand) (mdp.MDP, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	switch c.MDP {
	case Hallways:
		return mdp.NewHallways(), nil

	case Bandit:
		return mdp.NewBandit(), nil

	case LongChain:
		return mdp.NewLongChain(), nil

	case Generated:
		return mdp.NewGeneratedSparse(rng, c.NumStates, c.NumActions,
			c.Discount, c.SuccessorsPerState, c.NonNullRewardProbability)

	case Gridworld:
		return mdp.NewGridworld(mdp.Gridworld{
			Rows:           c.Rows,
			Cols:           c.Cols,
			Start:          c.Start,
			Goals:          c.Goals,
			TimeStepReward: c.TimeStepReward,
			GoalReward:     c.GoalReward,
			Discount:       c.Discount,
		})
	}

	if c.RewardStdDev > 0 {
		return mdp.NewDenseGaussian(c.Transitions, c.Rewards,
			c.RewardStdDev, c.Discount)
	}
	return mdp.NewDense(c.Transitions, c.Rewards, c.Discount)
}

// Sample implements the mdp.Sampler interface, creating a new MDP on
// each call
func (c Config) Sample(rng *rand.Rand) (mdp.MDP, error) {
	return c.Create(rng)
}

// Sampler returns the Sampler of MDPs that rollouts should be run on.
// If the Config describes generated MDPs with Resample set, each
// rollout samples its own MDP. Otherwise a single MDP is created using
// rng and shared by all rollouts.
func (c Config) Sampler(rng *rand.Rand) (mdp.Sampler, error) {
	if c.MDP == Generated && c.Resample {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("sampler: %w", err)
		}
		return mdp.GeneratedSparse{
			NumStates:                c.NumStates,
			NumActions:               c.NumActions,
			Discount:                 c.Discount,
			SuccessorsPerState:       c.SuccessorsPerState,
			NonNullRewardProbability: c.NonNullRewardProbability,
		}, nil
	}

	m, err := c.Create(rng)
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	return mdp.Fixed{MDP: m}, nil
}

func (c Config) String() string {
	switch c.MDP {
	case Generated:
		return fmt.Sprintf("Generated(S=%d,A=%d,discount=%g,successors=%d,"+
			"p=%g,resample=%v)", c.NumStates, c.NumActions, c.Discount,
			c.SuccessorsPerState, c.NonNullRewardProbability, c.Resample)
	case Dense:
		return fmt.Sprintf("Dense(S=%d,discount=%g)", len(c.Transitions),
			c.Discount)
	case Gridworld:
		return fmt.Sprintf("Gridworld(%dx%d,goals=%v,discount=%g)", c.Rows,
			c.Cols, c.Goals, c.Discount)
	}
	return string(c.MDP)
}

// Load reads a Config from a file. Files with a .yaml or .yml extension
// are read as YAML, all others as JSON.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}

	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read %v: %v", path,
			err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}
