package modelbased

import (
	"fmt"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/utils/floatutils"
)

func init() {
	agent.Register(agent.RMax, RMaxConfig{})
	agent.Register(agent.RTDPRMax, RTDPRMaxConfig{})
	agent.Register(agent.MBIEEB, MBIEEBConfig{})
}

// RMaxConfig represents a configuration of the RMax policy
type RMaxConfig struct {
	// M is the number of observations after which a pair is known
	M int
}

// CreatePolicy creates the policy described by the Config
func (c RMaxConfig) CreatePolicy() (agent.Policy, error) {
	return NewRMax(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c RMaxConfig) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*RMax)
	return ok
}

// Validate ensures that the Config is valid
func (c RMaxConfig) Validate() error {
	return validateM(c.M)
}

// Type returns the type of the policy constructed by the Config
func (c RMaxConfig) Type() agent.Type {
	return agent.RMax
}

func (c RMaxConfig) String() string {
	return fmt.Sprintf("RMax(m=%d)", c.M)
}

// RTDPRMaxConfig represents a configuration of the RTDPRMax policy
type RTDPRMaxConfig struct {
	// M is the number of observations after which a pair is known
	M int
}

// CreatePolicy creates the policy described by the Config
func (c RTDPRMaxConfig) CreatePolicy() (agent.Policy, error) {
	return NewRTDPRMax(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c RTDPRMaxConfig) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*RTDPRMax)
	return ok
}

// Validate ensures that the Config is valid
func (c RTDPRMaxConfig) Validate() error {
	return validateM(c.M)
}

// Type returns the type of the policy constructed by the Config
func (c RTDPRMaxConfig) Type() agent.Type {
	return agent.RTDPRMax
}

func (c RTDPRMaxConfig) String() string {
	return fmt.Sprintf("RTDPRMax(m=%d)", c.M)
}

func validateM(m int) error {
	if m < 1 {
		return fmt.Errorf("known threshold m must be positive but got %d",
			m)
	}
	return nil
}

// MBIEEBConfig represents a configuration of the MBIEEB policy
type MBIEEBConfig struct {
	// Beta scales the exploration bonus
	Beta float64
}

// CreatePolicy creates the policy described by the Config
func (c MBIEEBConfig) CreatePolicy() (agent.Policy, error) {
	return NewMBIEEB(c)
}

// ValidPolicy returns whether the argument policy is a valid policy for
// construction with the Config
func (c MBIEEBConfig) ValidPolicy(p agent.Policy) bool {
	_, ok := p.(*MBIEEB)
	return ok
}

// Validate ensures that the Config is valid
func (c MBIEEBConfig) Validate() error {
	if !floatutils.IsFinite(c.Beta) {
		return fmt.Errorf("beta must be finite")
	}
	return nil
}

// Type returns the type of the policy constructed by the Config
func (c MBIEEBConfig) Type() agent.Type {
	return agent.MBIEEB
}

func (c MBIEEBConfig) String() string {
	return fmt.Sprintf("MBIEEB(beta=%g)", c.Beta)
}
