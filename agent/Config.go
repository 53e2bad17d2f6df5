package agent

import (
	"fmt"
	"regexp"
	"strings"
)

// Config represents a configuration for creating a policy
type Config interface {
	// CreatePolicy creates the policy that the config describes
	CreatePolicy() (Policy, error)

	// ValidPolicy returns whether the argument policy is valid for the
	// Config
	ValidPolicy(Policy) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the Type of policy created by the Config
	Type() Type

	// String returns a short description of the policy, which is
	// unique among policies of the same type with different settings
	fmt.Stringer
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._=-]+`)

// ShortName returns the description of a Config with every run of
// characters that are not safe in file names replaced by a single
// underscore
func ShortName(c Config) string {
	return strings.Trim(unsafeChars.ReplaceAllString(c.String(), "_"), "_")
}

// Create validates a Config and creates its policy
func Create(c Config) (Policy, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: invalid config %v: %v", c, err)
	}
	return c.CreatePolicy()
}
