package agent

import (
	"fmt"
	"reflect"
	"sort"
)

// Type represents a specific type of a policy Config.
// Config's with this type can create Policies of the corresponding type.
type Type string

const (
	// Baselines
	Optimal Type = "Optimal-Tabular"
	Random  Type = "Random-Tabular"

	// Model-free methods
	EGreedyQLearning Type = "EGreedyQLearning-Tabular"

	// Model-based methods
	RMax     Type = "RMax-Tabular"
	RTDPRMax Type = "RTDPRMax-Tabular"
	MBIEEB   Type = "MBIEEB-Tabular"

	// Formula-driven methods
	Formula           Type = "Formula-Tabular"
	FormulaModelBased Type = "FormulaModelBased-Tabular"
	Expression        Type = "Expression-Tabular"
)

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig with that type can be created.
//
// No Type's are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]reflect.Type

func init() {
	registeredTypes = make(map[Type]reflect.Type)
}

// Register registers a policy's Type with a concrete Config type so
// that upon deserialization of a TypedConfig, Configs of type
// policyType are deserialized into the concrete type of config.
//
// Register panics if policyType is registered twice.
func Register(policyType Type, config Config) {
	if _, ok := registeredTypes[policyType]; ok {
		panic(fmt.Sprintf("register: type %v registered twice", policyType))
	}
	registeredTypes[policyType] = reflect.TypeOf(config)
}

// Registered returns all registered Types in sorted order
func Registered() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
