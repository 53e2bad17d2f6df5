// Package iterfn implements iteration functions, schedules which map
// the iteration number of some process to a value, for example the
// exploration rate of an ε-greedy policy. Iteration functions are
// wrapped so that they can be JSON serialized into configuration files.
package iterfn

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type describes different types of IterFn that are available.
// Type is used to implement a basic type system of IterFn's.
type Type string

// Available IterFn types
const (
	Constant      Type = "Constant"
	InverseLinear Type = "InverseLinear"
	Exponential   Type = "Exponential"
)

// Config implements an iteration function configuration, which
// computes the values of the iteration function it describes
type Config interface {
	// At returns the value of the iteration function at iteration
	// iteration >= 0
	At(iteration int) float64

	// Validate returns an error if the configuration is invalid
	Validate() error

	// Range returns bounds which contain every value of the iteration
	// function
	Range() (min, max float64)

	// Type returns the type of the iteration function
	Type() Type
}

// IterFn wraps an iteration function Config so that it can be JSON
// marshalled and unmarshalled.
type IterFn struct {
	Type
	Config
}

// newIterFn returns a new IterFn
func newIterFn(c Config) (IterFn, error) {
	if err := c.Validate(); err != nil {
		return IterFn{}, fmt.Errorf("newIterFn: %v", err)
	}
	return IterFn{Type: c.Type(), Config: c}, nil
}

// Valid returns an error if the IterFn wraps no Config or an invalid
// one
func (i IterFn) Valid() error {
	if i.Config == nil {
		return fmt.Errorf("valid: no iteration function")
	}
	return i.Config.Validate()
}

// String implements the fmt.Stringer interface
func (i IterFn) String() string {
	return fmt.Sprintf("%v%v", i.Type, i.Config)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (i *IterFn) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(
		data,
		"Type",
		"Config",
		map[Type]reflect.Type{
			Constant:      reflect.TypeOf(ConstantConfig{}),
			InverseLinear: reflect.TypeOf(InverseLinearConfig{}),
			Exponential:   reflect.TypeOf(ExponentialConfig{}),
		})
	if err != nil {
		return err
	}

	i.Type = typeName
	i.Config = config

	return nil
}

// unmarshalConfig uses reflection to unmarshal a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(data []byte, typeJSONField, valueJSONField string,
	customTypes map[Type]reflect.Type) (Config, Type, error) {
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", err
	}

	var typeName Type
	if err := json.Unmarshal(m[typeJSONField], &typeName); err != nil {
		return nil, "", fmt.Errorf("unmarshalConfig: could not read "+
			"type: %v", err)
	}

	ty, found := customTypes[typeName]
	if !found {
		return nil, "", fmt.Errorf("unmarshalConfig: unknown iteration "+
			"function type %q", typeName)
	}
	value := reflect.New(ty)

	if raw, ok := m[valueJSONField]; ok {
		if err := json.Unmarshal(raw, value.Interface()); err != nil {
			return nil, "", err
		}
	}
	concreteValue := value.Elem().Interface().(Config)

	return concreteValue, typeName, nil
}
