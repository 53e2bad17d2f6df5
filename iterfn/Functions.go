package iterfn

import (
	"fmt"
	"math"
)

// ConstantConfig implements a configuration of an iteration function
// which always returns the same value
type ConstantConfig struct {
	Value float64
}

// NewConstant returns a new constant iteration function
func NewConstant(value float64) (IterFn, error) {
	return newIterFn(ConstantConfig{value})
}

// At returns the constant value
func (c ConstantConfig) At(int) float64 {
	return c.Value
}

// Validate returns an error if the configuration is invalid
func (c ConstantConfig) Validate() error {
	if math.IsNaN(c.Value) {
		return fmt.Errorf("validate: value cannot be NaN")
	}
	return nil
}

// Range returns the constant value as both bounds
func (c ConstantConfig) Range() (min, max float64) {
	return c.Value, c.Value
}

// Type returns the type of iteration function described by the config
func (c ConstantConfig) Type() Type {
	return Constant
}

// InverseLinearConfig implements a configuration of an iteration
// function which decays as
//
//	Initial · HalfLife / (HalfLife + iteration)
//
// so that the value halves after HalfLife iterations.
type InverseLinearConfig struct {
	Initial  float64
	HalfLife float64
}

// NewInverseLinear returns a new inverse linear iteration function
func NewInverseLinear(initial, halfLife float64) (IterFn, error) {
	return newIterFn(InverseLinearConfig{Initial: initial,
		HalfLife: halfLife})
}

// At returns the value at iteration
func (i InverseLinearConfig) At(iteration int) float64 {
	return i.Initial * i.HalfLife / (i.HalfLife + float64(iteration))
}

// Validate returns an error if the configuration is invalid
func (i InverseLinearConfig) Validate() error {
	if i.HalfLife <= 0 {
		return fmt.Errorf("validate: half life must be positive")
	}
	return nil
}

// Range returns the bounds of the values, which decay from Initial
// towards 0
func (i InverseLinearConfig) Range() (min, max float64) {
	return math.Min(0, i.Initial), math.Max(0, i.Initial)
}

// Type returns the type of iteration function described by the config
func (i InverseLinearConfig) Type() Type {
	return InverseLinear
}

// ExponentialConfig implements a configuration of an iteration
// function which decays as Initial · Rate^iteration, never falling
// below Min
type ExponentialConfig struct {
	Initial float64
	Rate    float64
	Min     float64
}

// NewExponential returns a new exponentially decaying iteration
// function
func NewExponential(initial, rate, min float64) (IterFn, error) {
	return newIterFn(ExponentialConfig{Initial: initial, Rate: rate,
		Min: min})
}

// At returns the value at iteration
func (e ExponentialConfig) At(iteration int) float64 {
	return math.Max(e.Min, e.Initial*math.Pow(e.Rate, float64(iteration)))
}

// Validate returns an error if the configuration is invalid
func (e ExponentialConfig) Validate() error {
	if e.Rate <= 0 || e.Rate > 1 {
		return fmt.Errorf("validate: rate %v not in (0, 1]", e.Rate)
	}
	return nil
}

// Range returns the bounds of the values, which decay from Initial
// towards 0 but never fall below Min
func (e ExponentialConfig) Range() (min, max float64) {
	return math.Max(e.Min, math.Min(0, e.Initial)),
		math.Max(e.Min, math.Max(0, e.Initial))
}

// Type returns the type of iteration function described by the config
func (e ExponentialConfig) Type() Type {
	return Exponential
}
