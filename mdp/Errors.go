package mdp

import "errors"

// Errors returned when constructing or validating malformed MDPs
var (
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrZeroWeight     = errors.New("transition weights sum to zero")
	ErrNegativeWeight = errors.New("negative transition weight")
	ErrInvalidWeight  = errors.New("non-finite transition weight")
	ErrNoTransitions  = errors.New("no transitions")
	ErrDiscount       = errors.New("discount must be in (0, 1]")
)
