package nn

import "errors"

// Common errors.
var (
	// ErrInvalidArgument is returned for the argument mistakes the engine
	// checks for: a negative learning rate, and class indices outside
	// [0, numClasses). Shape mismatches are unchecked preconditions and
	// panic instead; numerical degeneracies propagate as IEEE special
	// values, never as errors.
	ErrInvalidArgument = errors.New("invalid argument")
)
