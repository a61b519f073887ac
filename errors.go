package main

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by NewCostmap and Plan. Input errors are detected
// before the search starts; a search that runs out of open nodes is not an error.
var (
	// ErrInvalidInput is wrapped by every request-level validation failure.
	ErrInvalidInput = errors.New("planner: invalid input")

	// ErrMalformedGrid indicates grid metadata that does not describe the cost array.
	ErrMalformedGrid = errors.New("planner: malformed grid")

	ErrIndexOutOfRange = fmt.Errorf("%w: cell index out of range", ErrInvalidInput)
	ErrLethalEndpoint  = fmt.Errorf("%w: start or goal cell is lethal", ErrInvalidInput)
	ErrBadStepCost     = fmt.Errorf("%w: orthogonal step cost must be positive and finite", ErrInvalidInput)

	ErrCostOutOfRange = fmt.Errorf("%w: cell cost outside [0,255]", ErrMalformedGrid)
)
