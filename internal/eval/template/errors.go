package template

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHelper matches every MissingHelperError
	ErrMissingHelper = errors.New("missing helper")

	// ErrMaxDepth is returned when template nesting exceeds the engine limit
	ErrMaxDepth = errors.New("maximum template depth exceeded")

	// ErrTooManyDirectives is returned when a single string keeps producing
	// new directives, such as a variable whose value is the directive itself
	ErrTooManyDirectives = errors.New("too many directives in one string")

	// ErrTooManyIterations is returned when a helper is asked to produce more
	// elements than MaxIterations
	ErrTooManyIterations = errors.New("too many iterations")
)

// MissingHelperError reports a directive or nested call naming a helper that
// is not registered
type MissingHelperError struct {
	Name string
}

// Error implements error
func (e *MissingHelperError) Error() string {
	return fmt.Sprintf("missing helper: %s", e.Name)
}

// Is makes errors.Is(err, ErrMissingHelper) hold
func (e *MissingHelperError) Is(target error) bool {
	return target == ErrMissingHelper
}

// argError describes a helper argument of the wrong kind
func argError(call *Call, index int, want string, got interface{}) error {
	return fmt.Errorf("%s: argument %d: expected %s, got %s", call.Name, index+1, want, kindName(got))
}
