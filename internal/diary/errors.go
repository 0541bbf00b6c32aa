package diary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProfileMissing signals a diary command issued before profile setup.
var ErrProfileMissing = errors.New("profile not set")

// ValidationError reports a malformed or missing numeric argument.
// Field names the value being asked for so prompts can reference it.
type ValidationError struct {
	Field string
	Hint  string
}

func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Hint)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// Code implements the error code contract used by handler logging.
func (e *ValidationError) Code() string { return "VALIDATION" }

// LookupError wraps a failed call to an external data provider.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Code implements the error code contract used by handler logging.
func (e *LookupError) Code() string { return "LOOKUP" }

// UnknownWorkoutError reports a workout type outside the rate table.
type UnknownWorkoutError struct {
	Type string
}

func (e *UnknownWorkoutError) Error() string {
	return fmt.Sprintf("unknown workout type %q; valid types: %s", e.Type, strings.Join(WorkoutTypes(), ", "))
}

// Code implements the error code contract used by handler logging.
func (e *UnknownWorkoutError) Code() string { return "UNKNOWN_WORKOUT" }
