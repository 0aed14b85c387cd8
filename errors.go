package post

import "fmt"

// ConfigError reports a malformed mission configuration. It is always raised
// before any simulation runs.
type ConfigError struct {
	msg string
}

func (e ConfigError) Error() string {
	return "config: " + e.msg
}

func newConfigError(format string, args ...interface{}) ConfigError {
	return ConfigError{fmt.Sprintf(format, args...)}
}

// NewConfigError builds a ConfigError; used by callers wiring their own
// validation into the same exit-code path.
func NewConfigError(format string, args ...interface{}) ConfigError {
	return newConfigError(format, args...)
}

// NumericError reports a failure during integration: a non-finite derivative,
// an infeasible auto-throttle, or a bracketing search that could not close.
// It carries the phase index and the state at which the failure was detected.
type NumericError struct {
	Phase int
	State State
	msg   string
}

func (e NumericError) Error() string {
	return fmt.Sprintf("numeric: phase %d @ t=%.6f: %s", e.Phase, e.State.Time, e.msg)
}

func newNumericError(phase int, state State, format string, args ...interface{}) NumericError {
	return NumericError{phase, state, fmt.Sprintf(format, args...)}
}

// LimitReached reports that the max-step-count guard fired before the end
// criterion was met. Same exit status as NumericError, distinct message.
type LimitReached struct {
	Phase int
	Steps int
}

func (e LimitReached) Error() string {
	return fmt.Sprintf("phase %d did not terminate within %d steps", e.Phase, e.Steps)
}

// Cancelled reports a caller-triggered stop. It is not a failure.
type Cancelled struct {
	Phase int
}

func (e Cancelled) Error() string {
	return fmt.Sprintf("cancelled during phase %d", e.Phase)
}
