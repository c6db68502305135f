package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // run exceeded -timeout
	ExitErrorMismatch = 3   // pivot strategies disagreed on a rank
	ExitErrorConfig   = 4   // bad flags, env values or ranks
	ExitErrorCanceled = 130 // SIGINT / SIGTERM
)

// ConfigError is returned for input the user has to fix before anything can
// run: a malformed flag, an unknown strategy, a rank past the end of the data.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats its arguments like fmt.Sprintf into a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SelectionError reports the failure of a selection job run with a given
// pivot strategy, keeping the original cause for errors.Is and errors.As.
type SelectionError struct {
	// Strategy is the name of the pivot strategy the job was using.
	Strategy string
	// Cause is the underlying error that stopped the job.
	Cause error
}

// Error returns the strategy name followed by the cause.
func (e SelectionError) Error() string {
	return fmt.Sprintf("selection with %s pivot failed: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e SelectionError) Unwrap() error { return e.Cause }

// TimeoutError is reported when the -timeout budget ran out during Operation.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError names the input field that was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// DimensionMismatchError signals that an array does not have the length a
// table requires.
type DimensionMismatchError struct {
	// Actual is the length that was found.
	Actual int
	// Expected is the length that was required.
	Expected int
}

// Error returns both lengths.
func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %d != %d", e.Actual, e.Expected)
}

// OutOfRangeError signals a value outside the interval accepted by an
// argument. Lo is exclusive and Hi inclusive.
type OutOfRangeError struct {
	// Value is the rejected argument.
	Value float64
	// Lo is the exclusive lower bound.
	Lo float64
	// Hi is the inclusive upper bound.
	Hi float64
}

// Error returns the value and the accepted interval.
func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %g not in (%g, %g]", e.Value, e.Lo, e.Hi)
}

// WrapError prefixes err with a formatted message, keeping err reachable
// through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
