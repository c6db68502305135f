package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the terminal escape sequences used when an error is
// reported. Implementations return empty strings to disable colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleError writes a user-facing message for err and returns the exit code
// that matches its class. A nil error returns ExitSuccess and writes nothing.
//
// Parameters:
//   - err: The error returned by a run.
//   - duration: How long the run lasted before failing; zero omits it.
//   - out: The writer receiving the message.
//   - colors: The color sequences to decorate the message with.
//
// Returns:
//   - int: The process exit code.
func HandleError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}

	var (
		configErr  ConfigError
		timeoutErr TimeoutError
	)
	switch {
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The run did not finish%s.%s\n", colors.Red(), suffix, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
		return ExitErrorCanceled
	default:
		fmt.Fprintf(out, "%sStatus: Failure. Error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
}
