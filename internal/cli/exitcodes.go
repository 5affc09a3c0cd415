package cli

import (
	"errors"

	"github.com/yaklabco/gomdmark/pkg/runner"
)

// Error classes used to pick the process exit code.
var (
	// ErrParseFailed is returned when at least one input could not be parsed.
	ErrParseFailed = errors.New("some inputs could not be parsed")

	// ErrConfig marks errors caused by configuration.
	ErrConfig = errors.New("configuration error")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrIO marks failures reading input or writing output.
	ErrIO = errors.New("i/o error")
)

// Exit codes for gomdmark.
const (
	// ExitSuccess indicates every input was parsed.
	ExitSuccess = 0

	// ExitParseErrors indicates the run completed but some inputs failed.
	ExitParseErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitParseErrors
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseFailed):
		return ExitParseErrors
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
