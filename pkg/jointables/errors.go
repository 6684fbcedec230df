package jointables

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := service.Join(ctx, cfg)
//	if errors.Is(err, jointables.ErrMissingColumn) {
//	    // Handle a table without the requested column
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates an input table does not exist or cannot be opened.
	ErrInputNotFound = errors.New("input table not found")

	// ErrMissingColumn indicates a feature or value column is absent from a table header.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidValue indicates a value cell could not be parsed as a number.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMalformedTable indicates a table could not be parsed as tab-separated text.
	ErrMalformedTable = errors.New("malformed table")

	// ErrOutputUnwritable indicates the output file could not be created or replaced.
	ErrOutputUnwritable = errors.New("output not writable")

	// ErrDuplicateSample indicates two inputs derive the same sample key.
	ErrDuplicateSample = errors.New("duplicate sample key")

	// ErrDuplicateFeature indicates a feature key occurs more than once within one input.
	ErrDuplicateFeature = errors.New("duplicate feature key")
)

// usageErrorPatterns are prefixes of the errors cobra and pflag return for
// command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"requires at least",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, ErrMissingColumn),
		errors.Is(err, ErrInvalidValue),
		errors.Is(err, ErrMalformedTable):
		return ExitInputInvalid
	case errors.Is(err, ErrOutputUnwritable):
		return ExitOutputUnwritable
	case errors.Is(err, ErrDuplicateSample), errors.Is(err, ErrDuplicateFeature):
		return ExitDuplicateRejected
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
