package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: bad or missing metadata, unknown settings
	ErrConfiguration    = errors.New("configuration error")
	ErrCatalogMissing   = fmt.Errorf("%w: column catalog not found", ErrConfiguration)
	ErrCatalogMalformed = fmt.Errorf("%w: column catalog malformed", ErrConfiguration)
	ErrUnknownFamily    = fmt.Errorf("%w: unknown distribution family", ErrConfiguration)

	// Input errors: bad directory, nothing left after filtering
	ErrInput            = errors.New("input error")
	ErrDirectoryMissing = fmt.Errorf("%w: data directory not found", ErrInput)
	ErrColumnMissing    = fmt.Errorf("%w: target column not in catalog", ErrInput)
	ErrEmptySample      = fmt.Errorf("%w: empty sample", ErrInput)

	// Fit errors: estimation or cache I/O failures
	ErrFit        = errors.New("fit error")
	ErrEstimation = fmt.Errorf("%w: parameter estimation failed", ErrFit)
	ErrCacheIO    = fmt.Errorf("%w: parameter cache I/O failed", ErrFit)
)

// Error constructors with context
func ConfigurationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func InputErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, args...))
}

func FitErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFit, fmt.Sprintf(format, args...))
}

func NewUnknownFamilyError(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnknownFamily, tag)
}

func NewEmptySampleError(cause string) error {
	return fmt.Errorf("%w: %s", ErrEmptySample, cause)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrInput)
}

func IsFitError(err error) bool {
	return errors.Is(err, ErrFit)
}
