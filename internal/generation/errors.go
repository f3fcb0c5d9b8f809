package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package.
//
// Every remote failure wraps ErrGenerationFailed together with exactly one of
// ErrTransportFailure, ErrEmptyResponse, ErrMalformedGeneration or
// ErrContentBlocked, so callers can test for either the umbrella or the kind.
var (
	// ErrGenerationFailed is the umbrella for any failed generation call
	ErrGenerationFailed = errors.New("generation failed")

	// ErrTransportFailure is returned when the model API could not be reached
	// or answered with a network, auth or server error
	ErrTransportFailure = errors.New("could not reach the language model")

	// ErrEmptyResponse is returned when the call succeeded but carried no usable text
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrMalformedGeneration is returned when the structured payload does not
	// match the declared shape
	ErrMalformedGeneration = errors.New("malformed response from language model")

	// ErrContentBlocked is returned when the model declines to answer
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Failure wraps kind and ErrGenerationFailed around a formatted detail message.
func Failure(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrGenerationFailed, kind, fmt.Sprintf(format, args...))
}

// IsTransient reports whether err is worth retrying. Only transport failures are.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransportFailure)
}
