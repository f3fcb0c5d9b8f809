package generation_test

import (
	"errors"
	"testing"

	"github.com/phrazzld/examaid/internal/generation"
	"github.com/stretchr/testify/assert"
)

// Test that every failure kind is reachable through the umbrella error
func TestFailureWrapping(t *testing.T) {
	t.Parallel()

	kinds := []error{
		generation.ErrTransportFailure,
		generation.ErrEmptyResponse,
		generation.ErrMalformedGeneration,
		generation.ErrContentBlocked,
	}

	for _, kind := range kinds {
		err := generation.Failure(kind, "detail %d", 42)
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.ErrorIs(t, err, kind)
		assert.Contains(t, err.Error(), "detail 42")
	}
}

// Test that error types are distinct
func TestErrorTypes(t *testing.T) {
	t.Parallel()

	errTypes := []error{
		generation.ErrGenerationFailed,
		generation.ErrTransportFailure,
		generation.ErrEmptyResponse,
		generation.ErrMalformedGeneration,
		generation.ErrContentBlocked,
		generation.ErrInvalidConfig,
	}

	for i, err1 := range errTypes {
		for j, err2 := range errTypes {
			if i != j {
				assert.False(t, errors.Is(err1, err2), "Errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, generation.IsTransient(generation.Failure(generation.ErrTransportFailure, "timeout")))
	assert.False(t, generation.IsTransient(generation.Failure(generation.ErrMalformedGeneration, "bad json")))
	assert.False(t, generation.IsTransient(generation.Failure(generation.ErrContentBlocked, "safety")))
}
