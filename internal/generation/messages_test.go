package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, UserMessage(nil))

	transport := Failure(ErrTransportFailure, "dial tcp: key=AIzaSecret")
	msg := UserMessage(transport)
	assert.Contains(t, msg, "Couldn't reach the AI")
	assert.NotContains(t, msg, "AIzaSecret")

	assert.Contains(t, UserMessage(Failure(ErrMalformedGeneration, "x")), "rephrasing or simplifying")
	assert.Contains(t, UserMessage(Failure(ErrEmptyResponse, "x")), "empty response")
	assert.Contains(t, UserMessage(Failure(ErrContentBlocked, "x")), "declined")
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(errors.New("boom")))

	validation := fmt.Errorf("%w: topic is required", domain.ErrValidation)
	assert.Equal(t, "Please check your input: topic is required.", UserMessage(validation))
}
