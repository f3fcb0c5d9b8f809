package generation

import (
	"errors"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
)

// UserMessage converts an error from a Generator into text that is safe to
// show to the user. Raw transport details never reach the screen.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, ErrContentBlocked):
		return "The AI declined to answer that request. Try rephrasing it."
	case errors.Is(err, ErrMalformedGeneration):
		return "The AI returned an incomplete result. Try rephrasing or simplifying your input."
	case errors.Is(err, ErrEmptyResponse):
		return "The AI returned an empty response. Please try again."
	case errors.Is(err, ErrTransportFailure):
		return "Couldn't reach the AI. Please check your connection or API key and try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// validationMessage keeps the locally generated detail after the sentinel text.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrValidation.Error()+": "); i != -1 {
		detail := msg[i+len(domain.ErrValidation.Error())+2:]
		if detail != "" {
			return "Please check your input: " + detail + "."
		}
	}
	return "Please check your input and try again."
}
