package generation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/phrazzld/examaid/internal/domain"
)

// Bounds for study plan requests.
const (
	MinPlanDays        = 1
	MaxPlanDays        = 30
	MinPlanHoursPerDay = 1
	MaxPlanHoursPerDay = 12
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects whitespace-only strings, which "required" lets through
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ChatRequest is one tutoring turn.
type ChatRequest struct {
	// History holds the prior turns, oldest first. Fallback messages are skipped
	// when the history is replayed to the model.
	History []domain.ChatMessage

	// Text is the new user message. It may be empty when Attachment is set.
	Text string

	// Attachment is an optional inline image for the new turn.
	Attachment *domain.Attachment
}

// Validate checks that the turn carries text or an attachment.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" && r.Attachment == nil {
		return fmt.Errorf("%w: message text or an attachment is required", domain.ErrValidation)
	}
	if r.Attachment != nil {
		if err := r.Attachment.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}
	return nil
}

// ReplayableHistory returns the history without locally produced fallback messages.
func (r ChatRequest) ReplayableHistory() []domain.ChatMessage {
	turns := make([]domain.ChatMessage, 0, len(r.History))
	for _, msg := range r.History {
		if msg.Fallback {
			continue
		}
		turns = append(turns, msg)
	}
	return turns
}

// QuizRequest asks for a multiple-choice quiz.
type QuizRequest struct {
	Topic      string            `validate:"notblank"`
	Difficulty domain.Difficulty `validate:"required,oneof=Beginner Intermediate Advanced"`
}

// Validate checks the request before any network call.
func (r QuizRequest) Validate() error {
	return validateStruct(r)
}

// FlashcardRequest asks for a flashcard set. SourceText may be a topic name
// or pasted notes.
type FlashcardRequest struct {
	SourceText string `validate:"notblank"`
}

// Validate checks the request before any network call.
func (r FlashcardRequest) Validate() error {
	return validateStruct(r)
}

// StudyPlanRequest asks for a day-by-day plan.
type StudyPlanRequest struct {
	Subject     string `validate:"notblank"`
	Days        int    `validate:"min=1,max=30"`
	HoursPerDay int    `validate:"min=1,max=12"`
}

// Validate checks the request before any network call.
func (r StudyPlanRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "notblank", "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
