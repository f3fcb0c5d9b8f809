package generation

import (
	"context"

	"github.com/phrazzld/examaid/internal/domain"
)

// Generator defines the interface for all model-backed generation.
// This interface serves as a boundary between the study sessions and
// external AI/LLM services.
//
// Implementations validate the request before any network call, declare the
// expected output shape to the model, and return either a fully validated
// domain value or an error wrapping ErrGenerationFailed or domain.ErrValidation.
// All methods are safe for concurrent use and keep no state between calls.
type Generator interface {
	// Chat sends a tutoring turn, replaying the history as prior turns.
	Chat(ctx context.Context, req ChatRequest) (*ChatReply, error)

	// GenerateQuiz creates a multiple-choice quiz on a topic.
	GenerateQuiz(ctx context.Context, req QuizRequest) (*domain.Quiz, error)

	// GenerateFlashcards creates a flashcard set from a topic or pasted notes.
	GenerateFlashcards(ctx context.Context, req FlashcardRequest) ([]domain.Flashcard, error)

	// GenerateStudyPlan creates one StudyTask per requested day.
	GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) ([]domain.StudyTask, error)
}

// ChatReply is the model's answer to a chat turn.
type ChatReply struct {
	Text    string
	Sources []domain.Source
}
