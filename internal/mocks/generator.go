package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// Fn fields override the default responses when set
	ChatFn               func(ctx context.Context, req generation.ChatRequest) (*generation.ChatReply, error)
	GenerateQuizFn       func(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error)
	GenerateFlashcardsFn func(ctx context.Context, req generation.FlashcardRequest) ([]domain.Flashcard, error)
	GenerateStudyPlanFn  func(ctx context.Context, req generation.StudyPlanRequest) ([]domain.StudyTask, error)

	// Default response values
	Reply *generation.ChatReply
	Quiz  *domain.Quiz
	Cards []domain.Flashcard
	Plan  []domain.StudyTask
	Err   error

	// mu protects the recorded calls for concurrent test cases
	mu             sync.Mutex
	chatCalls      []generation.ChatRequest
	quizCalls      []generation.QuizRequest
	flashcardCalls []generation.FlashcardRequest
	studyPlanCalls []generation.StudyPlanRequest
}

var _ generation.Generator = (*MockGenerator)(nil)

// Chat implements the generation.Generator interface
func (m *MockGenerator) Chat(ctx context.Context, req generation.ChatRequest) (*generation.ChatReply, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, req)
	m.mu.Unlock()

	if m.ChatFn != nil {
		return m.ChatFn(ctx, req)
	}
	return m.Reply, m.Err
}

// GenerateQuiz implements the generation.Generator interface
func (m *MockGenerator) GenerateQuiz(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error) {
	m.mu.Lock()
	m.quizCalls = append(m.quizCalls, req)
	m.mu.Unlock()

	if m.GenerateQuizFn != nil {
		return m.GenerateQuizFn(ctx, req)
	}
	return m.Quiz, m.Err
}

// GenerateFlashcards implements the generation.Generator interface
func (m *MockGenerator) GenerateFlashcards(
	ctx context.Context,
	req generation.FlashcardRequest,
) ([]domain.Flashcard, error) {
	m.mu.Lock()
	m.flashcardCalls = append(m.flashcardCalls, req)
	m.mu.Unlock()

	if m.GenerateFlashcardsFn != nil {
		return m.GenerateFlashcardsFn(ctx, req)
	}
	return m.Cards, m.Err
}

// GenerateStudyPlan implements the generation.Generator interface
func (m *MockGenerator) GenerateStudyPlan(
	ctx context.Context,
	req generation.StudyPlanRequest,
) ([]domain.StudyTask, error) {
	m.mu.Lock()
	m.studyPlanCalls = append(m.studyPlanCalls, req)
	m.mu.Unlock()

	if m.GenerateStudyPlanFn != nil {
		return m.GenerateStudyPlanFn(ctx, req)
	}
	return m.Plan, m.Err
}

// ChatCalls returns the chat requests received so far.
func (m *MockGenerator) ChatCalls() []generation.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.ChatRequest(nil), m.chatCalls...)
}

// QuizCalls returns the quiz requests received so far.
func (m *MockGenerator) QuizCalls() []generation.QuizRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.QuizRequest(nil), m.quizCalls...)
}

// FlashcardCalls returns the flashcard requests received so far.
func (m *MockGenerator) FlashcardCalls() []generation.FlashcardRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.FlashcardRequest(nil), m.flashcardCalls...)
}

// StudyPlanCalls returns the study plan requests received so far.
func (m *MockGenerator) StudyPlanCalls() []generation.StudyPlanRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.StudyPlanRequest(nil), m.studyPlanCalls...)
}

// NewMockGeneratorWithError creates a MockGenerator whose every call fails with err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// NewMockGeneratorWithDefaults creates a MockGenerator with a short sample
// of every kind of result.
func NewMockGeneratorWithDefaults() *MockGenerator {
	return &MockGenerator{
		Reply: &generation.ChatReply{Text: "Photosynthesis turns light into chemical energy."},
		Quiz: &domain.Quiz{
			Title: "Photosynthesis",
			Questions: []domain.QuizQuestion{{
				Question:           "Which pigment absorbs light?",
				Options:            []string{"Chlorophyll", "Keratin"},
				CorrectAnswerIndex: 0,
				Explanation:        "Chlorophyll captures light energy.",
			}},
		},
		Cards: []domain.Flashcard{
			{Front: "Chloroplast", Back: "Organelle where photosynthesis happens"},
			{Front: "Stomata", Back: "Pores that let CO2 into the leaf"},
		},
		Plan: []domain.StudyTask{
			{Day: "Day 1", Topics: []string{"Light reactions"}, Duration: "2 hours"},
		},
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return NewMockGeneratorWithError(generation.ErrGenerationFailed)
}

// MockGeneratorWithTransportFailure creates a MockGenerator that simulates a network failure
func MockGeneratorWithTransportFailure() *MockGenerator {
	return NewMockGeneratorWithError(generation.Failure(generation.ErrTransportFailure, "connection refused"))
}

// MockGeneratorWithContentBlocked creates a MockGenerator that simulates content being blocked
func MockGeneratorWithContentBlocked() *MockGenerator {
	return NewMockGeneratorWithError(generation.Failure(generation.ErrContentBlocked, "safety"))
}

// Reset clears the recorded calls
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chatCalls = nil
	m.quizCalls = nil
	m.flashcardCalls = nil
	m.studyPlanCalls = nil
}
