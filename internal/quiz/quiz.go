// Package quiz implements the quiz-taking state machine:
// Idle → Loading → InProgress → Completed, with Reset back to Idle from any state.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/session"
)

// State is the phase of a quiz session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Errors returned by session operations.
var (
	// ErrWrongState is returned when an operation is not allowed in the current state
	ErrWrongState = errors.New("operation not allowed in the current quiz state")

	// ErrInvalidOption is returned for an option index outside the question's options
	ErrInvalidOption = errors.New("option index out of range")
)

// Generator is the part of generation.Generator a quiz session needs.
type Generator interface {
	GenerateQuiz(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error)
}

const noSelection = -1

// Session holds one user's quiz. It is not safe for concurrent use.
type Session struct {
	gen    Generator
	logger *slog.Logger
	guard  session.Guard

	state      State
	topic      string
	difficulty domain.Difficulty
	errMsg     string

	quiz             *domain.Quiz
	index            int
	score            int
	selected         int
	explanationShown bool
}

// NewSession creates an idle session at the default difficulty.
func NewSession(gen Generator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gen:        gen,
		logger:     logger,
		difficulty: domain.DefaultDifficulty,
		selected:   noSelection,
	}
}

// SetTopic changes the topic. Only allowed while idle.
func (s *Session) SetTopic(topic string) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: cannot change topic while %s", ErrWrongState, s.state)
	}
	s.topic = topic
	return nil
}

// SetDifficulty changes the level. Only allowed while idle.
func (s *Session) SetDifficulty(d domain.Difficulty) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: cannot change difficulty while %s", ErrWrongState, s.state)
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDifficulty, d)
	}
	s.difficulty = d
	return nil
}

// BeginGenerate validates the inputs and moves to Loading. The returned
// ticket must be passed to CompleteGenerate with the generator's result.
func (s *Session) BeginGenerate() (session.Ticket, generation.QuizRequest, error) {
	if s.state != StateIdle {
		return session.Ticket{}, generation.QuizRequest{}, fmt.Errorf("%w: cannot generate while %s", ErrWrongState, s.state)
	}

	req := generation.QuizRequest{Topic: strings.TrimSpace(s.topic), Difficulty: s.difficulty}
	if err := req.Validate(); err != nil {
		s.errMsg = generation.UserMessage(err)
		return session.Ticket{}, req, err
	}

	ticket, err := s.guard.Begin()
	if err != nil {
		return session.Ticket{}, req, err
	}

	s.state = StateLoading
	s.errMsg = ""
	return ticket, req, nil
}

// CompleteGenerate applies a generation result. It reports false, changing
// nothing, when the ticket was superseded by Reset or already completed.
func (s *Session) CompleteGenerate(ctx context.Context, ticket session.Ticket, quiz *domain.Quiz, err error) bool {
	if !s.guard.Finish(ticket) {
		s.logger.DebugContext(ctx, "Dropping stale quiz result")
		return false
	}

	if err == nil && quiz == nil {
		err = generation.Failure(generation.ErrEmptyResponse, "no quiz returned")
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Quiz generation failed", "topic", s.topic, "error", err)
		s.state = StateIdle
		s.errMsg = generation.UserMessage(err)
		return true
	}

	s.quiz = quiz
	s.index = 0
	s.score = 0
	s.selected = noSelection
	s.explanationShown = false
	s.state = StateInProgress

	s.logger.InfoContext(ctx, "Quiz started",
		"question_count", quiz.Len(),
		"difficulty", s.difficulty.String())
	return true
}

// Generate runs a full generation round trip.
func (s *Session) Generate(ctx context.Context) error {
	ticket, req, err := s.BeginGenerate()
	if err != nil {
		return err
	}
	quiz, genErr := s.gen.GenerateQuiz(ctx, req)
	s.CompleteGenerate(ctx, ticket, quiz, genErr)
	return genErr
}

// SelectOption answers the current question. Selecting again after an
// answer is a no-op.
func (s *Session) SelectOption(i int) error {
	if s.state != StateInProgress {
		return fmt.Errorf("%w: no question to answer while %s", ErrWrongState, s.state)
	}
	if s.selected != noSelection {
		return nil
	}

	q := s.quiz.Questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("%w: %d (question has %d options)", ErrInvalidOption, i, len(q.Options))
	}

	s.selected = i
	s.explanationShown = true
	if q.IsCorrect(i) {
		s.score++
	}
	return nil
}

// Advance moves past an answered question, completing the quiz after the last one.
func (s *Session) Advance() error {
	if s.state != StateInProgress || !s.explanationShown {
		return fmt.Errorf("%w: answer the current question first", ErrWrongState)
	}

	if s.index == s.quiz.Len()-1 {
		s.state = StateCompleted
		return nil
	}
	s.index++
	s.selected = noSelection
	s.explanationShown = false
	return nil
}

// Reset returns to Idle from any state and drops any in-flight generation.
// The difficulty is kept.
func (s *Session) Reset() {
	s.guard.Invalidate()
	s.state = StateIdle
	s.topic = ""
	s.errMsg = ""
	s.quiz = nil
	s.index = 0
	s.score = 0
	s.selected = noSelection
	s.explanationShown = false
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	State      State
	Topic      string
	Difficulty domain.Difficulty
	// Error is the user-safe message of the last failed generation.
	Error string

	Title            string
	Index            int
	Total            int
	Score            int
	Question         *domain.QuizQuestion
	Selected         int
	HasSelection     bool
	ExplanationShown bool
	Percent          int
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:            s.state,
		Topic:            s.topic,
		Difficulty:       s.difficulty,
		Error:            s.errMsg,
		Index:            s.index,
		Score:            s.score,
		Selected:         s.selected,
		HasSelection:     s.selected != noSelection,
		ExplanationShown: s.explanationShown,
	}
	if s.quiz != nil {
		snap.Title = s.quiz.Title
		snap.Total = s.quiz.Len()
		q := s.quiz.Questions[s.index]
		snap.Question = &q
		snap.Percent = domain.ScorePercent(s.score, snap.Total)
	}
	return snap
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}
