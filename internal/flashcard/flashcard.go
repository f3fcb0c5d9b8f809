// Package flashcard implements flashcard review in two presentation modes.
// Carousel shows one card at a time; grid shows every card and flips them
// independently.
package flashcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/session"
)

// Mode selects how cards are presented.
type Mode string

const (
	ModeCarousel Mode = "carousel"
	ModeGrid     Mode = "grid"
)

// ParseMode accepts the configured mode names.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case ModeCarousel, ModeGrid:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown flashcard mode %q", domain.ErrValidation, name)
	}
}

// State is the phase of a flashcard session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateViewing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateViewing:
		return "viewing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrWrongState is returned when an operation is not allowed in the current state
	ErrWrongState = errors.New("operation not allowed in the current flashcard state")

	// ErrInvalidCard is returned for a card index outside the set
	ErrInvalidCard = errors.New("card index out of range")
)

// Generator is the part of generation.Generator a flashcard session needs.
type Generator interface {
	GenerateFlashcards(ctx context.Context, req generation.FlashcardRequest) ([]domain.Flashcard, error)
}

// Session holds one flashcard set under review. It is not safe for concurrent use.
type Session struct {
	gen    Generator
	logger *slog.Logger
	guard  session.Guard

	mode   Mode
	state  State
	input  string
	errMsg string
	cards  []domain.Flashcard

	// carousel
	index   int
	flipped bool

	// grid
	flippedSet map[int]bool
}

// NewSession creates an idle session in the given mode.
func NewSession(gen Generator, mode Mode, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if mode != ModeGrid {
		mode = ModeCarousel
	}
	return &Session{
		gen:        gen,
		logger:     logger,
		mode:       mode,
		flippedSet: make(map[int]bool),
	}
}

// SetInput sets the topic or notes to generate from. Only allowed while idle.
func (s *Session) SetInput(text string) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: cannot change input while %s", ErrWrongState, s.state)
	}
	s.input = text
	return nil
}

// SetMode switches presentation mode. Only allowed while idle.
func (s *Session) SetMode(mode Mode) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: cannot switch mode while %s", ErrWrongState, s.state)
	}
	if mode != ModeCarousel && mode != ModeGrid {
		return fmt.Errorf("%w: unknown flashcard mode %q", domain.ErrValidation, mode)
	}
	s.mode = mode
	return nil
}

// BeginGenerate validates the input and moves to Loading.
func (s *Session) BeginGenerate() (session.Ticket, generation.FlashcardRequest, error) {
	if s.state != StateIdle {
		return session.Ticket{}, generation.FlashcardRequest{}, fmt.Errorf("%w: cannot generate while %s", ErrWrongState, s.state)
	}

	req := generation.FlashcardRequest{SourceText: strings.TrimSpace(s.input)}
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

// CompleteGenerate applies a generation result unless Reset superseded it.
func (s *Session) CompleteGenerate(ctx context.Context, ticket session.Ticket, cards []domain.Flashcard, err error) bool {
	if !s.guard.Finish(ticket) {
		s.logger.DebugContext(ctx, "Dropping stale flashcard result")
		return false
	}

	if err == nil && len(cards) == 0 {
		err = generation.Failure(generation.ErrEmptyResponse, "no flashcards returned")
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Flashcard generation failed", "error", err)
		s.state = StateIdle
		s.errMsg = generation.UserMessage(err)
		return true
	}

	s.cards = cards
	s.clearView()
	s.state = StateViewing
	s.logger.InfoContext(ctx, "Flashcards ready", "card_count", len(cards), "mode", string(s.mode))
	return true
}

// Generate runs a full generation round trip.
func (s *Session) Generate(ctx context.Context) error {
	ticket, req, err := s.BeginGenerate()
	if err != nil {
		return err
	}
	cards, genErr := s.gen.GenerateFlashcards(ctx, req)
	s.CompleteGenerate(ctx, ticket, cards, genErr)
	return genErr
}

// Flip toggles the current carousel card.
func (s *Session) Flip() error {
	if err := s.requireViewing(ModeCarousel); err != nil {
		return err
	}
	s.flipped = !s.flipped
	return nil
}

// Next moves to the following card, front side up. It is a no-op on the last card.
func (s *Session) Next() error {
	if err := s.requireViewing(ModeCarousel); err != nil {
		return err
	}
	if s.index < len(s.cards)-1 {
		s.flipped = false
		s.index++
	}
	return nil
}

// Prev moves to the preceding card, front side up. It is a no-op on the first card.
func (s *Session) Prev() error {
	if err := s.requireViewing(ModeCarousel); err != nil {
		return err
	}
	if s.index > 0 {
		s.flipped = false
		s.index--
	}
	return nil
}

// ToggleFlip flips grid card i.
func (s *Session) ToggleFlip(i int) error {
	if err := s.requireViewing(ModeGrid); err != nil {
		return err
	}
	if i < 0 || i >= len(s.cards) {
		return fmt.Errorf("%w: %d (set has %d cards)", ErrInvalidCard, i, len(s.cards))
	}
	if s.flippedSet[i] {
		delete(s.flippedSet, i)
	} else {
		s.flippedSet[i] = true
	}
	return nil
}

// Reset returns to Idle and drops any in-flight generation. The input and
// mode are kept.
func (s *Session) Reset() {
	s.guard.Invalidate()
	s.state = StateIdle
	s.errMsg = ""
	s.cards = nil
	s.clearView()
}

func (s *Session) clearView() {
	s.index = 0
	s.flipped = false
	s.flippedSet = make(map[int]bool)
}

func (s *Session) requireViewing(mode Mode) error {
	if s.state != StateViewing {
		return fmt.Errorf("%w: no cards to review while %s", ErrWrongState, s.state)
	}
	if s.mode != mode {
		return fmt.Errorf("%w: not available in %s mode", ErrWrongState, s.mode)
	}
	return nil
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	State State
	Mode  Mode
	Input string
	Error string
	Cards []domain.Flashcard

	// Index and Flipped describe the carousel card.
	Index   int
	Flipped bool

	// FlippedCards lists the flipped grid cards in ascending order.
	FlippedCards []int
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	flipped := make([]int, 0, len(s.flippedSet))
	for i := range s.flippedSet {
		flipped = append(flipped, i)
	}
	sort.Ints(flipped)

	return Snapshot{
		State:        s.state,
		Mode:         s.mode,
		Input:        s.input,
		Error:        s.errMsg,
		Cards:        s.cards,
		Index:        s.index,
		Flipped:      s.flipped,
		FlippedCards: flipped,
	}
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}
