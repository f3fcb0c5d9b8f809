// Package planner implements the study plan builder:
// Idle → Loading → Loaded, or back to Idle with an error.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/session"
)

// Initial input values.
const (
	DefaultDays  = 3
	DefaultHours = 2
)

// State is the phase of a planner session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrWrongState is returned when an operation is not allowed in the current state.
var ErrWrongState = errors.New("operation not allowed in the current planner state")

// Generator is the part of generation.Generator the planner needs.
type Generator interface {
	GenerateStudyPlan(ctx context.Context, req generation.StudyPlanRequest) ([]domain.StudyTask, error)
}

// Session holds the planner inputs and the last plan. It is not safe for concurrent use.
type Session struct {
	gen    Generator
	logger *slog.Logger
	guard  session.Guard

	state   State
	subject string
	days    int
	hours   int
	errMsg  string
	plan    []domain.StudyTask
}

// NewSession creates an idle planner with the given starting inputs, clamped.
func NewSession(gen Generator, days, hours int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gen:    gen,
		logger: logger,
		days:   ClampDays(days),
		hours:  ClampHours(hours),
	}
}

// ClampDays limits days to the supported plan length.
func ClampDays(days int) int {
	return clamp(days, generation.MinPlanDays, generation.MaxPlanDays)
}

// ClampHours limits hours to the supported daily study time.
func ClampHours(hours int) int {
	return clamp(hours, generation.MinPlanHoursPerDay, generation.MaxPlanHoursPerDay)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// SetSubject changes the subject. Allowed in any state but Loading.
func (s *Session) SetSubject(subject string) error {
	if s.state == StateLoading {
		return fmt.Errorf("%w: cannot edit while loading", ErrWrongState)
	}
	s.subject = subject
	return nil
}

// SetDays stores a clamped day count.
func (s *Session) SetDays(days int) error {
	if s.state == StateLoading {
		return fmt.Errorf("%w: cannot edit while loading", ErrWrongState)
	}
	s.days = ClampDays(days)
	return nil
}

// SetHours stores a clamped hours-per-day value.
func (s *Session) SetHours(hours int) error {
	if s.state == StateLoading {
		return fmt.Errorf("%w: cannot edit while loading", ErrWrongState)
	}
	s.hours = ClampHours(hours)
	return nil
}

// SetDaysText parses typed input. Non-numeric text is rejected and the
// previous value is kept.
func (s *Session) SetDaysText(text string) error {
	n, err := parseCount("days", text)
	if err != nil {
		return err
	}
	return s.SetDays(n)
}

// SetHoursText parses typed input like SetDaysText.
func (s *Session) SetHoursText(text string) error {
	n, err := parseCount("hours", text)
	if err != nil {
		return err
	}
	return s.SetHours(n)
}

func parseCount(field, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", domain.ErrValidation, field, text)
	}
	return n, nil
}

// BeginGenerate validates the inputs and moves to Loading.
func (s *Session) BeginGenerate() (session.Ticket, generation.StudyPlanRequest, error) {
	if s.state == StateLoading {
		return session.Ticket{}, generation.StudyPlanRequest{}, fmt.Errorf("%w: already loading", ErrWrongState)
	}

	req := generation.StudyPlanRequest{
		Subject:     strings.TrimSpace(s.subject),
		Days:        s.days,
		HoursPerDay: s.hours,
	}
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
func (s *Session) CompleteGenerate(ctx context.Context, ticket session.Ticket, plan []domain.StudyTask, err error) bool {
	if !s.guard.Finish(ticket) {
		s.logger.DebugContext(ctx, "Dropping stale study plan result")
		return false
	}

	if err == nil && len(plan) == 0 {
		err = generation.Failure(generation.ErrEmptyResponse, "no study plan returned")
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Study plan generation failed", "subject", s.subject, "error", err)
		s.state = StateIdle
		s.plan = nil
		s.errMsg = generation.UserMessage(err)
		return true
	}

	s.plan = plan
	s.state = StateLoaded
	s.logger.InfoContext(ctx, "Study plan ready", "day_count", len(plan), "hours_per_day", s.hours)
	return true
}

// Generate runs a full generation round trip. A loaded plan may be
// regenerated; the new plan replaces it on success.
func (s *Session) Generate(ctx context.Context) error {
	ticket, req, err := s.BeginGenerate()
	if err != nil {
		return err
	}
	plan, genErr := s.gen.GenerateStudyPlan(ctx, req)
	s.CompleteGenerate(ctx, ticket, plan, genErr)
	return genErr
}

// Reset returns to Idle, keeping the subject, days and hours.
func (s *Session) Reset() {
	s.guard.Invalidate()
	s.state = StateIdle
	s.errMsg = ""
	s.plan = nil
}

// Snapshot is a read-only view of the planner for rendering.
type Snapshot struct {
	State   State
	Subject string
	Days    int
	Hours   int
	Error   string
	Plan    []domain.StudyTask
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:   s.state,
		Subject: s.subject,
		Days:    s.days,
		Hours:   s.hours,
		Error:   s.errMsg,
		Plan:    s.plan,
	}
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}
