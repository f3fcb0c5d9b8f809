// Package shell is the line-oriented terminal front end. It routes input to
// the chat, quiz, flashcard and planner sessions and prints their state.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/examaid/internal/chat"
	"github.com/phrazzld/examaid/internal/config"
	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/flashcard"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/planner"
	"github.com/phrazzld/examaid/internal/quiz"
)

// View is one of the four study screens.
type View string

const (
	ViewChat  View = "chat"
	ViewQuiz  View = "quiz"
	ViewCards View = "cards"
	ViewPlan  View = "plan"
)

// CallContext derives the context for one model call. The returned cancel
// func is always called when the call returns.
type CallContext func(ctx context.Context) (context.Context, context.CancelFunc)

// Options configures a Shell.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
	Study  config.StudyConfig
	// CallContext lets the caller cancel in-flight calls, for example on Ctrl-C.
	CallContext CallContext
}

// Shell owns the four sessions and the current view.
type Shell struct {
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	callCtx CallContext

	view  View
	chat  *chat.Session
	quiz  *quiz.Session
	cards *flashcard.Session
	plan  *planner.Session
}

// New creates a shell on the chat view.
func New(gen generation.Generator, opts Options) (*Shell, error) {
	if gen == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if opts.In == nil || opts.Out == nil {
		return nil, errors.New("input and output are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	callCtx := opts.CallContext
	if callCtx == nil {
		callCtx = context.WithCancel
	}

	mode := flashcard.ModeCarousel
	if opts.Study.FlashcardMode != "" {
		m, err := flashcard.ParseMode(opts.Study.FlashcardMode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	q := quiz.NewSession(gen, logger)
	if opts.Study.Difficulty != "" {
		d, err := domain.ParseDifficulty(opts.Study.Difficulty)
		if err != nil {
			return nil, err
		}
		if err := q.SetDifficulty(d); err != nil {
			return nil, err
		}
	}

	days, hours := opts.Study.PlanDays, opts.Study.PlanHours
	if days == 0 {
		days = planner.DefaultDays
	}
	if hours == 0 {
		hours = planner.DefaultHours
	}

	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	return &Shell{
		in:      scanner,
		out:     opts.Out,
		logger:  logger,
		callCtx: callCtx,
		view:    ViewChat,
		chat:    chat.NewSession(gen, logger),
		quiz:    q,
		cards:   flashcard.NewSession(gen, mode, logger),
		plan:    planner.NewSession(gen, days, hours, logger),
	}, nil
}

// errQuit ends Run without an error.
var errQuit = errors.New("quit")

// Run reads commands until /quit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("Examaid study assistant. Type /help for commands.\n\n")
	s.render()

	for {
		if ctx.Err() != nil {
			return nil
		}
		s.printf("\nexamaid[%s]> ", s.view)
		if !s.in.Scan() {
			s.printf("\n")
			return s.in.Err()
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		err := s.Handle(ctx, line)
		if errors.Is(err, errQuit) {
			s.printf("Goodbye!\n")
			return nil
		}
		if err != nil {
			s.report(err)
		}
	}
}

// Handle processes one input line.
func (s *Shell) Handle(ctx context.Context, line string) error {
	cmd, arg := splitCommand(line)

	switch cmd {
	case "/quit", "/exit":
		return errQuit
	case "/help":
		s.printHelp()
		return nil
	case "/chat":
		return s.navigate(ViewChat)
	case "/quiz":
		return s.navigate(ViewQuiz)
	case "/cards":
		return s.navigate(ViewCards)
	case "/plan":
		return s.navigate(ViewPlan)
	}

	var err error
	switch s.view {
	case ViewChat:
		err = s.handleChat(ctx, cmd, arg, line)
	case ViewQuiz:
		err = s.handleQuiz(ctx, cmd, arg, line)
	case ViewCards:
		err = s.handleCards(ctx, cmd, arg, line)
	case ViewPlan:
		err = s.handlePlan(ctx, cmd, arg, line)
	}
	return err
}

// CurrentView returns the active view.
func (s *Shell) CurrentView() View {
	return s.view
}

func (s *Shell) navigate(v View) error {
	s.view = v
	s.render()
	return nil
}

// call runs fn under a per-call context and prints a loading line first.
// The error is returned for callers that need it; failed generations are
// already recorded on the session.
func (s *Shell) call(ctx context.Context, what string, fn func(ctx context.Context) error) error {
	callCtx, cancel := s.callCtx(ctx)
	defer cancel()

	s.printf("%s...\n", what)
	err := fn(callCtx)
	if errors.Is(callCtx.Err(), context.Canceled) && ctx.Err() == nil {
		s.printf("Cancelled.\n")
	}
	if err != nil {
		s.logger.DebugContext(ctx, "Call ended with error", "operation", what, "error", err)
	}
	return err
}

// report prints err in a form fit for the user.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, generation.ErrGenerationFailed), errors.Is(err, domain.ErrValidation):
		s.printf("! %s\n", generation.UserMessage(err))
	default:
		s.printf("! %v\n", err)
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// splitCommand separates a leading /command from its argument. Lines that
// do not start with a slash have an empty command.
func splitCommand(line string) (cmd, arg string) {
	if !strings.HasPrefix(line, "/") {
		return "", line
	}
	cmd, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func (s *Shell) printHelp() {
	s.printf(`Views:
  /chat /quiz /cards /plan   switch view
  /help                      show this help
  /quit                      exit

Chat:
  <text>                     ask the tutor
  /attach <image path>       attach an image to the next message
  /detach                    drop the pending image
  /clear                     start a new conversation

Quiz:
  <topic>                    set the topic and generate a quiz (when idle)
  /level <level>             Beginner, Intermediate or Advanced (easy/medium/hard work too)
  <number>                   answer the current question
  /next                      go to the next question
  /reset                     start over

Cards:
  <topic or notes>           generate flashcards (when idle)
  /notes <file>              generate from a .txt, .md or .pdf file
  /mode carousel|grid        switch presentation (when idle)
  f, n, p                    flip, next, previous (carousel)
  <number>                   flip a card (grid)
  /reset                     start over

Plan:
  <subject>                  set the subject and generate a plan
  /days <1-30>               number of days
  /hours <1-12>              hours per day
  /reset                     clear the plan, keep the inputs
`)
}
