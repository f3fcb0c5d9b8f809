package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/flashcard"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/notes"
	"github.com/phrazzld/examaid/internal/quiz"
)

func (s *Shell) handleChat(ctx context.Context, cmd, arg, line string) error {
	switch cmd {
	case "":
		before := len(s.chat.Messages())
		if err := s.call(ctx, "Thinking", func(ctx context.Context) error {
			return s.chat.Send(ctx, line)
		}); err != nil && !errors.Is(err, generation.ErrGenerationFailed) {
			return err
		}
		// a failed turn still appends a fallback reply worth showing
		s.renderChatFrom(before)
		return nil
	case "/attach":
		if arg == "" {
			return fmt.Errorf("usage: /attach <image path>")
		}
		att, err := notes.LoadImage(arg)
		if err != nil {
			return err
		}
		if err := s.chat.Attach(att); err != nil {
			return err
		}
		s.printf("Attached %s image. It will be sent with your next message.\n", att.MIMEType)
		return nil
	case "/detach":
		s.chat.ClearAttachment()
		s.printf("Attachment removed.\n")
		return nil
	case "/clear":
		s.chat.Clear()
		s.render()
		return nil
	default:
		return unknownCommand(cmd)
	}
}

func (s *Shell) handleQuiz(ctx context.Context, cmd, arg, line string) error {
	switch cmd {
	case "":
		if s.quiz.State() == quiz.StateInProgress {
			n, err := strconv.Atoi(line)
			if err != nil {
				return fmt.Errorf("answer with an option number")
			}
			if err := s.quiz.SelectOption(n - 1); err != nil {
				return err
			}
			s.render()
			return nil
		}
		if err := s.quiz.SetTopic(line); err != nil {
			return err
		}
		return s.generateQuiz(ctx)
	case "/start":
		return s.generateQuiz(ctx)
	case "/level":
		d, err := domain.ParseDifficulty(arg)
		if err != nil {
			return err
		}
		if err := s.quiz.SetDifficulty(d); err != nil {
			return err
		}
		s.printf("Difficulty set to %s.\n", d)
		return nil
	case "/next":
		if err := s.quiz.Advance(); err != nil {
			return err
		}
		s.render()
		return nil
	case "/reset":
		s.quiz.Reset()
		s.render()
		return nil
	default:
		return unknownCommand(cmd)
	}
}

// generate runs a session's Generate and re-renders it. Generation and
// validation failures are already on the session snapshot; any other error,
// such as a busy or wrong-state refusal, is returned for reporting.
func (s *Shell) generate(ctx context.Context, what string, fn func(ctx context.Context) error) error {
	err := s.call(ctx, what, fn)
	if err != nil && !errors.Is(err, generation.ErrGenerationFailed) && !errors.Is(err, domain.ErrValidation) {
		return err
	}
	s.render()
	return nil
}

func (s *Shell) generateQuiz(ctx context.Context) error {
	return s.generate(ctx, "Generating quiz", s.quiz.Generate)
}

func (s *Shell) handleCards(ctx context.Context, cmd, arg, line string) error {
	switch cmd {
	case "":
		if s.cards.State() == flashcard.StateViewing {
			return s.reviewCards(line)
		}
		if err := s.cards.SetInput(line); err != nil {
			return err
		}
		return s.generateCards(ctx)
	case "/notes":
		if arg == "" {
			return fmt.Errorf("usage: /notes <file>")
		}
		text, err := notes.LoadText(arg)
		if err != nil {
			return err
		}
		if err := s.cards.SetInput(text); err != nil {
			return err
		}
		s.printf("Loaded %d characters of notes.\n", len([]rune(text)))
		return s.generateCards(ctx)
	case "/mode":
		m, err := flashcard.ParseMode(arg)
		if err != nil {
			return err
		}
		if err := s.cards.SetMode(m); err != nil {
			return err
		}
		s.printf("Flashcard mode set to %s.\n", m)
		return nil
	case "/reset":
		s.cards.Reset()
		s.render()
		return nil
	default:
		return unknownCommand(cmd)
	}
}

func (s *Shell) reviewCards(line string) error {
	var err error
	switch strings.ToLower(line) {
	case "f", "flip":
		err = s.cards.Flip()
	case "n", "next":
		err = s.cards.Next()
	case "p", "prev":
		err = s.cards.Prev()
	default:
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			return fmt.Errorf("unknown input %q; type /help for commands", line)
		}
		err = s.cards.ToggleFlip(n - 1)
	}
	if err != nil {
		return err
	}
	s.render()
	return nil
}

func (s *Shell) generateCards(ctx context.Context) error {
	return s.generate(ctx, "Generating flashcards", s.cards.Generate)
}

func (s *Shell) handlePlan(ctx context.Context, cmd, arg, line string) error {
	switch cmd {
	case "":
		if err := s.plan.SetSubject(line); err != nil {
			return err
		}
		return s.generate(ctx, "Building study plan", s.plan.Generate)
	case "/days":
		if err := s.plan.SetDaysText(arg); err != nil {
			return err
		}
		s.printf("Days: %d\n", s.plan.Snapshot().Days)
		return nil
	case "/hours":
		if err := s.plan.SetHoursText(arg); err != nil {
			return err
		}
		s.printf("Hours per day: %d\n", s.plan.Snapshot().Hours)
		return nil
	case "/reset":
		s.plan.Reset()
		s.render()
		return nil
	default:
		return unknownCommand(cmd)
	}
}

func unknownCommand(cmd string) error {
	return fmt.Errorf("unknown command %s; type /help for commands", cmd)
}
