package shell

import (
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/flashcard"
	"github.com/phrazzld/examaid/internal/planner"
	"github.com/phrazzld/examaid/internal/quiz"
)

// render prints the current view in full.
func (s *Shell) render() {
	switch s.view {
	case ViewChat:
		s.printf("== Chat ==\n")
		s.renderChatFrom(0)
	case ViewQuiz:
		s.renderQuiz(s.quiz.Snapshot())
	case ViewCards:
		s.renderCards(s.cards.Snapshot())
	case ViewPlan:
		s.renderPlan(s.plan.Snapshot())
	}
}

// renderChatFrom prints the chat messages starting at index start.
func (s *Shell) renderChatFrom(start int) {
	msgs := s.chat.Messages()
	if start < 0 || start > len(msgs) {
		start = 0
	}
	for _, m := range msgs[start:] {
		label := "Tutor"
		if m.Role == domain.RoleUser {
			label = "You"
		}
		s.printf("%s: %s\n", label, m.Text)
		if m.Attachment != nil {
			s.printf("  [image: %s]\n", m.Attachment.MIMEType)
		}
		if sources := m.Sources(); len(sources) > 0 {
			s.printf("  Sources:\n")
			for _, src := range sources {
				s.printf("  - %s (%s)\n", src.Title, src.URI)
			}
		}
	}
	if att := s.chat.PendingAttachment(); att != nil {
		s.printf("(pending image: %s)\n", att.MIMEType)
	}
}

func (s *Shell) renderQuiz(snap quiz.Snapshot) {
	s.printf("== Quiz ==\n")
	switch snap.State {
	case quiz.StateIdle, quiz.StateLoading:
		topic := snap.Topic
		if topic == "" {
			topic = "(none)"
		}
		s.printf("Topic: %s\nDifficulty: %s\n", topic, snap.Difficulty)
		if snap.Error != "" {
			s.printf("! %s\n", snap.Error)
		}
		s.printf("Type a topic to generate a quiz.\n")

	case quiz.StateInProgress:
		q := snap.Question
		s.printf("%s\nQuestion %d of %d  (score %d)\n\n%s\n",
			snap.Title, snap.Index+1, snap.Total, snap.Score, q.Question)
		for i, opt := range q.Options {
			marker := " "
			if snap.HasSelection {
				switch {
				case q.IsCorrect(i):
					marker = "+"
				case i == snap.Selected:
					marker = "x"
				}
			}
			s.printf(" %s %d. %s\n", marker, i+1, opt)
		}
		if snap.ExplanationShown {
			verdict := "Incorrect."
			if q.IsCorrect(snap.Selected) {
				verdict = "Correct!"
			}
			s.printf("\n%s %s\n", verdict, q.Explanation)
			if snap.Index+1 < snap.Total {
				s.printf("Type /next for the next question.\n")
			} else {
				s.printf("Type /next to see your score.\n")
			}
		}

	case quiz.StateCompleted:
		s.printf("%s\nQuiz complete! You scored %d out of %d (%d%%).\n",
			snap.Title, snap.Score, snap.Total, snap.Percent)
		s.printf("Type /reset to try another topic.\n")
	}
}

func (s *Shell) renderCards(snap flashcard.Snapshot) {
	s.printf("== Flashcards (%s) ==\n", snap.Mode)
	if snap.State != flashcard.StateViewing {
		if snap.Error != "" {
			s.printf("! %s\n", snap.Error)
		}
		s.printf("Type a topic or paste notes, or use /notes <file>.\n")
		return
	}

	if snap.Mode == flashcard.ModeCarousel {
		card := snap.Cards[snap.Index]
		s.printf("Card %d of %d\n", snap.Index+1, len(snap.Cards))
		if snap.Flipped {
			s.printf("  Back: %s\n", card.Back)
		} else {
			s.printf("  Front: %s\n", card.Front)
		}
		s.printf("f flip, n next, p previous\n")
		return
	}

	flipped := make(map[int]bool, len(snap.FlippedCards))
	for _, i := range snap.FlippedCards {
		flipped[i] = true
	}
	for i, card := range snap.Cards {
		text := card.Front
		if flipped[i] {
			text = card.Back
		}
		s.printf("%2d. %s\n", i+1, text)
	}
	s.printf("Type a card number to flip it.\n")
}

func (s *Shell) renderPlan(snap planner.Snapshot) {
	s.printf("== Study plan ==\n")
	subject := snap.Subject
	if subject == "" {
		subject = "(none)"
	}
	s.printf("Subject: %s\nDays: %d  Hours per day: %d\n", subject, snap.Days, snap.Hours)
	if snap.Error != "" {
		s.printf("! %s\n", snap.Error)
	}
	if snap.State != planner.StateLoaded {
		s.printf("Type a subject to build a plan.\n")
		return
	}
	for _, task := range snap.Plan {
		s.printf("\n%s (%s)\n", task.Day, task.Duration)
		s.printf("  - %s\n", strings.Join(task.Topics, "\n  - "))
	}
}
