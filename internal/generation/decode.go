package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/examaid/internal/domain"
)

// Wire shapes of the structured payloads. Pointer fields distinguish a
// missing required field from a zero value.
type quizPayload struct {
	Title     *string           `json:"title"`
	Questions []questionPayload `json:"questions"`
}

type questionPayload struct {
	Question           *string  `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`
	Explanation        *string  `json:"explanation"`
}

type flashcardPayload struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

type studyTaskPayload struct {
	Day      *string  `json:"day"`
	Topics   []string `json:"topics"`
	Duration *string  `json:"duration"`
}

// Decoder turns raw model output into validated domain values.
// It never returns a partially populated value: any missing field, wrong
// type or short list fails the whole decode with ErrMalformedGeneration.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder creates a Decoder that logs through logger.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Quiz decodes a quiz payload holding at least want questions.
// Extra questions are dropped.
func (d *Decoder) Quiz(ctx context.Context, raw string, want int) (*domain.Quiz, error) {
	body, err := payloadBody(raw)
	if err != nil {
		return nil, err
	}

	var payload quizPayload
	if err := unmarshalStrict(body, &payload); err != nil {
		return nil, Failure(ErrMalformedGeneration, "failed to parse quiz JSON: %v", err)
	}

	if payload.Title == nil {
		return nil, Failure(ErrMalformedGeneration, "quiz is missing title")
	}
	if payload.Questions == nil {
		return nil, Failure(ErrMalformedGeneration, "quiz is missing questions")
	}

	items, err := fitCount(ctx, d.logger, "quiz questions", payload.Questions, want)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.QuizQuestion, 0, len(items))
	for i, q := range items {
		switch {
		case q.Question == nil:
			return nil, Failure(ErrMalformedGeneration, "question %d missing question", i)
		case q.Options == nil:
			return nil, Failure(ErrMalformedGeneration, "question %d missing options", i)
		case q.CorrectAnswerIndex == nil:
			return nil, Failure(ErrMalformedGeneration, "question %d missing correctAnswerIndex", i)
		case q.Explanation == nil:
			return nil, Failure(ErrMalformedGeneration, "question %d missing explanation", i)
		}
		questions = append(questions, domain.QuizQuestion{
			Question:           *q.Question,
			Options:            q.Options,
			CorrectAnswerIndex: *q.CorrectAnswerIndex,
			Explanation:        *q.Explanation,
		})
	}

	quiz, err := domain.NewQuiz(*payload.Title, questions)
	if err != nil {
		return nil, Failure(ErrMalformedGeneration, "%v", err)
	}

	d.logger.DebugContext(ctx, "Decoded quiz",
		"title_length", len(quiz.Title),
		"question_count", quiz.Len())

	return quiz, nil
}

// Flashcards decodes a JSON array holding at least want cards.
func (d *Decoder) Flashcards(ctx context.Context, raw string, want int) ([]domain.Flashcard, error) {
	body, err := payloadBody(raw)
	if err != nil {
		return nil, err
	}

	var payload []flashcardPayload
	if err := unmarshalStrict(body, &payload); err != nil {
		return nil, Failure(ErrMalformedGeneration, "failed to parse flashcard JSON: %v", err)
	}

	items, err := fitCount(ctx, d.logger, "flashcards", payload, want)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.Flashcard, 0, len(items))
	for i, c := range items {
		if c.Front == nil || c.Back == nil {
			return nil, Failure(ErrMalformedGeneration, "card %d missing front or back", i)
		}
		cards = append(cards, domain.Flashcard{Front: *c.Front, Back: *c.Back})
	}

	if err := domain.ValidateFlashcards(cards); err != nil {
		return nil, Failure(ErrMalformedGeneration, "%v", err)
	}

	d.logger.DebugContext(ctx, "Decoded flashcards", "card_count", len(cards))
	return cards, nil
}

// StudyPlan decodes a JSON array holding at least want daily tasks.
func (d *Decoder) StudyPlan(ctx context.Context, raw string, want int) ([]domain.StudyTask, error) {
	body, err := payloadBody(raw)
	if err != nil {
		return nil, err
	}

	var payload []studyTaskPayload
	if err := unmarshalStrict(body, &payload); err != nil {
		return nil, Failure(ErrMalformedGeneration, "failed to parse study plan JSON: %v", err)
	}

	items, err := fitCount(ctx, d.logger, "study plan days", payload, want)
	if err != nil {
		return nil, err
	}

	plan := make([]domain.StudyTask, 0, len(items))
	for i, t := range items {
		if t.Day == nil || t.Topics == nil || t.Duration == nil {
			return nil, Failure(ErrMalformedGeneration, "task %d missing day, topics or duration", i)
		}
		plan = append(plan, domain.StudyTask{Day: *t.Day, Topics: t.Topics, Duration: *t.Duration})
	}

	if err := domain.ValidateStudyPlan(plan); err != nil {
		return nil, Failure(ErrMalformedGeneration, "%v", err)
	}

	d.logger.DebugContext(ctx, "Decoded study plan", "day_count", len(plan))
	return plan, nil
}

// fitCount enforces the requested item count. Short lists are malformed;
// long lists are cut down to want.
func fitCount[T any](ctx context.Context, logger *slog.Logger, what string, items []T, want int) ([]T, error) {
	if want <= 0 {
		return items, nil
	}
	if len(items) < want {
		return nil, Failure(ErrMalformedGeneration, "expected %d %s, got %d", want, what, len(items))
	}
	if len(items) > want {
		logger.WarnContext(ctx, "Model returned more items than requested, truncating",
			"what", what,
			"requested", want,
			"received", len(items))
		items = items[:want]
	}
	return items, nil
}

// payloadBody trims the raw text and strips a surrounding markdown code fence.
// unmarshalStrict decodes a single JSON value, rejecting fields the
// declared shape does not name and anything after the value.
func unmarshalStrict(body string, v any) error {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func payloadBody(raw string) (string, error) {
	body := StripCodeFence(raw)
	if body == "" {
		return "", Failure(ErrEmptyResponse, "no structured payload in response")
	}
	return body, nil
}

// StripCodeFence removes a ```json ... ``` wrapper if the model added one.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := 3
	// skip the language tag line
	if newline := strings.Index(content[start:], "\n"); newline != -1 {
		start += newline + 1
	} else {
		return ""
	}

	if end := strings.LastIndex(content[start:], "```"); end != -1 {
		content = content[start : start+end]
	} else {
		content = content[start:]
	}
	return strings.TrimSpace(content)
}
