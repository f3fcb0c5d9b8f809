package domain

import (
	"fmt"
	"strings"
)

// MinQuizOptions is the smallest number of options a question may offer.
const MinQuizOptions = 2

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Validate checks if the QuizQuestion has valid data.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question text cannot be empty", ErrValidation)
	}
	if len(q.Options) < MinQuizOptions {
		return fmt.Errorf("%w: question needs at least %d options, got %d",
			ErrValidation, MinQuizOptions, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d cannot be empty", ErrValidation, i)
		}
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct answer index %d out of range [0,%d)",
			ErrValidation, q.CorrectAnswerIndex, len(q.Options))
	}
	return nil
}

// IsCorrect reports whether option i is the right answer.
func (q QuizQuestion) IsCorrect(i int) bool {
	return i == q.CorrectAnswerIndex
}

// Quiz is a titled, ordered, non-empty list of questions produced by one
// generation call.
type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// NewQuiz creates a Quiz after validating every question.
func NewQuiz(title string, questions []QuizQuestion) (*Quiz, error) {
	quiz := &Quiz{
		Title:     title,
		Questions: questions,
	}

	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	return quiz, nil
}

// Validate checks if the Quiz has valid data.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: quiz title cannot be empty", ErrValidation)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: quiz needs at least one question", ErrValidation)
	}
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.Questions)
}

// ScorePercent converts a score into a whole percentage, rounding halves up.
// A zero total yields 0.
func ScorePercent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}
