package domain

import (
	"fmt"
	"strings"
)

// StudyTask is one day of a study plan.
type StudyTask struct {
	// Day is a display label such as "Day 1".
	Day string `json:"day"`

	Topics []string `json:"topics"`

	// Duration is a free-form estimate such as "2 hours".
	Duration string `json:"duration"`
}

// Validate checks if the StudyTask has valid data.
func (t StudyTask) Validate() error {
	if strings.TrimSpace(t.Day) == "" {
		return fmt.Errorf("%w: day label cannot be empty", ErrValidation)
	}
	if len(t.Topics) == 0 {
		return fmt.Errorf("%w: day %q has no topics", ErrValidation, t.Day)
	}
	for i, topic := range t.Topics {
		if strings.TrimSpace(topic) == "" {
			return fmt.Errorf("%w: day %q topic %d is empty", ErrValidation, t.Day, i)
		}
	}
	if strings.TrimSpace(t.Duration) == "" {
		return fmt.Errorf("%w: day %q has no duration", ErrValidation, t.Day)
	}
	return nil
}

// ValidateStudyPlan checks every task of a plan. An empty plan is invalid.
func ValidateStudyPlan(plan []StudyTask) error {
	if len(plan) == 0 {
		return fmt.Errorf("%w: study plan cannot be empty", ErrValidation)
	}
	for i, task := range plan {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}
