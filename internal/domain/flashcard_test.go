package domain

import (
	"errors"
	"testing"
)

func TestValidateFlashcards(t *testing.T) {
	t.Parallel()

	good := []Flashcard{{Front: "ATP", Back: "Adenosine triphosphate"}}
	if err := ValidateFlashcards(good); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := ValidateFlashcards(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for empty set, got %v", err)
	}

	missingBack := []Flashcard{{Front: "ATP"}}
	if err := ValidateFlashcards(missingBack); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for missing back, got %v", err)
	}
}

func TestValidateStudyPlan(t *testing.T) {
	t.Parallel()

	plan := []StudyTask{
		{Day: "Day 1", Topics: []string{"Cells"}, Duration: "2 hours"},
		{Day: "Day 2", Topics: []string{"Genetics", "Evolution"}, Duration: "2 hours"},
	}
	if err := ValidateStudyPlan(plan); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := ValidateStudyPlan(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for empty plan, got %v", err)
	}

	noTopics := []StudyTask{{Day: "Day 1", Duration: "1 hour"}}
	if err := ValidateStudyPlan(noTopics); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for missing topics, got %v", err)
	}
}
