package domain

import (
	"fmt"
	"strings"
)

// Flashcard is a two-sided study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Validate checks that both faces have content.
func (c Flashcard) Validate() error {
	if strings.TrimSpace(c.Front) == "" {
		return fmt.Errorf("%w: flashcard front cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(c.Back) == "" {
		return fmt.Errorf("%w: flashcard back cannot be empty", ErrValidation)
	}
	return nil
}

// ValidateFlashcards checks a whole set. An empty set is invalid.
func ValidateFlashcards(cards []Flashcard) error {
	if len(cards) == 0 {
		return fmt.Errorf("%w: flashcard set cannot be empty", ErrValidation)
	}
	for i, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
	}
	return nil
}
