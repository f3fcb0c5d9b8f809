package domain

import (
	"fmt"
	"strings"
)

// Difficulty is the level a quiz is generated at.
type Difficulty string

// The canonical three-level vocabulary. Easy, Medium and Hard are accepted
// as aliases by ParseDifficulty.
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// DefaultDifficulty is used when no level has been chosen.
const DefaultDifficulty = DifficultyIntermediate

var difficultyAliases = map[string]Difficulty{
	"beginner":     DifficultyBeginner,
	"easy":         DifficultyBeginner,
	"intermediate": DifficultyIntermediate,
	"medium":       DifficultyIntermediate,
	"advanced":     DifficultyAdvanced,
	"hard":         DifficultyAdvanced,
}

// Difficulties returns the canonical levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// ParseDifficulty maps a user supplied label onto the canonical vocabulary.
func ParseDifficulty(label string) (Difficulty, error) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, label)
	}
	return d, nil
}

// Valid reports whether d is one of the canonical levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func (d Difficulty) String() string {
	return string(d)
}
