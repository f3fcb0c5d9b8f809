package domain

import (
	"errors"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	cases := map[string]Difficulty{
		"Beginner":     DifficultyBeginner,
		"easy":         DifficultyBeginner,
		"Intermediate": DifficultyIntermediate,
		" MEDIUM ":     DifficultyIntermediate,
		"advanced":     DifficultyAdvanced,
		"Hard":         DifficultyAdvanced,
	}
	for label, want := range cases {
		got, err := ParseDifficulty(label)
		if err != nil {
			t.Errorf("ParseDifficulty(%q) returned error %v", label, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDifficulty(%q) = %s, want %s", label, got, want)
		}
	}

	if _, err := ParseDifficulty("expert"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("Expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestDifficultyValid(t *testing.T) {
	t.Parallel()

	for _, d := range Difficulties() {
		if !d.Valid() {
			t.Errorf("Expected %s to be valid", d)
		}
	}
	if Difficulty("Easy").Valid() {
		t.Error("Aliases are not canonical levels")
	}
}
