package generation

import (
	"testing"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestQuizRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     QuizRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  QuizRequest{Topic: "Photosynthesis", Difficulty: domain.DifficultyIntermediate},
		},
		{
			name:    "blank topic",
			req:     QuizRequest{Topic: "   ", Difficulty: domain.DifficultyBeginner},
			wantErr: "topic is required",
		},
		{
			name:    "alias difficulty is not canonical",
			req:     QuizRequest{Topic: "Cells", Difficulty: "Easy"},
			wantErr: "difficulty must be one of",
		},
		{
			name:    "missing difficulty",
			req:     QuizRequest{Topic: "Cells"},
			wantErr: "difficulty is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlashcardRequestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FlashcardRequest{SourceText: "The French Revolution"}.Validate())
	assert.ErrorIs(t, FlashcardRequest{SourceText: "\n\t"}.Validate(), domain.ErrValidation)
}

func TestStudyPlanRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     StudyPlanRequest
		wantErr string
	}{
		{"valid", StudyPlanRequest{Subject: "Biology", Days: 3, HoursPerDay: 2}, ""},
		{"upper bounds", StudyPlanRequest{Subject: "Biology", Days: MaxPlanDays, HoursPerDay: MaxPlanHoursPerDay}, ""},
		{"no subject", StudyPlanRequest{Days: 3, HoursPerDay: 2}, "subject is required"},
		{"zero days", StudyPlanRequest{Subject: "Biology", Days: 0, HoursPerDay: 2}, "days must be at least 1"},
		{"too many days", StudyPlanRequest{Subject: "Biology", Days: 31, HoursPerDay: 2}, "days must be at most 30"},
		{"too many hours", StudyPlanRequest{Subject: "Biology", Days: 3, HoursPerDay: 13}, "hoursperday must be at most 12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChatRequestValidate(t *testing.T) {
	t.Parallel()

	att, err := domain.NewAttachment("image/png", []byte("png"))
	assert.NoError(t, err)

	assert.NoError(t, ChatRequest{Text: "hello"}.Validate())
	assert.NoError(t, ChatRequest{Attachment: att}.Validate())
	assert.ErrorIs(t, ChatRequest{Text: "  "}.Validate(), domain.ErrValidation)
	assert.ErrorIs(t,
		ChatRequest{Attachment: &domain.Attachment{MIMEType: "image/png", Data: "%%%"}}.Validate(),
		domain.ErrValidation)
}

func TestChatRequestReplayableHistory(t *testing.T) {
	t.Parallel()

	req := ChatRequest{
		History: []domain.ChatMessage{
			{ID: "1", Role: domain.RoleModel, Text: "Hello!", Fallback: true},
			{ID: "2", Role: domain.RoleUser, Text: "Explain mitosis"},
			{ID: "3", Role: domain.RoleModel, Text: "Sorry, I encountered an error", Fallback: true},
			{ID: "4", Role: domain.RoleUser, Text: "Explain mitosis again"},
		},
	}

	turns := req.ReplayableHistory()
	if assert.Len(t, turns, 2) {
		assert.Equal(t, "2", turns[0].ID)
		assert.Equal(t, "4", turns[1].ID)
	}
}
