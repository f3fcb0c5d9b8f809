package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Template names inside the prompts directory.
const (
	tutorTemplate     = "tutor.tmpl"
	quizTemplate      = "quiz.tmpl"
	flashcardTemplate = "flashcards.tmpl"
	planTemplate      = "study_plan.tmpl"
)

// Limits sets how many items each structured generation asks for.
type Limits struct {
	QuizQuestions int
	Flashcards    int
}

// DefaultLimits returns the standard quiz and flashcard sizes.
func DefaultLimits() Limits {
	return Limits{
		QuizQuestions: 5,
		Flashcards:    8,
	}
}

// WithDefaults replaces non-positive values with the defaults.
func (l Limits) WithDefaults() Limits {
	def := DefaultLimits()
	if l.QuizQuestions <= 0 {
		l.QuizQuestions = def.QuizQuestions
	}
	if l.Flashcards <= 0 {
		l.Flashcards = def.Flashcards
	}
	return l
}

// Prompts renders the prompt text for every generation operation.
// It is shared by all model adapters so that they ask the same questions.
type Prompts struct {
	tmpl *template.Template
}

// LoadPrompts parses the embedded prompt templates.
func LoadPrompts() (*Prompts, error) {
	tmpl, err := template.New("prompts").Option("missingkey=error").ParseFS(promptFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt templates: %v", ErrInvalidConfig, err)
	}
	for _, name := range []string{tutorTemplate, quizTemplate, flashcardTemplate, planTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: prompt template %s is missing", ErrInvalidConfig, name)
		}
	}
	return &Prompts{tmpl: tmpl}, nil
}

// TutorInstruction returns the system instruction for chat.
func (p *Prompts) TutorInstruction(webSearch bool) (string, error) {
	return p.render(tutorTemplate, struct{ WebSearch bool }{webSearch})
}

// Quiz returns the prompt asking for count questions.
func (p *Prompts) Quiz(req QuizRequest, count int) (string, error) {
	return p.render(quizTemplate, struct {
		Topic      string
		Difficulty string
		Count      int
	}{strings.TrimSpace(req.Topic), req.Difficulty.String(), count})
}

// Flashcards returns the prompt asking for count cards.
func (p *Prompts) Flashcards(req FlashcardRequest, count int) (string, error) {
	return p.render(flashcardTemplate, struct {
		SourceText string
		Count      int
	}{strings.TrimSpace(req.SourceText), count})
}

// StudyPlan returns the prompt asking for one entry per day.
func (p *Prompts) StudyPlan(req StudyPlanRequest) (string, error) {
	return p.render(planTemplate, struct {
		Subject     string
		Days        int
		HoursPerDay int
	}{strings.TrimSpace(req.Subject), req.Days, req.HoursPerDay})
}

func (p *Prompts) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
