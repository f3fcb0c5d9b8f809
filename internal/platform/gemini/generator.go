package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/examaid/internal/config"
	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/redact"
	"google.golang.org/genai"
)

// contentGenerator is the part of the genai client the generator uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini models service
	client contentGenerator

	// model is the name of the Gemini model to use
	model string

	// webSearch enables the Google Search tool for chat
	webSearch bool

	limits  generation.Limits
	prompts *generation.Prompts
	decoder *generation.Decoder
	retry   generation.RetryPolicy
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//   - limits: How many quiz questions and flashcards to ask for
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	limits generation.Limits,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newGenerator(logger, cfg, limits, client.Models)
}

func newGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	limits generation.Limits,
	client contentGenerator,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	prompts, err := generation.LoadPrompts()
	if err != nil {
		return nil, err
	}

	return &GeminiGenerator{
		logger:    logger.With("provider", config.ProviderGemini, "model", cfg.ModelName),
		client:    client,
		model:     cfg.ModelName,
		webSearch: cfg.WebSearch,
		limits:    limits.WithDefaults(),
		prompts:   prompts,
		decoder:   generation.NewDecoder(logger),
		retry:     generation.NewRetryPolicy(cfg.MaxRetries, cfg.RetryDelaySeconds, cfg.RequestTimeoutSeconds),
	}, nil
}

// validateConfig checks the settings the adapter cannot work without.
func validateConfig(cfg config.LLMConfig) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// Chat sends a tutoring turn with the replayed history.
func (g *GeminiGenerator) Chat(ctx context.Context, req generation.ChatRequest) (*generation.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	instruction, err := g.prompts.TutorInstruction(g.webSearch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	contents, err := chatContents(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
	}
	if g.webSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	g.logger.DebugContext(ctx, "Sending chat turn",
		"history_turns", len(contents)-1,
		"has_attachment", req.Attachment != nil,
		"web_search", g.webSearch)

	var reply generation.ChatReply
	err = g.retry.Do(ctx, g.logger, "chat", func(ctx context.Context) error {
		resp, err := g.client.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return transportFailure(err)
		}
		text, cand, err := inspectResponse(resp)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return generation.Failure(generation.ErrEmptyResponse, "chat reply has no text")
		}
		reply = generation.ChatReply{Text: text, Sources: groundingSources(cand)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "Chat reply received",
		"reply_length", len(reply.Text),
		"source_count", len(reply.Sources))

	return &reply, nil
}

// GenerateQuiz creates a multiple-choice quiz on a topic.
func (g *GeminiGenerator) GenerateQuiz(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.Quiz(req, g.limits.QuizQuestions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	raw, err := g.generateJSON(ctx, "quiz", prompt, quizSchema(g.limits.QuizQuestions))
	if err != nil {
		return nil, err
	}
	return g.decoder.Quiz(ctx, raw, g.limits.QuizQuestions)
}

// GenerateFlashcards creates a flashcard set from a topic or pasted notes.
func (g *GeminiGenerator) GenerateFlashcards(
	ctx context.Context,
	req generation.FlashcardRequest,
) ([]domain.Flashcard, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.Flashcards(req, g.limits.Flashcards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	raw, err := g.generateJSON(ctx, "flashcards", prompt, flashcardSchema(g.limits.Flashcards))
	if err != nil {
		return nil, err
	}
	return g.decoder.Flashcards(ctx, raw, g.limits.Flashcards)
}

// GenerateStudyPlan creates one task per requested day.
func (g *GeminiGenerator) GenerateStudyPlan(
	ctx context.Context,
	req generation.StudyPlanRequest,
) ([]domain.StudyTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.StudyPlan(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	raw, err := g.generateJSON(ctx, "study_plan", prompt, studyPlanSchema(req.Days))
	if err != nil {
		return nil, err
	}
	return g.decoder.StudyPlan(ctx, raw, req.Days)
}

// generateJSON makes a single-turn call constrained to schema and returns
// the raw payload text.
func (g *GeminiGenerator) generateJSON(ctx context.Context, op, prompt string, schema *genai.Schema) (string, error) {
	contents := []*genai.Content{{
		Role:  string(domain.RoleUser),
		Parts: []*genai.Part{{Text: prompt}},
	}}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	g.logger.DebugContext(ctx, "Requesting structured generation",
		"operation", op,
		"prompt_length", len(prompt))

	var raw string
	err := g.retry.Do(ctx, g.logger, op, func(ctx context.Context) error {
		resp, err := g.client.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return transportFailure(err)
		}
		text, _, err := inspectResponse(resp)
		if err != nil {
			return err
		}
		raw = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

func transportFailure(err error) error {
	return generation.Failure(generation.ErrTransportFailure, "Gemini API call failed: %s", redact.Error(err))
}
