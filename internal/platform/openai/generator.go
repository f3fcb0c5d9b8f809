package openai

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
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// chatCompleter is the part of *openai.Client the generator uses.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator implements generation.Generator over the chat completions API.
type Generator struct {
	logger  *slog.Logger
	client  chatCompleter
	model   string
	limits  generation.Limits
	prompts *generation.Prompts
	decoder *generation.Decoder
	retry   generation.RetryPolicy
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator for cfg.BaseURL, or the public OpenAI
// endpoint when it is empty.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, limits generation.Limits) (*Generator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return newGenerator(logger, cfg, limits, openai.NewClientWithConfig(clientCfg))
}

func newGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	limits generation.Limits,
	client chatCompleter,
) (*Generator, error) {
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

	return &Generator{
		logger:  logger.With("provider", config.ProviderOpenAI, "model", cfg.ModelName),
		client:  client,
		model:   cfg.ModelName,
		limits:  limits.WithDefaults(),
		prompts: prompts,
		decoder: generation.NewDecoder(logger),
		retry:   generation.NewRetryPolicy(cfg.MaxRetries, cfg.RetryDelaySeconds, cfg.RequestTimeoutSeconds),
	}, nil
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// Chat sends a tutoring turn. Replies never carry sources.
func (g *Generator) Chat(ctx context.Context, req generation.ChatRequest) (*generation.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	instruction, err := g.prompts.TutorInstruction(false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	text, err := g.complete(ctx, "chat", openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: chatMessages(instruction, req),
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, generation.Failure(generation.ErrEmptyResponse, "chat reply has no text")
	}

	g.logger.InfoContext(ctx, "Chat reply received", "reply_length", len(text))
	return &generation.ChatReply{Text: text}, nil
}

// GenerateQuiz creates a multiple-choice quiz on a topic.
func (g *Generator) GenerateQuiz(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.Quiz(req, g.limits.QuizQuestions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	raw, err := g.completeJSON(ctx, "quiz", prompt, quizSchema())
	if err != nil {
		return nil, err
	}
	return g.decoder.Quiz(ctx, raw, g.limits.QuizQuestions)
}

// GenerateFlashcards creates a flashcard set from a topic or pasted notes.
func (g *Generator) GenerateFlashcards(ctx context.Context, req generation.FlashcardRequest) ([]domain.Flashcard, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.Flashcards(req, g.limits.Flashcards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	raw, err := g.completeJSON(ctx, "flashcards", prompt, flashcardSchema())
	if err != nil {
		return nil, err
	}
	cards, err := unwrapEnvelope(raw, cardsKey)
	if err != nil {
		return nil, err
	}
	return g.decoder.Flashcards(ctx, cards, g.limits.Flashcards)
}

// GenerateStudyPlan creates one task per requested day.
func (g *Generator) GenerateStudyPlan(ctx context.Context, req generation.StudyPlanRequest) ([]domain.StudyTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.StudyPlan(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	raw, err := g.completeJSON(ctx, "study_plan", prompt, studyPlanSchema())
	if err != nil {
		return nil, err
	}
	plan, err := unwrapEnvelope(raw, planKey)
	if err != nil {
		return nil, err
	}
	return g.decoder.StudyPlan(ctx, plan, req.Days)
}

func (g *Generator) completeJSON(ctx context.Context, op, prompt string, schema jsonschema.Definition) (string, error) {
	return g.complete(ctx, op, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   op,
				Schema: &schema,
				Strict: true,
			},
		},
	})
}

// complete runs the request under the retry policy and returns the text of
// the first choice. No choices yields empty text.
func (g *Generator) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	var text string
	err := g.retry.Do(ctx, g.logger, op, func(ctx context.Context) error {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return generation.Failure(generation.ErrTransportFailure, "chat completion failed: %s", redact.Error(err))
		}
		if len(resp.Choices) == 0 {
			text = ""
			return nil
		}

		choice := resp.Choices[0]
		if choice.FinishReason == openai.FinishReasonContentFilter {
			return generation.Failure(generation.ErrContentBlocked, "response stopped: %s", choice.FinishReason)
		}
		if choice.Message.Refusal != "" {
			return generation.Failure(generation.ErrContentBlocked, "model refused: %s", choice.Message.Refusal)
		}
		text = choice.Message.Content
		return nil
	})
	return text, err
}
