package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/phrazzld/examaid/internal/config"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/platform/gemini"
	"github.com/phrazzld/examaid/internal/platform/logger"
	"github.com/phrazzld/examaid/internal/platform/openai"
	"github.com/phrazzld/examaid/internal/redact"
	"github.com/phrazzld/examaid/internal/shell"
)

// application holds the shared dependencies and releases them on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	generator generation.Generator
}

// newApplication loads configuration, sets up logging and builds the
// generator for the configured provider.
func newApplication(ctx context.Context, configFile, envFile string) (*application, error) {
	cfg, err := config.LoadWithOptions(config.Options{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, closer, err := logger.Setup(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.InfoContext(ctx, "Configuration loaded",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.ModelName,
		"web_search", cfg.LLM.WebSearch,
		"log_level", cfg.App.LogLevel)

	gen, err := newGenerator(ctx, l.With("component", "llm_generator"), cfg)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to initialize LLM generator: %s", redact.Error(err))
	}
	l.InfoContext(ctx, "LLM generator initialized")

	return &application{
		config:    cfg,
		logger:    l,
		logCloser: closer,
		generator: gen,
	}, nil
}

// newGenerator picks the adapter for cfg.LLM.Provider.
func newGenerator(ctx context.Context, l *slog.Logger, cfg *config.Config) (generation.Generator, error) {
	limits := generation.Limits{
		QuizQuestions: cfg.Study.QuizQuestions,
		Flashcards:    cfg.Study.FlashcardCount,
	}

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return gemini.NewGeminiGenerator(ctx, l, cfg.LLM, limits)
	case config.ProviderOpenAI:
		return openai.NewGenerator(l, cfg.LLM, limits)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.LLM.Provider)
	}
}

// run drives the shell until the user quits. Ctrl-C cancels the call in
// flight rather than exiting.
func (app *application) run(ctx context.Context, in io.Reader, out io.Writer) error {
	sh, err := shell.New(app.generator, shell.Options{
		In:          in,
		Out:         out,
		Logger:      app.logger,
		Study:       app.config.Study,
		CallContext: interruptible,
	})
	if err != nil {
		return err
	}
	return sh.Run(ctx)
}

func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

func (app *application) cleanup() {
	if err := app.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}
