package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "EXAMAID"

// Default model names per provider.
const (
	DefaultGeminiModel = "gemini-3-flash-preview"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultOpenAIURL   = "https://api.openai.com/v1"
)

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, config.yaml is
	// looked up in the working directory and its absence is not an error.
	ConfigFile string
	// EnvFile is loaded into the process environment before anything else.
	// When empty, .env in the working directory is tried.
	EnvFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Config, error) {
	if err := loadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key may come from the provider's conventional variable.
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding api key variables: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyProviderDefaults(&cfg.LLM)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "warn")
	v.SetDefault("app.log_file", "")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model_name", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.web_search", true)
	v.SetDefault("llm.max_retries", 0)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.request_timeout_seconds", 60)

	v.SetDefault("study.quiz_questions", 5)
	v.SetDefault("study.flashcard_count", 8)
	v.SetDefault("study.flashcard_mode", FlashcardModeCarousel)
	v.SetDefault("study.difficulty", "Intermediate")
	v.SetDefault("study.plan_days", 3)
	v.SetDefault("study.plan_hours", 2)
}

// applyProviderDefaults fills the model name and endpoint left empty, since
// their defaults depend on the chosen provider.
func applyProviderDefaults(llm *LLMConfig) {
	llm.Provider = strings.ToLower(strings.TrimSpace(llm.Provider))
	if llm.ModelName == "" {
		switch llm.Provider {
		case ProviderOpenAI:
			llm.ModelName = DefaultOpenAIModel
		default:
			llm.ModelName = DefaultGeminiModel
		}
	}
	if llm.Provider == ProviderOpenAI && llm.BaseURL == "" {
		llm.BaseURL = DefaultOpenAIURL
	}
}

func loadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	// godotenv.Load never overrides variables already set in the environment
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}
