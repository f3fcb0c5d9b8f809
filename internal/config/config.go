package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	App   AppConfig   `mapstructure:"app" validate:"required"`
	LLM   LLMConfig   `mapstructure:"llm" validate:"required"`
	Study StudyConfig `mapstructure:"study" validate:"required"`
}

// AppConfig contains process-wide settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile redirects logs away from stderr so they do not interleave with
	// the interactive output. Empty means stderr.
	LogFile string `mapstructure:"log_file"`
}

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	APIKey    string `mapstructure:"api_key" validate:"required"`
	ModelName string `mapstructure:"model_name" validate:"required"`
	// BaseURL is only used by the openai provider.
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	WebSearch bool   `mapstructure:"web_search"`

	// MaxRetries is the number of extra attempts after a transport failure.
	// Zero disables retrying.
	MaxRetries            int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds     int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0,lte=600"`
}

// Flashcard presentation modes.
const (
	FlashcardModeCarousel = "carousel"
	FlashcardModeGrid     = "grid"
)

// StudyConfig tunes the generated study material.
type StudyConfig struct {
	QuizQuestions  int    `mapstructure:"quiz_questions" validate:"gte=1,lte=20"`
	FlashcardCount int    `mapstructure:"flashcard_count" validate:"gte=1,lte=50"`
	FlashcardMode  string `mapstructure:"flashcard_mode" validate:"required,oneof=carousel grid"`
	Difficulty     string `mapstructure:"difficulty" validate:"required"`
	PlanDays       int    `mapstructure:"plan_days" validate:"gte=1,lte=30"`
	PlanHours      int    `mapstructure:"plan_hours" validate:"gte=1,lte=12"`
}
