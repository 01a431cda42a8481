package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is wrapped by the InitError returned when the selected
// LLM provider has no API key configured.
var ErrMissingCredential = errors.New("missing llm credential")

// InitError reports a configuration problem found at startup.
type InitError struct {
	Field string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR"`
	LogLevel   string `env:"LOG_LEVEL"`
	JSONLogs   bool   `env:"LOG_JSON"`

	UploadDir      string `env:"UPLOAD_DIR"`
	MaxUploadSize  int64  `env:"MAX_UPLOAD_SIZE"`
	MaxDocumentLen int    `env:"MAX_DOCUMENT_CHARS"`

	LLMProvider    string  `env:"LLM_PROVIDER"`
	GeminiAPIKey   string  `env:"GEMINI_API_KEY"`
	OpenAIAPIKey   string  `env:"OPENAI_API_KEY"`
	LLMModel       string  `env:"LLM_MODEL"`
	LLMTemperature float32 `env:"LLM_TEMPERATURE"`

	RedisEnabled  bool          `env:"REDIS_ENABLED"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheEnabled  bool          `env:"SUMMARY_CACHE_ENABLED"`
	CacheTTL      time.Duration `env:"SUMMARY_CACHE_TTL"`

	AuthToken    string `env:"API_AUTH_TOKEN"`
	NoAuthBypass bool   `env:"API_AUTH_BYPASS"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST"`
}

// Load reads an optional .env file, parses the environment and validates
// the result. A missing credential is reported as *InitError.
func Load() (Config, error) {
	//a missing .env is fine, the variables may come from the process environment
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (Config, error) {
	cfg := Defaults()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, &InitError{Field: "environment", Err: err}
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModel(cfg.LLMProvider)
	}
	if cfg.RateLimitPerSecond <= 0 {
		cfg.RateLimitPerSecond = RATE_LIMIT_PER_SECOND
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = BURST_RATE_LIMIT_PER_SECOND
	}
	return cfg, cfg.Validate()
}

// Defaults returns the compiled-in values; environment variables override them.
func Defaults() Config {
	return Config{
		ListenAddr:         ServerListenAddr,
		LogLevel:           "debug",
		UploadDir:          UploadDir,
		MaxUploadSize:      MaxUploadSize,
		MaxDocumentLen:     MaxDocumentLen,
		LLMProvider:        LLMProviderGemini,
		LLMTemperature:     ModelTemperature,
		RedisEnabled:       true,
		RedisAddr:          RedisAddr,
		CacheEnabled:       true,
		CacheTTL:           RedisSummaryCacheTTL,
		RateLimitPerSecond: RATE_LIMIT_PER_SECOND,
		RateLimitBurst:     BURST_RATE_LIMIT_PER_SECOND,
	}
}

func (c Config) Validate() error {
	switch c.LLMProvider {
	case LLMProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return &InitError{Field: "GEMINI_API_KEY", Err: ErrMissingCredential}
		}
	case LLMProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return &InitError{Field: "OPENAI_API_KEY", Err: ErrMissingCredential}
		}
	default:
		return &InitError{Field: "LLM_PROVIDER", Err: fmt.Errorf("unknown provider %q", c.LLMProvider)}
	}
	if c.UploadDir == "" {
		return &InitError{Field: "UPLOAD_DIR", Err: errors.New("must not be empty")}
	}
	return nil
}

// APIKey returns the credential of the selected provider.
func (c Config) APIKey() string {
	if c.LLMProvider == LLMProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func defaultModel(provider string) string {
	if provider == LLMProviderOpenAI {
		return OpenAIModelName
	}
	return GeminiModelName
}
