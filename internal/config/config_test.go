package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "LOG_LEVEL", "LOG_JSON", "UPLOAD_DIR", "MAX_UPLOAD_SIZE", "MAX_DOCUMENT_CHARS",
		"LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "LLM_MODEL", "LLM_TEMPERATURE",
		"REDIS_ENABLED", "REDIS_ADDR", "REDIS_PASSWORD", "SUMMARY_CACHE_ENABLED", "SUMMARY_CACHE_TTL",
		"API_AUTH_TOKEN", "API_AUTH_BYPASS", "RATE_LIMIT_PER_SECOND", "RATE_LIMIT_BURST",
	} {
		//Setenv registers the restore, Unsetenv makes the variable truly absent
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"ListenAddr", cfg.ListenAddr, ServerListenAddr},
		{"UploadDir", cfg.UploadDir, UploadDir},
		{"MaxUploadSize", cfg.MaxUploadSize, MaxUploadSize},
		{"MaxDocumentLen", cfg.MaxDocumentLen, MaxDocumentLen},
		{"LLMProvider", cfg.LLMProvider, LLMProviderGemini},
		{"LLMModel", cfg.LLMModel, GeminiModelName},
		{"CacheTTL", cfg.CacheTTL, RedisSummaryCacheTTL},
		{"APIKey", cfg.APIKey(), "test-key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestParse_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("SUMMARY_CACHE_TTL", "15m")
	t.Setenv("MAX_DOCUMENT_CHARS", "0")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.LLMProvider != LLMProviderOpenAI {
		t.Errorf("provider got %q, want %q", cfg.LLMProvider, LLMProviderOpenAI)
	}
	if cfg.LLMModel != OpenAIModelName {
		t.Errorf("model got %q, want %q", cfg.LLMModel, OpenAIModelName)
	}
	if cfg.UploadDir != "/tmp/uploads" {
		t.Errorf("upload dir got %q", cfg.UploadDir)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("cache ttl got %v", cfg.CacheTTL)
	}
	if cfg.MaxDocumentLen != 0 {
		t.Errorf("max document len got %d, want 0", cfg.MaxDocumentLen)
	}
}

func TestParse_MissingCredential(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		field    string
	}{
		{"gemini", "gemini", "GEMINI_API_KEY"},
		{"openai", "openai", "OPENAI_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LLM_PROVIDER", tt.provider)

			_, err := Parse()
			if !errors.Is(err, ErrMissingCredential) {
				t.Fatalf("expected ErrMissingCredential, got %v", err)
			}
			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("expected *InitError, got %T", err)
			}
			if initErr.Field != tt.field {
				t.Errorf("field got %q, want %q", initErr.Field, tt.field)
			}
		})
	}
}

func TestParse_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "llama")
	t.Setenv("GEMINI_API_KEY", "key")

	_, err := Parse()
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Field != "LLM_PROVIDER" {
		t.Fatalf("expected LLM_PROVIDER init error, got %v", err)
	}
	if errors.Is(err, ErrMissingCredential) {
		t.Error("unknown provider must not be reported as a missing credential")
	}
}
