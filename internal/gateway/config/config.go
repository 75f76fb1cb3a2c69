package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"argminer/internal/diagram"
	"argminer/internal/llm"
	"argminer/internal/strategy"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        string
	LLM             LLMConfig
	Session         SessionConfig
	DefaultStrategy strategy.Kind
	DiagramFormat   diagram.Format
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type SessionConfig struct {
	MaxEntries int
	TTL        time.Duration
}

// ConfigError is a fatal startup condition: the process must not serve.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// Load reads .env (if present) once and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := &Config{
		Port:     normalizePort(firstNonEmpty(get("PORT"), ":8080")),
		Env:      firstNonEmpty(get("APP_ENV"), "local"),
		LogLevel: get("LOG_LEVEL"),
	}

	llmCfg, err := loadLLMConfig(get)
	if err != nil {
		return nil, err
	}
	cfg.LLM = llmCfg

	cfg.Session.MaxEntries = 256
	if v := get("SESSION_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, &ConfigError{Key: "SESSION_MAX_ENTRIES", Reason: fmt.Sprintf("want a positive integer, got %q", v)}
		}
		cfg.Session.MaxEntries = n
	}
	cfg.Session.TTL = time.Hour
	if v := get("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, &ConfigError{Key: "SESSION_TTL", Reason: fmt.Sprintf("want a positive duration, got %q", v)}
		}
		cfg.Session.TTL = d
	}

	kind, err := strategy.ParseKind(firstNonEmpty(get("DEFAULT_STRATEGY"), string(strategy.IBIS)))
	if err != nil {
		return nil, &ConfigError{Key: "DEFAULT_STRATEGY", Reason: err.Error()}
	}
	cfg.DefaultStrategy = kind

	format, err := diagram.ParseFormat(get("DIAGRAM_FORMAT"))
	if err != nil {
		return nil, &ConfigError{Key: "DIAGRAM_FORMAT", Reason: err.Error()}
	}
	cfg.DiagramFormat = format

	return cfg, nil
}

func loadLLMConfig(get func(string) string) (LLMConfig, error) {
	provider := strings.ToLower(firstNonEmpty(get("LLM_PROVIDER"), llm.ProviderOpenAI))
	switch provider {
	case llm.ProviderOpenAI:
		key := get("OPENAI_API_KEY")
		if key == "" {
			return LLMConfig{}, &ConfigError{Key: "OPENAI_API_KEY", Reason: "required when LLM_PROVIDER=openai"}
		}
		return LLMConfig{
			Provider: provider,
			APIKey:   key,
			Model:    firstNonEmpty(get("OPENAI_MODEL"), llm.DefaultOpenAIModel),
			BaseURL:  get("OPENAI_BASE_URL"),
		}, nil
	case llm.ProviderGemini:
		key := firstNonEmpty(get("GEMINI_API_KEY"), get("GOOGLE_API_KEY"))
		if key == "" {
			return LLMConfig{}, &ConfigError{Key: "GEMINI_API_KEY", Reason: "required when LLM_PROVIDER=gemini"}
		}
		return LLMConfig{
			Provider: provider,
			APIKey:   key,
			Model:    firstNonEmpty(get("GEMINI_MODEL"), llm.DefaultGeminiModel),
			BaseURL:  get("GEMINI_BASE_URL"),
		}, nil
	case llm.ProviderFake:
		return LLMConfig{Provider: provider}, nil
	}
	return LLMConfig{}, &ConfigError{Key: "LLM_PROVIDER", Reason: fmt.Sprintf("unsupported provider %q", provider)}
}

func normalizePort(port string) string {
	if strings.HasPrefix(port, ":") || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
