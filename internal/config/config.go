// Package config loads the typed application configuration from viper.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/chitieu/internal/common"
	"github.com/Veraticus/chitieu/internal/llm"
)

// Configuration keys.
const (
	KeyLLMProvider    = "llm.provider"
	KeyLLMAPIKey      = "llm.api_key"
	KeyLLMModel       = "llm.model"
	KeyLLMBaseURL     = "llm.base_url"
	KeyLLMTemperature = "llm.temperature"
	KeyLLMMaxTokens   = "llm.max_tokens"
	KeyLLMTimeout     = "llm.timeout"
	KeyLLMRateLimit   = "llm.rate_limit"
	KeyLLMCacheTTL    = "llm.cache_ttl"
	KeyDatabasePath   = "database.path"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// DefaultDatabasePath is used when database.path is not set.
const DefaultDatabasePath = "~/.local/share/chitieu/chitieu.db"

// apiKeyEnv maps each provider to the environment variable its key is
// usually exported under.
var apiKeyEnv = map[string]string{
	llm.ProviderGroq:      "GROQ_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// Config is the resolved application configuration.
type Config struct {
	Logging  LoggingConfig
	Database DatabaseConfig
	LLM      llm.Config
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLLMProvider, llm.DefaultProvider)
	v.SetDefault(KeyLLMTemperature, llm.DefaultTemperature)
	v.SetDefault(KeyLLMMaxTokens, llm.DefaultMaxTokens)
	v.SetDefault(KeyLLMTimeout, llm.DefaultTimeout)
	v.SetDefault(KeyLLMRateLimit, llm.DefaultRateLimit)
	v.SetDefault(KeyLLMCacheTTL, llm.DefaultCacheTTL)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load resolves the configuration. Values come from v (config file, CHITIEU_
// environment, flags); the API key falls back to the provider's conventional
// environment variable.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LLM: llm.Config{
			Provider:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLLMProvider))),
			APIKey:      strings.TrimSpace(v.GetString(KeyLLMAPIKey)),
			Model:       v.GetString(KeyLLMModel),
			BaseURL:     v.GetString(KeyLLMBaseURL),
			Temperature: v.GetFloat64(KeyLLMTemperature),
			MaxTokens:   v.GetInt(KeyLLMMaxTokens),
			Timeout:     v.GetDuration(KeyLLMTimeout),
			RateLimit:   v.GetInt(KeyLLMRateLimit),
			CacheTTL:    v.GetDuration(KeyLLMCacheTTL),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString(KeyDatabasePath)),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llm.DefaultProvider
	}
	if cfg.LLM.APIKey == "" {
		if env, ok := apiKeyEnv[cfg.LLM.Provider]; ok {
			cfg.LLM.APIKey = strings.TrimSpace(os.Getenv(env))
		}
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = ExpandPath(DefaultDatabasePath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. A missing API key is allowed; extraction
// then runs on the offline fallback alone.
func (c *Config) Validate() error {
	if _, ok := apiKeyEnv[c.LLM.Provider]; !ok {
		return fmt.Errorf("%w: unsupported llm.provider %q", common.ErrInvalidConfig, c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("%w: llm.temperature must be between 0 and 2", common.ErrInvalidConfig)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("%w: llm.max_tokens must not be negative", common.ErrInvalidConfig)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("%w: llm.timeout must not be negative", common.ErrInvalidConfig)
	}
	if c.LLM.RateLimit < 0 {
		return fmt.Errorf("%w: llm.rate_limit must not be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json", common.ErrInvalidConfig)
	}
	return nil
}

// HasAPIKey reports whether the AI strategy can be used.
func (c *Config) HasAPIKey() bool {
	return c.LLM.APIKey != ""
}

// LogValue describes c for logging without exposing the API key.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", c.LLM.Provider),
		slog.String("model", c.LLM.Model),
		slog.Bool("api_key_set", c.HasAPIKey()),
		slog.String("database", c.Database.Path),
	)
}

// ExpandPath expands a leading ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
