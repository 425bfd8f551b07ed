package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported providers.
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultProvider    = ProviderGroq
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
	DefaultTimeout     = 15 * time.Second
	DefaultRateLimit   = 30
	DefaultCacheTTL    = 10 * time.Minute
)

// ErrMissingAPIKey is reported when no API key is configured for the provider.
var ErrMissingAPIKey = errors.New("API key not configured")

// Message is one chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client sends a conversation to a completion endpoint and returns the text
// of the first reply.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config holds configuration for the AI extractor and its provider client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	CacheTTL    time.Duration
	Temperature float64
	MaxTokens   int
	RateLimit   int
}

// APIError is returned when the provider answers with a non-2xx status.
type APIError struct {
	Provider   string
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

func (c Config) withDefaults() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Model == "" {
		c.Model = defaultModel(c.Provider)
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL(c.Provider)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	default:
		return "llama-3.3-70b-versatile"
	}
}

func defaultBaseURL(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderAnthropic:
		return "https://api.anthropic.com"
	default:
		return "https://api.groq.com/openai/v1"
	}
}
