package llm

import (
	"fmt"
	"net/http"
	"time"
)

// NewClient creates a completion client for the configured provider.
// Groq and OpenAI share the chat-completions wire format.
func NewClient(cfg Config) (Client, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch cfg.Provider {
	case ProviderGroq, ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// newHTTPClient builds the transport. Callers bound each request with a
// context deadline; the client timeout is only a backstop.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout + 5*time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
