package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
		wantAny bool
	}{
		{name: "groq by default", config: Config{APIKey: "k"}},
		{name: "openai", config: Config{Provider: "OpenAI", APIKey: "k"}},
		{name: "anthropic", config: Config{Provider: "anthropic", APIKey: "k"}},
		{name: "missing API key", config: Config{}, wantErr: ErrMissingAPIKey},
		{name: "unknown provider", config: Config{Provider: "cohere", APIKey: "k"}, wantAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, ProviderGroq, cfg.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.BaseURL)
	assert.Zero(t, cfg.Temperature, "zero is a valid temperature and is kept")
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	openai := Config{Provider: "openai", BaseURL: "http://localhost:8080/v1/"}.withDefaults()
	assert.Equal(t, "http://localhost:8080/v1", openai.BaseURL)
	assert.Equal(t, "gpt-4o-mini", openai.Model)
}

func TestOpenAIClient_Complete(t *testing.T) {
	t.Run("sends chat completion request", func(t *testing.T) {
		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(body, &got))

			_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"amount\":20000}"}}]}`))
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/openai/v1", Temperature: DefaultTemperature})
		require.NoError(t, err)

		content, err := client.Complete(context.Background(), []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "mua sách 20k"},
		})
		require.NoError(t, err)
		assert.Equal(t, `{"amount":20000}`, content)

		assert.Equal(t, "llama-3.3-70b-versatile", got["model"])
		assert.InDelta(t, 0.7, got["temperature"], 1e-9)
		assert.InDelta(t, 1024, got["max_tokens"], 1e-9)
		messages, ok := got["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
		assert.Equal(t, map[string]any{"role": "user", "content": "mua sách 20k"}, messages[1])
	})

	t.Run("non-2xx with error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key"}}`))
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "bad", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Contains(t, err.Error(), "Invalid API Key")
	})

	t.Run("non-2xx without body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
		require.Error(t, err)
		assert.Equal(t, "API error: 502", err.Error())
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no completion choices")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse response")
	})
}

func TestOpenAIClient_ZeroTemperature(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Temperature: 0})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "mua sách 20k"}})
	require.NoError(t, err)

	temperature, ok := got["temperature"]
	require.True(t, ok, "temperature is always sent")
	assert.InDelta(t, 0, temperature, 1e-9)
}
