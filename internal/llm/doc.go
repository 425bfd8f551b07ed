// Package llm provides the AI-backed expense extraction strategy. It talks to
// chat-completion providers (Groq and OpenAI compatible endpoints, Anthropic),
// validates the model's JSON reply against a schema and re-resolves the
// suggested category locally. Rate limiting and a small result cache keep
// repeated messages from hitting the provider.
package llm
