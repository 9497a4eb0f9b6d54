package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownProvider is returned by NewProvider for unsupported names.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("empty response")
	// ErrUnavailable is reported when a provider fails its availability probe.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrMissingAPIKey is returned when a hosted provider has no credentials.
	ErrMissingAPIKey = errors.New("api key required")
)

// Provider is a generative-text collaborator. Available must never panic or
// block longer than the context allows; Complete returns the raw text.
type Provider interface {
	Name() string
	Model() string
	Available(ctx context.Context) bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options selects and configures a provider.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration // HTTP client ceiling; per-call deadlines come from ctx
}

// NewProvider creates a provider by name.
func NewProvider(ctx context.Context, opts Options) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "ollama":
		return NewOllamaProvider(opts.Model, opts.BaseURL, opts.Timeout), nil
	case "claude", "anthropic":
		return NewClaudeProvider(opts.Model, opts.APIKey)
	case "openai", "gpt":
		return NewOpenAIProvider(opts.Model, opts.APIKey, opts.BaseURL)
	case "gemini", "google":
		return NewGeminiProvider(ctx, opts.Model, opts.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s (supported: ollama, claude, openai, gemini)", ErrUnknownProvider, opts.Provider)
	}
}
