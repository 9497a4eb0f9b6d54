package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.Equal(t, DefaultOllamaModel, p.Model())

	p, err = NewProvider(ctx, Options{Provider: "OpenAI", Model: "gpt-4o-mini", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o-mini", p.Model())

	p, err = NewProvider(ctx, Options{Provider: "anthropic", APIKey: "sk-ant-test"})
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Name())
	assert.NotEmpty(t, p.Model())

	_, err = NewProvider(ctx, Options{Provider: "watson"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewProviderMissingKey(t *testing.T) {
	for _, env := range []string{
		"FEATUREGEN_ANTHROPIC_KEY", "ANTHROPIC_API_KEY",
		"FEATUREGEN_OPENAI_KEY", "OPENAI_API_KEY",
		"FEATUREGEN_GEMINI_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(env, "")
	}

	for _, name := range []string{"claude", "openai", "gemini"} {
		_, err := NewProvider(context.Background(), Options{Provider: name})
		assert.ErrorIs(t, err, ErrMissingAPIKey, name)
	}
}

func TestOllamaProvider(t *testing.T) {
	var got ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/generate":
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"model":"m","response":"Scenario: ok","done":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewOllamaProvider("llama3.2:3b", srv.URL+"/", time.Second)
	ctx := context.Background()

	assert.True(t, p.Available(ctx))

	out, err := p.Complete(ctx, "write scenarios")
	require.NoError(t, err)
	assert.Equal(t, "Scenario: ok", out)
	assert.Equal(t, "llama3.2:3b", got.Model)
	assert.Equal(t, "write scenarios", got.Prompt)
	assert.False(t, got.Stream)
}

func TestOllamaProviderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"response":"   "}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider("", srv.URL, time.Second)
	ctx := context.Background()

	assert.False(t, p.Available(ctx))
	_, err := p.Complete(ctx, "x")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaProviderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewOllamaProvider("", url, time.Second)
	assert.False(t, p.Available(context.Background()))
	_, err := p.Complete(context.Background(), "x")
	assert.Error(t, err)
}

func TestOllamaProviderHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p := NewOllamaProvider("", srv.URL, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Complete(ctx, "slow")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestOpenAIProviderBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/models":
			_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
		case "/v1/chat/completions":
			_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Feature: x"},"finish_reason":"stop"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("local-model", "sk-test", srv.URL+"/v1")
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, p.Available(ctx))

	out, err := p.Complete(ctx, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Feature: x", out)
}
