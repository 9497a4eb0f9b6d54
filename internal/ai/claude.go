package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeProvider implements Provider using Anthropic's Claude
type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

// NewClaudeProvider creates a new Claude provider. An empty apiKey falls
// back to FEATUREGEN_ANTHROPIC_KEY, then ANTHROPIC_API_KEY.
func NewClaudeProvider(model, apiKey string) (*ClaudeProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("FEATUREGEN_ANTHROPIC_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("claude: %w (set FEATUREGEN_ANTHROPIC_KEY or ANTHROPIC_API_KEY)", ErrMissingAPIKey)
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &ClaudeProvider{
		client: &client,
		model:  model,
	}, nil
}

func (p *ClaudeProvider) Name() string  { return "claude" }
func (p *ClaudeProvider) Model() string { return p.model }

// Available lists models as a cheap authenticated round trip.
func (p *ClaudeProvider) Available(ctx context.Context) bool {
	_, err := p.client.Models.List(ctx, anthropic.ModelListParams{})
	return err == nil
}

func (p *ClaudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
}
