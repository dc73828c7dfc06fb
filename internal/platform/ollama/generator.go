package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/internal/generation"
)

// Generator wraps a Client with a fixed model for text generation. It
// implements generation.TextGenerator.
type Generator struct {
	client *Client
	model  string
}

// NewGenerator builds an Ollama-backed text generator.
func NewGenerator(client *Client, model string) (*Generator, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: ollama client cannot be nil", generation.ErrInvalidConfig)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: ollama model cannot be empty", generation.ErrInvalidConfig)
	}
	return &Generator{client: client, model: model}, nil
}

// GenerateText implements generation.TextGenerator using the Ollama chat API.
func (g *Generator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	messages := make([]ChatMessage, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: userPrompt})

	return g.client.Chat(ctx, g.model, messages)
}

// Compile-time check that Generator satisfies generation.TextGenerator.
var _ generation.TextGenerator = (*Generator)(nil)
