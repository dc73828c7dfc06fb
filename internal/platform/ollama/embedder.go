package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/internal/retrieval"
)

// Embedder wraps Ollama embedding calls with a fixed model. It implements
// retrieval.Embedder.
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder builds an Ollama-based embedder.
func NewEmbedder(client *Client, model string) (*Embedder, error) {
	if client == nil {
		return nil, fmt.Errorf("ollama client cannot be nil")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("ollama embedding model cannot be empty")
	}
	return &Embedder{client: client, model: model}, nil
}

// EmbedText returns the embedding vector for the given text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.client.EmbedText(ctx, e.model, text)
}

// Compile-time check that Embedder satisfies retrieval.Embedder.
var _ retrieval.Embedder = (*Embedder)(nil)
