package retrieval

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Embedder provides embedding vectors for text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Chunk is a scored piece of supporting text returned by an index.
type Chunk struct {
	ID    string
	Text  string
	Score float64
}

// Index searches stored chunks by embedding similarity.
type Index interface {
	Search(ctx context.Context, vector []float32, k int) ([]Chunk, error)
}

// Retriever embeds a topic, queries the index, and joins the top-k chunk
// texts into a single context string. Every internal failure is logged and
// absorbed; the call degrades to a partial or empty result but never fails.
type Retriever struct {
	embedder Embedder
	index    Index
	logger   *slog.Logger
	maxChars int
}

// DefaultMaxContextChars bounds the joined context length so prompts stay
// within reasonable model limits.
const DefaultMaxContextChars = 8000

// NewRetriever creates a Retriever. maxChars <= 0 selects the default bound.
func NewRetriever(embedder Embedder, index Index, logger *slog.Logger, maxChars int) *Retriever {
	if maxChars <= 0 {
		maxChars = DefaultMaxContextChars
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		logger:   logger.With("component", "context_retriever"),
		maxChars: maxChars,
	}
}

// RetrieveContext returns supporting text for the topic. The contract is
// liveness, not correctness: any failure yields an empty string, never an
// error.
func (r *Retriever) RetrieveContext(ctx context.Context, topic string, k int) string {
	if strings.TrimSpace(topic) == "" || k <= 0 {
		return ""
	}
	if r.embedder == nil || r.index == nil {
		return ""
	}

	vector, err := r.embedder.EmbedText(ctx, topic)
	if err != nil {
		r.logger.WarnContext(ctx, "embedding failed, returning empty context",
			"topic", topic,
			"error", err)
		return ""
	}

	chunks, err := r.index.Search(ctx, vector, k)
	if err != nil {
		r.logger.WarnContext(ctx, "index search failed, returning empty context",
			"topic", topic,
			"error", err)
		return ""
	}

	var b strings.Builder
	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n---\n\n")
		}
		if b.Len()+len(text) > r.maxChars {
			remaining := r.maxChars - b.Len()
			if remaining <= 0 {
				break
			}
			// Back off to a rune boundary so truncation never emits
			// invalid UTF-8.
			for remaining > 0 && !utf8.RuneStart(text[remaining]) {
				remaining--
			}
			b.WriteString(text[:remaining])
			break
		}
		b.WriteString(text)
	}

	r.logger.DebugContext(ctx, "retrieved context",
		"topic", topic,
		"chunks", len(chunks),
		"context_chars", b.Len())

	return b.String()
}
