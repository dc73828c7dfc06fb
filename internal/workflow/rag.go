package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/generation"
)

// ContextRetriever is the soft retrieval boundary consumed by the RAG
// pipeline. Implementations never return an error; failures degrade to an
// empty string.
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, topic string, k int) string
}

// ragState carries data and error state between pipeline stages. Each
// stage checks the inbound error and passes it through without executing,
// so a failure recorded early short-circuits the rest of the pipeline.
type ragState struct {
	context string
	cards   []*domain.Flashcard
	err     *TerminalError
}

// RAGPipeline is the retrieve-then-generate workflow used for
// document-backed requests. Unlike the fallback graph there is no
// secondary path: a failure in either stage is terminal.
type RAGPipeline struct {
	retriever ContextRetriever
	adapter   generation.Adapter
	logger    *slog.Logger
	topK      int
}

// DefaultTopK is the number of chunks retrieved per request when no other
// value is configured.
const DefaultTopK = 4

// NewRAGPipeline creates the pipeline. topK <= 0 selects DefaultTopK.
func NewRAGPipeline(retriever ContextRetriever, adapter generation.Adapter, logger *slog.Logger, topK int) *RAGPipeline {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &RAGPipeline{
		retriever: retriever,
		adapter:   adapter,
		logger:    logger.With("component", "rag_pipeline"),
		topK:      topK,
	}
}

// Run executes RETRIEVE then GENERATE for the request. The returned error,
// when non-nil, is always a *TerminalError identifying the failing stage.
func (p *RAGPipeline) Run(ctx context.Context, req domain.GenerationRequest) ([]*domain.Flashcard, error) {
	state := &ragState{}
	p.retrieve(ctx, req, state)
	p.generate(ctx, req, state)

	if state.err != nil {
		return nil, state.err
	}
	return state.cards, nil
}

// retrieve populates the state with supporting context. The retriever is a
// soft dependency and cannot fail on its own; the only failure recorded
// here is caller cancellation.
func (p *RAGPipeline) retrieve(ctx context.Context, req domain.GenerationRequest, state *ragState) {
	if state.err != nil {
		return
	}

	if err := ctx.Err(); err != nil {
		state.err = terminal(StageRetrieve, err)
		return
	}

	state.context = p.retriever.RetrieveContext(ctx, req.Topic, p.topK)
	p.logger.InfoContext(ctx, "retrieved supporting context",
		"stage", StageRetrieve,
		"topic", req.Topic,
		"context_chars", len(state.context))
}

// generate produces flashcards from the topic plus retrieved context. It
// checks the inbound error state and passes it through rather than
// executing.
func (p *RAGPipeline) generate(ctx context.Context, req domain.GenerationRequest, state *ragState) {
	if state.err != nil {
		return
	}

	cards, err := p.adapter.GenerateFlashcardsFromText(ctx, ragInput(req.Topic, state.context), req.Topic, req.Count, nil)
	if err != nil {
		p.logger.ErrorContext(ctx, "generation from context failed",
			"stage", StageGenerate,
			"error", err)
		state.err = terminal(StageGenerate, err)
		return
	}
	if len(cards) == 0 {
		state.err = terminal(StageGenerate, ErrNoContent)
		return
	}

	state.cards = cards
}

// ragInput assembles the generation input. An empty retrieved context is
// not an error by itself; the input falls back to the topic alone.
func ragInput(topic, retrieved string) string {
	if retrieved == "" {
		return fmt.Sprintf("Topic: %s\nNo supporting material was retrieved; rely on general knowledge of the topic.\n", topic)
	}
	return fmt.Sprintf("Topic: %s\nSupporting material:\n%s\n", topic, retrieved)
}
