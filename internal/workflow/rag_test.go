package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/generation"
	"github.com/studyforge/studyforge/internal/mocks"
)

func ragRequest(topic string, count int) domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:           topic,
		Count:           count,
		Mode:            domain.ModeFlashcards,
		KnowledgeSource: domain.SourceDocuments,
		Runtime:         domain.RuntimeRemote,
	}
}

func TestRAGPipelineRetrieveThenGenerate(t *testing.T) {
	retriever := &mocks.MockRetriever{Context: "retrieved chunk text"}
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			assert.Contains(t, text, "retrieved chunk text")
			return makeCards(t, topic, 2), nil
		},
	}
	pipeline := NewRAGPipeline(retriever, adapter, testLogger(), 4)

	cards, err := pipeline.Run(context.Background(), ragRequest("Go", 5))
	require.NoError(t, err)

	assert.Len(t, cards, 2)
	assert.Equal(t, 1, retriever.RetrieveCalls)
	assert.Equal(t, "Go", retriever.LastTopic)
}

// Empty retrieved context is not an error by itself; generation proceeds
// from the topic alone.
func TestRAGPipelineEmptyContextProceeds(t *testing.T) {
	retriever := &mocks.MockRetriever{Context: ""}
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			assert.Contains(t, text, "No supporting material was retrieved")
			return makeCards(t, topic, 1), nil
		},
	}
	pipeline := NewRAGPipeline(retriever, adapter, testLogger(), 0)

	cards, err := pipeline.Run(context.Background(), ragRequest("Go", 5))
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

// Generation failure is terminal; there is no fallback chain in RAG mode.
func TestRAGPipelineGenerateFailureIsTerminal(t *testing.T) {
	retriever := &mocks.MockRetriever{Context: "ctx"}
	adapter := &mocks.MockAdapter{Err: errors.New("generation down")}
	pipeline := NewRAGPipeline(retriever, adapter, testLogger(), 4)

	_, err := pipeline.Run(context.Background(), ragRequest("Go", 5))

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.Equal(t, StageGenerate, terminalErr.Stage)
	assert.ErrorContains(t, err, "generation down")
	assert.Zero(t, adapter.SearchQueryCalls)
}

// A failure recorded during RETRIEVE short-circuits GENERATE: the later
// stage observes the inbound error state and passes it through.
func TestRAGPipelineRetrieveFailureSkipsGenerate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	retriever := &mocks.MockRetriever{Context: "never used"}
	adapter := &mocks.MockAdapter{}
	pipeline := NewRAGPipeline(retriever, adapter, testLogger(), 4)

	_, err := pipeline.Run(ctx, ragRequest("Go", 5))

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.Equal(t, StageRetrieve, terminalErr.Stage)
	assert.Zero(t, adapter.FlashcardsFromTextCalls)
	assert.Zero(t, retriever.RetrieveCalls)
}

// An empty generation result is never returned silently.
func TestRAGPipelineEmptyResultIsTerminal(t *testing.T) {
	retriever := &mocks.MockRetriever{Context: "ctx"}
	adapter := &mocks.MockAdapter{}
	pipeline := NewRAGPipeline(retriever, adapter, testLogger(), 4)

	_, err := pipeline.Run(context.Background(), ragRequest("Go", 5))

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.ErrorIs(t, err, ErrNoContent)
}
