package workflow

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/generation"
	"github.com/studyforge/studyforge/internal/mocks"
	"github.com/studyforge/studyforge/internal/search"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func makeCards(t *testing.T, topic string, n int) []*domain.Flashcard {
	t.Helper()
	cards := make([]*domain.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		card, err := domain.NewFlashcard("front", "back", topic, nil)
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return cards
}

func fallbackRequest(topic string, count int) domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:           topic,
		Count:           count,
		Mode:            domain.ModeFlashcards,
		KnowledgeSource: domain.SourceGeneral,
		Runtime:         domain.RuntimeRemote,
	}
}

// Scenario A: a non-empty primary result is success regardless of the
// requested count, and no fallback method is invoked.
func TestFallbackGraphPrimarySuccessUnderCount(t *testing.T) {
	adapter := &mocks.MockAdapter{Cards: makeCards(t, "TypeScript", 2)}
	searchSvc := &mocks.MockSearchService{}
	graph := NewFallbackGraph(adapter, searchSvc, testLogger())

	cards, err := graph.Run(context.Background(), fallbackRequest("TypeScript", 5))
	require.NoError(t, err)

	assert.Len(t, cards, 2)
	assert.Equal(t, 1, adapter.FlashcardsCalls)
	assert.Zero(t, adapter.SearchQueryCalls)
	assert.Zero(t, adapter.FlashcardsFromTextCalls)
	assert.Zero(t, searchSvc.SearchCalls)
}

// Scenario B: primary fails, fallback succeeds with whatever it can produce.
func TestFallbackGraphFallbackOnPrimaryError(t *testing.T) {
	fallbackCards := makeCards(t, "Go", 1)
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFn: func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
			return nil, errors.New("Primary failed")
		},
		GenerateSearchQueryFn: func(ctx context.Context, topic, parentTopic string) (string, error) {
			return "search query", nil
		},
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			return fallbackCards, nil
		},
	}
	searchSvc := &mocks.MockSearchService{
		Results: []search.Result{{Title: "Go Blog", Link: "https://go.dev", Snippet: "about go"}},
	}
	graph := NewFallbackGraph(adapter, searchSvc, testLogger())

	cards, err := graph.Run(context.Background(), fallbackRequest("Go", 5))
	require.NoError(t, err)

	assert.Equal(t, fallbackCards, cards)
	assert.Equal(t, 1, adapter.SearchQueryCalls)
	assert.Equal(t, 1, adapter.FlashcardsFromTextCalls)
	assert.Equal(t, 1, searchSvc.SearchCalls)
	assert.Equal(t, "search query", searchSvc.LastQuery)
	assert.Contains(t, adapter.LastText, "about go")
}

// Fallback also triggers when primary succeeds with an empty result.
func TestFallbackGraphFallbackOnEmptyPrimary(t *testing.T) {
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFn: func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
			return nil, nil
		},
		GenerateSearchQueryFn: func(ctx context.Context, topic, parentTopic string) (string, error) {
			return "derived", nil
		},
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			return makeCards(t, topic, 3), nil
		},
	}
	graph := NewFallbackGraph(adapter, &mocks.MockSearchService{}, testLogger())

	cards, err := graph.Run(context.Background(), fallbackRequest("Go", 5))
	require.NoError(t, err)

	assert.Len(t, cards, 3)
	assert.Equal(t, 1, adapter.SearchQueryCalls)
	assert.Equal(t, 1, adapter.FlashcardsFromTextCalls)
}

// Scenario C: every adapter method fails; the error identifies the chain.
func TestFallbackGraphAllPathsFail(t *testing.T) {
	adapter := &mocks.MockAdapter{Err: errors.New("model unavailable")}
	graph := NewFallbackGraph(adapter, &mocks.MockSearchService{}, testLogger())

	_, err := graph.Run(context.Background(), fallbackRequest("Go", 5))
	require.Error(t, err)

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.Equal(t, StageDeriveQuery, terminalErr.Stage)
	assert.ErrorContains(t, err, "model unavailable")
	assert.ErrorContains(t, err, StageDeriveQuery)
}

// A derive-query failure is fatal: synthesis is never attempted.
func TestFallbackGraphDeriveQueryFailureIsTerminal(t *testing.T) {
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFn: func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
			return nil, errors.New("primary down")
		},
		GenerateSearchQueryFn: func(ctx context.Context, topic, parentTopic string) (string, error) {
			return "", errors.New("query derivation down")
		},
	}
	searchSvc := &mocks.MockSearchService{}
	graph := NewFallbackGraph(adapter, searchSvc, testLogger())

	_, err := graph.Run(context.Background(), fallbackRequest("Go", 5))

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.Equal(t, StageDeriveQuery, terminalErr.Stage)
	assert.Zero(t, searchSvc.SearchCalls)
	assert.Zero(t, adapter.FlashcardsFromTextCalls)
}

// Zero search results still proceed to synthesis.
func TestFallbackGraphProceedsWithEmptySearch(t *testing.T) {
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFn: func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
			return nil, errors.New("primary down")
		},
		GenerateSearchQueryFn: func(ctx context.Context, topic, parentTopic string) (string, error) {
			return "derived", nil
		},
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			assert.Contains(t, text, "No supplementary search material")
			return makeCards(t, topic, 1), nil
		},
	}
	graph := NewFallbackGraph(adapter, &mocks.MockSearchService{}, testLogger())

	cards, err := graph.Run(context.Background(), fallbackRequest("Go", 5))
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

// Synthesis failure is terminal; there is no secondary fallback.
func TestFallbackGraphSynthesisFailureIsTerminal(t *testing.T) {
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFn: func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
			return nil, errors.New("primary down")
		},
		GenerateSearchQueryFn: func(ctx context.Context, topic, parentTopic string) (string, error) {
			return "derived", nil
		},
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			return nil, errors.New("synthesis down")
		},
	}
	graph := NewFallbackGraph(adapter, &mocks.MockSearchService{}, testLogger())

	_, err := graph.Run(context.Background(), fallbackRequest("Go", 5))

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.Equal(t, StageFallbackSynthesize, terminalErr.Stage)
	assert.ErrorContains(t, err, "synthesis down")
	assert.Equal(t, 1, adapter.FlashcardsFromTextCalls)
}

// An empty synthesis result is never returned silently.
func TestFallbackGraphEmptySynthesisIsTerminal(t *testing.T) {
	adapter := &mocks.MockAdapter{
		GenerateFlashcardsFn: func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
			return nil, nil
		},
		GenerateSearchQueryFn: func(ctx context.Context, topic, parentTopic string) (string, error) {
			return "derived", nil
		},
		GenerateFlashcardsFromTextFn: func(ctx context.Context, text, topic string, count int, _ *generation.PageInfo) ([]*domain.Flashcard, error) {
			return nil, nil
		},
	}
	graph := NewFallbackGraph(adapter, &mocks.MockSearchService{}, testLogger())

	_, err := graph.Run(context.Background(), fallbackRequest("Go", 5))

	var terminalErr *TerminalError
	require.ErrorAs(t, err, &terminalErr)
	assert.ErrorIs(t, err, ErrNoContent)
}
