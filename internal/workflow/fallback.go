package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/generation"
	"github.com/studyforge/studyforge/internal/search"
)

// FallbackGraph is the primary-generate-then-fallback state machine:
//
//	START -> PRIMARY_GENERATE
//	PRIMARY_GENERATE --(no error AND non-empty)--> END
//	PRIMARY_GENERATE --(error OR empty)--> DERIVE_QUERY
//	DERIVE_QUERY --(error)--> TERMINAL
//	DERIVE_QUERY --(success)--> SUPPLEMENT_FETCH
//	SUPPLEMENT_FETCH --(always, even with zero results)--> FALLBACK_SYNTHESIZE
//	FALLBACK_SYNTHESIZE --(error)--> TERMINAL
//	FALLBACK_SYNTHESIZE --(success)--> END
//
// A non-empty primary result is success regardless of the requested count;
// count is advisory and there is no top-up pass. Exactly one fallback
// attempt is made per invocation.
type FallbackGraph struct {
	adapter generation.Adapter
	search  search.Service
	logger  *slog.Logger
}

// NewFallbackGraph creates the graph over the given adapter and search
// collaborator.
func NewFallbackGraph(adapter generation.Adapter, searchSvc search.Service, logger *slog.Logger) *FallbackGraph {
	return &FallbackGraph{
		adapter: adapter,
		search:  searchSvc,
		logger:  logger.With("component", "fallback_graph"),
	}
}

// Run executes the state machine for the request and returns the generated
// flashcards. The returned error, when non-nil, is always a *TerminalError
// identifying the failing stage.
func (g *FallbackGraph) Run(ctx context.Context, req domain.GenerationRequest) ([]*domain.Flashcard, error) {
	logger := g.logger.With("topic", req.Topic, "count", req.Count)

	// PRIMARY_GENERATE
	cards, err := g.adapter.GenerateFlashcards(ctx, req.Topic, req.Count)
	if err == nil && len(cards) > 0 {
		logger.InfoContext(ctx, "primary generation succeeded",
			"stage", StagePrimaryGenerate,
			"cards", len(cards))
		return cards, nil
	}

	if err != nil {
		logger.WarnContext(ctx, "primary generation failed, entering fallback",
			"stage", StagePrimaryGenerate,
			"error", err)
	} else {
		logger.WarnContext(ctx, "primary generation returned no cards, entering fallback",
			"stage", StagePrimaryGenerate)
	}

	// DERIVE_QUERY — failure here is fatal, no further fallback.
	query, err := g.adapter.GenerateSearchQuery(ctx, req.Topic, req.ParentTopic)
	if err != nil {
		logger.ErrorContext(ctx, "query derivation failed",
			"stage", StageDeriveQuery,
			"error", err)
		return nil, terminal(StageDeriveQuery, err)
	}

	// SUPPLEMENT_FETCH — search soft-fails to an empty list and the
	// machine always proceeds, even with zero results.
	results := g.search.Search(ctx, query)
	logger.InfoContext(ctx, "fetched supplementary material",
		"stage", StageSupplementFetch,
		"query", query,
		"results", len(results))

	// FALLBACK_SYNTHESIZE
	cards, err = g.adapter.GenerateFlashcardsFromText(ctx, supplementText(req.Topic, results), req.Topic, req.Count, nil)
	if err != nil {
		logger.ErrorContext(ctx, "fallback synthesis failed",
			"stage", StageFallbackSynthesize,
			"error", err)
		return nil, terminal(StageFallbackSynthesize, err)
	}
	if len(cards) == 0 {
		return nil, terminal(StageFallbackSynthesize, ErrNoContent)
	}

	logger.InfoContext(ctx, "fallback synthesis succeeded",
		"stage", StageFallbackSynthesize,
		"cards", len(cards))
	return cards, nil
}

// supplementText assembles the synthesis input from the topic and whatever
// search material was available. The result is never empty so synthesis can
// proceed even when search returned nothing.
func supplementText(topic string, results []search.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic)

	if len(results) == 0 {
		b.WriteString("No supplementary search material was available; rely on general knowledge of the topic.\n")
		return b.String()
	}

	b.WriteString("Supplementary search results:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n", i+1, r.Title, r.Snippet)
	}
	return b.String()
}
