package search

import (
	"context"
	"log/slog"
)

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Service searches the web for a query. Implementations must honor the
// soft-dependency contract: Search never returns an error, only a possibly
// empty slice.
type Service interface {
	Search(ctx context.Context, query string) []Result
}

// Searcher is the raw, failure-prone search boundary implemented by
// concrete clients.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// SoftService adapts a failure-prone Searcher to the Service contract by
// absorbing every error into an empty result list.
type SoftService struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewSoftService wraps the given searcher.
func NewSoftService(searcher Searcher, logger *slog.Logger) *SoftService {
	return &SoftService{
		searcher: searcher,
		logger:   logger.With("component", "search_service"),
	}
}

// Search returns results for the query, or an empty slice if the underlying
// searcher is unavailable or fails.
func (s *SoftService) Search(ctx context.Context, query string) []Result {
	if s.searcher == nil || query == "" {
		return nil
	}

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "search failed, returning empty results",
			"query", query,
			"error", err)
		return nil
	}
	return results
}

// Compile-time check that SoftService satisfies the Service interface.
var _ Service = (*SoftService)(nil)
