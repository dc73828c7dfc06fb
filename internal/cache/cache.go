package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studyforge/studyforge/internal/domain"
)

// DefaultTTL is applied when no TTL is configured.
const DefaultTTL = 30 * time.Minute

// ResponseCache stores generation results under request-derived keys.
// Implementations never return a value whose expiry has passed, and never
// fail: a backend error on read is a miss, on write a no-op.
type ResponseCache interface {
	// Get returns the cached result for key if present and unexpired.
	Get(ctx context.Context, key string) (*domain.GenerationResult, bool)

	// Set stores value under key with a fresh expiry, unconditionally
	// overwriting any existing entry.
	Set(ctx context.Context, key string, value *domain.GenerationResult)
}

// Key derives the composite cache key from the request fields that
// determine a generation outcome. Keys are normalized to lowercase so
// equivalent requests collide.
func Key(req domain.GenerationRequest) string {
	return strings.ToLower(fmt.Sprintf("%s:%d:%s:%s",
		strings.TrimSpace(req.Topic), req.Count, req.Mode, req.KnowledgeSource))
}

// Entry is a single cached value with its validity window.
// Invariant: ExpiresAt is strictly after CreatedAt.
type Entry struct {
	Key       string
	Value     *domain.GenerationResult
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is no longer valid at the given time.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
