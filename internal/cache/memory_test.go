package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testResult(t *testing.T) *domain.GenerationResult {
	t.Helper()
	card, err := domain.NewFlashcard("front", "back", "Go", nil)
	require.NoError(t, err)
	return &domain.GenerationResult{Cards: []*domain.Flashcard{card}}
}

func TestKeyDerivation(t *testing.T) {
	req := domain.GenerationRequest{
		Topic:           "TypeScript",
		Count:           5,
		Mode:            domain.ModeFlashcards,
		KnowledgeSource: domain.SourceGeneral,
	}

	assert.Equal(t, "typescript:5:flashcards:general", Key(req))

	// Equivalent requests produce the same key regardless of casing.
	req.Topic = "typescript"
	assert.Equal(t, "typescript:5:flashcards:general", Key(req))

	// Different count, different key.
	req.Count = 10
	assert.NotEqual(t, "typescript:5:flashcards:general", Key(req))
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0, testLogger())
	defer c.Stop()

	ctx := context.Background()
	want := testResult(t)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", want)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Idempotence: a second get with no intervening set returns the same value.
	got2, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, got, got2)
}

func TestMemoryCacheTTLLaw(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0, testLogger())
	defer c.Stop()

	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", testResult(t))

	// Still valid just before expiry.
	c.now = func() time.Time { return now.Add(time.Minute - time.Millisecond) }
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	// Reading after expiry returns absent and removes the entry.
	c.now = func() time.Time { return now.Add(time.Minute) }
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCacheSetOverwrites(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0, testLogger())
	defer c.Stop()

	ctx := context.Background()
	first := testResult(t)
	second := testResult(t)

	c.Set(ctx, "k", first)
	c.Set(ctx, "k", second)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestMemoryCacheSweepRemovesUnreadEntries(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0, testLogger())
	defer c.Stop()

	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "a", testResult(t))
	c.Set(ctx, "b", testResult(t))
	require.Equal(t, 2, c.Len())

	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	removed := c.sweep()

	assert.Equal(t, 2, removed)
	assert.Zero(t, c.Len())
}

func TestEntryInvariant(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0, testLogger())
	defer c.Stop()

	c.Set(context.Background(), "k", testResult(t))

	c.mu.Lock()
	entry := c.entries["k"]
	c.mu.Unlock()

	assert.True(t, entry.ExpiresAt.After(entry.CreatedAt))
}
