package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/domain"
)

// MemoryStorage is an in-process Storage used when no database is
// configured. History survives only for the lifetime of the process.
type MemoryStorage struct {
	mu      sync.RWMutex
	cards   []*domain.Flashcard
	results []domain.QuizResult
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Ensure MemoryStorage implements the storage port.
var _ Storage = (*MemoryStorage)(nil)

// SaveDeck implements Storage.
func (s *MemoryStorage) SaveDeck(ctx context.Context, topic string, cards []*domain.Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, cards...)
	return nil
}

// GetDeckHistory implements Storage. Cards are returned newest first.
func (s *MemoryStorage) GetDeckHistory(ctx context.Context, limit int) ([]*domain.Flashcard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Flashcard, 0, limit)
	for i := len(s.cards) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.cards[i])
	}
	return out, nil
}

// SaveQuizResult implements Storage.
func (s *MemoryStorage) SaveQuizResult(ctx context.Context, topic string, score, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, domain.QuizResult{
		ID:      uuid.New(),
		Topic:   topic,
		Score:   score,
		Total:   total,
		TakenAt: time.Now().UTC(),
	})
	return nil
}

// GetQuizHistory implements Storage. Results are returned newest first.
func (s *MemoryStorage) GetQuizHistory(ctx context.Context, limit int) ([]domain.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.QuizResult, 0, limit)
	for i := len(s.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.results[i])
	}
	return out, nil
}
