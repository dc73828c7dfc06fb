package service

import (
	"context"

	"github.com/studyforge/studyforge/internal/domain"
)

// Storage is the persistence port for generated study material. The
// orchestrator treats writes as fire-and-forget: a storage failure is
// logged and never surfaces in a generation response.
type Storage interface {
	// SaveDeck persists a generated deck of flashcards for a topic.
	SaveDeck(ctx context.Context, topic string, cards []*domain.Flashcard) error

	// GetDeckHistory returns the most recently saved flashcards, newest
	// first, up to limit.
	GetDeckHistory(ctx context.Context, limit int) ([]*domain.Flashcard, error)

	// SaveQuizResult records the outcome of a completed quiz.
	SaveQuizResult(ctx context.Context, topic string, score, total int) error

	// GetQuizHistory returns the most recent quiz results, newest first,
	// up to limit.
	GetQuizHistory(ctx context.Context, limit int) ([]domain.QuizResult, error)
}
