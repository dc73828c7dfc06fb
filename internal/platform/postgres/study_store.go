package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/service"
)

// DBTX is the subset of pgx operations the stores need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so stores run against a pool or
// inside a caller-managed transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// StudyStore implements the service storage port on PostgreSQL. It holds
// generated decks and quiz history.
type StudyStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewStudyStore creates a StudyStore. The connection should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewStudyStore(db DBTX, logger *slog.Logger) *StudyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_store")),
	}
}

// Ensure StudyStore implements the service storage port.
var _ service.Storage = (*StudyStore)(nil)

// SaveDeck persists a generated deck of flashcards. Cards are written in
// one batch; the card source, when present, is stored as JSON.
func (s *StudyStore) SaveDeck(ctx context.Context, topic string, cards []*domain.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, card := range cards {
		var source []byte
		if card.Source != nil {
			encoded, err := json.Marshal(card.Source)
			if err != nil {
				return fmt.Errorf("failed to encode card source: %w", err)
			}
			source = encoded
		}
		batch.Queue(
			`INSERT INTO flashcards (id, front, back, topic, source, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO NOTHING`,
			card.ID, card.Front, card.Back, card.Topic, source, card.CreatedAt,
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			s.logger.WarnContext(ctx, "failed to close batch results", "error", err)
		}
	}()

	for range cards {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save deck: %w", MapError(err))
		}
	}

	s.logger.DebugContext(ctx, "deck saved", "topic", topic, "cards", len(cards))
	return nil
}

// GetDeckHistory returns the most recently generated flashcards, newest
// first.
func (s *StudyStore) GetDeckHistory(ctx context.Context, limit int) ([]*domain.Flashcard, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, front, back, topic, source, created_at
		 FROM flashcards
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query deck history: %w", MapError(err))
	}
	defer rows.Close()

	var cards []*domain.Flashcard
	for rows.Next() {
		var card domain.Flashcard
		var source []byte
		if err := rows.Scan(&card.ID, &card.Front, &card.Back, &card.Topic, &source, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard: %w", MapError(err))
		}
		if len(source) > 0 {
			card.Source = &domain.CardSource{}
			if err := json.Unmarshal(source, card.Source); err != nil {
				return nil, fmt.Errorf("failed to decode card source: %w", err)
			}
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck history: %w", MapError(err))
	}

	return cards, nil
}

// SaveQuizResult records the outcome of a completed quiz.
func (s *StudyStore) SaveQuizResult(ctx context.Context, topic string, score, total int) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO quiz_results (id, topic, score, total, taken_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		uuid.New(), topic, score, total,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz result: %w", MapError(err))
	}
	return nil
}

// GetQuizHistory returns the most recent quiz results, newest first.
func (s *StudyStore) GetQuizHistory(ctx context.Context, limit int) ([]domain.QuizResult, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, topic, score, total, taken_at
		 FROM quiz_results
		 ORDER BY taken_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz history: %w", MapError(err))
	}
	defer rows.Close()

	var results []domain.QuizResult
	for rows.Next() {
		var result domain.QuizResult
		if err := rows.Scan(&result.ID, &result.Topic, &result.Score, &result.Total, &result.TakenAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %w", MapError(err))
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quiz history: %w", MapError(err))
	}

	return results, nil
}
