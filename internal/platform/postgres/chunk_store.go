package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/retrieval"
)

// ChunkStore implements the retrieval index on PostgreSQL. Embeddings are
// stored as float arrays; candidates are scored by cosine similarity in
// process, which is adequate for the corpus sizes one deployment holds.
type ChunkStore struct {
	db     DBTX
	logger *slog.Logger

	// maxCandidates bounds how many rows a search loads for scoring.
	maxCandidates int
}

// DefaultMaxCandidates caps the candidate rows loaded per search.
const DefaultMaxCandidates = 1000

// NewChunkStore creates a ChunkStore. maxCandidates <= 0 selects
// DefaultMaxCandidates.
func NewChunkStore(db DBTX, logger *slog.Logger, maxCandidates int) *ChunkStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	return &ChunkStore{
		db:            db,
		logger:        logger.With(slog.String("component", "chunk_store")),
		maxCandidates: maxCandidates,
	}
}

// Ensure ChunkStore implements the retrieval index.
var _ retrieval.Index = (*ChunkStore)(nil)

// Add stores a text chunk with its embedding vector. It is the ingestion
// entry point for tooling that loads source documents into the index.
func (s *ChunkStore) Add(ctx context.Context, text string, vector []float32) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO chunks (id, content, embedding, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		uuid.New(), text, vector,
	)
	if err != nil {
		return fmt.Errorf("failed to store chunk: %w", MapError(err))
	}
	return nil
}

// Search returns the k stored chunks most similar to the query vector by
// cosine similarity, highest first.
func (s *ChunkStore) Search(ctx context.Context, vector []float32, k int) ([]retrieval.Chunk, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, content, embedding
		 FROM chunks
		 ORDER BY created_at DESC
		 LIMIT $1`,
		s.maxCandidates,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", MapError(err))
	}
	defer rows.Close()

	var scored []retrieval.Chunk
	for rows.Next() {
		var id uuid.UUID
		var content string
		var embedding []float32
		if err := rows.Scan(&id, &content, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", MapError(err))
		}
		scored = append(scored, retrieval.Chunk{
			ID:    id.String(),
			Text:  content,
			Score: retrieval.CosineSimilarity(vector, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chunks: %w", MapError(err))
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if k < len(scored) {
		scored = scored[:k]
	}

	s.logger.DebugContext(ctx, "chunk search", "candidates", len(scored), "k", k)
	return scored, nil
}
