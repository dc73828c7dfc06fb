package retrieval

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryIndex is an in-process Index backed by a slice of embedded chunks.
// It serves local runtimes and tests; production deployments use the
// Postgres-backed chunk store.
type MemoryIndex struct {
	mu      sync.RWMutex
	chunks  []Chunk
	vectors [][]float32
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add stores a chunk with its embedding vector.
func (idx *MemoryIndex) Add(chunk Chunk, vector []float32) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.chunks = append(idx.chunks, chunk)
	idx.vectors = append(idx.vectors, vector)
}

// Search returns the k chunks most similar to the query vector by cosine
// similarity, highest first.
func (idx *MemoryIndex) Search(ctx context.Context, vector []float32, k int) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	scored := make([]Chunk, 0, len(idx.chunks))
	for i, chunk := range idx.chunks {
		chunk.Score = CosineSimilarity(vector, idx.vectors[i])
		scored = append(scored, chunk)
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}

// CosineSimilarity scores two embedding vectors. Mismatched or zero-norm
// vectors score zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
