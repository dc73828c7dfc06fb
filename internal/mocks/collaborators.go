package mocks

import (
	"context"
	"sync"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/search"
)

// MockSearchService implements search.Service for testing.
type MockSearchService struct {
	mu sync.Mutex

	SearchFn func(ctx context.Context, query string) []search.Result

	Results []search.Result

	SearchCalls int
	LastQuery   string
}

// Search implements search.Service. Per the soft-dependency contract it
// never fails.
func (m *MockSearchService) Search(ctx context.Context, query string) []search.Result {
	m.mu.Lock()
	m.SearchCalls++
	m.LastQuery = query
	m.mu.Unlock()

	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	return m.Results
}

// MockRetriever implements workflow.ContextRetriever for testing.
type MockRetriever struct {
	mu sync.Mutex

	RetrieveContextFn func(ctx context.Context, topic string, k int) string

	Context string

	RetrieveCalls int
	LastTopic     string
}

// RetrieveContext implements workflow.ContextRetriever.
func (m *MockRetriever) RetrieveContext(ctx context.Context, topic string, k int) string {
	m.mu.Lock()
	m.RetrieveCalls++
	m.LastTopic = topic
	m.mu.Unlock()

	if m.RetrieveContextFn != nil {
		return m.RetrieveContextFn(ctx, topic, k)
	}
	return m.Context
}

// MockStorage implements service.Storage for testing.
type MockStorage struct {
	mu sync.Mutex

	SaveDeckFn       func(ctx context.Context, topic string, cards []*domain.Flashcard) error
	GetDeckHistoryFn func(ctx context.Context, limit int) ([]*domain.Flashcard, error)
	SaveQuizResultFn func(ctx context.Context, topic string, score, total int) error
	GetQuizHistoryFn func(ctx context.Context, limit int) ([]domain.QuizResult, error)

	Decks       []*domain.Flashcard
	QuizHistory []domain.QuizResult
	Err         error

	SaveDeckCalls       int
	SaveQuizResultCalls int
}

// SaveDeck implements service.Storage.
func (m *MockStorage) SaveDeck(ctx context.Context, topic string, cards []*domain.Flashcard) error {
	m.mu.Lock()
	m.SaveDeckCalls++
	m.mu.Unlock()

	if m.SaveDeckFn != nil {
		return m.SaveDeckFn(ctx, topic, cards)
	}
	return m.Err
}

// GetDeckHistory implements service.Storage.
func (m *MockStorage) GetDeckHistory(ctx context.Context, limit int) ([]*domain.Flashcard, error) {
	if m.GetDeckHistoryFn != nil {
		return m.GetDeckHistoryFn(ctx, limit)
	}
	return m.Decks, m.Err
}

// SaveQuizResult implements service.Storage.
func (m *MockStorage) SaveQuizResult(ctx context.Context, topic string, score, total int) error {
	m.mu.Lock()
	m.SaveQuizResultCalls++
	m.mu.Unlock()

	if m.SaveQuizResultFn != nil {
		return m.SaveQuizResultFn(ctx, topic, score, total)
	}
	return m.Err
}

// GetQuizHistory implements service.Storage.
func (m *MockStorage) GetQuizHistory(ctx context.Context, limit int) ([]domain.QuizResult, error) {
	if m.GetQuizHistoryFn != nil {
		return m.GetQuizHistoryFn(ctx, limit)
	}
	return m.QuizHistory, m.Err
}

// SaveDeckCallCount returns the number of SaveDeck invocations.
func (m *MockStorage) SaveDeckCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveDeckCalls
}
