package mocks

import (
	"context"
	"sync"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/generation"
)

// MockAdapter implements generation.Adapter for testing. It doubles as the
// mock adapter variant of the capability interface.
type MockAdapter struct {
	mu sync.Mutex

	// Custom behavior functions
	GenerateFlashcardsFn         func(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error)
	GenerateFlashcardsFromTextFn func(ctx context.Context, text, topic string, count int, pageInfo *generation.PageInfo) ([]*domain.Flashcard, error)
	GenerateSearchQueryFn        func(ctx context.Context, topic, parentTopic string) (string, error)
	GenerateAdvancedQuizFn       func(ctx context.Context, previousResults string, mode domain.GenerationMode) ([]*domain.QuizQuestion, error)
	GenerateQuizFromFlashcardsFn func(ctx context.Context, cards []*domain.Flashcard, count int) ([]*domain.QuizQuestion, error)
	GenerateSummaryFn            func(ctx context.Context, topic string) (string, error)
	GenerateSubTopicsFn          func(ctx context.Context, topic string) ([]string, error)
	GenerateBriefAnswerFn        func(ctx context.Context, question, supportingText string) (string, error)

	// Default response values used when no Fn is set
	Cards     []*domain.Flashcard
	Questions []*domain.QuizQuestion
	Query     string
	Text      string
	Topics    []string
	Err       error

	// Call counters for interaction verification
	FlashcardsCalls         int
	FlashcardsFromTextCalls int
	SearchQueryCalls        int
	AdvancedQuizCalls       int
	QuizFromFlashcardsCalls int
	SummaryCalls            int
	SubTopicsCalls          int
	BriefAnswerCalls        int

	// Captured arguments from the most recent calls
	LastTopic       string
	LastParentTopic string
	LastText        string
	LastQuestion    string
}

// GenerateFlashcards implements generation.Adapter.
func (m *MockAdapter) GenerateFlashcards(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
	m.mu.Lock()
	m.FlashcardsCalls++
	m.LastTopic = topic
	m.mu.Unlock()

	if m.GenerateFlashcardsFn != nil {
		return m.GenerateFlashcardsFn(ctx, topic, count)
	}
	return m.Cards, m.Err
}

// GenerateFlashcardsFromText implements generation.Adapter.
func (m *MockAdapter) GenerateFlashcardsFromText(
	ctx context.Context,
	text, topic string,
	count int,
	pageInfo *generation.PageInfo,
) ([]*domain.Flashcard, error) {
	m.mu.Lock()
	m.FlashcardsFromTextCalls++
	m.LastText = text
	m.LastTopic = topic
	m.mu.Unlock()

	if m.GenerateFlashcardsFromTextFn != nil {
		return m.GenerateFlashcardsFromTextFn(ctx, text, topic, count, pageInfo)
	}
	return m.Cards, m.Err
}

// GenerateSearchQuery implements generation.Adapter.
func (m *MockAdapter) GenerateSearchQuery(ctx context.Context, topic, parentTopic string) (string, error) {
	m.mu.Lock()
	m.SearchQueryCalls++
	m.LastTopic = topic
	m.LastParentTopic = parentTopic
	m.mu.Unlock()

	if m.GenerateSearchQueryFn != nil {
		return m.GenerateSearchQueryFn(ctx, topic, parentTopic)
	}
	return m.Query, m.Err
}

// GenerateAdvancedQuiz implements generation.Adapter.
func (m *MockAdapter) GenerateAdvancedQuiz(
	ctx context.Context,
	previousResults string,
	mode domain.GenerationMode,
) ([]*domain.QuizQuestion, error) {
	m.mu.Lock()
	m.AdvancedQuizCalls++
	m.mu.Unlock()

	if m.GenerateAdvancedQuizFn != nil {
		return m.GenerateAdvancedQuizFn(ctx, previousResults, mode)
	}
	return m.Questions, m.Err
}

// GenerateQuizFromFlashcards implements generation.Adapter.
func (m *MockAdapter) GenerateQuizFromFlashcards(
	ctx context.Context,
	cards []*domain.Flashcard,
	count int,
) ([]*domain.QuizQuestion, error) {
	m.mu.Lock()
	m.QuizFromFlashcardsCalls++
	m.mu.Unlock()

	if m.GenerateQuizFromFlashcardsFn != nil {
		return m.GenerateQuizFromFlashcardsFn(ctx, cards, count)
	}
	return m.Questions, m.Err
}

// GenerateSummary implements generation.Adapter.
func (m *MockAdapter) GenerateSummary(ctx context.Context, topic string) (string, error) {
	m.mu.Lock()
	m.SummaryCalls++
	m.LastTopic = topic
	m.mu.Unlock()

	if m.GenerateSummaryFn != nil {
		return m.GenerateSummaryFn(ctx, topic)
	}
	return m.Text, m.Err
}

// GenerateSubTopics implements generation.Adapter.
func (m *MockAdapter) GenerateSubTopics(ctx context.Context, topic string) ([]string, error) {
	m.mu.Lock()
	m.SubTopicsCalls++
	m.LastTopic = topic
	m.mu.Unlock()

	if m.GenerateSubTopicsFn != nil {
		return m.GenerateSubTopicsFn(ctx, topic)
	}
	return m.Topics, m.Err
}

// GenerateBriefAnswer implements generation.Adapter.
func (m *MockAdapter) GenerateBriefAnswer(ctx context.Context, question, supportingText string) (string, error) {
	m.mu.Lock()
	m.BriefAnswerCalls++
	m.LastQuestion = question
	m.mu.Unlock()

	if m.GenerateBriefAnswerFn != nil {
		return m.GenerateBriefAnswerFn(ctx, question, supportingText)
	}
	return m.Text, m.Err
}

// Compile-time check that MockAdapter satisfies generation.Adapter.
var _ generation.Adapter = (*MockAdapter)(nil)
