package generation

import (
	"context"

	"github.com/studyforge/studyforge/internal/domain"
)

// PageInfo optionally identifies where supplied text came from when it was
// extracted from a paginated document.
type PageInfo struct {
	// Label is a human-readable page descriptor, e.g. "p. 12-14".
	Label string

	// First and Last bound the page range the text was taken from.
	First int
	Last  int
}

// Adapter is the pluggable boundary to an AI backend capable of producing
// study content. Every method is context-aware and may fail; callers are
// responsible for converting failures into workflow transitions.
//
// Named variants: the Gemini adapter (internal/platform/gemini) serves the
// remote runtime, the Ollama adapter (internal/platform/ollama) serves the
// local runtime, and internal/mocks provides a scriptable test variant.
type Adapter interface {
	// GenerateFlashcards produces flashcards for a topic from the model's
	// own knowledge. Count is a hint, not a guarantee.
	GenerateFlashcards(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error)

	// GenerateFlashcardsFromText produces flashcards grounded in the
	// supplied text. pageInfo may be nil.
	GenerateFlashcardsFromText(ctx context.Context, text, topic string, count int, pageInfo *PageInfo) ([]*domain.Flashcard, error)

	// GenerateSearchQuery derives a web search query for a topic,
	// optionally scoped by a parent topic. Used by the fallback path.
	GenerateSearchQuery(ctx context.Context, topic, parentTopic string) (string, error)

	// GenerateAdvancedQuiz produces quiz questions informed by a learner's
	// previous results.
	GenerateAdvancedQuiz(ctx context.Context, previousResults string, mode domain.GenerationMode) ([]*domain.QuizQuestion, error)

	// GenerateQuizFromFlashcards turns existing flashcards into quiz
	// questions.
	GenerateQuizFromFlashcards(ctx context.Context, cards []*domain.Flashcard, count int) ([]*domain.QuizQuestion, error)

	// GenerateSummary produces a short prose summary of a topic.
	GenerateSummary(ctx context.Context, topic string) (string, error)

	// GenerateSubTopics suggests related sub-topics worth studying next.
	GenerateSubTopics(ctx context.Context, topic string) ([]string, error)

	// GenerateBriefAnswer answers a free-form question, optionally
	// grounded in retrieved supporting text.
	GenerateBriefAnswer(ctx context.Context, question, supportingText string) (string, error)
}
