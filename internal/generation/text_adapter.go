package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/internal/domain"
)

// TextGenerator generates text from a system prompt and a user prompt.
// All LLM providers (Gemini, Ollama) implement this interface.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TextAdapter implements Adapter on top of any TextGenerator by pairing
// the shared prompts with the shared response schema parsing. Provider
// packages only have to supply text in, text out.
type TextAdapter struct {
	gen TextGenerator
}

// NewTextAdapter builds an Adapter backed by the given provider.
func NewTextAdapter(gen TextGenerator) *TextAdapter {
	return &TextAdapter{gen: gen}
}

// GenerateFlashcards produces flashcards for a topic from the model's own
// knowledge.
func (a *TextAdapter) GenerateFlashcards(ctx context.Context, topic string, count int) ([]*domain.Flashcard, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyPrompt
	}

	raw, err := a.gen.GenerateText(ctx, flashcardSystemPrompt, FlashcardPrompt(topic, count))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return ParseFlashcards(raw, topic, nil)
}

// GenerateFlashcardsFromText produces flashcards grounded in the supplied text.
func (a *TextAdapter) GenerateFlashcardsFromText(
	ctx context.Context,
	text, topic string,
	count int,
	pageInfo *PageInfo,
) ([]*domain.Flashcard, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPrompt
	}

	raw, err := a.gen.GenerateText(ctx, flashcardSystemPrompt, FlashcardFromTextPrompt(text, topic, count, pageInfo))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var source *domain.CardSource
	if pageInfo != nil {
		source = &domain.CardSource{Title: pageInfo.Label, Page: pageInfo.First}
	}
	return ParseFlashcards(raw, topic, source)
}

// GenerateSearchQuery derives a web search query for a topic.
func (a *TextAdapter) GenerateSearchQuery(ctx context.Context, topic, parentTopic string) (string, error) {
	raw, err := a.gen.GenerateText(ctx, searchQuerySystemPrompt, SearchQueryPrompt(topic, parentTopic))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	query := strings.TrimSpace(strings.Trim(StripFences(raw), `"`))
	if query == "" {
		return "", fmt.Errorf("%w: empty search query", ErrInvalidResponse)
	}
	return query, nil
}

// GenerateAdvancedQuiz produces quiz questions informed by previous results.
func (a *TextAdapter) GenerateAdvancedQuiz(
	ctx context.Context,
	previousResults string,
	mode domain.GenerationMode,
) ([]*domain.QuizQuestion, error) {
	if strings.TrimSpace(previousResults) == "" {
		return nil, ErrEmptyPrompt
	}

	raw, err := a.gen.GenerateText(ctx, quizSystemPrompt, AdvancedQuizPrompt(previousResults, mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return ParseQuizQuestions(raw)
}

// GenerateQuizFromFlashcards turns existing flashcards into quiz questions.
func (a *TextAdapter) GenerateQuizFromFlashcards(
	ctx context.Context,
	cards []*domain.Flashcard,
	count int,
) ([]*domain.QuizQuestion, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyPrompt
	}

	raw, err := a.gen.GenerateText(ctx, quizSystemPrompt, QuizFromFlashcardsPrompt(cards, count))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return ParseQuizQuestions(raw)
}

// GenerateSummary produces a short prose summary of a topic.
func (a *TextAdapter) GenerateSummary(ctx context.Context, topic string) (string, error) {
	raw, err := a.gen.GenerateText(ctx, plainTextSystemPrompt, SummaryPrompt(topic))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return strings.TrimSpace(raw), nil
}

// GenerateSubTopics suggests related sub-topics worth studying next.
func (a *TextAdapter) GenerateSubTopics(ctx context.Context, topic string) ([]string, error) {
	raw, err := a.gen.GenerateText(ctx, subTopicsSystemPrompt, SubTopicsPrompt(topic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return ParseSubTopics(raw)
}

// GenerateBriefAnswer answers a free-form question, optionally grounded in
// retrieved supporting text.
func (a *TextAdapter) GenerateBriefAnswer(ctx context.Context, question, supportingText string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyPrompt
	}

	raw, err := a.gen.GenerateText(ctx, plainTextSystemPrompt, BriefAnswerPrompt(question, supportingText))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return strings.TrimSpace(raw), nil
}

// Compile-time check that TextAdapter satisfies the Adapter interface.
var _ Adapter = (*TextAdapter)(nil)
