package generation

import (
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/internal/domain"
)

// System prompts shared by all adapter variants. Each instructs the model
// to reply with bare JSON so the response can be parsed by schema.go.
const (
	flashcardSystemPrompt = `You are a study assistant that writes flashcards. ` +
		`Respond with a JSON object of the form {"cards":[{"front":"...","back":"..."}]} and nothing else.`

	quizSystemPrompt = `You are a study assistant that writes multiple-choice quiz questions. ` +
		`Respond with a JSON object of the form ` +
		`{"questions":[{"question":"...","options":["..."],"correct_answer":"...","explanation":"..."}]} and nothing else.`

	plainTextSystemPrompt = `You are a concise study assistant. Respond with plain text only.`

	subTopicsSystemPrompt = `You are a study assistant. Respond with a JSON object of the form ` +
		`{"topics":["..."]} and nothing else.`

	searchQuerySystemPrompt = `You derive short web search queries. Respond with the query text only, ` +
		`no quotes and no explanation.`
)

// FlashcardPrompt builds the user prompt for topic-based flashcard generation.
func FlashcardPrompt(topic string, count int) string {
	return fmt.Sprintf("Write about %d flashcards covering the most important facts about %q.", count, topic)
}

// FlashcardFromTextPrompt builds the user prompt for text-grounded flashcard
// generation. pageInfo may be nil.
func FlashcardFromTextPrompt(text, topic string, count int, pageInfo *PageInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write about %d flashcards on the topic %q using only the source text below.\n", count, topic)
	if pageInfo != nil && pageInfo.Label != "" {
		fmt.Fprintf(&b, "The source text comes from %s.\n", pageInfo.Label)
	}
	b.WriteString("\nSource text:\n")
	b.WriteString(text)
	return b.String()
}

// SearchQueryPrompt builds the user prompt for deriving a web search query.
func SearchQueryPrompt(topic, parentTopic string) string {
	if parentTopic != "" {
		return fmt.Sprintf("Derive a web search query for study material about %q in the context of %q.", topic, parentTopic)
	}
	return fmt.Sprintf("Derive a web search query for study material about %q.", topic)
}

// QuizFromFlashcardsPrompt builds the user prompt for turning flashcards
// into quiz questions.
func QuizFromFlashcardsPrompt(cards []*domain.Flashcard, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write about %d multiple-choice questions based on the flashcards below.\n\n", count)
	for i, card := range cards {
		fmt.Fprintf(&b, "%d. Front: %s\n   Back: %s\n", i+1, card.Front, card.Back)
	}
	return b.String()
}

// AdvancedQuizPrompt builds the user prompt for quiz questions informed by
// a learner's previous results.
func AdvancedQuizPrompt(previousResults string, mode domain.GenerationMode) string {
	return fmt.Sprintf(
		"Write harder multiple-choice questions (mode %s) that target the weaknesses visible in these previous results:\n\n%s",
		mode, previousResults)
}

// SummaryPrompt builds the user prompt for a topic summary.
func SummaryPrompt(topic string) string {
	return fmt.Sprintf("Write a short study summary of %q in at most three paragraphs.", topic)
}

// SubTopicsPrompt builds the user prompt for sub-topic suggestions.
func SubTopicsPrompt(topic string) string {
	return fmt.Sprintf("Suggest up to five sub-topics a learner should study next after %q.", topic)
}

// BriefAnswerPrompt builds the user prompt for answering a free-form
// question, optionally grounded in retrieved text.
func BriefAnswerPrompt(question, supportingText string) string {
	if strings.TrimSpace(supportingText) == "" {
		return fmt.Sprintf("Answer briefly: %s", question)
	}
	return fmt.Sprintf("Using the context below where relevant, answer briefly: %s\n\nContext:\n%s", question, supportingText)
}
