package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/internal/domain"
)

// cardSchema mirrors the JSON shape adapters ask the model to emit for
// flashcards.
type cardSchema struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type flashcardResponseSchema struct {
	Cards []cardSchema `json:"cards"`
}

// questionSchema mirrors the JSON shape adapters ask the model to emit for
// quiz questions.
type questionSchema struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type quizResponseSchema struct {
	Questions []questionSchema `json:"questions"`
}

type topicsResponseSchema struct {
	Topics []string `json:"topics"`
}

// StripFences removes a surrounding markdown code fence from a model
// response, if present. Models frequently wrap JSON output in ```json
// fences despite instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseFlashcards converts a raw model response into validated domain
// flashcards for the given topic. Cards missing a front or back are
// rejected rather than silently dropped.
func ParseFlashcards(raw, topic string, source *domain.CardSource) ([]*domain.Flashcard, error) {
	var parsed flashcardResponseSchema
	if err := json.Unmarshal([]byte(StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	cards := make([]*domain.Flashcard, 0, len(parsed.Cards))
	for i, c := range parsed.Cards {
		card, err := domain.NewFlashcard(c.Front, c.Back, topic, source)
		if err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrInvalidResponse, i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ParseQuizQuestions converts a raw model response into validated domain
// quiz questions.
func ParseQuizQuestions(raw string) ([]*domain.QuizQuestion, error) {
	var parsed quizResponseSchema
	if err := json.Unmarshal([]byte(StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	questions := make([]*domain.QuizQuestion, 0, len(parsed.Questions))
	for i, q := range parsed.Questions {
		question, err := domain.NewQuizQuestion(q.Question, q.Options, q.CorrectAnswer, q.Explanation)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidResponse, i, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// ParseSubTopics converts a raw model response into a list of sub-topic
// names, dropping blank entries.
func ParseSubTopics(raw string) ([]string, error) {
	var parsed topicsResponseSchema
	if err := json.Unmarshal([]byte(StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	topics := make([]string, 0, len(parsed.Topics))
	for _, t := range parsed.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics, nil
}
