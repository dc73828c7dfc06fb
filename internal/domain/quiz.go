package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Quiz-specific validation errors
var (
	// ErrQuizQuestionEmpty is returned when a quiz question's text is empty.
	ErrQuizQuestionEmpty = errors.New("quiz question cannot be empty")

	// ErrQuizOptionsInvalid is returned when a quiz question has fewer than two options.
	ErrQuizOptionsInvalid = errors.New("quiz question needs at least two options")

	// ErrQuizAnswerInvalid is returned when the correct answer is not one of the options.
	ErrQuizAnswerInvalid = errors.New("quiz correct answer must be one of the options")
)

// QuizResult records the outcome of one completed quiz for history
// purposes.
type QuizResult struct {
	ID      uuid.UUID `json:"id"`
	Topic   string    `json:"topic"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
	TakenAt time.Time `json:"taken_at"`
}

// QuizQuestion represents a single multiple-choice question. The options
// are an ordered, fixed set; CorrectAnswer must match one of them exactly.
type QuizQuestion struct {
	ID            uuid.UUID `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuizQuestion creates a new QuizQuestion and validates it.
func NewQuizQuestion(question string, options []string, correctAnswer, explanation string) (*QuizQuestion, error) {
	q := &QuizQuestion{
		ID:            uuid.New(),
		Question:      strings.TrimSpace(question),
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
		CreatedAt:     time.Now().UTC(),
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the QuizQuestion has valid data.
func (q *QuizQuestion) Validate() error {
	if q.ID == uuid.Nil {
		return ErrInvalidID
	}

	if q.Question == "" {
		return ErrQuizQuestionEmpty
	}

	if len(q.Options) < 2 {
		return ErrQuizOptionsInvalid
	}

	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}

	return ErrQuizAnswerInvalid
}
