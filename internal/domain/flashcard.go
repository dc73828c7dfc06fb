package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardFrontEmpty is returned when a flashcard's front side is empty.
	ErrFlashcardFrontEmpty = errors.New("flashcard front cannot be empty")

	// ErrFlashcardBackEmpty is returned when a flashcard's back side is empty.
	ErrFlashcardBackEmpty = errors.New("flashcard back cannot be empty")

	// ErrFlashcardTopicEmpty is returned when a flashcard's topic is empty.
	ErrFlashcardTopicEmpty = errors.New("flashcard topic cannot be empty")
)

// CardSource describes where the material behind a flashcard came from,
// e.g. a search result used during fallback synthesis or an uploaded
// document page. It is optional and informational only.
type CardSource struct {
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
	Page  int    `json:"page,omitempty"`
}

// Flashcard represents a single front/back study unit generated for a topic.
// A flashcard is immutable once produced.
type Flashcard struct {
	ID        uuid.UUID   `json:"id"`
	Front     string      `json:"front"`
	Back      string      `json:"back"`
	Topic     string      `json:"topic"`
	Source    *CardSource `json:"source,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewFlashcard creates a new Flashcard with the given content and topic.
// It generates a new UUID for the card ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewFlashcard(front, back, topic string, source *CardSource) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		Front:     strings.TrimSpace(front),
		Back:      strings.TrimSpace(back),
		Topic:     strings.TrimSpace(topic),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if f.Front == "" {
		return ErrFlashcardFrontEmpty
	}

	if f.Back == "" {
		return ErrFlashcardBackEmpty
	}

	if f.Topic == "" {
		return ErrFlashcardTopicEmpty
	}

	return nil
}
