package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlashcard(t *testing.T) {
	card, err := NewFlashcard("What is Go?", "A programming language", "Go", nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, "What is Go?", card.Front)
	assert.Equal(t, "A programming language", card.Back)
	assert.Equal(t, "Go", card.Topic)
	assert.Nil(t, card.Source)
	assert.False(t, card.CreatedAt.IsZero())
}

func TestNewFlashcardTrimsWhitespace(t *testing.T) {
	card, err := NewFlashcard("  front  ", "\tback\n", " Go ", nil)
	require.NoError(t, err)

	assert.Equal(t, "front", card.Front)
	assert.Equal(t, "back", card.Back)
	assert.Equal(t, "Go", card.Topic)
}

func TestFlashcardValidate(t *testing.T) {
	tests := []struct {
		name    string
		front   string
		back    string
		topic   string
		wantErr error
	}{
		{"empty front", "", "back", "topic", ErrFlashcardFrontEmpty},
		{"empty back", "front", "", "topic", ErrFlashcardBackEmpty},
		{"empty topic", "front", "back", "", ErrFlashcardTopicEmpty},
		{"whitespace only front", "   ", "back", "topic", ErrFlashcardFrontEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFlashcard(tt.front, tt.back, tt.topic, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFlashcardWithSource(t *testing.T) {
	source := &CardSource{Title: "Go Blog", Link: "https://go.dev/blog"}
	card, err := NewFlashcard("front", "back", "Go", source)
	require.NoError(t, err)

	assert.Equal(t, "Go Blog", card.Source.Title)
	assert.Equal(t, "https://go.dev/blog", card.Source.Link)
}

func TestNewQuizQuestion(t *testing.T) {
	q, err := NewQuizQuestion(
		"Which keyword starts a goroutine?",
		[]string{"go", "run", "spawn", "async"},
		"go",
		"The go statement starts a new goroutine.",
	)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, q.ID)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, "go", q.CorrectAnswer)
}

func TestQuizQuestionValidate(t *testing.T) {
	t.Run("answer not in options", func(t *testing.T) {
		_, err := NewQuizQuestion("q?", []string{"a", "b"}, "c", "")
		assert.ErrorIs(t, err, ErrQuizAnswerInvalid)
	})

	t.Run("too few options", func(t *testing.T) {
		_, err := NewQuizQuestion("q?", []string{"a"}, "a", "")
		assert.ErrorIs(t, err, ErrQuizOptionsInvalid)
	})

	t.Run("empty question", func(t *testing.T) {
		_, err := NewQuizQuestion("", []string{"a", "b"}, "a", "")
		assert.ErrorIs(t, err, ErrQuizQuestionEmpty)
	})
}
