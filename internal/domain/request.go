package domain

import (
	"fmt"
	"strings"
)

// GenerationMode selects the kind of study content to produce.
type GenerationMode string

// Supported generation modes.
const (
	ModeFlashcards GenerationMode = "flashcards"
	ModeQuiz       GenerationMode = "quiz"
)

// KnowledgeSource selects which workflow services a request: general
// knowledge uses the fallback generation graph, documents uses the
// retrieval-augmented workflow.
type KnowledgeSource string

// Supported knowledge sources.
const (
	SourceGeneral   KnowledgeSource = "general"
	SourceDocuments KnowledgeSource = "documents"
)

// RuntimePreference selects which adapter variant handles generation.
type RuntimePreference string

// Supported runtime preferences.
const (
	RuntimeRemote RuntimePreference = "remote"
	RuntimeLocal  RuntimePreference = "local"
)

// GenerationRequest carries everything needed to produce study content
// for a topic. It is validated once at the boundary; the core assumes
// validity from then on.
type GenerationRequest struct {
	Topic           string            `json:"topic"`
	Count           int               `json:"count"`
	Mode            GenerationMode    `json:"mode"`
	KnowledgeSource KnowledgeSource   `json:"knowledge_source"`
	Runtime         RuntimePreference `json:"runtime"`
	ParentTopic     string            `json:"parent_topic,omitempty"`
}

// Normalize trims whitespace and applies defaults for optional fields.
// Call before Validate.
func (r *GenerationRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	r.ParentTopic = strings.TrimSpace(r.ParentTopic)
	if r.Mode == "" {
		r.Mode = ModeFlashcards
	}
	if r.KnowledgeSource == "" {
		r.KnowledgeSource = SourceGeneral
	}
	if r.Runtime == "" {
		r.Runtime = RuntimeRemote
	}
}

// Validate checks the request against the boundary rules. Count is a hint,
// not a guarantee, but it must still be a positive integer.
func (r *GenerationRequest) Validate() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic cannot be empty", ErrValidation)
	}

	if r.Count <= 0 {
		return fmt.Errorf("%w: count must be a positive integer", ErrValidation)
	}

	switch r.Mode {
	case ModeFlashcards, ModeQuiz:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, r.Mode)
	}

	switch r.KnowledgeSource {
	case SourceGeneral, SourceDocuments:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKnowledgeSource, r.KnowledgeSource)
	}

	switch r.Runtime {
	case RuntimeRemote, RuntimeLocal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRuntime, r.Runtime)
	}

	return nil
}
