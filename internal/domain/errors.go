package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidMode is returned when a generation mode is not recognized.
	ErrInvalidMode = errors.New("invalid generation mode")

	// ErrInvalidKnowledgeSource is returned when a knowledge source is not recognized.
	ErrInvalidKnowledgeSource = errors.New("invalid knowledge source")

	// ErrInvalidRuntime is returned when a runtime preference is not recognized.
	ErrInvalidRuntime = errors.New("invalid runtime preference")
)
