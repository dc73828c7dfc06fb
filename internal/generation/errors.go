package generation

import "errors"

// Common errors returned by generation adapters.
var (
	// ErrGenerationFailed is returned when content generation fails for any general reason.
	ErrGenerationFailed = errors.New("failed to generate study content")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry.
	ErrTransientFailure = errors.New("transient error during content generation")

	// ErrInvalidConfig is returned when the adapter configuration is invalid.
	ErrInvalidConfig = errors.New("invalid adapter configuration")

	// ErrEmptyPrompt is returned when an adapter is invoked with no usable input.
	ErrEmptyPrompt = errors.New("prompt input cannot be empty")
)
