package workflow

import (
	"errors"
	"fmt"
)

// Stage names reported by terminal errors.
const (
	StagePrimaryGenerate    = "primary_generate"
	StageDeriveQuery        = "derive_query"
	StageSupplementFetch    = "supplement_fetch"
	StageFallbackSynthesize = "fallback_synthesize"
	StageRetrieve           = "retrieve"
	StageGenerate           = "generate"
)

// ErrNoContent is the cause attached when a stage succeeds but yields no
// usable output. Workflows never return an empty result silently.
var ErrNoContent = errors.New("generation produced no content")

// TerminalError is returned when all available paths through a workflow
// are exhausted. It identifies the stage that failed and the underlying
// cause.
type TerminalError struct {
	Stage string
	Err   error
}

// Error formats the terminal error with its stage context.
func (e *TerminalError) Error() string {
	return fmt.Sprintf("workflow terminal failure at stage %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *TerminalError) Unwrap() error {
	return e.Err
}

// terminal wraps err with the failing stage.
func terminal(stage string, err error) *TerminalError {
	return &TerminalError{Stage: stage, Err: err}
}
