package api

import (
	"errors"
	"net/http"

	"github.com/studyforge/studyforge/internal/api/shared"
	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/task"
	"github.com/studyforge/studyforge/internal/workflow"
)

// respondError maps service and workflow errors to HTTP status codes and
// writes the response. Unknown errors become an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrJobNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, "Job not found")
	case errors.Is(err, task.ErrQueueFull), errors.Is(err, task.ErrQueueClosed):
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Generation is temporarily unavailable, try again later", err)
	default:
		var terminalErr *workflow.TerminalError
		if errors.As(err, &terminalErr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
				"Generation failed after exhausting all available paths", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
	}
}
