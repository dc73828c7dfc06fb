package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/api/shared"
	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/service"
)

// Orchestrator is the service surface the HTTP layer depends on.
type Orchestrator interface {
	GenerateStudySet(ctx context.Context, req domain.GenerationRequest) (*service.StudySet, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GenerateAdvancedQuiz(ctx context.Context, previousResults string, mode domain.GenerationMode) ([]*domain.QuizQuestion, error)
	GenerateSummary(ctx context.Context, topic string) (string, error)
	GenerateBriefAnswer(ctx context.Context, question string) (string, error)
	SaveQuizResult(ctx context.Context, topic string, score, total int) error
	GetQuizHistory(ctx context.Context) ([]domain.QuizResult, error)
	GetDeckHistory(ctx context.Context) ([]*domain.Flashcard, error)
}

// StudyHandler handles study content HTTP requests.
type StudyHandler struct {
	orchestrator Orchestrator
	validator    *validator.Validate
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(orchestrator Orchestrator) *StudyHandler {
	return &StudyHandler{
		orchestrator: orchestrator,
		validator:    validator.New(),
	}
}

// Generate handles POST /api/generate requests. Deferred generation
// answers 202 with a job handle; inline and cached results answer 200.
func (h *StudyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	set, err := h.orchestrator.GenerateStudySet(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if set.JobID != nil {
		status = http.StatusAccepted
	}
	shared.RespondWithJSON(w, r, status, studySetToResponse(set))
}

// GetJob handles GET /api/jobs/{id} requests.
func (h *StudyHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := h.orchestrator.GetJob(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// AdvancedQuiz handles POST /api/quiz requests.
func (h *StudyHandler) AdvancedQuiz(w http.ResponseWriter, r *http.Request) {
	var req AdvancedQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	mode := domain.GenerationMode(req.Mode)
	if mode == "" {
		mode = domain.ModeQuiz
	}

	questions, err := h.orchestrator.GenerateAdvancedQuiz(r.Context(), req.PreviousResults, mode)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Summary handles POST /api/summary requests.
func (h *StudyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	summary, err := h.orchestrator.GenerateSummary(r.Context(), req.Topic)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{Topic: req.Topic, Summary: summary})
}

// Answer handles POST /api/answer requests.
func (h *StudyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	answer, err := h.orchestrator.GenerateBriefAnswer(r.Context(), req.Question)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{Question: req.Question, Answer: answer})
}

// SaveQuizResult handles POST /api/quiz/results requests.
func (h *StudyHandler) SaveQuizResult(w http.ResponseWriter, r *http.Request) {
	var req QuizResultRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.orchestrator.SaveQuizResult(r.Context(), req.Topic, req.Score, req.Total); err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]string{"status": "saved"})
}

// QuizHistory handles GET /api/quiz/history requests.
func (h *StudyHandler) QuizHistory(w http.ResponseWriter, r *http.Request) {
	results, err := h.orchestrator.GetQuizHistory(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if results == nil {
		results = []domain.QuizResult{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"results": results})
}

// DeckHistory handles GET /api/decks requests.
func (h *StudyHandler) DeckHistory(w http.ResponseWriter, r *http.Request) {
	cards, err := h.orchestrator.GetDeckHistory(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if cards == nil {
		cards = []*domain.Flashcard{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"cards": cards})
}
