package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/studyforge/studyforge/internal/api/middleware"
	"github.com/studyforge/studyforge/internal/api/shared"
)

// NewRouter assembles the HTTP routes around the study handler.
func NewRouter(handler *StudyHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", handler.Generate)
		r.Get("/jobs/{id}", handler.GetJob)
		r.Post("/quiz", handler.AdvancedQuiz)
		r.Post("/quiz/results", handler.SaveQuizResult)
		r.Get("/quiz/history", handler.QuizHistory)
		r.Post("/summary", handler.Summary)
		r.Post("/answer", handler.Answer)
		r.Get("/decks", handler.DeckHistory)
	})

	return r
}
