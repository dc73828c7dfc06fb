package api

import (
	"time"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/service"
)

// GenerateRequest represents the request body for generating study content.
type GenerateRequest struct {
	Topic           string `json:"topic" validate:"required,min=1"`
	Count           int    `json:"count" validate:"required,gt=0"`
	Mode            string `json:"mode" validate:"omitempty,oneof=flashcards quiz"`
	KnowledgeSource string `json:"knowledge_source" validate:"omitempty,oneof=general documents"`
	Runtime         string `json:"runtime" validate:"omitempty,oneof=remote local"`
	ParentTopic     string `json:"parent_topic"`
}

// toDomain converts the DTO into the domain request.
func (r GenerateRequest) toDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:           r.Topic,
		Count:           r.Count,
		Mode:            domain.GenerationMode(r.Mode),
		KnowledgeSource: domain.KnowledgeSource(r.KnowledgeSource),
		Runtime:         domain.RuntimePreference(r.Runtime),
		ParentTopic:     r.ParentTopic,
	}
}

// GenerateResponse represents the response for a generation request.
// Exactly one of the content fields or JobID is populated.
type GenerateResponse struct {
	Cards             []*domain.Flashcard    `json:"cards,omitempty"`
	Questions         []*domain.QuizQuestion `json:"questions,omitempty"`
	JobID             string                 `json:"job_id,omitempty"`
	RecommendedTopics []string               `json:"recommended_topics,omitempty"`
	Cached            bool                   `json:"cached"`
}

func studySetToResponse(set *service.StudySet) GenerateResponse {
	resp := GenerateResponse{
		Cards:             set.Cards,
		Questions:         set.Questions,
		RecommendedTopics: set.RecommendedTopics,
		Cached:            set.Cached,
	}
	if set.JobID != nil {
		resp.JobID = set.JobID.String()
	}
	return resp
}

// JobResponse represents the externally visible state of a generation job.
type JobResponse struct {
	ID          string                   `json:"id"`
	Status      string                   `json:"status"`
	Result      *domain.GenerationResult `json:"result,omitempty"`
	Error       string                   `json:"error,omitempty"`
	Progress    int                      `json:"progress,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
}

func jobToResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:          job.ID.String(),
		Status:      string(job.Status),
		Result:      job.Result,
		Error:       job.Error,
		Progress:    job.Progress,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
	}
}

// AdvancedQuizRequest asks for follow-up questions based on previous
// quiz performance.
type AdvancedQuizRequest struct {
	PreviousResults string `json:"previous_results" validate:"required,min=1"`
	Mode            string `json:"mode" validate:"omitempty,oneof=flashcards quiz"`
}

// SummaryRequest asks for a study summary of a topic.
type SummaryRequest struct {
	Topic string `json:"topic" validate:"required,min=1"`
}

// SummaryResponse carries the generated summary.
type SummaryResponse struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// AnswerRequest asks for a brief answer to a single question.
type AnswerRequest struct {
	Question string `json:"question" validate:"required,min=1"`
}

// AnswerResponse carries the generated answer.
type AnswerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizResultRequest records the outcome of a completed quiz.
type QuizResultRequest struct {
	Topic string `json:"topic" validate:"required,min=1"`
	Score int    `json:"score" validate:"gte=0"`
	Total int    `json:"total" validate:"required,gt=0"`
}
