package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the externally observable state of a generation job.
type JobStatus string

// Possible job status values. Transitions are monotonic:
// pending -> processing -> completed | failed. Terminal states are
// immutable and never revisited.
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is one of the terminal states.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// GenerationResult is the outcome of a successful generation workflow.
// Exactly one of Cards or Questions is populated depending on the
// request mode.
type GenerationResult struct {
	Cards     []*Flashcard    `json:"cards,omitempty"`
	Questions []*QuizQuestion `json:"questions,omitempty"`
}

// Empty reports whether the result carries no usable content.
func (r *GenerationResult) Empty() bool {
	return r == nil || (len(r.Cards) == 0 && len(r.Questions) == 0)
}

// Job is a handle to an asynchronously executing generation request.
// A job is created on enqueue in pending status; from then on it is
// mutated only by the worker that transitioned it into processing.
type Job struct {
	ID          uuid.UUID         `json:"id"`
	Status      JobStatus         `json:"status"`
	Request     GenerationRequest `json:"request"`
	Result      *GenerationResult `json:"result,omitempty"`
	Error       string            `json:"error,omitempty"`
	Progress    int               `json:"progress,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// NewJob creates a pending Job for the given request.
func NewJob(req GenerationRequest) *Job {
	return &Job{
		ID:        uuid.New(),
		Status:    JobStatusPending,
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
}
