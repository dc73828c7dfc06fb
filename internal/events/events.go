// Package events carries job lifecycle notifications between the
// background workers and the components that react to finished jobs,
// without either side depending on the other directly.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the job machinery.
const (
	// EventJobCompleted signals that a generation job reached the
	// completed state and its result is available in the job store.
	EventJobCompleted = "job_completed"

	// EventJobFailed signals that a generation job reached the failed
	// state.
	EventJobFailed = "job_failed"
)

// JobEvent describes a job lifecycle transition.
type JobEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the event type constants
	Type string `json:"type"`

	// JobID identifies the job the event refers to
	JobID uuid.UUID `json:"job_id"`

	// Topic is the request topic, carried for logging convenience
	Topic string `json:"topic"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewJobEvent creates a JobEvent of the given type.
func NewJobEvent(eventType string, jobID uuid.UUID, topic string) *JobEvent {
	return &JobEvent{
		ID:        uuid.New(),
		Type:      eventType,
		JobID:     jobID,
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
	}
}

// Handler defines an interface for components that can handle events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *JobEvent) error
}

// Emitter defines an interface for components that can emit events.
// This allows the job machinery to publish transitions without direct
// knowledge of handlers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	Emit(ctx context.Context, event *JobEvent) error
}
