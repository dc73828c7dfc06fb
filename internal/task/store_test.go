package task

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/domain"
)

func testRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:           "Go",
		Count:           5,
		Mode:            domain.ModeFlashcards,
		KnowledgeSource: domain.SourceGeneral,
		Runtime:         domain.RuntimeRemote,
	}
}

func TestJobStoreCreateAndGet(t *testing.T) {
	store := NewJobStore()

	job := store.Create(testRequest())
	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	got, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, "Go", got.Request.Topic)
}

func TestJobStoreGetUnknownID(t *testing.T) {
	store := NewJobStore()

	_, err := store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobStoreHappyTransitions(t *testing.T) {
	store := NewJobStore()
	job := store.Create(testRequest())

	require.NoError(t, store.MarkProcessing(job.ID))
	got, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, got.Status)

	result := &domain.GenerationResult{Cards: []*domain.Flashcard{{Front: "f", Back: "b"}}}
	require.NoError(t, store.Complete(job.ID, result))

	got, err = store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Equal(t, result, got.Result)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.CompletedAt)
}

func TestJobStoreFailFromPendingAndProcessing(t *testing.T) {
	store := NewJobStore()

	pending := store.Create(testRequest())
	require.NoError(t, store.Fail(pending.ID, "enqueue rejected"))
	got, err := store.Get(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, "enqueue rejected", got.Error)

	processing := store.Create(testRequest())
	require.NoError(t, store.MarkProcessing(processing.ID))
	require.NoError(t, store.Fail(processing.ID, "workflow exhausted"))
	got, err = store.Get(processing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
}

// Statuses only move forward: a claimed job cannot be claimed again and
// terminal jobs reject every further transition.
func TestJobStoreMonotonicTransitions(t *testing.T) {
	store := NewJobStore()
	job := store.Create(testRequest())

	// Completing a pending job skips processing
	err := store.Complete(job.ID, &domain.GenerationResult{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, store.MarkProcessing(job.ID))

	// Double claim
	err = store.MarkProcessing(job.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, store.Complete(job.ID, &domain.GenerationResult{}))

	// Terminal states are immutable
	assert.ErrorIs(t, store.MarkProcessing(job.ID), ErrInvalidTransition)
	assert.ErrorIs(t, store.Complete(job.ID, &domain.GenerationResult{}), ErrInvalidTransition)
	assert.ErrorIs(t, store.Fail(job.ID, "late failure"), ErrInvalidTransition)

	got, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Empty(t, got.Error)
}

// Get returns snapshots; mutating one must not leak into the store.
func TestJobStoreSnapshotIsolation(t *testing.T) {
	store := NewJobStore()
	job := store.Create(testRequest())

	first, err := store.Get(job.ID)
	require.NoError(t, err)
	first.Status = domain.JobStatusFailed
	first.Error = "tampered"

	second, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, second.Status)
	assert.Empty(t, second.Error)
}
