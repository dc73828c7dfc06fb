package task

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/domain"
)

// Errors returned by the JobStore
var (
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// JobStore tracks generation jobs in memory. Status transitions are
// monotonic (pending -> processing -> completed | failed) and terminal
// states are immutable; any other transition is rejected.
//
// Reads return snapshots so callers never observe a job mid-mutation.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*domain.Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[uuid.UUID]*domain.Job),
	}
}

// Create registers a new pending job for the request and returns a
// snapshot of it.
func (s *JobStore) Create(req domain.GenerationRequest) *domain.Job {
	job := domain.NewJob(req)

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return snapshot(job)
}

// Get returns a snapshot of the job with the given ID.
func (s *JobStore) Get(id uuid.UUID) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return snapshot(job), nil
}

// MarkProcessing transitions the job from pending to processing. The
// worker that succeeds here owns the job until it reaches a terminal
// state; a second attempt fails, which keeps execution at most once.
func (s *JobStore) MarkProcessing(id uuid.UUID) error {
	return s.transition(id, func(job *domain.Job) error {
		if job.Status != domain.JobStatusPending {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, domain.JobStatusProcessing)
		}
		job.Status = domain.JobStatusProcessing
		return nil
	})
}

// Complete transitions the job from processing to completed and records
// its result.
func (s *JobStore) Complete(id uuid.UUID, result *domain.GenerationResult) error {
	return s.transition(id, func(job *domain.Job) error {
		if job.Status != domain.JobStatusProcessing {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, domain.JobStatusCompleted)
		}
		now := time.Now().UTC()
		job.Status = domain.JobStatusCompleted
		job.Result = result
		job.Progress = 100
		job.CompletedAt = &now
		return nil
	})
}

// Fail transitions the job to failed and records the error message. Both
// pending and processing jobs may fail; terminal jobs may not.
func (s *JobStore) Fail(id uuid.UUID, errMsg string) error {
	return s.transition(id, func(job *domain.Job) error {
		if job.Status.Terminal() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, domain.JobStatusFailed)
		}
		now := time.Now().UTC()
		job.Status = domain.JobStatusFailed
		job.Error = errMsg
		job.CompletedAt = &now
		return nil
	})
}

// transition applies fn to the stored job under the write lock.
func (s *JobStore) transition(id uuid.UUID, fn func(*domain.Job) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return fn(job)
}

// snapshot copies the job so callers cannot mutate stored state. The
// result pointer is shared; results are treated as immutable once set.
func snapshot(job *domain.Job) *domain.Job {
	copied := *job
	if job.CompletedAt != nil {
		at := *job.CompletedAt
		copied.CompletedAt = &at
	}
	return &copied
}
