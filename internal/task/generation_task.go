package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/events"
	"github.com/studyforge/studyforge/internal/generation"
)

// CardWorkflow is the generation workflow a job executes. Both the
// fallback graph and the RAG pipeline satisfy it; the caller picks one
// based on the request's knowledge source.
type CardWorkflow interface {
	Run(ctx context.Context, req domain.GenerationRequest) ([]*domain.Flashcard, error)
}

// GenerationTask executes one generation job against a workflow and
// records the outcome in the job store. The task shares its ID with the
// job it drives.
type GenerationTask struct {
	jobID    uuid.UUID
	req      domain.GenerationRequest
	store    *JobStore
	workflow CardWorkflow
	adapter  generation.Adapter
	emitter  events.Emitter
	logger   *slog.Logger
}

// NewGenerationTask creates a task for the given job. The emitter may be
// nil, in which case no lifecycle events are published.
func NewGenerationTask(
	jobID uuid.UUID,
	req domain.GenerationRequest,
	store *JobStore,
	workflow CardWorkflow,
	adapter generation.Adapter,
	emitter events.Emitter,
	logger *slog.Logger,
) *GenerationTask {
	return &GenerationTask{
		jobID:    jobID,
		req:      req,
		store:    store,
		workflow: workflow,
		adapter:  adapter,
		emitter:  emitter,
		logger:   logger.With("task_type", TaskTypeGeneration, "job_id", jobID),
	}
}

// ID returns the task's unique identifier.
func (t *GenerationTask) ID() uuid.UUID {
	return t.jobID
}

// Type returns the task type identifier.
func (t *GenerationTask) Type() string {
	return TaskTypeGeneration
}

// Execute runs the workflow and moves the job to a terminal state. The
// initial transition to processing guards against duplicate delivery: a
// job that already left pending is not executed again.
func (t *GenerationTask) Execute(ctx context.Context) (err error) {
	if err := t.store.MarkProcessing(t.jobID); err != nil {
		return fmt.Errorf("failed to claim job: %w", err)
	}
	ctx = generation.WithRuntime(ctx, t.req.Runtime)

	// A panicking workflow must still leave the job in a terminal state.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generation panicked: %v", rec)
			t.fail(err)
		}
	}()

	cards, err := t.workflow.Run(ctx, t.req)
	if err != nil {
		t.fail(err)
		return err
	}

	result := &domain.GenerationResult{Cards: cards}
	if t.req.Mode == domain.ModeQuiz {
		questions, quizErr := t.adapter.GenerateQuizFromFlashcards(ctx, cards, t.req.Count)
		if quizErr != nil {
			err = fmt.Errorf("quiz conversion failed: %w", quizErr)
			t.fail(err)
			return err
		}
		result = &domain.GenerationResult{Questions: questions}
	}

	if err := t.store.Complete(t.jobID, result); err != nil {
		return fmt.Errorf("failed to record job result: %w", err)
	}
	t.emit(ctx, events.EventJobCompleted)

	t.logger.InfoContext(ctx, "generation job completed",
		"cards", len(result.Cards),
		"questions", len(result.Questions))
	return nil
}

func (t *GenerationTask) fail(cause error) {
	if storeErr := t.store.Fail(t.jobID, cause.Error()); storeErr != nil {
		t.logger.Error("failed to record job failure",
			"cause", cause,
			"error", storeErr)
		return
	}
	t.emit(context.Background(), events.EventJobFailed)
}

// emit publishes a lifecycle event. Handler errors are already logged by
// the emitter; the job outcome is committed either way.
func (t *GenerationTask) emit(ctx context.Context, eventType string) {
	if t.emitter == nil {
		return
	}
	if err := t.emitter.Emit(ctx, events.NewJobEvent(eventType, t.jobID, t.req.Topic)); err != nil {
		t.logger.Warn("lifecycle event delivery failed", "event_type", eventType, "error", err)
	}
}
