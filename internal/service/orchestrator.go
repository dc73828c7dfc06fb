// Package service contains the study orchestrator, the single entry
// point the HTTP layer talks to. It coordinates the response cache, the
// generation workflows, the background job machinery, and storage.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/cache"
	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/events"
	"github.com/studyforge/studyforge/internal/generation"
	"github.com/studyforge/studyforge/internal/task"
	"github.com/studyforge/studyforge/internal/workflow"
)

// StudySet is the outcome of a generation request. Exactly one of the
// content fields (Cards or Questions) or JobID is populated: inline
// results carry content, deferred results carry the job handle.
type StudySet struct {
	Cards             []*domain.Flashcard    `json:"cards,omitempty"`
	Questions         []*domain.QuizQuestion `json:"questions,omitempty"`
	JobID             *uuid.UUID             `json:"job_id,omitempty"`
	RecommendedTopics []string               `json:"recommended_topics,omitempty"`
	Cached            bool                   `json:"cached"`
}

// OrchestratorConfig holds the orchestrator's tunables.
type OrchestratorConfig struct {
	// Async defers generation to the worker pool; callers poll the
	// returned job. When false, generation runs inline on the request.
	Async bool

	// HistoryLimit caps history reads. Zero selects DefaultHistoryLimit.
	HistoryLimit int
}

// DefaultHistoryLimit is the fallback cap for history queries.
const DefaultHistoryLimit = 50

// StudyOrchestrator coordinates one generation request end to end:
// cache lookup, workflow selection, job dispatch, and persistence.
type StudyOrchestrator struct {
	cache     cache.ResponseCache
	adapter   generation.Adapter
	fallback  task.CardWorkflow
	rag       task.CardWorkflow
	retriever workflow.ContextRetriever
	jobs      *task.JobStore
	queue     task.QueueWriter
	emitter   events.Emitter
	storage   Storage
	logger    *slog.Logger
	config    OrchestratorConfig
}

// NewStudyOrchestrator creates the orchestrator. It returns an error if
// any required dependency is nil; the emitter is optional and may be nil.
func NewStudyOrchestrator(
	responseCache cache.ResponseCache,
	adapter generation.Adapter,
	fallback task.CardWorkflow,
	rag task.CardWorkflow,
	retriever workflow.ContextRetriever,
	jobs *task.JobStore,
	queue task.QueueWriter,
	emitter events.Emitter,
	storage Storage,
	logger *slog.Logger,
	config OrchestratorConfig,
) (*StudyOrchestrator, error) {
	if responseCache == nil {
		return nil, fmt.Errorf("%w: cache cannot be nil", domain.ErrValidation)
	}
	if adapter == nil {
		return nil, fmt.Errorf("%w: adapter cannot be nil", domain.ErrValidation)
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: fallback workflow cannot be nil", domain.ErrValidation)
	}
	if rag == nil {
		return nil, fmt.Errorf("%w: rag workflow cannot be nil", domain.ErrValidation)
	}
	if retriever == nil {
		return nil, fmt.Errorf("%w: retriever cannot be nil", domain.ErrValidation)
	}
	if jobs == nil {
		return nil, fmt.Errorf("%w: job store cannot be nil", domain.ErrValidation)
	}
	if queue == nil {
		return nil, fmt.Errorf("%w: queue cannot be nil", domain.ErrValidation)
	}
	if storage == nil {
		return nil, fmt.Errorf("%w: storage cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = DefaultHistoryLimit
	}

	return &StudyOrchestrator{
		cache:     responseCache,
		adapter:   adapter,
		fallback:  fallback,
		rag:       rag,
		retriever: retriever,
		jobs:      jobs,
		queue:     queue,
		emitter:   emitter,
		storage:   storage,
		logger:    logger.With(slog.String("component", "study_orchestrator")),
		config:    config,
	}, nil
}

// GenerateStudySet serves one generation request. The flow is: validate,
// consult the cache, and on a miss either enqueue a background job or
// run the workflow inline and cache the outcome.
func (o *StudyOrchestrator) GenerateStudySet(ctx context.Context, req domain.GenerationRequest) (*StudySet, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := cache.Key(req)
	if result, ok := o.cache.Get(ctx, key); ok {
		o.logger.InfoContext(ctx, "cache hit", "key", key, "topic", req.Topic)
		return &StudySet{
			Cards:     result.Cards,
			Questions: result.Questions,
			Cached:    true,
		}, nil
	}

	if o.config.Async {
		return o.dispatch(ctx, req)
	}
	return o.generateInline(ctx, req, key)
}

// dispatch creates a pending job and hands it to the worker pool.
func (o *StudyOrchestrator) dispatch(ctx context.Context, req domain.GenerationRequest) (*StudySet, error) {
	job := o.jobs.Create(req)
	gt := task.NewGenerationTask(job.ID, req, o.jobs, o.workflowFor(req), o.adapter, o.emitter, o.logger)

	if err := o.queue.Enqueue(gt); err != nil {
		if failErr := o.jobs.Fail(job.ID, err.Error()); failErr != nil {
			o.logger.ErrorContext(ctx, "failed to mark rejected job", "job_id", job.ID, "error", failErr)
		}
		return nil, fmt.Errorf("failed to enqueue generation job: %w", err)
	}

	o.logger.InfoContext(ctx, "generation job enqueued", "job_id", job.ID, "topic", req.Topic)
	jobID := job.ID
	return &StudySet{JobID: &jobID}, nil
}

// generateInline runs the workflow on the request path and caches the
// outcome on success.
func (o *StudyOrchestrator) generateInline(ctx context.Context, req domain.GenerationRequest, key string) (*StudySet, error) {
	ctx = generation.WithRuntime(ctx, req.Runtime)
	cards, err := o.workflowFor(req).Run(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &domain.GenerationResult{Cards: cards}
	if req.Mode == domain.ModeQuiz {
		questions, quizErr := o.adapter.GenerateQuizFromFlashcards(ctx, cards, req.Count)
		if quizErr != nil {
			return nil, fmt.Errorf("quiz conversion failed: %w", quizErr)
		}
		result = &domain.GenerationResult{Questions: questions}
	}

	o.cache.Set(ctx, key, result)
	o.persistDeck(ctx, req.Topic, result.Cards)

	return &StudySet{
		Cards:             result.Cards,
		Questions:         result.Questions,
		RecommendedTopics: o.recommendTopics(ctx, req.Topic),
	}, nil
}

// workflowFor selects the workflow by knowledge source: documents go
// through retrieval, everything else through the fallback graph.
func (o *StudyOrchestrator) workflowFor(req domain.GenerationRequest) task.CardWorkflow {
	if req.KnowledgeSource == domain.SourceDocuments {
		return o.rag
	}
	return o.fallback
}

// persistDeck writes the deck to storage. Failures are logged and never
// affect the response.
func (o *StudyOrchestrator) persistDeck(ctx context.Context, topic string, cards []*domain.Flashcard) {
	if len(cards) == 0 {
		return
	}
	if err := o.storage.SaveDeck(ctx, topic, cards); err != nil {
		o.logger.WarnContext(ctx, "failed to persist deck", "topic", topic, "error", err)
	}
}

// recommendTopics asks the adapter for related subtopics. This is a soft
// enrichment; any failure degrades to no recommendations.
func (o *StudyOrchestrator) recommendTopics(ctx context.Context, topic string) []string {
	topics, err := o.adapter.GenerateSubTopics(ctx, topic)
	if err != nil {
		o.logger.WarnContext(ctx, "subtopic recommendation failed", "topic", topic, "error", err)
		return nil
	}
	return topics
}

// GetJob returns a snapshot of the job with the given ID.
func (o *StudyOrchestrator) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return o.jobs.Get(id)
}

// HandleEvent reacts to job lifecycle events. On completion the result is
// cached and the deck persisted, so deferred generation converges on the
// same side effects as the inline path. Register the orchestrator with
// the emitter the generation tasks publish to.
func (o *StudyOrchestrator) HandleEvent(ctx context.Context, event *events.JobEvent) error {
	if event.Type != events.EventJobCompleted {
		return nil
	}

	job, err := o.jobs.Get(event.JobID)
	if err != nil {
		return fmt.Errorf("completed job lookup failed: %w", err)
	}
	if job.Result.Empty() {
		return nil
	}

	o.cache.Set(ctx, cache.Key(job.Request), job.Result)
	o.persistDeck(ctx, job.Request.Topic, job.Result.Cards)
	return nil
}

// GenerateAdvancedQuiz produces follow-up questions targeting the weak
// spots visible in previous quiz results.
func (o *StudyOrchestrator) GenerateAdvancedQuiz(ctx context.Context, previousResults string, mode domain.GenerationMode) ([]*domain.QuizQuestion, error) {
	if previousResults == "" {
		return nil, fmt.Errorf("%w: previous results cannot be empty", domain.ErrValidation)
	}
	return o.adapter.GenerateAdvancedQuiz(ctx, previousResults, mode)
}

// GenerateSummary produces a study summary for a topic.
func (o *StudyOrchestrator) GenerateSummary(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("%w: topic cannot be empty", domain.ErrValidation)
	}
	return o.adapter.GenerateSummary(ctx, topic)
}

// GenerateBriefAnswer answers a single question, grounding the answer in
// retrieved material when any is available.
func (o *StudyOrchestrator) GenerateBriefAnswer(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("%w: question cannot be empty", domain.ErrValidation)
	}
	supporting := o.retriever.RetrieveContext(ctx, question, workflow.DefaultTopK)
	return o.adapter.GenerateBriefAnswer(ctx, question, supporting)
}

// SaveQuizResult records a completed quiz. Unlike deck persistence this
// is a direct user action, so failures surface to the caller.
func (o *StudyOrchestrator) SaveQuizResult(ctx context.Context, topic string, score, total int) error {
	if topic == "" {
		return fmt.Errorf("%w: topic cannot be empty", domain.ErrValidation)
	}
	if total <= 0 || score < 0 || score > total {
		return fmt.Errorf("%w: score must be within 0..total and total positive", domain.ErrValidation)
	}
	return o.storage.SaveQuizResult(ctx, topic, score, total)
}

// GetQuizHistory returns recent quiz results.
func (o *StudyOrchestrator) GetQuizHistory(ctx context.Context) ([]domain.QuizResult, error) {
	return o.storage.GetQuizHistory(ctx, o.config.HistoryLimit)
}

// GetDeckHistory returns recently generated flashcards.
func (o *StudyOrchestrator) GetDeckHistory(ctx context.Context) ([]*domain.Flashcard, error) {
	return o.storage.GetDeckHistory(ctx, o.config.HistoryLimit)
}
