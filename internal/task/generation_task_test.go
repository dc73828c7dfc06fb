package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/domain"
	"github.com/studyforge/studyforge/internal/mocks"
)

// stubWorkflow implements CardWorkflow for testing.
type stubWorkflow struct {
	cards []*domain.Flashcard
	err   error
	panic bool

	calls int
}

func (w *stubWorkflow) Run(ctx context.Context, req domain.GenerationRequest) ([]*domain.Flashcard, error) {
	w.calls++
	if w.panic {
		panic("workflow exploded")
	}
	return w.cards, w.err
}

func newGenerationTask(t *testing.T, store *JobStore, wf CardWorkflow, adapter *mocks.MockAdapter, req domain.GenerationRequest) (*GenerationTask, *domain.Job) {
	t.Helper()
	job := store.Create(req)
	return NewGenerationTask(job.ID, req, store, wf, adapter, nil, setupTestLogger()), job
}

func TestGenerationTaskCompletesJob(t *testing.T) {
	store := NewJobStore()
	cards := []*domain.Flashcard{{Front: "f", Back: "b", Topic: "Go"}}
	wf := &stubWorkflow{cards: cards}
	gt, job := newGenerationTask(t, store, wf, &mocks.MockAdapter{}, testRequest())

	require.NoError(t, gt.Execute(context.Background()))

	got, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, cards, got.Result.Cards)
	assert.Empty(t, got.Result.Questions)
}

func TestGenerationTaskQuizModeConvertsCards(t *testing.T) {
	store := NewJobStore()
	question, err := domain.NewQuizQuestion("q?", []string{"a", "b"}, "a", "")
	require.NoError(t, err)

	req := testRequest()
	req.Mode = domain.ModeQuiz

	wf := &stubWorkflow{cards: []*domain.Flashcard{{Front: "f", Back: "b"}}}
	adapter := &mocks.MockAdapter{Questions: []*domain.QuizQuestion{question}}
	gt, job := newGenerationTask(t, store, wf, adapter, req)

	require.NoError(t, gt.Execute(context.Background()))

	got, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Empty(t, got.Result.Cards)
	assert.Len(t, got.Result.Questions, 1)
	assert.Equal(t, 1, adapter.QuizFromFlashcardsCalls)
}

func TestGenerationTaskWorkflowFailureFailsJob(t *testing.T) {
	store := NewJobStore()
	wf := &stubWorkflow{err: errors.New("all paths exhausted")}
	gt, job := newGenerationTask(t, store, wf, &mocks.MockAdapter{}, testRequest())

	err := gt.Execute(context.Background())
	require.Error(t, err)

	got, getErr := store.Get(job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Contains(t, got.Error, "all paths exhausted")
	assert.Nil(t, got.Result)
}

// A panic inside the workflow still leaves the job in a terminal state.
func TestGenerationTaskPanicFailsJob(t *testing.T) {
	store := NewJobStore()
	wf := &stubWorkflow{panic: true}
	gt, job := newGenerationTask(t, store, wf, &mocks.MockAdapter{}, testRequest())

	err := gt.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workflow exploded")

	got, getErr := store.Get(job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Contains(t, got.Error, "workflow exploded")
}

// Duplicate delivery does not run the workflow a second time.
func TestGenerationTaskExecutesAtMostOnce(t *testing.T) {
	store := NewJobStore()
	wf := &stubWorkflow{cards: []*domain.Flashcard{{Front: "f", Back: "b"}}}
	gt, job := newGenerationTask(t, store, wf, &mocks.MockAdapter{}, testRequest())

	require.NoError(t, gt.Execute(context.Background()))

	err := gt.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, wf.calls)

	got, getErr := store.Get(job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
}
