package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration options for the worker pool.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, defaults to 1.
	WorkerCount int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
	}
}

// Runner manages a pool of worker goroutines that process tasks from a
// queue. It handles graceful shutdown and recovers from panicking tasks
// so a single bad job cannot take down a worker.
type Runner struct {
	queue       QueueReader
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger

	// errorHandler is called when a task execution fails.
	// If nil, errors are only logged.
	errorHandler func(task Task, err error)
}

// NewRunner creates a new worker pool reading from the given queue.
func NewRunner(queue QueueReader, config RunnerConfig, logger *slog.Logger) *Runner {
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:       queue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With("component", "task_runner"),
	}
}

// SetErrorHandler allows setting a custom error handler for task
// execution failures.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errorHandler = handler
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	r.logger.Info("starting workers", "worker_count", r.workerCount)
	for i := 0; i < r.workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop signals the workers to finish and waits for them to exit. Tasks
// already picked up run to completion.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
	r.logger.Info("workers stopped")
}

// worker consumes tasks until the queue is closed or the runner stops.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	logger := r.logger.With("worker_id", id)
	logger.Debug("worker started")

	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("worker shutting down")
			return
		case task, ok := <-r.queue.GetChannel():
			if !ok {
				logger.Debug("task channel closed, worker exiting")
				return
			}
			r.process(logger, task)
		}
	}
}

// process runs one task, converting panics into errors.
func (r *Runner) process(logger *slog.Logger, task Task) {
	logger.Info("processing task",
		"task_id", task.ID(),
		"task_type", task.Type())

	err := r.execute(task)
	if err != nil {
		logger.Error("task execution failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
		if r.errorHandler != nil {
			r.errorHandler(task, err)
		}
		return
	}

	logger.Info("task completed",
		"task_id", task.ID(),
		"task_type", task.Type())
}

func (r *Runner) execute(task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task panicked: %v", rec)
		}
	}()
	return task.Execute(r.ctx)
}
