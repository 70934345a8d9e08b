package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/moviecatalog/movie-api/internal/config"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// TaskTimeout bounds a single task execution. Zero means no limit.
	TaskTimeout time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
		TaskTimeout: 30 * time.Second,
	}
}

// RunnerConfigFrom maps the application task settings onto a TaskRunnerConfig.
func RunnerConfigFrom(cfg config.TaskConfig) TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		TaskTimeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// TaskRunner owns a task queue and the worker pool draining it.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
}

var _ Submitter = (*TaskRunner)(nil)

// NewTaskRunner creates a new TaskRunner. Call Start before submitting work.
func NewTaskRunner(cfg TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	queue := NewTaskQueue(cfg.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{
		WorkerCount: cfg.WorkerCount,
		TaskTimeout: cfg.TaskTimeout,
	}, logger)

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start begins processing tasks. Calling it more than once has no effect.
func (r *TaskRunner) Start() {
	r.startOnce.Do(r.pool.Start)
}

// Submit adds a task to the queue. It fails fast with ErrQueueFull or
// ErrQueueClosed rather than blocking the caller.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to submit task %s: %w", task.Type(), err)
	}
	return nil
}

// Stop closes the queue and waits for queued tasks to finish, or for ctx to
// expire.
func (r *TaskRunner) Stop(ctx context.Context) error {
	r.stopOnce.Do(r.queue.Close)

	done := make(chan struct{})
	go func() {
		r.pool.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("task runner stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("task runner stop timed out", "pending_tasks", r.queue.Len())
		return ctx.Err()
	}
}
