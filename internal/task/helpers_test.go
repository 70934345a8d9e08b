package task

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// funcTask runs fn when executed.
type funcTask struct {
	id       uuid.UUID
	fn       func(ctx context.Context) error
	executed atomic.Int32
}

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), fn: fn}
}

func (t *funcTask) ID() uuid.UUID { return t.id }
func (t *funcTask) Type() string  { return "test" }

func (t *funcTask) Execute(ctx context.Context) error {
	t.executed.Add(1)
	if t.fn == nil {
		return nil
	}
	return t.fn(ctx)
}
