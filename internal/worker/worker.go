package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/careerscan/internal/crawler"
	"github.com/JakeFAU/careerscan/internal/metrics"
)

// RecordFunc receives the result of one task. Each task is recorded exactly once.
type RecordFunc func(task crawler.Task, result crawler.ScanResult)

// Worker consumes queue tasks and runs the Processor on each.
type Worker struct {
	queue     crawler.Queue
	processor *Processor
	mode      crawler.Mode
	logger    *zap.Logger
}

// New constructs a Worker.
func New(queue crawler.Queue, processor *Processor, mode crawler.Mode, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		queue:     queue,
		processor: processor,
		mode:      mode,
		logger:    logger,
	}
}

// Run drains the queue until it is closed and empty, or the context ends.
func (w *Worker) Run(ctx context.Context, record RecordFunc) error {
	for {
		task, err := w.queue.Dequeue(ctx)
		switch {
		case errors.Is(err, crawler.ErrQueueClosed):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("dequeue: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
		w.logger.Debug("dequeued firm", zap.Int("index", task.Index), zap.String("firm", task.FirmURL))
		record(task, w.process(ctx, task))
	}
}

func (w *Worker) process(ctx context.Context, task crawler.Task) crawler.ScanResult {
	metrics.IncActiveWorkers()
	defer metrics.DecActiveWorkers()
	return w.processor.Process(ctx, w.mode, task.FirmURL)
}
