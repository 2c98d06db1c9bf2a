// Package dispatcher fans a scan out over a fixed pool of workers and gathers
// the results in input order.
package dispatcher

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JakeFAU/careerscan/internal/crawler"
	"github.com/JakeFAU/careerscan/internal/queue/memory"
	"github.com/JakeFAU/careerscan/internal/worker"
)

// DefaultWorkers is the pool size used when Config.Workers is not positive.
const DefaultWorkers = 8

// NoteSkipped marks a firm that was never processed because the scan was interrupted.
const NoteSkipped = "scan interrupted"

// Config controls the pool.
type Config struct {
	Workers int
	Mode    crawler.Mode
}

// Dispatcher runs the Processor across many firms with bounded concurrency.
type Dispatcher struct {
	processor *worker.Processor
	cfg       Config
	logger    *zap.Logger
}

// New creates a Dispatcher.
func New(processor *worker.Processor, cfg Config, logger *zap.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Mode == "" {
		cfg.Mode = crawler.ModeItemized
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		processor: processor,
		cfg:       cfg,
		logger:    logger,
	}
}

// Scan processes every firm and returns one result per firm, in input order.
// It blocks until each firm has completed or failed. Cancelling ctx stops
// workers from picking up further firms; those firms keep a placeholder result.
func (d *Dispatcher) Scan(ctx context.Context, firms []string) []crawler.ScanResult {
	results := make([]crawler.ScanResult, len(firms))
	if len(firms) == 0 {
		return results
	}
	for i, firm := range firms {
		results[i] = crawler.ScanResult{Status: crawler.FirmResult{Firm: firm, Note: NoteSkipped}}
	}

	queue := memory.NewQueue(len(firms))
	for i, firm := range firms {
		if err := queue.Enqueue(ctx, crawler.Task{Index: i, FirmURL: firm}); err != nil {
			d.logger.Warn("enqueue interrupted", zap.Int("queued", i), zap.Error(err))
			break
		}
	}
	queue.Close()

	workers := min(d.cfg.Workers, len(firms))
	d.logger.Info("scan started",
		zap.Int("firms", len(firms)),
		zap.Int("workers", workers),
		zap.String("mode", string(d.cfg.Mode)),
	)

	// Each worker writes only the slots of the tasks it dequeued, so the
	// results slice needs no lock.
	record := func(task crawler.Task, result crawler.ScanResult) {
		results[task.Index] = result
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		w := worker.New(queue, d.processor, d.cfg.Mode, d.logger.With(zap.Int("worker", i)))
		g.Go(func() error {
			return w.Run(ctx, record)
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.Error("worker stopped early", zap.Error(err))
	}

	d.logger.Info("scan finished", zap.Int("firms", len(firms)))
	return results
}
