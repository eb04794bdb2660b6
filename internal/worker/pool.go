// Package worker runs the pipeline over many invoice files with bounded
// parallelism. Validators within a single invoice stay sequential; only
// whole invoices run in parallel.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/apexfin/invoice-triage/internal/pipeline"
	"github.com/apexfin/invoice-triage/internal/triage"
)

// Summary aggregates batch results by disposition.
type Summary struct {
	Processed int
	Approved  int
	Pending   int
	Rejected  int
	Failed    int
	// Queued counts rejected/pending invoices per queue.
	Queued map[string]int
}

// Pool processes invoice files through a shared Pipeline.
type Pool struct {
	pipe    *pipeline.Pipeline
	workers int
	logger  *zap.Logger
}

// NewPool creates a Pool with the given parallelism (minimum 1).
func NewPool(pipe *pipeline.Pipeline, workers int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{pipe: pipe, workers: workers, logger: logger}
}

// ProcessAll runs every file through the pipeline. Per-file validation
// failures are counted, not returned; only infrastructure errors (log
// write failures) abort the batch. A cancelled context stops picking up
// new files.
func (p *Pool) ProcessAll(ctx context.Context, files []string) (*Summary, error) {
	summary := &Summary{Queued: make(map[string]int)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, file := range files {
		file := file
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, err := p.pipe.Process(file)
			if err != nil {
				p.logger.Error("Batch item failed",
					zap.String("file", file),
					zap.Error(err))
				mu.Lock()
				summary.Failed++
				mu.Unlock()
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			summary.Processed++
			switch outcome.Decision.Disposition {
			case triage.DispositionApproved:
				summary.Approved++
			case triage.DispositionPending:
				summary.Pending++
				summary.Queued[outcome.Decision.Queue]++
			default:
				summary.Rejected++
				summary.Queued[outcome.Decision.Queue]++
			}
			return nil
		})
	}

	err := g.Wait()
	p.logger.Info("Batch complete",
		zap.Int("processed", summary.Processed),
		zap.Int("approved", summary.Approved),
		zap.Int("pending", summary.Pending),
		zap.Int("rejected", summary.Rejected),
		zap.Int("failed", summary.Failed))
	return summary, err
}
