// Package batch reconciles many independent requests concurrently.
//
// The matcher has no cancellation of its own; the runner checks the context
// between requests, so a cancelled batch stops after in-flight requests finish.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"varmatch/internal/logger"
	"varmatch/internal/match"
	"varmatch/internal/request"
)

// Result is the outcome of one request in a batch, at the request's index.
type Result struct {
	Matches match.CandidateList `json:"matches"`
}

// Runner fans requests out to a bounded number of workers.
type Runner struct {
	matcher *match.Matcher
	workers int
	log     *logger.Logger
}

// NewRunner creates a Runner. workers < 1 is treated as 1; a nil logger discards.
func NewRunner(matcher *match.Matcher, workers int, log *logger.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Runner{matcher: matcher, workers: workers, log: log}
}

// Run reconciles every request and returns results in request order.
// It returns the context error if ctx is cancelled before all requests ran.
func (r *Runner) Run(ctx context.Context, reqs []request.Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}

	start := time.Now()

	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range reqs {
		if err := gctx.Err(); err != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			req := reqs[i]
			results[i] = Result{Matches: r.matcher.Reconcile(req.ExtractedVariables, req.UserPreferences)}
			atomic.AddInt64(&done, 1)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled after %d of %d requests: %w", atomic.LoadInt64(&done), len(reqs), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch cancelled after %d of %d requests: %w", atomic.LoadInt64(&done), len(reqs), err)
	}

	r.log.Debug("batch reconciled",
		"requests", len(reqs),
		"workers", r.workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return results, nil
}
