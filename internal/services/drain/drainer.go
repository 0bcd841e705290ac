// Package drain repeatedly fetches the front page of a collection and applies
// a destructive action to every item until the collection is empty or the
// stop policy says otherwise.
package drain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultDelay is the pause after every non-empty page.
	DefaultDelay = time.Second
	// DefaultWorkers is the number of items of one page processed at once.
	DefaultWorkers = 5
)

// FetchFunc returns the current front page. An empty page ends the drain.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// ProcessFunc applies the action to one item. It must not fail; it reports
// false when the action did not succeed.
type ProcessFunc[T any] func(ctx context.Context, item T) bool

// StopReason explains why a drain ended without error.
type StopReason string

const (
	ReasonExhausted  StopReason = "exhausted"
	ReasonItemFailed StopReason = "item-failed"
)

// Stats summarizes a drain run.
type Stats struct {
	Pages     int
	Attempted int
	Succeeded int
	Failed    int
	Reason    StopReason
}

// Options configures a Drainer.
type Options struct {
	Delay   time.Duration
	Workers int
	Policy  StopPolicy
	// Sleep waits between pages. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Drainer runs the fetch / process / pause loop.
type Drainer[T any] struct {
	opts   Options
	logger *slog.Logger
}

// New creates a drainer. Zero Workers and an empty Policy fall back to the
// package defaults; a zero Delay disables the pause.
func New[T any](opts Options, logger *slog.Logger) *Drainer[T] {
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Policy == "" {
		opts.Policy = DefaultPolicy
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}
	return &Drainer[T]{
		opts:   opts,
		logger: logger,
	}
}

// Run drains until a fetched page is empty or the stop policy ends the loop.
// Fetch errors are returned as is; item failures never are.
func (d *Drainer[T]) Run(ctx context.Context, fetch FetchFunc[T], process ProcessFunc[T]) (Stats, error) {
	var stats Stats

	d.logger.DebugContext(ctx, "Starting drain",
		"delay", d.opts.Delay,
		"workers", d.opts.Workers,
		"policy", string(d.opts.Policy))

	running := true
	for running {
		page, err := fetch(ctx)
		if err != nil {
			return stats, fmt.Errorf("fetching page %d: %w", stats.Pages+1, err)
		}
		stats.Pages++

		if len(page) == 0 {
			stats.Reason = ReasonExhausted
			d.logger.InfoContext(ctx, "Nothing left to process", "pages", stats.Pages)
			return stats, nil
		}

		d.logger.DebugContext(ctx, "Processing page", "page", stats.Pages, "items", len(page))

		results := d.processPage(ctx, page, process)
		failed := 0
		for _, ok := range results {
			stats.Attempted++
			if ok {
				stats.Succeeded++
			} else {
				failed++
			}
		}
		stats.Failed += failed

		running = d.opts.Policy.Continue(results)
		if failed > 0 {
			d.logger.WarnContext(ctx, "Page had failures",
				"page", stats.Pages,
				"failed", failed,
				"total", len(page),
				"continue", running)
		}

		if err := d.opts.Sleep(ctx, d.opts.Delay); err != nil {
			return stats, err
		}
	}

	stats.Reason = ReasonItemFailed
	return stats, nil
}

// processPage attempts every item exactly once and returns the outcomes in
// page order after all attempts have finished.
func (d *Drainer[T]) processPage(ctx context.Context, page []T, process ProcessFunc[T]) []bool {
	results := make([]bool, len(page))

	workers := min(d.opts.Workers, len(page))
	if workers <= 1 {
		for i, item := range page {
			results[i] = process(ctx, item)
		}
		return results
	}

	indexes := make(chan int, len(page))
	for i := range page {
		indexes <- i
	}
	close(indexes)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = process(ctx, page[i])
			}
		}()
	}
	wg.Wait()

	return results
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
