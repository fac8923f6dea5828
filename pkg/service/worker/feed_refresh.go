package worker

import (
	"context"
	"time"

	"github.com/duke-colab/bluebook/pkg/repository/eventcache"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

// CalendarRefresher is the slice of the calendar resolver the worker needs
type CalendarRefresher interface {
	Refresh(ctx context.Context) error
	Stats() eventcache.Stats
}

// FeedRefreshWorker refreshes the event cache in the background so readers
// rarely pay the upstream fetch. Reads stay correct without it because the
// resolver refreshes lazily on stale access.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type FeedRefreshWorker struct {
	calendar CalendarRefresher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewFeedRefreshWorker creates a worker that refreshes the event cache
// every interval
func NewFeedRefreshWorker(calendar CalendarRefresher, interval time.Duration) *FeedRefreshWorker {
	return &FeedRefreshWorker{
		calendar: calendar,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop
// - Initial refresh and periodic refresh both run in a background goroutine
// - Does not block server startup
func (w *FeedRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("Feed refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *FeedRefreshWorker) Stop() {
	logging.Default().Info("Feed refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Feed refresh worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *FeedRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Initial refresh warms the cache before the first reader arrives
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)

		case <-w.stopCh:
			logging.Default().Info("Feed refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Feed refresh worker context cancelled")
			return
		}
	}
}

// refresh performs a single refresh cycle. A failure is logged and the
// stale generation stays in service until the next interval.
func (w *FeedRefreshWorker) refresh(ctx context.Context) {
	start := time.Now()

	if err := w.calendar.Refresh(ctx); err != nil {
		logging.Default().Error("Feed refresh failed (will retry next interval)",
			"error", err.Error())
		return
	}

	stats := w.calendar.Stats()
	logging.Default().Info("Feed refresh completed",
		"generation", stats.Generation,
		"events", stats.Events,
		"duration", time.Since(start).String())
}
