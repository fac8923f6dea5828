package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/duke-colab/bluebook/pkg/repository/eventcache"
	"github.com/duke-colab/bluebook/pkg/service/worker"
)

// stubRefresher signals every refresh on a channel so tests can wait for
// cycles instead of sleeping
type stubRefresher struct {
	mu        sync.Mutex
	err       error
	calls     int
	refreshed chan struct{}
}

func newStubRefresher() *stubRefresher {
	return &stubRefresher{refreshed: make(chan struct{}, 16)}
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	err := s.err
	s.mu.Unlock()
	select {
	case s.refreshed <- struct{}{}:
	default:
	}
	return err
}

func (s *stubRefresher) Stats() eventcache.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return eventcache.Stats{Generation: "gen", Events: s.calls}
}

func (s *stubRefresher) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubRefresher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func waitForRefresh(t *testing.T, s *stubRefresher) {
	t.Helper()
	select {
	case <-s.refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a refresh cycle")
	}
}

func TestFeedRefreshWorker_InitialRefresh(t *testing.T) {
	refresher := newStubRefresher()
	w := worker.NewFeedRefreshWorker(refresher, time.Hour)

	gt.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// The initial refresh runs without waiting for the first tick
	waitForRefresh(t, refresher)
	gt.V(t, refresher.callCount()).Equal(1)
}

func TestFeedRefreshWorker_PeriodicRefresh(t *testing.T) {
	refresher := newStubRefresher()
	w := worker.NewFeedRefreshWorker(refresher, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	waitForRefresh(t, refresher) // initial
	waitForRefresh(t, refresher) // first tick
	waitForRefresh(t, refresher) // second tick

	gt.B(t, refresher.callCount() >= 3).True()
}

func TestFeedRefreshWorker_ContinuesAfterFailure(t *testing.T) {
	refresher := newStubRefresher()
	refresher.setErr(goerr.New("feed is down"))
	w := worker.NewFeedRefreshWorker(refresher, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	waitForRefresh(t, refresher) // initial attempt fails
	refresher.setErr(nil)
	waitForRefresh(t, refresher) // next tick retries

	gt.B(t, refresher.callCount() >= 2).True()
}

func TestFeedRefreshWorker_StopsCleanly(t *testing.T) {
	refresher := newStubRefresher()
	w := worker.NewFeedRefreshWorker(refresher, time.Hour)

	gt.NoError(t, w.Start(context.Background()))
	waitForRefresh(t, refresher)

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestFeedRefreshWorker_StopsOnContextCancel(t *testing.T) {
	refresher := newStubRefresher()
	w := worker.NewFeedRefreshWorker(refresher, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	gt.NoError(t, w.Start(ctx))
	waitForRefresh(t, refresher)

	cancel()

	// After cancellation the loop exits and further ticks never fire
	calls := refresher.callCount()
	time.Sleep(20 * time.Millisecond)
	gt.V(t, refresher.callCount()).Equal(calls)
}
