package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/usecase"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type stubFeed struct {
	mu     sync.Mutex
	events []*model.Event
	err    error
	calls  int
}

func (s *stubFeed) Fetch(ctx context.Context, lookaheadDays int) ([]*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func (s *stubFeed) set(events []*model.Event, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.err = err
}

func (s *stubFeed) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func feedEvent(id, summary, start string) *model.Event {
	return &model.Event{
		ID:             types.EventID(id),
		Summary:        summary,
		StartTimestamp: start,
	}
}

func mustDate(t testing.TB, s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	gt.NoError(t, err)
	return d
}

func TestSimplifiedEventsDateFilter(t *testing.T) {
	feed := &stubFeed{events: []*model.Event{
		feedEvent("E1", "Organ Recital", "2025-04-05T18:00:00-04:00"),
		feedEvent("E2", "Career Fair", "2025-04-06T10:00:00-04:00"),
		feedEvent("E3", "Commencement", "2025-05-11T09:00:00-04:00"),
	}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))
	uc := usecase.NewCalendarUseCase(feed, clock.Now, usecase.DefaultCalendarTTL, 90)

	result := gt.R1(uc.SimplifiedEvents(context.Background(),
		mustDate(t, "2025-04-05"), mustDate(t, "2025-04-06"))).NoError(t)

	gt.V(t, result.Count).Equal(2)
	gt.A(t, result.Events).Length(2)
	gt.V(t, result.Events[0].Title).Equal("Organ Recital")
	gt.V(t, result.Events[0].LocalID).Equal(types.LocalID(1))
	gt.V(t, result.Events[1].LocalID).Equal(types.LocalID(2))
	gt.V(t, result.DateRange.StartDate).Equal("2025-04-05")
	gt.V(t, result.DateRange.EndDate).Equal("2025-04-06")
}

func TestSimplifiedEventsSkipsBadTimestamps(t *testing.T) {
	feed := &stubFeed{events: []*model.Event{
		feedEvent("E1", "Good", "2025-04-05T18:00:00Z"),
		feedEvent("E2", "Broken", "not a timestamp"),
		feedEvent("E3", "Missing", ""),
	}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))
	uc := usecase.NewCalendarUseCase(feed, clock.Now, usecase.DefaultCalendarTTL, 90)

	result := gt.R1(uc.SimplifiedEvents(context.Background(),
		mustDate(t, "2025-04-01"), mustDate(t, "2025-04-30"))).NoError(t)

	gt.V(t, result.Count).Equal(1)
	gt.V(t, result.Events[0].Title).Equal("Good")
}

func TestEnsureFreshSkipsUpstreamWhileFresh(t *testing.T) {
	feed := &stubFeed{events: []*model.Event{
		feedEvent("E1", "Recital", "2025-04-05T18:00:00Z"),
	}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))
	uc := usecase.NewCalendarUseCase(feed, clock.Now, time.Hour, 90)

	ctx := context.Background()
	start, end := mustDate(t, "2025-04-01"), mustDate(t, "2025-04-30")
	gt.R1(uc.SimplifiedEvents(ctx, start, end)).NoError(t)
	gt.R1(uc.SimplifiedEvents(ctx, start, end)).NoError(t)
	gt.V(t, feed.callCount()).Equal(1)

	clock.Advance(time.Hour + time.Minute)
	gt.R1(uc.SimplifiedEvents(ctx, start, end)).NoError(t)
	gt.V(t, feed.callCount()).Equal(2)
}

func TestRefreshFailureKeepsPreviousGeneration(t *testing.T) {
	feed := &stubFeed{events: []*model.Event{
		feedEvent("E1", "Recital", "2025-04-05T18:00:00Z"),
	}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))
	uc := usecase.NewCalendarUseCase(feed, clock.Now, time.Hour, 90)

	ctx := context.Background()
	start, end := mustDate(t, "2025-04-01"), mustDate(t, "2025-04-30")
	gt.R1(uc.SimplifiedEvents(ctx, start, end)).NoError(t)
	generation := uc.Stats().Generation

	feed.set(nil, goerr.New("feed unreachable"))
	clock.Advance(2 * time.Hour)

	_, err := uc.SimplifiedEvents(ctx, start, end)
	gt.Error(t, err)
	gt.V(t, uc.Stats().Generation).Equal(generation)

	feed.set([]*model.Event{
		feedEvent("E1", "Recital", "2025-04-05T18:00:00Z"),
		feedEvent("E2", "Career Fair", "2025-04-06T10:00:00Z"),
	}, nil)

	result := gt.R1(uc.SimplifiedEvents(ctx, start, end)).NoError(t)
	gt.V(t, result.Count).Equal(2)
	gt.V(t, uc.Stats().Generation).NotEqual(generation)
}

func TestEventsByLocalIDs(t *testing.T) {
	feed := &stubFeed{events: []*model.Event{
		feedEvent("E1", "First", "2025-04-05T18:00:00Z"),
		feedEvent("E2", "Second", "2025-04-06T10:00:00Z"),
		feedEvent("E3", "Third", "2025-04-07T10:00:00Z"),
	}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))
	uc := usecase.NewCalendarUseCase(feed, clock.Now, time.Hour, 90)

	result := gt.R1(uc.EventsByLocalIDs(context.Background(),
		[]types.LocalID{3, 1, 99})).NoError(t)

	gt.V(t, result.Count).Equal(2)
	gt.V(t, result.Events[0].Summary).Equal("Third")
	gt.V(t, result.Events[1].Summary).Equal("First")
}

func TestFiltersWithIDs(t *testing.T) {
	music := feedEvent("E1", "Recital", "2025-04-05T18:00:00Z")
	music.Categories = []string{"Music", "Arts"}
	music.Sponsor = "Duke Chapel"

	lecture := feedEvent("E2", "Lecture", "2025-04-06T10:00:00Z")
	lecture.Categories = []string{"Arts"}

	offRange := feedEvent("E3", "Later", "2025-06-01T10:00:00Z")
	offRange.Categories = []string{"Music"}
	offRange.Sponsor = "Duke Chapel"

	feed := &stubFeed{events: []*model.Event{music, lecture, offRange}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))
	uc := usecase.NewCalendarUseCase(feed, clock.Now, time.Hour, 90)

	filters := gt.R1(uc.FiltersWithIDs(context.Background(),
		mustDate(t, "2025-04-05"), mustDate(t, "2025-04-06"))).NoError(t)

	gt.V(t, filters.Categories["Music"]).Equal([]types.LocalID{1})
	gt.V(t, filters.Categories["Arts"]).Equal([]types.LocalID{1, 2})
	gt.V(t, filters.Groups["Duke Chapel"]).Equal([]types.LocalID{1})
	gt.V(t, filters.DateRange.StartDate).Equal("2025-04-05")

	_, hasEmptyGroup := filters.Groups[""]
	gt.B(t, hasEmptyGroup).False()
}

func TestUseCasesBundleDefaults(t *testing.T) {
	feed := &stubFeed{events: []*model.Event{
		feedEvent("E1", "Recital", "2025-04-05T18:00:00Z"),
	}}
	clock := newFakeClock(mustDate(t, "2025-04-01"))

	ucs := usecase.New(feed, nil, nil, usecase.WithClock(clock.Now))
	gt.V(t, ucs.Calendar).NotNil()
	gt.V(t, ucs.Directory).NotNil()
	gt.V(t, ucs.Scholars).NotNil()

	result := gt.R1(ucs.Calendar.SimplifiedEvents(context.Background(),
		mustDate(t, "2025-04-01"), mustDate(t, "2025-04-30"))).NoError(t)
	gt.V(t, result.Count).Equal(1)
}
