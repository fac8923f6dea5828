package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/domain/interfaces"
	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/repository/eventcache"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

// CalendarUseCase serves event views from a cached feed generation. Reads
// never hit the feed while the current generation is fresh.
type CalendarUseCase struct {
	feed          interfaces.CalendarFeed
	cache         *eventcache.Cache
	clock         func() time.Time
	ttl           time.Duration
	lookaheadDays int

	refreshMu sync.Mutex
}

func NewCalendarUseCase(feed interfaces.CalendarFeed, clock func() time.Time, ttl time.Duration, lookaheadDays int) *CalendarUseCase {
	return &CalendarUseCase{
		feed:          feed,
		cache:         eventcache.New(),
		clock:         clock,
		ttl:           ttl,
		lookaheadDays: lookaheadDays,
	}
}

// EnsureFresh refreshes the event cache when the current generation is
// older than the TTL. Double-checked so concurrent stale readers trigger
// one upstream fetch.
func (uc *CalendarUseCase) EnsureFresh(ctx context.Context) error {
	if uc.cache.Age(uc.clock()) <= uc.ttl {
		return nil
	}

	uc.refreshMu.Lock()
	defer uc.refreshMu.Unlock()

	if uc.cache.Age(uc.clock()) <= uc.ttl {
		return nil
	}
	return uc.refresh(ctx)
}

// Refresh unconditionally replaces the cached generation
func (uc *CalendarUseCase) Refresh(ctx context.Context) error {
	uc.refreshMu.Lock()
	defer uc.refreshMu.Unlock()
	return uc.refresh(ctx)
}

// refresh must run with refreshMu held. A fetch failure leaves the
// previous generation and its timestamp untouched, so the next read
// retries instead of serving a half-replaced cache.
func (uc *CalendarUseCase) refresh(ctx context.Context) error {
	logging.From(ctx).Info("Refreshing event cache", "lookahead_days", uc.lookaheadDays)

	events, err := uc.feed.Fetch(ctx, uc.lookaheadDays)
	if err != nil {
		return goerr.Wrap(err, "failed to refresh event cache")
	}

	stats := uc.cache.Replace(events, uc.clock())
	logging.From(ctx).Info("Replaced event generation",
		"generation", stats.Generation, "events", stats.Events)
	return nil
}

// Stats exposes the cached generation for health reporting
func (uc *CalendarUseCase) Stats() eventcache.Stats {
	return uc.cache.Stats()
}

// SimplifiedEvents returns the compact projection of every cached event
// whose start date falls inside the inclusive range. Events without a
// parseable start timestamp are skipped.
func (uc *CalendarUseCase) SimplifiedEvents(ctx context.Context, start, end time.Time) (*model.SimplifiedEventsResult, error) {
	if err := uc.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	simplified := []model.SimplifiedEvent{}
	for _, ev := range uc.cache.Events() {
		if !uc.startsWithin(ctx, ev, start, end) {
			continue
		}
		simplified = append(simplified, model.NewSimplifiedEvent(ev))
	}

	return &model.SimplifiedEventsResult{
		Events:    simplified,
		Count:     len(simplified),
		DateRange: newDateRange(start, end),
	}, nil
}

// EventsByLocalIDs returns the full payloads behind local ids. Unknown ids
// are skipped without error, matching the id lookup semantics of the cache.
func (uc *CalendarUseCase) EventsByLocalIDs(ctx context.Context, ids []types.LocalID) (*model.EventsByLocalIDsResult, error) {
	if err := uc.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	events := uc.cache.ByLocalIDs(ids)
	return &model.EventsByLocalIDsResult{
		Events: events,
		Count:  len(events),
	}, nil
}

// FiltersWithIDs returns the distinct category and group names occurring
// within the range, each mapped to the local ids of the matching events.
// Ids ascend because local ids follow generation order.
func (uc *CalendarUseCase) FiltersWithIDs(ctx context.Context, start, end time.Time) (*model.EventFilters, error) {
	if err := uc.EnsureFresh(ctx); err != nil {
		return nil, err
	}

	categories := map[string][]types.LocalID{}
	groups := map[string][]types.LocalID{}
	for _, ev := range uc.cache.Events() {
		if !uc.startsWithin(ctx, ev, start, end) {
			continue
		}
		for _, cat := range ev.Categories {
			categories[cat] = append(categories[cat], ev.LocalID)
		}
		if ev.Sponsor != "" {
			groups[ev.Sponsor] = append(groups[ev.Sponsor], ev.LocalID)
		}
	}

	return &model.EventFilters{
		Categories: categories,
		Groups:     groups,
		DateRange:  newDateRange(start, end),
	}, nil
}

// startsWithin reports whether the event starts inside the inclusive
// date range. The comparison is date-only in the timestamp's own zone.
// Events without a start timestamp never match; unparseable timestamps
// are logged and skipped.
func (uc *CalendarUseCase) startsWithin(ctx context.Context, ev *model.Event, start, end time.Time) bool {
	if ev.StartTimestamp == "" {
		return false
	}
	ts, err := ev.StartTime()
	if err != nil {
		logging.From(ctx).Warn("Skipping event with invalid start timestamp",
			"event_id", ev.ID, "start_timestamp", ev.StartTimestamp)
		return false
	}
	d := dateOnly(ts)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}

// dateOnly drops the clock, keeping the wall calendar date
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newDateRange(start, end time.Time) model.DateRange {
	return model.DateRange{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
}
