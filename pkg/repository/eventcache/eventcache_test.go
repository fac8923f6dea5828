package eventcache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/repository/eventcache"
)

func feedEvents(ids ...string) []*model.Event {
	events := make([]*model.Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, &model.Event{
			ID:             types.EventID(id),
			StartTimestamp: "2025-04-05T10:00:00Z",
			Summary:        "event " + id,
		})
	}
	return events
}

func TestReplaceAssignsLocalIDsInFeedOrder(t *testing.T) {
	cache := eventcache.New()
	now := time.Date(2025, 4, 5, 12, 0, 0, 0, time.UTC)

	stats := cache.Replace(feedEvents("CAL-30", "CAL-10", "CAL-20"), now)
	gt.Number(t, stats.Events).Equal(3)
	gt.String(t, stats.Generation).NotEqual("")

	events := cache.Events()
	gt.Array(t, events).Length(3)
	for i, ev := range events {
		gt.Value(t, ev.LocalID).Equal(types.LocalID(i + 1))
	}
	// Feed order, not id order
	gt.Value(t, events[0].ID).Equal(types.EventID("CAL-30"))
	gt.Value(t, events[2].ID).Equal(types.EventID("CAL-20"))
}

func TestReplaceRebuildsMappingFromScratch(t *testing.T) {
	cache := eventcache.New()
	now := time.Date(2025, 4, 5, 12, 0, 0, 0, time.UTC)

	cache.Replace(feedEvents("CAL-1", "CAL-2", "CAL-3"), now)
	first, ok := cache.LocalID("CAL-3")
	gt.Bool(t, ok).True()
	gt.Value(t, first).Equal(types.LocalID(3))

	// Same event moves to the front of the next feed; its local id changes
	cache.Replace(feedEvents("CAL-3", "CAL-1"), now.Add(time.Hour))
	second, ok := cache.LocalID("CAL-3")
	gt.Bool(t, ok).True()
	gt.Value(t, second).Equal(types.LocalID(1))

	// The dropped event's old local id now points at a different event
	events := cache.ByLocalIDs([]types.LocalID{2})
	gt.Array(t, events).Length(1)
	gt.Value(t, events[0].ID).Equal(types.EventID("CAL-1"))
}

func TestByLocalIDsSkipsUnknownAndKeepsRequestOrder(t *testing.T) {
	cache := eventcache.New()
	cache.Replace(feedEvents("CAL-1", "CAL-2", "CAL-3"), time.Now())

	events := cache.ByLocalIDs([]types.LocalID{3, 99, 1, 0})
	gt.Array(t, events).Length(2)
	gt.Value(t, events[0].ID).Equal(types.EventID("CAL-3"))
	gt.Value(t, events[0].LocalID).Equal(types.LocalID(3))
	gt.Value(t, events[1].ID).Equal(types.EventID("CAL-1"))
}

func TestByLocalIDsReturnsCopies(t *testing.T) {
	cache := eventcache.New()
	cache.Replace(feedEvents("CAL-1"), time.Now())

	events := cache.ByLocalIDs([]types.LocalID{1})
	gt.Array(t, events).Length(1)
	events[0].Summary = "mutated"

	again := cache.ByLocalIDs([]types.LocalID{1})
	gt.Value(t, again[0].Summary).Equal("event CAL-1")
}

func TestReplaceSkipsDuplicateUpstreamIDs(t *testing.T) {
	cache := eventcache.New()
	stats := cache.Replace(feedEvents("CAL-1", "CAL-2", "CAL-1"), time.Now())

	gt.Number(t, stats.Events).Equal(2)
	events := cache.Events()
	gt.Array(t, events).Length(2)
	gt.Value(t, events[1].ID).Equal(types.EventID("CAL-2"))
	gt.Value(t, events[1].LocalID).Equal(types.LocalID(2))
}

func TestAgeOfEmptyCacheIsStale(t *testing.T) {
	cache := eventcache.New()
	now := time.Date(2025, 4, 5, 12, 0, 0, 0, time.UTC)

	gt.Bool(t, cache.Age(now) > 24*time.Hour).True()

	cache.Replace(nil, now)
	gt.Value(t, cache.Age(now.Add(10*time.Minute))).Equal(10 * time.Minute)
}

func TestStatsChangePerGeneration(t *testing.T) {
	cache := eventcache.New()
	now := time.Now()

	cache.Replace(feedEvents("CAL-1"), now)
	first := cache.Stats()

	cache.Replace(feedEvents("CAL-1"), now.Add(time.Hour))
	second := cache.Stats()

	gt.String(t, first.Generation).NotEqual(second.Generation)
	gt.Number(t, second.Events).Equal(1)
	gt.Bool(t, second.RefreshedAt.After(first.RefreshedAt)).True()
}

func TestLargeGenerationStaysDense(t *testing.T) {
	cache := eventcache.New()

	ids := make([]string, 500)
	for i := range ids {
		ids[i] = fmt.Sprintf("CAL-%04d", i)
	}
	cache.Replace(feedEvents(ids...), time.Now())

	gt.Number(t, cache.Len()).Equal(500)
	events := cache.ByLocalIDs([]types.LocalID{1, 250, 500})
	gt.Array(t, events).Length(3)
	gt.Value(t, events[1].ID).Equal(types.EventID("CAL-0249"))
}
