package eventcache_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/repository/eventcache"
)

// TestProperty_LocalIDAssignment validates the local id contract: for any
// feed batch the assigned ids are exactly 1..n in feed order, and the
// mapping between upstream ids and local ids is a bijection.
func TestProperty_LocalIDAssignment(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("local ids are dense and follow feed order", prop.ForAll(
		func(n int) bool {
			cache := eventcache.New()
			events := make([]*model.Event, n)
			for i := range events {
				events[i] = &model.Event{ID: types.EventID(fmt.Sprintf("EVT-%06d", i))}
			}
			cache.Replace(events, time.Now())

			got := cache.Events()
			if len(got) != n {
				return false
			}
			for i, ev := range got {
				if ev.LocalID != types.LocalID(i+1) {
					return false
				}
				if ev.ID != events[i].ID {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 200),
	))

	properties.Property("local id resolution round-trips to the same event", prop.ForAll(
		func(n int, pick int) bool {
			if n == 0 {
				return true
			}
			pick = pick % n

			cache := eventcache.New()
			events := make([]*model.Event, n)
			for i := range events {
				events[i] = &model.Event{ID: types.EventID(fmt.Sprintf("EVT-%06d", i))}
			}
			cache.Replace(events, time.Now())

			local, ok := cache.LocalID(events[pick].ID)
			if !ok {
				return false
			}
			resolved := cache.ByLocalIDs([]types.LocalID{local})
			return len(resolved) == 1 && resolved[0].ID == events[pick].ID
		},
		gen.IntRange(1, 150),
		gen.IntRange(0, 1<<30),
	))

	properties.Property("rebuild keeps ids dense for any shuffled subset", prop.ForAll(
		func(n int, keep int, seed int64) bool {
			if keep > n {
				n, keep = keep, n
			}

			events := make([]*model.Event, n)
			for i := range events {
				events[i] = &model.Event{ID: types.EventID(fmt.Sprintf("EVT-%06d", i))}
			}

			cache := eventcache.New()
			cache.Replace(events, time.Now())

			// Next generation: a shuffled subset of the previous feed
			r := rand.New(rand.NewSource(seed))
			shuffled := append([]*model.Event(nil), events...)
			r.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			next := shuffled[:keep]
			cache.Replace(next, time.Now())

			got := cache.Events()
			if len(got) != keep {
				return false
			}
			seen := make(map[types.EventID]bool, keep)
			for i, ev := range got {
				if ev.LocalID != types.LocalID(i+1) {
					return false
				}
				if ev.ID != next[i].ID {
					return false
				}
				if seen[ev.ID] {
					return false
				}
				seen[ev.ID] = true
			}
			return true
		},
		gen.IntRange(1, 120),
		gen.IntRange(1, 120),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
