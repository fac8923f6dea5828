package eventcache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
)

// Cache holds one generation of calendar feed events together with a
// bidirectional mapping between upstream event ids and compact local ids.
// Local ids are assigned 1, 2, 3, ... in feed order and rebuilt from
// scratch on every Replace, so a local id is only meaningful against the
// generation that issued it. Nothing here is persisted.
type Cache struct {
	mu          sync.RWMutex
	byID        map[types.EventID]*model.Event
	order       []types.EventID
	localToID   map[types.LocalID]types.EventID
	idToLocal   map[types.EventID]types.LocalID
	nextLocalID types.LocalID
	generation  string
	refreshedAt time.Time
}

// Stats describes the current cache generation
type Stats struct {
	Generation  string    `json:"generation"`
	Events      int       `json:"events"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// New creates an empty cache. An empty cache is stale by definition, so
// the first read always triggers a refresh.
func New() *Cache {
	return &Cache{
		byID:        make(map[types.EventID]*model.Event),
		localToID:   make(map[types.LocalID]types.EventID),
		idToLocal:   make(map[types.EventID]types.LocalID),
		nextLocalID: 1,
	}
}

// Replace atomically swaps in a new generation built from the given feed
// events. Events repeating an id already seen in the batch are skipped so
// the id mapping stays a bijection. Returns the new generation's stats.
func (c *Cache) Replace(events []*model.Event, refreshedAt time.Time) Stats {
	byID := make(map[types.EventID]*model.Event, len(events))
	order := make([]types.EventID, 0, len(events))
	localToID := make(map[types.LocalID]types.EventID, len(events))
	idToLocal := make(map[types.EventID]types.LocalID, len(events))

	next := types.LocalID(1)
	for _, ev := range events {
		if _, ok := byID[ev.ID]; ok {
			continue
		}
		byID[ev.ID] = ev
		order = append(order, ev.ID)
		localToID[next] = ev.ID
		idToLocal[ev.ID] = next
		next++
	}

	generation := uuid.Must(uuid.NewV7()).String()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = byID
	c.order = order
	c.localToID = localToID
	c.idToLocal = idToLocal
	c.nextLocalID = next
	c.generation = generation
	c.refreshedAt = refreshedAt

	return Stats{
		Generation:  generation,
		Events:      len(order),
		RefreshedAt: refreshedAt,
	}
}

// Events returns the current generation in feed order. Returned events are
// copies carrying their local id; an event that somehow lacks one is
// assigned the next free id on the fly.
func (c *Cache) Events() []*model.Event {
	c.mu.RLock()
	if len(c.idToLocal) == len(c.order) {
		defer c.mu.RUnlock()
		return c.cloneAllLocked()
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.order {
		c.ensureLocalLocked(id)
	}
	return c.cloneAllLocked()
}

func (c *Cache) cloneAllLocked() []*model.Event {
	events := make([]*model.Event, 0, len(c.order))
	for _, id := range c.order {
		ev := c.byID[id].Clone()
		ev.LocalID = c.idToLocal[id]
		events = append(events, ev)
	}
	return events
}

func (c *Cache) ensureLocalLocked(id types.EventID) types.LocalID {
	if local, ok := c.idToLocal[id]; ok {
		return local
	}
	local := c.nextLocalID
	c.nextLocalID++
	c.idToLocal[id] = local
	c.localToID[local] = id
	return local
}

// ByLocalIDs resolves local ids back to full events, preserving the order
// of the request. Unknown ids are silently skipped: they usually belong to
// a previous generation and there is nothing useful to resolve them to.
func (c *Cache) ByLocalIDs(ids []types.LocalID) []*model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]*model.Event, 0, len(ids))
	for _, local := range ids {
		id, ok := c.localToID[local]
		if !ok {
			continue
		}
		ev, ok := c.byID[id]
		if !ok {
			continue
		}
		cloned := ev.Clone()
		cloned.LocalID = local
		events = append(events, cloned)
	}
	return events
}

// LocalID returns the local id mapped to an upstream event id
func (c *Cache) LocalID(id types.EventID) (types.LocalID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	local, ok := c.idToLocal[id]
	return local, ok
}

// Len returns the number of events in the current generation
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

// Age returns how old the current generation is. An empty cache that has
// never been replaced reports an age far beyond any reasonable TTL.
func (c *Cache) Age(now time.Time) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return now.Sub(c.refreshedAt)
}

// Stats returns the current generation's stats
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Generation:  c.generation,
		Events:      len(c.order),
		RefreshedAt: c.refreshedAt,
	}
}
