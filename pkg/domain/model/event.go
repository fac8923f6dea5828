package model

import (
	"encoding/json"
	"time"

	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// EventLocation is the feed's location block
type EventLocation struct {
	Address string `json:"address,omitempty"`
	Link    string `json:"link,omitempty"`
}

// EventContact is the feed's contact block
type EventContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Event is a single calendar feed entry. Known fields are typed; every
// other key the feed sends is preserved in Extra so that new upstream
// fields survive a decode/encode round trip.
type Event struct {
	ID             types.EventID  `json:"id"`
	LocalID        types.LocalID  `json:"local_id,omitempty"`
	StartTimestamp string         `json:"start_timestamp"`
	EndTimestamp   string         `json:"end_timestamp,omitempty"`
	Summary        string         `json:"summary,omitempty"`
	Description    string         `json:"description,omitempty"`
	Status         string         `json:"status,omitempty"`
	Sponsor        string         `json:"sponsor,omitempty"`
	CoSponsors     []string       `json:"co_sponsors,omitempty"`
	Location       *EventLocation `json:"location,omitempty"`
	Contact        *EventContact  `json:"contact,omitempty"`
	Categories     []string       `json:"categories,omitempty"`
	Link           string         `json:"link,omitempty"`
	EventURL       string         `json:"event_url,omitempty"`

	Extra map[string]any `json:"-"`
}

type eventAlias Event

var eventTypedKeys = []string{
	"id", "local_id", "start_timestamp", "end_timestamp", "summary",
	"description", "status", "sponsor", "co_sponsors", "location",
	"contact", "categories", "link", "event_url",
}

// UnmarshalJSON decodes the typed fields and stashes all remaining keys in Extra
func (e *Event) UnmarshalJSON(data []byte) error {
	var a eventAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return goerr.Wrap(err, "failed to decode event")
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "failed to decode event fields")
	}
	for _, k := range eventTypedKeys {
		delete(raw, k)
	}
	*e = Event(a)
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// MarshalJSON emits the typed fields and the Extra map as one flat object.
// Typed fields win when a key exists in both.
func (e Event) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(eventAlias(e))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode event")
	}
	if len(e.Extra) == 0 {
		return data, nil
	}
	merged := make(map[string]any, len(e.Extra)+len(eventTypedKeys))
	for k, v := range e.Extra {
		merged[k] = v
	}
	var typed map[string]any
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, goerr.Wrap(err, "failed to flatten event")
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Validate checks that the event carries the upstream identifier
func (e *Event) Validate() error {
	if err := e.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid event", goerr.V("summary", e.Summary))
	}
	return nil
}

// StartTime parses the event's start timestamp. The feed usually emits
// RFC 3339 with an offset, but bare local timestamps show up too.
func (e *Event) StartTime() (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, e.StartTimestamp)
	if err == nil {
		return ts, nil
	}
	ts, err = time.Parse("2006-01-02T15:04:05", e.StartTimestamp)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to parse event start timestamp",
			goerr.V("event_id", e.ID), goerr.V("start_timestamp", e.StartTimestamp))
	}
	return ts, nil
}

// Clone returns a copy safe to hand out of the cache. Slices and nested
// structs are copied; Extra values are shared because they are never
// mutated after decode.
func (e *Event) Clone() *Event {
	cloned := *e
	if e.CoSponsors != nil {
		cloned.CoSponsors = append([]string(nil), e.CoSponsors...)
	}
	if e.Categories != nil {
		cloned.Categories = append([]string(nil), e.Categories...)
	}
	if e.Location != nil {
		loc := *e.Location
		cloned.Location = &loc
	}
	if e.Contact != nil {
		contact := *e.Contact
		cloned.Contact = &contact
	}
	if e.Extra != nil {
		extra := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		cloned.Extra = extra
	}
	return &cloned
}

// descriptionLimit bounds the description served in the simplified
// projection so LLM prompts stay small.
const descriptionLimit = 200

// SimplifiedEvent is the compact projection served to LLM tool callers
type SimplifiedEvent struct {
	LocalID     types.LocalID `json:"local_id"`
	Title       string        `json:"title,omitempty"`
	Groups      string        `json:"groups,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	Description string        `json:"description,omitempty"`
	StartTime   string        `json:"start_time,omitempty"`
}

// NewSimplifiedEvent projects an event into its simplified form. The
// description is truncated to 200 characters with an ellipsis suffix.
func NewSimplifiedEvent(ev *Event) SimplifiedEvent {
	desc := ev.Description
	if runes := []rune(desc); len(runes) > descriptionLimit {
		desc = string(runes[:descriptionLimit]) + "..."
	}
	return SimplifiedEvent{
		LocalID:     ev.LocalID,
		Title:       ev.Summary,
		Groups:      ev.Sponsor,
		Categories:  ev.Categories,
		Description: desc,
		StartTime:   ev.StartTimestamp,
	}
}

// DateRange echoes a requested date window in result payloads
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SimplifiedEventsResult is the payload for a simplified events query
type SimplifiedEventsResult struct {
	Events    []SimplifiedEvent `json:"events"`
	Count     int               `json:"count"`
	DateRange DateRange         `json:"date_range"`
}

// EventsByLocalIDsResult is the payload for a local-id batch lookup
type EventsByLocalIDsResult struct {
	Events []*Event `json:"events"`
	Count  int      `json:"count"`
}

// EventFilters maps distinct category and group names within a date range
// to the local ids of the matching events, so a tool caller can collect
// ids per filter and fetch full payloads in one batch.
type EventFilters struct {
	Categories map[string][]types.LocalID `json:"categories"`
	Groups     map[string][]types.LocalID `json:"groups"`
	DateRange  DateRange                  `json:"date_range"`
}
