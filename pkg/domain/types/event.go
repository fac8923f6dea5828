package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// EventID is the upstream calendar feed's identifier for an event.
// The feed owns this value and it is treated as opaque.
type EventID string

// Validate checks if the EventID is valid
func (e EventID) Validate() error {
	if e == "" {
		return goerr.New("event ID cannot be empty")
	}
	return nil
}

// String returns the string representation of EventID
func (e EventID) String() string {
	return string(e)
}

// LocalID is a compact per-generation alias for an EventID. Local IDs are
// assigned 1, 2, 3, ... in feed order and reassigned from scratch whenever
// the event cache is rebuilt, so a local ID is only meaningful against the
// cache generation that issued it.
type LocalID int64

// Validate checks if the LocalID is valid
func (l LocalID) Validate() error {
	if l < 1 {
		return goerr.New("local ID must be positive", goerr.V("id", int64(l)))
	}
	return nil
}

// String returns the decimal representation of LocalID
func (l LocalID) String() string {
	return strconv.FormatInt(int64(l), 10)
}
