package usecase

import (
	"time"

	"github.com/duke-colab/bluebook/pkg/domain/interfaces"
)

// Cache defaults mirror the upstream service behavior: one event
// generation stays fresh for an hour, directory and scholars lookups share
// the one-hour reference TTL, and the feed window covers the next 90 days.
const (
	DefaultCalendarTTL   = time.Hour
	DefaultReferenceTTL  = time.Hour
	DefaultLookaheadDays = 90
)

type UseCases struct {
	Calendar  *CalendarUseCase
	Directory *DirectoryUseCase
	Scholars  *ScholarsUseCase

	clock         func() time.Time
	calendarTTL   time.Duration
	referenceTTL  time.Duration
	lookaheadDays int
}

type Option func(*UseCases)

// WithClock overrides the time source used for freshness checks
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// WithCalendarTTL overrides how long one event generation stays fresh
func WithCalendarTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.calendarTTL = ttl
	}
}

// WithReferenceTTL overrides the shared directory and scholars cache TTL
func WithReferenceTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.referenceTTL = ttl
	}
}

// WithLookaheadDays overrides the feed window requested on refresh
func WithLookaheadDays(days int) Option {
	return func(uc *UseCases) {
		uc.lookaheadDays = days
	}
}

func New(feed interfaces.CalendarFeed, directoryClient interfaces.DirectoryClient, scholarClient interfaces.ScholarClient, opts ...Option) *UseCases {
	uc := &UseCases{
		clock:         time.Now,
		calendarTTL:   DefaultCalendarTTL,
		referenceTTL:  DefaultReferenceTTL,
		lookaheadDays: DefaultLookaheadDays,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Calendar = NewCalendarUseCase(feed, uc.clock, uc.calendarTTL, uc.lookaheadDays)
	uc.Directory = NewDirectoryUseCase(directoryClient, uc.clock, uc.referenceTTL)
	uc.Scholars = NewScholarsUseCase(scholarClient, uc.Directory, uc.clock, uc.referenceTTL)

	return uc
}
