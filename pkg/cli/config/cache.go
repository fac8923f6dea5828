package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Cache holds CLI flags for the data cache behavior: how long reference
// data (directory and scholars lookups) stays fresh, how far ahead the
// calendar feed window reaches, and whether a background worker keeps the
// event generation warm.
type Cache struct {
	ttlSeconds      int
	lookaheadDays   int
	refreshInterval time.Duration
}

// Flags returns CLI flags for cache configuration
func (x *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "cache-ttl",
			Usage:       "Reference data cache TTL in seconds",
			Value:       3600,
			Sources:     cli.EnvVars("BLUEBOOK_CACHE_TTL"),
			Destination: &x.ttlSeconds,
		},
		&cli.IntFlag{
			Name:        "feed-lookahead-days",
			Usage:       "How many days ahead the calendar feed window reaches",
			Value:       90,
			Sources:     cli.EnvVars("BLUEBOOK_FEED_LOOKAHEAD_DAYS"),
			Destination: &x.lookaheadDays,
		},
		&cli.DurationFlag{
			Name:        "feed-refresh-interval",
			Usage:       "Background feed refresh interval (0 disables the worker)",
			Value:       0,
			Sources:     cli.EnvVars("BLUEBOOK_FEED_REFRESH_INTERVAL"),
			Destination: &x.refreshInterval,
		},
	}
}

// LogValue renders the cache configuration as a structured log group
func (x Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ttl_seconds", x.ttlSeconds),
		slog.Int("lookahead_days", x.lookaheadDays),
		slog.Duration("refresh_interval", x.refreshInterval),
	)
}

// Validate checks that the cache settings are usable
func (x *Cache) Validate() error {
	if x.ttlSeconds <= 0 {
		return goerr.New("cache TTL must be positive", goerr.V("cache_ttl", x.ttlSeconds))
	}
	if x.lookaheadDays <= 0 {
		return goerr.New("feed lookahead must be positive", goerr.V("lookahead_days", x.lookaheadDays))
	}
	if x.refreshInterval < 0 {
		return goerr.New("feed refresh interval must not be negative",
			goerr.V("refresh_interval", x.refreshInterval))
	}
	return nil
}

// TTL returns the reference data cache TTL as a duration
func (x *Cache) TTL() time.Duration {
	return time.Duration(x.ttlSeconds) * time.Second
}

// LookaheadDays returns the calendar feed window size in days
func (x *Cache) LookaheadDays() int {
	return x.lookaheadDays
}

// RefreshInterval returns the background refresh interval. Zero means the
// worker is disabled and the read path refreshes on demand.
func (x *Cache) RefreshInterval() time.Duration {
	return x.refreshInterval
}
