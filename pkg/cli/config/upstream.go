package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/duke-colab/bluebook/pkg/service/calendar"
	"github.com/duke-colab/bluebook/pkg/service/directory"
	"github.com/duke-colab/bluebook/pkg/service/scholars"
)

// Upstream holds CLI flags for the three upstream data sources. The
// directory API key is the only credential in the system and is kept out
// of logs.
type Upstream struct {
	calendarURL  string
	directoryURL string
	directoryKey string
	scholarsURL  string
	timeout      time.Duration
	retryMax     int
}

// Flags returns CLI flags for upstream configuration
func (x *Upstream) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "calendar-api-url",
			Usage:       "Calendar events feed URL",
			Value:       calendar.DefaultBaseURL,
			Sources:     cli.EnvVars("BLUEBOOK_CALENDAR_API_URL"),
			Destination: &x.calendarURL,
		},
		&cli.StringFlag{
			Name:        "directory-api-url",
			Usage:       "People directory API URL",
			Value:       directory.DefaultBaseURL,
			Sources:     cli.EnvVars("BLUEBOOK_DIRECTORY_API_URL"),
			Destination: &x.directoryURL,
		},
		&cli.StringFlag{
			Name:        "directory-api-key",
			Usage:       "People directory API access token (required)",
			Sources:     cli.EnvVars("BLUEBOOK_DIRECTORY_API_KEY"),
			Destination: &x.directoryKey,
		},
		&cli.StringFlag{
			Name:        "scholars-api-url",
			Usage:       "Scholars widgets API URL",
			Value:       scholars.DefaultBaseURL,
			Sources:     cli.EnvVars("BLUEBOOK_SCHOLARS_API_URL"),
			Destination: &x.scholarsURL,
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Per-request timeout for upstream calls",
			Value:       calendar.DefaultTimeout,
			Sources:     cli.EnvVars("BLUEBOOK_HTTP_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.IntFlag{
			Name:        "http-retry-max",
			Usage:       "Maximum retries per upstream request",
			Value:       calendar.DefaultRetryMax,
			Sources:     cli.EnvVars("BLUEBOOK_HTTP_RETRY_MAX"),
			Destination: &x.retryMax,
		},
	}
}

// LogValue renders the upstream configuration as a structured log group.
// The API key is intentionally omitted.
func (x Upstream) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("calendar_api_url", x.calendarURL),
		slog.String("directory_api_url", x.directoryURL),
		slog.Bool("directory_api_key_set", x.directoryKey != ""),
		slog.String("scholars_api_url", x.scholarsURL),
		slog.Duration("http_timeout", x.timeout),
		slog.Int("http_retry_max", x.retryMax),
	)
}

// Configure builds the three upstream clients from the configured flags.
func (x *Upstream) Configure() (*calendar.Client, *directory.Client, *scholars.Client, error) {
	feedClient, err := calendar.New(x.calendarURL,
		calendar.WithTimeout(x.timeout),
		calendar.WithRetryMax(x.retryMax),
	)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to create calendar client")
	}

	directoryClient, err := directory.New(x.directoryURL, x.directoryKey,
		directory.WithTimeout(x.timeout),
		directory.WithRetryMax(x.retryMax),
	)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to create directory client")
	}

	scholarsClient, err := scholars.New(x.scholarsURL,
		scholars.WithTimeout(x.timeout),
		scholars.WithRetryMax(x.retryMax),
	)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to create scholars client")
	}

	return feedClient, directoryClient, scholarsClient, nil
}
