package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
	"github.com/duke-colab/bluebook/pkg/utils/safe"
)

const (
	// DefaultBaseURL is the public Duke events feed
	DefaultBaseURL = "https://calendar.duke.edu/events/index.json"
	// DefaultTimeout bounds a single feed request
	DefaultTimeout = 30 * time.Second
	// DefaultRetryMax is the retry budget for one fetch
	DefaultRetryMax = 3
)

// Client fetches the public calendar feed
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// Option is a functional option for client configuration
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = d
	}
}

// WithRetryMax sets the maximum number of retries per request
func WithRetryMax(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// New creates a calendar feed client
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("calendar feed URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid calendar feed URL", goerr.V("url", baseURL))
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = DefaultRetryMax
	retryClient.HTTPClient.Timeout = DefaultTimeout

	c := &Client{
		baseURL: baseURL,
		http:    retryClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves the upcoming events within the lookahead window. Feed
// entries without an id cannot be addressed later and are skipped with a
// warning.
func (c *Client) Fetch(ctx context.Context, lookaheadDays int) ([]*model.Event, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid calendar feed URL", goerr.V("url", c.baseURL))
	}
	q := u.Query()
	q.Set("future_days", strconv.Itoa(lookaheadDays))
	q.Set("feed_type", "simple")
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build feed request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch calendar feed", goerr.V("url", c.baseURL))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("calendar feed returned an unexpected status",
			goerr.V("status_code", resp.StatusCode), goerr.V("url", c.baseURL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read feed response")
	}

	decoded, err := decodeFeed(body)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx)
	events := make([]*model.Event, 0, len(decoded))
	for _, ev := range decoded {
		if ev == nil {
			continue
		}
		if err := ev.Validate(); err != nil {
			logger.Warn("Skipping feed event without an id", "summary", ev.Summary)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// decodeFeed tolerates both feed shapes: a bare array and an object
// wrapping the array under "events".
func decodeFeed(body []byte) ([]*model.Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Events []*model.Event `json:"events"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, goerr.Wrap(err, "failed to decode feed envelope")
		}
		return envelope.Events, nil
	}

	var events []*model.Event
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, goerr.Wrap(err, "failed to decode feed")
	}
	return events, nil
}
