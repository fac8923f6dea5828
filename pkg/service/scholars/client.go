package scholars

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/gjson"

	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/utils/safe"
)

const (
	// DefaultBaseURL is the public scholarly profile widgets API
	DefaultBaseURL = "https://scholars.duke.edu/widgets/api/v0.9"
	// DefaultTimeout bounds a single widgets request
	DefaultTimeout = 30 * time.Second
	// DefaultRetryMax is the retry budget for one request
	DefaultRetryMax = 3
)

// Client queries the scholarly profile widgets API
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

// New creates a scholars client
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("scholars API URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid scholars API URL", goerr.V("url", baseURL))
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

// Publications returns up to count publication items for the scholar.
func (c *Client) Publications(ctx context.Context, duid types.DUID, count int) ([]gjson.Result, error) {
	return c.items(ctx, "publications", duid, count)
}

// Grants returns up to count grant items for the scholar.
func (c *Client) Grants(ctx context.Context, duid types.DUID, count int) ([]gjson.Result, error) {
	return c.items(ctx, "grants", duid, count)
}

// Profile returns the complete profile items for the scholar. The API
// returns at most one item for a profile query.
func (c *Client) Profile(ctx context.Context, duid types.DUID) ([]gjson.Result, error) {
	return c.items(ctx, "complete", duid, 1)
}

// items fetches one widgets collection. The API answers with either an
// object carrying an "items" array or, on some deployments, a bare array.
func (c *Client) items(ctx context.Context, kind string, duid types.DUID, count int) ([]gjson.Result, error) {
	if err := duid.Validate(); err != nil {
		return nil, err
	}

	target, err := url.JoinPath(c.baseURL, "people", kind, strconv.Itoa(count)+".json")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build scholars URL", goerr.V("kind", kind))
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid scholars URL", goerr.V("kind", kind))
	}
	q := u.Query()
	q.Set("uri", string(duid))
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build scholars request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "scholars query failed",
			goerr.V("kind", kind), goerr.V("duid", duid))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("scholars query returned an unexpected status",
			goerr.V("status_code", resp.StatusCode), goerr.V("kind", kind), goerr.V("duid", duid))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scholars response", goerr.V("kind", kind))
	}

	parsed := gjson.ParseBytes(body)
	if parsed.IsArray() {
		return parsed.Array(), nil
	}
	return parsed.Get("items").Array(), nil
}
