package directory

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/utils/safe"
)

const (
	// DefaultBaseURL is the Duke identities API
	DefaultBaseURL = "https://api.colab.duke.edu/identities/v1"
	// DefaultTimeout bounds a single directory request
	DefaultTimeout = 30 * time.Second
	// DefaultRetryMax is the retry budget for one request
	DefaultRetryMax = 3
)

// Client queries the university directory API
type Client struct {
	baseURL     string
	accessToken string
	http        *retryablehttp.Client
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

// New creates a directory client. Both the API URL and the access token
// are required.
func New(baseURL, accessToken string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("directory API URL is required")
	}
	if accessToken == "" {
		return nil, goerr.New("directory access token is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid directory API URL", goerr.V("url", baseURL))
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = DefaultRetryMax
	retryClient.HTTPClient.Timeout = DefaultTimeout

	c := &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        retryClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search queries the directory and returns the raw person records. Record
// validation is the caller's concern.
func (c *Client) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid directory API URL", goerr.V("url", c.baseURL))
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(c.scrub(err), "failed to build directory request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(c.scrub(err), "directory search failed", goerr.V("query", query))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("directory search returned an unexpected status",
			goerr.V("status_code", resp.StatusCode), goerr.V("query", query))
	}

	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, goerr.Wrap(err, "failed to decode directory response", goerr.V("query", query))
	}
	return records, nil
}

// Person fetches the detailed record behind a directory search hit.
func (c *Client) Person(ctx context.Context, ldapkey types.LDAPKey) (json.RawMessage, error) {
	if err := ldapkey.Validate(); err != nil {
		return nil, err
	}

	target, err := url.JoinPath(c.baseURL, string(ldapkey))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build person URL", goerr.V("ldapkey", ldapkey))
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid person URL", goerr.V("ldapkey", ldapkey))
	}
	q := u.Query()
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(c.scrub(err), "failed to build person request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(c.scrub(err), "person lookup failed", goerr.V("ldapkey", ldapkey))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("person lookup returned an unexpected status",
			goerr.V("status_code", resp.StatusCode), goerr.V("ldapkey", ldapkey))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read person response", goerr.V("ldapkey", ldapkey))
	}
	return json.RawMessage(body), nil
}

// scrub strips the access token from error text. The token rides in the
// query string, so URL-bearing transport errors would otherwise carry it
// into logs and response payloads.
func (c *Client) scrub(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, c.accessToken) {
		return err
	}
	return goerr.New(strings.ReplaceAll(msg, c.accessToken, "[redacted]"))
}
