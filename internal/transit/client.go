package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider exposes the read endpoints of the transit data backend.
// Implementations must treat timeouts and non-2xx responses as errors.
type Provider interface {
	Trains(ctx context.Context) ([]Train, error)
	Schedules(ctx context.Context) ([]Schedule, error)
	Notices(ctx context.Context) ([]Notice, error)

	// Probe reports whether the backend is reachable. A slow or failing
	// probe means offline mode; it is never retried within a turn.
	Probe(ctx context.Context) bool
}

// Client is the HTTP implementation of Provider.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	fetchTimeout time.Duration
	probeTimeout time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying http.Client (used in tests).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeouts overrides the per-fetch and probe timeouts.
func WithTimeouts(fetch, probe time.Duration) ClientOption {
	return func(c *Client) {
		if fetch > 0 {
			c.fetchTimeout = fetch
		}
		if probe > 0 {
			c.probeTimeout = probe
		}
	}
}

// NewClient builds a Provider over the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{},
		fetchTimeout: 5 * time.Second,
		probeTimeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Trains fetches the train collection.
func (c *Client) Trains(ctx context.Context) ([]Train, error) {
	var trains []Train
	if err := c.getJSON(ctx, "/api/trains", &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

// Schedules fetches the route/schedule collection.
func (c *Client) Schedules(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule
	if err := c.getJSON(ctx, "/api/routes", &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Notices fetches the notice collection.
func (c *Client) Notices(ctx context.Context) ([]Notice, error) {
	var notices []Notice
	if err := c.getJSON(ctx, "/api/notices", &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// Probe checks backend reachability with a short deadline.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("transit: failed to build request for %s: %w", path, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("transit: request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("transit: %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("transit: failed to decode %s response: %w", path, err)
	}
	return nil
}
