package ticketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client submits bookings to the ticketing backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient builds a Submitter for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, timeout: timeout}
}

var _ Submitter = (*Client)(nil)

// Submit posts the booking and returns the created ticket identifier.
// The response schema is only checked for a ticket ID field.
func (c *Client) Submit(ctx context.Context, booking Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(booking)
	if err != nil {
		return "", fmt.Errorf("ticketing: failed to marshal booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tickets", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ticketing: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ticketing: booking submission failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ticketing: booking rejected with status %d", resp.StatusCode)
	}

	var result struct {
		Ticket struct {
			ID string `json:"_id"`
		} `json:"ticket"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ticketing: failed to decode booking response: %w", err)
	}
	if result.Ticket.ID == "" {
		return "", fmt.Errorf("ticketing: booking response missing ticket identifier")
	}
	return result.Ticket.ID, nil
}
