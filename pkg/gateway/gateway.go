package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// StatusChecker defines the interface for querying the payment gateway for
// the definitive status of a payment attempt.
type StatusChecker interface {
	// CheckStatus returns the raw status string reported by the gateway for
	// the given reference id. An empty string means the gateway did not
	// report a status, which callers treat as still in flight.
	CheckStatus(ctx context.Context, referenceID string) (string, error)
}

// statusResponse mirrors the gateway's response envelope.
type statusResponse struct {
	Data struct {
		Status string `json:"Status"`
	} `json:"Data"`
}

// HTTPChecker implements StatusChecker against the gateway's HTTP API.
type HTTPChecker struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPChecker creates a new HTTPChecker with the given request timeout.
func NewHTTPChecker(baseURL string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Make sure we conform to the interface
var _ StatusChecker = (*HTTPChecker)(nil)

// CheckStatus queries the gateway for the status of a payment reference.
func (c *HTTPChecker) CheckStatus(ctx context.Context, referenceID string) (string, error) {
	url := fmt.Sprintf("%s/payments/%s/status", c.BaseURL, referenceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gateway returned status %d for reference %s", resp.StatusCode, referenceID)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}

	// An absent Data.Status is not an error: the payment is simply not
	// settled yet and classifies as pending downstream.
	return body.Data.Status, nil
}
