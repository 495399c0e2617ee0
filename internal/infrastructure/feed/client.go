package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pd-tracker/internal/domain"
)

// Client reads the remote donation feed. It is the single fetch path shared
// by the poller and the presentation layer.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a feed client with a bounded request timeout. The
// upstream gives no latency guarantee and a hung connection must not stall
// the poll scheduler, so timeout expiry is classified as unreachable.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch issues GET {baseURL}/api/donations. The credential is forwarded
// verbatim as a Bearer token when present and never inspected. Any non-2xx
// status maps to ErrUnavailable (auth failures included; discrimination is
// the caller's business); transport failures map to ErrUnreachable. An empty
// feed is a valid steady state, not an error.
func (c *Client) Fetch(ctx context.Context, baseURL, credential string) ([]domain.DonationEvent, error) {
	url := strings.TrimSuffix(baseURL, "/") + "/api/donations"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Unreachable(err)
	}
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.Unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.Unavailable(resp.StatusCode)
	}

	var events []domain.DonationEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, domain.Unreachable(fmt.Errorf("decode feed: %w", err))
	}
	return events, nil
}
