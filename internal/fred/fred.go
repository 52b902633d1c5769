// Package fred fetches reference bond yields from the FRED
// observations API. The tracker uses a long-term corporate bond yield
// series as the discount rate in intrinsic-value calculations.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/sethvargo/go-retry"
)

// Client defines the interface for fetching yield observations.
type Client interface {
	LatestObservation(ctx context.Context, seriesID string) (float64, error)
}

// observationsResponse maps the raw FRED observations payload. FRED
// reports missing observations with a literal "." value.
type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// YieldClient provides methods for fetching yield series observations
// from the FRED API. The API key is resolved per request so a key
// stored at runtime takes effect without a restart.
type YieldClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     func() string
}

// NewYieldClient creates a new FRED client.
func NewYieldClient(apiKey func() string) *YieldClient {
	return &YieldClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://api.stlouisfed.org",
		apiKey:     apiKey,
	}
}

// NewYieldClientWithBaseURL creates a client pointed at a custom base
// URL. Used by tests to run against an httptest server.
func NewYieldClientWithBaseURL(baseURL string, apiKey func() string) *YieldClient {
	c := NewYieldClient(apiKey)
	c.baseURL = baseURL
	return c
}

// LatestObservation returns the most recent value of a series as a
// percentage (e.g. 4.7 for 4.7%). Converting to a fraction is the
// caller's concern.
func (c *YieldClient) LatestObservation(ctx context.Context, seriesID string) (float64, error) {
	key := c.apiKey()
	if key == "" {
		return 0, apperrors.ErrMissingAPIKey
	}

	queryURL := fmt.Sprintf(
		"%s/fred/series/observations?series_id=%s&api_key=%s&file_type=json&sort_order=desc&limit=1",
		c.baseURL, url.QueryEscape(seriesID), url.QueryEscape(key),
	)

	var resp observationsResponse
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer httpResp.Body.Close()

		if httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("fred returned status %d", httpResp.StatusCode))
		}
		if httpResp.StatusCode != http.StatusOK {
			return fmt.Errorf("fred returned status %d", httpResp.StatusCode)
		}

		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &resp)
	})
	if err != nil {
		return 0, err
	}

	if len(resp.Observations) == 0 {
		return 0, fmt.Errorf("no observations returned for series %s", seriesID)
	}

	value := resp.Observations[0].Value
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric observation %q for series %s", value, seriesID)
	}

	return parsed, nil
}
