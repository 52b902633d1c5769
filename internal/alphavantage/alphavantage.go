// Package alphavantage implements the secondary fundamentals source.
// The tracker queries it for trailing EPS and up to five fiscal years
// of reported EPS per symbol.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
)

// Client defines the interface for fetching fundamentals data from
// Alpha Vantage. It enables dependency injection and testing with mock
// implementations.
type Client interface {
	FetchOverview(ctx context.Context, symbol string) (Overview, error)
	FetchAnnualEPS(ctx context.Context, symbol string, limit int) ([]AnnualEPS, error)
}

// FundamentalsClient provides methods for fetching company fundamentals
// from the Alpha Vantage API. It wraps an HTTP client and an API key
// lookup; the key is resolved per request so a key stored at runtime
// takes effect without a restart.
type FundamentalsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     func() string
}

// NewFundamentalsClient creates a new Alpha Vantage client. The apiKey
// function is consulted on every request.
func NewFundamentalsClient(apiKey func() string) *FundamentalsClient {
	return &FundamentalsClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://www.alphavantage.co",
		apiKey:     apiKey,
	}
}

// NewFundamentalsClientWithBaseURL creates a client pointed at a custom
// base URL. Used by tests to run against an httptest server.
func NewFundamentalsClientWithBaseURL(baseURL string, apiKey func() string) *FundamentalsClient {
	c := NewFundamentalsClient(apiKey)
	c.baseURL = baseURL
	return c
}

// FetchOverview retrieves the company overview for a symbol. A missing
// or non-numeric EPS field yields a nil EPS, not an error.
func (c *FundamentalsClient) FetchOverview(ctx context.Context, symbol string) (Overview, error) {
	var resp overviewResponse
	if err := c.query(ctx, "OVERVIEW", symbol, &resp); err != nil {
		return Overview{}, err
	}
	if err := apiError(resp.ErrorMessage, resp.Note, resp.Information); err != nil {
		return Overview{}, err
	}

	return Overview{
		Symbol: resp.Symbol,
		Name:   resp.Name,
		EPS:    parseDecimal(resp.EPS),
	}, nil
}

// FetchAnnualEPS retrieves up to limit fiscal years of reported EPS for
// a symbol, ordered oldest to newest. Years with a non-numeric EPS are
// dropped. An empty result is returned as-is; the fallback to a flat
// series is the caller's concern.
func (c *FundamentalsClient) FetchAnnualEPS(ctx context.Context, symbol string, limit int) ([]AnnualEPS, error) {
	var resp earningsResponse
	if err := c.query(ctx, "EARNINGS", symbol, &resp); err != nil {
		return nil, err
	}
	if err := apiError(resp.ErrorMessage, resp.Note, resp.Information); err != nil {
		return nil, err
	}

	annual := make([]AnnualEPS, 0, len(resp.AnnualEarnings))
	for _, entry := range resp.AnnualEarnings {
		eps := parseDecimal(entry.ReportedEPS)
		if eps == nil {
			continue
		}
		fiscalEnd, err := time.Parse("2006-01-02", entry.FiscalDateEnding)
		if err != nil {
			continue
		}
		annual = append(annual, AnnualEPS{FiscalYearEnd: fiscalEnd, EPS: *eps})
	}

	// Alpha Vantage lists years newest first; sort ascending and keep
	// the most recent limit entries.
	sort.Slice(annual, func(i, j int) bool {
		return annual[i].FiscalYearEnd.Before(annual[j].FiscalYearEnd)
	})
	if limit > 0 && len(annual) > limit {
		annual = annual[len(annual)-limit:]
	}

	return annual, nil
}

// query executes one Alpha Vantage function call and decodes the JSON
// response into out.
func (c *FundamentalsClient) query(ctx context.Context, function, symbol string, out any) error {
	key := c.apiKey()
	if key == "" {
		return apperrors.ErrMissingAPIKey
	}

	queryURL := fmt.Sprintf(
		"%s/query?function=%s&symbol=%s&apikey=%s",
		c.baseURL, function, url.QueryEscape(symbol), url.QueryEscape(key),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alphavantage returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

// apiError converts Alpha Vantage's in-band error fields into a Go
// error. The API reports rate limiting through "Note"/"Information"
// rather than HTTP status codes.
func apiError(errorMessage, note, information string) error {
	if errorMessage != "" {
		return fmt.Errorf("alphavantage error: %s", errorMessage)
	}
	if note != "" {
		return fmt.Errorf("alphavantage rate limited: %s", note)
	}
	if information != "" {
		return fmt.Errorf("alphavantage rejected request: %s", information)
	}
	return nil
}

// parseDecimal converts an Alpha Vantage numeric string to a float.
// Returns nil for empty, "None" and other non-numeric values.
func parseDecimal(value string) *float64 {
	if value == "" || value == "None" || value == "-" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
