package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// Client defines the interface for fetching market data from Yahoo
// Finance. It enables dependency injection and testing with mock
// implementations.
type Client interface {
	QueryChartRange(ctx context.Context, symbol, chartRange string) (Response, error)
	QueryQuoteSummary(ctx context.Context, symbol string) (QuoteSummary, error)
	ParseChart(yahooResult Response) (PriceChart, error)
}

// FinanceClient provides methods for fetching financial data from the
// Yahoo Finance API. It wraps an HTTP client and provides convenient
// methods for querying stock prices and quote summaries.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at a custom base
// URL. Used by tests to run against an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	c := NewFinanceClient()
	c.baseURL = baseURL
	return c
}

// QueryChartRange fetches daily price data for a symbol over a named
// lookback range ("1mo", "5d", "1d"). The range-based query format lets
// Yahoo select the most recent trading days inside the window.
//
// Returns an error if the HTTP request fails, the API returns an error,
// or no results are found.
func (c *FinanceClient) QueryChartRange(ctx context.Context, symbol, chartRange string) (Response, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", c.baseURL, symbol, chartRange)

	var result Response
	if err := c.queryJSON(ctx, url, &result); err != nil {
		return Response{}, err
	}
	if result.Chart.Error != nil {
		return result, fmt.Errorf("yahoo error: %s", *result.Chart.Error)
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// QueryQuoteSummary fetches the quote summary for a symbol from the v7
// quote endpoint. The tracker uses it for the trailing-EPS fallback
// when the fundamentals source has no EPS field.
func (c *FinanceClient) QueryQuoteSummary(ctx context.Context, symbol string) (QuoteSummary, error) {
	url := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, symbol)

	var result QuoteSummaryResponse
	if err := c.queryJSON(ctx, url, &result); err != nil {
		return QuoteSummary{}, err
	}
	if result.QuoteResponse.Error != nil {
		return QuoteSummary{}, fmt.Errorf("yahoo error: %s", *result.QuoteResponse.Error)
	}
	if len(result.QuoteResponse.Result) == 0 {
		return QuoteSummary{}, fmt.Errorf("no quote returned for symbol %s", symbol)
	}

	return result.QuoteResponse.Result[0], nil
}

// ParseChart converts a raw chart response into a structured price
// chart. Days where Yahoo returned a null close are dropped; the method
// fails only when the response carries no timestamps at all or the
// data arrays have mismatched lengths.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		ind := Indicators{
			Date:       time.Unix(ts, 0).UTC(),
			PriceClose: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			ind.Volume = *quote.Volume[i]
		}
		indicators = append(indicators, ind)
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
	}, nil
}

// queryJSON executes an HTTP GET against the Yahoo Finance API and
// decodes the JSON response into out. Transient failures (connection
// errors, 429, 5xx) are retried with a bounded fibonacci backoff.
//
// The method sets required headers:
//   - User-Agent: mimics a browser to avoid API blocking
//   - Accept: requests JSON response format
func (c *FinanceClient) queryJSON(ctx context.Context, url string, out any) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("yahoo returned status %d", resp.StatusCode))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if err := json.Unmarshal(data, out); err != nil {
			return err
		}

		return nil
	})
}
