package testutil

import (
	"context"
	"time"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
// Responses can be configured per chart window, so window-fallback
// behavior is testable.
type MockYahooClient struct {
	// ChartResponses maps a chart range ("1mo", "5d", "1d") to the
	// response it returns. Ranges without an entry fall back to
	// DefaultResponse.
	ChartResponses map[string]yahoo.Response
	// ChartErrors maps a chart range to an error returned instead of data.
	ChartErrors map[string]error
	// DefaultResponse is returned for ranges without a configured entry.
	DefaultResponse yahoo.Response
	// DefaultError, when set, is returned for every unconfigured range.
	DefaultError error
	// Summary is the quote summary returned by QueryQuoteSummary.
	Summary yahoo.QuoteSummary
	// SummaryError is the error returned by QueryQuoteSummary.
	SummaryError error
	// ChartCalls records the ranges queried, in order.
	ChartCalls []string
}

// NewMockYahooClient creates a mock Yahoo client that answers every
// chart window with 5 days of test prices ending at 150.00.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		ChartResponses:  map[string]yahoo.Response{},
		ChartErrors:     map[string]error{},
		DefaultResponse: CreateChartResponse("TEST", "Test Corporation", 146, 147, 148, 149, 150),
	}
}

// QueryChartRange returns the configured response or error for the
// requested range and records the call.
func (m *MockYahooClient) QueryChartRange(_ context.Context, _ string, chartRange string) (yahoo.Response, error) {
	m.ChartCalls = append(m.ChartCalls, chartRange)

	if err, ok := m.ChartErrors[chartRange]; ok {
		return yahoo.Response{}, err
	}
	if resp, ok := m.ChartResponses[chartRange]; ok {
		return resp, nil
	}
	if m.DefaultError != nil {
		return yahoo.Response{}, m.DefaultError
	}
	return m.DefaultResponse, nil
}

// QueryQuoteSummary returns the configured quote summary.
func (m *MockYahooClient) QueryQuoteSummary(_ context.Context, _ string) (yahoo.QuoteSummary, error) {
	if m.SummaryError != nil {
		return yahoo.QuoteSummary{}, m.SummaryError
	}
	return m.Summary, nil
}

// ParseChart delegates to the real implementation since it is pure logic
// with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	return yahoo.NewFinanceClient().ParseChart(yahooResult)
}

// WithChartResponse configures the response for one chart range.
func (m *MockYahooClient) WithChartResponse(chartRange string, resp yahoo.Response) *MockYahooClient {
	m.ChartResponses[chartRange] = resp
	return m
}

// WithChartError configures an error for one chart range.
func (m *MockYahooClient) WithChartError(chartRange string, err error) *MockYahooClient {
	m.ChartErrors[chartRange] = err
	return m
}

// WithError configures every chart range to fail with err.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.DefaultError = err
	return m
}

// WithTrailingEPS configures the quote summary's trailing EPS.
func (m *MockYahooClient) WithTrailingEPS(eps float64) *MockYahooClient {
	m.Summary.EpsTrailingTwelveMonths = &eps
	return m
}

// CreateChartResponse builds a chart response carrying one close per
// day, ending yesterday. The last close is the "current price" a quote
// fetch resolves to.
func CreateChartResponse(symbol, longName string, closes ...float64) yahoo.Response {
	end := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	timestamps := make([]int64, len(closes))
	closePtrs := make([]*float64, len(closes))
	volumes := make([]*int64, len(closes))
	for i := range closes {
		day := end.AddDate(0, 0, i-len(closes)+1)
		timestamps[i] = day.Unix()
		value := closes[i]
		closePtrs[i] = &value
		volume := int64(1000)
		volumes[i] = &volume
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:   symbol,
						Currency: "USD",
						LongName: longName,
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{Close: closePtrs, Volume: volumes},
						},
					},
				},
			},
		},
	}
}

// CreateEmptyChartResponse builds a chart response with a result entry
// but zero observations, as Yahoo answers for a symbol with no trading
// days in the window.
func CreateEmptyChartResponse(symbol string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta:       yahoo.Meta{Symbol: symbol, Currency: "USD"},
					Timestamp:  []int64{},
					Indicators: yahoo.IndicatorsContainer{Quote: []yahoo.Quote{}},
				},
			},
		},
	}
}
