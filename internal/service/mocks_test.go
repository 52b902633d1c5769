package service

import (
	"context"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/alphavantage"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/fred"
)

// mockQuotes implements QuoteFetcher with canned per-symbol data.
type mockQuotes struct {
	prices      map[string]float64
	names       map[string]string
	errors      map[string]error
	trailingEPS map[string]*float64
	calls       []string
}

func newMockQuotes() *mockQuotes {
	return &mockQuotes{
		prices:      map[string]float64{},
		names:       map[string]string{},
		errors:      map[string]error{},
		trailingEPS: map[string]*float64{},
	}
}

func (m *mockQuotes) withQuote(symbol string, price float64) *mockQuotes {
	m.prices[symbol] = price
	m.names[symbol] = symbol + " Inc."
	return m
}

func (m *mockQuotes) withError(symbol string, err error) *mockQuotes {
	m.errors[symbol] = err
	return m
}

func (m *mockQuotes) withTrailingEPS(symbol string, eps float64) *mockQuotes {
	m.trailingEPS[symbol] = &eps
	return m
}

func (m *mockQuotes) FetchQuote(_ context.Context, symbol string) (Quote, error) {
	m.calls = append(m.calls, symbol)
	if err, ok := m.errors[symbol]; ok {
		return Quote{}, err
	}
	return Quote{Symbol: symbol, Price: m.prices[symbol], Name: m.names[symbol]}, nil
}

func (m *mockQuotes) FetchTrailingEPS(_ context.Context, symbol string) *float64 {
	return m.trailingEPS[symbol]
}

// mockFundamentals implements FundamentalsFetcher with canned data.
type mockFundamentals struct {
	epsTTM map[string]*float64
	annual map[string][]float64
}

func newMockFundamentals() *mockFundamentals {
	return &mockFundamentals{
		epsTTM: map[string]*float64{},
		annual: map[string][]float64{},
	}
}

func (m *mockFundamentals) withEPS(symbol string, epsTTM float64, annual ...float64) *mockFundamentals {
	m.epsTTM[symbol] = &epsTTM
	m.annual[symbol] = annual
	return m
}

func (m *mockFundamentals) FetchEpsTTM(_ context.Context, symbol string) *float64 {
	return m.epsTTM[symbol]
}

func (m *mockFundamentals) FetchAnnualEPS(_ context.Context, symbol string, _ *float64) []float64 {
	return m.annual[symbol]
}

// mockYields implements YieldFetcher with a fixed yield.
type mockYields struct {
	yield float64
}

func (m *mockYields) FetchReferenceYield(_ context.Context) float64 {
	return m.yield
}

// countingPacer implements Pacer and records the call pattern instead of
// sleeping. It mirrors the production counter semantics so refresh tests
// can assert where pauses would land.
type countingPacer struct {
	every  int
	count  int
	waits  int
	pauses []int
	resets int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := p.count
	p.count++
	p.waits++
	if p.every > 0 && n > 0 && n%p.every == 0 {
		p.pauses = append(p.pauses, n)
	}
	return nil
}

func (p *countingPacer) Reset() {
	p.count = 0
	p.resets++
}

// mockOverviewClient implements alphavantage.Client for fundamentals
// service tests.
type mockOverviewClient struct {
	overview    alphavantage.Overview
	overviewErr error
	annual      []alphavantage.AnnualEPS
	annualErr   error
}

func (m *mockOverviewClient) FetchOverview(_ context.Context, _ string) (alphavantage.Overview, error) {
	if m.overviewErr != nil {
		return alphavantage.Overview{}, m.overviewErr
	}
	return m.overview, nil
}

func (m *mockOverviewClient) FetchAnnualEPS(_ context.Context, _ string, _ int) ([]alphavantage.AnnualEPS, error) {
	if m.annualErr != nil {
		return nil, m.annualErr
	}
	return m.annual, nil
}

// mockFredClient implements fred.Client for yield service tests.
type mockFredClient struct {
	percent float64
	err     error
	series  string
}

var _ fred.Client = (*mockFredClient)(nil)

func (m *mockFredClient) LatestObservation(_ context.Context, seriesID string) (float64, error) {
	m.series = seriesID
	if m.err != nil {
		return 0, m.err
	}
	return m.percent, nil
}
