package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/alphavantage"
)

// maxAnnualYears bounds how many fiscal years of EPS feed the growth
// calculation.
const maxAnnualYears = 5

// FundamentalsFetcher is the fundamentals-provider interface consumed
// by the holding and refresh services.
type FundamentalsFetcher interface {
	FetchEpsTTM(ctx context.Context, symbol string) *float64
	FetchAnnualEPS(ctx context.Context, symbol string, epsTTM *float64) []float64
}

// FundamentalsService fetches trailing and annual EPS from the
// secondary source, falling back to the quote provider's trailing EPS
// when the secondary source has none.
type FundamentalsService struct {
	client alphavantage.Client
	quotes QuoteFetcher
	log    zerolog.Logger
}

// NewFundamentalsService creates a new FundamentalsService.
func NewFundamentalsService(client alphavantage.Client, quotes QuoteFetcher, log zerolog.Logger) *FundamentalsService {
	return &FundamentalsService{
		client: client,
		quotes: quotes,
		log:    log.With().Str("component", "fundamentals").Logger(),
	}
}

// FetchEpsTTM returns the trailing twelve month EPS for a symbol, or
// nil when neither source has one. A nil result is a legitimate
// "no data" outcome, never an error: downstream valuation simply skips
// the intrinsic value.
//
// Strategy order: Alpha Vantage overview EPS, then the Yahoo quote
// summary's trailing EPS.
func (s *FundamentalsService) FetchEpsTTM(ctx context.Context, symbol string) *float64 {
	overview, err := s.client.FetchOverview(ctx, symbol)
	if err != nil {
		s.log.Debug().Err(err).Str("symbol", symbol).Msg("overview unavailable")
	} else if overview.EPS != nil {
		return overview.EPS
	}

	return s.quotes.FetchTrailingEPS(ctx, symbol)
}

// FetchAnnualEPS returns up to five fiscal years of reported EPS,
// oldest to newest. When the secondary source has no usable years, it
// falls back to a degenerate series of five repetitions of the current
// trailing EPS, which yields a flat growth computation downstream
// rather than failing the whole fetch.
func (s *FundamentalsService) FetchAnnualEPS(ctx context.Context, symbol string, epsTTM *float64) []float64 {
	annual, err := s.client.FetchAnnualEPS(ctx, symbol, maxAnnualYears)
	if err != nil {
		s.log.Debug().Err(err).Str("symbol", symbol).Msg("annual earnings unavailable")
	}

	if len(annual) > 0 {
		values := make([]float64, len(annual))
		for i, entry := range annual {
			values[i] = entry.EPS
		}
		return values
	}

	if epsTTM == nil {
		return nil
	}

	flat := make([]float64, maxAnnualYears)
	for i := range flat {
		flat[i] = *epsTTM
	}
	return flat
}
