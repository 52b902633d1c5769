package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/yahoo"
)

// Quote is the result of one successful quote fetch.
type Quote struct {
	Symbol string
	Price  float64
	Name   string
}

// QuoteFetcher is the quote-provider interface consumed by the holding
// and refresh services.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (Quote, error)
	FetchTrailingEPS(ctx context.Context, symbol string) *float64
}

// chartWindows are the lookback windows tried in order: one month, one
// week, one day. The first window with at least one observation wins.
var chartWindows = []string{"1mo", "5d", "1d"}

// QuoteService fetches current prices and display names from Yahoo
// Finance, falling back across shrinking historical windows.
type QuoteService struct {
	client yahoo.Client
	log    zerolog.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(client yahoo.Client, log zerolog.Logger) *QuoteService {
	return &QuoteService{
		client: client,
		log:    log.With().Str("component", "quotes").Logger(),
	}
}

// FetchQuote returns the close of the most recent observation in the
// first non-empty lookback window, plus the provider's display name
// (falling back to the symbol itself).
//
// Transport and parsing failures are converted to ErrFetchFailed; a
// provider that answers every window with zero observations yields
// ErrDataUnavailable. Neither aborts anything beyond this symbol.
func (s *QuoteService) FetchQuote(ctx context.Context, symbol string) (Quote, error) {
	var lastFetchErr error

	for _, window := range chartWindows {
		resp, err := s.client.QueryChartRange(ctx, symbol, window)
		if err != nil {
			lastFetchErr = err
			s.log.Debug().Err(err).Str("symbol", symbol).Str("window", window).Msg("chart window failed")
			continue
		}

		// A window that parses to nothing is treated as empty, not as a
		// fetch failure; only transport problems make the fetch failed.
		chart, err := s.client.ParseChart(resp)
		if err != nil {
			s.log.Debug().Err(err).Str("symbol", symbol).Str("window", window).Msg("chart window empty")
			continue
		}

		latest, ok := chart.LatestClose()
		if !ok {
			continue
		}

		return Quote{
			Symbol: symbol,
			Price:  latest.PriceClose,
			Name:   chart.DisplayName(),
		}, nil
	}

	if lastFetchErr != nil {
		return Quote{}, fmt.Errorf("%w: %s: %v", apperrors.ErrFetchFailed, symbol, lastFetchErr)
	}
	return Quote{}, fmt.Errorf("%w: %s", apperrors.ErrDataUnavailable, symbol)
}

// FetchTrailingEPS returns the trailing twelve month EPS surfaced by
// the quote endpoint, or nil when unavailable. Used as the fallback
// when the fundamentals source has no EPS field; a nil result is not an
// error condition.
func (s *QuoteService) FetchTrailingEPS(ctx context.Context, symbol string) *float64 {
	summary, err := s.client.QueryQuoteSummary(ctx, symbol)
	if err != nil {
		s.log.Debug().Err(err).Str("symbol", symbol).Msg("quote summary unavailable")
		return nil
	}
	return summary.EpsTrailingTwelveMonths
}
