package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/fred"
)

// YieldFetcher is the yield-provider interface consumed by the holding
// and refresh services.
type YieldFetcher interface {
	FetchReferenceYield(ctx context.Context) float64
}

// YieldService fetches the long-term bond yield used as the valuation
// discount rate. It never fails: any provider problem falls back to the
// configured default yield.
type YieldService struct {
	client       fred.Client
	seriesID     string
	defaultYield float64
	log          zerolog.Logger
}

// NewYieldService creates a new YieldService for the given FRED series.
// defaultYield is a fraction (0.045 for 4.5%).
func NewYieldService(client fred.Client, seriesID string, defaultYield float64, log zerolog.Logger) *YieldService {
	return &YieldService{
		client:       client,
		seriesID:     seriesID,
		defaultYield: defaultYield,
		log:          log.With().Str("component", "yields").Logger(),
	}
}

// FetchReferenceYield returns the most recent observation of the
// configured yield series as a fraction. Network failures, missing data
// and non-numeric values all resolve to the default yield; the caller
// never sees an error.
func (s *YieldService) FetchReferenceYield(ctx context.Context) float64 {
	percent, err := s.client.LatestObservation(ctx, s.seriesID)
	if err != nil {
		s.log.Debug().Err(err).Str("series", s.seriesID).Msg("reference yield unavailable, using default")
		return s.defaultYield
	}
	return percent / 100
}
