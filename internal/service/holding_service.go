package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/validation"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/valuation"
)

// HoldingService manages the holding lifecycle: add (fetch then
// persist), read, remove, and the explicit full clear.
type HoldingService struct {
	db           *sql.DB
	holdings     *repository.HoldingRepository
	history      *repository.HistoryRepository
	quotes       QuoteFetcher
	fundamentals FundamentalsFetcher
	yields       YieldFetcher
	log          zerolog.Logger
}

// NewHoldingService creates a new HoldingService.
func NewHoldingService(
	db *sql.DB,
	holdings *repository.HoldingRepository,
	history *repository.HistoryRepository,
	quotes QuoteFetcher,
	fundamentals FundamentalsFetcher,
	yields YieldFetcher,
	log zerolog.Logger,
) *HoldingService {
	return &HoldingService{
		db:           db,
		holdings:     holdings,
		history:      history,
		quotes:       quotes,
		fundamentals: fundamentals,
		yields:       yields,
		log:          log.With().Str("component", "holdings").Logger(),
	}
}

// AddHolding fetches current data for a validated new holding and
// persists it. Adding a symbol that already exists updates the stored
// row in place. A fetch failure aborts just this add; nothing is
// persisted.
func (s *HoldingService) AddHolding(ctx context.Context, input validation.NewHolding) (model.Holding, error) {
	quote, err := s.quotes.FetchQuote(ctx, input.Symbol)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to fetch data for %s: %w", input.Symbol, err)
	}

	epsTTM := s.fundamentals.FetchEpsTTM(ctx, input.Symbol)
	annual := s.fundamentals.FetchAnnualEPS(ctx, input.Symbol, epsTTM)
	referenceYield := s.yields.FetchReferenceYield(ctx)

	epsCAGR := valuation.AnnualEpsCAGR(annual)
	now := time.Now().UTC()

	holding := model.Holding{
		Symbol:         input.Symbol,
		CompanyName:    quote.Name,
		PurchaseDate:   input.PurchaseDate,
		PurchasePrice:  input.PurchasePrice,
		Shares:         input.Shares,
		CurrentPrice:   &quote.Price,
		EpsTTM:         epsTTM,
		EpsCAGR:        &epsCAGR,
		IntrinsicValue: valuation.IntrinsicValue(epsTTM, &epsCAGR, referenceYield),
		AlertThreshold: input.AlertThreshold,
		LastUpdated:    &now,
	}

	if err := s.holdings.Upsert(holding); err != nil {
		return model.Holding{}, err
	}

	s.log.Info().
		Str("symbol", holding.Symbol).
		Int64("shares", holding.Shares).
		Float64("price", quote.Price).
		Msg("holding added")

	return holding, nil
}

// GetHolding returns one stored holding by symbol.
func (s *HoldingService) GetHolding(symbol string) (model.Holding, error) {
	return s.holdings.GetHoldingOnSymbol(symbol)
}

// GetHoldings returns all stored holdings, including ones never
// successfully refreshed.
func (s *HoldingService) GetHoldings() ([]model.Holding, error) {
	return s.holdings.GetHoldings()
}

// RemoveHolding deletes one holding by symbol. History points are kept;
// they record past portfolio totals, not per-holding state.
func (s *HoldingService) RemoveHolding(symbol string) error {
	if err := s.holdings.Delete(symbol); err != nil {
		return err
	}
	s.log.Info().Str("symbol", symbol).Msg("holding removed")
	return nil
}

// ClearAll empties the holding table and the history log together in
// one transaction. This is the only operation that deletes history.
func (s *HoldingService) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.history.WithTx(tx).DeleteAll(); err != nil {
		return err
	}
	if err := s.holdings.WithTx(tx).DeleteAll(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear transaction: %w", err)
	}

	s.log.Info().Msg("portfolio cleared")
	return nil
}
