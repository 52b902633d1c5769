package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/valuation"
)

// RefreshState is the batch scheduler state.
type RefreshState string

const (
	StateIdle    RefreshState = "idle"
	StateRunning RefreshState = "running"
	StateFailed  RefreshState = "failed"
)

// RefreshStatus describes the scheduler state and the outcome of the
// most recent batch.
type RefreshStatus struct {
	State       RefreshState `json:"state"`
	LastRun     *time.Time   `json:"lastRun"`
	LastError   string       `json:"lastError,omitempty"`
	LastUpdated int          `json:"lastUpdated"`
	LastSkipped int          `json:"lastSkipped"`
}

// RefreshResult summarizes one completed batch.
type RefreshResult struct {
	Updated      int                 `json:"updated"`
	Skipped      int                 `json:"skipped"`
	TotalValue   float64             `json:"totalValue"`
	HistoryPoint *model.HistoryPoint `json:"historyPoint"`
}

// Pacer spaces the per-holding provider calls inside a batch.
type Pacer interface {
	Wait(ctx context.Context) error
	Reset()
}

// RefreshService drives a batch refresh over all holdings. Holdings are
// processed strictly sequentially; pacing blocks the whole batch. Only
// one batch may run at a time: a concurrent trigger is rejected with
// ErrRefreshInProgress rather than queued.
type RefreshService struct {
	db           *sql.DB
	holdings     *repository.HoldingRepository
	history      *repository.HistoryRepository
	quotes       QuoteFetcher
	fundamentals FundamentalsFetcher
	yields       YieldFetcher
	pacer        Pacer
	log          zerolog.Logger

	inFlight *semaphore.Weighted

	mu     sync.Mutex
	status RefreshStatus
}

// NewRefreshService creates a new RefreshService.
func NewRefreshService(
	db *sql.DB,
	holdings *repository.HoldingRepository,
	history *repository.HistoryRepository,
	quotes QuoteFetcher,
	fundamentals FundamentalsFetcher,
	yields YieldFetcher,
	pacer Pacer,
	log zerolog.Logger,
) *RefreshService {
	return &RefreshService{
		db:           db,
		holdings:     holdings,
		history:      history,
		quotes:       quotes,
		fundamentals: fundamentals,
		yields:       yields,
		pacer:        pacer,
		log:          log.With().Str("component", "refresh").Logger(),
		inFlight:     semaphore.NewWeighted(1),
		status:       RefreshStatus{State: StateIdle},
	}
}

// Status returns a copy of the current scheduler status.
func (s *RefreshService) Status() RefreshStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Refresh runs one batch over all holdings. Per-symbol fetch failures
// are logged and skipped; the batch itself only fails on storage errors
// or cancellation. On completion with at least one refreshed holding,
// exactly one history point is appended with the new total.
func (s *RefreshService) Refresh(ctx context.Context) (RefreshResult, error) {
	if !s.inFlight.TryAcquire(1) {
		return RefreshResult{}, apperrors.ErrRefreshInProgress
	}
	defer s.inFlight.Release(1)

	s.setState(StateRunning, "")
	s.log.Info().Msg("refresh batch started")

	result, err := s.runBatch(ctx)

	now := time.Now().UTC()
	s.mu.Lock()
	s.status.LastRun = &now
	s.status.LastUpdated = result.Updated
	s.status.LastSkipped = result.Skipped
	if err != nil {
		s.status.State = StateFailed
		s.status.LastError = err.Error()
	} else {
		s.status.State = StateIdle
		s.status.LastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("refresh batch failed")
		return result, err
	}

	s.log.Info().
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Float64("totalValue", result.TotalValue).
		Msg("refresh batch completed")

	return result, nil
}

// runBatch does the actual work inside one transaction, so a crash
// mid-batch cannot leave storage partially updated.
func (s *RefreshService) runBatch(ctx context.Context) (RefreshResult, error) {
	var result RefreshResult

	tx, err := s.db.Begin()
	if err != nil {
		return result, fmt.Errorf("failed to begin refresh transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	holdings := s.holdings.WithTx(tx)
	history := s.history.WithTx(tx)

	all, err := holdings.GetHoldings()
	if err != nil {
		return result, err
	}

	// The reference yield is refreshed once per batch; staleness within
	// a single batch is acceptable.
	referenceYield := s.yields.FetchReferenceYield(ctx)

	s.pacer.Reset()
	now := time.Now().UTC()

	for _, h := range all {
		// Cancellation is checked before each symbol so an aborted
		// batch stops before its next network call.
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.pacer.Wait(ctx); err != nil {
			return result, err
		}

		quote, err := s.quotes.FetchQuote(ctx, h.Symbol)
		if err != nil {
			// The symbol keeps its last-known stored values and is
			// excluded from this batch's totals.
			s.log.Warn().Err(err).Str("symbol", h.Symbol).Msg("refresh skipped symbol")
			result.Skipped++
			continue
		}

		epsTTM := s.fundamentals.FetchEpsTTM(ctx, h.Symbol)
		annual := s.fundamentals.FetchAnnualEPS(ctx, h.Symbol, epsTTM)
		epsCAGR := valuation.AnnualEpsCAGR(annual)
		intrinsic := valuation.IntrinsicValue(epsTTM, &epsCAGR, referenceYield)

		err = holdings.UpdateMarketData(h.Symbol, quote.Name, quote.Price, epsTTM, &epsCAGR, intrinsic, now)
		if err != nil {
			return result, err
		}

		result.Updated++
		result.TotalValue += quote.Price * float64(h.Shares)
		s.log.Debug().Str("symbol", h.Symbol).Float64("price", quote.Price).Msg("holding refreshed")
	}

	if result.Updated > 0 {
		point, err := history.Append(now, result.TotalValue)
		if err != nil {
			return result, err
		}
		result.HistoryPoint = &point
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit refresh transaction: %w", err)
	}

	return result, nil
}

func (s *RefreshService) setState(state RefreshState, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = state
	s.status.LastError = lastError
}
