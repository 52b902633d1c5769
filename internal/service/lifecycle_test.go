package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/testutil"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/validation"
)

// Exercises the add-then-refresh lifecycle across the services the way
// the HTTP layer drives them.
func TestPortfolioLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)

	holdings := repository.NewHoldingRepository(db)
	history := repository.NewHistoryRepository(db)

	quotes := newMockQuotes().withQuote("AAA", 60)
	fundamentals := newMockFundamentals()
	yields := &mockYields{yield: 0.045}

	holdingSvc := NewHoldingService(db, holdings, history, quotes, fundamentals, yields, zerolog.Nop())
	portfolioSvc := NewPortfolioService(holdings)
	historySvc := NewHistoryService(history)
	refreshSvc := NewRefreshService(db, holdings, history, quotes, fundamentals, yields, &countingPacer{every: 5}, zerolog.Nop())

	// Add 10 shares of AAA bought at 50; the quote comes back at 60.
	_, err := holdingSvc.AddHolding(ctx, validation.NewHolding{
		Symbol:        "AAA",
		Shares:        10,
		PurchaseDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		PurchasePrice: 50,
	})
	require.NoError(t, err)

	summary, err := portfolioSvc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 600.0, summary.TotalValue, 1e-9)
	assert.InDelta(t, 100.0, summary.TotalGainLoss, 1e-9)

	// The price moves to 55 and a refresh runs.
	quotes.withQuote("AAA", 55)
	result, err := refreshSvc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	summary, err = portfolioSvc.Summary()
	require.NoError(t, err)
	assert.InDelta(t, 550.0, summary.TotalValue, 1e-9)
	assert.InDelta(t, 50.0, summary.TotalGainLoss, 1e-9)

	series, err := historySvc.Series()
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.InDelta(t, 550.0, series[0].TotalValue, 1e-9)

	// Clearing the portfolio empties holdings and history together.
	require.NoError(t, holdingSvc.ClearAll())

	summary, err = portfolioSvc.Summary()
	require.NoError(t, err)
	assert.Zero(t, summary.Count)

	_, err = historySvc.Series()
	require.NoError(t, err)
	assert.Zero(t, testutil.CountRows(t, db, "portfolio_history"))
}
