package handlers

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/alphavantage"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/fred"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/pacing"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/testutil"
)

// testServices bundles the full service graph the handlers are wired
// with in production, backed by an in-memory database and a mock quote
// provider. The fundamentals and yield clients carry no API key, so
// they resolve to "no data" without touching the network.
type testServices struct {
	db        *sql.DB
	yahoo     *testutil.MockYahooClient
	holding   *service.HoldingService
	portfolio *service.PortfolioService
	history   *service.HistoryService
	refresh   *service.RefreshService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db := testutil.SetupTestDB(t)
	holdings := repository.NewHoldingRepository(db)
	history := repository.NewHistoryRepository(db)

	noKey := func() string { return "" }
	yahooClient := testutil.NewMockYahooClient()
	quotes := service.NewQuoteService(yahooClient, zerolog.Nop())
	fundamentals := service.NewFundamentalsService(alphavantage.NewFundamentalsClient(noKey), quotes, zerolog.Nop())
	yields := service.NewYieldService(fred.NewYieldClient(noKey), "AAA", 0.045, zerolog.Nop())

	return &testServices{
		db:        db,
		yahoo:     yahooClient,
		holding:   service.NewHoldingService(db, holdings, history, quotes, fundamentals, yields, zerolog.Nop()),
		portfolio: service.NewPortfolioService(holdings),
		history:   service.NewHistoryService(history),
		refresh: service.NewRefreshService(
			db, holdings, history,
			quotes, fundamentals, yields,
			pacing.New(0, 0),
			zerolog.Nop(),
		),
	}
}
