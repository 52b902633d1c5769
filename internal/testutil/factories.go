package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
)

// Float returns a pointer to the given float64. Shorthand for populating
// nullable holding columns in tests.
func Float(v float64) *float64 {
	return &v
}

// HoldingBuilder builds test holdings with sensible defaults. Use the
// With* methods to override individual fields, then Create to persist.
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a builder for a holding with default test data:
// 10 shares bought at 50.00 on 2024-01-02, no fetched data yet.
func NewHolding(symbol string) *HoldingBuilder {
	return &HoldingBuilder{
		holding: model.Holding{
			Symbol:        symbol,
			CompanyName:   symbol + " Inc.",
			PurchaseDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			PurchasePrice: 50.0,
			Shares:        10,
		},
	}
}

// WithShares sets the share count.
func (b *HoldingBuilder) WithShares(shares int64) *HoldingBuilder {
	b.holding.Shares = shares
	return b
}

// WithPurchasePrice sets the purchase price.
func (b *HoldingBuilder) WithPurchasePrice(price float64) *HoldingBuilder {
	b.holding.PurchasePrice = price
	return b
}

// WithCurrentPrice sets the current price and stamps last_updated, as a
// successful refresh would.
func (b *HoldingBuilder) WithCurrentPrice(price float64) *HoldingBuilder {
	b.holding.CurrentPrice = &price
	now := time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC)
	b.holding.LastUpdated = &now
	return b
}

// WithValuation sets the fetched valuation columns.
func (b *HoldingBuilder) WithValuation(epsTTM, epsCAGR, intrinsicValue float64) *HoldingBuilder {
	b.holding.EpsTTM = &epsTTM
	b.holding.EpsCAGR = &epsCAGR
	b.holding.IntrinsicValue = &intrinsicValue
	return b
}

// WithAlertThreshold sets the alert threshold price.
func (b *HoldingBuilder) WithAlertThreshold(threshold float64) *HoldingBuilder {
	b.holding.AlertThreshold = &threshold
	return b
}

// Build returns the holding without persisting it.
func (b *HoldingBuilder) Build() model.Holding {
	return b.holding
}

// Create persists the holding and returns it.
func (b *HoldingBuilder) Create(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	repo := repository.NewHoldingRepository(db)
	if err := repo.Upsert(b.holding); err != nil {
		t.Fatalf("Failed to create test holding %s: %v", b.holding.Symbol, err)
	}

	return b.holding
}

// CreateHistoryPoint persists one portfolio history point and returns it.
func CreateHistoryPoint(t *testing.T, db *sql.DB, date time.Time, totalValue float64) model.HistoryPoint {
	t.Helper()

	repo := repository.NewHistoryRepository(db)
	point, err := repo.Append(date, totalValue)
	if err != nil {
		t.Fatalf("Failed to create test history point: %v", err)
	}

	return point
}
