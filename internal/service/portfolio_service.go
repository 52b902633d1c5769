package service

import (
	"math"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
)

// alertBand is the fractional distance from the alert threshold within
// which an alert triggers, boundary inclusive.
const alertBand = 0.05

// PortfolioService aggregates stored holdings into per-holding metric
// rows and portfolio-level summary statistics. It performs no fetching;
// rows reflect whatever the last successful refresh stored.
type PortfolioService struct {
	holdings *repository.HoldingRepository
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(holdings *repository.HoldingRepository) *PortfolioService {
	return &PortfolioService{holdings: holdings}
}

// BuildRow computes the metrics row for one holding. The second return
// value is false when the holding has no current price yet; such a
// holding stays stored but is excluded from rows and summaries.
//
// A missing intrinsic value contributes a margin of safety of exactly
// zero, and that zero participates in the portfolio average.
func BuildRow(h model.Holding) (model.HoldingMetrics, bool) {
	if h.CurrentPrice == nil {
		return model.HoldingMetrics{}, false
	}

	price := *h.CurrentPrice
	row := model.HoldingMetrics{
		Symbol:         h.Symbol,
		CompanyName:    h.CompanyName,
		Shares:         h.Shares,
		PurchasePrice:  h.PurchasePrice,
		CurrentPrice:   price,
		Value:          price * float64(h.Shares),
		GainLoss:       (price - h.PurchasePrice) * float64(h.Shares),
		EpsTTM:         h.EpsTTM,
		EpsCAGR:        h.EpsCAGR,
		IntrinsicValue: h.IntrinsicValue,
		LastUpdated:    h.LastUpdated,
	}

	if h.IntrinsicValue != nil && *h.IntrinsicValue > 0 {
		row.MarginOfSafety = (*h.IntrinsicValue - price) / *h.IntrinsicValue * 100
	}

	if h.AlertThreshold != nil {
		row.AlertTriggered = math.Abs(price-*h.AlertThreshold) <= alertBand*(*h.AlertThreshold)
	}

	return row, true
}

// Summarize folds metric rows into portfolio-level summary statistics.
func Summarize(rows []model.HoldingMetrics) model.PortfolioSummary {
	summary := model.PortfolioSummary{Count: len(rows)}

	for _, row := range rows {
		summary.TotalValue += row.Value
		summary.TotalGainLoss += row.GainLoss
		summary.AvgMarginOfSafety += row.MarginOfSafety
	}

	if summary.Count > 0 {
		summary.AvgMarginOfSafety /= float64(summary.Count)
	}

	return summary
}

// Rows returns the metric rows for all holdings that have a current
// price, in symbol order.
func (s *PortfolioService) Rows() ([]model.HoldingMetrics, error) {
	holdings, err := s.holdings.GetHoldings()
	if err != nil {
		return nil, err
	}

	rows := []model.HoldingMetrics{}
	for _, h := range holdings {
		if row, ok := BuildRow(h); ok {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// Summary returns the portfolio-level summary over all included holdings.
func (s *PortfolioService) Summary() (model.PortfolioSummary, error) {
	rows, err := s.Rows()
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	return Summarize(rows), nil
}
