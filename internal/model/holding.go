package model

import "time"

// Holding represents one owned position, keyed by its ticker symbol.
// Pointer fields are nullable: they stay nil until the first successful
// fetch populates them, and keep their last-known value when a refresh
// skips the symbol.
type Holding struct {
	Symbol         string     `json:"symbol"`
	CompanyName    string     `json:"companyName"`
	PurchaseDate   time.Time  `json:"purchaseDate"`
	PurchasePrice  float64    `json:"purchasePrice"`
	Shares         int64      `json:"shares"`
	CurrentPrice   *float64   `json:"currentPrice"`
	EpsTTM         *float64   `json:"epsTtm"`
	EpsCAGR        *float64   `json:"epsCagr"`
	IntrinsicValue *float64   `json:"intrinsicValue"`
	AlertThreshold *float64   `json:"alertThreshold"`
	LastUpdated    *time.Time `json:"lastUpdated"`
}

// HoldingMetrics represents the computed per-holding row consumed by the
// UI and export layers. Monetary values are raw, not formatted.
type HoldingMetrics struct {
	Symbol         string     `json:"symbol"`
	CompanyName    string     `json:"companyName"`
	Shares         int64      `json:"shares"`
	PurchasePrice  float64    `json:"purchasePrice"`
	CurrentPrice   float64    `json:"currentPrice"`
	Value          float64    `json:"value"`          // currentPrice * shares
	GainLoss       float64    `json:"gainLoss"`       // (currentPrice - purchasePrice) * shares
	EpsTTM         *float64   `json:"epsTtm"`
	EpsCAGR        *float64   `json:"epsCagr"`
	IntrinsicValue *float64   `json:"intrinsicValue"`
	MarginOfSafety float64    `json:"marginOfSafety"` // percent; 0 when intrinsic value is unknown
	AlertTriggered bool       `json:"alertTriggered"`
	LastUpdated    *time.Time `json:"lastUpdated"`
}

// PortfolioSummary aggregates the included holdings of the portfolio.
// A holding is included only when it has a current price; a missing
// purchase price counts as zero cost rather than excluding the holding.
type PortfolioSummary struct {
	Count             int     `json:"count"`
	TotalValue        float64 `json:"totalValue"`
	TotalGainLoss     float64 `json:"totalGainLoss"`
	AvgMarginOfSafety float64 `json:"avgMarginOfSafety"`
}
