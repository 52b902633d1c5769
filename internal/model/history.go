package model

import "time"

// HistoryPoint is one append-only observation of total portfolio value.
// The log is never keyed by date: two refreshes on the same day produce
// two points. Points are never mutated or individually deleted.
type HistoryPoint struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	TotalValue float64   `json:"totalValue"`
	CreatedAt  time.Time `json:"createdAt"`
}
