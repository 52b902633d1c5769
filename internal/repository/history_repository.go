package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
)

// HistoryRepository provides data access methods for the
// portfolio_history table, an append-only log of total portfolio value.
type HistoryRepository struct {
	q querier
}

// NewHistoryRepository creates a new HistoryRepository with the provided database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{q: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *HistoryRepository) WithTx(tx *sql.Tx) *HistoryRepository {
	return &HistoryRepository{q: tx}
}

// Append unconditionally inserts one observation. The log is not keyed
// by date: appending twice on the same day produces two rows.
func (r *HistoryRepository) Append(date time.Time, totalValue float64) (model.HistoryPoint, error) {
	point := model.HistoryPoint{
		ID:         uuid.NewString(),
		Date:       date.UTC().Truncate(24 * time.Hour),
		TotalValue: totalValue,
		CreatedAt:  time.Now().UTC(),
	}

	query := `
		INSERT INTO portfolio_history (id, date, total_value, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.q.Exec(
		query,
		point.ID,
		point.Date.Format("2006-01-02"),
		point.TotalValue,
		point.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.HistoryPoint{}, fmt.Errorf("failed to append history point: %w", err)
	}

	return point, nil
}

// GetSeries retrieves the full series ordered by date ascending.
// Insertion order breaks ties between points on the same date.
func (r *HistoryRepository) GetSeries() ([]model.HistoryPoint, error) {
	query := `
		SELECT id, date, total_value, created_at
		FROM portfolio_history
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.q.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_history table: %w", err)
	}
	defer rows.Close()

	series := []model.HistoryPoint{}

	for rows.Next() {
		var point model.HistoryPoint
		var dateStr, createdAtStr string

		err := rows.Scan(&point.ID, &dateStr, &point.TotalValue, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_history results: %w", err)
		}

		point.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		point.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		series = append(series, point)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_history table: %w", err)
	}

	return series, nil
}

// DeleteAll empties the history log. Only the explicit full-clear
// operation calls this; individual points are never deleted.
func (r *HistoryRepository) DeleteAll() error {
	if _, err := r.q.Exec(`DELETE FROM portfolio_history`); err != nil {
		return fmt.Errorf("failed to clear portfolio_history table: %w", err)
	}
	return nil
}
