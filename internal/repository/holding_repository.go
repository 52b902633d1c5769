package repository

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// Holdings are keyed by their uppercase ticker symbol.
type HoldingRepository struct {
	q querier
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{q: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{q: tx}
}

const holdingColumns = `
	symbol, company_name, purchase_date, purchase_price, shares,
	current_price, eps_ttm, eps_cagr, intrinsic_value, alert_threshold, last_updated
`

// GetHoldings retrieves all holdings ordered by symbol.
// Returns an empty slice when the portfolio is empty.
func (r *HoldingRepository) GetHoldings() ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding ORDER BY symbol ASC`

	rows, err := r.q.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHoldingOnSymbol retrieves a single holding by symbol.
func (r *HoldingRepository) GetHoldingOnSymbol(symbol string) (model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE symbol = ?`

	row := r.q.QueryRow(query, symbol)
	h, err := scanHoldingRow(row)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query holding: %w", err)
	}

	return h, nil
}

// Upsert inserts a holding or replaces the existing row for the same
// symbol. Adding a symbol that already exists carries update semantics:
// every column is overwritten with the new values.
func (r *HoldingRepository) Upsert(h model.Holding) error {
	query := `
		INSERT OR REPLACE INTO holding (` + holdingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q.Exec(
		query,
		h.Symbol,
		h.CompanyName,
		h.PurchaseDate.Format("2006-01-02"),
		h.PurchasePrice,
		h.Shares,
		floatArg(h.CurrentPrice),
		floatArg(h.EpsTTM),
		floatArg(h.EpsCAGR),
		floatArg(h.IntrinsicValue),
		floatArg(h.AlertThreshold),
		timeArg(h.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding %s: %w", h.Symbol, err)
	}

	return nil
}

// UpdateMarketData overwrites the fetched columns of one holding after
// a successful refresh. User-entered columns (purchase data, shares,
// alert threshold) are left untouched.
func (r *HoldingRepository) UpdateMarketData(
	symbol string,
	companyName string,
	currentPrice float64,
	epsTTM, epsCAGR, intrinsicValue *float64,
	lastUpdated time.Time,
) error {
	query := `
		UPDATE holding
		SET company_name = ?, current_price = ?, eps_ttm = ?, eps_cagr = ?,
		    intrinsic_value = ?, last_updated = ?
		WHERE symbol = ?
	`

	result, err := r.q.Exec(
		query,
		companyName,
		currentPrice,
		floatArg(epsTTM),
		floatArg(epsCAGR),
		floatArg(intrinsicValue),
		lastUpdated.UTC().Format(time.RFC3339),
		symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding %s: %w", symbol, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of holding %s: %w", symbol, err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// Delete removes one holding by symbol.
func (r *HoldingRepository) Delete(symbol string) error {
	result, err := r.q.Exec(`DELETE FROM holding WHERE symbol = ?`, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete holding %s: %w", symbol, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of holding %s: %w", symbol, err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// DeleteAll empties the holding table. Only the explicit full-clear
// operation calls this, together with HistoryRepository.DeleteAll in
// one transaction.
func (r *HoldingRepository) DeleteAll() error {
	if _, err := r.q.Exec(`DELETE FROM holding`); err != nil {
		return fmt.Errorf("failed to clear holding table: %w", err)
	}
	return nil
}

// scanner matches *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHolding(rows *sql.Rows) (model.Holding, error) {
	h, err := scanHoldingRow(rows)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holding table results: %w", err)
	}
	return h, nil
}

func scanHoldingRow(row scanner) (model.Holding, error) {
	var h model.Holding
	var companyName sql.NullString
	var purchaseDate string
	var currentPrice, epsTTM, epsCAGR, intrinsicValue, alertThreshold sql.NullFloat64
	var lastUpdated sql.NullString

	err := row.Scan(
		&h.Symbol,
		&companyName,
		&purchaseDate,
		&h.PurchasePrice,
		&h.Shares,
		&currentPrice,
		&epsTTM,
		&epsCAGR,
		&intrinsicValue,
		&alertThreshold,
		&lastUpdated,
	)
	if err != nil {
		return model.Holding{}, err
	}

	h.CompanyName = companyName.String
	h.CurrentPrice = nullFloat(currentPrice)
	h.EpsTTM = nullFloat(epsTTM)
	h.EpsCAGR = nullFloat(epsCAGR)
	h.IntrinsicValue = nullFloat(intrinsicValue)
	h.AlertThreshold = nullFloat(alertThreshold)

	h.PurchaseDate, err = ParseTime(purchaseDate)
	if err != nil {
		return model.Holding{}, err
	}

	if lastUpdated.Valid {
		parsed, err := ParseTime(lastUpdated.String)
		if err != nil {
			return model.Holding{}, err
		}
		h.LastUpdated = &parsed
	}

	return h, nil
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
