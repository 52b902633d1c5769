package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// querier abstracts *sql.DB and *sql.Tx so repository methods can run
// standalone or inside a batch transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// nullFloat converts a nullable column value to a *float64.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// floatArg converts a *float64 to a driver argument, mapping nil to NULL.
func floatArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
