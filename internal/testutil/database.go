package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the migrations in internal/database.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Holding table
		CREATE TABLE holding (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			company_name VARCHAR(255),
			purchase_date DATE NOT NULL,
			purchase_price FLOAT NOT NULL DEFAULT 0,
			shares INTEGER NOT NULL DEFAULT 0,
			current_price FLOAT,
			eps_ttm FLOAT,
			eps_cagr FLOAT,
			intrinsic_value FLOAT,
			alert_threshold FLOAT,
			last_updated DATETIME
		);

		-- Portfolio history table (append-only log)
		CREATE TABLE portfolio_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			total_value FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);
		CREATE INDEX ix_portfolio_history_date ON portfolio_history(date);

		-- System setting table
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value VARCHAR(500) NOT NULL,
			updated_at DATETIME
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}
