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
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Security table
		CREATE TABLE security (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			"key" VARCHAR(100) NOT NULL UNIQUE,
			symbol VARCHAR(20),
			exchange VARCHAR(50),
			currency VARCHAR(3) NOT NULL DEFAULT 'INR'
		);

		-- Security price table
		CREATE TABLE security_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			security_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			close FLOAT NOT NULL,
			FOREIGN KEY(security_id) REFERENCES security(id) ON DELETE CASCADE,
			CONSTRAINT unique_security_price UNIQUE (security_id, date)
		);

		-- Corporate action table
		CREATE TABLE corporate_action (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			security_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			factor FLOAT NOT NULL,
			description TEXT NOT NULL,
			FOREIGN KEY(security_id) REFERENCES security(id) ON DELETE CASCADE
		);

		-- System setting table
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value VARCHAR(1000) NOT NULL,
			updated_at DATETIME
		);

		-- Indexes for performance
		CREATE INDEX ix_security_price_security_id ON security_price(security_id);
		CREATE INDEX ix_security_price_date ON security_price(date);
		CREATE INDEX ix_security_price_security_id_date ON security_price(security_id, date);
		CREATE INDEX ix_corporate_action_security_id ON corporate_action(security_id);
		CREATE INDEX ix_corporate_action_date ON corporate_action(date);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"security_price",
		"corporate_action",
		"security",
		"system_setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
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

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
