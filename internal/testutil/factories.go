package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
)

// SecurityBuilder provides a fluent interface for creating test securities.
//
// Example usage:
//
//	// Simple creation with defaults
//	security := testutil.NewSecurity().Build(t, db)
//
//	// Customized security
//	security := testutil.NewSecurity().
//	    WithName("Tata Motors").
//	    WithKey("tata_motors").
//	    WithSymbol("TATAMOTORS.NS").
//	    Build(t, db)
type SecurityBuilder struct {
	ID       string
	Name     string
	Key      string
	Symbol   string
	Exchange string
	Currency string
}

// NewSecurity creates a SecurityBuilder with sensible defaults.
func NewSecurity() *SecurityBuilder {
	return &SecurityBuilder{
		ID:       MakeID(),
		Name:     MakeSecurityName("Test Security"),
		Key:      MakeKey("test_security"),
		Currency: "INR",
	}
}

// WithID sets a custom ID.
func (b *SecurityBuilder) WithID(id string) *SecurityBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *SecurityBuilder) WithName(name string) *SecurityBuilder {
	b.Name = name
	return b
}

// WithKey sets a custom key.
func (b *SecurityBuilder) WithKey(key string) *SecurityBuilder {
	b.Key = key
	return b
}

// WithSymbol sets a ticker symbol.
func (b *SecurityBuilder) WithSymbol(symbol string) *SecurityBuilder {
	b.Symbol = symbol
	return b
}

// WithExchange sets an exchange name.
func (b *SecurityBuilder) WithExchange(exchange string) *SecurityBuilder {
	b.Exchange = exchange
	return b
}

// WithCurrency sets a currency code.
func (b *SecurityBuilder) WithCurrency(currency string) *SecurityBuilder {
	b.Currency = currency
	return b
}

// Build creates the security in the database and returns it.
func (b *SecurityBuilder) Build(t *testing.T, db *sql.DB) model.Security {
	t.Helper()

	query := `
		INSERT INTO security (id, name, "key", symbol, exchange, currency)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Key, b.Symbol, b.Exchange, b.Currency)
	if err != nil {
		t.Fatalf("Failed to create test security: %v", err)
	}

	return model.Security{
		ID:       b.ID,
		Name:     b.Name,
		Key:      b.Key,
		Symbol:   b.Symbol,
		Exchange: b.Exchange,
		Currency: b.Currency,
	}
}

// Convenience functions

// CreateSecurity creates a security with the given name and default values.
func CreateSecurity(t *testing.T, db *sql.DB, name string) model.Security {
	t.Helper()
	return NewSecurity().WithName(name).Build(t, db)
}

// InsertPrice stores a single closing price for a security.
//
// Example usage:
//
//	testutil.InsertPrice(t, db, security.ID, testutil.Date(2020, 1, 1), 100)
func InsertPrice(t *testing.T, db *sql.DB, securityID string, date time.Time, close float64) {
	t.Helper()

	query := `
		INSERT INTO security_price (id, security_id, date, close)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), securityID, date.Format("2006-01-02"), close)
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}
}

// InsertPrices stores a series of closing prices for a security.
func InsertPrices(t *testing.T, db *sql.DB, securityID string, points []model.PricePoint) {
	t.Helper()

	for _, p := range points {
		InsertPrice(t, db, securityID, p.Date, p.Close)
	}
}

// InsertCorporateAction stores a share-multiplier event for a security.
//
// Example usage:
//
//	testutil.InsertCorporateAction(t, db, security.ID, testutil.Date(2020, 6, 1), 2, "1:1 bonus")
func InsertCorporateAction(t *testing.T, db *sql.DB, securityID string, date time.Time, factor float64, description string) {
	t.Helper()

	query := `
		INSERT INTO corporate_action (id, security_id, date, factor, description)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), securityID, date.Format("2006-01-02"), factor, description)
	if err != nil {
		t.Fatalf("Failed to create test corporate action: %v", err)
	}
}

// Date builds a midnight-UTC time for readable test data.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
