package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
)

// SecurityRepository provides data access methods for the security,
// security_price and corporate_action tables.
type SecurityRepository struct {
	db *sql.DB
}

// NewSecurityRepository creates a new SecurityRepository with the provided database connection.
func NewSecurityRepository(db *sql.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

// GetSecurity retrieves a single security by its ID.
// Returns apperrors.ErrSecurityNotFound if no such security exists.
func (r *SecurityRepository) GetSecurity(securityID string) (model.Security, error) {
	query := `
		SELECT id, name, "key", symbol, exchange, currency
		FROM security
		WHERE id = ?
	`

	var s model.Security
	var symbol, exchange sql.NullString

	err := r.db.QueryRow(query, securityID).Scan(
		&s.ID,
		&s.Name,
		&s.Key,
		&symbol,
		&exchange,
		&s.Currency,
	)
	if err == sql.ErrNoRows {
		return model.Security{}, apperrors.ErrSecurityNotFound
	}
	if err != nil {
		return model.Security{}, fmt.Errorf("failed to query security table: %w", err)
	}

	s.Symbol = symbol.String
	s.Exchange = exchange.String

	return s, nil
}

// GetSecurityByKey retrieves a security by its filename-friendly key
// (e.g. "tata_motors"). Returns apperrors.ErrSecurityNotFound if absent.
func (r *SecurityRepository) GetSecurityByKey(key string) (model.Security, error) {
	query := `
		SELECT id, name, "key", symbol, exchange, currency
		FROM security
		WHERE "key" = ?
	`

	var s model.Security
	var symbol, exchange sql.NullString

	err := r.db.QueryRow(query, key).Scan(
		&s.ID,
		&s.Name,
		&s.Key,
		&symbol,
		&exchange,
		&s.Currency,
	)
	if err == sql.ErrNoRows {
		return model.Security{}, apperrors.ErrSecurityNotFound
	}
	if err != nil {
		return model.Security{}, fmt.Errorf("failed to query security table: %w", err)
	}

	s.Symbol = symbol.String
	s.Exchange = exchange.String

	return s, nil
}

// GetAllSecurities retrieves all securities ordered by name.
// Returns an empty slice if none exist.
func (r *SecurityRepository) GetAllSecurities() ([]model.Security, error) {
	query := `
		SELECT id, name, "key", symbol, exchange, currency
		FROM security
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query security table: %w", err)
	}
	defer rows.Close()

	securities := []model.Security{}

	for rows.Next() {
		var s model.Security
		var symbol, exchange sql.NullString

		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Key,
			&symbol,
			&exchange,
			&s.Currency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security table results: %w", err)
		}

		s.Symbol = symbol.String
		s.Exchange = exchange.String
		securities = append(securities, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security table: %w", err)
	}

	return securities, nil
}

// InsertSecurity inserts a new security row.
func (r *SecurityRepository) InsertSecurity(ctx context.Context, s *model.Security) error {
	query := `
		INSERT INTO security (id, name, "key", symbol, exchange, currency)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Key,
		s.Symbol,
		s.Exchange,
		s.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to insert security: %w", err)
	}

	return nil
}

// GetPriceSeries retrieves the full closing-price history for a security,
// sorted ascending by date. Returns an empty slice if no prices are stored.
func (r *SecurityRepository) GetPriceSeries(securityID string) ([]model.PricePoint, error) {
	query := `
		SELECT date, close
		FROM security_price
		WHERE security_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, securityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query security_price table: %w", err)
	}
	defer rows.Close()

	series := []model.PricePoint{}

	for rows.Next() {
		var dateStr string
		var p model.PricePoint

		if err := rows.Scan(&dateStr, &p.Close); err != nil {
			return nil, fmt.Errorf("failed to scan security_price results: %w", err)
		}

		p.Date, err = ParseTime(dateStr)
		if err != nil || p.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		series = append(series, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security_price table: %w", err)
	}

	return series, nil
}

// GetPricesByDateRange retrieves stored price rows for a security within an
// inclusive date range, sorted ascending by date.
func (r *SecurityRepository) GetPricesByDateRange(securityID string, startDate, endDate time.Time) ([]model.SecurityPrice, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("startDate (%s) must be before or equal to endDate (%s)",
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	query := `
		SELECT id, security_id, date, close
		FROM security_price
		WHERE security_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, securityID,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query security_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.SecurityPrice{}

	for rows.Next() {
		var dateStr string
		var sp model.SecurityPrice

		err := rows.Scan(
			&sp.ID,
			&sp.SecurityID,
			&dateStr,
			&sp.Close,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security_price results: %w", err)
		}

		sp.Date, err = ParseTime(dateStr)
		if err != nil || sp.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		prices = append(prices, sp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security_price table: %w", err)
	}

	return prices, nil
}

// InsertPrices batch-inserts price rows inside a single transaction.
// Rows violating the (security_id, date) unique constraint are ignored, so
// re-importing a file is safe. Returns the number of rows actually inserted.
func (r *SecurityRepository) InsertPrices(ctx context.Context, securityID string, points []model.PricePoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT OR IGNORE INTO security_price (id, security_id, date, close)
		VALUES (?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range points {
		result, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			securityID,
			p.Date.Format("2006-01-02"),
			p.Close,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert security_price: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price insert: %w", err)
	}

	return inserted, nil
}

// GetCorporateActions retrieves all corporate actions for a security,
// sorted ascending by date. A security without actions yields an empty
// slice, not an error.
func (r *SecurityRepository) GetCorporateActions(securityID string) ([]model.CorporateAction, error) {
	query := `
		SELECT id, security_id, date, factor, description
		FROM corporate_action
		WHERE security_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, securityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query corporate_action table: %w", err)
	}
	defer rows.Close()

	actions := []model.CorporateAction{}

	for rows.Next() {
		var dateStr string
		var a model.CorporateAction

		err := rows.Scan(
			&a.ID,
			&a.SecurityID,
			&dateStr,
			&a.Factor,
			&a.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corporate_action results: %w", err)
		}

		a.Date, err = ParseTime(dateStr)
		if err != nil || a.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		actions = append(actions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corporate_action table: %w", err)
	}

	return actions, nil
}

// ReplaceCorporateActions atomically replaces the full action list for a
// security. Used by the bulk importer so that re-importing a
// corporate_actions.json file does not duplicate events.
func (r *SecurityRepository) ReplaceCorporateActions(ctx context.Context, securityID string, actions []model.CorporateAction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM corporate_action WHERE security_id = ?`, securityID); err != nil {
		return fmt.Errorf("failed to clear corporate_action rows: %w", err)
	}

	query := `
		INSERT INTO corporate_action (id, security_id, date, factor, description)
		VALUES (?, ?, ?, ?, ?)
	`

	for _, a := range actions {
		_, err := tx.ExecContext(ctx, query,
			uuid.New().String(),
			securityID,
			a.Date.Format("2006-01-02"),
			a.Factor,
			a.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert corporate_action: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corporate_action replace: %w", err)
	}

	return nil
}

// InsertCorporateAction inserts a single corporate action row.
func (r *SecurityRepository) InsertCorporateAction(ctx context.Context, a *model.CorporateAction) error {
	query := `
		INSERT INTO corporate_action (id, security_id, date, factor, description)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.SecurityID,
		a.Date.Format("2006-01-02"),
		a.Factor,
		a.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert corporate_action: %w", err)
	}

	return nil
}
