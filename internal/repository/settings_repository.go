package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
)

// ProviderTokenKey is the system_setting key holding the market-data
// provider API token.
const ProviderTokenKey = "provider_token"

// SettingsRepository provides data access for the system_setting table.
// Secret values (the provider token) are stored fernet-encrypted; a nil
// key disables encryption for deployments that do not need it.
type SettingsRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewSettingsRepository creates a SettingsRepository. encryptionKey is a
// base64url fernet key; pass an empty string to store values in plaintext.
func NewSettingsRepository(db *sql.DB, encryptionKey string) (*SettingsRepository, error) {
	repo := &SettingsRepository{db: db}

	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid settings encryption key: %w", err)
		}
		repo.key = key
	}

	return repo, nil
}

// GetSetting returns the decrypted value for a setting key.
// Returns apperrors.ErrSettingNotFound if the key has not been set.
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	query := `SELECT value FROM system_setting WHERE "key" = ?`

	var stored string
	err := r.db.QueryRow(query, key).Scan(&stored)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting table: %w", err)
	}

	if r.key == nil {
		return stored, nil
	}

	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{r.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt setting %q", key)
	}

	return string(plain), nil
}

// SetSetting stores (or replaces) a setting value, encrypting it when an
// encryption key is configured.
func (r *SettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	stored := value

	if r.key != nil {
		encrypted, err := fernet.EncryptAndSign([]byte(value), r.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt setting %q: %w", key, err)
		}
		stored = string(encrypted)
	}

	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		key,
		stored,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert system_setting: %w", err)
	}

	return nil
}
