package service

import (
	"context"
	"database/sql"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/database"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db           *sql.DB
	settingsRepo *repository.SettingsRepository
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, settingsRepo *repository.SettingsRepository) *SystemService {
	return &SystemService{
		db:           db,
		settingsRepo: settingsRepo,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

func (s *SystemService) CheckVersion() string {
	return version.Version
}

// GetProviderToken returns the stored market-data provider token.
// Returns apperrors.ErrSettingNotFound if no token has been configured.
func (s *SystemService) GetProviderToken() (string, error) {
	return s.settingsRepo.GetSetting(repository.ProviderTokenKey)
}

// SetProviderToken stores the market-data provider token, encrypted at rest
// when a settings encryption key is configured.
func (s *SystemService) SetProviderToken(ctx context.Context, token string) error {
	return s.settingsRepo.SetSetting(ctx, repository.ProviderTokenKey, token)
}
