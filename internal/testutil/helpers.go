package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/marketdata"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
)

// TestBenchmarkRate is the fixed-deposit rate used by test return services.
const TestBenchmarkRate = 6.0

func NewTestReturnService(t *testing.T, db *sql.DB) *service.ReturnService {
	t.Helper()

	securityRepo := repository.NewSecurityRepository(db)

	return service.NewReturnService(securityRepo, TestBenchmarkRate)
}

func NewTestSecurityService(t *testing.T, db *sql.DB) *service.SecurityService {
	t.Helper()

	securityRepo := repository.NewSecurityRepository(db)
	client := marketdata.NewChartClient()

	return service.NewSecurityService(securityRepo, client)
}

// NewTestSecurityServiceWithMockClient creates a SecurityService with a mock
// market data client. Useful for testing refresh operations without real
// API calls.
func NewTestSecurityServiceWithMockClient(t *testing.T, db *sql.DB, client marketdata.Client) *service.SecurityService {
	t.Helper()

	securityRepo := repository.NewSecurityRepository(db)

	return service.NewSecurityService(securityRepo, client)
}

func NewTestImportService(t *testing.T, db *sql.DB, dataDir string) *service.ImportService {
	t.Helper()

	securityRepo := repository.NewSecurityRepository(db)

	return service.NewImportService(securityRepo, dataDir)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	settingsRepo, err := repository.NewSettingsRepository(db, "")
	if err != nil {
		t.Fatalf("Failed to create settings repository: %v", err)
	}

	return service.NewSystemService(db, settingsRepo)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSecurityName generates a unique security name for testing.
//
// Example usage:
//
//	name := testutil.MakeSecurityName("Tata Motors")
//	// Returns: "Tata Motors ABC123"
func MakeSecurityName(base string) string {
	if base == "" {
		base = "Security"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeKey generates a unique filename-friendly key for testing.
//
// Example usage:
//
//	key := testutil.MakeKey("tata_motors")
//	// Returns: "tata_motors_abc123"
func MakeKey(base string) string {
	if base == "" {
		base = "security"
	}
	return base + "_" + randomLowercase(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// randomLowercase generates a random lowercase string of specified length.
func randomLowercase(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
