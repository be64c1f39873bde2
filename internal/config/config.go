package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Data      DataConfig
	Benchmark BenchmarkConfig
	Settings  SettingsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// DataConfig holds price data import and refresh configuration.
// Dir is the directory scanned for <key>_daily.csv files and the
// corporate_actions.json lookup. RefreshSchedule is a cron expression
// for the scheduled latest-price refresh.
type DataConfig struct {
	Dir             string
	RefreshSchedule string
}

// BenchmarkConfig holds the fixed-deposit benchmark settings.
// Rate is the annual percentage used for the benchmark comparison.
type BenchmarkConfig struct {
	Rate float64
}

// SettingsConfig holds the fernet key used to encrypt stored provider tokens.
type SettingsConfig struct {
	EncryptionKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	benchmarkRate, err := strconv.ParseFloat(getEnv("BENCHMARK_RATE", "6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BENCHMARK_RATE: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/return_calculator.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Data: DataConfig{
			Dir:             getEnv("DATA_DIR", "./data"),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "0 18 * * 1-5"),
		},
		Benchmark: BenchmarkConfig{
			Rate: benchmarkRate,
		},
		Settings: SettingsConfig{
			EncryptionKey: getEnv("SETTINGS_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
