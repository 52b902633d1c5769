package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Providers ProviderConfig
	Refresh   RefreshConfig
	Secrets   SecretsConfig
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

// ProviderConfig holds external data provider configuration.
// API keys set here act as bootstrap values; keys stored through the
// settings endpoint take precedence once present.
type ProviderConfig struct {
	AlphaVantageKey string
	FredKey         string
	FredSeries      string // long-term corporate bond yield series, e.g. AAA
	DefaultYield    float64
}

// RefreshConfig holds batch-refresh pacing and scheduling configuration.
type RefreshConfig struct {
	PaceEvery    int           // pause before every Nth holding in a batch
	PaceInterval time.Duration // how long each pacing pause blocks
	Cron         string        // optional cron expression; empty disables auto-refresh
}

// SecretsConfig holds the fernet key used to encrypt stored provider keys.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	defaultYield, err := getEnvFloat("DEFAULT_REFERENCE_YIELD", 0.045)
	if err != nil {
		return nil, err
	}
	paceEvery, err := getEnvInt("REFRESH_PACE_EVERY", 5)
	if err != nil {
		return nil, err
	}
	paceInterval, err := getEnvDuration("REFRESH_PACE_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Providers: ProviderConfig{
			AlphaVantageKey: getEnv("ALPHAVANTAGE_API_KEY", ""),
			FredKey:         getEnv("FRED_API_KEY", ""),
			FredSeries:      getEnv("FRED_YIELD_SERIES", "AAA"),
			DefaultYield:    defaultYield,
		},
		Refresh: RefreshConfig{
			PaceEvery:    paceEvery,
			PaceInterval: paceInterval,
			Cron:         getEnv("REFRESH_CRON", ""),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
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

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return parsed, nil
}
