package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Sheets    SheetsConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// SheetsConfig holds the Apps Script gateway configuration
type SheetsConfig struct {
	// Webhook URL of the deployed Apps Script gateway
	AppScriptURL string
	// Drive folder receiving uploaded photos
	DriveFolderID string
	// Background pull-sync cadence
	SyncInterval time.Duration
	// Disables the background sync loop entirely
	SyncDisabled bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	appScriptURL := os.Getenv("APPSCRIPT_URL")
	if appScriptURL == "" {
		return nil, fmt.Errorf("APPSCRIPT_URL is required")
	}

	syncSeconds, err := strconv.Atoi(getEnv("SHEETS_SYNC_INTERVAL", "60"))
	if err != nil || syncSeconds < 5 {
		syncSeconds = 60
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "protrack"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Sheets: SheetsConfig{
			AppScriptURL:  appScriptURL,
			DriveFolderID: os.Getenv("DRIVE_FOLDER_ID"),
			SyncInterval:  time.Duration(syncSeconds) * time.Second,
			SyncDisabled:  getEnv("SHEETS_SYNC_DISABLED", "false") == "true",
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
