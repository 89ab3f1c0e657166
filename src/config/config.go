// src/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Security settings
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Data source (bank aggregator) settings
	DataSourceEnv         string // sandbox | development | production
	DataSourceClientID    string
	DataSourceSecret      string
	TransactionWindowDays int

	// Advisor agent settings
	GeminiAPIKey string
	GeminiModel  string

	// Score report cache
	ScoreCacheTTL time.Duration

	// Frontend URL for CORS
	FrontendBaseURL string

	// Admin Users
	AdminUsernames []string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	// Try the current directory first, then the parent, so the server can be
	// started from the repo root or from a subdirectory.
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, relying on environment variables.")
		}
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8000"),
		DatabasePath: getEnv("DATABASE_PATH", "./roomieloot.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenExpiry:  getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenExpiry: getEnvAsDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),

		DataSourceEnv:         getEnv("DATA_SOURCE_ENV", "sandbox"),
		DataSourceClientID:    getEnv("DATA_SOURCE_CLIENT_ID", ""),
		DataSourceSecret:      getEnv("DATA_SOURCE_SECRET", ""),
		TransactionWindowDays: getEnvAsInt("TRANSACTION_WINDOW_DAYS", 30),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),

		ScoreCacheTTL: getEnvAsDuration("SCORE_CACHE_TTL", 5*time.Minute),

		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),

		AdminUsernames: getAdminUsernames("ADMIN_USERNAMES"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, DataSourceEnv=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.DataSourceEnv)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getAdminUsernames retrieves and parses the comma-separated admin list.
func getAdminUsernames(key string) []string {
	namesStr := getEnv(key, "")
	if namesStr == "" {
		return []string{}
	}
	names := strings.Split(namesStr, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	return names
}
