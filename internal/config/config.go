package config

import (
	"os"

	"todo_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	MigrationsDir string
	LogLevel      string
	LogJSON       bool

	// Client side
	APIBaseURL string
}

// Load reads configuration from the environment (.env is picked up if present).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	migDir := os.Getenv("MIGRATIONS_DIR")
	if migDir == "" {
		migDir = "migrations"
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		MigrationsDir: migDir,
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		APIBaseURL:    apiBaseURL(),
	}
}

// LoadClient reads only what the terminal client needs. The client runs on
// machines without DATABASE_URL, so the server keys are not required here.
func LoadClient() *Config {
	_ = godotenv.Load()
	return &Config{APIBaseURL: apiBaseURL()}
}

func apiBaseURL() string {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:3000"
}
