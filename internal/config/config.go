package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"todoey/internal/database"
)

// Config holds application configuration
type Config struct {
	// Environment name: "production", "development" or "test".
	Env string `env:"ENV" envDefault:"development"`

	// Server
	Port string `env:"PORT" envDefault:"8080"`

	// APIKey, when set, is required in the X-API-Key header of /api/v1 requests.
	APIKey string `env:"API_KEY"`

	// Change journal retention. A zero retention keeps every entry.
	JournalRetention     time.Duration `env:"JOURNAL_RETENTION" envDefault:"720h"`
	JournalPruneInterval time.Duration `env:"JOURNAL_PRUNE_INTERVAL" envDefault:"1h"`

	// Database
	Database database.Config `envPrefix:"DB_"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	return Parse()
}

// Parse reads configuration from the current environment only.
func Parse() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Database.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
