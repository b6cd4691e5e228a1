// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Application
	AppEnv string `mapstructure:"APP_ENV"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase project settings. The original client hardcoded these in a
	// source file; here they are required environment configuration.
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey             string `mapstructure:"FIREBASE_WEB_API_KEY"`
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`

	// Identity Toolkit endpoint, overridable for tests and emulators.
	IdentityToolkitURL string `mapstructure:"IDENTITY_TOOLKIT_URL"`

	// Firestore collection holding user documents.
	UsersCollection string `mapstructure:"USERS_COLLECTION"`

	// Minimum time the loading state is shown before the session gate
	// exposes a resolved state, regardless of provider latency.
	SplashMinDuration time.Duration `mapstructure:"SPLASH_MIN_DURATION_MS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_WEB_API_KEY", "")
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")

	v.SetDefault("IDENTITY_TOOLKIT_URL", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("USERS_COLLECTION", "users")
	v.SetDefault("SPLASH_MIN_DURATION_MS", 2000)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.SplashMinDuration = time.Duration(v.GetInt("SPLASH_MIN_DURATION_MS")) * time.Millisecond

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.FirebaseProjectID) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_PROJECT_ID is not set. This is required for Firestore access")
	}
	if strings.TrimSpace(cfg.FirebaseWebAPIKey) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_WEB_API_KEY is not set. This is required for password sign-in")
	}
	if cfg.FirebaseServiceAccountKeyPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
		}
	}

	return &cfg, nil
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}
