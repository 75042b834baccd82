package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageMemory    = "memory"
	StorageSurrealDB = "surrealdb"
)

// minSecretBytes is the shortest HS256 secret accepted in production
const minSecretBytes = 32

// devSecret signs development tokens when JWT_SECRET is unset
const devSecret = "development-only-secret-change-me!"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Site      SiteConfig
	RateLimit RateLimitConfig
	Discord   DiscordConfig
	Jobs      JobsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Driver string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds session token signing settings
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// Expiration returns the token lifetime
func (j JWTConfig) Expiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// SiteConfig holds site-wide behaviour toggles
type SiteConfig struct {
	UnderConstruction bool
	SeedTestAccount   bool
	AutoRegister      bool
}

// RateLimitConfig holds per-caller request limits
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// DiscordConfig holds the moderation relay webhook
type DiscordConfig struct {
	WebhookURL      string
	WebhookUsername string
}

// Enabled reports whether a webhook is configured
func (d DiscordConfig) Enabled() bool {
	return d.WebhookURL != ""
}

// JobsConfig holds background processor settings
type JobsConfig struct {
	TempbanSweepInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "community"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			Issuer:          getEnv("JWT_ISSUER", "community-api"),
			ExpirationHours: getIntEnv("JWT_EXPIRATION_HOURS", 720),
		},
		Site: SiteConfig{
			UnderConstruction: getBoolEnv("UNDER_CONSTRUCTION", false),
			SeedTestAccount:   getBoolEnv("SEED_TEST_ACCOUNT", true),
			AutoRegister:      getBoolEnv("AUTO_REGISTER", true),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatEnv("RATE_LIMIT_RPS", 10),
			Burst: getIntEnv("RATE_LIMIT_BURST", 20),
		},
		Discord: DiscordConfig{
			WebhookURL:      getEnv("DISCORD_WEBHOOK_URL", ""),
			WebhookUsername: getEnv("DISCORD_WEBHOOK_USERNAME", "Community Moderation"),
		},
		Jobs: JobsConfig{
			TempbanSweepInterval: getDurationEnv("TEMPBAN_SWEEP_INTERVAL", 5*time.Minute),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// SigningSecret returns the HS256 secret, falling back to a fixed
// development secret outside production
func (c *Config) SigningSecret() string {
	if c.JWT.Secret == "" && !c.IsProduction() {
		return devSecret
	}
	return c.JWT.Secret
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Storage validation
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be '%s' or '%s', got '%s'", StorageMemory, StorageSurrealDB, c.Storage.Driver))
	}

	// JWT validation - critical for production
	if c.IsProduction() {
		if c.JWT.Secret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		} else if len(c.JWT.Secret) < minSecretBytes {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minSecretBytes))
		}
	}
	if c.JWT.ExpirationHours <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_HOURS must be positive"))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER is required"))
	}

	// Rate limit validation
	if c.RateLimit.RPS <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}

	// Discord validation
	if c.Discord.Enabled() && !strings.HasPrefix(c.Discord.WebhookURL, "https://") {
		errs = append(errs, errors.New("DISCORD_WEBHOOK_URL must be an https URL"))
	}

	// Jobs validation
	if c.Jobs.TempbanSweepInterval <= 0 {
		errs = append(errs, errors.New("TEMPBAN_SWEEP_INTERVAL must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
