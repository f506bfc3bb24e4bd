package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL     = "postgres://localhost:5432/eventpass?sslmode=disable"
	defaultMigrationsPath  = "internal/infrastructure/database/migrations"
	defaultHTTPAddr        = ":8080"
	defaultFanoutWorkers   = 8
	defaultFanoutRate      = 20.0
	defaultDeliveryTimeout = 10 * time.Second
)

type Config struct {
	Token             string
	AnnounceChannelID string
	OperatorID        int64
	DatabaseURL       string
	MigrationsPath    string
	Locale            string
	Timezone          string
	HTTPAddr          string
	Fanout            FanoutConfig
	Logging           LoggingConfig
}

type FanoutConfig struct {
	Workers         int
	Rate            float64 // deliveries per second
	DeliveryTimeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment (seeded from .env when
// present) and validates it.
func Load() (*Config, error) {
	cfg := fromEnv()
	cfg.Token = os.Getenv("TOKEN")
	cfg.AnnounceChannelID = os.Getenv("ANNOUNCE_CHANNEL_ID")
	cfg.Locale = getEnv("LOCALE", "en")
	cfg.Timezone = getEnv("TIMEZONE", "UTC")
	cfg.HTTPAddr = getEnvAllowEmpty("HTTP_ADDR", defaultHTTPAddr)

	var err error
	if cfg.OperatorID, err = parseID("OPERATOR_ID", os.Getenv("OPERATOR_ID")); err != nil {
		return nil, err
	}
	if cfg.Fanout.Workers, err = getInt("FANOUT_WORKERS", defaultFanoutWorkers); err != nil {
		return nil, err
	}
	if cfg.Fanout.Rate, err = getFloat("FANOUT_RATE", defaultFanoutRate); err != nil {
		return nil, err
	}
	if cfg.Fanout.DeliveryTimeout, err = getDuration("DELIVERY_TIMEOUT", defaultDeliveryTimeout); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads only the database and logging settings, for commands
// that never talk to the chat platform.
func LoadDatabase() (*Config, error) {
	cfg := fromEnv()
	if err := cfg.validateDatabase(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	// .env is optional when variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// validate applies the rules that span several fields or fill defaults.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required")
	}
	if !isDigits(c.AnnounceChannelID) {
		return fmt.Errorf("config: ANNOUNCE_CHANNEL_ID must be a channel ID (digits only)")
	}
	if c.OperatorID <= 0 {
		return fmt.Errorf("config: OPERATOR_ID is required")
	}
	if c.Fanout.Workers <= 0 {
		return fmt.Errorf("config: FANOUT_WORKERS must be positive")
	}
	if c.Fanout.Rate <= 0 {
		return fmt.Errorf("config: FANOUT_RATE must be positive")
	}
	if c.Fanout.DeliveryTimeout <= 0 {
		return fmt.Errorf("config: DELIVERY_TIMEOUT must be positive")
	}
	return c.validateDatabase()
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		c.DatabaseURL = defaultDatabaseURL
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseID(key, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if !isDigits(value) {
		return 0, fmt.Errorf("config: %s must be a user ID (digits only)", key)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return id, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
