package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretLength = 32

type Config struct {
	Env             string
	Port            string
	DatabaseDriver  string
	DatabaseURL     string
	SQLitePath      string
	JWTSecret       string
	TokenTTL        time.Duration
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string
	DemoMode        bool
	SummaryCacheTTL time.Duration
}

// Load reads the environment (and an optional .env file) into a Config and
// validates it. JWT_SECRET has no default.
func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	tokenTTL, err := getDuration("TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := getDuration("SUMMARY_CACHE_TTL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	demo, err := getBool("DEMO_MODE", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "5000"),
		DatabaseDriver:  strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/expensy.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTL:        tokenTTL,
		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DemoMode:        demo,
		SummaryCacheTTL: cacheTTL,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	switch c.DatabaseDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER '%s': must be postgres or sqlite", c.DatabaseDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL %s: must be positive", c.TokenTTL)
	}
	if c.SummaryCacheTTL < 0 {
		return fmt.Errorf("invalid SUMMARY_CACHE_TTL %s: must not be negative", c.SummaryCacheTTL)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL '%s'", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT '%s'", c.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", key, value, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s '%s': %w", key, value, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
