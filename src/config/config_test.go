package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("s", 32)

func validConfig() Config {
	return Config{
		Port:            "5000",
		DatabaseDriver:  "sqlite",
		SQLitePath:      "./test.db",
		JWTSecret:       testSecret,
		TokenTTL:        7 * 24 * time.Hour,
		LogLevel:        "info",
		LogFormat:       "text",
		SummaryCacheTTL: time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "valid sqlite config", mutate: func(*Config) {}},
		{
			name: "valid postgres config",
			mutate: func(c *Config) {
				c.DatabaseDriver = "postgres"
				c.DatabaseURL = "postgres://localhost/expensy"
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "postgres without url",
			mutate:      func(c *Config) { c.DatabaseDriver = "postgres" },
			errorString: "DATABASE_URL is required for the postgres driver",
		},
		{
			name:        "unknown driver",
			mutate:      func(c *Config) { c.DatabaseDriver = "mongo" },
			errorString: "invalid DATABASE_DRIVER 'mongo': must be postgres or sqlite",
		},
		{
			name:        "missing secret",
			mutate:      func(c *Config) { c.JWTSecret = "" },
			errorString: "JWT_SECRET is required",
		},
		{
			name:        "short secret",
			mutate:      func(c *Config) { c.JWTSecret = "your-secret-key-here" },
			errorString: "JWT_SECRET must be at least 32 bytes",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			errorString: "invalid LOG_LEVEL 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorString, err.Error())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.SummaryCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.DemoMode)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL", "a week")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}
