package database

import (
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAppConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Host:          "localhost",
			Port:          "5432",
			Username:      "postgres",
			Password:      "secret",
			Database:      "payments",
			MaxOpenConns:  10,
			MaxIdleConns:  5,
			QueryTimeout:  5 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    500 * time.Millisecond,
		},
		Logger: config.LoggerConfig{Level: "debug"},
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("Copies connection settings and fills driver defaults", func(t *testing.T) {
		c := NewConfig(validAppConfig())

		require.NoError(t, c.Validate())
		assert.Equal(t, "postgres", c.Driver)
		assert.Equal(t, "disable", c.SSLMode)
		assert.Equal(t, 5432, c.Port)
		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, RetryPolicy{MaxAttempts: 3, Delay: 500 * time.Millisecond}, c.RetryPolicy())
		assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=payments sslmode=disable", c.DSN())
	})

	t.Run("Invalid settings are rejected", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"Missing host", func(c *config.Config) { c.Database.Host = "" }},
			{"Bad port", func(c *config.Config) { c.Database.Port = "abc" }},
			{"Unsupported driver", func(c *config.Config) { c.Database.Driver = "mysql" }},
			{"Unknown ssl mode", func(c *config.Config) { c.Database.SSLMode = "maybe" }},
			{"No retry attempts", func(c *config.Config) { c.Database.RetryAttempts = 0 }},
			{"Zero query timeout", func(c *config.Config) { c.Database.QueryTimeout = 0 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				appConfig := validAppConfig()
				tt.mutate(appConfig)

				assert.Error(t, NewConfig(appConfig).Validate())
			})
		}
	})
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort("5432"))
	assert.Equal(t, 0, ParsePort(""))
	assert.Equal(t, 0, ParsePort("70000"))
	assert.Equal(t, 0, ParsePort("-1"))
}
