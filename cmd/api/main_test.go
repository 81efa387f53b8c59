package main

import (
	"testing"
	"time"

	"github.com/contactbot/payment-processor/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	return &config.Config{
		Environment: config.Development,
		Server: config.ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			Username:     "postgres",
			Password:     "postgres",
			Database:     "payment_processor",
			QueryTimeout: 5 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "info"},
		Gateway: config.GatewayConfig{
			BaseURL:     "https://securepay.example.com/v2",
			TerminalKey: "TERM",
			Password:    "secret",
			Product:     config.ProductConfig{Amount: 3000, Description: "Subscription"},
			Receipt:     config.ReceiptConfig{Enabled: true, Taxation: "usn_income", ItemName: "Subscription", Tax: "none"},
		},
		Subscription: config.SubscriptionConfig{GrantDays: 30},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "Complete configuration", mutate: func(*config.Config) {}},
		{
			name:    "Missing terminal password",
			mutate:  func(c *config.Config) { c.Gateway.Password = "" },
			wantErr: "gateway.password",
		},
		{
			name:    "Missing database host",
			mutate:  func(c *config.Config) { c.Database.Host = "" },
			wantErr: "PP_DB_HOST",
		},
		{
			name:    "Zero product amount",
			mutate:  func(c *config.Config) { c.Gateway.Product.Amount = 0 },
			wantErr: "gateway.product.amount",
		},
		{
			name:    "Unknown environment",
			mutate:  func(c *config.Config) { c.Environment = "staging" },
			wantErr: "invalid environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPaymentConfig(t *testing.T) {
	conf := paymentConfig(validConfig())

	assert.Equal(t, int64(3000), conf.Amount)
	assert.Equal(t, "secret", conf.TerminalPassword)
	assert.Equal(t, 30, conf.GrantDays)
	assert.True(t, conf.SendReceipts)
	assert.Equal(t, "usn_income", conf.Receipt.Taxation)
}
