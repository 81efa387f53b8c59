package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
database:
  host: db.internal
  username: payments
  database: payments
gateway:
  terminalKey: TERM
  password: from-file
  notificationUrl: https://bot.example.com/api/v2/Notification
cleaner:
  batchSize: 250
`

func writeConfig(t *testing.T, env, content string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadFromPaths(t *testing.T) {
	t.Run("File values, defaults and durations", func(t *testing.T) {
		dir := writeConfig(t, Test, testYAML)

		cfg, err := loadFromPaths(Test, []string{dir})

		require.NoError(t, err)
		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 3, cfg.Database.RetryAttempts)
		assert.Equal(t, 500*time.Millisecond, cfg.Database.RetryDelay)
		assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, int64(3000), cfg.Gateway.Product.Amount)
		assert.Equal(t, 30, cfg.Subscription.GrantDays)
		assert.Equal(t, 250, cfg.Cleaner.BatchSize)
		assert.Equal(t, 5*time.Minute, cfg.Cleaner.Interval)
		assert.Equal(t, 10*time.Minute, cfg.Cleaner.MaxAge)
		assert.Equal(t, []string{"CONFIRMED", "REFUNDED"}, cfg.Cleaner.KeepStatuses)
		assert.Empty(t, cfg.Kafka.Brokers)
	})

	t.Run("Environment overrides secrets", func(t *testing.T) {
		dir := writeConfig(t, Test, testYAML)
		t.Setenv("PP_GATEWAY_PASSWORD", "from-env")
		t.Setenv("PP_DB_PASSWORD", "db-secret")
		t.Setenv("PP_DB_RETRY_ATTEMPTS", "0")
		t.Setenv("PP_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

		cfg, err := loadFromPaths(Test, []string{dir})

		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Gateway.Password)
		assert.Equal(t, "db-secret", cfg.Database.Password)
		assert.Equal(t, 0, cfg.Database.RetryAttempts)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := loadFromPaths("staging", []string{t.TempDir()})

		assert.Error(t, err)
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("PP_ENV", "Production")
	assert.Equal(t, Production, getEnvironment())

	t.Setenv("PP_ENV", "")
	assert.Equal(t, Development, getEnvironment())
}
