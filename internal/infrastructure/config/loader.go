package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "PP"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	return loadFromPaths(getEnvironment(), ConfigPaths)
}

// loadFromPaths reads <env>.yaml from the first path that has it and applies
// defaults and environment overrides
func loadFromPaths(env string, paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 20)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 500) // milliseconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("gateway.baseUrl", "https://securepay.tinkoff.ru/v2")
	v.SetDefault("gateway.timeout", 10) // seconds
	v.SetDefault("gateway.product.amount", 3000)
	v.SetDefault("gateway.product.description", "Subscription")
	v.SetDefault("gateway.receipt.enabled", false)
	v.SetDefault("gateway.receipt.taxation", "usn_income")
	v.SetDefault("gateway.receipt.itemName", "Subscription")
	v.SetDefault("gateway.receipt.tax", "none")
	v.SetDefault("gateway.receipt.paymentMethod", "full_payment")
	v.SetDefault("gateway.receipt.paymentObject", "service")

	v.SetDefault("subscription.grantDays", 30)

	v.SetDefault("cleaner.interval", 5)   // minutes
	v.SetDefault("cleaner.batchSize", 1000)
	v.SetDefault("cleaner.maxAge", 10) // minutes
	v.SetDefault("cleaner.keepStatuses", []string{"CONFIRMED", "REFUNDED"})

	v.SetDefault("kafka.topic", "payments.subscription-granted")
	v.SetDefault("kafka.writeTimeout", 5) // seconds

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// getEnvironment determines the environment to use based on PP_ENV environment variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values,
// including keys whose env names do not follow the automatic mapping
func processEnvOverrides(v *viper.Viper) {
	// Database sensitive information
	setFromEnv(v, "DB_HOST", "database.host")
	setFromEnv(v, "DB_PORT", "database.port")
	setFromEnv(v, "DB_USERNAME", "database.username")
	setFromEnv(v, "DB_PASSWORD", "database.password")
	setFromEnv(v, "DB_NAME", "database.database")
	setFromEnv(v, "DB_SSL_MODE", "database.sslMode")

	if maxOpenConns := getEnvInt("DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if retryAttempts := getEnvInt("DB_RETRY_ATTEMPTS", -1); retryAttempts >= 0 {
		v.Set("database.retryAttempts", retryAttempts)
	}
	if retryDelay := getEnvInt("DB_RETRY_DELAY_MS", -1); retryDelay >= 0 {
		v.Set("database.retryDelay", retryDelay)
	}

	// Server settings
	setFromEnv(v, "SERVER_HOST", "server.host")
	if port := getEnvInt("SERVER_PORT", 0); port > 0 {
		v.Set("server.port", port)
	}

	setFromEnv(v, "LOGGER_LEVEL", "logger.level")

	// Gateway credentials
	setFromEnv(v, "GATEWAY_BASE_URL", "gateway.baseUrl")
	setFromEnv(v, "GATEWAY_TERMINAL_KEY", "gateway.terminalKey")
	setFromEnv(v, "GATEWAY_PASSWORD", "gateway.password")
	setFromEnv(v, "GATEWAY_NOTIFICATION_URL", "gateway.notificationUrl")

	// Cleaner settings
	if interval := getEnvInt("CLEANER_INTERVAL_MINUTES", 0); interval > 0 {
		v.Set("cleaner.interval", interval)
	}
	if batchSize := getEnvInt("CLEANER_BATCH_SIZE", 0); batchSize > 0 {
		v.Set("cleaner.batchSize", batchSize)
	}
	if maxAge := getEnvInt("CLEANER_MAX_AGE_MINUTES", 0); maxAge > 0 {
		v.Set("cleaner.maxAge", maxAge)
	}

	if brokers := os.Getenv(EnvPrefix + "_KAFKA_BROKERS"); brokers != "" {
		v.Set("kafka.brokers", splitList(brokers))
	}
}

func setFromEnv(v *viper.Viper, name, key string) {
	if value := os.Getenv(EnvPrefix + "_" + name); value != "" {
		v.Set(key, value)
	}
}

// getEnvInt reads a prefixed environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(EnvPrefix + "_" + name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Millisecond

	config.Gateway.Timeout = time.Duration(config.Gateway.Timeout) * time.Second

	config.Cleaner.Interval = time.Duration(config.Cleaner.Interval) * time.Minute
	config.Cleaner.MaxAge = time.Duration(config.Cleaner.MaxAge) * time.Minute

	config.Kafka.WriteTimeout = time.Duration(config.Kafka.WriteTimeout) * time.Second
}
