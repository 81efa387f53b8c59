package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment  string             `mapstructure:"environment"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Gateway      GatewayConfig      `mapstructure:"gateway"`
	Subscription SubscriptionConfig `mapstructure:"subscription"`
	Cleaner      CleanerConfig      `mapstructure:"cleaner"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // milliseconds, multiplied by the attempt number
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GatewayConfig contains the acquiring terminal settings
type GatewayConfig struct {
	BaseURL         string        `mapstructure:"baseUrl"`
	TerminalKey     string        `mapstructure:"terminalKey"`
	Password        string        `mapstructure:"password"`
	NotificationURL string        `mapstructure:"notificationUrl"`
	Timeout         time.Duration `mapstructure:"timeout"` // seconds
	Product         ProductConfig `mapstructure:"product"`
	Receipt         ReceiptConfig `mapstructure:"receipt"`
}

// ProductConfig describes the subscription sold through the gateway
type ProductConfig struct {
	Amount      int64  `mapstructure:"amount"` // smallest currency unit
	Description string `mapstructure:"description"`
}

// ReceiptConfig contains fiscal receipt settings
type ReceiptConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Taxation      string `mapstructure:"taxation"`
	ItemName      string `mapstructure:"itemName"`
	Tax           string `mapstructure:"tax"`
	PaymentMethod string `mapstructure:"paymentMethod"`
	PaymentObject string `mapstructure:"paymentObject"`
}

// SubscriptionConfig contains what a confirmed payment grants
type SubscriptionConfig struct {
	GrantDays int `mapstructure:"grantDays"`
}

// CleanerConfig contains expired transaction cleanup settings
type CleanerConfig struct {
	Interval     time.Duration `mapstructure:"interval"` // minutes
	BatchSize    int           `mapstructure:"batchSize"`
	MaxAge       time.Duration `mapstructure:"maxAge"` // minutes
	KeepStatuses []string      `mapstructure:"keepStatuses"`
}

// KafkaConfig contains event publishing settings; no brokers disables publishing
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"` // seconds
}

// MetricsConfig contains Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
