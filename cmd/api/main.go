package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/messaging"
	"github.com/contactbot/payment-processor/internal/domain/usecase/payment"

	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/handler"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/routes"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/database"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/event"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/gateway"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/logger"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/metrics"
	timeProvider "github.com/contactbot/payment-processor/internal/infrastructure/adapter/time"
	"github.com/contactbot/payment-processor/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.Logger.Format == "json" || cfg.Environment == config.Production,
		Level:      coreport.ParseLogLevel(cfg.Logger.Level),
		Service:    "payment-api",
	})
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbManager := database.NewManager(database.NewConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Metrics
	registry := metrics.NewRegistry()
	paymentMetrics := metrics.NewPrometheusMetrics(registry)
	if sqlDB, err := dbManager.SQLDB(); err == nil {
		if err := metrics.RegisterDBStats(registry, sqlDB, cfg.Database.Database); err != nil {
			appLogger.Warn("Failed to register database metrics", map[string]any{"error": err.Error()})
		}
	}

	// Outbound adapters
	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:     cfg.Gateway.BaseURL,
		TerminalKey: cfg.Gateway.TerminalKey,
		Password:    cfg.Gateway.Password,
		Timeout:     cfg.Gateway.Timeout,
	}, appLogger)

	publisher := newPublisher(cfg, tp, appLogger)
	defer func() { _ = publisher.Close() }()

	// Use cases
	uow := dbManager.CreateUnitOfWork()
	paymentConf := paymentConfig(cfg)
	paymentService := payment.NewService(uow, gatewayClient, tp, appLogger, paymentMetrics, paymentConf)
	webhookProcessor := payment.NewWebhookProcessor(uow, gatewayClient, publisher, tp, appLogger, paymentMetrics, paymentConf)

	// HTTP
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, routes.Handlers{
		Payment:      handler.NewPaymentHandler(paymentService, appLogger),
		Notification: handler.NewNotificationHandler(webhookProcessor, appLogger),
		Health:       handler.NewHealthHandler(dbManager, appLogger),
	})
	if cfg.Metrics.Enabled {
		routes.SetupMetrics(router, cfg.Metrics.Path, registry)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// newPublisher returns a Kafka publisher, or a no-op one when no brokers are configured
func newPublisher(cfg *config.Config, tp coreport.TimeProvider, appLogger coreport.Logger) messaging.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Info("Kafka brokers not configured, event publishing disabled", nil)
		return event.NewNoopPublisher(appLogger)
	}

	publisher, err := event.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.WriteTimeout, tp, appLogger)
	if err != nil {
		appLogger.Warn("Kafka publisher unavailable, event publishing disabled", map[string]any{
			"error": err.Error(),
		})
		return event.NewNoopPublisher(appLogger)
	}
	return publisher
}

// paymentConfig maps the application configuration onto the payment flows
func paymentConfig(cfg *config.Config) payment.Config {
	receipt := cfg.Gateway.Receipt
	return payment.Config{
		Amount:           cfg.Gateway.Product.Amount,
		Description:      cfg.Gateway.Product.Description,
		NotificationURL:  cfg.Gateway.NotificationURL,
		TerminalPassword: cfg.Gateway.Password,
		GrantDays:        cfg.Subscription.GrantDays,
		SendReceipts:     receipt.Enabled,
		Receipt: entity.ReceiptTemplate{
			Taxation:      receipt.Taxation,
			ItemName:      receipt.ItemName,
			Tax:           receipt.Tax,
			PaymentMethod: receipt.PaymentMethod,
			PaymentObject: receipt.PaymentObject,
		},
	}
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	missingConfigs = append(missingConfigs, missingDatabaseConfigs(cfg)...)

	// Validate gateway configuration
	if cfg.Gateway.BaseURL == "" {
		missingConfigs = append(missingConfigs, "gateway.baseUrl")
	}
	if cfg.Gateway.TerminalKey == "" {
		missingConfigs = append(missingConfigs, "gateway.terminalKey (or PP_GATEWAY_TERMINAL_KEY environment variable)")
	}
	if cfg.Gateway.Password == "" {
		missingConfigs = append(missingConfigs, "gateway.password (or PP_GATEWAY_PASSWORD environment variable)")
	}
	if cfg.Gateway.Product.Amount <= 0 {
		missingConfigs = append(missingConfigs, "gateway.product.amount")
	}

	if err := validateEnvironment(cfg); err != nil {
		return err
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Gateway.NotificationURL == "" {
			warnings = append(warnings, "gateway.notificationUrl is empty, the terminal default will be used")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}

// missingDatabaseConfigs lists the database settings that are not set
func missingDatabaseConfigs(cfg *config.Config) []string {
	var missing []string

	required := []struct {
		value string
		key   string
		env   string
	}{
		{cfg.Database.Host, "database.host", "DB_HOST"},
		{cfg.Database.Port, "database.port", "DB_PORT"},
		{cfg.Database.Username, "database.username", "DB_USERNAME"},
		{cfg.Database.Password, "database.password", "DB_PASSWORD"},
		{cfg.Database.Database, "database.database", "DB_NAME"},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, fmt.Sprintf("%s (or %s_%s environment variable)", r.key, config.EnvPrefix, r.env))
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missing = append(missing, "database.queryTimeout")
	}
	return missing
}

// validateEnvironment checks the environment is one of the known values
func validateEnvironment(cfg *config.Config) error {
	switch cfg.Environment {
	case config.Development, config.Production, config.Test:
		return nil
	default:
		return fmt.Errorf("invalid environment value: %q, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}
}
