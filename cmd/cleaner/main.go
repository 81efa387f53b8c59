package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/usecase/cleaner"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/database"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/logger"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/metrics"
	timeProvider "github.com/contactbot/payment-processor/internal/infrastructure/adapter/time"
	"github.com/contactbot/payment-processor/internal/infrastructure/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var Version = "dev"

type options struct {
	once      bool
	interval  time.Duration
	batchSize int
	maxAge    time.Duration
	// metricsAddr serves /metrics when set
	metricsAddr string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "cleaner",
		Short:         "Removes payments that never reached a final status",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			applyFlags(cmd, opts, cfg)
			if err := validateConfig(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.once, "once", false, "Run a single cleanup pass and exit")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Time between passes (overrides cleaner.interval)")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "Rows deleted per transaction (overrides cleaner.batchSize)")
	cmd.Flags().DurationVar(&opts.maxAge, "max-age", 0, "Age after which a pending payment expires (overrides cleaner.maxAge)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")

	return cmd
}

// applyFlags lets explicitly set flags take precedence over the configuration
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	if cmd.Flags().Changed("interval") {
		cfg.Cleaner.Interval = opts.interval
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.Cleaner.BatchSize = opts.batchSize
	}
	if cmd.Flags().Changed("max-age") {
		cfg.Cleaner.MaxAge = opts.maxAge
	}
}

// validateConfig rejects cleaner settings that would delete final payments
func validateConfig(cfg *config.Config) error {
	if cfg.Cleaner.KeepStatuses != nil && len(cfg.Cleaner.KeepStatuses) == 0 {
		return fmt.Errorf("cleaner.keepStatuses: %w", errs.ErrNoKeepStatuses)
	}
	for _, s := range cfg.Cleaner.KeepStatuses {
		if s == "" || len(s) > entity.MaxStatusLength {
			return fmt.Errorf("cleaner.keepStatuses: invalid status %q", s)
		}
	}
	if cfg.Cleaner.BatchSize < 0 {
		return fmt.Errorf("cleaner.batchSize must not be negative, got: %d", cfg.Cleaner.BatchSize)
	}
	if cfg.Cleaner.MaxAge < 0 {
		return fmt.Errorf("cleaner.maxAge must not be negative, got: %s", cfg.Cleaner.MaxAge)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, opts *options) error {
	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.Logger.Format == "json" || cfg.Environment == config.Production,
		Level:      coreport.ParseLogLevel(cfg.Logger.Level),
		Service:    "payment-cleaner",
	})
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(database.NewConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		return err
	}
	defer func() { _ = dbManager.Close() }()

	cleanerMetrics := metrics.NewNoopMetrics()
	if opts.metricsAddr != "" && !opts.once {
		registry := metrics.NewRegistry()
		cleanerMetrics = metrics.NewPrometheusMetrics(registry)
		stopMetrics := serveMetrics(opts.metricsAddr, registry, appLogger)
		defer stopMetrics()
	}

	expiryCleaner := cleaner.NewExpiryCleaner(
		dbManager.CreateUnitOfWork(),
		tp,
		appLogger,
		cleanerMetrics,
		cleanerConfig(cfg),
	)
	scheduler := cleaner.NewScheduler(expiryCleaner, cfg.Cleaner.Interval, appLogger)

	if opts.once {
		return scheduler.RunOnce(ctx)
	}

	scheduler.Run(ctx)
	appLogger.Info("Cleaner exited gracefully", nil)
	return nil
}

// serveMetrics exposes registry on addr and returns a function stopping the listener
func serveMetrics(addr string, registry *prometheus.Registry, appLogger coreport.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Metrics listener failed", map[string]any{"addr": addr, "error": err.Error()})
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// cleanerConfig maps the application configuration onto the cleaner
func cleanerConfig(cfg *config.Config) cleaner.Config {
	var keep []entity.TransactionStatus
	if cfg.Cleaner.KeepStatuses != nil {
		keep = make([]entity.TransactionStatus, 0, len(cfg.Cleaner.KeepStatuses))
		for _, s := range cfg.Cleaner.KeepStatuses {
			keep = append(keep, entity.TransactionStatus(s))
		}
	}

	return cleaner.Config{
		BatchSize:    cfg.Cleaner.BatchSize,
		MaxAge:       cfg.Cleaner.MaxAge,
		KeepStatuses: keep,
	}
}
