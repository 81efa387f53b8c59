package cleaner

import (
	"context"
	"errors"
	"fmt"
	"time"

	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
)

// TransactionCleaner runs one full cleanup pass
type TransactionCleaner interface {
	CleanExpiredTransactions(ctx context.Context) (int, error)
}

// Scheduler runs cleanup passes on a fixed interval
type Scheduler struct {
	cleaner  TransactionCleaner
	interval time.Duration
	logger   coreport.Logger
}

// NewScheduler creates a new Scheduler
func NewScheduler(cleaner TransactionCleaner, interval time.Duration, logger coreport.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger,
	}
}

// Run performs a pass immediately and then one per interval until ctx is done.
// A failing or panicking pass is logged and does not stop the loop.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Cleaner scheduler started", map[string]any{
		"interval": s.interval.String(),
	})

	_ = s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Cleaner scheduler stopped", nil)
			return
		case <-ticker.C:
			_ = s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single pass, converting a panic into an error. A pass
// stopped by cancellation between batches is not an error.
func (s *Scheduler) RunOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup pass panicked: %v", r)
			s.logger.Error("Recovered from panic in cleanup pass", map[string]any{
				"panic": fmt.Sprintf("%v", r),
			})
		}
	}()

	deleted, err := s.cleaner.CleanExpiredTransactions(ctx)
	if errors.Is(err, context.Canceled) {
		s.logger.Info("Cleanup pass stopped by shutdown", map[string]any{"deleted": deleted})
		return nil
	}
	if err != nil {
		s.logger.Error("Cleanup pass failed", map[string]any{
			"deleted": deleted,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Debug("Cleanup pass finished", map[string]any{"deleted": deleted})
	return nil
}
