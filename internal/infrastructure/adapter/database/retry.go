package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/repository"
)

// RetryPolicy bounds the retries of a database operation. Only refused
// connections are retried; the n-th retry waits n times Delay.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       500 * time.Millisecond,
	}
}

// Decide reports whether the operation should run again after its attempt-th
// failure with err, and how long to wait first. Attempts are counted from 1.
func (p RetryPolicy) Decide(attempt int, err error) (bool, time.Duration) {
	if err == nil || !repository.IsConnectionRefused(err) {
		return false, 0
	}
	if attempt < 1 || attempt >= p.MaxAttempts {
		return false, 0
	}
	return true, time.Duration(attempt) * p.Delay
}

// policyBackOff feeds RetryPolicy decisions to backoff.RetryNotify.
// record must be called with every failure before NextBackOff.
type policyBackOff struct {
	policy  RetryPolicy
	attempt int
	next    time.Duration
}

func newPolicyBackOff(policy RetryPolicy) *policyBackOff {
	return &policyBackOff{policy: policy, next: backoff.Stop}
}

func (b *policyBackOff) Reset() {
	b.attempt = 0
	b.next = backoff.Stop
}

func (b *policyBackOff) NextBackOff() time.Duration {
	return b.next
}

// record applies the policy to a failed attempt; errors that must not be
// retried come back marked permanent
func (b *policyBackOff) record(err error) error {
	b.attempt++
	retry, delay := b.policy.Decide(b.attempt, err)
	if !retry {
		b.next = backoff.Stop
		return backoff.Permanent(err)
	}
	b.next = delay
	return err
}

// withRetry runs operation until it succeeds, fails with an error the policy
// does not retry, runs out of attempts or ctx is done
func withRetry(ctx context.Context, policy RetryPolicy, logger coreport.Logger, name string, operation func() error) error {
	b := newPolicyBackOff(policy)

	return backoff.RetryNotify(
		func() error {
			if err := operation(); err != nil {
				return b.record(err)
			}
			return nil
		},
		backoff.WithContext(b, ctx),
		func(err error, wait time.Duration) {
			logger.Warn("Database connection refused, retrying", map[string]any{
				"operation":    name,
				"attempt":      b.attempt,
				"max_attempts": policy.MaxAttempts,
				"retry_after":  wait.String(),
				"error":        err.Error(),
			})
		},
	)
}
