package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wss/backend/internal/domain/shared"
	"github.com/wss/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// TransactionRunner executes a unit of work touching one or more stores with
// optimistic-retry semantics. A unit of work must confine its side effects to
// a Tx begun inside the unit and finish by committing it, so a failed attempt
// leaves nothing behind and each retry starts from a clean view; no state may
// be carried over between attempts.
//
// Only CONFLICT errors are retried. Any other error propagates on the first
// attempt it occurs; exhausting the retry budget turns the last conflict into
// a RETRIES_EXHAUSTED error so callers can tell transient from permanent
// failures.
type TransactionRunner struct {
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
	metrics    *metrics.TransactionMetrics
}

// NewTransactionRunner creates a runner with the given retry budget and
// backoff between attempts. Metrics may be nil.
func NewTransactionRunner(maxRetries int, backoff time.Duration, logger *zap.Logger, m *metrics.TransactionMetrics) *TransactionRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionRunner{
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
		metrics:    m,
	}
}

// Commit runs the unit of work up to maxRetries+1 times. name labels the
// transaction in logs and metrics.
func (r *TransactionRunner) Commit(ctx context.Context, name string, unit func() error) error {
	var lastConflict error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			if r.metrics != nil {
				r.metrics.Retries.WithLabelValues(name).Inc()
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.backoff):
			}
		}

		err := unit()
		if err == nil {
			if r.metrics != nil {
				r.metrics.Committed.WithLabelValues(name).Inc()
			}
			return nil
		}
		if !errors.Is(err, shared.ErrConflict) {
			if r.metrics != nil {
				r.metrics.Failed.WithLabelValues(name).Inc()
			}
			return err
		}

		lastConflict = err
		if r.metrics != nil {
			r.metrics.Conflicts.WithLabelValues(name).Inc()
		}
		r.logger.Debug("transaction conflict, retrying",
			zap.String("transaction", name),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	if r.metrics != nil {
		r.metrics.Exhausted.WithLabelValues(name).Inc()
	}
	r.logger.Warn("transaction retry budget exhausted",
		zap.String("transaction", name),
		zap.Int("attempts", r.maxRetries+1),
		zap.Error(lastConflict),
	)
	return shared.NewDomainError(shared.CodeRetriesExhausted,
		fmt.Sprintf("Transaction %s still conflicting after %d attempts: %v", name, r.maxRetries+1, lastConflict))
}
