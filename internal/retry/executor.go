package retry

import (
	"context"
	"time"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// Executor runs an operation, retrying transient failures with backoff.
//
// Execute is safe for concurrent use. WithOnRetry returns a copy, so callers
// can attach per-goroutine callbacks without sharing state.
type Executor struct {
	classifier fsproc.ErrorClassifier
	strategy   fsproc.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor panics if classifier or strategy is nil.
func NewExecutor(classifier fsproc.ErrorClassifier, strategy fsproc.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that invokes callback before each wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithLogger returns a copy of e that reports each retry at verbose level.
func (e *Executor) WithLogger(logger fsproc.Logger, operation string) *Executor {
	return e.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("%s failed (attempt %d), retrying in %v: %v", operation, attempt+1, delay, err)
	})
}

// Execute calls operation until it succeeds, fails with a non-transient error,
// the strategy runs out of attempts, or ctx is done. It returns the last error.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	lastErr := operation(ctx)
	if lastErr == nil || !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil || !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
