package retry

import (
	"context"
	"time"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// RetryFunc observes each retry before its delay starts.
type RetryFunc func(attempt int, err error, delay time.Duration)

// Executor runs an operation until it succeeds, fails fatally, exhausts the
// retry budget or the context ends.
type Executor struct {
	classifier scriptfs.ErrorClassifier
	strategy   scriptfs.BackoffStrategy
	onRetry    RetryFunc
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier scriptfs.ErrorClassifier, strategy scriptfs.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		sleep:      sleepContext,
	}
}

// WithOnRetry returns a copy of e that calls fn before every retry.
func (e *Executor) WithOnRetry(fn RetryFunc) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute runs op. The returned error is the last attempt's error, or the
// context's error if it ended while waiting.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	limit := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if limit >= 0 && attempt >= limit {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}

		err = op(ctx)
	}

	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
