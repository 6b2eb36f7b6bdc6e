// Package retry repeats failed downloads with exponential backoff.
//
// An Executor pairs an ErrorClassifier, which separates transient failures
// (connection resets, timeouts, HTTP 5xx and 429) from fatal ones, with a
// BackoffStrategy that spaces out the attempts:
//
//	executor := retry.NewExecutor(retry.NewHTTPErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetch(ctx, url)
//	})
//
// Executors are safe for concurrent use. WithOnRetry returns a copy.
package retry
