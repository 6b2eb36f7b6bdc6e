package scriptfs

import "time"

// ErrorClassifier decides whether a failed download attempt is worth repeating.
type ErrorClassifier interface {
	// IsTransient reports whether err is temporary (network hiccup, 5xx, 429).
	IsTransient(err error) bool
}

// BackoffStrategy spaces out repeated download attempts.
type BackoffStrategy interface {
	// NextDelay is the wait before retry number attempt (zero-based).
	NextDelay(attempt int) time.Duration

	// MaxAttempts caps the number of retries; 0 disables retrying and a
	// negative value retries until the context ends.
	MaxAttempts() int
}
