package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain.
// The claim gate depends on it so calendar-day boundaries can be pinned in tests.
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
	// WithTimeout returns a context that is canceled after the given timeout
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
