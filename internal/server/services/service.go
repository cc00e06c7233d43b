// Package services contains server-side business logic: the user directory
// (registration, authentication, login) and the message ledger. Services
// hold no state of their own; storage is reached through a
// RepositoryManager bound to the *sql.DB passed in at construction.
package services

import (
	"context"
	"time"
)

// withTimeout bounds a single service call. A non-positive d leaves ctx
// without a deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// timestamp normalizes t for storage: UTC at microsecond precision, which
// every supported engine round-trips exactly.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
