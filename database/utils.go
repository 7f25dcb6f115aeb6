package database

import (
	"context"
	"time"
)

// Timeouts for repository calls that are not bounded by a request context
const (
	// ShortTimeout for single-document operations
	ShortTimeout = 5 * time.Second

	// MediumTimeout for multi-document queries and index builds
	MediumTimeout = 10 * time.Second
)

// ContextWithTimeout creates a context with timeout and cancel function
func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// WithShortTimeout creates a context with ShortTimeout (5 seconds)
func WithShortTimeout() (context.Context, context.CancelFunc) {
	return ContextWithTimeout(ShortTimeout)
}

// WithMediumTimeout creates a context with MediumTimeout (10 seconds)
func WithMediumTimeout() (context.Context, context.CancelFunc) {
	return ContextWithTimeout(MediumTimeout)
}

// boundedContext adds MediumTimeout to ctx unless it already has a deadline
func boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, MediumTimeout)
}
