// Package racex runs competing operations and keeps the first outcome.
//
// The gate fetch is raced against a timer with WithTimeout; FirstOf is the
// general form. Losers have their context cancelled and whatever they return
// afterwards is dropped, so a late result can never leak into the caller.
package racex

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when the timer settles before the operation.
	ErrTimeout = errors.New("operation timed out")

	ErrNoOperations = errors.New("no operations to race")
)

// FirstOf starts every op concurrently and returns the outcome (value or
// error) of the first one to settle. The remaining ops see their context
// cancelled. If ctx ends before any op settles, ctx.Err() is returned.
func FirstOf[T any](ctx context.Context, ops ...func(context.Context) (T, error)) (T, error) {
	var zero T
	if len(ops) == 0 {
		return zero, ErrNoOperations
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	// Buffered so that losers can always deliver and exit.
	results := make(chan outcome, len(ops))
	for _, op := range ops {
		go func(op func(context.Context) (T, error)) {
			v, err := op(ctx)
			results <- outcome{value: v, err: err}
		}(op)
	}

	select {
	case r := <-results:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Timer returns an op that fails with ErrTimeout after d.
func Timer[T any](d time.Duration) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var zero T
		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case <-t.C:
			return zero, ErrTimeout
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// WithTimeout races op against a timer of length d.
func WithTimeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	return FirstOf(ctx, op, Timer[T](d))
}
