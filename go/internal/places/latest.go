package places

import (
	"context"
	"sync"
)

// Latest keeps only the newest lookup of one kind alive. Starting a lookup
// cancels the one before it, and a replaced lookup reports ErrSuperseded
// even if its response arrived.
type Latest struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin starts a lookup. finish releases it and reports whether it is still
// the newest.
func (l *Latest) Begin(parent context.Context) (ctx context.Context, finish func() bool) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	return ctx, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		current := l.gen == gen
		if current {
			l.cancel = nil
		}
		cancel()
		return current
	}
}

// Do runs fn as the newest lookup of l.
func Do[T any](l *Latest, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, finish := l.Begin(ctx)
	v, err := fn(ctx)
	if !finish() {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}
