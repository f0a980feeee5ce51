package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight collapses concurrent calls for one key into a single call
// whose result every caller receives.
type SingleFlight[T any] struct {
	group singleflight.Group
}

// Do reports shared=true when the result came from another caller's call.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	out, _ := v.(T)
	return out, err, shared
}

// DoContext is Do that stops waiting once ctx is done. The shared call keeps
// running for the remaining callers, so fn must not depend on any single
// caller's cancellation.
func (g *SingleFlight[T]) DoContext(ctx context.Context, key string, fn func() (T, error)) (T, error, bool) {
	ch := g.group.DoChan(key, func() (any, error) {
		return fn()
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), false
	case res := <-ch:
		out, _ := res.Val.(T)
		return out, res.Err, res.Shared
	}
}

// Forget drops an in-flight key so the next call starts fresh.
func (g *SingleFlight[T]) Forget(key string) {
	g.group.Forget(key)
}
