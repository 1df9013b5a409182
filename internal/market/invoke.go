package market

import (
	"context"

	"marketfetcher/internal/fetcher"
)

// Callback receives the outcome of a call exactly once: (nil, result) on success or
// (err, zero value) on failure
type Callback[T any] func(err error, result T)

// Pending is an in-flight call. It settles exactly once
type Pending[T any] struct {
	done   chan struct{}
	result fetcher.Result[T]
}

// Done is closed once the call has settled
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call settles or ctx is done, whichever comes first.
// An expired ctx does not cancel the call; the context passed to the endpoint method does
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.result.Value, p.result.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the settled outcome. It blocks until Done is closed
func (p *Pending[T]) Result() fetcher.Result[T] {
	<-p.done
	return p.result
}

// start runs op on its own goroutine and returns the Pending that will hold its result
func start[T any](ctx context.Context, key string, op func(context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		v, err := op(ctx)
		if err != nil {
			p.result = fetcher.Failure[T](key, err)
			return
		}
		p.result = fetcher.Success(key, v)
	}()
	return p
}

// invoke is the single adapter behind every endpoint method. Parameters are validated
// by the caller before invoke is reached, so no I/O happens for a malformed call.
// With a callback the result is delivered through it and nil is returned; otherwise
// the caller gets the Pending
func invoke[T any](ctx context.Context, key string, cb Callback[T], op func(context.Context) (T, error)) *Pending[T] {
	p := start(ctx, key, op)
	if cb == nil {
		return p
	}

	go func() {
		r := p.Result()
		cb(r.Err, r.Value)
	}()
	return nil
}
