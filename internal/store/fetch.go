package store

import "context"

// Fetch is a single-assignment asynchronous cell: one remote read that is
// either pending or resolved. Many consumers may hold the same Fetch; all of
// them observe the same outcome. A Fetch never transitions back to pending:
// refreshing a key produces a new Fetch, and readers holding the old one keep
// seeing its (possibly stale) result.
type Fetch[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFetch[T any]() *Fetch[T] {
	return &Fetch[T]{done: make(chan struct{})}
}

// resolve completes the fetch. Must be called exactly once.
func (f *Fetch[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Await blocks until the fetch resolves or ctx is done. Cancellation abandons
// this waiter only; the underlying request always runs to completion.
func (f *Fetch[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Resolved reports whether the fetch has completed (successfully or not).
func (f *Fetch[T]) Resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Failed reports whether the fetch resolved with an error.
func (f *Fetch[T]) Failed() bool {
	return f.Resolved() && f.err != nil
}
