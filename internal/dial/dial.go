// Package dial bounds blocking driver calls with a context.
package dial

import "context"

type result[T any] struct {
	value T
	err   error
}

// Do runs create in its own goroutine and waits for it or for ctx.
//
// Drivers such as gocql open sessions without taking a context, so the call
// cannot be interrupted. When ctx ends first, Do returns ctx.Err() right away
// and release is called on the value create eventually returns, so a late
// session is never leaked.
//
// Parameters:
//   - ctx: Context bounding the wait
//   - create: Blocking constructor
//   - release: Called on a value produced after ctx ended (may be nil)
//
// Returns:
//   - T: The created value
//   - error: Error from create, or ctx.Err()
func Do[T any](ctx context.Context, create func() (T, error), release func(T)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		v, err := create()
		done <- result[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		go func() {
			r := <-done
			if r.err == nil && release != nil {
				release(r.value)
			}
		}()

		return zero, ctx.Err()
	}
}
