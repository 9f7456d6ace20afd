package circuit

import (
	"context"
	"sync"
)

// ToChanMany streams values as successful results until ctx ends.
func ToChanMany[T any](ctx context.Context, values []T) <-chan Result[T] {
	in := make(chan Result[T])

	go func() {
		defer close(in)

		for _, v := range values {
			select {
			case in <- Success(v):
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// FromChanMany collects everything from out until it closes or ctx ends.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)
	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			select {
			case v, ok := <-out:
				if !ok {
					return
				}
				res = append(res, v)
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return res
}
