package circuit

import (
	"context"
	"sync"
)

// Locomotive pulls inputs, runs engine on each and forwards the outcome
// until the input closes or ctx ends.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan Result[In], outCh chan<- Result[Out],
	engine func(ctx context.Context, input Result[In]) <-chan Result[Out], wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				return
			case pr, running := <-engine(ctx, in):
				if !running {
					return
				}

				select {
				case <-ctx.Done():
					return
				case outCh <- pr:
				}
			}
		}
	}
}

// Turnout runs lines locomotives over one input channel and merges their
// outcomes.
func Turnout[In, Out any](ctx context.Context, inputCh <-chan Result[In],
	engine func(ctx context.Context, input Result[In]) <-chan Result[Out],
	lines int) <-chan Result[Out] {

	if lines < 1 {
		lines = 1
	}

	out := make(chan Result[Out])
	wg := &sync.WaitGroup{}

	for i := 0; i < lines; i++ {
		wg.Add(1)
		go Locomotive(ctx, inputCh, out, engine, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
