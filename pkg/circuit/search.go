package circuit

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
)

// Signal is the output of one phase ordering.
type Signal struct {
	Phases []int64
	Value  int64
}

// Permutations returns every ordering of values.
func Permutations(values []int64) [][]int64 {
	var out [][]int64
	current := slices.Clone(values)

	var permute func(k int)
	permute = func(k int) {
		if k == len(current) {
			out = append(out, slices.Clone(current))
			return
		}
		for i := k; i < len(current); i++ {
			current[k], current[i] = current[i], current[k]
			permute(k + 1)
			current[k], current[i] = current[i], current[k]
		}
	}
	permute(0)

	return out
}

// MaxSignal tries every ordering of phases and returns the one with the
// largest output. Orderings are evaluated concurrently by Workers(ctx)
// workers; any failing ordering fails the search.
func MaxSignal(ctx context.Context, program []int64, phases []int64, feedback bool) (Signal, error) {
	if len(phases) == 0 {
		return Signal{}, ErrNoPhases
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := Workers(ctx, runtime.NumCPU())
	evaluate := func(ctx context.Context, input Result[[]int64]) <-chan Result[Signal] {
		out := make(chan Result[Signal], 1)
		go func() {
			defer close(out)

			order := input.Result()
			var (
				v   int64
				err error
			)
			if feedback {
				v, err = Ring(ctx, program, order, 0)
			} else {
				v, err = Chain(ctx, program, order, 0)
			}
			switch {
			case err == nil:
				out <- Success(Signal{Phases: order, Value: v})
			case IsCancellationError(err):
				out <- Cancel[Signal](err)
			default:
				out <- Fail[Signal](fmt.Errorf("phases %v: %w", order, err))
			}
		}()
		return out
	}

	results := FromChanMany(ctx, Turnout(ctx, ToChanMany(ctx, Permutations(phases)), evaluate, lines))

	var (
		best  Signal
		found bool
		errs  []error
	)
	for _, r := range results {
		if !r.IsSuccess() {
			errs = append(errs, r.Err())
			continue
		}
		s := r.Result()
		if !found || s.Value > best.Value {
			best, found = s, true
		}
	}

	if len(errs) > 0 {
		return Signal{}, errors.Join(errs...)
	}
	if err := ctx.Err(); err != nil {
		return Signal{}, err
	}
	if !found {
		return Signal{}, ErrNoSignal
	}
	return best, nil
}
