package circuit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/intcode/pkg/intcode"
)

var (
	ErrNoPhases = errors.New("no phase settings")
	ErrNoSignal = errors.New("pipeline produced no signal")
)

// Chain runs one amplifier per phase setting, each feeding the next. The
// first receives its phase and seed; the result is the last value the final
// amplifier emits.
func Chain(ctx context.Context, program []int64, phases []int64, seed int64) (int64, error) {
	return amplify(ctx, program, phases, seed, false)
}

// Ring is Chain with the last amplifier's output wired back into the
// first. Every amplifier runs on its own goroutine; the result is the last
// value the final amplifier sent into the first amplifier's input link once
// all have halted.
func Ring(ctx context.Context, program []int64, phases []int64, seed int64) (int64, error) {
	return amplify(ctx, program, phases, seed, true)
}

func amplify(ctx context.Context, program []int64, phases []int64, seed int64, feedback bool) (int64, error) {
	n := len(phases)
	if n == 0 {
		return 0, ErrNoPhases
	}
	log := Logger(ctx)

	// link i is the input of amplifier i; with feedback the last amplifier
	// writes into link 0, otherwise into a dedicated result link
	senders := make([]*intcode.Sender, n+1)
	receivers := make([]*intcode.Receiver, n+1)
	for i := range senders {
		senders[i], receivers[i] = intcode.NewLink()
	}
	for i, phase := range phases {
		if err := senders[i].Send(phase); err != nil {
			return 0, err
		}
	}
	if err := senders[0].Send(seed); err != nil {
		return 0, err
	}

	last := &tap{next: senders[n]}
	if feedback {
		senders[n].Close()
		last.next = senders[0]
	}

	machines := make([]*intcode.Machine, n)
	for i := range machines {
		var out intcode.OutputSink = senders[i+1]
		if i == n-1 {
			out = last
		}
		machines[i] = intcode.New(program, machineOptions(ctx,
			intcode.WithInput(receivers[i]),
			intcode.WithOutput(out))...)
	}

	log.Debug("Starting amplifiers.", "count", n, "feedback", feedback)

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range machines {
		i, m := i, m
		g.Go(func() error {
			r := <-Spawn(gctx, m)
			if !r.IsSuccess() {
				return fmt.Errorf("amplifier %d: %w", i, r.Err())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	v, ok := last.value()
	if !ok {
		return 0, ErrNoSignal
	}
	return v, nil
}

// tap forwards the last amplifier's output and remembers the latest value.
type tap struct {
	next *intcode.Sender

	mu   sync.Mutex
	last int64
	seen bool
}

func (t *tap) Output(ctx context.Context, v int64) error {
	t.mu.Lock()
	t.last, t.seen = v, true
	t.mu.Unlock()
	// the first amplifier may already have halted in a ring
	if err := t.next.Send(v); err != nil && !errors.Is(err, intcode.ErrClosed) {
		return err
	}
	return nil
}

func (t *tap) Close() {
	t.next.Close()
}

func (t *tap) value() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.seen
}
