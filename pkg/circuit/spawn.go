package circuit

import (
	"context"

	"github.com/ib-77/intcode/pkg/intcode"
)

type spawnConfig struct {
	hangup bool
}

type SpawnOption func(*spawnConfig)

type closer interface {
	Close()
}

// ExpectHangup classifies a closed link as an expected stop.
func ExpectHangup() SpawnOption {
	return func(c *spawnConfig) { c.hangup = true }
}

// Spawn runs m on its own goroutine. When Run returns, the machine's link
// endpoints are closed, as if the engine were dropped: its output link
// reads as closed once drained and later sends to its input fail. The
// returned channel yields exactly one result.
func Spawn(ctx context.Context, m *intcode.Machine, opts ...SpawnOption) <-chan Result[Exit] {
	cfg := spawnConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make(chan Result[Exit], 1)
	go func() {
		defer close(out)

		err := m.Run(ctx)
		if c, ok := m.Output().(closer); ok {
			c.Close()
		}
		if c, ok := m.Input().(closer); ok {
			c.Close()
		}
		out <- Classify(m, err, cfg.hangup)
	}()

	return out
}

// Wait blocks for a spawned machine's result.
func Wait(ctx context.Context, exit <-chan Result[Exit]) Result[Exit] {
	select {
	case r := <-exit:
		return r
	case <-ctx.Done():
		return Cancel[Exit](ctx.Err())
	}
}
