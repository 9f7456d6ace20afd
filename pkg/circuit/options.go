package circuit

import (
	"context"
	"log/slog"

	"github.com/ib-77/intcode/pkg/intcode"
)

type OptionKey string

const (
	WorkerOptionKey OptionKey = "worker_options"
	LoggerOptionKey OptionKey = "logger_options"
	MemoryOptionKey OptionKey = "memory_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// WithWorkers sets how many topologies MaxSignal evaluates at once.
func WithWorkers(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func Workers(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

// WithLogger attaches the logger used by circuits and the machines they
// build.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerOptionKey, log)
}

func Logger(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(LoggerOptionKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// WithMemoryLimit caps the memory of every machine a circuit builds. As for
// intcode.WithMemoryLimit, 0 leaves only the platform's int range as bound.
func WithMemoryLimit(ctx context.Context, cells int64) context.Context {
	return context.WithValue(ctx, MemoryOptionKey, cells)
}

// MemoryLimit returns the limit set with WithMemoryLimit, or
// intcode.DefaultMemoryLimit when there is none.
func MemoryLimit(ctx context.Context) int64 {
	if cells, ok := ctx.Value(MemoryOptionKey).(int64); ok {
		return cells
	}
	return intcode.DefaultMemoryLimit
}

// machineOptions carries the context's settings over to a new machine.
func machineOptions(ctx context.Context, opts ...intcode.Option) []intcode.Option {
	return append([]intcode.Option{
		intcode.WithLogger(Logger(ctx)),
		intcode.WithMemoryLimit(MemoryLimit(ctx)),
	}, opts...)
}
