package circuit

import (
	"context"
	"slices"

	"github.com/ib-77/intcode/pkg/intcode"
)

// Batch describes a run to completion on the caller's goroutine.
type Batch struct {
	// Patches are applied to memory before the run.
	Patches map[int64]int64
	// Inputs feed the input instructions; running out is an input fault.
	Inputs []int64
	// Console falls back to the interactive console instead of Inputs and
	// collected outputs.
	Console bool
	// MemoryLimit, when non-zero, overrides the context's MemoryLimit.
	MemoryLimit int64
}

type BatchResult struct {
	Outputs []int64
	Memory  []int64
	Exit    Exit
}

// RunBatch runs program once and returns what it printed and its final
// memory. The result is filled in even when the run faults.
func RunBatch(ctx context.Context, program []int64, b Batch) (BatchResult, error) {
	opts := machineOptions(ctx)
	if b.MemoryLimit != 0 {
		opts = append(opts, intcode.WithMemoryLimit(b.MemoryLimit))
	}

	out := &intcode.Collector{}
	if !b.Console {
		opts = append(opts,
			intcode.WithInput(intcode.NewValues(b.Inputs...)),
			intcode.WithOutput(out))
	}

	m := intcode.New(program, opts...)

	addrs := make([]int64, 0, len(b.Patches))
	for a := range b.Patches {
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)
	for _, a := range addrs {
		if err := m.Set(a, b.Patches[a]); err != nil {
			return BatchResult{}, err
		}
	}

	err := m.Run(ctx)
	res := BatchResult{
		Outputs: out.Values(),
		Memory:  m.Snapshot(),
		Exit:    Exit{Engine: m.ID(), State: m.State(), PC: m.PC()},
	}
	if err != nil {
		Logger(ctx).Debug("Batch run faulted.", "err", err)
	}
	return res, err
}
