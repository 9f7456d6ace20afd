package intcode

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the lifecycle stage of a Machine.
type State int

const (
	Ready State = iota
	Running
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Machine is one Intcode engine. Its memory and registers are owned by the
// goroutine that calls Run; only the bound endpoints are shared.
type Machine struct {
	id     uuid.UUID
	log    *slog.Logger
	mem    *Memory
	pc     int64
	rb     int64
	input  InputSource
	output OutputSink

	mu    sync.Mutex
	state State
	fault error
}

type config struct {
	id     uuid.UUID
	log    *slog.Logger
	limit  int64
	input  InputSource
	output OutputSink
}

type Option func(*config)

func WithID(id uuid.UUID) Option {
	return func(c *config) { c.id = id }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithMemoryLimit caps memory growth; see DefaultMemoryLimit.
func WithMemoryLimit(cells int64) Option {
	return func(c *config) { c.limit = cells }
}

func WithInput(in InputSource) Option {
	return func(c *config) { c.input = in }
}

func WithOutput(out OutputSink) Option {
	return func(c *config) { c.output = out }
}

// New returns a machine whose memory is a copy of program.
func New(program []int64, opts ...Option) *Machine {
	cfg := config{limit: DefaultMemoryLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == uuid.Nil {
		cfg.id = uuid.New()
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}

	return &Machine{
		id:     cfg.id,
		log:    cfg.log.With("engine", cfg.id.String()),
		mem:    NewMemory(program, cfg.limit),
		input:  cfg.input,
		output: cfg.output,
	}
}

func (m *Machine) ID() uuid.UUID { return m.id }

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the fault that stopped the machine, if any.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fault
}

func (m *Machine) PC() int64 { return m.pc }

func (m *Machine) RelativeBase() int64 { return m.rb }

// Get reads memory. It must not be called while Run is in progress.
func (m *Machine) Get(address int64) (int64, error) {
	return m.mem.Get(address)
}

// Set writes memory. It must not be called while Run is in progress.
func (m *Machine) Set(address, value int64) error {
	return m.mem.Set(address, value)
}

// Snapshot copies the current memory.
func (m *Machine) Snapshot() []int64 {
	return m.mem.Snapshot()
}

// BindInput attaches the input source. Binding is one-shot and only allowed
// before Run.
func (m *Machine) BindInput(in InputSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Ready || m.input != nil {
		return ErrBound
	}
	m.input = in
	return nil
}

// BindOutput attaches the output sink under the same rules as BindInput.
func (m *Machine) BindOutput(out OutputSink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Ready || m.output != nil {
		return ErrBound
	}
	m.output = out
	return nil
}

// Input returns the bound input source, nil if the machine uses the console.
func (m *Machine) Input() InputSource { return m.input }

// Output returns the bound output sink, nil if the machine uses the console.
func (m *Machine) Output() OutputSink { return m.output }

// Run executes until the program halts or faults. A halted machine returns
// nil again; a faulted one returns its fault again.
func (m *Machine) Run(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case Running:
		m.mu.Unlock()
		return ErrRunning
	case Halted:
		m.mu.Unlock()
		return nil
	case Faulted:
		err := m.fault
		m.mu.Unlock()
		return err
	}
	m.state = Running
	if m.input == nil {
		m.input = DefaultConsole()
	}
	if m.output == nil {
		m.output = DefaultConsole()
	}
	m.mu.Unlock()

	m.log.Debug("Engine started.", "cells", m.mem.Len())
	err := m.loop(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = Faulted
		m.fault = err
		m.log.Debug("Engine faulted.", "err", err)
		return err
	}
	m.state = Halted
	m.log.Debug("Engine halted.", "pc", m.pc)
	return nil
}

func (m *Machine) loop(ctx context.Context) error {
	for {
		at := m.pc
		ins, err := m.fetch()
		if err != nil {
			return &Fault{PC: at, Err: err}
		}
		halted, err := m.step(ctx, ins)
		if err != nil {
			return &Fault{PC: at, Op: ins.Op, Err: err}
		}
		if halted {
			return nil
		}
	}
}

func (m *Machine) fetch() (Instruction, error) {
	v, err := m.immediate()
	if err != nil {
		return Instruction{}, err
	}
	return Decode(v), nil
}

func (m *Machine) step(ctx context.Context, ins Instruction) (bool, error) {
	if !ins.Recognized() {
		return false, &UnrecognizedOpcodeError{Instruction: ins}
	}

	switch ins.Op {
	case OpAdd, OpMultiply, OpLessThan, OpEquals:
		a, err := m.read(ins.Modes[0])
		if err != nil {
			return false, err
		}
		b, err := m.read(ins.Modes[1])
		if err != nil {
			return false, err
		}
		return false, m.write(ins.Modes[2], arith(ins.Op, a, b))

	case OpInput:
		v, err := m.input.Input(ctx)
		if err != nil {
			return false, &InputError{Err: err}
		}
		return false, m.write(ins.Modes[0], v)

	case OpOutput:
		v, err := m.read(ins.Modes[0])
		if err != nil {
			return false, err
		}
		if err := m.output.Output(ctx, v); err != nil {
			return false, &OutputError{Err: err}
		}
		return false, nil

	case OpJumpIfTrue, OpJumpIfFalse:
		cond, err := m.read(ins.Modes[0])
		if err != nil {
			return false, err
		}
		target, err := m.read(ins.Modes[1])
		if err != nil {
			return false, err
		}
		if (cond != 0) == (ins.Op == OpJumpIfTrue) {
			return false, m.jump(target)
		}
		return false, nil

	case OpAdjustBase:
		offset, err := m.read(ins.Modes[0])
		if err != nil {
			return false, err
		}
		base := m.rb + offset
		if base < 0 {
			return false, &OutOfBoundsError{Address: base}
		}
		m.rb = base
		return false, nil

	case OpHalt:
		return true, nil
	}

	return false, &UnrecognizedOpcodeError{Instruction: ins}
}

func arith(op Opcode, a, b int64) int64 {
	switch op {
	case OpAdd:
		return a + b
	case OpMultiply:
		return a * b
	case OpLessThan:
		if a < b {
			return 1
		}
	case OpEquals:
		if a == b {
			return 1
		}
	}
	return 0
}

func (m *Machine) jump(target int64) error {
	if _, err := m.mem.index(target); err != nil {
		return err
	}
	m.pc = target
	return nil
}

// immediate consumes the word at pc.
func (m *Machine) immediate() (int64, error) {
	v, err := m.mem.Get(m.pc)
	if err != nil {
		return 0, err
	}
	m.pc++
	return v, nil
}

func (m *Machine) read(mode Mode) (int64, error) {
	switch mode {
	case Immediate:
		return m.immediate()
	case Position, Relative:
		addr, err := m.address(mode)
		if err != nil {
			return 0, err
		}
		return m.mem.Get(addr)
	}
	return 0, &UnrecognizedParameterModeError{Mode: mode}
}

func (m *Machine) write(mode Mode, value int64) error {
	if mode == Immediate {
		return &UnrecognizedParameterModeError{Mode: mode}
	}
	addr, err := m.address(mode)
	if err != nil {
		return err
	}
	return m.mem.Set(addr, value)
}

// address consumes one parameter and resolves it for position or relative
// mode.
func (m *Machine) address(mode Mode) (int64, error) {
	v, err := m.immediate()
	if err != nil {
		return 0, err
	}
	switch mode {
	case Position:
		return v, nil
	case Relative:
		return m.rb + v, nil
	}
	return 0, &UnrecognizedParameterModeError{Mode: mode}
}

// ErrorKind names the class of a runtime or parse error for reporting.
func ErrorKind(err error) string {
	var (
		pe *ParseError
		ob *OutOfBoundsError
		uo *UnrecognizedOpcodeError
		um *UnrecognizedParameterModeError
		ie *InputError
		oe *OutputError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &pe):
		return "ParseError"
	case errors.As(err, &ob):
		return "OutOfBounds"
	case errors.As(err, &uo):
		return "UnrecognizedOpcode"
	case errors.As(err, &um):
		return "UnrecognizedParameterMode"
	case errors.As(err, &ie):
		return "InputError"
	case errors.As(err, &oe):
		return "OutputError"
	}
	return "Error"
}
