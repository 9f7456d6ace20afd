package intcode

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrClosed reports that the peer of a link went away. An engine blocked
	// on input sees it once every sender is closed and the queue is empty.
	ErrClosed = errors.New("link closed")

	ErrRunning = errors.New("machine is already running")
	ErrBound   = errors.New("machine endpoint already bound or machine started")
)

type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse program at offset %d: %s", e.Offset, e.Reason)
}

type OutOfBoundsError struct {
	Address int64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("attempted to access out of bounds memory %d", e.Address)
}

type UnrecognizedOpcodeError struct {
	Instruction Instruction
}

func (e *UnrecognizedOpcodeError) Error() string {
	m := e.Instruction.Modes
	return fmt.Sprintf("unrecognized opcode %d, with parameter modes %d, %d, %d",
		int64(e.Instruction.Op), m[0], m[1], m[2])
}

type UnrecognizedParameterModeError struct {
	Mode Mode
}

func (e *UnrecognizedParameterModeError) Error() string {
	return fmt.Sprintf("unrecognized parameter mode %d", int64(e.Mode))
}

// InputError wraps the cause of a failed input instruction: ErrClosed when
// the link's senders are gone, a context error, or a console failure.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return "error reading input: " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// Closed reports whether the input failed because the peer disconnected.
func (e *InputError) Closed() bool { return errors.Is(e.Err, ErrClosed) }

type OutputError struct {
	Err error
}

func (e *OutputError) Error() string {
	return "error writing output: " + e.Err.Error()
}

func (e *OutputError) Unwrap() error { return e.Err }

func (e *OutputError) Closed() bool { return errors.Is(e.Err, ErrClosed) }

// Fault is what Run returns for every runtime error. It records where the
// engine stopped; the kind error is reachable through errors.As.
type Fault struct {
	PC  int64
	Op  Opcode
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at %d (%s): %v", f.PC, f.Op, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// IsClosed reports whether err is the disconnection of a link.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsInputClosed reports whether err is an input instruction that found its
// link closed. Topologies that stop engines by hanging up use it to tell an
// expected shutdown from a genuine fault.
func IsInputClosed(err error) bool {
	var ie *InputError
	return errors.As(err, &ie) && ie.Closed()
}

// IsCanceled reports whether err was caused by context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
