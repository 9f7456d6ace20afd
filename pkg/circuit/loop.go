package circuit

import (
	"context"
	"errors"
	"fmt"

	"github.com/ib-77/intcode/pkg/intcode"
)

// ErrStop is returned by a Controller to end its loop.
var ErrStop = errors.New("controller stopped")

// ErrShortFrame reports that the engine exited in the middle of a frame.
var ErrShortFrame = errors.New("engine output ended inside a frame")

// Commands is the controller's side of the command link.
type Commands interface {
	Send(v int64) error
}

// Controller reacts to the readings of one engine. Frame is the number of
// output values grouped into a single reading.
type Controller interface {
	Frame() int
	Start(ctx context.Context, cmd Commands) error
	React(ctx context.Context, reading []int64, cmd Commands) error
}

// Loop wires m to c and runs the engine on its own goroutine while the
// controller runs on the caller's. The loop ends when the engine stops
// producing readings or the controller returns ErrStop; closing the command
// link to stop a waiting engine counts as an expected stop. Commands sent
// after the engine exited are dropped.
func Loop(ctx context.Context, m *intcode.Machine, c Controller) Result[Exit] {
	cmdTx, cmdRx := intcode.NewLink()
	readTx, readRx := intcode.NewLink()
	if err := m.BindInput(cmdRx); err != nil {
		return Fail[Exit](err)
	}
	if err := m.BindOutput(readTx); err != nil {
		return Fail[Exit](err)
	}

	log := Logger(ctx).With("engine", m.ID().String())
	exit := Spawn(ctx, m, ExpectHangup())

	cerr := drive(ctx, c, commands{tx: cmdTx}, readRx)
	cmdTx.Close()
	readRx.Close()

	r := <-exit
	log.Debug("Loop finished.", "controller", cerr, "engine", r.Err())

	switch {
	case cerr == nil || errors.Is(cerr, ErrStop):
		return r
	case IsCancellationError(cerr):
		return Cancel[Exit](cerr)
	case r.IsFailure():
		return Fail[Exit](errors.Join(cerr, r.Err()))
	}
	return Fail[Exit](cerr)
}

// commands drops sends once the engine has exited. The engine's remaining
// readings are still delivered to the controller.
type commands struct {
	tx *intcode.Sender
}

func (c commands) Send(v int64) error {
	if err := c.tx.Send(v); err != nil && !errors.Is(err, intcode.ErrClosed) {
		return err
	}
	return nil
}

func drive(ctx context.Context, c Controller, cmd Commands, readings *intcode.Receiver) error {
	size := c.Frame()
	if size < 1 {
		return fmt.Errorf("invalid frame size %d", size)
	}
	if err := c.Start(ctx, cmd); err != nil {
		return err
	}

	frame := make([]int64, size)
	for {
		for i := range frame {
			v, err := readings.Recv(ctx)
			if errors.Is(err, intcode.ErrClosed) {
				if i == 0 {
					return nil
				}
				return ErrShortFrame
			}
			if err != nil {
				return err
			}
			frame[i] = v
		}

		if err := c.React(ctx, frame, cmd); err != nil {
			return err
		}
	}
}
