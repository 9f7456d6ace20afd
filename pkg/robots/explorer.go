package robots

import (
	"context"
	"fmt"

	"github.com/ib-77/intcode/pkg/circuit"
	"github.com/ib-77/intcode/pkg/intcode"
)

// Cells of the explored area.
const (
	Unknown int64 = iota - 1
	Open
	Blocked
	Target
)

// Droid replies to a move command.
const (
	HitWall int64 = 0
	Moved   int64 = 1
	Found   int64 = 2
)

// move commands, in the droid's numbering
var moves = []struct {
	cmd  int64
	back int64
	dir  Direction
}{
	{cmd: 1, back: 2, dir: Up},
	{cmd: 2, back: 1, dir: Down},
	{cmd: 3, back: 4, dir: Left},
	{cmd: 4, back: 3, dir: Right},
}

// Asker sends one move command and waits for the reply.
type Asker interface {
	Ask(ctx context.Context, cmd int64) (int64, error)
}

// Explorer maps the area around the repair droid by walking every reachable
// cell depth first.
type Explorer struct {
	Area   map[Point]int64
	Target *Point
}

func NewExplorer() *Explorer {
	return &Explorer{Area: map[Point]int64{{}: Open}}
}

// Cell returns what is known about p.
func (e *Explorer) Cell(p Point) int64 {
	if c, ok := e.Area[p]; ok {
		return c
	}
	return Unknown
}

// Walk explores from the droid's current position, which is taken to be
// the origin, and brings the droid back there.
func (e *Explorer) Walk(ctx context.Context, droid Asker) error {
	return e.walk(ctx, droid, Point{})
}

func (e *Explorer) walk(ctx context.Context, droid Asker, at Point) error {
	for _, mv := range moves {
		next := mv.dir.Step(at)
		if _, seen := e.Area[next]; seen {
			continue
		}

		reply, err := droid.Ask(ctx, mv.cmd)
		if err != nil {
			return err
		}

		switch reply {
		case HitWall:
			e.Area[next] = Blocked
			continue
		case Moved:
			e.Area[next] = Open
		case Found:
			e.Area[next] = Target
			e.Target = &next
		default:
			return fmt.Errorf("unexpected droid reply %d", reply)
		}

		if err := e.walk(ctx, droid, next); err != nil {
			return err
		}

		reply, err = droid.Ask(ctx, mv.back)
		if err != nil {
			return err
		}
		if reply == HitWall {
			return fmt.Errorf("droid could not step back to %v", at)
		}
	}
	return nil
}

// Explore runs the droid program, maps everything it can reach and hangs
// up. The droid left waiting for a command is an expected stop.
func Explore(ctx context.Context, program []int64, opts ...intcode.Option) (*Explorer, error) {
	s, err := circuit.Open(ctx, intcode.New(program, opts...))
	if err != nil {
		return nil, err
	}

	e := NewExplorer()
	werr := e.Walk(ctx, s)
	r := s.Close()

	if werr != nil {
		return e, werr
	}
	if !r.IsFinished() {
		return e, r.Err()
	}
	return e, nil
}
