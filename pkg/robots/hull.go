package robots

import (
	"context"
	"fmt"

	"github.com/ib-77/intcode/pkg/circuit"
	"github.com/ib-77/intcode/pkg/intcode"
)

const (
	Black int64 = 0
	White int64 = 1
)

// HullPainter is the controller of the painting robot. Each reading is a
// colour to paint and a turn; each command is the colour under the robot.
type HullPainter struct {
	Panels map[Point]int64

	pos   Point
	dir   Direction
	start int64
}

func NewHullPainter(start int64) *HullPainter {
	return &HullPainter{Panels: map[Point]int64{}, start: start}
}

func (h *HullPainter) Frame() int { return 2 }

func (h *HullPainter) Start(_ context.Context, cmd circuit.Commands) error {
	return cmd.Send(h.start)
}

func (h *HullPainter) React(_ context.Context, reading []int64, cmd circuit.Commands) error {
	color, turn := reading[0], reading[1]
	if turn != 0 && turn != 1 {
		return fmt.Errorf("invalid turn %d", turn)
	}

	h.Panels[h.pos] = color
	h.dir = h.dir.Turn(turn)
	h.pos = h.dir.Step(h.pos)

	return cmd.Send(h.color(h.pos))
}

func (h *HullPainter) color(p Point) int64 {
	if c, ok := h.Panels[p]; ok {
		return c
	}
	if p == (Point{}) {
		return h.start
	}
	return Black
}

// Paint runs the robot program and returns every panel painted at least
// once.
func Paint(ctx context.Context, program []int64, start int64, opts ...intcode.Option) (map[Point]int64, error) {
	h := NewHullPainter(start)
	r := circuit.Loop(ctx, intcode.New(program, opts...), h)
	if !r.IsFinished() {
		return h.Panels, r.Err()
	}
	return h.Panels, nil
}
