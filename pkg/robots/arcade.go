package robots

import (
	"context"

	"github.com/ib-77/intcode/pkg/circuit"
	"github.com/ib-77/intcode/pkg/intcode"
)

// Tile ids drawn by the arcade cabinet.
const (
	Empty  int64 = 0
	Wall   int64 = 1
	Block  int64 = 2
	Paddle int64 = 3
	Ball   int64 = 4
)

// scorePos is where the cabinet reports the score instead of a tile.
var scorePos = Point{X: -1, Y: 0}

// Arcade tracks the cabinet's screen and steers the paddle towards the
// ball. Each reading is an x, y, tile triple.
type Arcade struct {
	Screen map[Point]int64
	Score  int64

	// OnDraw, when set, observes every screen update.
	OnDraw func(p Point, tile int64)

	paddle    int64
	hasPaddle bool
}

func NewArcade() *Arcade {
	return &Arcade{Screen: map[Point]int64{}}
}

func (a *Arcade) Frame() int { return 3 }

func (a *Arcade) Start(context.Context, circuit.Commands) error { return nil }

func (a *Arcade) React(_ context.Context, reading []int64, cmd circuit.Commands) error {
	p, tile := Point{X: reading[0], Y: reading[1]}, reading[2]
	if p == scorePos {
		a.Score = tile
		if a.OnDraw != nil {
			a.OnDraw(p, tile)
		}
		return nil
	}

	a.Screen[p] = tile
	if a.OnDraw != nil {
		a.OnDraw(p, tile)
	}

	switch tile {
	case Paddle:
		a.paddle, a.hasPaddle = p.X, true
	case Ball:
		// the cabinet asks for the joystick once per ball move
		if !a.hasPaddle {
			return cmd.Send(0)
		}
		return cmd.Send(sign(p.X - a.paddle))
	}
	return nil
}

// Count returns how many tiles of the given id are on screen.
func (a *Arcade) Count(tile int64) int {
	n := 0
	for _, t := range a.Screen {
		if t == tile {
			n++
		}
	}
	return n
}

func sign(v int64) int64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Play runs the cabinet with the given number of quarters inserted (0 keeps
// the program's own setting) until the game ends.
func Play(ctx context.Context, program []int64, quarters int64, a *Arcade, opts ...intcode.Option) error {
	m := intcode.New(program, opts...)
	if quarters > 0 {
		if err := m.Set(0, quarters); err != nil {
			return err
		}
	}

	r := circuit.Loop(ctx, m, a)
	if !r.IsFinished() {
		return r.Err()
	}
	return nil
}

// CountTiles runs the cabinet without a player and counts the tiles of the
// given id left on screen.
func CountTiles(ctx context.Context, program []int64, tile int64) (int, error) {
	res, err := circuit.RunBatch(ctx, program, circuit.Batch{})
	if err != nil {
		return 0, err
	}
	if len(res.Outputs)%3 != 0 {
		return 0, circuit.ErrShortFrame
	}

	screen := map[Point]int64{}
	for i := 0; i < len(res.Outputs); i += 3 {
		p := Point{X: res.Outputs[i], Y: res.Outputs[i+1]}
		if p == scorePos {
			continue
		}
		screen[p] = res.Outputs[i+2]
	}

	n := 0
	for _, t := range screen {
		if t == tile {
			n++
		}
	}
	return n, nil
}
