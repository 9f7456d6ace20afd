package robots

// Point is a grid position; y grows upwards.
type Point struct {
	X, Y int64
}

// Direction is a heading on the grid.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Turn rotates left for 0 and right for 1.
func (d Direction) Turn(turn int64) Direction {
	if turn == 0 {
		return (d + 3) % 4
	}
	return (d + 1) % 4
}

func (d Direction) Step(p Point) Point {
	switch d {
	case Up:
		return Point{p.X, p.Y + 1}
	case Down:
		return Point{p.X, p.Y - 1}
	case Left:
		return Point{p.X - 1, p.Y}
	default:
		return Point{p.X + 1, p.Y}
	}
}

// Bounds returns the smallest rectangle holding every key of grid.
func Bounds[V any](grid map[Point]V) (lo, hi Point) {
	first := true
	for p := range grid {
		if first {
			lo, hi, first = p, p, false
			continue
		}
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return lo, hi
}
