package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ib-77/intcode/pkg/robots"
)

// Glyph draws one cell value.
type Glyph struct {
	Rune  string
	Style lipgloss.Style
}

// Palettes for the robots' grids.
var (
	HullPalette = map[int64]Glyph{
		robots.Black: {Rune: " ", Style: plain},
		robots.White: {Rune: "█", Style: plain},
	}
	ArcadePalette = map[int64]Glyph{
		robots.Empty:  {Rune: " ", Style: plain},
		robots.Wall:   {Rune: "█", Style: faint},
		robots.Block:  {Rune: "#", Style: accent},
		robots.Paddle: {Rune: "=", Style: bold},
		robots.Ball:   {Rune: "o", Style: warn},
	}
	AreaPalette = map[int64]Glyph{
		robots.Unknown: {Rune: " ", Style: plain},
		robots.Open:    {Rune: ".", Style: muted},
		robots.Blocked: {Rune: "#", Style: faint},
		robots.Target:  {Rune: "O", Style: ok},
	}
)

// Canvas renders grid line by line. With yUp the largest y is the top
// row, otherwise the smallest. Cells missing from grid use blank.
func Canvas(grid map[robots.Point]int64, palette map[int64]Glyph, blank int64, yUp bool) string {
	if len(grid) == 0 {
		return ""
	}
	lo, hi := robots.Bounds(grid)

	lines := make([]string, 0, hi.Y-lo.Y+1)
	for y := lo.Y; y <= hi.Y; y++ {
		var sb strings.Builder
		for x := lo.X; x <= hi.X; x++ {
			v, ok := grid[robots.Point{X: x, Y: y}]
			if !ok {
				v = blank
			}
			g, ok := palette[v]
			if !ok {
				sb.WriteString("?")
				continue
			}
			sb.WriteString(g.Style.Render(g.Rune))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	if yUp {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
