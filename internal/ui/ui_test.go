package ui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ib-77/intcode/pkg/robots"
)

func TestMain(m *testing.M) {
	Plain()
	os.Exit(m.Run())
}

func TestCanvas_Hull(t *testing.T) {
	grid := map[robots.Point]int64{
		{X: 0, Y: 1}:  robots.White,
		{X: 1, Y: 0}:  robots.White,
		{X: 0, Y: 0}:  robots.Black,
		{X: 2, Y: -1}: robots.White,
	}

	got := Canvas(grid, HullPalette, robots.Black, true)
	assert.Equal(t, "█\n █\n  █", got)
}

func TestCanvas_Screen(t *testing.T) {
	grid := map[robots.Point]int64{
		{X: 0, Y: 0}: robots.Wall,
		{X: 1, Y: 0}: robots.Block,
		{X: 2, Y: 1}: robots.Ball,
		{X: 0, Y: 2}: 9,
	}

	got := Canvas(grid, ArcadePalette, robots.Empty, false)
	assert.Equal(t, "█#\n  o\n?", got)
}

func TestCanvas_Empty(t *testing.T) {
	assert.Empty(t, Canvas(nil, HullPalette, robots.Black, true))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "✓ done 3", SuccessMsg("done %d", 3))
	assert.Equal(t, "✗ failed", ErrorMsg("failed"))
	assert.Equal(t, "a:    1\nlong: 2\n", KeyValues("", KV("a", "1"), KV("long", "2")))
}

func TestTable(t *testing.T) {
	got := Table([]string{"Phases", "Signal"}, [][]string{{"4,3,2,1,0", "43210"}})
	assert.Contains(t, got, "Phases")
	assert.Contains(t, got, "4,3,2,1,0")
	assert.Contains(t, got, "╭")
	assert.Equal(t, "! 2 blocks left", WarnMsg("%d blocks left", 2))
}
