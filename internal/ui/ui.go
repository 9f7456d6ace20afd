package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

var (
	plain  = lipgloss.NewStyle()
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	ok     = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	bad    = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	warn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	faint  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	bold   = lipgloss.NewStyle().Bold(true)
)

// Plain turns off colours and text attributes, for --no-color and for
// output that is compared verbatim.
func Plain() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func Bold(s string) string  { return bold.Render(s) }
func Muted(s string) string { return muted.Render(s) }

func SuccessMsg(format string, a ...any) string { return mark(ok, "✓", format, a...) }
func WarnMsg(format string, a ...any) string    { return mark(warn, "!", format, a...) }
func ErrorMsg(format string, a ...any) string   { return mark(bad, "✗", format, a...) }

func mark(style lipgloss.Style, sign, format string, a ...any) string {
	return style.Render(sign) + " " + fmt.Sprintf(format, a...)
}

// Pair is one labelled value of a KeyValues block.
type Pair struct {
	key   string
	value string
}

func KV(key, value string) Pair {
	return Pair{key: key, value: value}
}

// KeyValues renders aligned "key: value" lines, used for memory cells
// printed after a run.
func KeyValues(indent string, pairs ...Pair) string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p.key))
	}

	var sb strings.Builder
	for _, p := range pairs {
		label := fmt.Sprintf("%-*s", width+1, p.key+":")
		sb.WriteString(indent + muted.Render(label) + " " + p.value + "\n")
	}
	return sb.String()
}

// Table renders rows under bold headers inside a rounded border.
func Table(headers []string, rows [][]string) string {
	head := accent.Bold(true).Padding(0, 1)
	cell := plain.Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faint).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
