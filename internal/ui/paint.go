package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// paint lays text over one solid background colour. Each segment carries the
// colour itself, so segments joined side by side leave no unpainted cells.
type paint struct {
	color lipgloss.Color
}

func newPaint(c colorful.Color) paint {
	return paint{color: lipgloss.Color(c.Clamped().Hex())}
}

// hexPaint paints with a theme colour. An unparsable colour paints nothing.
func hexPaint(hex string) paint {
	c, err := colorful.Hex(hex)
	if err != nil {
		return paint{}
	}
	return newPaint(c)
}

func (p paint) bg() lipgloss.TerminalColor {
	if p.color == "" {
		return lipgloss.NoColor{}
	}
	return p.color
}

func (p paint) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	return style.Background(p.bg()).Render(s)
}

// gap returns n painted spaces.
func (p paint) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return p.text(strings.Repeat(" ", n), lipgloss.NewStyle())
}

// join lays parts out in a row, sep painted cells apart.
func (p paint) join(parts []string, sep int) string {
	return strings.Join(parts, p.gap(sep))
}

// block places content in a width by rows box. Unused cells are painted and
// lines past rows are cut.
func (p paint) block(content string, width, rows int, vpos lipgloss.Position) string {
	return lipgloss.NewStyle().MaxHeight(rows).Render(
		lipgloss.Place(width, rows, lipgloss.Left, vpos, content,
			lipgloss.WithWhitespaceBackground(p.bg())))
}
