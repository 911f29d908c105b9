package tui

import (
	"strings"

	"github.com/ensigniasec/matrix-rain/internal/surface"
)

func (m Model) View() string {
	var b strings.Builder
	for i, row := range m.frame.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(row))
	}
	return b.String()
}

// renderRow styles runs of equally attributed cells together so each run
// costs one escape sequence instead of one per cell.
func (m Model) renderRow(row []cell) string {
	var b strings.Builder
	var run strings.Builder
	runSet := false
	var runAttr surface.Attr

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runSet {
			b.WriteString(m.styles[runAttr].Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for _, c := range row {
		if c.set != runSet || (c.set && c.attr != runAttr) {
			flush()
			runSet = c.set
			runAttr = c.attr
		}
		if c.set {
			run.WriteRune(c.glyph)
		} else {
			run.WriteByte(' ')
		}
	}
	flush()
	return b.String()
}
