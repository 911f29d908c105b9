package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/matrix-rain/internal/surface"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.geom.store(x.Height, x.Width)
		return m, nil

	case tea.KeyMsg:
		in := surface.Input{Name: x.String(), Interrupt: key.Matches(x, m.keys.Interrupt)}
		select {
		case m.inputs <- in:
		default:
			// Input has no effect on the animation; overflow is dropped.
		}
		return m, nil

	case frameMsg:
		m.frame = x
		return m, nil
	}

	return m, nil
}
