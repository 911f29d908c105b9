package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/matrix-rain/internal/surface"
)

// geometry is the viewport size shared between the program and the surface.
type geometry struct {
	rows atomic.Int64
	cols atomic.Int64
}

func (g *geometry) store(rows, cols int) {
	g.rows.Store(int64(rows))
	g.cols.Store(int64(cols))
}

func (g *geometry) load() (int, int) {
	return int(g.rows.Load()), int(g.cols.Load())
}

// Model is the root Bubble Tea model. It only displays frames pushed by the
// surface and reports geometry and keys back to it.
type Model struct {
	geom   *geometry
	inputs chan surface.Input
	frame  frameMsg
	styles map[surface.Attr]lipgloss.Style
	keys   keyMap
}

// NewModel constructs a Model reporting into geom and inputs.
func NewModel(geom *geometry, inputs chan surface.Input) Model {
	primary := lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor))
	secondary := lipgloss.NewStyle().Foreground(lipgloss.Color(secondaryColor))
	return Model{
		geom:   geom,
		inputs: inputs,
		styles: map[surface.Attr]lipgloss.Style{
			surface.AttrHead:   secondary.Bold(true),
			surface.AttrBright: secondary,
			surface.AttrDim:    primary.Faint(true),
		},
		keys: newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
