package tui

import "github.com/mmcdole/reel/internal/tui/components"

// Vertical layout
const (
	// Screen tabs at the top
	TabsHeight = 1

	// Footer status line
	ChromeHeight = 1

	MinGridHeight = components.CellHeight + components.HeaderLines + components.FooterLines
)

// gridHeight returns the height left for a grid after the fixed chrome
func (m Model) gridHeight() int {
	h := m.Height - TabsHeight - components.SearchBarHeight - ChromeHeight
	if m.ShowInspector {
		h -= components.InspectorHeight
	}
	return max(MinGridHeight, h)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}

	m.SearchBar.SetWidth(m.Width)
	m.FilterBar.SetWidth(m.Width)
	m.Browse.SetSize(m.Width, m.gridHeight())
	m.ShortlistGrid.SetSize(m.Width, m.gridHeight())
	m.Inspector.SetWidth(m.Width)
}
