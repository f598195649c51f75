package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movies(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: fmt.Sprintf("m%d", i), Title: fmt.Sprintf("Movie %d", i), Year: 2000 + i}
	}
	return out
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// newTestGrid returns a focused two-column grid showing two rows
func newTestGrid(n int) Grid {
	g := NewGrid(2)
	g.SetSize(60, HeaderLines+FooterLines+2*CellHeight)
	g.SetFocused(true)
	g.SetItems(movies(n))
	return g
}

func press(g Grid, keys ...string) Grid {
	for _, k := range keys {
		g, _ = g.Update(keyMsg(k))
	}
	return g
}

func TestGridNavigation(t *testing.T) {
	g := newTestGrid(5)
	require.Equal(t, 2, g.VisibleRows())
	require.Equal(t, 3, g.TotalRows())

	tests := []struct {
		name  string
		start int
		keys  []string
		want  int
	}{
		{"down moves one row", 0, []string{"down"}, 2},
		{"down into partial last row", 3, []string{"down"}, 4},
		{"down at bottom stays", 4, []string{"down"}, 4},
		{"right wraps to next row", 1, []string{"right"}, 2},
		{"right at last item stays", 4, []string{"right"}, 4},
		{"left at first item stays", 0, []string{"left"}, 0},
		{"up moves one row", 3, []string{"up"}, 1},
		{"up at top stays", 1, []string{"up"}, 1},
		{"vim keys", 0, []string{"j", "l", "k"}, 1},
		{"end then home", 2, []string{"G", "g"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(5)
			g.SetCursor(tt.start)
			g = press(g, tt.keys...)
			assert.Equal(t, tt.want, g.Cursor())
		})
	}
}

func TestGridIgnoresKeysWhenBlurred(t *testing.T) {
	g := newTestGrid(6)
	g.SetFocused(false)
	g = press(g, "down")
	assert.Equal(t, 0, g.Cursor())
}

func TestGridScrollsToKeepCursorVisible(t *testing.T) {
	g := newTestGrid(10)
	g = press(g, "down", "down")
	assert.Equal(t, 4, g.Cursor())
	assert.Equal(t, 1, g.Offset())

	g = press(g, "G")
	assert.Equal(t, 9, g.Cursor())
	assert.Equal(t, 3, g.Offset())

	g.ScrollToTop()
	assert.Equal(t, 0, g.Cursor())
	assert.Equal(t, 0, g.Offset())
}

func TestGridNearEnd(t *testing.T) {
	// 20 items = 10 rows, 2 visible
	g := newTestGrid(20)
	assert.Equal(t, 8, g.RowsBelow())
	assert.False(t, g.NearEnd(0.3))

	g.SetCursor(17) // row 8, viewport rows 7-8
	assert.Equal(t, 1, g.RowsBelow())
	assert.False(t, g.NearEnd(0.3), "one row below is more than 30% of two rows")

	g.SetCursor(19)
	assert.Equal(t, 0, g.RowsBelow())
	assert.True(t, g.NearEnd(0.3))

	assert.True(t, newTestGrid(2).NearEnd(0.3), "a grid that does not fill the viewport is near its end")
	assert.True(t, newTestGrid(0).NearEnd(0.3))
}

func TestGridSetItemsKeepsCursor(t *testing.T) {
	g := newTestGrid(6)
	g.SetCursor(3)

	g.SetItems(movies(12))
	assert.Equal(t, 3, g.Cursor(), "appending a page keeps the selection")

	g.SetItems(movies(2))
	assert.Equal(t, 1, g.Cursor(), "shrinking clamps the selection")

	g.SetItems(nil)
	g.SetItems(movies(4))
	assert.Equal(t, 1, g.Cursor())
}

func TestGridMemoizesCells(t *testing.T) {
	g := newTestGrid(4)
	g.View()
	first := g.Renders()
	assert.Equal(t, 4, first)

	g.View()
	assert.Equal(t, first, g.Renders(), "unchanged cells are not rendered again")

	// Moving the cursor re-renders the old and new selection only
	g = press(g, "right")
	g.View()
	assert.Equal(t, first+2, g.Renders())

	// Marking a movie re-renders its cell
	marked := map[string]bool{"m3": true}
	g.SetMarker(func(id string) bool { return marked[id] })
	g.View()
	assert.Equal(t, first+3, g.Renders())
}

func TestGridEmptyState(t *testing.T) {
	g := newTestGrid(0)
	g.SetEmptyText("No movies match \"zzz\"")

	g.SetFeedState(true, true, false)
	view := g.View()
	assert.NotContains(t, view, "No movies match")
	assert.Contains(t, view, "Loading...")

	g.SetFeedState(false, true, false)
	assert.NotContains(t, g.View(), "No movies match", "a failed first page is not an empty result")

	g.SetFeedState(false, false, true)
	assert.Contains(t, g.View(), "No movies match")
}

func TestGridFooter(t *testing.T) {
	g := newTestGrid(4)

	g.SetFeedState(true, true, false)
	assert.Contains(t, g.View(), "Loading more...")

	g.SetFeedState(false, true, false)
	assert.Contains(t, g.View(), "↓ more")

	g.SetFeedState(false, false, false)
	assert.Contains(t, g.View(), "End of results (4)")
}

func TestGridViewShowsTitleAndMarker(t *testing.T) {
	g := newTestGrid(2)
	g.SetTitle("Popular movies")
	g.SetMarker(func(id string) bool { return id == "m1" })

	view := g.View()
	assert.True(t, strings.HasPrefix(stripLines(view)[0], "Popular movies"))
	assert.Contains(t, view, "Movie 0")
	assert.Contains(t, view, "★")
}

func stripLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
