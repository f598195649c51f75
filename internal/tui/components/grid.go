package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for grid
const (
	// Border (top+bottom) plus title and description lines
	CellHeight = 4

	// Border adds 1 char on each side, Padding(0,1) adds 1 more
	CellFrameWidth = 4

	// Title line above the cells, loading/more indicator below
	HeaderLines = 1
	FooterLines = 1

	ColumnGap = 1

	DefaultColumns = 2
)

// cellKey identifies one rendered cell. A cell is re-rendered only when its key changes.
type cellKey struct {
	id          string
	shortlisted bool
	selected    bool
	width       int
	highlight   string
}

// cellCache is shared by copies of a Grid so memoized cells survive Update
type cellCache struct {
	entries map[cellKey]string
	renders int
}

// Grid renders movies as a scrollable multi-column grid of cells
type Grid struct {
	items      []domain.Movie
	marked     func(id string) bool
	highlights map[string][]int // movie id -> matched rune indexes in the title

	columns int
	keys    GridKeyMap

	// Selection
	cursor int // item index
	offset int // first visible row

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	emptyText string

	// Feed state
	loading      bool
	hasMore      bool
	showEmpty    bool
	spinnerFrame int

	cache *cellCache
}

// NewGrid creates a grid with the given number of columns
func NewGrid(columns int) Grid {
	if columns < 1 {
		columns = DefaultColumns
	}
	return Grid{
		columns:   columns,
		keys:      DefaultGridKeyMap(),
		emptyText: "No results",
		marked:    func(string) bool { return false },
		cache:     &cellCache{entries: make(map[cellKey]string)},
	}
}

// SetMarker sets the function reporting whether a movie is shortlisted
func (g *Grid) SetMarker(fn func(id string) bool) {
	if fn == nil {
		fn = func(string) bool { return false }
	}
	g.marked = fn
}

// SetItems replaces the displayed movies. The cursor is kept where it was
// (clamped) so appending a page does not move the selection.
func (g *Grid) SetItems(items []domain.Movie) {
	g.items = items
	if len(items) > 0 && g.cursor >= len(items) {
		g.cursor = len(items) - 1
	}
	g.ensureVisible()

	// Drop memoized cells once the cache is far larger than what can be shown
	if len(g.cache.entries) > 4*len(items)+64 {
		g.cache.entries = make(map[cellKey]string)
	}
}

// SetHighlights sets matched title positions per movie id (nil clears)
func (g *Grid) SetHighlights(h map[string][]int) {
	g.highlights = h
}

// SetFeedState updates the loading / more / empty indicators
func (g *Grid) SetFeedState(loading, hasMore, showEmpty bool) {
	g.loading = loading
	g.hasMore = hasMore
	g.showEmpty = showEmpty
}

// SetSpinnerFrame sets the loading animation frame
func (g *Grid) SetSpinnerFrame(frame int) {
	g.spinnerFrame = frame
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetTitle sets the text on the line above the cells
func (g *Grid) SetTitle(title string) {
	g.title = title
}

// SetEmptyText sets the message shown for a completed empty result
func (g *Grid) SetEmptyText(text string) {
	g.emptyText = text
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// ScrollToTop moves the selection and viewport to the first item
func (g *Grid) ScrollToTop() {
	g.cursor = 0
	g.offset = 0
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	last := len(g.items) - 1
	if last < 0 {
		g.cursor = 0
		return
	}
	g.cursor = max(0, min(pos, last))
	g.ensureVisible()
}

// Offset returns the first visible row
func (g Grid) Offset() int {
	return g.offset
}

// Len returns the number of items
func (g Grid) Len() int {
	return len(g.items)
}

// Columns returns the number of columns
func (g Grid) Columns() int {
	return g.columns
}

// Selected returns the movie under the cursor
func (g Grid) Selected() (domain.Movie, bool) {
	if g.cursor < 0 || g.cursor >= len(g.items) {
		return domain.Movie{}, false
	}
	return g.items[g.cursor], true
}

// VisibleRows returns how many rows of cells fit in the viewport
func (g Grid) VisibleRows() int {
	return max(1, (g.height-HeaderLines-FooterLines)/CellHeight)
}

// TotalRows returns the number of rows needed for all items
func (g Grid) TotalRows() int {
	return (len(g.items) + g.columns - 1) / g.columns
}

// RowsBelow returns how many rows lie below the viewport
func (g Grid) RowsBelow() int {
	return g.TotalRows() - (g.offset + g.VisibleRows())
}

// NearEnd reports whether the rows remaining below the viewport are within
// threshold (a fraction) of the visible row count. A grid that does not
// fill its viewport is always near the end.
func (g Grid) NearEnd(threshold float64) bool {
	return float64(g.RowsBelow()) <= threshold*float64(g.VisibleRows())
}

// Renders returns how many cells have been rendered (not served from cache)
func (g Grid) Renders() int {
	return g.cache.renders
}

// ensureVisible ensures the cursor row is visible
func (g *Grid) ensureVisible() {
	if len(g.items) == 0 {
		return
	}
	row := g.cursor / g.columns
	visible := g.VisibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+visible {
		g.offset = row - visible + 1
	}
	// Keep the viewport full when shrinking the list
	if maxOffset := max(0, g.TotalRows()-visible); g.offset > maxOffset {
		g.offset = maxOffset
	}
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	count := len(g.items)
	if count == 0 {
		return g, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	page := g.VisibleRows() * g.columns
	half := max(g.columns, page/2/g.columns*g.columns)
	switch {
	case key.Matches(keyMsg, g.keys.Down):
		switch {
		case g.cursor+g.columns < count:
			g.cursor += g.columns
		case g.cursor/g.columns < (count-1)/g.columns:
			// Partial last row: land on its last cell
			g.cursor = count - 1
		}
	case key.Matches(keyMsg, g.keys.Up):
		if g.cursor-g.columns >= 0 {
			g.cursor -= g.columns
		}
	case key.Matches(keyMsg, g.keys.Left):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(keyMsg, g.keys.Right):
		if g.cursor < count-1 {
			g.cursor++
		}
	case key.Matches(keyMsg, g.keys.Home):
		g.cursor = 0
		g.offset = 0
	case key.Matches(keyMsg, g.keys.End):
		g.cursor = count - 1
	case key.Matches(keyMsg, g.keys.HalfDown):
		g.cursor = min(count-1, g.cursor+half)
	case key.Matches(keyMsg, g.keys.HalfUp):
		g.cursor = max(0, g.cursor-half)
	case key.Matches(keyMsg, g.keys.PageDown):
		g.cursor = min(count-1, g.cursor+page)
	case key.Matches(keyMsg, g.keys.PageUp):
		g.cursor = max(0, g.cursor-page)
	}
	g.ensureVisible()

	return g, nil
}

// cellWidth returns the outer width of one cell
func (g Grid) cellWidth() int {
	return max(CellFrameWidth+1, (g.width-(g.columns-1)*ColumnGap)/g.columns)
}

// View renders the component
func (g Grid) View() string {
	header := " "
	if g.title != "" {
		header = styles.AccentStyle.Render(styles.Truncate(g.title, g.width))
	}

	var body string
	switch {
	case len(g.items) == 0 && g.showEmpty:
		body = "\n" + styles.DimStyle.Render(g.emptyText)
	case len(g.items) == 0 && g.loading:
		body = "\n" + styles.Spinner(g.spinnerFrame) + styles.DimStyle.Render(" Loading...")
	case len(g.items) == 0:
		body = " "
	default:
		body = g.renderRows()
	}

	footer := " "
	switch {
	case len(g.items) > 0 && g.loading:
		footer = styles.Spinner(g.spinnerFrame) + styles.DimStyle.Render(" Loading more...")
	case g.RowsBelow() > 0 || (len(g.items) > 0 && g.hasMore):
		footer = styles.DimStyle.Render("↓ more")
	case len(g.items) > 0:
		footer = styles.DimStyle.Render(fmt.Sprintf("End of results (%d)", len(g.items)))
	}

	bodyHeight := max(1, g.height-HeaderLines-FooterLines)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderRows renders the visible rows of cells
func (g Grid) renderRows() string {
	width := g.cellWidth()
	end := min(g.TotalRows(), g.offset+g.VisibleRows())
	gap := strings.Repeat(" ", ColumnGap)

	rows := make([]string, 0, end-g.offset)
	for r := g.offset; r < end; r++ {
		cells := make([]string, 0, g.columns*2)
		for c := 0; c < g.columns; c++ {
			i := r*g.columns + c
			if i >= len(g.items) {
				break
			}
			if c > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, g.cell(g.items[i], i == g.cursor && g.focused, width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cell returns the rendered cell for m, from cache when its key is unchanged
func (g Grid) cell(m domain.Movie, selected bool, width int) string {
	key := cellKey{
		id:          m.ID,
		shortlisted: g.marked(m.ID),
		selected:    selected,
		width:       width,
	}
	hl := g.highlights[m.ID]
	if len(hl) > 0 {
		key.highlight = fmt.Sprint(hl)
	}

	if s, ok := g.cache.entries[key]; ok {
		return s
	}
	s := renderCell(m, key.shortlisted, selected, width, hl)
	g.cache.entries[key] = s
	g.cache.renders++
	return s
}

func renderCell(m domain.Movie, shortlisted, selected bool, width int, highlight []int) string {
	style := styles.GridCellStyle
	if shortlisted {
		style = styles.GridCellShortlistedStyle
	}
	if selected {
		style = styles.GridCellSelectedStyle
	}

	inner := width - CellFrameWidth
	prefix := ""
	if shortlisted {
		prefix = styles.ShortlistMark + " "
	}

	titleWidth := inner - lipgloss.Width(prefix)
	title := styles.Truncate(m.Title, titleWidth)
	base := styles.SubtitleStyle
	if selected {
		base = styles.TitleStyle
	}
	if title == m.Title {
		title = styles.HighlightMatches(title, highlight, base)
	} else {
		title = base.Render(title)
	}

	desc := styles.DimStyle.Render(styles.Truncate(m.Description(), inner))

	return style.Width(width - 2).Render(prefix + title + "\n" + desc)
}
