package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// InspectorHeight is the fixed number of lines the inspector occupies
const InspectorHeight = 3

// Inspector shows details for the selected movie below the grid
type Inspector struct {
	movie       *domain.Movie
	shortlisted bool
	width       int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetMovie sets the movie to display (nil clears)
func (i *Inspector) SetMovie(m *domain.Movie, shortlisted bool) {
	i.movie = m
	i.shortlisted = shortlisted
}

// SetWidth updates the component width
func (i *Inspector) SetWidth(width int) {
	i.width = width
}

// HasMovie returns true if there is a movie to display
func (i Inspector) HasMovie() bool {
	return i.movie != nil
}

// View renders the component
func (i Inspector) View() string {
	lines := make([]string, InspectorHeight)
	for n := range lines {
		lines[n] = " "
	}

	if i.movie != nil {
		m := i.movie
		lines[0] = i.renderHeader(*m)
		overview := wrapLines(m.Overview, i.width, InspectorHeight-1)
		for n, l := range overview {
			lines[n+1] = styles.SubtitleStyle.Render(l)
		}
	}

	return lipgloss.NewStyle().Width(max(1, i.width)).Render(strings.Join(lines, "\n"))
}

func (i Inspector) renderHeader(m domain.Movie) string {
	var parts []string
	if i.shortlisted {
		parts = append(parts, styles.ShortlistMark)
	}
	parts = append(parts, styles.TitleStyle.Render(styles.Truncate(m.Title, max(1, i.width/2))))

	var meta []string
	if m.ReleaseDate != "" {
		meta = append(meta, m.ReleaseDate)
	} else if m.Year > 0 {
		meta = append(meta, fmt.Sprint(m.Year))
	}
	if r := m.FormattedRating(); r != "" {
		if m.VoteCount > 0 {
			meta = append(meta, fmt.Sprintf("★ %s (%d votes)", r, m.VoteCount))
		} else {
			meta = append(meta, "★ "+r)
		}
	}
	if len(meta) > 0 {
		parts = append(parts, styles.DimStyle.Render(strings.Join(meta, "  ")))
	}

	return strings.Join(parts, " ")
}

// wrapLines word-wraps text to width and returns at most n lines,
// ending the last one with an ellipsis when text was cut
func wrapLines(text string, width, n int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 || n <= 0 {
		return nil
	}

	var lines []string
	var current strings.Builder
	for idx, w := range words {
		if current.Len() > 0 && lipgloss.Width(current.String())+1+lipgloss.Width(w) > width {
			lines = append(lines, current.String())
			current.Reset()
			if len(lines) == n {
				last := lines[n-1]
				lines[n-1] = styles.Truncate(last+" "+strings.Join(words[idx:], " "), width)
				return lines
			}
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(w)
	}
	if current.Len() > 0 {
		lines = append(lines, styles.Truncate(current.String(), width))
	}
	return lines
}
