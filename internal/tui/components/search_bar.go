package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// SearchBarHeight is the rendered height including the border
const SearchBarHeight = 3

// SearchBar is a single-line text input with a border
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates a search bar with the given prompt and placeholder
func NewSearchBar(prompt, placeholder string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Prompt = prompt
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchTextStyle
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus focuses the input and returns the cursor blink command
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the current text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth sets the outer width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// border + padding + prompt
	s.input.Width = max(1, width-4-len([]rune(s.input.Prompt))-1)
}

// Update routes a message to the input. changed reports whether the text changed.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the search bar
func (s SearchBar) View() string {
	style := styles.SearchBarStyle
	if s.input.Focused() {
		style = styles.SearchBarFocusedStyle
	}
	return style.Width(max(1, s.width-2)).Render(s.input.View())
}
