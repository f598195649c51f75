package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmClear:
		return m.renderClearConfirmation()
	}

	var parts []string
	parts = append(parts, m.renderTabs())

	if m.Screen == ScreenShortlist {
		parts = append(parts, m.FilterBar.View(), m.ShortlistGrid.View())
	} else {
		parts = append(parts, m.SearchBar.View(), m.Browse.View())
	}

	if m.ShowInspector {
		parts = append(parts, m.Inspector.View())
	}
	parts = append(parts, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTabs renders the screen switcher line
func (m Model) renderTabs() string {
	browse := styles.InactiveTabStyle.Render("Browse")
	short := styles.InactiveTabStyle.Render(fmt.Sprintf("Shortlist (%d)", m.Shortlist.Len()))
	if m.Screen == ScreenBrowse {
		browse = styles.ActiveTabStyle.Render("Browse")
	} else {
		short = styles.ActiveTabStyle.Render(fmt.Sprintf("Shortlist (%d)", m.Shortlist.Len()))
	}

	left := styles.TitleStyle.Render("reel ") + browse + " " + short
	right := ""
	if m.opts.SourceName != "" {
		right = styles.DimStyle.Render(m.opts.SourceName)
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders the status line: transient status, else counters
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	default:
		left = styles.DimStyle.Render(m.counters())
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help  ") +
		styles.HelpKeyStyle.Render("q") + styles.HelpDescStyle.Render(" quit")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.Truncate(left, m.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// counters describes how much of the active list is loaded
func (m Model) counters() string {
	if m.Screen == ScreenShortlist {
		if m.filterQuery != "" {
			return fmt.Sprintf("%d of %d shortlisted match", m.ShortlistGrid.Len(), m.Shortlist.Len())
		}
		return fmt.Sprintf("%d shortlisted", m.Shortlist.Len())
	}

	loaded := m.Browse.Len()
	if m.Pages.PageCount() == 0 {
		return ""
	}
	text := fmt.Sprintf("%d of %d results", loaded, max(loaded, m.Pages.TotalResults()))
	if m.Query.Pending() {
		text += " (typing...)"
	}
	if err := m.Pages.Err(); err != nil {
		text += " (last page failed, scroll or press r to retry)"
	}
	return text
}

// renderHelp renders the key binding overview
func (m Model) renderHelp() string {
	grid := components.DefaultGridKeyMap()
	bindings := append(grid.ShortHelp(),
		Keys.Search, Keys.Toggle, Keys.SwitchScreen, Keys.Refresh,
		Keys.Open, Keys.ToggleInspector, Keys.ClearShortlist, Keys.Escape, Keys.Quit,
	)

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Keys"))
	for _, b := range bindings {
		lines = append(lines, renderBinding(b))
	}
	lines = append(lines, "", styles.DimStyle.Render("press any key to close"))

	modal := styles.ModalStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return styles.HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)) + " " + styles.HelpDescStyle.Render(h.Desc)
}

// renderClearConfirmation asks before emptying the shortlist
func (m Model) renderClearConfirmation() string {
	content := styles.ModalTitleStyle.Render("Clear shortlist?") + "\n" +
		styles.SubtitleStyle.Render(fmt.Sprintf("Remove all %d movies from the shortlist.", m.Shortlist.Len())) + "\n\n" +
		renderBinding(Keys.Confirm) + "   " + renderBinding(Keys.Deny)

	modal := styles.ModalStyle.Render(content)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}
