package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes key presses by state, then by focused input, then globally
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		// Any key closes help
		m.State = StateBrowsing
		return m, nil

	case StateConfirmClear:
		switch {
		case key.Matches(msg, Keys.Confirm):
			n := m.Shortlist.Len()
			m.Shortlist.Clear()
			m.State = StateBrowsing
			m.ShortlistGrid.ScrollToTop()
			m.syncShortlist()
			m.logger.Info("shortlist cleared", "count", n)
			return m, func() tea.Msg { return StatusMsg{Message: "Shortlist cleared"} }
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	if m.SearchBar.Focused() {
		return m.handleSearchInput(msg)
	}
	if m.FilterBar.Focused() {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		return m.focusInput()

	case key.Matches(msg, Keys.SwitchScreen):
		m.switchScreen()
		return m, nil

	case key.Matches(msg, Keys.Toggle):
		cmd := m.toggleSelected()
		return m, cmd

	case key.Matches(msg, Keys.Open):
		return m, m.openSelected()

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		cmd := m.maybeLoadMore()
		return m, cmd

	case key.Matches(msg, Keys.Refresh):
		if m.Screen != ScreenBrowse {
			return m, nil
		}
		cmd := m.refresh()
		return m, cmd

	case key.Matches(msg, Keys.ClearShortlist):
		if m.Screen == ScreenShortlist && m.Shortlist.Len() > 0 {
			m.State = StateConfirmClear
		}
		return m, nil

	case key.Matches(msg, Keys.Escape):
		return m.handleEscape()
	}

	// Grid navigation
	if m.Screen == ScreenShortlist {
		m.ShortlistGrid, _ = m.ShortlistGrid.Update(msg)
		m.updateInspector()
		return m, nil
	}

	m.Browse, _ = m.Browse.Update(msg)
	m.updateInspector()
	cmd := m.maybeLoadMore()
	return m, cmd
}

// focusInput moves focus from the grid to the current screen's input
func (m Model) focusInput() (tea.Model, tea.Cmd) {
	if m.Screen == ScreenShortlist {
		m.ShortlistGrid.SetFocused(false)
		cmd := m.FilterBar.Focus()
		return m, cmd
	}
	m.Browse.SetFocused(false)
	cmd := m.SearchBar.Focus()
	return m, cmd
}

// blurInputs returns focus to the grids
func (m *Model) blurInputs() {
	m.SearchBar.Blur()
	m.FilterBar.Blur()
	m.Browse.SetFocused(true)
	m.ShortlistGrid.SetFocused(true)
}

func (m *Model) switchScreen() {
	m.blurInputs()
	if m.Screen == ScreenBrowse {
		m.Screen = ScreenShortlist
		m.syncShortlist()
	} else {
		m.Screen = ScreenBrowse
	}
	m.updateInspector()
}

// handleEscape clears the current screen's query text
func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	if m.Screen == ScreenShortlist {
		if m.filterQuery != "" {
			m.FilterBar.SetValue("")
			m.filterQuery = ""
			m.syncShortlist()
		}
		return m, nil
	}

	if m.SearchBar.Value() == "" {
		return m, nil
	}
	m.SearchBar.SetValue("")
	h := m.Query.SetQuery("")
	return m, DebounceCmd(h, m.Query.Delay())
}

// handleSearchInput feeds keys to the search bar; every edit restarts the debounce
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Accept):
		m.blurInputs()
		return m, nil
	case key.Matches(msg, Keys.SwitchScreen):
		m.switchScreen()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if !changed {
		return m, cmd
	}

	h := m.Query.SetQuery(m.SearchBar.Value())
	return m, tea.Batch(cmd, DebounceCmd(h, m.Query.Delay()))
}

// handleFilterInput feeds keys to the shortlist filter, which applies immediately
func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Accept):
		m.blurInputs()
		return m, nil
	case key.Matches(msg, Keys.SwitchScreen):
		m.switchScreen()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.FilterBar, cmd, changed = m.FilterBar.Update(msg)
	if changed {
		m.filterQuery = m.FilterBar.Value()
		m.ShortlistGrid.ScrollToTop()
		m.syncShortlist()
	}
	return m, cmd
}
