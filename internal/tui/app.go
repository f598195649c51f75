package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/query"
	"github.com/mmcdole/reel/internal/shortlist"
	"github.com/mmcdole/reel/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmClear
)

// Screen is one of the two grids the user can switch between
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenShortlist
)

// Defaults for Options left at zero
const (
	DefaultLoadMoreThreshold = 0.3
	DefaultPruneInterval     = time.Minute
	SpinnerInterval          = 100 * time.Millisecond
)

// PageService is what the model needs from the feed layer
type PageService interface {
	feed.Fetcher
	Refresh(query string)
	Prune() int
}

// Launcher opens a movie's page outside the terminal
type Launcher interface {
	Launch(url string) error
}

// Options tunes the model. Zero values select defaults.
type Options struct {
	Columns           int
	Debounce          time.Duration
	LoadMoreThreshold float64
	PruneInterval     time.Duration
	FetchTimeout      time.Duration
	ShowInspector     bool
	SourceName        string
	Launcher          Launcher // nil disables opening pages
	Logger            *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Columns < 1 {
		o.Columns = components.DefaultColumns
	}
	if o.LoadMoreThreshold <= 0 || o.LoadMoreThreshold > 1 {
		o.LoadMoreThreshold = DefaultLoadMoreThreshold
	}
	if o.PruneInterval <= 0 {
		o.PruneInterval = DefaultPruneInterval
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Screen Screen
	Ready  bool

	// Services
	Feed      PageService
	Shortlist *shortlist.Store
	Query     *query.Controller
	Pages     *feed.Accumulator

	// UI Components
	SearchBar     components.SearchBar
	FilterBar     components.SearchBar
	Browse        components.Grid
	ShortlistGrid components.Grid
	Inspector     components.Inspector

	// Shortlist filter text
	filterQuery string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int
	ShowInspector bool

	opts   Options
	logger *slog.Logger
}

// NewModel creates a new application model. The shortlist store is owned
// by the caller so it outlives screen switches.
func NewModel(svc PageService, list *shortlist.Store, opts Options) Model {
	opts = opts.withDefaults()

	browse := components.NewGrid(opts.Columns)
	browse.SetMarker(list.IsShortlisted)
	browse.SetFocused(true)

	short := components.NewGrid(opts.Columns)
	short.SetMarker(list.IsShortlisted)
	short.SetEmptyText("Your shortlist is empty. Press space on a movie to add it.")
	short.SetFocused(true)

	m := Model{
		State:         StateBrowsing,
		Screen:        ScreenBrowse,
		Feed:          svc,
		Shortlist:     list,
		Query:         query.NewController(opts.Debounce),
		Pages:         feed.NewAccumulator(opts.Logger),
		SearchBar:     components.NewSearchBar("Search: ", "type a title, empty shows popular movies"),
		FilterBar:     components.NewSearchBar("Filter: ", "press / to filter the shortlist"),
		Browse:        browse,
		ShortlistGrid: short,
		Inspector:     components.NewInspector(),
		ShowInspector: opts.ShowInspector,
		opts:          opts,
		logger:        opts.Logger,
	}
	m.syncBrowse()
	m.syncShortlist()
	return m
}

// Init starts loading the first page of the browse session
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadMore(),
		TickCmd(SpinnerInterval),
		PruneCmd(m.opts.PruneInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		// A taller viewport may need more rows than are loaded
		cmd := m.maybeLoadMore()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case DebounceMsg:
		debounced, changed := m.Query.Settle(msg.Handle)
		if !changed {
			return m, nil
		}
		m.logger.Debug("query settled", "query", debounced)
		m.startSession(debounced)
		cmd := m.loadMore()
		return m, cmd

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Browse.SetSpinnerFrame(m.SpinnerFrame)
		m.Browse.SetFeedState(m.Pages.Loading(), m.Pages.HasMore(), m.Pages.Empty())
		return m, TickCmd(SpinnerInterval)

	case PruneMsg:
		if n := m.Feed.Prune(); n > 0 {
			m.logger.Debug("pruned cached pages", "count", n)
		}
		return m, PruneCmd(m.opts.PruneInterval)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	switch {
	case m.SearchBar.Focused():
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
	case m.FilterBar.Focused():
		m.FilterBar, cmd, _ = m.FilterBar.Update(msg)
	}
	return m, cmd
}

// handlePageLoaded merges a finished fetch into the active session
func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	outcome := m.Pages.Resolve(msg.Req, msg.Page, msg.Err)
	switch outcome {
	case feed.OutcomeStale:
		return m, nil

	case feed.OutcomeFailed:
		m.syncBrowse()
		m.StatusMsg = ErrMsg{Err: msg.Err, Context: fmt.Sprintf("loading page %d", msg.Req.Page)}.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)
	}

	m.syncBrowse()
	cmd := m.maybeLoadMore()
	return m, cmd
}

// startSession discards the current pages and begins a session for q
func (m *Model) startSession(q string) {
	m.Pages.Reset(q)
	if query.ShouldResetScroll(q) {
		m.Browse.ScrollToTop()
	}
	m.syncBrowse()
}

// loadMore requests the next page of the active session, if one may start
func (m *Model) loadMore() tea.Cmd {
	req, ok := m.Pages.BeginLoad()
	if !ok {
		return nil
	}
	m.syncBrowse()
	return FetchPageCmd(m.Feed, req, m.opts.FetchTimeout)
}

// maybeLoadMore loads the next page when the browse grid is scrolled near its end
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.Browse.NearEnd(m.opts.LoadMoreThreshold) {
		return nil
	}
	return m.loadMore()
}

// refresh drops cached pages for the active query and starts it again
func (m *Model) refresh() tea.Cmd {
	q := m.Pages.Query()
	m.Feed.Refresh(q)
	m.Pages.Reset(q)
	m.Browse.ScrollToTop()
	m.syncBrowse()
	return tea.Batch(m.loadMore(), func() tea.Msg {
		return StatusMsg{Message: "Refreshing..."}
	})
}

// toggleSelected adds or removes the selected movie of the active grid
func (m *Model) toggleSelected() tea.Cmd {
	movie, ok := m.activeGrid().Selected()
	if !ok {
		return nil
	}

	added := m.Shortlist.Toggle(movie)
	m.syncShortlist()
	m.updateInspector()

	text := fmt.Sprintf("Removed %q from shortlist", movie.Title)
	if added {
		text = fmt.Sprintf("Added %q to shortlist", movie.Title)
	}
	return func() tea.Msg { return StatusMsg{Message: text} }
}

// openSelected opens the page of the selected movie in the background
func (m Model) openSelected() tea.Cmd {
	movie, ok := m.activeGrid().Selected()
	if !ok || m.opts.Launcher == nil {
		return nil
	}
	return OpenCmd(m.opts.Launcher, movie)
}

// syncBrowse pushes the accumulator state into the browse grid
func (m *Model) syncBrowse() {
	m.Browse.SetItems(m.Pages.Items())
	m.Browse.SetFeedState(m.Pages.Loading(), m.Pages.HasMore(), m.Pages.Empty())

	if q := m.Pages.Query(); q != "" {
		m.Browse.SetTitle(fmt.Sprintf("Results for %q", q))
		m.Browse.SetEmptyText(fmt.Sprintf("No movies match %q", q))
	} else {
		m.Browse.SetTitle("Popular movies")
		m.Browse.SetEmptyText("No movies available")
	}
	m.updateInspector()
}

// syncShortlist pushes the (filtered) shortlist into the shortlist grid
func (m *Model) syncShortlist() {
	movies, highlights := filterMovies(m.Shortlist.All(), m.filterQuery)
	m.ShortlistGrid.SetItems(movies)
	m.ShortlistGrid.SetHighlights(highlights)
	m.ShortlistGrid.SetFeedState(false, false, true)

	title := fmt.Sprintf("Shortlist (%d)", m.Shortlist.Len())
	if m.filterQuery != "" {
		title = fmt.Sprintf("Shortlist (%d of %d match %q)", len(movies), m.Shortlist.Len(), m.filterQuery)
		m.ShortlistGrid.SetEmptyText("No matches")
	} else {
		m.ShortlistGrid.SetEmptyText("Your shortlist is empty. Press space on a movie to add it.")
	}
	m.ShortlistGrid.SetTitle(title)
	m.updateInspector()
}

// activeGrid returns the grid of the current screen
func (m *Model) activeGrid() *components.Grid {
	if m.Screen == ScreenShortlist {
		return &m.ShortlistGrid
	}
	return &m.Browse
}

// updateInspector shows the selected movie of the active grid
func (m *Model) updateInspector() {
	movie, ok := m.activeGrid().Selected()
	if !ok {
		m.Inspector.SetMovie(nil, false)
		return
	}
	m.Inspector.SetMovie(&movie, m.Shortlist.IsShortlisted(movie.ID))
}
