package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/query"
)

// DefaultFetchTimeout bounds a single page request
const DefaultFetchTimeout = 20 * time.Second

// Command factories for async operations

// DebounceCmd fires a DebounceMsg for handle after delay
func DebounceCmd(h query.Handle, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return DebounceMsg{Handle: h}
	})
}

// FetchPageCmd loads the page described by req. Errors are delivered in the
// PageLoadedMsg so the accumulator can clear its in-flight flag.
func FetchPageCmd(f feed.Fetcher, req feed.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := f.FetchPage(ctx, req.Query, req.Page)
		return PageLoadedMsg{Req: req, Page: page, Err: err}
	}
}

// OpenCmd opens the movie's page and reports the result in the status line
func OpenCmd(l Launcher, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := l.Launch(movie.URL); err != nil {
			return ErrMsg{Err: err, Context: "opening " + movie.Title}
		}
		return StatusMsg{Message: "Opened " + movie.Title}
	}
}

// TickCmd returns a command that ticks after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// PruneCmd schedules the next cache prune
func PruneCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return PruneMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
