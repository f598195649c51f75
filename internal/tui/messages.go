package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/query"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DebounceMsg fires when the search input has been quiet for the debounce delay
type DebounceMsg struct {
	Handle query.Handle
}

// PageLoadedMsg carries the result of a page request, successful or not
type PageLoadedMsg struct {
	Req  feed.Request
	Page domain.Page
	Err  error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// PruneMsg asks the model to evict expired cached pages
type PruneMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
