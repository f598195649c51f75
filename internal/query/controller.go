// Package query owns the search text typed by the user and its debounced value.
//
// The controller itself never sleeps or starts timers. Every raw edit hands
// back a Handle; the caller schedules a single delayed callback carrying that
// handle (a tea.Tick in the TUI) and calls Settle when it fires. Handles from
// earlier edits are dead on arrival, so only the last edit in a burst can
// settle.
package query

import (
	"strings"
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window before raw text becomes the query
const DefaultDebounce = 300 * time.Millisecond

// Handle identifies one pending debounce callback
type Handle uint64

// Controller tracks raw and debounced query text
type Controller struct {
	mu        sync.Mutex
	raw       string
	debounced string
	latest    Handle
	delay     time.Duration
}

// NewController creates a controller with the given quiescence window.
// A non-positive delay selects DefaultDebounce.
func NewController(delay time.Duration) *Controller {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Controller{delay: delay}
}

// Delay returns the quiescence window
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// SetQuery records new raw text and returns the handle for its debounce
// callback. Any handle returned earlier is invalidated.
func (c *Controller) SetQuery(raw string) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.raw = raw
	c.latest++
	return c.latest
}

// Settle is called when the callback for h fires. It returns the debounced
// query and whether it changed. Invalidated handles change nothing.
func (c *Controller) Settle(h Handle) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h != c.latest {
		return c.debounced, false
	}

	next := Normalize(c.raw)
	if next == c.debounced {
		return c.debounced, false
	}
	c.debounced = next
	return next, true
}

// Raw returns the text exactly as typed
func (c *Controller) Raw() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}

// Debounced returns the settled query ("" = browse all)
func (c *Controller) Debounced() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debounced
}

// Pending reports whether raw text has not settled yet
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Normalize(c.raw) != c.debounced
}

// Normalize trims surrounding whitespace so "batman " and "batman" share a session
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// ShouldResetScroll reports whether a debounced change to query moves the
// list back to the top. Clearing the query leaves the scroll position alone.
func ShouldResetScroll(query string) bool {
	return query != ""
}
