package feed

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// Request describes one page fetch issued for a session
type Request struct {
	Session uint64 // Session the page belongs to
	Query   string // Debounced query ("" = browse)
	Page    int    // Page number to fetch, starting at 1
}

// Search reports whether the request uses the search variant of the source
func (r Request) Search() bool {
	return r.Query != ""
}

// Outcome tells the caller what Resolve did with a result
type Outcome int

const (
	OutcomeAppended Outcome = iota // Page merged into the session
	OutcomeFailed                  // Fetch failed, session unchanged
	OutcomeStale                   // Result belonged to a superseded session or page, dropped
)

// String returns a human-readable representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeAppended:
		return "appended"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Accumulator holds the pages fetched for the active query session and
// exposes them as one flat list.
//
// Pages are appended strictly in page-number order with at most one fetch in
// flight. Starting a new session orphans any request issued for the previous
// one; its result is dropped when it arrives.
type Accumulator struct {
	mu sync.Mutex

	session  uint64
	query    string
	pages    []domain.Page
	items    []domain.Movie
	seen     map[string]struct{}
	inFlight bool
	lastErr  error

	logger *slog.Logger
}

// NewAccumulator creates an accumulator with an empty browse session
func NewAccumulator(logger *slog.Logger) *Accumulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accumulator{
		session: 1,
		seen:    make(map[string]struct{}),
		logger:  logger,
	}
}

// Reset discards the current session and starts a new one for query.
// It returns the new session id.
func (a *Accumulator) Reset(query string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session++
	a.query = query
	a.pages = nil
	a.items = nil
	a.seen = make(map[string]struct{})
	a.inFlight = false
	a.lastErr = nil

	a.logger.Debug("new query session", "session", a.session, "query", query)
	return a.session
}

// Session returns the active session id
func (a *Accumulator) Session() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// Query returns the active session's query
func (a *Accumulator) Query() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// Items returns every movie of the session in page order.
// A movie repeated on a later page keeps its first position only.
func (a *Accumulator) Items() []domain.Movie {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.items[:len(a.items):len(a.items)]
}

// PageCount returns the number of pages merged so far
func (a *Accumulator) PageCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pages)
}

// TotalResults returns the result count reported by the most recent page
func (a *Accumulator) TotalResults() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pages) == 0 {
		return 0
	}
	return a.pages[len(a.pages)-1].TotalResults
}

// HasMore reports whether another page may exist. Before the first page has
// arrived the answer is always yes.
func (a *Accumulator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasMoreLocked()
}

func (a *Accumulator) hasMoreLocked() bool {
	if len(a.pages) == 0 {
		return true
	}
	return a.pages[len(a.pages)-1].HasNext()
}

// Loading reports whether a fetch is in flight for the active session
func (a *Accumulator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}

// Empty reports whether the session finished loading and has nothing to show.
// It stays false while the first page is still loading or after it failed.
func (a *Accumulator) Empty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.inFlight && len(a.pages) > 0 && len(a.items) == 0
}

// Err returns the error of the last failed fetch in this session, if any
func (a *Accumulator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// BeginLoad is the load-more operation. It returns the request for the next
// page and marks it in flight, or false when a fetch is already in flight or
// there is nothing more to load.
func (a *Accumulator) BeginLoad() (Request, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.inFlight || !a.hasMoreLocked() {
		return Request{}, false
	}

	a.inFlight = true
	req := Request{
		Session: a.session,
		Query:   a.query,
		Page:    len(a.pages) + 1,
	}
	a.logger.Debug("loading page", "session", req.Session, "query", req.Query, "page", req.Page)
	return req, true
}

// Resolve merges the result of a request started by BeginLoad.
func (a *Accumulator) Resolve(req Request, page domain.Page, err error) Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	if req.Session != a.session {
		a.logger.Debug("dropping stale page", "session", req.Session, "active", a.session, "page", req.Page)
		return OutcomeStale
	}
	if !a.inFlight || req.Page != len(a.pages)+1 {
		a.logger.Warn("dropping out-of-order page", "page", req.Page, "expected", len(a.pages)+1)
		return OutcomeStale
	}

	a.inFlight = false

	if err != nil {
		a.lastErr = err
		a.logger.Error("failed to load page", "error", err, "query", req.Query, "page", req.Page)
		return OutcomeFailed
	}

	page.Number = req.Page
	a.pages = append(a.pages, page)
	a.lastErr = nil

	added := 0
	for _, m := range page.Movies {
		if _, dup := a.seen[m.ID]; dup {
			continue
		}
		a.seen[m.ID] = struct{}{}
		a.items = append(a.items, m)
		added++
	}
	if skipped := len(page.Movies) - added; skipped > 0 {
		a.logger.Debug("skipped duplicate movies", "page", req.Page, "count", skipped)
	}

	a.logger.Debug("page merged", "query", req.Query, "page", req.Page, "added", added, "total", len(a.items))
	return OutcomeAppended
}
