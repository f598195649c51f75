package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultFreshFor is how long a cached page is served without refetching
	DefaultFreshFor = 5 * time.Minute

	// DefaultEvictAfter is how long a cached page is kept at all
	DefaultEvictAfter = 10 * time.Minute
)

// Fetcher loads one page for a query. Service implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, query string, number int) (domain.Page, error)
}

// Options tunes the page cache
type Options struct {
	FreshFor   time.Duration
	EvictAfter time.Duration
}

// Service orchestrates page source + store operations.
type Service struct {
	source domain.PageSource
	store  domain.PageStore
	logger *slog.Logger

	freshFor   time.Duration
	evictAfter time.Duration
	now        func() time.Time

	flight singleflight.Group
}

// NewService creates a new feed service.
func NewService(source domain.PageSource, store domain.PageStore, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FreshFor <= 0 {
		opts.FreshFor = DefaultFreshFor
	}
	if opts.EvictAfter < opts.FreshFor {
		opts.EvictAfter = max(DefaultEvictAfter, opts.FreshFor)
	}
	return &Service{
		source:     source,
		store:      store,
		logger:     logger,
		freshFor:   opts.FreshFor,
		evictAfter: opts.EvictAfter,
		now:        time.Now,
	}
}

// FetchPage returns page number of query ("" = browse). Fresh cached pages
// are served without touching the source; identical concurrent fetches share
// one source call. If the source fails while an older, not yet evicted copy
// exists, that copy is returned instead of the error.
func (s *Service) FetchPage(ctx context.Context, query string, number int) (domain.Page, error) {
	if number < 1 {
		return domain.Page{}, fmt.Errorf("page %d: %w", number, domain.ErrPageOutOfRange)
	}

	now := s.now()
	cached, hit := s.store.GetPage(query, number)
	if hit {
		age := cached.Age(now)
		switch {
		case age < s.freshFor:
			s.logger.Debug("page cache hit", "query", query, "page", number, "age", age)
			return cached.Page, nil
		case age >= s.evictAfter:
			hit = false
		}
	}

	key := fmt.Sprintf("%q:%d", query, number)
	v, err, shared := s.flight.Do(key, func() (interface{}, error) {
		return s.fetchFromSource(ctx, query, number)
	})
	if err != nil {
		if hit {
			s.logger.Warn("serving stale page after fetch error", "error", err, "query", query, "page", number)
			return cached.Page, nil
		}
		return domain.Page{}, err
	}
	if shared {
		s.logger.Debug("shared in-flight fetch", "query", query, "page", number)
	}
	return v.(domain.Page), nil
}

func (s *Service) fetchFromSource(ctx context.Context, query string, number int) (domain.Page, error) {
	var (
		page domain.Page
		err  error
	)
	if query == "" {
		page, err = s.source.FetchPage(ctx, number)
	} else {
		page, err = s.source.SearchPage(ctx, query, number)
	}
	if err != nil {
		s.logger.Error("failed to fetch page", "error", err, "query", query, "page", number)
		return domain.Page{}, err
	}
	page.Number = number

	entry := domain.CachedPage{Query: query, Page: page, FetchedAt: s.now()}
	if err := s.store.SavePage(entry); err != nil {
		s.logger.Error("failed to save page", "error", err, "query", query, "page", number)
	}

	s.logger.Debug("fetched page", "query", query, "page", number, "count", len(page.Movies), "totalPages", page.TotalPages)
	return page, nil
}

// Refresh drops every cached page for query so the next fetch hits the source
func (s *Service) Refresh(query string) {
	s.store.InvalidateQuery(query)
	s.logger.Info("cleared cached pages", "query", query)
}

// Prune evicts cached pages older than the eviction window
func (s *Service) Prune() int {
	removed := s.store.Prune(s.now().Add(-s.evictAfter))
	if removed > 0 {
		s.logger.Debug("pruned cached pages", "count", removed)
	}
	return removed
}
