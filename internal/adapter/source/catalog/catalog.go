// Package catalog serves movies from a local JSON file.
// It is used offline and as a deterministic source in demos.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/mmcdole/reel/internal/domain"
)

// DefaultPageSize is used when the configured page size is not positive
const DefaultPageSize = 20

// Catalog implements domain.PageSource over an in-memory movie list
type Catalog struct {
	movies   []domain.Movie
	pageSize int
	logger   *slog.Logger
}

// Open reads a JSON array of movies from path
func Open(path string, pageSize int, logger *slog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrCatalogNotFound)
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	c := New(movies, pageSize, logger)
	c.logger.Info("catalog loaded", "path", path, "movies", len(c.movies))
	return c, nil
}

// New creates a catalog over movies. Entries without an id are dropped.
func New(movies []domain.Movie, pageSize int, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	kept := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.ID == "" {
			continue
		}
		kept = append(kept, m)
	}

	return &Catalog{
		movies:   kept,
		pageSize: pageSize,
		logger:   logger,
	}
}

// FetchPage returns a page of the catalog in file order
func (c *Catalog) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}
	return paginate(c.movies, page, c.pageSize)
}

// SearchPage returns a page of catalog titles ranked against query
func (c *Catalog) SearchPage(ctx context.Context, query string, page int) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}
	return paginate(rank(c.movies, query), page, c.pageSize)
}

// paginate cuts page number (1-based) out of movies.
// Page 1 of an empty list is an empty page rather than an error.
func paginate(movies []domain.Movie, page, size int) (domain.Page, error) {
	totalPages := (len(movies) + size - 1) / size
	if page < 1 || (page > totalPages && page != 1) {
		return domain.Page{}, fmt.Errorf("page %d of %d: %w", page, totalPages, domain.ErrPageOutOfRange)
	}

	start := min((page-1)*size, len(movies))
	end := min(start+size, len(movies))

	p := domain.Page{
		Number:       page,
		Movies:       slices.Clone(movies[start:end]),
		TotalPages:   totalPages,
		TotalResults: len(movies),
	}
	if page < totalPages {
		p.NextPage = page + 1
	}
	return p, nil
}
