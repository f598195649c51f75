package domain

import (
	"context"
)

// PageSource provides paginated movie listings (implemented by source adapters).
// Page numbers start at 1.
type PageSource interface {
	// FetchPage returns a page of the default browse ordering
	FetchPage(ctx context.Context, page int) (Page, error)

	// SearchPage returns a page of titles matching query
	SearchPage(ctx context.Context, query string, page int) (Page, error)
}

// Validator is implemented by sources that can check their credentials
// without fetching a page
type Validator interface {
	Validate(ctx context.Context) error
}
