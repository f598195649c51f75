package domain

import "time"

// PageStore handles the local page cache (BoltDB + memory).
// Entries are keyed by (query, page number).
type PageStore interface {
	GetPage(query string, number int) (CachedPage, bool)
	SavePage(entry CachedPage) error

	// === Invalidation ===
	InvalidateQuery(query string)
	InvalidateAll()

	// Prune removes every entry fetched before the cutoff and returns how many were removed
	Prune(before time.Time) int

	Close() error
}
