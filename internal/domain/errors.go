package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSourceOffline indicates the movie source is unreachable
	ErrSourceOffline = errors.New("movie source is unreachable")

	// ErrAuthFailed indicates the configured token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrPageOutOfRange indicates a page number below 1 or past the last page
	ErrPageOutOfRange = errors.New("page number out of range")

	// ErrNotConfigured indicates the source is missing required settings
	ErrNotConfigured = errors.New("movie source is not configured")

	// ErrCatalogNotFound indicates the local catalog file does not exist
	ErrCatalogNotFound = errors.New("catalog file not found")
)
