package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Movie is a single browsable title returned by a page source
type Movie struct {
	ID          string  `json:"id"`           // Source-specific stable identifier
	Title       string  `json:"title"`        // Display title
	Overview    string  `json:"overview"`     // Plot synopsis
	PosterURL   string  `json:"poster_url"`   // Absolute poster image URL (may be empty)
	ReleaseDate string  `json:"release_date"` // "2006-01-02" when known
	Year        int     `json:"year"`         // Release year (0 = unknown)
	Rating      float64 `json:"rating"`       // 0-10 scale
	VoteCount   int     `json:"vote_count"`   // Number of ratings behind Rating
	URL         string  `json:"url"`          // Canonical page for the title, if any
}

// FormattedRating returns the rating as "7.4", or "" when unrated
func (m Movie) FormattedRating() string {
	if m.Rating <= 0 {
		return ""
	}
	return strconv.FormatFloat(m.Rating, 'f', 1, 64)
}

// Description returns the secondary line shown under a title in the grid
func (m Movie) Description() string {
	rating := m.FormattedRating()
	switch {
	case m.Year > 0 && rating != "":
		return fmt.Sprintf("%d · ★ %s", m.Year, rating)
	case m.Year > 0:
		return strconv.Itoa(m.Year)
	case rating != "":
		return "★ " + rating
	default:
		return ""
	}
}

// Page is one page of results from a page source.
// NextPage is only meaningful for the query that produced the page.
type Page struct {
	Number       int     `json:"number"`
	Movies       []Movie `json:"movies"`
	NextPage     int     `json:"next_page"` // 0 when the source reports no next page
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasNext reports whether another page can be requested after this one
func (p Page) HasNext() bool {
	return p.NextPage > 0 && p.NextPage <= p.TotalPages
}

// CachedPage is a page together with the time it was fetched from the source
type CachedPage struct {
	Query     string    `json:"query"`
	Page      Page      `json:"page"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Age returns how long ago the page was fetched relative to now
func (c CachedPage) Age(now time.Time) time.Duration {
	return now.Sub(c.FetchedAt)
}
