package tmdb

import (
	"strconv"

	"github.com/mmcdole/reel/internal/domain"
)

// TMDB refuses page numbers above this, whatever total_pages says
const maxPages = 500

const movieURLPrefix = "https://www.themoviedb.org/movie/"

// MapPage converts a TMDB list response to a domain page
func MapPage(resp PageResponse, imageURL string) domain.Page {
	total := min(resp.TotalPages, maxPages)

	page := domain.Page{
		Number:       resp.Page,
		Movies:       MapMovies(resp.Results, imageURL),
		TotalPages:   total,
		TotalResults: resp.TotalResults,
	}
	if resp.Page < total {
		page.NextPage = resp.Page + 1
	}
	return page
}

// MapMovies converts TMDB results to domain movies, skipping untitled entries
func MapMovies(results []MovieDTO, imageURL string) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		if r.Title == "" && r.OriginalTitle == "" {
			continue
		}
		movies = append(movies, mapMovie(r, imageURL))
	}
	return movies
}

func mapMovie(r MovieDTO, imageURL string) domain.Movie {
	id := strconv.Itoa(r.ID)
	m := domain.Movie{
		ID:          id,
		Title:       r.Title,
		Overview:    r.Overview,
		ReleaseDate: r.ReleaseDate,
		Year:        parseYear(r.ReleaseDate),
		Rating:      r.VoteAverage,
		VoteCount:   r.VoteCount,
		URL:         movieURLPrefix + id,
	}
	if m.Title == "" {
		m.Title = r.OriginalTitle
	}
	if r.PosterPath != "" && imageURL != "" {
		m.PosterURL = imageURL + r.PosterPath
	}
	return m
}

// parseYear extracts the year from a "2006-01-02" date
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
