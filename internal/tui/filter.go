package tui

import (
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/sahilm/fuzzy"
)

// titleSource implements fuzzy.Source over lowercase movie titles
type titleSource []domain.Movie

// String returns the lowercase title at index i
func (s titleSource) String(i int) string {
	return strings.ToLower(s[i].Title)
}

// Len returns the number of movies
func (s titleSource) Len() int {
	return len(s)
}

// filterMovies returns the movies whose titles fuzzily match pattern, best
// match first, and the matched rune positions keyed by movie id. An empty
// pattern returns movies unchanged.
func filterMovies(movies []domain.Movie, pattern string) ([]domain.Movie, map[string][]int) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return movies, nil
	}

	matches := fuzzy.FindFrom(pattern, titleSource(movies))

	filtered := make([]domain.Movie, len(matches))
	highlights := make(map[string][]int, len(matches))
	for i, match := range matches {
		m := movies[match.Index]
		filtered[i] = m
		highlights[m.ID] = runeIndexes(match.Str, match.MatchedIndexes)
	}
	return filtered, highlights
}

// runeIndexes converts byte offsets into s to rune positions
func runeIndexes(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	pos := make(map[int]int, len(s))
	r := 0
	for b := range s {
		pos[b] = r
		r++
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if p, ok := pos[b]; ok {
			out = append(out, p)
		}
	}
	return out
}
