package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/domain"
)

// rank returns the movies whose title fuzzily contains query, best match first.
// Movies with equal scores keep catalog order.
func rank(movies []domain.Movie, query string) []domain.Movie {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return movies
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	matches := fuzzy.RankFindFold(query, titles)

	type rankedMovie struct {
		index int
		score int
	}
	ranked := make([]rankedMovie, 0, len(matches))
	for _, match := range matches {
		ranked = append(ranked, rankedMovie{
			index: match.OriginalIndex,
			score: matchScore(strings.ToLower(match.Target), query, match.Distance),
		})
	}

	// Sort by score (lower is better)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score < ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	results := make([]domain.Movie, len(ranked))
	for i, r := range ranked {
		results[i] = movies[r.index]
	}
	return results
}

// matchScore orders exact, prefix and substring hits ahead of scattered matches.
// Lower score = better match.
func matchScore(title, query string, distance int) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	default:
		return 100 + distance
	}
}
