package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageHasNext(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want bool
	}{
		{"next within total", Page{Number: 1, NextPage: 2, TotalPages: 3}, true},
		{"no next page", Page{Number: 3, NextPage: 0, TotalPages: 3}, false},
		{"next past total", Page{Number: 3, NextPage: 4, TotalPages: 3}, false},
		{"empty result", Page{Number: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.HasNext())
		})
	}
}

func TestMovieDescription(t *testing.T) {
	assert.Equal(t, "1995 · ★ 7.9", Movie{Year: 1995, Rating: 7.94}.Description())
	assert.Equal(t, "1995", Movie{Year: 1995}.Description())
	assert.Equal(t, "★ 6.0", Movie{Rating: 6}.Description())
	assert.Equal(t, "", Movie{}.Description())
}

func TestMovieFormattedRating(t *testing.T) {
	assert.Equal(t, "", Movie{}.FormattedRating())
	assert.Equal(t, "8.5", Movie{Rating: 8.46}.FormattedRating())
}

func TestCachedPageAge(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := CachedPage{FetchedAt: now.Add(-6 * time.Minute)}
	assert.Equal(t, 6*time.Minute, c.Age(now))
}
