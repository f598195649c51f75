package shortlist

import (
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	movieA = domain.Movie{ID: "a", Title: "Alien"}
	movieB = domain.Movie{ID: "b", Title: "Brazil"}
	movieC = domain.Movie{ID: "c", Title: "Casablanca"}
)

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore(nil)
	assert.Empty(t, s.All())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsShortlisted("a"))
}

func TestStoreToggleIsInvolution(t *testing.T) {
	s := NewStore(nil)

	assert.True(t, s.Toggle(movieA))
	assert.Equal(t, []domain.Movie{movieA}, s.All())
	assert.True(t, s.IsShortlisted("a"))

	assert.False(t, s.Toggle(movieA))
	assert.Empty(t, s.All())
	assert.False(t, s.IsShortlisted("a"))
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore(nil)
	s.Toggle(movieB)
	s.Toggle(movieA)
	s.Toggle(movieC)

	assert.Equal(t, []domain.Movie{movieB, movieA, movieC}, s.All())

	// Removing from the middle keeps the rest in place and indexes consistent
	s.Toggle(movieA)
	assert.Equal(t, []domain.Movie{movieB, movieC}, s.All())
	assert.True(t, s.IsShortlisted("c"))

	s.Toggle(movieC)
	assert.Equal(t, []domain.Movie{movieB}, s.All())

	s.Toggle(movieA)
	assert.Equal(t, []domain.Movie{movieB, movieA}, s.All())
}

func TestStoreToggleMatchesByID(t *testing.T) {
	s := NewStore(nil)
	s.Toggle(movieA)

	// Same id with refreshed display attributes still counts as the same movie
	assert.False(t, s.Toggle(domain.Movie{ID: "a", Title: "Alien (Director's Cut)"}))
	assert.Equal(t, 0, s.Len())
}

func TestStoreAllReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.Toggle(movieA)

	all := s.All()
	all[0].Title = "changed"

	assert.Equal(t, "Alien", s.All()[0].Title)
}

func TestStoreClear(t *testing.T) {
	s := NewStore(nil)
	s.Toggle(movieA)
	s.Toggle(movieB)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsShortlisted("b"))

	assert.True(t, s.Toggle(movieB))
}
