// Package shortlist keeps the set of movies the user has picked out.
//
// A single Store lives for the whole run of the program. main creates it and
// hands the same pointer to every screen that reads or toggles membership.
// Nothing is persisted: each run starts with an empty shortlist.
package shortlist

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// Store is an insertion-ordered set of movies keyed by id
type Store struct {
	mu     sync.RWMutex
	byID   map[string]int // id -> index into order
	order  []domain.Movie
	logger *slog.Logger
}

// NewStore creates an empty shortlist
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		byID:   make(map[string]int),
		logger: logger,
	}
}

// Toggle adds the movie if absent and removes it if present.
// It returns the membership after the flip.
func (s *Store) Toggle(movie domain.Movie) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.byID[movie.ID]; ok {
		s.order = slices.Delete(s.order, idx, idx+1)
		delete(s.byID, movie.ID)
		for i := idx; i < len(s.order); i++ {
			s.byID[s.order[i].ID] = i
		}
		s.logger.Debug("removed from shortlist", "id", movie.ID, "title", movie.Title, "size", len(s.order))
		return false
	}

	s.byID[movie.ID] = len(s.order)
	s.order = append(s.order, movie)
	s.logger.Debug("added to shortlist", "id", movie.ID, "title", movie.Title, "size", len(s.order))
	return true
}

// IsShortlisted reports whether the movie id is in the shortlist
func (s *Store) IsShortlisted(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// All returns the shortlisted movies in the order they were added
func (s *Store) All() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Len returns the number of shortlisted movies
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear empties the shortlist
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]int)
	s.order = nil
	s.logger.Info("cleared shortlist")
}
