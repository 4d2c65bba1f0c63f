// Package store holds the in-memory mirror of the remote scorecard API.
package store

import (
	"sync"

	"fairway/internal/core"
)

// RecordStore is the authoritative in-memory list of scorecards last
// fetched from the API. The sync controller is the only writer; everything
// else reads. Reads hand out deep copies, so a filtered view derived from
// All can never mutate the store's contents.
type RecordStore struct {
	mu    sync.RWMutex
	cards []core.Scorecard
}

func New() *RecordStore {
	return &RecordStore{}
}

// ReplaceAll swaps the entire contents for the given list, as after a
// successful list() fetch.
func (s *RecordStore) ReplaceAll(cards []core.Scorecard) {
	next := make([]core.Scorecard, len(cards))
	for i, sc := range cards {
		next[i] = sc.Clone()
	}
	s.mu.Lock()
	s.cards = next
	s.mu.Unlock()
}

// All returns a copy of the full list in fetch order.
func (s *RecordStore) All() []core.Scorecard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Scorecard, len(s.cards))
	for i, sc := range s.cards {
		out[i] = sc.Clone()
	}
	return out
}

// Get returns the scorecard with the given id.
func (s *RecordStore) Get(id string) (core.Scorecard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.cards {
		if sc.ID == id {
			return sc.Clone(), true
		}
	}
	return core.Scorecard{}, false
}

// Upsert patches one scorecard in place, or appends it when the id is new.
func (s *RecordStore) Upsert(sc core.Scorecard) {
	cp := sc.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == cp.ID {
			s.cards[i] = cp
			return
		}
	}
	s.cards = append(s.cards, cp)
}

// Remove deletes the scorecard with the given id. It reports whether the
// id was present.
func (s *RecordStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of scorecards held.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Courses returns the distinct course names in order of first appearance,
// for the filter dropdown.
func (s *RecordStore) Courses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool, len(s.cards))
	out := make([]string, 0, len(s.cards))
	for _, sc := range s.cards {
		if !seen[sc.CourseName] {
			seen[sc.CourseName] = true
			out = append(out, sc.CourseName)
		}
	}
	return out
}
