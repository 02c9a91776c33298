// Package cache is a process-local response cache for entity listings and
// the inventory summary. Writes invalidate, reads repopulate.
package cache

import (
	"sync"

	"dcim/dao/model"
)

const summaryKey = "summary"

// Store is a keyed cache safe for concurrent use. The zero value is not
// usable; construct with New.
type Store struct {
	mu      sync.RWMutex
	entries map[string]any
}

func New() *Store {
	return &Store{entries: make(map[string]any)}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

func (s *Store) delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
}

// ListingKey names the cached listing for one entity kind.
func ListingKey(entity model.EntityType) string {
	return "listing:" + string(entity)
}

// SummaryKey names the cached inventory summary.
func SummaryKey() string { return summaryKey }

// InvalidateListing drops the cached listing for a kind together with the
// summary, which counts every kind.
func (s *Store) InvalidateListing(entity model.EntityType) {
	s.delete(ListingKey(entity), summaryKey)
}

// InvalidateSummary drops only the summary.
func (s *Store) InvalidateSummary() {
	s.delete(summaryKey)
}
