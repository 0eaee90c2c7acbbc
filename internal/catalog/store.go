package catalog

import "sync/atomic"

// Store holds the current catalog behind an atomic pointer so an admin
// reload can swap in a complete replacement without readers ever observing
// a partially loaded catalog. Readers either see the old catalog or the new
// one, never a mix.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store holding cat.
func NewStore(cat *Catalog) *Store {
	s := &Store{}
	s.current.Store(cat)
	return s
}

// Current returns the catalog as of this call. The returned catalog is
// immutable and remains valid even if a swap happens afterwards.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Swap atomically replaces the catalog.
func (s *Store) Swap(cat *Catalog) {
	s.current.Store(cat)
}
