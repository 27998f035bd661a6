// Package library keeps the shared catalog of inclusions, exclusions,
// cancellation policies, master items and itinerary templates.
//
// The Store owns one immutable snapshot. Every mutation works on a clone,
// persists it and only then replaces the snapshot, so a failed write leaves
// the previous state in place.
package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tripquote/internal/logging"
	"github.com/dmitrijs2005/tripquote/internal/models"
)

// Persister durably stores a library snapshot.
type Persister interface {
	SaveLibrary(ctx context.Context, lib models.Library) error
}

type Store struct {
	mu      sync.Mutex
	lib     models.Library
	persist Persister
	log     logging.Logger
}

// NewStore wraps initial. A nil persister keeps the store in memory only.
func NewStore(initial models.Library, p Persister, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{lib: initial.Clone(), persist: p, log: log}
}

// Snapshot returns a deep copy of the current library.
func (s *Store) Snapshot() models.Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.Clone()
}

// Reload replaces the snapshot with the library returned by load without
// persisting it. load runs under the store lock, so no mutation can commit
// between it and the swap.
func (s *Store) Reload(ctx context.Context, load func(ctx context.Context) (models.Library, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := load(ctx)
	if err != nil {
		return err
	}
	s.lib = lib.Clone()
	s.log.Debug(ctx, "library reloaded")
	return nil
}

// mutate applies fn to a clone of the library and commits the result. When fn
// reports changed == false nothing is written.
func (s *Store) mutate(ctx context.Context, op string, fn func(lib *models.Library) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.lib.Clone()
	changed, err := fn(&next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if s.persist != nil {
		if err := s.persist.SaveLibrary(ctx, next); err != nil {
			s.log.Error(ctx, "library not saved", "op", op, "error", err)
			return fmt.Errorf("failed to save library: %w", err)
		}
	}
	s.lib = next
	s.log.Debug(ctx, "library updated", "op", op)
	return nil
}
