package store

import (
	"sync"

	"dockboard/internal/features/trucks/domain"
)

// Collection is the set of known trucks. It is treated as immutable: every
// mutation produces a new slice, and truck pointers for untouched trucks are
// carried over unchanged so consumers can detect change by identity.
type Collection []*domain.Truck

// Find returns the truck with the given identifier, or nil.
func (c Collection) Find(truckID int64) *domain.Truck {
	for _, truck := range c {
		if truck.TruckID == truckID {
			return truck
		}
	}
	return nil
}

// ReplaceHistory substitutes one truck's history and re-derives its summary.
// A missing truck is a benign no-op: the same collection is returned
// unchanged, since the truck may have been removed or not yet loaded.
func ReplaceHistory(col Collection, truckID int64, history []domain.TruckUpdate) Collection {
	index := -1
	for i, truck := range col {
		if truck.TruckID == truckID {
			index = i
			break
		}
	}
	if index == -1 {
		return col
	}

	next := make(Collection, len(col))
	copy(next, col)
	next[index] = col[index].WithHistory(history)
	return next
}

// Store holds the current collection and hands out point-in-time snapshots.
// It is the only shared mutable state in the subsystem; every change goes
// through Replace or Mutate, which swap the collection atomically.
type Store struct {
	mu      sync.Mutex
	current Collection
	subs    map[int]func(Collection)
	nextSub int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		current: Collection{},
		subs:    make(map[int]func(Collection)),
	}
}

// Snapshot returns the current collection. The returned value must be treated
// as immutable.
func (s *Store) Snapshot() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Replace swaps in a whole new collection, e.g. after a remote refresh.
func (s *Store) Replace(col Collection) {
	s.Mutate(func(Collection) Collection {
		return col
	})
}

// Mutate applies fn to the current collection and installs its result as the
// new current state. fn must not modify its argument; it runs under the store
// lock, so no other mutation can interleave with it.
func (s *Store) Mutate(fn func(Collection) Collection) Collection {
	s.mu.Lock()
	next := fn(s.current)
	s.current = next
	listeners := make([]func(Collection), 0, len(s.subs))
	for _, sub := range s.subs {
		listeners = append(listeners, sub)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
	return next
}

// Subscribe registers fn to be called after every collection change. The
// returned cancel function removes the subscription.
func (s *Store) Subscribe(fn func(Collection)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
