package persistence

import (
	"fmt"
	"sync"

	"github.com/wss/backend/internal/domain/shared"
)

// Store holds all live records of one entity type, indexed by identifier.
// Reads take a shared lock, mutations an exclusive lock.
//
// Reads hand out clones and Save checks the record version against the
// stored one, so a writer that raced another one fails with a CONFLICT error
// instead of silently losing an update. Save and SaveAll commit eagerly and
// are meant for standalone writes (data generation, administrative resets);
// units of work touching several records go through a Tx, whose write set
// commits all-or-nothing.
type Store[T Record[T, I], I comparable] struct {
	mu      sync.RWMutex
	items   map[I]T
	gen     IdentityGenerator[I]
	flusher Flusher[T, I]
}

// NewStore creates an empty store with the given identity generator and
// durability hook
func NewStore[T Record[T, I], I comparable](gen IdentityGenerator[I], flusher Flusher[T, I]) *Store[T, I] {
	return &Store[T, I]{
		items:   make(map[I]T),
		gen:     gen,
		flusher: flusher,
	}
}

// Restore creates a store over a previously persisted index. The identity
// generator is not part of the persisted state and must be supplied again.
func Restore[T Record[T, I], I comparable](gen IdentityGenerator[I], flusher Flusher[T, I], index map[I]T) *Store[T, I] {
	s := NewStore(gen, flusher)
	for id, item := range index {
		s.items[id] = item.Clone()
	}
	return s
}

// GetByID returns the record with the given id or a NOT_FOUND error
func (s *Store[T, I]) GetByID(id I) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Unable to find record with id %v", id))
	}
	return item.Clone(), nil
}

// FindByID returns the record with the given id, or false if absent
func (s *Store[T, I]) FindByID(id I) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// FindAll returns a snapshot of all records in no particular order
func (s *Store[T, I]) FindAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]T, 0, len(s.items))
	for _, item := range s.items {
		all = append(all, item.Clone())
	}
	return all
}

// Filter returns a snapshot of all records matching the predicate
func (s *Store[T, I]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []T
	for _, item := range s.items {
		if pred(item) {
			matches = append(matches, item.Clone())
		}
	}
	return matches
}

// Save inserts or updates a single record.
//
// A record without an id is new: it gets a fresh identifier, version 1, and
// the full index is flushed. A record with an id must already exist in the
// store (UNKNOWN_IDENTIFIER otherwise) and carry the stored version
// (CONFLICT otherwise); the update is flushed eagerly on its own.
func (s *Store[T, I]) Save(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	var zeroID I
	if item.GetID() == zeroID {
		item.SetID(s.nextFreeID())
		item.SetVersion(1)
		s.items[item.GetID()] = item.Clone()
		if err := s.flusher.StoreAll(s.snapshotLocked()); err != nil {
			return zero, err
		}
		return item, nil
	}

	current, ok := s.items[item.GetID()]
	if !ok {
		// Illegal: the identifier was assigned by someone else
		return zero, shared.NewDomainError(shared.CodeUnknownIdentifier,
			fmt.Sprintf("Unable to find record with id %v", item.GetID()))
	}
	if current.GetVersion() != item.GetVersion() {
		return zero, shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Record %v was modified by another transaction", item.GetID()))
	}
	item.SetVersion(item.GetVersion() + 1)
	s.items[item.GetID()] = item.Clone()
	if err := s.flusher.Store(item); err != nil {
		return zero, err
	}
	return item, nil
}

// SaveAll inserts or updates a batch of records. The batch is validated
// before anything is mutated: if any record with a set id is unknown or
// stale, the whole call fails and nothing is inserted. Identifiers are
// assigned to every new record before any durability call; new and existing
// records are flushed through separate calls.
func (s *Store[T, I]) SaveAll(items []T) ([]T, error) {
	if len(items) == 0 {
		return items, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var zeroID I
	var newItems, existing []T
	for _, item := range items {
		if item.GetID() == zeroID {
			newItems = append(newItems, item)
			continue
		}
		current, ok := s.items[item.GetID()]
		if !ok {
			return nil, shared.NewDomainError(shared.CodeUnknownIdentifier,
				fmt.Sprintf("Unable to find record with id %v", item.GetID()))
		}
		if current.GetVersion() != item.GetVersion() {
			return nil, shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("Record %v was modified by another transaction", item.GetID()))
		}
		existing = append(existing, item)
	}

	for _, item := range newItems {
		item.SetID(s.nextFreeID())
		item.SetVersion(1)
		s.items[item.GetID()] = item.Clone()
	}
	for _, item := range existing {
		item.SetVersion(item.GetVersion() + 1)
		s.items[item.GetID()] = item.Clone()
	}

	if len(newItems) > 0 {
		if err := s.flusher.StoreAll(s.snapshotLocked()); err != nil {
			return nil, err
		}
	}
	if len(existing) > 0 {
		if err := s.flusher.Store(existing...); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Clear empties the index and flushes the empty state
func (s *Store[T, I]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[I]T)
	return s.flusher.StoreAll(map[I]T{})
}

// Count returns the current number of records
func (s *Store[T, I]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// contains reports whether the id is present in the index
func (s *Store[T, I]) contains(id I) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// nextFreeID draws from the generator until the candidate does not collide
// with an existing key. Callers must hold the write lock.
func (s *Store[T, I]) nextFreeID() I {
	for {
		id := s.gen.Next()
		if _, taken := s.items[id]; !taken {
			return id
		}
	}
}

// snapshotLocked copies the index for handing to the flusher. Callers must
// hold the write lock.
func (s *Store[T, I]) snapshotLocked() map[I]T {
	snapshot := make(map[I]T, len(s.items))
	for id, item := range s.items {
		snapshot[id] = item.Clone()
	}
	return snapshot
}
