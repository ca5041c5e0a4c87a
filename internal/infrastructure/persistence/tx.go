package persistence

import (
	"fmt"

	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/domain/shared"
)

// Tx is the staged view of all stores a unit of work reads and writes
// through. Writes are buffered in per-store write sets and become visible to
// other units only at Commit, which validates every staged record against the
// live index and applies all stores' write sets or none of them. Re-executing
// a conflicted unit therefore never re-applies writes of an earlier attempt.
//
// A Tx is bound to one attempt of one unit of work and is not safe for
// concurrent use.
type Tx struct {
	Warehouses *TxStore[*model.Warehouse]
	Districts  *TxStore[*model.District]
	Customers  *TxStore[*model.Customer]
	Orders     *TxStore[*model.Order]
	OrderItems *TxStore[*model.OrderItem]
	Stocks     *TxStore[*model.Stock]
	Products   *TxStore[*model.Product]
	Carriers   *TxStore[*model.Carrier]
	Payments   *TxStore[*model.Payment]
	Employees  *TxStore[*model.Employee]

	// Commit locks dirty stores in this fixed order, so concurrent commits
	// cannot deadlock
	parts []txParticipant
}

// Begin opens a transaction over the store bundle
func (s *Stores) Begin() *Tx {
	t := &Tx{
		Warehouses: newTxStore(s.Warehouses),
		Districts:  newTxStore(s.Districts),
		Customers:  newTxStore(s.Customers),
		Orders:     newTxStore(s.Orders),
		OrderItems: newTxStore(s.OrderItems),
		Stocks:     newTxStore(s.Stocks),
		Products:   newTxStore(s.Products),
		Carriers:   newTxStore(s.Carriers),
		Payments:   newTxStore(s.Payments),
		Employees:  newTxStore(s.Employees),
	}
	t.parts = []txParticipant{
		t.Warehouses, t.Districts, t.Customers, t.Orders, t.OrderItems,
		t.Stocks, t.Products, t.Carriers, t.Payments, t.Employees,
	}
	return t
}

// Commit validates and applies the write sets of all touched stores. Any
// stale or vanished record fails the whole commit with nothing applied, so
// the caller can re-run the unit of work from scratch. Once validation has
// passed, all in-memory indexes are updated before any durability call; a
// flusher error is surfaced but no longer rolls back.
func (t *Tx) Commit() error {
	var dirty []txParticipant
	for _, p := range t.parts {
		if p.isDirty() {
			dirty = append(dirty, p)
		}
	}
	if len(dirty) == 0 {
		return nil
	}

	for _, p := range dirty {
		p.lockStore()
	}
	defer func() {
		for i := len(dirty) - 1; i >= 0; i-- {
			dirty[i].unlockStore()
		}
	}()

	for _, p := range dirty {
		if err := p.validateLocked(); err != nil {
			return err
		}
	}
	for _, p := range dirty {
		p.applyLocked()
	}
	for _, p := range dirty {
		if err := p.flushLocked(); err != nil {
			return err
		}
	}
	return nil
}

// txParticipant is the store-type-erased commit protocol of one write set
type txParticipant interface {
	isDirty() bool
	lockStore()
	unlockStore()
	validateLocked() error
	applyLocked()
	flushLocked() error
}

// stagedRecord is one buffered write. The item keeps the version it was read
// at; the bump happens on apply.
type stagedRecord[T any] struct {
	item        T
	baseVersion int64
	isNew       bool
}

// TxStore is one store's view inside a transaction. Reads see the staged
// write set layered over the committed index; Save and SaveAll only stage.
type TxStore[T Record[T, string]] struct {
	store  *Store[T, string]
	staged map[string]*stagedRecord[T]
}

func newTxStore[T Record[T, string]](store *Store[T, string]) *TxStore[T] {
	return &TxStore[T]{
		store:  store,
		staged: make(map[string]*stagedRecord[T]),
	}
}

// GetByID returns the staged record if the transaction wrote it, the
// committed one otherwise, or a NOT_FOUND error
func (v *TxStore[T]) GetByID(id string) (T, error) {
	if st, ok := v.staged[id]; ok {
		return st.item.Clone(), nil
	}
	return v.store.GetByID(id)
}

// FindByID returns the record as GetByID does, or false if absent
func (v *TxStore[T]) FindByID(id string) (T, bool) {
	if st, ok := v.staged[id]; ok {
		return st.item.Clone(), true
	}
	return v.store.FindByID(id)
}

// Filter returns all records matching the predicate, staged writes shadowing
// their committed versions
func (v *TxStore[T]) Filter(pred func(T) bool) []T {
	var matches []T
	v.store.mu.RLock()
	for id, item := range v.store.items {
		if st, ok := v.staged[id]; ok {
			item = st.item
		}
		if pred(item) {
			matches = append(matches, item.Clone())
		}
	}
	v.store.mu.RUnlock()

	for _, st := range v.staged {
		if st.isNew && pred(st.item) {
			matches = append(matches, st.item.Clone())
		}
	}
	return matches
}

// FindAll returns a snapshot of all records visible to the transaction
func (v *TxStore[T]) FindAll() []T {
	return v.Filter(func(T) bool { return true })
}

// Save stages an insert or update. A record without an id gets a fresh
// identifier right away so the caller can reference it, but nothing reaches
// the shared index before Commit. Updates of records this transaction has not
// staged yet are validated against the committed version immediately, so a
// unit racing another writer fails fast.
func (v *TxStore[T]) Save(item T) (T, error) {
	var zero T
	if item.GetID() == "" {
		item.SetID(v.nextFreeID())
		item.SetVersion(1)
		v.staged[item.GetID()] = &stagedRecord[T]{item: item.Clone(), isNew: true}
		return item, nil
	}

	if st, ok := v.staged[item.GetID()]; ok {
		st.item = item.Clone()
		return item, nil
	}

	current, ok := v.store.FindByID(item.GetID())
	if !ok {
		return zero, shared.NewDomainError(shared.CodeUnknownIdentifier,
			fmt.Sprintf("Unable to find record with id %v", item.GetID()))
	}
	if current.GetVersion() != item.GetVersion() {
		return zero, shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Record %v was modified by another transaction", item.GetID()))
	}
	v.staged[item.GetID()] = &stagedRecord[T]{item: item.Clone(), baseVersion: item.GetVersion()}
	return item, nil
}

// SaveAll stages a batch. The whole batch is validated before any record is
// staged, so a stale or unknown record leaves the write set untouched.
func (v *TxStore[T]) SaveAll(items []T) ([]T, error) {
	for _, item := range items {
		id := item.GetID()
		if id == "" {
			continue
		}
		if _, ok := v.staged[id]; ok {
			continue
		}
		current, ok := v.store.FindByID(id)
		if !ok {
			return nil, shared.NewDomainError(shared.CodeUnknownIdentifier,
				fmt.Sprintf("Unable to find record with id %v", id))
		}
		if current.GetVersion() != item.GetVersion() {
			return nil, shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("Record %v was modified by another transaction", id))
		}
	}
	for _, item := range items {
		if _, err := v.Save(item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// nextFreeID draws from the generator until the candidate collides with
// neither the committed index nor the write set
func (v *TxStore[T]) nextFreeID() string {
	for {
		id := v.store.gen.Next()
		if _, ok := v.staged[id]; ok {
			continue
		}
		if v.store.contains(id) {
			continue
		}
		return id
	}
}

func (v *TxStore[T]) isDirty() bool { return len(v.staged) > 0 }
func (v *TxStore[T]) lockStore()    { v.store.mu.Lock() }
func (v *TxStore[T]) unlockStore()  { v.store.mu.Unlock() }

// validateLocked re-checks every staged record against the live index.
// Another transaction may have committed between staging and this commit.
func (v *TxStore[T]) validateLocked() error {
	for id, st := range v.staged {
		current, ok := v.store.items[id]
		if st.isNew {
			if ok {
				return shared.NewDomainError(shared.CodeConflict,
					fmt.Sprintf("Identifier %v was taken by another transaction", id))
			}
			continue
		}
		if !ok {
			return shared.NewDomainError(shared.CodeUnknownIdentifier,
				fmt.Sprintf("Unable to find record with id %v", id))
		}
		if current.GetVersion() != st.baseVersion {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("Record %v was modified by another transaction", id))
		}
	}
	return nil
}

// applyLocked moves the write set into the index, bumping versions
func (v *TxStore[T]) applyLocked() {
	for id, st := range v.staged {
		item := st.item.Clone()
		if st.isNew {
			item.SetVersion(1)
		} else {
			item.SetVersion(st.baseVersion + 1)
		}
		v.store.items[id] = item
	}
}

// flushLocked hands the applied write set to the durability hook, mirroring
// the store's own flush rules: any insert flushes the full index, updates
// flush as a delta
func (v *TxStore[T]) flushLocked() error {
	var updated []T
	anyNew := false
	for id, st := range v.staged {
		if st.isNew {
			anyNew = true
			continue
		}
		updated = append(updated, v.store.items[id].Clone())
	}
	if anyNew {
		return v.store.flusher.StoreAll(v.store.snapshotLocked())
	}
	if len(updated) > 0 {
		return v.store.flusher.Store(updated...)
	}
	return nil
}
