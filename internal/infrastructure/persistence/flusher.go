package persistence

// Flusher is the durability hook a store delegates to after mutating its
// in-memory index. StoreAll receives a snapshot of the full index (after
// inserts and clears), Store receives the delta of updated records. An error
// means the durability call could not be issued; the store never waits for
// the underlying write to become durable.
type Flusher[T Record[T, I], I comparable] interface {
	StoreAll(index map[I]T) error
	Store(items ...T) error
}

// NoopFlusher discards all durability calls. Used for the in-memory
// persistence mode and in tests.
type NoopFlusher[T Record[T, I], I comparable] struct{}

// StoreAll does nothing
func (NoopFlusher[T, I]) StoreAll(map[I]T) error {
	return nil
}

// Store does nothing
func (NoopFlusher[T, I]) Store(...T) error {
	return nil
}
