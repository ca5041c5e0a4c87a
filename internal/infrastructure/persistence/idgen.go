package persistence

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IdentityGenerator produces candidate identifiers for new records. A store
// draws from its generator until the candidate does not collide with an
// existing key, so generators do not have to guarantee uniqueness themselves.
//
// The generator is injected at store construction; it is never persisted with
// the store's data and must be re-injected when a store is restored.
type IdentityGenerator[I comparable] interface {
	Next() I
}

// UUIDGenerator produces random uuid-shaped string identifiers. This is the
// generator used in production.
type UUIDGenerator struct{}

// Next returns a new random identifier
func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequentialGenerator produces prefixed, monotonically increasing string
// identifiers (P0, P1, ...). Used by the synthetic data generator and tests
// where readable identifiers matter.
type SequentialGenerator struct {
	prefix string
	next   atomic.Int64
}

// NewSequentialGenerator creates a generator producing prefix0, prefix1, ...
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence
func (g *SequentialGenerator) Next() string {
	return fmt.Sprintf("%s%d", g.prefix, g.next.Add(1)-1)
}
