package persistence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wss/backend/internal/domain/model"
)

func TestUUIDGeneratorProducesDistinctIdentifiers(t *testing.T) {
	gen := UUIDGenerator{}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestSequentialGeneratorCountsFromZero(t *testing.T) {
	gen := NewSequentialGenerator("P")

	assert.Equal(t, "P0", gen.Next())
	assert.Equal(t, "P1", gen.Next())
	assert.Equal(t, "P2", gen.Next())
}

func TestSequentialGeneratorIsSafeForConcurrentUse(t *testing.T) {
	gen := NewSequentialGenerator("C")

	const callers = 8
	const perCaller = 100
	ids := make(chan string, callers*perCaller)
	var wg sync.WaitGroup
	for c := 0; c < callers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perCaller; i++ {
				ids <- gen.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "identifier %s produced twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, callers*perCaller)
}

func TestStoreSkipsCollidingIdentifiers(t *testing.T) {
	// Two records saved through a generator that restarts its sequence must
	// still end up under distinct identifiers.
	store := NewStore[*model.Product, string](NewSequentialGenerator("P"), NoopFlusher[*model.Product, string]{})

	first, err := store.Save(&model.Product{Name: "widget"})
	require.NoError(t, err)
	assert.Equal(t, "P0", first.ID)

	stuck := &stutteringGenerator{ids: []string{"P0", "P0", "P9"}}
	store.gen = stuck
	second, err := store.Save(&model.Product{Name: "gadget"})
	require.NoError(t, err)
	assert.Equal(t, "P9", second.ID)
}

// stutteringGenerator replays a fixed identifier sequence
type stutteringGenerator struct {
	ids []string
	pos int
}

func (g *stutteringGenerator) Next() string {
	id := g.ids[g.pos]
	if g.pos < len(g.ids)-1 {
		g.pos++
	}
	return id
}
