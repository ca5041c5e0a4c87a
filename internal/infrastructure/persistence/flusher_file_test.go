package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wss/backend/internal/domain/model"
)

func TestFileFlusherLoadsEmptyIndexWithoutFiles(t *testing.T) {
	flusher, err := NewFileFlusher[*model.Product](t.TempDir(), "products")
	require.NoError(t, err)

	index, err := flusher.Load()
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestFileFlusherSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	flusher, err := NewFileFlusher[*model.Product](dir, "products")
	require.NoError(t, err)

	index := map[string]*model.Product{
		"p1": {Base: model.Base{ID: "p1", Version: 1}, Name: "widget"},
		"p2": {Base: model.Base{ID: "p2", Version: 3}, Name: "gadget"},
	}
	require.NoError(t, flusher.StoreAll(index))

	loaded, err := flusher.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "widget", loaded["p1"].Name)
	assert.Equal(t, int64(3), loaded["p2"].Version)
}

func TestFileFlusherJournalAppliesOnTopOfSnapshot(t *testing.T) {
	dir := t.TempDir()
	flusher, err := NewFileFlusher[*model.Product](dir, "products")
	require.NoError(t, err)

	require.NoError(t, flusher.StoreAll(map[string]*model.Product{
		"p1": {Base: model.Base{ID: "p1", Version: 1}, Name: "widget"},
	}))
	require.NoError(t, flusher.Store(&model.Product{Base: model.Base{ID: "p1", Version: 2}, Name: "renamed"}))
	require.NoError(t, flusher.Store(&model.Product{Base: model.Base{ID: "p1", Version: 3}, Name: "renamed again"}))

	loaded, err := flusher.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "renamed again", loaded["p1"].Name)
	assert.Equal(t, int64(3), loaded["p1"].Version)
}

func TestFileFlusherStoreAllTruncatesJournal(t *testing.T) {
	dir := t.TempDir()
	flusher, err := NewFileFlusher[*model.Product](dir, "products")
	require.NoError(t, err)

	require.NoError(t, flusher.StoreAll(map[string]*model.Product{
		"p1": {Base: model.Base{ID: "p1", Version: 1}, Name: "widget"},
	}))
	require.NoError(t, flusher.Store(&model.Product{Base: model.Base{ID: "p1", Version: 2}, Name: "stale entry"}))
	require.NoError(t, flusher.StoreAll(map[string]*model.Product{
		"p2": {Base: model.Base{ID: "p2", Version: 1}, Name: "gadget"},
	}))

	_, statErr := os.Stat(filepath.Join(dir, "products.journal"))
	assert.True(t, os.IsNotExist(statErr), "the journal must be dropped with every full snapshot")

	loaded, err := flusher.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "gadget", loaded["p2"].Name)
}

func TestFileBackedStoresSurviveRestart(t *testing.T) {
	dir := t.TempDir()
	cfg := FlusherConfig{Mode: ModeFile, Dir: dir}
	newGen := func() IdentityGenerator[string] { return UUIDGenerator{} }

	stores, err := NewStores(newGen, cfg)
	require.NoError(t, err)
	warehouse, err := stores.Warehouses.Save(&model.Warehouse{Name: "north"})
	require.NoError(t, err)
	warehouse.Name = "north east"
	_, err = stores.Warehouses.Save(warehouse)
	require.NoError(t, err)

	reopened, err := NewStores(newGen, cfg)
	require.NoError(t, err)
	found, err := reopened.Warehouses.GetByID(warehouse.ID)
	require.NoError(t, err)
	assert.Equal(t, "north east", found.Name)
	assert.Equal(t, int64(2), found.Version)
}
