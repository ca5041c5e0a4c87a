package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileFlusher persists a store as a JSON snapshot plus a journal of updated
// records. StoreAll rewrites the snapshot and truncates the journal; Store
// appends one JSON line per updated record. The snapshot write goes through a
// temp file and rename so a crash never leaves a half-written snapshot.
type FileFlusher[T Record[T, string]] struct {
	mu       sync.Mutex
	snapshot string
	journal  string
}

// NewFileFlusher creates a flusher writing <dir>/<name>.json and
// <dir>/<name>.journal
func NewFileFlusher[T Record[T, string]](dir, name string) (*FileFlusher[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileFlusher[T]{
		snapshot: filepath.Join(dir, name+".json"),
		journal:  filepath.Join(dir, name+".journal"),
	}, nil
}

// StoreAll rewrites the snapshot with the full index and truncates the journal
func (f *FileFlusher[T]) StoreAll(index map[string]T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := f.snapshot + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.snapshot); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return os.RemoveAll(f.journal)
}

// Store appends the updated records to the journal
func (f *FileFlusher[T]) Store(items ...T) error {
	if len(items) == 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.journal, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("append journal entry: %w", err)
		}
	}
	return nil
}

// Load reads the snapshot back, applying any journal entries on top. Returns
// an empty index if neither file exists yet.
func (f *FileFlusher[T]) Load() (map[string]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := make(map[string]T)
	data, err := os.ReadFile(f.snapshot)
	if err != nil {
		if os.IsNotExist(err) {
			return index, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	journal, err := os.Open(f.journal)
	if err != nil {
		if os.IsNotExist(err) {
			return index, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	dec := json.NewDecoder(journal)
	for dec.More() {
		var item T
		if err := dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		index[item.GetID()] = item
	}
	return index, nil
}
