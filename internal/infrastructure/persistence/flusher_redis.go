package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisFlusher persists a store as one redis hash, one field per record id.
// StoreAll replaces the whole hash, Store overwrites the fields of the
// updated records.
type RedisFlusher[T Record[T, string]] struct {
	client redis.UniversalClient
	key    string
}

// NewRedisFlusher creates a flusher writing to the given hash key
func NewRedisFlusher[T Record[T, string]](client redis.UniversalClient, key string) *RedisFlusher[T] {
	return &RedisFlusher[T]{client: client, key: key}
}

// StoreAll replaces the hash with the full index
func (f *RedisFlusher[T]) StoreAll(index map[string]T) error {
	ctx := context.Background()
	pipe := f.client.TxPipeline()
	pipe.Del(ctx, f.key)
	if len(index) > 0 {
		fields := make(map[string]any, len(index))
		for id, item := range index {
			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", id, err)
			}
			fields[id] = data
		}
		pipe.HSet(ctx, f.key, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("flush index to redis: %w", err)
	}
	return nil
}

// Store overwrites the hash fields of the updated records
func (f *RedisFlusher[T]) Store(items ...T) error {
	if len(items) == 0 {
		return nil
	}
	ctx := context.Background()
	fields := make(map[string]any, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", item.GetID(), err)
		}
		fields[item.GetID()] = data
	}
	if err := f.client.HSet(ctx, f.key, fields).Err(); err != nil {
		return fmt.Errorf("flush records to redis: %w", err)
	}
	return nil
}

// Load reads the hash back into an index. Returns an empty index if the key
// does not exist.
func (f *RedisFlusher[T]) Load() (map[string]T, error) {
	fields, err := f.client.HGetAll(context.Background(), f.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load index from redis: %w", err)
	}
	index := make(map[string]T, len(fields))
	for id, data := range fields {
		var item T
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", id, err)
		}
		index[id] = item
	}
	return index, nil
}
