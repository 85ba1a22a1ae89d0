package store

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"sync"

	"github.com/goran-ethernal/NomadIndexer/pkg/store"
	"golang.org/x/sync/semaphore"
)

// KVCache is a read-through copy of one KV namespace. Reads never touch the database;
// writes go to the database first and are serialized.
type KVCache struct {
	namespace string
	kv        store.KVStore

	mu     sync.RWMutex
	values map[string]string

	writes *semaphore.Weighted
}

// NewKVCache loads every pair of namespace.
func NewKVCache(ctx context.Context, kv store.KVStore, namespace string) (*KVCache, error) {
	values, err := kv.GetAllKeyPairs(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s key pairs: %w", namespace, err)
	}
	if values == nil {
		values = make(map[string]string)
	}

	return &KVCache{
		namespace: namespace,
		kv:        kv,
		values:    values,
		writes:    semaphore.NewWeighted(1),
	}, nil
}

func (c *KVCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[key]
	return v, ok
}

// GetUint64 returns the value of key parsed as a decimal number.
func (c *KVCache) GetUint64(key string) (uint64, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s/%s holds %q, not a number: %w", c.namespace, key, v, err)
	}
	return n, true, nil
}

func (c *KVCache) Set(ctx context.Context, key, value string) error {
	if err := c.writes.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.writes.Release(1)

	if err := c.kv.SetKeyPair(ctx, c.namespace, key, value); err != nil {
		return err
	}

	c.mu.Lock()
	c.values[key] = value
	c.mu.Unlock()
	return nil
}

func (c *KVCache) SetUint64(ctx context.Context, key string, value uint64) error {
	return c.Set(ctx, key, strconv.FormatUint(value, 10))
}

// All returns a copy of the cached pairs.
func (c *KVCache) All() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return maps.Clone(c.values)
}
