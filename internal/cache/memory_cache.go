package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

func (i item[V]) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

type shard[V any] struct {
	mu    sync.Mutex
	items map[string]item[V]
}

// MemoryCache is a sharded in-process cache with a background sweeper.
// Expired keys are also dropped lazily on read.
type MemoryCache[V any] struct {
	shards []*shard[V]
	now    func() time.Time
	quit   chan struct{}
	once   sync.Once
}

var _ Cache[string] = (*MemoryCache[string])(nil)

func NewMemoryCache[V any]() *MemoryCache[V] {
	return NewMemoryCacheWithOptions[V](32, time.Second)
}

func NewMemoryCacheWithOptions[V any](shardCount int, sweepInterval time.Duration) *MemoryCache[V] {
	if shardCount < 1 {
		shardCount = 1
	}
	mc := &MemoryCache[V]{
		shards: make([]*shard[V], shardCount),
		now:    time.Now,
		quit:   make(chan struct{}),
	}
	for i := range mc.shards {
		mc.shards[i] = &shard[V]{items: make(map[string]item[V])}
	}
	if sweepInterval > 0 {
		go mc.sweepEvery(sweepInterval)
	}
	return mc
}

// Stop ends the sweeper. Safe to call more than once.
func (mc *MemoryCache[V]) Stop() {
	mc.once.Do(func() { close(mc.quit) })
}

func (mc *MemoryCache[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return mc.shards[h.Sum32()%uint32(len(mc.shards))]
}

func (mc *MemoryCache[V]) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return mc.now().Add(ttl)
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	s := mc.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	itm, ok := s.items[key]
	if ok && itm.expired(mc.now()) {
		delete(s.items, key)
		ok = false
	}
	if !ok {
		var zero V
		return zero, ErrCacheMiss
	}
	return itm.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	s := mc.shardFor(key)
	s.mu.Lock()
	s.items[key] = item[V]{value: value, expiresAt: mc.expiry(ttl)}
	s.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	s := mc.shardFor(key)
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) MGet(ctx context.Context, keys ...string) ([]V, []error) {
	values := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		values[i], errs[i] = mc.Get(ctx, key)
	}
	return values, errs
}

func (mc *MemoryCache[V]) MSet(ctx context.Context, kv map[string]V, ttl time.Duration) error {
	for k, v := range kv {
		_ = mc.Set(ctx, k, v, ttl)
	}
	return nil
}

// Len counts live entries
func (mc *MemoryCache[V]) Len() int {
	now := mc.now()
	n := 0
	for _, s := range mc.shards {
		s.mu.Lock()
		for _, itm := range s.items {
			if !itm.expired(now) {
				n++
			}
		}
		s.mu.Unlock()
	}
	return n
}

func (mc *MemoryCache[V]) sweep() {
	now := mc.now()
	for _, s := range mc.shards {
		s.mu.Lock()
		for k, itm := range s.items {
			if itm.expired(now) {
				delete(s.items, k)
			}
		}
		s.mu.Unlock()
	}
}

func (mc *MemoryCache[V]) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			mc.sweep()
		case <-mc.quit:
			return
		}
	}
}
