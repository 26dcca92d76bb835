package vfs

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// maxShards bounds how many independent partitions the handle cache's
// freshness accounting is split across. This bounds lock contention on the
// hot GetOrCreate path the way pebble's own sharded block cache bounds
// contention on cache gets, at the cost of approximating (rather than
// computing exactly) the single globally-coldest entry when an eviction is
// required. The actual shard count is min(maxShards, capacity), so every
// shard always has at least one slot.
const maxShards = 16

// Factory opens the resource a HandleCache entry represents. It may fail;
// on failure, no entry is added for the key, but a handle that GetOrCreate
// already closed to make room for the new one stays closed.
type Factory func() (*os.File, error)

type cacheEntry struct {
	handle    *os.File // nil once evicted (a "cold" entry)
	freshness atomic.Uint64
}

type shard struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	capacity int
	open     int
}

// HandleCache is a bounded cache of open *os.File handles keyed by a
// logical filename. Distinct from an LRU because it is the handles, not the
// entries, that are capped: an entry may remain known with a nil handle
// (cold) after eviction, and a subsequent GetOrCreate simply reopens it.
type HandleCache struct {
	tick     atomic.Uint64
	shards   []*shard
	capacity int

	// openSem bounds the number of factory() calls (kernel open(2) syscalls)
	// in flight at once to capacity, independent of the per-shard eviction
	// bookkeeping above: it smooths a thundering herd of concurrent misses
	// (e.g. a cold cache warming up) rather than the already-open count.
	openSem *semaphore.Weighted

	metrics *Metrics
}

// NewHandleCache returns a cache that allows at most capacity handles open
// simultaneously.
func NewHandleCache(capacity int, metrics *Metrics) *HandleCache {
	if capacity <= 0 {
		panic("vfs: HandleCache capacity must be positive")
	}
	shardCount := capacity
	if shardCount > maxShards {
		shardCount = maxShards
	}
	hc := &HandleCache{
		capacity: capacity,
		metrics:  metrics,
		shards:   make([]*shard, shardCount),
		openSem:  semaphore.NewWeighted(int64(capacity)),
	}
	base := capacity / shardCount
	extra := capacity % shardCount
	for i := range hc.shards {
		cap := base
		if i < extra {
			cap++
		}
		hc.shards[i] = &shard{entries: make(map[string]*cacheEntry), capacity: cap}
	}
	return hc
}

func (c *HandleCache) shardFor(key string) *shard {
	h := xxhash.Sum64String(key)
	return c.shards[h%uint64(len(c.shards))]
}

// bump refreshes e's freshness counter, half-carrying the previous value
// forward so entries with a long hit history decay instead of resetting:
// freshness <- tick++ + old_freshness>>1. A CAS retry loop keeps this
// lock-free under concurrent hits.
func (c *HandleCache) bump(e *cacheEntry) {
	for {
		old := e.freshness.Load()
		next := c.tick.Add(1) + old>>1
		if e.freshness.CompareAndSwap(old, next) {
			return
		}
	}
}

// GetOrCreate returns the open handle for key, opening one via factory if
// none is cached. If opening would push this shard's open-handle count
// above its capacity, the coldest currently-open entry in the shard is
// closed first (its key is left behind as a cold entry).
func (c *HandleCache) GetOrCreate(key string, factory Factory) (*os.File, error) {
	s := c.shardFor(key)

	s.mu.RLock()
	if e, ok := s.entries[key]; ok && e.handle != nil {
		c.bump(e)
		h := e.handle
		s.mu.RUnlock()
		c.recordHit()
		return h, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check: another writer may have raced us to create or reopen
	// this entry between the read unlock above and this write lock.
	e, existed := s.entries[key]
	if existed && e.handle != nil {
		c.bump(e)
		c.recordHit()
		return e.handle, nil
	}
	if !existed {
		e = &cacheEntry{}
		s.entries[key] = e
	}

	if s.open >= s.capacity {
		c.evictLocked(s)
	}

	if err := c.openSem.Acquire(context.Background(), 1); err != nil {
		if !existed {
			delete(s.entries, key)
		}
		return nil, err
	}
	h, err := factory()
	c.openSem.Release(1)
	if err != nil {
		if !existed {
			delete(s.entries, key)
		}
		return nil, err
	}

	e.handle = h
	c.bump(e)
	s.open++
	c.recordOpen()
	return h, nil
}

// evictLocked closes the handle of the entry with minimum freshness among
// currently-open entries in s. Callers must hold s.mu for writing. Ties are
// broken arbitrarily by map iteration order.
func (c *HandleCache) evictLocked(s *shard) {
	var victim *cacheEntry
	var victimFreshness uint64
	for _, e := range s.entries {
		if e.handle == nil {
			continue
		}
		f := e.freshness.Load()
		if victim == nil || f < victimFreshness {
			victim = e
			victimFreshness = f
		}
	}
	if victim == nil {
		return
	}
	_ = victim.handle.Close()
	victim.handle = nil
	s.open--
	c.recordEvict()
}

// IsOpen reports whether key currently has an open handle cached.
func (c *HandleCache) IsOpen(key string) bool {
	s := c.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return ok && e.handle != nil
}

// LenOpen returns the total number of currently open handles across all
// shards. It always holds that LenOpen() <= Capacity().
func (c *HandleCache) LenOpen() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += s.open
		s.mu.RUnlock()
	}
	return total
}

// Capacity returns the maximum number of simultaneously open handles.
func (c *HandleCache) Capacity() int {
	return c.capacity
}

// CloseAll closes every currently open handle, for use during shutdown.
// Shards are drained concurrently since each owns an independent lock and
// disjoint set of handles; the first error from any shard is returned.
func (c *HandleCache) CloseAll() error {
	var g errgroup.Group
	for _, s := range c.shards {
		s := s
		g.Go(func() error {
			s.mu.Lock()
			defer s.mu.Unlock()
			var first error
			for _, e := range s.entries {
				if e.handle != nil {
					if err := e.handle.Close(); err != nil && first == nil {
						first = err
					}
					e.handle = nil
				}
			}
			s.open = 0
			return first
		})
	}
	return g.Wait()
}

func (c *HandleCache) recordHit() {
	if c.metrics != nil {
		c.metrics.HandleCacheHits.Inc()
	}
}

func (c *HandleCache) recordOpen() {
	if c.metrics != nil {
		c.metrics.HandleCacheOpens.Inc()
		c.metrics.HandleCacheOpenHandles.Inc()
	}
}

func (c *HandleCache) recordEvict() {
	if c.metrics != nil {
		c.metrics.HandleCacheEvictions.Inc()
		c.metrics.HandleCacheOpenHandles.Dec()
	}
}
