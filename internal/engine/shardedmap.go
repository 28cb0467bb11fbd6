package engine

import "sync"

// shardedMap is a fixed-count array of (mutex, map) pairs used to
// accumulate per-document relevance during parallel scoring with bounded
// contention: only keys that happen to land on the same shard serialize.
//
// Keys are ints (document ids); values are float64 (relevance). Modeled on
// the original ConcurrentMap<Key, Value> template.
type shardedMap struct {
	shards []shard
}

type shard struct {
	mu sync.Mutex
	m  map[int]float64
}

func newShardedMap(shardCount int) *shardedMap {
	sm := &shardedMap{shards: make([]shard, shardCount)}
	for i := range sm.shards {
		sm.shards[i].m = make(map[int]float64)
	}
	return sm
}

func (sm *shardedMap) shardFor(key int) *shard {
	idx := key % len(sm.shards)
	if idx < 0 {
		idx += len(sm.shards)
	}
	return &sm.shards[idx]
}

// add locks the shard owning key and adds delta to its current value,
// default zero. This is the Go equivalent of ConcurrentMap::operator[]'s
// Access guard: the lock is held only for the duration of the update.
func (sm *shardedMap) add(key int, delta float64) {
	s := sm.shardFor(key)
	s.mu.Lock()
	s.m[key] += delta
	s.mu.Unlock()
}

// erase removes key from its shard, if present.
func (sm *shardedMap) erase(key int) {
	s := sm.shardFor(key)
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// buildOrdinary locks each shard in turn and merges its entries into a
// single ordinary map. No ordering is enforced across shards during
// concurrent writes; this call only guarantees a consistent snapshot once
// all writers have finished.
func (sm *shardedMap) buildOrdinary() map[int]float64 {
	out := make(map[int]float64)
	for i := range sm.shards {
		s := &sm.shards[i]
		s.mu.Lock()
		for k, v := range s.m {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}

// size sums shard sizes without locking — a coarse estimate acceptable
// only as a reserve hint, never for correctness.
func (sm *shardedMap) size() int {
	n := 0
	for i := range sm.shards {
		n += len(sm.shards[i].m)
	}
	return n
}
