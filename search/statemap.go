package search

import (
	"sync"

	"github.com/katalvlaran/sokosolve/boxes"
)

// shardCount mirrors the source's StateMap<State>::SHARDS.
const shardCount = 64

// StateMap is the sharded closed-set: a hash map from normalized State to
// StateInfo, split across shardCount independently-mutexed shards so
// workers touching different shards never contend.
type StateMap struct {
	shards [shardCount]struct {
		mu   sync.Mutex
		data map[uint64][]stateEntry
	}
}

type stateEntry struct {
	state boxes.State
	info  boxes.StateInfo
}

// NewStateMap allocates an empty StateMap.
func NewStateMap() *StateMap {
	m := &StateMap{}
	for i := range m.shards {
		m.shards[i].data = make(map[uint64][]stateEntry)
	}

	return m
}

// Shard returns the shard index for s, matching the source's
// fmix64(boxes.hash() * 7) % SHARDS.
func Shard(s boxes.State) int {
	return int(mix(s.Boxes.Hash()*7) % shardCount)
}

func mix(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33

	return k
}

// Lock acquires shard's mutex. Callers must Unlock the same shard.
func (m *StateMap) Lock(shard int)   { m.shards[shard].mu.Lock() }
func (m *StateMap) Unlock(shard int) { m.shards[shard].mu.Unlock() }

// Query returns the StateInfo for s within the already-locked shard, and
// whether it was present.
func (m *StateMap) Query(shard int, s boxes.State) (boxes.StateInfo, bool) {
	for _, e := range m.shards[shard].data[s.Hash()] {
		if e.state.Equal(s) {
			return e.info, true
		}
	}

	return boxes.StateInfo{}, false
}

// Add inserts s with info into the already-locked shard. The caller must
// have verified s isn't already present.
func (m *StateMap) Add(shard int, s boxes.State, info boxes.StateInfo) {
	h := s.Hash()
	m.shards[shard].data[h] = append(m.shards[shard].data[h], stateEntry{state: s, info: info})
}

// Update overwrites the StateInfo for an already-present s within the
// locked shard.
func (m *StateMap) Update(shard int, s boxes.State, info boxes.StateInfo) {
	bucket := m.shards[shard].data[s.Hash()]
	for i, e := range bucket {
		if e.state.Equal(s) {
			bucket[i].info = info
			return
		}
	}
}

// Size returns the total number of closed-or-open states across every
// shard, locking each in turn.
func (m *StateMap) Size() int {
	total := 0
	for i := range m.shards {
		m.shards[i].mu.Lock()
		for _, bucket := range m.shards[i].data {
			total += len(bucket)
		}
		m.shards[i].mu.Unlock()
	}

	return total
}
