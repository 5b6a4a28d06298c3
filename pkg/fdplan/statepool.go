package fdplan

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
)

// StateID is an opaque, non-negative handle to a packed state interned
// in a StatePool. IDs are assigned in insertion order and are stable
// for the lifetime of the pool.
type StateID int64

// NoState is the distinguished sentinel for "no such state".
const NoState StateID = -1

const segmentBits = 10
const segmentSize = 1 << segmentBits // 1024 states per segment
const segmentMask = segmentSize - 1

// PoolStats mirrors the teacher's ConstraintStorePool instrumentation
// (hit/miss/eviction counters over atomics) adapted to state interning:
// it tracks how often Insert found an existing state versus allocated
// a new one, supplementing spec §4.1's bare insert/find contract with
// an observability surface. It is read through StatePool.Stats only;
// internal/metrics and internal/statsserver do not export it.
type PoolStats struct {
	Hits   int64
	Misses int64
}

// StatePool interns packed states into stable StateIDs. Backing
// storage is a segmented array of packed buffers — segments are never
// reallocated, so issued StateIDs remain valid for the life of the
// pool — indexed by a hash map from packed bytes to StateID (spec
// §4.1).
type StatePool struct {
	packer *Packer

	mu       sync.RWMutex
	segments [][]State
	index    map[string]StateID

	hits   int64
	misses int64
}

// NewStatePool creates an empty pool for the given packer.
func NewStatePool(packer *Packer) *StatePool {
	return &StatePool{
		packer: packer,
		index:  make(map[string]StateID),
	}
}

// Packer returns the packer descriptor this pool was built from.
func (p *StatePool) Packer() *Packer { return p.packer }

// Len returns the number of distinct states interned so far.
func (p *StatePool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.len()
}

func (p *StatePool) len() int {
	if len(p.segments) == 0 {
		return 0
	}
	full := (len(p.segments) - 1) * segmentSize
	return full + len(p.segments[len(p.segments)-1])
}

func stateKey(s State) string {
	buf := make([]byte, len(s)*8)
	for i, w := range s {
		binary.LittleEndian.PutUint64(buf[i*8:(i+1)*8], w)
	}
	return string(buf)
}

// Insert interns a full assignment given as packed words, returning
// the existing id if an equal packed buffer is already present.
func (p *StatePool) Insert(s State) StateID {
	key := stateKey(s)

	p.mu.RLock()
	if id, ok := p.index[key]; ok {
		p.mu.RUnlock()
		atomic.AddInt64(&p.hits, 1)
		return id
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.index[key]; ok {
		atomic.AddInt64(&p.hits, 1)
		return id
	}

	id := StateID(p.len())
	owned := p.packer.Clone(s)
	p.appendLocked(owned)
	p.index[key] = id
	atomic.AddInt64(&p.misses, 1)
	return id
}

// InsertValues packs values and interns the result.
func (p *StatePool) InsertValues(values []int) StateID {
	return p.Insert(p.packer.Pack(values))
}

func (p *StatePool) appendLocked(s State) {
	if len(p.segments) == 0 || len(p.segments[len(p.segments)-1]) == segmentSize {
		p.segments = append(p.segments, make([]State, 0, segmentSize))
	}
	last := len(p.segments) - 1
	p.segments[last] = append(p.segments[last], s)
}

// Find looks up a packed buffer without interning it.
func (p *StatePool) Find(s State) (StateID, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.index[stateKey(s)]
	return id, ok
}

// at returns the stored buffer for id (read-only; callers must not
// mutate it).
func (p *StatePool) at(id StateID) State {
	seg := int(id) >> segmentBits
	off := int(id) & segmentMask
	return p.segments[seg][off]
}

// GetState unpacks id into a caller-supplied State buffer.
func (p *StatePool) GetState(id StateID, out State) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	copy(out, p.at(id))
}

// Raw returns a read-only view of id's packed buffer. The returned
// slice aliases pool storage and must not be mutated.
func (p *StatePool) Raw(id StateID) State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.at(id)
}

// ApplyPartial materializes (S[id] &^ ps.mask) | ps.val and interns
// the result, without mutating S[id].
func (p *StatePool) ApplyPartial(ps *PartialState, id StateID) StateID {
	src := p.Raw(id)
	next := p.packer.ApplyPartial(ps, src)
	return p.Insert(next)
}

// ApplyRaw is ApplyPartial with caller-supplied mask/value buffers,
// used for conditional-effect composition.
func (p *StatePool) ApplyRaw(mask, val State, id StateID) StateID {
	src := p.Raw(id)
	next := p.packer.ApplyRaw(mask, val, src)
	return p.Insert(next)
}

// PartialIsSubset tests (S[id] & ps.mask) == ps.val.
func (p *StatePool) PartialIsSubset(ps *PartialState, id StateID) bool {
	return ps.IsSubset(p.Raw(id))
}

// Stats returns a snapshot of pool hit/miss counters.
func (p *StatePool) Stats() PoolStats {
	return PoolStats{
		Hits:   atomic.LoadInt64(&p.hits),
		Misses: atomic.LoadInt64(&p.misses),
	}
}
