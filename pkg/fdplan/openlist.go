package fdplan

import "container/heap"

// Edge is a lazily-materialized open-list entry: an unexpanded
// (parent state, operator) pair keyed by an integer cost (spec §4.4).
type Edge struct {
	Cost        int
	ParentState StateID
	Op          *Operator
}

// OpenList is the shared contract for all four lazy open-list
// variants. Implementations may contain stale entries (the target
// node may already have been closed with a cheaper parent); the
// driver, not the list, is responsible for discarding those at pop
// time.
type OpenList interface {
	Push(cost int, parentState StateID, op *Operator)
	Pop() (Edge, bool)
	Clear()
}

// FIFOList ignores cost entirely and dequeues in insertion order. It
// is the list EHC uses: restart-on-improvement makes cost ordering
// moot, so plain FIFO suffices (spec §4.5).
type FIFOList struct {
	entries []Edge
}

// NewFIFOList returns an empty FIFO open list.
func NewFIFOList() *FIFOList { return &FIFOList{} }

func (l *FIFOList) Push(cost int, parentState StateID, op *Operator) {
	l.entries = append(l.entries, Edge{Cost: cost, ParentState: parentState, Op: op})
}

func (l *FIFOList) Pop() (Edge, bool) {
	if len(l.entries) == 0 {
		return Edge{}, false
	}
	e := l.entries[0]
	l.entries = l.entries[1:]
	return e, true
}

func (l *FIFOList) Clear() { l.entries = nil }

// heapEntry adds a monotonically increasing sequence number so that
// equal-cost entries pop in FIFO order, matching spec §4.4's tie-break.
type heapEntry struct {
	Edge
	seq int64
}

type innerHeap []heapEntry

func (h innerHeap) Len() int { return len(h) }
func (h innerHeap) Less(i, j int) bool {
	if h[i].Cost != h[j].Cost {
		return h[i].Cost < h[j].Cost
	}
	return h[i].seq < h[j].seq
}
func (h innerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// HeapList is a binary min-heap of (cost, sequence) keyed entries.
type HeapList struct {
	h      innerHeap
	nextSeq int64
}

// NewHeapList returns an empty heap-backed open list.
func NewHeapList() *HeapList { return &HeapList{} }

func (l *HeapList) Push(cost int, parentState StateID, op *Operator) {
	heap.Push(&l.h, heapEntry{Edge: Edge{Cost: cost, ParentState: parentState, Op: op}, seq: l.nextSeq})
	l.nextSeq++
}

func (l *HeapList) Pop() (Edge, bool) {
	if l.h.Len() == 0 {
		return Edge{}, false
	}
	e := heap.Pop(&l.h).(heapEntry)
	return e.Edge, true
}

func (l *HeapList) Clear() {
	l.h = nil
	l.nextSeq = 0
}

// BucketList is an array of FIFO queues indexed directly by cost: O(1)
// push and amortized O(1) pop by scanning forward from the last
// non-empty bucket. Exceeding the configured maximum cost is a fatal
// configuration error (spec §4.4, §7): Push panics with a
// NewConfigError value, which callers can avoid by pre-validating with
// Fits.
type BucketList struct {
	buckets [][]Edge
	maxCost int
	lowest  int
}

// NewBucketList returns a bucket list that accepts costs in [0, maxCost].
func NewBucketList(maxCost int) *BucketList {
	return &BucketList{
		buckets: make([][]Edge, maxCost+1),
		maxCost: maxCost,
	}
}

// Fits reports whether cost is within this list's configured range.
func (l *BucketList) Fits(cost int) bool { return cost >= 0 && cost <= l.maxCost }

func (l *BucketList) Push(cost int, parentState StateID, op *Operator) {
	if !l.Fits(cost) {
		panic(NewConfigError("bucket open list: cost %d exceeds configured max %d", cost, l.maxCost))
	}
	l.buckets[cost] = append(l.buckets[cost], Edge{Cost: cost, ParentState: parentState, Op: op})
	if cost < l.lowest {
		l.lowest = cost
	}
}

func (l *BucketList) Pop() (Edge, bool) {
	for l.lowest <= l.maxCost {
		if len(l.buckets[l.lowest]) > 0 {
			e := l.buckets[l.lowest][0]
			l.buckets[l.lowest] = l.buckets[l.lowest][1:]
			return e, true
		}
		l.lowest++
	}
	return Edge{}, false
}

func (l *BucketList) Clear() {
	for i := range l.buckets {
		l.buckets[i] = nil
	}
	l.lowest = 0
}

// MapList keys FIFO buckets by cost in a sorted-key index, supporting
// sparse, widely-spaced costs that would waste memory in a BucketList.
// The teacher corpus has no balanced-tree container in its dependency
// set, so this follows the same approach the teacher uses elsewhere
// for small ordered collections (a sorted slice searched with binary
// search) rather than reaching for an unrelated tree library.
type MapList struct {
	keys    []int
	buckets map[int][]Edge
}

// NewMapList returns an empty map-backed open list.
func NewMapList() *MapList {
	return &MapList{buckets: make(map[int][]Edge)}
}

func (l *MapList) Push(cost int, parentState StateID, op *Operator) {
	if _, ok := l.buckets[cost]; !ok {
		l.insertKey(cost)
	}
	l.buckets[cost] = append(l.buckets[cost], Edge{Cost: cost, ParentState: parentState, Op: op})
}

func (l *MapList) insertKey(cost int) {
	lo, hi := 0, len(l.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if l.keys[mid] < cost {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	l.keys = append(l.keys, 0)
	copy(l.keys[lo+1:], l.keys[lo:])
	l.keys[lo] = cost
}

func (l *MapList) Pop() (Edge, bool) {
	for len(l.keys) > 0 {
		cost := l.keys[0]
		bucket := l.buckets[cost]
		if len(bucket) == 0 {
			l.keys = l.keys[1:]
			delete(l.buckets, cost)
			continue
		}
		e := bucket[0]
		l.buckets[cost] = bucket[1:]
		return e, true
	}
	return Edge{}, false
}

func (l *MapList) Clear() {
	l.keys = nil
	l.buckets = make(map[int][]Edge)
}
