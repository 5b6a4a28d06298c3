package fdplan

import (
	"sync/atomic"
	"time"
)

// Statistics are the read-only observables of spec §6, updated at
// least on every progress callback. All fields are safe to read
// concurrently with an in-progress search via the Snapshot method;
// counters are stored as atomics so a stats server or Prometheus
// exporter can poll them from another goroutine without locking out
// the driver.
type Statistics struct {
	startedAt time.Time

	steps      int64
	evaluated  int64
	expanded   int64
	generated  int64
	peakMemory int64

	found    int32
	notFound int32
}

// NewStatistics returns a Statistics with its clock started.
func NewStatistics() *Statistics {
	return &Statistics{startedAt: time.Now()}
}

func (s *Statistics) IncSteps()              { atomic.AddInt64(&s.steps, 1) }
func (s *Statistics) IncEvaluated()           { atomic.AddInt64(&s.evaluated, 1) }
func (s *Statistics) IncExpanded()            { atomic.AddInt64(&s.expanded, 1) }
func (s *Statistics) AddGenerated(n int)      { atomic.AddInt64(&s.generated, int64(n)) }
func (s *Statistics) ObservePeakMemory(n int64) {
	for {
		cur := atomic.LoadInt64(&s.peakMemory)
		if n <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&s.peakMemory, cur, n) {
			return
		}
	}
}
func (s *Statistics) SetFound(v bool) {
	if v {
		atomic.StoreInt32(&s.found, 1)
	} else {
		atomic.StoreInt32(&s.notFound, 1)
	}
}

// Snapshot is a frozen, safe-to-serialize copy of Statistics.
type Snapshot struct {
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
	Steps           int64   `json:"steps"`
	EvaluatedStates int64   `json:"evaluated_states"`
	ExpandedStates  int64   `json:"expanded_states"`
	GeneratedStates int64   `json:"generated_states"`
	PeakMemory      int64   `json:"peak_memory"`
	Found           bool    `json:"found"`
	NotFound        bool    `json:"not_found"`
}

// Snapshot returns a consistent read of all counters.
func (s *Statistics) Snapshot() Snapshot {
	return Snapshot{
		ElapsedSeconds:  time.Since(s.startedAt).Seconds(),
		Steps:           atomic.LoadInt64(&s.steps),
		EvaluatedStates: atomic.LoadInt64(&s.evaluated),
		ExpandedStates:  atomic.LoadInt64(&s.expanded),
		GeneratedStates: atomic.LoadInt64(&s.generated),
		PeakMemory:      atomic.LoadInt64(&s.peakMemory),
		Found:           atomic.LoadInt32(&s.found) == 1,
		NotFound:        atomic.LoadInt32(&s.notFound) == 1,
	}
}
