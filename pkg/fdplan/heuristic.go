package fdplan

import "context"

// HeurOutcome is the three-way result a heuristic call can produce
// (spec §6).
type HeurOutcome int

const (
	Continue HeurOutcome = iota
	DeadEnd
	Abort
)

// HeurResult is the full answer from a heuristic evaluation: the
// estimate itself plus, when the heuristic singles some out, the
// preferred-operator subset for this state (spec §4.5, §9 — preferred
// operators are sorted to the front of the caller's applicable-ops
// buffer, never queued separately).
type HeurResult struct {
	Outcome    HeurOutcome
	Value      int
	Preferred  []*Operator
}

// Heuristic is the external collaborator the search drivers call at
// every expanded state. Concrete heuristics (goal-count, additive,
// max, FF, DTG) are out of scope for this core; it only consumes the
// interface.
type Heuristic interface {
	// Evaluate estimates the distance from stateID to the goal.
	Evaluate(ctx context.Context, pool *StatePool, stateID StateID) HeurResult

	// HandleUpdate delivers a transport message addressed to the
	// heuristic (multi-agent mode only). Heuristics that do not
	// participate in distributed computation can return a zero
	// HeurResult with Outcome Continue.
	HandleUpdate(ctx context.Context, msg Message) HeurResult

	// ServeRequest answers an incoming heuristic query from a peer
	// agent (multi-agent mode only).
	ServeRequest(ctx context.Context, msg Message) error
}

// Message is the abstract unit of transport communication the core
// depends on (spec §5, §6). Its concrete wire encoding is owned by
// internal/transport; the core only needs sender identity, a type tag,
// and an opaque payload.
type Message struct {
	From    int
	Type    string
	Payload []byte
}
