package fdplan

import "sync"

// NodeStatus is a state-space node's position in the search lifecycle.
type NodeStatus int

const (
	StatusNew NodeStatus = iota
	StatusOpen
	StatusClosed
)

func (s NodeStatus) String() string {
	switch s {
	case StatusNew:
		return "NEW"
	case StatusOpen:
		return "OPEN"
	case StatusClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Node is a state-space entry: the path information needed to
// reconstruct a plan, plus the heuristic value last computed for it.
type Node struct {
	ID            StateID
	ParentID      StateID
	ParentOp      *Operator
	G             int
	H             int
	Status        NodeStatus
	HeuristicInit bool
}

// StateSpace is the node registry: it tracks open/closed status,
// parent pointers, and g/h values for every state ever referenced
// during a search, and reconstructs plans by walking parent pointers
// (spec §4.3). Nodes are created lazily, in NEW status, on first
// reference.
type StateSpace struct {
	mu    sync.RWMutex
	nodes map[StateID]*Node
}

// NewStateSpace returns an empty state space.
func NewStateSpace() *StateSpace {
	return &StateSpace{nodes: make(map[StateID]*Node)}
}

// NodeFor returns the node for id, creating it in NEW status on first
// access.
func (ss *StateSpace) NodeFor(id StateID) *Node {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.nodeForLocked(id)
}

func (ss *StateSpace) nodeForLocked(id StateID) *Node {
	n, ok := ss.nodes[id]
	if !ok {
		n = &Node{ID: id, ParentID: NoState, Status: StatusNew}
		ss.nodes[id] = n
	}
	return n
}

// Peek returns the node for id without creating one, and whether it
// exists.
func (ss *StateSpace) Peek(id StateID) (Node, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	n, ok := ss.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Open marks id OPEN and records its parent edge and g/h values. It is
// permitted from NEW unconditionally, or from OPEN/CLOSED only if g is
// strictly smaller than the node's current g (reopening on a cheaper
// parent, per spec §4.3's g-monotonicity invariant). Open reports
// whether it actually changed the node.
func (ss *StateSpace) Open(id, parentID StateID, parentOp *Operator, g, h int) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	n := ss.nodeForLocked(id)

	switch n.Status {
	case StatusNew:
		// first reference, always accepted
	case StatusOpen, StatusClosed:
		if g >= n.G {
			return false
		}
	}

	n.ParentID = parentID
	n.ParentOp = parentOp
	n.G = g
	n.H = h
	n.HeuristicInit = true
	n.Status = StatusOpen
	return true
}

// Close transitions id from OPEN to CLOSED. It is a no-op if id is not
// currently OPEN.
func (ss *StateSpace) Close(id StateID) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	n, ok := ss.nodes[id]
	if !ok || n.Status != StatusOpen {
		return
	}
	n.Status = StatusClosed
}

// ExtractPath walks parent pointers from goalID back to the root and
// returns the operator sequence in forward (root-to-goal) order.
func (ss *StateSpace) ExtractPath(goalID StateID) []*Operator {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	var rev []*Operator
	cur := goalID
	for {
		n, ok := ss.nodes[cur]
		if !ok || n.ParentOp == nil {
			break
		}
		rev = append(rev, n.ParentOp)
		cur = n.ParentID
	}

	out := make([]*Operator, len(rev))
	for i, op := range rev {
		out[len(rev)-1-i] = op
	}
	return out
}
