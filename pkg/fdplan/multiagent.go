package fdplan

import (
	"context"
	"encoding/binary"
)

// Sender is the narrow transport surface the multi-agent coordinator
// depends on — satisfied by internal/transport.Router without this
// package importing transport (and transport does not import fdplan).
// Wire encoding of Kind is left to the caller; this package only needs
// a tag to route on, matching spec §5's "messages are independent
// byte sequences; the transport does not interpret them."
type Sender interface {
	SendTo(ctx context.Context, from, to int, kind string, payload []byte) error
	SendToArbiter(ctx context.Context, from int, kind string, payload []byte) error
}

// Kind tags carried over Sender — duplicated from internal/transport's
// Kind constants (as plain strings, to keep this package transport-
// agnostic) so callers can route without a shared import.
const (
	KindPublicState = "public_state"
	KindHeurRequest = "heur_request"
	KindHeurReply   = "heur_reply"
	KindDone        = "done"
	KindToken       = "token"
)

// PublicAnnouncement is the payload carried by a KindPublicState
// message (spec §4.6): the sender, its g/h for the announced state,
// and the packed public-slice mask/value pair (a PartialState's own
// wire form — mask marks which public variables this announcement
// constrains, val carries their values).
type PublicAnnouncement struct {
	Sender int
	G, H   int
	Mask   State
	Val    State
}

// EncodePublicAnnouncement serializes a PublicAnnouncement to bytes:
// sender, g, h, word count as little-endian int64s, followed by the
// mask words then the val words. A hand-rolled fixed-width encoding is
// used rather than a general serialization library because the core
// treats the transport payload as opaque (spec §6) and this is the
// only producer/consumer pair — reaching for gob or protobuf here
// would add a dependency with nothing else in the core to exercise.
func EncodePublicAnnouncement(a PublicAnnouncement) []byte {
	words := len(a.Mask)
	buf := make([]byte, 32+16*words)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(a.Sender))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(a.G))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(a.H))
	binary.LittleEndian.PutUint64(buf[24:32], uint64(words))
	off := 32
	for _, w := range a.Mask {
		binary.LittleEndian.PutUint64(buf[off:off+8], w)
		off += 8
	}
	for _, w := range a.Val {
		binary.LittleEndian.PutUint64(buf[off:off+8], w)
		off += 8
	}
	return buf
}

// DecodePublicAnnouncement is EncodePublicAnnouncement's inverse.
func DecodePublicAnnouncement(buf []byte) PublicAnnouncement {
	a := PublicAnnouncement{
		Sender: int(binary.LittleEndian.Uint64(buf[0:8])),
		G:      int(binary.LittleEndian.Uint64(buf[8:16])),
		H:      int(binary.LittleEndian.Uint64(buf[16:24])),
	}
	words := int(binary.LittleEndian.Uint64(buf[24:32]))
	off := 32
	a.Mask = make(State, words)
	for i := range a.Mask {
		a.Mask[i] = binary.LittleEndian.Uint64(buf[off : off+8])
		off += 8
	}
	a.Val = make(State, words)
	for i := range a.Val {
		a.Val[i] = binary.LittleEndian.Uint64(buf[off : off+8])
		off += 8
	}
	return a
}

// RemoteStateRegistry remembers, for every synthetic state interned
// from a peer's public announcement, which agent sent it (spec §4.6:
// "remembers the sender via a side registry keyed by state_id"). It
// does not merge private slices — a received public state is always
// interned with the private slice fixed at the registry's sentinel.
type RemoteStateRegistry struct {
	senderOf map[StateID]int
}

// NewRemoteStateRegistry returns an empty registry.
func NewRemoteStateRegistry() *RemoteStateRegistry {
	return &RemoteStateRegistry{senderOf: make(map[StateID]int)}
}

// Record associates stateID with the agent that announced it.
func (r *RemoteStateRegistry) Record(stateID StateID, sender int) {
	r.senderOf[stateID] = sender
}

// SenderOf reports which agent announced stateID, if any.
func (r *RemoteStateRegistry) SenderOf(stateID StateID) (int, bool) {
	s, ok := r.senderOf[stateID]
	return s, ok
}

// Coordinator wires a single agent's search into the multi-agent
// protocol of spec §4.6: public-state announcement on expansion,
// heuristic request/response dispatch, and participation in
// distributed termination. It holds no search state of its own beyond
// the remote-state registry — the driver's Core still owns the local
// state pool, state space, and open list.
type Coordinator struct {
	AgentID   int
	NumAgents int
	Sender    Sender
	Pool      *StatePool
	Heur      Heuristic
	Remote    *RemoteStateRegistry

	// PrivateSentinel is spliced in for the private slice of any state
	// synthesized from a peer's public announcement.
	PrivateSentinel *PartialState
}

// NewCoordinator builds a Coordinator. privateSentinel should constrain
// every private variable to a fixed value (spec §4.6); it is applied,
// never merged, whenever a peer's public slice is interned locally.
func NewCoordinator(agentID, numAgents int, sender Sender, pool *StatePool, heur Heuristic, privateSentinel *PartialState) *Coordinator {
	return &Coordinator{
		AgentID:         agentID,
		NumAgents:       numAgents,
		Sender:          sender,
		Pool:            pool,
		Heur:            heur,
		Remote:          NewRemoteStateRegistry(),
		PrivateSentinel: privateSentinel,
	}
}

// AnnouncePublicState implements the AnnounceFunc hook drivers call
// when a producing operator has a non-empty RecvSet: it extracts the
// child's public slice and sends one message to every bit set in
// RecvSet other than the sender itself.
func (c *Coordinator) AnnouncePublicState(ctx context.Context, op *Operator, childID StateID, g, h int) {
	if op.RecvSet == 0 {
		return
	}
	state := c.Pool.Raw(childID)
	public := c.Pool.Packer().ExtractPublic(state)
	mask, val := public.MaskVal()
	payload := EncodePublicAnnouncement(PublicAnnouncement{Sender: c.AgentID, G: g, H: h, Mask: mask, Val: val})

	for recipient := 0; recipient < MaxAgents; recipient++ {
		if recipient == c.AgentID {
			continue
		}
		if op.RecvSet&(uint64(1)<<uint(recipient)) == 0 {
			continue
		}
		// Best-effort: a transport failure here is the agent's
		// problem, not the local search's; surfaced by the caller's
		// own inbox-serving loop timing out on the peer it expected a
		// reply from.
		_ = c.Sender.SendTo(ctx, c.AgentID, recipient, KindPublicState, payload)
	}
}

// ReceivePublicState interns a synthetic state from a peer's public
// announcement: the announced public slice spliced onto the
// coordinator's private sentinel, and records the sender in the
// remote-state registry.
func (c *Coordinator) ReceivePublicState(payload []byte) StateID {
	ann := DecodePublicAnnouncement(payload)
	packer := c.Pool.Packer()

	full := packer.NewState()
	full = packer.ApplyRaw(ann.Mask, ann.Val, full)
	if c.PrivateSentinel != nil {
		full = packer.ApplyPartial(c.PrivateSentinel, full)
	}

	id := c.Pool.Insert(full)
	c.Remote.Record(id, ann.Sender)
	return id
}

// DispatchHeuristicMessage routes an inbox message of kind
// heur_request/heur_reply to the local heuristic, the sole consumer of
// heuristic-tagged messages (spec §6).
func (c *Coordinator) DispatchHeuristicMessage(ctx context.Context, kind string, from int, payload []byte) (HeurResult, error) {
	msg := Message{From: from, Type: kind, Payload: payload}
	switch kind {
	case KindHeurRequest:
		return HeurResult{}, c.Heur.ServeRequest(ctx, msg)
	case KindHeurReply:
		return c.Heur.HandleUpdate(ctx, msg), nil
	default:
		return HeurResult{}, NewConfigError("coordinator: not a heuristic message kind %q", kind)
	}
}

// Arbiter implements the distributed-termination role of agent 0
// (spec §4.6): it collects one "done" notification per non-arbiter
// agent, then broadcasts a termination token to every agent. Until an
// agent has both sent its own "done" and received the token back, it
// must keep serving its inbox — other agents' heuristics may still be
// querying it.
type Arbiter struct {
	sender    Sender
	numAgents int
	done      map[int]bool
}

// NewArbiter returns an Arbiter for a roster of numAgents (including
// the arbiter itself at index 0).
func NewArbiter(sender Sender, numAgents int) *Arbiter {
	return &Arbiter{sender: sender, numAgents: numAgents, done: make(map[int]bool)}
}

// NotifyDone records that agentID has reached FOUND or NOT_FOUND, and
// reports whether every agent has now done so.
func (a *Arbiter) NotifyDone(agentID int) (allDone bool) {
	a.done[agentID] = true
	return len(a.done) >= a.numAgents
}

// ConfirmTermination broadcasts the termination token to every agent
// other than the arbiter itself, which learns of its own termination
// directly from having called NotifyDone.
func (a *Arbiter) ConfirmTermination(ctx context.Context) error {
	for agent := 1; agent < a.numAgents; agent++ {
		if err := a.sender.SendTo(ctx, 0, agent, KindToken, nil); err != nil {
			return NewTransportError("arbiter: broadcasting termination to agent %d: %v", agent, err)
		}
	}
	return nil
}
