package transport

import (
	"context"
	"fmt"
	"sync"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/semaphore"
)

// MaxAgents mirrors fdplan.MaxAgents: the owner/recv bitsets operators
// carry are one machine word wide, so no coordination protocol above
// this package can usefully exceed it. Duplicated here rather than
// imported so this package does not depend on pkg/fdplan; fdplan's
// multi-agent coordinator reaches *Router only through its own Sender
// interface, so neither package imports the other.
const MaxAgents = 64

// Router is the in-process transport fdplan's multi-agent search uses
// to exchange Messages: one bounded FIFO mailbox per agent, plus one
// arbiter-directed feed per agent that ArbiterFeed fans into a single
// stream. Messages are pooled (the same reuse-and-reset discipline the
// teacher applies to its constraint buses) so steady-state
// coordination doesn't pressure the allocator.
type Router struct {
	mu         sync.RWMutex
	mailbox    []chan *Message
	arbiterBox []chan *Message // one feed per sending agent, fanned in by ArbiterFeed
	capacity   *semaphore.Weighted // bounds total in-flight messages across all mailboxes

	pool sync.Pool
}

// NewRouter builds a router for numAgents participants, each with a
// mailbox of the given depth, and a global cap of maxInFlight
// messages across every mailbox (a Router with maxInFlight <= 0 is
// unbounded beyond the per-mailbox depth).
func NewRouter(numAgents, mailboxDepth, maxInFlight int) (*Router, error) {
	if numAgents <= 0 || numAgents > MaxAgents {
		return nil, fmt.Errorf("transport: numAgents %d out of range [1,%d]", numAgents, MaxAgents)
	}
	if mailboxDepth <= 0 {
		mailboxDepth = 64
	}

	r := &Router{
		mailbox:    make([]chan *Message, numAgents),
		arbiterBox: make([]chan *Message, numAgents),
		pool: sync.Pool{
			New: func() interface{} { return &Message{} },
		},
	}
	for i := range r.mailbox {
		r.mailbox[i] = make(chan *Message, mailboxDepth)
		r.arbiterBox[i] = make(chan *Message, mailboxDepth)
	}
	if maxInFlight > 0 {
		r.capacity = semaphore.NewWeighted(int64(maxInFlight))
	}
	return r, nil
}

// getMessage borrows a pooled Message and fills it in. kind is a plain
// string at this boundary (rather than the Kind type) so *Router
// satisfies fdplan's transport-agnostic Sender interface directly,
// without an adapter.
func (r *Router) getMessage(from, to int, kind string, payload []byte) *Message {
	m := r.pool.Get().(*Message)
	m.From, m.To, m.Kind, m.Payload = from, to, Kind(kind), payload
	return m
}

// putMessage returns a Message to the pool after the receiver is done
// with it.
func (r *Router) putMessage(m *Message) {
	m.Payload = nil
	r.pool.Put(m)
}

// SendTo delivers a message to agent `to`'s mailbox, blocking if the
// mailbox is full or the router's global in-flight budget is
// exhausted, until ctx is done.
func (r *Router) SendTo(ctx context.Context, from, to int, kind string, payload []byte) error {
	r.mu.RLock()
	box := r.mailbox[to]
	r.mu.RUnlock()

	if r.capacity != nil {
		if err := r.capacity.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	msg := r.getMessage(from, to, kind, payload)
	select {
	case box <- msg:
		return nil
	case <-ctx.Done():
		if r.capacity != nil {
			r.capacity.Release(1)
		}
		return ctx.Err()
	}
}

// SendToArbiter delivers a message to the arbiter, on the sending
// agent's own feed (one of the per-agent channels ArbiterFeed fans in).
func (r *Router) SendToArbiter(ctx context.Context, from int, kind string, payload []byte) error {
	if r.capacity != nil {
		if err := r.capacity.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	msg := r.getMessage(from, -1, kind, payload)
	select {
	case r.arbiterBox[from] <- msg:
		return nil
	case <-ctx.Done():
		if r.capacity != nil {
			r.capacity.Release(1)
		}
		return ctx.Err()
	}
}

// Recv blocks for the next message addressed to agent id, or until ctx
// is done. The caller must call the returned release func when done
// reading the returned Message so it can return to the pool.
func (r *Router) Recv(ctx context.Context, id int) (*Message, func(), error) {
	r.mu.RLock()
	box := r.mailbox[id]
	r.mu.RUnlock()

	select {
	case msg := <-box:
		if r.capacity != nil {
			r.capacity.Release(1)
		}
		return msg, func() { r.putMessage(msg) }, nil
	case <-ctx.Done():
		return nil, func() {}, ctx.Err()
	}
}

// ArbiterFeed fans every agent's SendToArbiter channel into the single
// stream the arbiter ranges over, using the same merge primitive the
// pack's reinforcement learner uses to fan in its worker episode
// channels. The returned channel closes once ctx is done. The caller
// must call Release on each received Message once processed, so it
// returns to the pool and its in-flight slot is freed.
func (r *Router) ArbiterFeed(ctx context.Context) <-chan *Message {
	feeds := make([]<-chan *Message, len(r.arbiterBox))
	for i, box := range r.arbiterBox {
		feeds[i] = box
	}
	return channerics.Merge(ctx.Done(), feeds...)
}

// Release returns a Message obtained from ArbiterFeed to the pool and
// frees its in-flight slot.
func (r *Router) Release(m *Message) {
	if r.capacity != nil {
		r.capacity.Release(1)
	}
	r.putMessage(m)
}
