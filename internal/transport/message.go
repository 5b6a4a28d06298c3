// Package transport carries the multi-agent coordination messages
// fdplan's distributed search uses: public-state announcements,
// heuristic requests/responses, the "done" notices agents send to the
// arbiter, and the termination token the arbiter sends to each agent.
package transport

// Kind tags a Message's payload shape so a receiver can dispatch
// without decoding the payload first.
type Kind string

const (
	KindPublicState Kind = "public_state"
	KindHeurRequest Kind = "heur_request"
	KindHeurReply   Kind = "heur_reply"
	KindDone        Kind = "done"  // sent to the arbiter when an agent finds FOUND or NOT_FOUND
	KindToken       Kind = "token" // arbiter broadcast confirming global termination
)

// Message is one unit on the wire between two agents, or between an
// agent and the arbiter.
type Message struct {
	From    int
	To      int // -1 addresses the arbiter
	Kind    Kind
	Payload []byte
}
