package fdplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender is a minimal in-memory Sender recording every send for
// assertion, standing in for internal/transport.Router so this package
// can test Coordinator/Arbiter without importing transport.
type fakeSender struct {
	sent    []fakeSend
	sendErr error
}

type fakeSend struct {
	from, to int
	kind     string
	payload  []byte
	arbiter  bool
}

func (f *fakeSender) SendTo(_ context.Context, from, to int, kind string, payload []byte) error {
	f.sent = append(f.sent, fakeSend{from: from, to: to, kind: kind, payload: payload})
	return f.sendErr
}

func (f *fakeSender) SendToArbiter(_ context.Context, from int, kind string, payload []byte) error {
	f.sent = append(f.sent, fakeSend{from: from, kind: kind, payload: payload, arbiter: true})
	return f.sendErr
}

func TestPublicAnnouncementEncodeDecodeRoundTrip(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 5)})
	full := packer.Pack([]int{2, 4})
	public := packer.ExtractPublic(full)
	mask, val := public.MaskVal()

	ann := PublicAnnouncement{Sender: 3, G: 7, H: 2, Mask: mask, Val: val}
	decoded := DecodePublicAnnouncement(EncodePublicAnnouncement(ann))

	assert.Equal(t, ann.Sender, decoded.Sender)
	assert.Equal(t, ann.G, decoded.G)
	assert.Equal(t, ann.H, decoded.H)
	assert.Equal(t, []uint64(ann.Mask), []uint64(decoded.Mask))
	assert.Equal(t, []uint64(ann.Val), []uint64(decoded.Val))
}

func TestCoordinatorAnnouncePublicStateRespectsRecvSet(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3)})
	pool := NewStatePool(packer)
	id := pool.InsertValues([]int{2})

	sender := &fakeSender{}
	coord := NewCoordinator(0, 3, sender, pool, &testGoalCountHeuristic{goal: PartialFrom(packer, VarVal{Var: 0, Val: 2})}, nil)

	op := &Operator{Name: "op", RecvSet: (1 << 1) | (1 << 2)}
	coord.AnnouncePublicState(context.Background(), op, id, 5, 0)

	require.Len(t, sender.sent, 2)
	recipients := map[int]bool{}
	for _, s := range sender.sent {
		recipients[s.to] = true
		assert.Equal(t, KindPublicState, s.kind)
		assert.Equal(t, 0, s.from)
	}
	assert.True(t, recipients[1])
	assert.True(t, recipients[2])
	assert.False(t, recipients[0])
}

func TestCoordinatorAnnouncePublicStateSkipsEmptyRecvSet(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3)})
	pool := NewStatePool(packer)
	id := pool.InsertValues([]int{1})

	sender := &fakeSender{}
	coord := NewCoordinator(0, 2, sender, pool, &testGoalCountHeuristic{goal: NewPartialState(packer)}, nil)
	coord.AnnouncePublicState(context.Background(), &Operator{Name: "local-only"}, id, 0, 0)

	assert.Empty(t, sender.sent)
}

func TestCoordinatorReceivePublicStateSplicesPrivateSentinel(t *testing.T) {
	packer := NewPacker([]Variable{NewVariableWithPrivacy("pub", 3, []bool{false, false, false}), NewVariableWithPrivacy("priv", 3, []bool{true, true, true})})
	pool := NewStatePool(packer)
	remoteFull := packer.Pack([]int{2, 0})
	public := packer.ExtractPublic(remoteFull)
	mask, val := public.MaskVal()

	sentinel := PartialFrom(packer, VarVal{Var: 1, Val: 1})
	coord := NewCoordinator(1, 2, &fakeSender{}, pool, &testGoalCountHeuristic{goal: NewPartialState(packer)}, sentinel)

	payload := EncodePublicAnnouncement(PublicAnnouncement{Sender: 0, G: 1, H: 1, Mask: mask, Val: val})
	id := coord.ReceivePublicState(payload)

	state := pool.Raw(id)
	assert.Equal(t, 2, packer.GetValue(state, 0), "public variable should carry the remote value")
	assert.Equal(t, 1, packer.GetValue(state, 1), "private variable should carry the local sentinel's value, not the remote's")

	sender, ok := coord.Remote.SenderOf(id)
	require.True(t, ok)
	assert.Equal(t, 0, sender)
}

func TestArbiterNotifyDoneAndConfirmTermination(t *testing.T) {
	sender := &fakeSender{}
	arb := NewArbiter(sender, 3)

	assert.False(t, arb.NotifyDone(0))
	assert.False(t, arb.NotifyDone(1))
	assert.True(t, arb.NotifyDone(2))

	require.NoError(t, arb.ConfirmTermination(context.Background()))
	require.Len(t, sender.sent, 2)
	for _, s := range sender.sent {
		assert.Equal(t, KindToken, s.kind)
		assert.Equal(t, 0, s.from)
	}
}

func TestCoordinatorDispatchHeuristicMessageRoutesByKind(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3)})
	pool := NewStatePool(packer)
	heur := &testGoalCountHeuristic{goal: NewPartialState(packer)}
	coord := NewCoordinator(1, 2, &fakeSender{}, pool, heur, nil)

	_, err := coord.DispatchHeuristicMessage(context.Background(), KindHeurRequest, 0, nil)
	require.NoError(t, err)

	result, err := coord.DispatchHeuristicMessage(context.Background(), KindHeurReply, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Continue, result.Outcome)

	_, err = coord.DispatchHeuristicMessage(context.Background(), "bogus", 0, nil)
	assert.Error(t, err)
}
