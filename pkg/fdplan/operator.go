package fdplan

import "sort"

// CondEffect is one conditional effect: eff applies only when pre
// holds in the *source* state the operator is being applied to, never
// against the operator's own (unconditional) precondition (spec §3).
type CondEffect struct {
	Pre *PartialState
	Eff *PartialState
}

// Operator is a grounded planning operator: a precondition, an
// unconditional effect, zero or more conditional effects, a cost, and
// the bookkeeping multi-agent mode needs to know who may apply and who
// must hear about it.
//
// Invariant: every variable set in Eff must also appear in Pre, or be
// entirely unconstrained in Pre (spec §3) — Build does not enforce
// this (it is a loader-time invariant on the grounded operator set),
// but GroundedOK reports it for callers that want to assert it.
type Operator struct {
	Name     string
	Cost     int
	Pre      *PartialState
	Eff      *PartialState
	CondEff  []CondEffect
	GlobalID int

	Owner    int    // owning agent index
	OwnerSet uint64 // bitset of agents permitted to apply this operator
	RecvSet  uint64 // bitset of agents that must be notified when this operator's effect becomes public

	IsPrivate bool
}

// MaxAgents is the hard cap on distinct agents in multi-agent mode:
// owner/recv sets must fit in one 64-bit word (spec §9).
const MaxAgents = 64

// GroundedOK reports whether every variable Eff constrains is either
// constrained identically in Pre, or left entirely free by Pre.
func (o *Operator) GroundedOK() bool {
	for _, pv := range o.Eff.Pairs() {
		if v, ok := o.Pre.Get(pv.Var); ok && v != pv.Val {
			return false
		}
	}
	return true
}

// Apply materializes the result of applying o to the state at
// sourceID: the unconditional effect, composed with whichever
// conditional effects have a precondition satisfied by the *source*
// state (not by o.Pre). Composition is applied in CondEff order, so
// any overlaps between conditional effects must already have been
// resolved, e.g. by SimplifyConditionalEffects at load time.
func (o *Operator) Apply(pool *StatePool, sourceID StateID) StateID {
	id := pool.ApplyPartial(o.Eff, sourceID)
	if len(o.CondEff) == 0 {
		return id
	}
	source := pool.Raw(sourceID)
	for _, ce := range o.CondEff {
		if ce.Pre.IsSubset(source) {
			id = pool.ApplyPartial(ce.Eff, id)
		}
	}
	return id
}

// SimplifyConditionalEffects implements the load-time simplification
// from the design notes: sort conditional effects by decreasing
// precondition specificity (most-constrained first, i.e. larger
// pair-count first, ties broken by sorted variable order for
// determinism), then merge effect j into effect i whenever pre_i ⊆
// pre_j — j's precondition is the more specific one, so pre_j holding
// always implies pre_i holds too. Folding j's assignments into i (only
// for variables i does not already set) and eliding j's now-redundant
// entry preserves behavior for every state where pre_j held (i fires
// there regardless, and now carries j's bits), at the cost of treating
// the pair as a single merged condition rather than two independently
// fired ones — correct for conditional effects produced by a nested,
// decision-tree-style grounding (the common case). The result is
// stable under reordering of the input.
//
// A conditional effect whose resulting Eff ends up empty (no pairs)
// is elided from the returned slice: it can never change a state, and
// an empty-effect operator is never an error per spec §7.
func SimplifyConditionalEffects(effects []CondEffect) []CondEffect {
	if len(effects) <= 1 {
		return append([]CondEffect(nil), effects...)
	}

	work := make([]CondEffect, len(effects))
	for i, ce := range effects {
		work[i] = CondEffect{Pre: clonePartial(ce.Pre), Eff: clonePartial(ce.Eff)}
	}

	sort.SliceStable(work, func(i, j int) bool {
		if len(work[i].Pre.Pairs()) != len(work[j].Pre.Pairs()) {
			return len(work[i].Pre.Pairs()) > len(work[j].Pre.Pairs())
		}
		return lessPairs(work[i].Pre.sortedPairs(), work[j].Pre.sortedPairs())
	})

	merged := make([]bool, len(work))
	for i := range work {
		if merged[i] {
			continue
		}
		for j := range work {
			if i == j || merged[j] {
				continue
			}
			if work[i].Pre.impliedBy(work[j].Pre) {
				mergeEffectInto(work[i].Eff, work[j].Eff)
				merged[j] = true
			}
		}
	}

	out := make([]CondEffect, 0, len(work))
	for i, ce := range work {
		if merged[i] {
			continue
		}
		if ce.Eff.Len() == 0 {
			continue
		}
		out = append(out, ce)
	}
	return out
}

// mergeEffectInto copies every pair of src not already set in dst into
// dst, in place. Variables dst already constrains keep dst's value:
// dst is the effect with the weaker (implied) precondition, and its
// assignments win over the more-specific src's.
func mergeEffectInto(dst, src *PartialState) {
	for _, pv := range src.Pairs() {
		if _, ok := dst.Get(pv.Var); !ok {
			dst.Set(pv.Var, pv.Val)
		}
	}
}

func clonePartial(ps *PartialState) *PartialState {
	return PartialFrom(ps.packer, append([]VarVal(nil), ps.Pairs()...)...)
}

func lessPairs(a, b []VarVal) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Var != b[i].Var {
			return a[i].Var < b[i].Var
		}
		if a[i].Val != b[i].Val {
			return a[i].Val < b[i].Val
		}
	}
	return len(a) < len(b)
}
