package fdplan

import "sort"

// VarVal is a single (variable, value) assignment pair.
type VarVal struct {
	Var int
	Val int
}

// PartialState is a sparse assignment over a subset of variables,
// together with a packed (mask, val) cache used for fast subset tests
// and application. The sparse pair list is authoritative; the packed
// cache is a derived value recomputed on demand whenever the pair list
// has changed since the cache was last built (spec §3, §9).
//
// PartialState owns its packed buffers — it does not share them with
// any StatePool — per the decoupled state/operator API chosen to
// avoid aliasing hazards between preconditions, effects, and goals
// built against the same Packer.
type PartialState struct {
	packer *Packer
	pairs  []VarVal
	mask   State
	val    State
	dirty  bool
}

// NewPartialState returns an empty partial state bound to packer.
func NewPartialState(packer *Packer) *PartialState {
	return &PartialState{
		packer: packer,
		mask:   packer.NewState(),
		val:    packer.NewState(),
	}
}

// PartialFrom builds a partial state from a list of pairs.
func PartialFrom(packer *Packer, pairs ...VarVal) *PartialState {
	ps := NewPartialState(packer)
	for _, pv := range pairs {
		ps.Set(pv.Var, pv.Val)
	}
	return ps
}

// Set assigns variable vi to value val in the sparse list, overwriting
// any existing assignment for vi, and marks the packed cache dirty.
func (ps *PartialState) Set(vi, val int) {
	for i := range ps.pairs {
		if ps.pairs[i].Var == vi {
			ps.pairs[i].Val = val
			ps.dirty = true
			return
		}
	}
	ps.pairs = append(ps.pairs, VarVal{Var: vi, Val: val})
	ps.dirty = true
}

// Get returns the value assigned to vi and whether vi is set.
func (ps *PartialState) Get(vi int) (int, bool) {
	for _, pv := range ps.pairs {
		if pv.Var == vi {
			return pv.Val, true
		}
	}
	return 0, false
}

// Pairs returns the authoritative sparse assignment list. Callers must
// not mutate the returned slice.
func (ps *PartialState) Pairs() []VarVal { return ps.pairs }

// Len returns the number of variables this partial state constrains.
func (ps *PartialState) Len() int { return len(ps.pairs) }

// pack regenerates the mask/val cache from the sparse pair list if
// dirty. Required before any IsSubset/Apply call per spec §9 — every
// packer entry point that reads ps.mask/ps.val calls this first.
func (ps *PartialState) pack() {
	if !ps.dirty {
		return
	}
	for i := range ps.mask {
		ps.mask[i] = 0
		ps.val[i] = 0
	}
	for _, pv := range ps.pairs {
		width := ps.packer.widths[pv.Var]
		if width == 0 {
			continue
		}
		offset := ps.packer.offsets[pv.Var]
		word := offset / 64
		shift := offset % 64
		m := mask64(width)
		ps.mask[word] |= m << shift
		ps.val[word] |= (uint64(pv.Val) & m) << shift
		if shift+width > 64 {
			spill := shift + width - 64
			lowBits := width - spill
			spillMask := mask64(spill)
			ps.mask[word+1] |= spillMask
			ps.val[word+1] |= (uint64(pv.Val) >> lowBits) & spillMask
		}
	}
	ps.dirty = false
}

// IsSubset reports whether ps is a subset of s: (s & mask) == val.
func (ps *PartialState) IsSubset(s State) bool {
	ps.pack()
	return ps.packer.IsSubset(ps, s)
}

// Apply returns (src &^ mask) | val as a new State.
func (ps *PartialState) Apply(src State) State {
	ps.pack()
	return ps.packer.ApplyPartial(ps, src)
}

// MaskVal returns the packed mask and value buffers, regenerating them
// first if needed. The returned slices must not be mutated by the
// caller; they are owned by ps.
func (ps *PartialState) MaskVal() (mask, val State) {
	ps.pack()
	return ps.mask, ps.val
}

// hasVar reports whether vi is constrained by this partial state.
func (ps *PartialState) hasVar(vi int) bool {
	_, ok := ps.Get(vi)
	return ok
}

// sortedPairs returns a copy of the pair list sorted by ascending
// variable index, used by conditional-effect specificity comparisons.
func (ps *PartialState) sortedPairs() []VarVal {
	out := append([]VarVal(nil), ps.pairs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}

// impliedBy reports whether ps's precondition is implied by other's:
// ps ⊆ other, i.e. every (var,val) pair in ps also appears in other.
// Used by conditional-effect simplification (spec §9).
func (ps *PartialState) impliedBy(other *PartialState) bool {
	for _, pv := range ps.pairs {
		v, ok := other.Get(pv.Var)
		if !ok || v != pv.Val {
			return false
		}
	}
	return true
}
