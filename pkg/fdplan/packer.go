package fdplan

// State is a packed full variable assignment: one fixed-width word
// buffer whose layout is computed once by a Packer and stable for the
// lifetime of that Packer. States are produced and consumed through
// the Packer and StatePool APIs; callers should not construct them by
// hand except via Packer.Pack.
type State []uint64

// Packer computes and applies the bit layout for a fixed list of
// Variables: how many words a packed State occupies, and at which bit
// offset and width each variable's value lives. Building the layout is
// O(numVars); every other Packer operation is O(numVars) or better and
// allocation-free except where a fresh State must be returned.
type Packer struct {
	vars      []Variable
	offsets   []uint // bit offset of each variable's slot
	widths    []uint // bit width of each variable's slot
	totalBits uint
	words     int
}

// NewPacker computes the packed layout for vars, in order. The last
// variable may be reserved by the caller as a multi-agent privacy tag
// (spec §3); the packer itself treats all variables uniformly.
func NewPacker(vars []Variable) *Packer {
	p := &Packer{
		vars:    append([]Variable(nil), vars...),
		offsets: make([]uint, len(vars)),
		widths:  make([]uint, len(vars)),
	}
	var bit uint
	for i, v := range vars {
		w := v.bitsNeeded()
		p.offsets[i] = bit
		p.widths[i] = w
		bit += w
	}
	p.totalBits = bit
	p.words = int((bit + 63) / 64)
	if p.words == 0 {
		p.words = 1
	}
	return p
}

// NumVars returns the number of variables in this layout.
func (p *Packer) NumVars() int { return len(p.vars) }

// Variables returns the variable list the layout was built from.
func (p *Packer) Variables() []Variable { return p.vars }

// Words returns the number of uint64 words a State occupies.
func (p *Packer) Words() int { return p.words }

// NewState allocates a zeroed State of the correct width.
func (p *Packer) NewState() State { return make(State, p.words) }

// Clone returns an independent copy of s.
func (p *Packer) Clone(s State) State {
	out := make(State, p.words)
	copy(out, s)
	return out
}

// mask64 returns a mask with the low n bits set (n in [0,64]).
func mask64(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	if n == 0 {
		return 0
	}
	return (uint64(1) << n) - 1
}

// GetValue reads variable vi's value out of a packed buffer.
func (p *Packer) GetValue(s State, vi int) int {
	width := p.widths[vi]
	if width == 0 {
		return 0
	}
	offset := p.offsets[vi]
	word := offset / 64
	shift := offset % 64
	val := (s[word] >> shift) & mask64(width)
	if shift+width > 64 {
		// Field straddles two words.
		spill := shift + width - 64
		val |= (s[word+1] & mask64(spill)) << (width - spill)
	}
	return int(val)
}

// SetValue writes variable vi's value into a packed buffer in place.
func (p *Packer) SetValue(s State, vi int, value int) {
	width := p.widths[vi]
	if width == 0 {
		return
	}
	offset := p.offsets[vi]
	word := offset / 64
	shift := offset % 64
	m := mask64(width)
	v := uint64(value) & m
	s[word] = (s[word] &^ (m << shift)) | (v << shift)
	if shift+width > 64 {
		spill := shift + width - 64
		lowBits := width - spill
		spillMask := mask64(spill)
		s[word+1] = (s[word+1] &^ spillMask) | ((v >> lowBits) & spillMask)
	}
}

// Pack encodes a full assignment (one value per variable, in order)
// into a fresh State.
func (p *Packer) Pack(values []int) State {
	if len(values) != len(p.vars) {
		panic("fdplan: value count does not match variable count")
	}
	s := p.NewState()
	for i, v := range values {
		p.SetValue(s, i, v)
	}
	return s
}

// Unpack decodes a packed State into a caller-supplied slice, one
// value per variable, in order.
func (p *Packer) Unpack(s State, out []int) {
	for i := range p.vars {
		out[i] = p.GetValue(s, i)
	}
}

// Equal reports whether two packed buffers are bit-for-bit identical.
func (p *Packer) Equal(a, b State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ExtractPublic returns the partial state consisting of every
// variable whose current value in s is public (spec §3/§4.6).
func (p *Packer) ExtractPublic(s State) *PartialState {
	return p.extractByPrivacy(s, false)
}

// ExtractPrivate returns the partial state consisting of every
// variable whose current value in s is private.
func (p *Packer) ExtractPrivate(s State) *PartialState {
	return p.extractByPrivacy(s, true)
}

func (p *Packer) extractByPrivacy(s State, wantPrivate bool) *PartialState {
	ps := NewPartialState(p)
	for vi, v := range p.vars {
		val := p.GetValue(s, vi)
		if v.IsPrivateValue(val) == wantPrivate {
			ps.Set(vi, val)
		}
	}
	ps.pack()
	return ps
}

// SetPublic splices the public partial state ps (as produced by
// ExtractPublic) onto template: the result equals the source state ps
// was extracted from on public bits, and equals template everywhere
// else. This is exactly ApplyPartial(ps, template); it is spelled out
// separately because multi-agent state exchange never holds a
// StatePool-interned id for the synthetic merged state before this
// call (spec §4.6 invariant).
func (p *Packer) SetPublic(ps *PartialState, template State) State {
	return p.ApplyPartial(ps, template)
}

// SetPrivate is the private-slice analogue of SetPublic.
func (p *Packer) SetPrivate(ps *PartialState, template State) State {
	return p.ApplyPartial(ps, template)
}

// ApplyPartial returns (src &^ ps.mask) | ps.val as a new State,
// without mutating src.
func (p *Packer) ApplyPartial(ps *PartialState, src State) State {
	ps.pack()
	return p.ApplyRaw(ps.mask, ps.val, src)
}

// ApplyRaw is ApplyPartial with caller-supplied mask/value buffers,
// used for conditional-effect composition (spec §4.1).
func (p *Packer) ApplyRaw(mask, val State, src State) State {
	out := make(State, p.words)
	for i := 0; i < p.words; i++ {
		out[i] = (src[i] &^ mask[i]) | val[i]
	}
	return out
}

// IsSubset reports whether (src & ps.mask) == ps.val.
func (p *Packer) IsSubset(ps *PartialState, src State) bool {
	ps.pack()
	for i := 0; i < p.words; i++ {
		if (src[i] & ps.mask[i]) != ps.val[i] {
			return false
		}
	}
	return true
}
