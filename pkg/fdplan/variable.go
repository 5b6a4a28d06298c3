package fdplan

// Variable describes one finite-domain state variable: its name, the
// number of values in its domain, and which of those values are
// private to a single agent in multi-agent mode. Variables are
// immutable once a Packer is built from them.
//
// Domain values are the small non-negative integers [0, DomainSize).
// AllowsUndefined marks a variable whose packed slot additionally
// reserves one value (DomainSize itself) to mean "no value assigned" —
// this widens the slot to ceil(log2(DomainSize+1)) bits instead of
// ceil(log2(DomainSize)) per spec §3.
type Variable struct {
	Name            string
	DomainSize      int
	Private         []bool // len == DomainSize; Private[v] marks value v as agent-private
	AllowsUndefined bool
}

// NewVariable creates a fully public variable with the given domain size.
func NewVariable(name string, domainSize int) Variable {
	return Variable{Name: name, DomainSize: domainSize, Private: make([]bool, domainSize)}
}

// NewVariableWithPrivacy creates a variable with an explicit per-value
// privacy tag, as used by the multi-agent public/private slice split.
func NewVariableWithPrivacy(name string, domainSize int, private []bool) Variable {
	if len(private) != domainSize {
		panic("fdplan: variable privacy slice length must equal domain size")
	}
	return Variable{Name: name, DomainSize: domainSize, Private: append([]bool(nil), private...)}
}

// IsPrivateValue reports whether value v of this variable is private.
// Values outside the domain (the reserved "undefined" sentinel) are
// always treated as public: undefined is the absence of information,
// never a secret.
func (v Variable) IsPrivateValue(value int) bool {
	if value < 0 || value >= len(v.Private) {
		return false
	}
	return v.Private[value]
}

// bitsNeeded returns the packed slot width for this variable.
func (v Variable) bitsNeeded() uint {
	n := v.DomainSize
	if v.AllowsUndefined {
		n++
	}
	return bitsFor(n)
}

// bitsFor returns the number of bits needed to represent n distinct
// values (n >= 1): ceil(log2(n)), with the degenerate n==1 case
// taking zero bits (a singleton domain needs no storage).
func bitsFor(n int) uint {
	if n <= 1 {
		return 0
	}
	var bits uint
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}
