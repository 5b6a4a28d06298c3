package fdplan

// Path is the in-memory representation of a found plan: an ordered
// list of operator references from initial state to goal. Serializing
// a Path (one operator name per line, or any other wire format) is
// out of scope of the core; this type is the contract the core
// produces (spec §6).
type Path struct {
	Operators []*Operator
}

// Cost returns the cumulative cost of the path's operators.
func (p Path) Cost() int {
	total := 0
	for _, op := range p.Operators {
		total += op.Cost
	}
	return total
}

// Names returns the operator names in order, the shape a caller would
// serialize one-per-line.
func (p Path) Names() []string {
	out := make([]string, len(p.Operators))
	for i, op := range p.Operators {
		out[i] = op.Name
	}
	return out
}
