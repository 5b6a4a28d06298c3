package fdplan

import "testing"

func TestPartialStateSetOverwrites(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3)})
	ps := NewPartialState(packer)

	ps.Set(0, 1)
	ps.Set(0, 2)

	if len(ps.Pairs()) != 1 {
		t.Fatalf("expected a single pair after overwrite, got %d", len(ps.Pairs()))
	}
	v, ok := ps.Get(0)
	if !ok || v != 2 {
		t.Errorf("got %v,%v, want 2,true", v, ok)
	}
}

func TestPartialStateIsSubset(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	full := packer.Pack([]int{1, 2})

	ps := PartialFrom(packer, VarVal{Var: 0, Val: 1})
	if !ps.IsSubset(full) {
		t.Error("expected subset to hold")
	}

	ps.Set(1, 0)
	if ps.IsSubset(full) {
		t.Error("expected subset to fail after adding a mismatching pair")
	}
}

func TestPartialStateApply(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	src := packer.Pack([]int{0, 0})

	eff := PartialFrom(packer, VarVal{Var: 1, Val: 2})
	applied := eff.Apply(src)

	if packer.GetValue(applied, 0) != 0 {
		t.Error("Apply should not disturb unconstrained variables")
	}
	if packer.GetValue(applied, 1) != 2 {
		t.Error("Apply should set the constrained variable")
	}
}

func TestPartialStateMaskValDirtyRecompute(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3)})
	ps := PartialFrom(packer, VarVal{Var: 0, Val: 1})

	// MaskVal returns ps's own buffers, so read them before Set rewrites
	// them in place.
	mask1, val1 := ps.MaskVal()
	maskBefore, valBefore := mask1[0], packer.GetValue(val1, 0)
	ps.Set(0, 2)
	mask2, val2 := ps.MaskVal()

	if valBefore == packer.GetValue(val2, 0) {
		t.Error("expected MaskVal to reflect the updated pair after Set invalidated the cache")
	}
	if maskBefore != mask2[0] {
		t.Error("mask should be unchanged across a value-only update of the same variable")
	}
}
