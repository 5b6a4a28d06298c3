package fdplan

import "testing"

// TestOperatorApplyConditionalEffectBranches is spec §8's conditional
// effect scenario: an operator with an unconditional effect on x, and
// two conditional effects branching on the *source* state's y, not on
// the operator's own precondition.
func TestOperatorApplyConditionalEffectBranches(t *testing.T) {
	x := NewVariable("x", 4)
	y := NewVariable("y", 2)
	packer := NewPacker([]Variable{x, y})
	pool := NewStatePool(packer)

	op := &Operator{
		Name: "cond_op",
		Cost: 1,
		Pre:  NewPartialState(packer),
		Eff:  PartialFrom(packer, VarVal{Var: 0, Val: 1}),
		CondEff: []CondEffect{
			{Pre: PartialFrom(packer, VarVal{Var: 1, Val: 1}), Eff: PartialFrom(packer, VarVal{Var: 0, Val: 2})},
			{Pre: PartialFrom(packer, VarVal{Var: 1, Val: 0}), Eff: PartialFrom(packer, VarVal{Var: 0, Val: 3})},
		},
	}

	yIs1 := pool.InsertValues([]int{0, 1})
	childYis1 := op.Apply(pool, yIs1)
	if got := packer.GetValue(pool.Raw(childYis1), 0); got != 2 {
		t.Errorf("y=1 branch: got x=%d, want 2 (conditional effect should win over unconditional)", got)
	}

	yIs0 := pool.InsertValues([]int{0, 0})
	childYis0 := op.Apply(pool, yIs0)
	if got := packer.GetValue(pool.Raw(childYis0), 0); got != 3 {
		t.Errorf("y=0 branch: got x=%d, want 3", got)
	}
}

func TestOperatorGroundedOK(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})

	ok := &Operator{
		Pre: PartialFrom(packer, VarVal{Var: 0, Val: 1}),
		Eff: PartialFrom(packer, VarVal{Var: 0, Val: 1}, VarVal{Var: 1, Val: 0}),
	}
	if !ok.GroundedOK() {
		t.Error("expected an effect over a constrained-matching var plus an unconstrained var to be grounded-OK")
	}

	bad := &Operator{
		Pre: PartialFrom(packer, VarVal{Var: 0, Val: 1}),
		Eff: PartialFrom(packer, VarVal{Var: 0, Val: 99}),
	}
	// GroundedOK checks Pre-vs-Eff *value* consistency only when Pre
	// constrains the same variable Eff sets; an Eff that disagrees with
	// Pre's value for a variable Pre does constrain is not grounded-OK.
	if bad.GroundedOK() {
		t.Error("expected a precondition/effect value mismatch to fail GroundedOK")
	}
}

func TestSimplifyConditionalEffectsMergesImpliedEffects(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3), NewVariable("c", 3)})

	general := CondEffect{
		Pre: PartialFrom(packer, VarVal{Var: 0, Val: 1}),
		Eff: PartialFrom(packer, VarVal{Var: 1, Val: 1}),
	}
	specific := CondEffect{
		Pre: PartialFrom(packer, VarVal{Var: 0, Val: 1}, VarVal{Var: 2, Val: 2}),
		Eff: PartialFrom(packer, VarVal{Var: 2, Val: 1}),
	}

	out := SimplifyConditionalEffects([]CondEffect{general, specific})
	if len(out) != 1 {
		t.Fatalf("expected the general condition to absorb the more specific one, got %d entries", len(out))
	}
	if _, ok := out[0].Eff.Get(1); !ok {
		t.Error("merged effect should retain the general condition's assignment")
	}
	if _, ok := out[0].Eff.Get(2); !ok {
		t.Error("merged effect should retain the specific condition's assignment")
	}
}
