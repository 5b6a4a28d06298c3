package fdplan

import "testing"

func TestStatePoolInternDedup(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	pool := NewStatePool(packer)

	id1 := pool.InsertValues([]int{1, 2})
	id2 := pool.InsertValues([]int{1, 2})
	id3 := pool.InsertValues([]int{1, 1})

	if id1 != id2 {
		t.Errorf("expected identical states to intern to the same id, got %d and %d", id1, id2)
	}
	if id1 == id3 {
		t.Error("expected distinct states to intern to distinct ids")
	}
	if pool.Len() != 2 {
		t.Errorf("expected 2 distinct states, got %d", pool.Len())
	}

	stats := pool.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit (the duplicate insert), got %d", stats.Hits)
	}
	if stats.Misses != 2 {
		t.Errorf("expected 2 misses (the first inserts), got %d", stats.Misses)
	}
}

func TestStatePoolRawStable(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3)})
	pool := NewStatePool(packer)

	id := pool.InsertValues([]int{2})
	raw := pool.Raw(id)

	if packer.GetValue(raw, 0) != 2 {
		t.Errorf("got %d, want 2", packer.GetValue(raw, 0))
	}
}

func TestStatePoolApplyPartialInternsChild(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	pool := NewStatePool(packer)

	parent := pool.InsertValues([]int{0, 0})
	eff := PartialFrom(packer, VarVal{Var: 1, Val: 2})
	child := pool.ApplyPartial(eff, parent)

	if child == parent {
		t.Fatal("expected applying a non-trivial effect to produce a distinct state")
	}
	if packer.GetValue(pool.Raw(child), 1) != 2 {
		t.Error("child state did not reflect the applied effect")
	}
	if packer.GetValue(pool.Raw(child), 0) != 0 {
		t.Error("child state should preserve variables the effect left untouched")
	}
}

func TestStatePoolPartialIsSubset(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	pool := NewStatePool(packer)
	id := pool.InsertValues([]int{2, 1})

	goal := PartialFrom(packer, VarVal{Var: 0, Val: 2}, VarVal{Var: 1, Val: 1})
	if !pool.PartialIsSubset(goal, id) {
		t.Error("expected goal to be satisfied")
	}

	goal.Set(1, 0)
	if pool.PartialIsSubset(goal, id) {
		t.Error("expected goal not to be satisfied after mismatch")
	}
}
