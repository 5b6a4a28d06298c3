package fdplan

import "testing"

func TestPackerPackUnpackRoundTrip(t *testing.T) {
	vars := []Variable{
		NewVariable("a", 3),
		NewVariable("b", 256),
		NewVariable("c", 2),
	}
	packer := NewPacker(vars)

	tests := []struct {
		name   string
		values []int
	}{
		{"all_zero", []int{0, 0, 0}},
		{"max_values", []int{2, 255, 1}},
		{"mixed", []int{1, 130, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := packer.Pack(tt.values)
			out := make([]int, len(tt.values))
			packer.Unpack(s, out)
			for i, v := range tt.values {
				if out[i] != v {
					t.Errorf("var %d: got %d, want %d", i, out[i], v)
				}
			}
		})
	}
}

func TestPackerGetSetValue(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 4)})
	s := packer.NewState()

	packer.SetValue(s, 0, 2)
	packer.SetValue(s, 1, 3)

	if got := packer.GetValue(s, 0); got != 2 {
		t.Errorf("var 0: got %d, want 2", got)
	}
	if got := packer.GetValue(s, 1); got != 3 {
		t.Errorf("var 1: got %d, want 3", got)
	}

	packer.SetValue(s, 0, 0)
	if got := packer.GetValue(s, 0); got != 0 {
		t.Errorf("var 0 after overwrite: got %d, want 0", got)
	}
	if got := packer.GetValue(s, 1); got != 3 {
		t.Errorf("var 1 unaffected by var 0 overwrite: got %d, want 3", got)
	}
}

func TestPackerEqual(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	s1 := packer.Pack([]int{1, 2})
	s2 := packer.Pack([]int{1, 2})
	s3 := packer.Pack([]int{1, 1})

	if !packer.Equal(s1, s2) {
		t.Error("expected equal states to compare equal")
	}
	if packer.Equal(s1, s3) {
		t.Error("expected differing states to compare unequal")
	}
}

func TestPackerExtractAndApplyPublicPrivate(t *testing.T) {
	vars := []Variable{
		NewVariable("pub", 3),
		NewVariableWithPrivacy("priv", 3, []bool{true, true, true}),
	}
	packer := NewPacker(vars)
	full := packer.Pack([]int{1, 2})

	public := packer.ExtractPublic(full)
	private := packer.ExtractPrivate(full)

	if v, ok := public.Get(0); !ok || v != 1 {
		t.Errorf("public slice missing var 0=1, got %v,%v", v, ok)
	}
	if _, ok := public.Get(1); ok {
		t.Error("public slice should not constrain private var 1")
	}
	if v, ok := private.Get(1); !ok || v != 2 {
		t.Errorf("private slice missing var 1=2, got %v,%v", v, ok)
	}

	mask, val := public.MaskVal()
	restored := packer.NewState()
	restored = packer.ApplyRaw(mask, val, restored)
	if packer.GetValue(restored, 0) != 1 {
		t.Errorf("ApplyRaw did not restore public var 0")
	}
}

func TestPackerIsSubset(t *testing.T) {
	packer := NewPacker([]Variable{NewVariable("a", 3), NewVariable("b", 3)})
	full := packer.Pack([]int{1, 2})

	matching := PartialFrom(packer, VarVal{Var: 0, Val: 1})
	mismatching := PartialFrom(packer, VarVal{Var: 0, Val: 2})

	if !packer.IsSubset(matching, full) {
		t.Error("expected matching partial state to be a subset")
	}
	if packer.IsSubset(mismatching, full) {
		t.Error("expected mismatching partial state not to be a subset")
	}
}
