package heuristic

import (
	"testing"

	"github.com/go-clasp/clasp/internal/litvar"
)

func allAssignedExcept(assigned map[litvar.Var]bool) func(litvar.Var) bool {
	return func(v litvar.Var) bool { return assigned[v] }
}

func TestNew_AllKindsSelectAFreeVariable(t *testing.T) {
	kinds := []Kind{KindVSIDS, KindVMTF, KindBerkmin, KindDomain, KindUnit, KindNone, ""}
	for _, k := range kinds {
		k := k
		t.Run(string(k), func(t *testing.T) {
			h := New(Options{Kind: k, VarDecay: 0.95})
			for i := 0; i < 4; i++ {
				h.Grow()
			}
			assigned := map[litvar.Var]bool{0: true, 1: true}
			l := h.Select(allAssignedExcept(assigned))
			if assigned[l.VarID()] {
				t.Fatalf("Select returned an already-assigned variable: %v", l)
			}
			h.Bump(l.VarID())
			h.Decay()
			h.Unassign(l.VarID(), litvar.LTrue)
		})
	}
}

func TestDomain_ModifierStacking(t *testing.T) {
	h := newDomain(0.95, false)
	for i := 0; i < 2; i++ {
		h.Grow()
	}

	// Equal priority: init accumulates, sign replaces.
	h.SetModifier(0, 5, 10, litvar.LFalse, litvar.LUnknown, 0, false)
	h.SetModifier(0, 5, 1, litvar.LTrue, litvar.LUnknown, 0, false)
	if got, want := h.scores.scores[0], 11.0; got != want {
		t.Fatalf("accumulated init = %v, want %v", got, want)
	}
	if h.mods[0].sign != litvar.LTrue {
		t.Fatalf("sign modifier at equal priority should have replaced, got %v", h.mods[0].sign)
	}

	// Higher priority replaces everything, including the accumulated init.
	h.SetModifier(0, 6, 100, litvar.LUnknown, litvar.LUnknown, 0, false)
	if got, want := h.scores.scores[0], 100.0; got != want {
		t.Fatalf("higher-priority init = %v, want %v", got, want)
	}

	// Lower priority than what's recorded is ignored.
	h.SetModifier(0, 1, 999, litvar.LUnknown, litvar.LUnknown, 0, false)
	if got, want := h.scores.scores[0], 100.0; got != want {
		t.Fatalf("lower-priority modifier should be ignored, score = %v, want %v", got, want)
	}
}

func TestDomain_ForcedOverridesSign(t *testing.T) {
	h := newDomain(0.95, false)
	h.Grow()
	h.SetModifier(0, 1, 0, litvar.LFalse, litvar.LTrue, 0, false)
	l := h.Select(func(litvar.Var) bool { return false })
	if !l.IsPositive() {
		t.Fatalf("forced=true should win over sign=false, got %v", l)
	}
}

func TestUnit_SelectsInAscendingOrder(t *testing.T) {
	h := newUnit()
	for i := 0; i < 3; i++ {
		h.Grow()
	}
	l := h.Select(allAssignedExcept(map[litvar.Var]bool{0: true}))
	if l.VarID() != 1 {
		t.Fatalf("Select() = var %d, want 1", l.VarID())
	}
}
