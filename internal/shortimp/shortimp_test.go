package shortimp

import (
	"testing"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/litvar"
)

func newTestAssignment(n int) *assign.Assignment {
	a := assign.New()
	for i := 0; i < n; i++ {
		a.Grow()
	}
	return a
}

func TestGraph_BinaryPropagate(t *testing.T) {
	g := New(false)
	for i := 0; i < 2; i++ {
		g.Grow()
	}
	a := newTestAssignment(2)

	v0, v1 := litvar.Var(0), litvar.Var(1)
	p0, p1 := litvar.PositiveLiteral(v0), litvar.PositiveLiteral(v1)

	// Clause (p0 v p1): asserting !p0 must force p1.
	if !g.AddBinary(false, p0, p1) {
		t.Fatalf("AddBinary returned false on fresh arc")
	}
	if g.AddBinary(false, p0, p1) {
		t.Fatalf("AddBinary should be idempotent")
	}

	a.Force(p0.Opposite(), nil)
	reason, conflict := g.Propagate(a, p0.Opposite())
	if conflict {
		t.Fatalf("unexpected conflict: %v", reason)
	}
	if a.Value(p1) != litvar.LTrue {
		t.Fatalf("p1 not forced true")
	}
}

func TestGraph_TernaryPropagateAndConflict(t *testing.T) {
	g := New(false)
	for i := 0; i < 3; i++ {
		g.Grow()
	}
	a := newTestAssignment(3)

	p0 := litvar.PositiveLiteral(0)
	p1 := litvar.PositiveLiteral(1)
	p2 := litvar.PositiveLiteral(2)

	// Clause (p0 v p1 v p2).
	g.AddTernary(false, p0, p1, p2)

	a.Force(p0.Opposite(), nil)
	a.Force(p1.Opposite(), nil)

	if _, conflict := g.Propagate(a, p0.Opposite()); conflict {
		t.Fatalf("unexpected conflict after first propagate")
	}
	if _, conflict := g.Propagate(a, p1.Opposite()); conflict {
		t.Fatalf("unexpected conflict after second propagate")
	}
	if a.Value(p2) != litvar.LTrue {
		t.Fatalf("p2 should have been forced true, got %v", a.Value(p2))
	}
}

func TestGraph_BinaryConflictExplainsBothLiterals(t *testing.T) {
	g := New(false)
	for i := 0; i < 2; i++ {
		g.Grow()
	}
	a := newTestAssignment(2)

	p0, p1 := litvar.PositiveLiteral(0), litvar.PositiveLiteral(1)
	g.AddBinary(false, p0, p1) // clause (p0 v p1)

	a.Force(p1.Opposite(), nil) // p1 false, doesn't yet conflict
	a.Force(p0.Opposite(), nil) // p0 false too: now conflicting

	reason, conflict := g.Propagate(a, p0.Opposite())
	if !conflict {
		t.Fatalf("expected conflict when both p0 and p1 are false")
	}
	got := reason.Explain(assign.NoLiteral, nil)
	want := map[litvar.Literal]bool{p0.Opposite(): true, p1.Opposite(): true}
	if len(got) != 2 || !want[got[0]] || !want[got[1]] {
		t.Fatalf("Explain(NoLiteral) = %v, want both %v", got, want)
	}
}

func TestGraph_TernaryConflictExplainsAllThreeLiterals(t *testing.T) {
	g := New(false)
	for i := 0; i < 3; i++ {
		g.Grow()
	}
	a := newTestAssignment(3)

	p0, p1, p2 := litvar.PositiveLiteral(0), litvar.PositiveLiteral(1), litvar.PositiveLiteral(2)
	g.AddTernary(false, p0, p1, p2) // clause (p0 v p1 v p2)

	a.Force(p1.Opposite(), nil)
	a.Force(p2.Opposite(), nil)
	a.Force(p0.Opposite(), nil) // all three false: conflict

	reason, conflict := g.Propagate(a, p0.Opposite())
	if !conflict {
		t.Fatalf("expected conflict when p0, p1 and p2 are all false")
	}
	got := reason.Explain(assign.NoLiteral, nil)
	if len(got) != 3 {
		t.Fatalf("Explain(NoLiteral) returned %d literals, want 3: %v", len(got), got)
	}
	want := map[litvar.Literal]bool{p0.Opposite(): true, p1.Opposite(): true, p2.Opposite(): true}
	for _, l := range got {
		if !want[l] {
			t.Fatalf("Explain(NoLiteral) returned unexpected literal %v, want one of %v", l, want)
		}
	}
}

func TestGraph_RemoveTrue(t *testing.T) {
	g := New(false)
	for i := 0; i < 2; i++ {
		g.Grow()
	}
	p0, p1 := litvar.PositiveLiteral(0), litvar.PositiveLiteral(1)
	g.AddBinary(false, p0, p1)

	g.RemoveTrue(p0.Opposite())
	if len(g.bin[p0.Opposite()]) != 0 {
		t.Fatalf("expected arcs cleared after RemoveTrue")
	}
}
