package assign

import (
	"testing"

	"github.com/go-clasp/clasp/internal/litvar"
)

func newTestAssignment(nVars int) *Assignment {
	a := New()
	for i := 0; i < nVars; i++ {
		a.Grow()
	}
	return a
}

func TestAssignment_AssumeForceUndo(t *testing.T) {
	a := newTestAssignment(3)

	v0, v1 := litvar.Var(0), litvar.Var(1)
	p0, p1 := litvar.PositiveLiteral(v0), litvar.PositiveLiteral(v1)

	if !a.Assume(p0) {
		t.Fatalf("Assume(p0) = false, want true")
	}
	if a.DecisionLevel() != 1 {
		t.Fatalf("DecisionLevel() = %d, want 1", a.DecisionLevel())
	}
	if !a.Force(p1, nil) {
		t.Fatalf("Force(p1) = false, want true")
	}
	if a.Level(v1) != 1 {
		t.Fatalf("Level(v1) = %d, want 1", a.Level(v1))
	}

	// Forcing the opposite of an already-true literal is a conflict.
	if a.Force(p1.Opposite(), nil) {
		t.Fatalf("Force(!p1) = true, want false (conflict)")
	}

	var undone []litvar.Literal
	a.UndoUntil(0, func(l litvar.Literal) { undone = append(undone, l) })

	if a.DecisionLevel() != 0 {
		t.Fatalf("DecisionLevel() after undo = %d, want 0", a.DecisionLevel())
	}
	if a.VarValue(v0) != litvar.LUnknown || a.VarValue(v1) != litvar.LUnknown {
		t.Fatalf("expected both variables unassigned after undo")
	}
	if len(undone) != 2 {
		t.Fatalf("expected 2 unassign callbacks, got %d", len(undone))
	}
}

func TestResetSet(t *testing.T) {
	rs := &ResetSet{}
	for i := 0; i < 4; i++ {
		rs.Grow()
	}

	rs.Add(1)
	rs.Add(2)
	if !rs.Contains(1) || !rs.Contains(2) {
		t.Fatalf("expected 1 and 2 in the set")
	}
	if rs.Contains(0) || rs.Contains(3) {
		t.Fatalf("expected 0 and 3 absent")
	}

	rs.Clear()
	if rs.Contains(1) || rs.Contains(2) {
		t.Fatalf("expected set empty after Clear")
	}
}

func TestRingQueue_PushPopWraps(t *testing.T) {
	q := NewRingQueue(2)
	for i := int32(0); i < 10; i++ {
		q.Push(i)
	}
	if q.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", q.Len())
	}
	for i := int32(0); i < 10; i++ {
		if got := q.Pop(); got != i {
			t.Fatalf("Pop() = %d, want %d", got, i)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", q.Len())
	}
}
