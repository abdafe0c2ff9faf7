package clause

import (
	"testing"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/litvar"
)

// fakeSolver is a minimal Watcher used to exercise Clause in isolation,
// mirroring the watcher-list bookkeeping a real Solver would do.
type fakeSolver struct {
	watches map[litvar.Literal][]*Clause
}

func newFakeSolver() *fakeSolver {
	return &fakeSolver{watches: map[litvar.Literal][]*Clause{}}
}

func (f *fakeSolver) Watch(c *Clause, at litvar.Literal, _ litvar.Literal) {
	f.watches[at] = append(f.watches[at], c)
}

func (f *fakeSolver) Unwatch(c *Clause, at litvar.Literal) {
	ws := f.watches[at]
	for i, w := range ws {
		if w == c {
			f.watches[at] = append(ws[:i], ws[i+1:]...)
			return
		}
	}
}

func newTestAssignment(n int) *assign.Assignment {
	a := assign.New()
	for i := 0; i < n; i++ {
		a.Grow()
	}
	return a
}

func TestNew_UnitClauseEnqueues(t *testing.T) {
	a := newTestAssignment(1)
	w := newFakeSolver()

	p0 := litvar.PositiveLiteral(0)
	c, ok := New(a, w, []litvar.Literal{p0}, Problem)
	if c != nil {
		t.Fatalf("expected nil clause for unit input, got %v", c)
	}
	if !ok {
		t.Fatalf("expected ok=true for a fresh unit clause")
	}
	if a.Value(p0) != litvar.LTrue {
		t.Fatalf("unit literal was not enqueued")
	}
}

func TestNew_TautologyIsDropped(t *testing.T) {
	a := newTestAssignment(1)
	w := newFakeSolver()

	p0 := litvar.PositiveLiteral(0)
	c, ok := New(a, w, []litvar.Literal{p0, p0.Opposite()}, Problem)
	if c != nil || !ok {
		t.Fatalf("New() = (%v, %v), want (nil, true) for a tautology", c, ok)
	}
}

func TestClause_PropagateUnitAndConflict(t *testing.T) {
	a := newTestAssignment(3)
	w := newFakeSolver()

	p0, p1, p2 := litvar.PositiveLiteral(0), litvar.PositiveLiteral(1), litvar.PositiveLiteral(2)
	c, ok := New(a, w, []litvar.Literal{p0, p1, p2}, Problem)
	if !ok || c == nil {
		t.Fatalf("New() failed unexpectedly")
	}

	// Falsify p0 and p1; propagating should force p2.
	a.Force(p0.Opposite(), nil)
	if !c.Propagate(a, w, p0.Opposite()) {
		t.Fatalf("Propagate(!p0) reported conflict unexpectedly")
	}
	a.Force(p1.Opposite(), nil)
	if !c.Propagate(a, w, p1.Opposite()) {
		t.Fatalf("Propagate(!p1) reported conflict unexpectedly")
	}
	if a.Value(p2) != litvar.LTrue {
		t.Fatalf("expected p2 forced true, got %v", a.Value(p2))
	}

	if !c.Locked(a) {
		t.Fatalf("clause should be locked: it is p2's reason")
	}
}

func TestClause_ExplainAssign(t *testing.T) {
	a := newTestAssignment(3)
	w := newFakeSolver()

	p0, p1, p2 := litvar.PositiveLiteral(0), litvar.PositiveLiteral(1), litvar.PositiveLiteral(2)
	c, _ := New(a, w, []litvar.Literal{p0, p1, p2}, Problem)

	a.Force(p0.Opposite(), nil)
	a.Force(p1.Opposite(), nil)
	c.Propagate(a, w, p0.Opposite())
	c.Propagate(a, w, p1.Opposite())

	got := c.Explain(p2, nil)
	want := []litvar.Literal{p1.Opposite(), p0.Opposite()}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Explain(p2) = %v, want %v", got, want)
	}
}
