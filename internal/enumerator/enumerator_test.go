package enumerator

import (
	"testing"

	"github.com/go-clasp/clasp/internal/clause"
	"github.com/go-clasp/clasp/internal/litvar"
)

// fakeControl is a minimal SolveControl recording every clause it was
// handed, enough to test Handle without a full Solver.
type fakeControl struct {
	model   []bool
	clauses [][]litvar.Literal
}

func (c *fakeControl) Model() []bool { return c.model }
func (c *fakeControl) NumVars() int  { return len(c.model) }
func (c *fakeControl) AddVolatileClause(lits []litvar.Literal, lifetime clause.Lifetime) (*clause.Clause, error) {
	c.clauses = append(c.clauses, append([]litvar.Literal(nil), lits...))
	return nil, nil
}

func TestEnumerator_RecordModeBlocksExactModel(t *testing.T) {
	e := New(ModeRecord, OptIgnore)
	ctl := &fakeControl{model: []bool{true, false, true}}

	keepGoing, err := e.Handle(ctl)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !keepGoing {
		t.Fatalf("keepGoing = false, want true for plain enumeration")
	}
	if len(ctl.clauses) != 1 {
		t.Fatalf("clauses = %d, want 1", len(ctl.clauses))
	}
	want := []litvar.Literal{
		litvar.NegativeLiteral(0),
		litvar.PositiveLiteral(1),
		litvar.NegativeLiteral(2),
	}
	got := ctl.clauses[0]
	if len(got) != len(want) {
		t.Fatalf("blocker = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("blocker[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEnumerator_BraveUnionsAcrossModels(t *testing.T) {
	e := New(ModeBrave, OptIgnore)
	e.Handle(&fakeControl{model: []bool{true, false, false}})
	e.Handle(&fakeControl{model: []bool{false, true, false}})

	want := []bool{true, true, false}
	got := e.Brave()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Brave()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEnumerator_CautiousIntersectsAcrossModels(t *testing.T) {
	e := New(ModeCautious, OptIgnore)
	e.Handle(&fakeControl{model: []bool{true, true, false}})
	e.Handle(&fakeControl{model: []bool{true, false, false}})

	want := []bool{true, false, false}
	got := e.Cautious()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Cautious()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEnumerator_OptimiseTightensBoundAndStopsAtZeroCost(t *testing.T) {
	e := New(ModeAuto, OptOptimise)
	e.SetMinimize([]litvar.Literal{
		litvar.PositiveLiteral(0),
		litvar.PositiveLiteral(1),
	})

	ctl := &fakeControl{model: []bool{true, true}}
	keepGoing, err := e.Handle(ctl)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if e.Bound() != 2 {
		t.Fatalf("Bound() = %d, want 2", e.Bound())
	}
	if !keepGoing {
		t.Fatalf("keepGoing = false, want true: OptOptimise keeps searching for a better bound")
	}
	if len(ctl.clauses) != 1 {
		t.Fatalf("clauses = %d, want 1", len(ctl.clauses))
	}

	ctl2 := &fakeControl{model: []bool{false, false}}
	keepGoing, err = e.Handle(ctl2)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if e.Bound() != 0 {
		t.Fatalf("Bound() = %d, want 0", e.Bound())
	}
	if keepGoing || !e.Optimal {
		t.Fatalf("keepGoing/Optimal = %v/%v, want false/true at zero cost", keepGoing, e.Optimal)
	}
}
