package propagator

import (
	"testing"

	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/postprop"
	"github.com/go-clasp/clasp/internal/solver"
)

// TestAdapter_DrivesOutToFalseThroughARealSolver drives the same
// countingExtension propagator_test.go exercises with fakeControl, but through a real
// *solver.Solver, proving the Adapter's trailReader type assertion in
// PropagateFixpoint actually succeeds against the concrete type it
// targets (Solver.Trail), not just a test double shaped like one.
func TestAdapter_DrivesOutToFalseThroughARealSolver(t *testing.T) {
	s := solver.New(solver.Options{})
	s.GrowTo(3)
	a := litvar.PositiveLiteral(litvar.Var(0))
	b := litvar.PositiveLiteral(litvar.Var(1))
	out := litvar.PositiveLiteral(litvar.Var(2))

	ext := &countingExtension{a: a, b: b, out: out}
	s.RegisterPostPropagator(New(ext, postprop.ClassGeneral))

	if err := s.AddClause([]litvar.Literal{a}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if err := s.AddClause([]litvar.Literal{b}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}

	status, err := s.Solve(-1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != litvar.LTrue {
		t.Fatalf("Solve status = %v, want LTrue", status)
	}
	model := s.Model()
	if model[2] {
		t.Fatalf("out = true, want false: the extension should have forced it once a and b were both true")
	}
}
