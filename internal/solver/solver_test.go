package solver

import (
	"testing"

	"github.com/go-clasp/clasp/internal/litvar"
)

// Test clauses use 1-based DIMACS-style integers (positive n = var n-1
// true, negative n = var n-1 false) so variable 0 can still be negated
// unambiguously (Go has no negative zero for int literals).

func lits(vs ...int) []litvar.Literal {
	out := make([]litvar.Literal, len(vs))
	for i, v := range vs {
		if v < 0 {
			out[i] = litvar.NegativeLiteral(litvar.Var(-v - 1))
		} else {
			out[i] = litvar.PositiveLiteral(litvar.Var(v - 1))
		}
	}
	return out
}

func checkModel(t *testing.T, s *Solver, clauses [][]int) {
	t.Helper()
	model := s.Model()
	for _, c := range clauses {
		ok := false
		for _, v := range c {
			if v < 0 {
				ok = ok || !model[-v-1]
			} else {
				ok = ok || model[v-1]
			}
		}
		if !ok {
			t.Fatalf("clause %v not satisfied by model %v", c, model)
		}
	}
}

func TestSolver_SimpleSatisfiable(t *testing.T) {
	s := New(Options{})
	for i := 0; i < 3; i++ {
		s.Grow()
	}
	clauses := [][]int{{1, 2}, {-1, 3}, {-2, -3}}
	for _, c := range clauses {
		if err := s.AddClause(lits(c...)); err != nil {
			t.Fatalf("AddClause(%v): %v", c, err)
		}
	}
	status, err := s.Solve(-1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != litvar.LTrue {
		t.Fatalf("Solve() = %v, want LTrue", status)
	}
	checkModel(t, s, clauses)
}

func TestSolver_Unsatisfiable(t *testing.T) {
	s := New(Options{})
	s.Grow()
	if err := s.AddClause(lits(1)); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if err := s.AddClause(lits(-1)); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	status, err := s.Solve(-1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != litvar.LFalse {
		t.Fatalf("Solve() = %v, want LFalse", status)
	}
	if !s.Unsat() {
		t.Fatalf("Unsat() = false after refuting a unit-conflict problem")
	}
}

func TestSolver_ExactlyOneOfFour(t *testing.T) {
	// "Exactly one of four" exercises the two-watched-literal path (the
	// 4-literal clause) next to the short-implication graph (the binary
	// clauses). The first decision (positive phase by default) forces the
	// other three variables false, so a model is found without a conflict.
	s := New(Options{})
	for i := 0; i < 4; i++ {
		s.Grow()
	}
	clauses := [][]int{
		{1, 2, 3, 4},
		{-1, -2}, {-1, -3}, {-1, -4},
		{-2, -3}, {-2, -4},
		{-3, -4},
	}
	for _, c := range clauses {
		if err := s.AddClause(lits(c...)); err != nil {
			t.Fatalf("AddClause(%v): %v", c, err)
		}
	}
	status, err := s.Solve(-1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != litvar.LTrue {
		t.Fatalf("Solve() = %v, want LTrue (exactly one of four must hold)", status)
	}
	checkModel(t, s, clauses)
}

func TestSolver_AddClauseRejectsNonRootLevel(t *testing.T) {
	s := New(Options{})
	for i := 0; i < 2; i++ {
		s.Grow()
	}
	s.Assume(lits(1)[0])
	if err := s.AddClause(lits(2)); err == nil {
		t.Fatalf("AddClause should reject a call at decision level %d", s.DecisionLevel())
	}
}
