package learnt

import (
	"testing"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/clause"
	"github.com/go-clasp/clasp/internal/litvar"
)

type noopWatcher struct{}

func (noopWatcher) Watch(*clause.Clause, litvar.Literal, litvar.Literal) {}
func (noopWatcher) Unwatch(*clause.Clause, litvar.Literal)               {}

func newTestAssignment(n int) *assign.Assignment {
	a := assign.New()
	for i := 0; i < n; i++ {
		a.Grow()
	}
	return a
}

func mkClause(t *testing.T, a *assign.Assignment, w clause.Watcher, lits ...litvar.Literal) *clause.Clause {
	t.Helper()
	c, ok := clause.New(a, w, lits, clause.ConflictLoop)
	if !ok || c == nil {
		t.Fatalf("failed to build test clause from %v", lits)
	}
	return c
}

func TestDB_ReduceDropsWorseHalf(t *testing.T) {
	a := newTestAssignment(8)
	w := noopWatcher{}
	db := New(0.999)

	for i := 0; i < 4; i++ {
		v := litvar.Var(2 * i)
		c := mkClause(t, a, w, litvar.PositiveLiteral(v), litvar.PositiveLiteral(v+1))
		db.Add(c)
	}
	if db.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", db.Len())
	}

	db.Reduce(a, w)

	if db.Len() != 2 {
		t.Fatalf("Len() after Reduce = %d, want 2 (half dropped)", db.Len())
	}
}

func TestDB_ReduceKeepsLockedClauses(t *testing.T) {
	a := newTestAssignment(8)
	w := noopWatcher{}
	db := New(0.999)

	var locked *clause.Clause
	for i := 0; i < 4; i++ {
		v := litvar.Var(2 * i)
		c := mkClause(t, a, w, litvar.PositiveLiteral(v), litvar.PositiveLiteral(v+1))
		db.Add(c)
		if i == 0 {
			locked = c
		}
	}

	// Force the first clause's watched literal so it becomes locked
	// (acting as the antecedent of its own unit propagation).
	a.Force(litvar.PositiveLiteral(0).Opposite(), nil)
	locked.Propagate(a, w, litvar.PositiveLiteral(0).Opposite())

	db.Reduce(a, w)

	found := false
	for i := 0; i < db.Len(); i++ {
		if db.clauses[i] == locked {
			found = true
		}
	}
	if !found {
		t.Fatalf("locked clause was dropped by Reduce")
	}
}
