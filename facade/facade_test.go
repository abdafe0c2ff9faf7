package facade

import (
	"context"
	"testing"

	"github.com/go-clasp/clasp/internal/assign"
	sharedctx "github.com/go-clasp/clasp/internal/context"
	"github.com/go-clasp/clasp/internal/enumerator"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/postprop"
	"github.com/go-clasp/clasp/internal/propagator"
	"github.com/go-clasp/clasp/internal/solver"
)

// forceThirdFalse is a propagator.Extension forcing variable 3 false
// once both variable 1 and variable 2 are true, used to prove
// RegisterExtension actually reaches the Solver RunParallel attaches.
type forceThirdFalse struct {
	a, b, out litvar.Literal
}

func (e *forceThirdFalse) Init(watch func(lits ...litvar.Literal)) { watch(e.a, e.b) }

func (e *forceThirdFalse) Propagate(ctl postprop.Control, changes []litvar.Literal) (assign.Reason, bool) {
	if ctl.Value(e.a) == litvar.LTrue && ctl.Value(e.b) == litvar.LTrue {
		if !ctl.Force(e.out.Opposite(), nil) {
			return nil, true
		}
	}
	return nil, false
}

func (e *forceThirdFalse) Undo(changes []litvar.Literal)   {}
func (e *forceThirdFalse) Check(ctl postprop.Control) bool { return true }

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

func TestFacade_RunParallelFindsModel(t *testing.T) {
	sc := sharedctx.New(solver.Options{})
	sc.AddVars(3, litvar.VarPlain)
	sc.AddClause(lits(1, 2, 3))
	sc.AddClause(lits(-1, -2))
	if ok := sc.EndInit(false); !ok {
		t.Fatalf("EndInit: want true")
	}

	f := New(sc)
	res, err := f.RunParallel(context.Background(), 4, nil)
	if err != nil {
		t.Fatalf("RunParallel: %v", err)
	}
	if res.Status != StatusSat {
		t.Fatalf("Status = %v, want StatusSat", res.Status)
	}
	if len(res.Model) != 3 {
		t.Fatalf("Model length = %d, want 3", len(res.Model))
	}
}

func TestFacade_RunEnumerateCollectsEveryModel(t *testing.T) {
	sc := sharedctx.New(solver.Options{})
	sc.AddVars(2, litvar.VarPlain)
	sc.AddClause(lits(1, 2)) // forbids (false, false); 3 satisfying assignments remain
	if ok := sc.EndInit(false); !ok {
		t.Fatalf("EndInit: want true")
	}

	f := New(sc)
	e := enumerator.New(enumerator.ModeRecord, enumerator.OptIgnore)
	res, err := f.RunEnumerate(context.Background(), e, nil)
	if err != nil {
		t.Fatalf("RunEnumerate: %v", err)
	}
	if res.Status != StatusSat {
		t.Fatalf("Status = %v, want StatusSat", res.Status)
	}
	if len(res.Models) != 3 {
		t.Fatalf("Models = %d, want 3", len(res.Models))
	}
}

func TestFacade_RegisteredExtensionForcesLiteralDuringSearch(t *testing.T) {
	sc := sharedctx.New(solver.Options{})
	sc.AddVars(3, litvar.VarPlain)
	sc.AddClause(lits(1))
	sc.AddClause(lits(2))
	if ok := sc.EndInit(false); !ok {
		t.Fatalf("EndInit: want true")
	}

	f := New(sc)
	a := litvar.PositiveLiteral(litvar.Var(0))
	b := litvar.PositiveLiteral(litvar.Var(1))
	out := litvar.PositiveLiteral(litvar.Var(2))
	f.RegisterExtension(func() propagator.Extension {
		return &forceThirdFalse{a: a, b: b, out: out}
	})

	res, err := f.RunParallel(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("RunParallel: %v", err)
	}
	if res.Status != StatusSat {
		t.Fatalf("Status = %v, want StatusSat", res.Status)
	}
	if res.Model[2] {
		t.Fatalf("model[2] = true, want false: the registered extension should have forced it")
	}
}

func TestFacade_RunParallelFindsUnsatWithConflictingAssumptions(t *testing.T) {
	sc := sharedctx.New(solver.Options{})
	sc.AddVars(1, litvar.VarPlain)
	sc.AddClause(lits(1))
	if ok := sc.EndInit(false); !ok {
		t.Fatalf("EndInit: want true")
	}

	f := New(sc)
	res, err := f.RunParallel(context.Background(), 2, lits(-1))
	if err != nil {
		t.Fatalf("RunParallel: %v", err)
	}
	if res.Status != StatusUnsat {
		t.Fatalf("Status = %v, want StatusUnsat", res.Status)
	}
}
