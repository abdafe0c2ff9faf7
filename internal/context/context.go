// Package sharedctx implements the shared-context lifecycle of §3/§6: the
// object a front-end builds a problem against (variables, constraints,
// the dependency graph) before handing it to one or more solver.Solver
// instances. It mirrors the original's SharedContext/pushSolver split:
// one master Solver accumulates the problem at decision level 0, then
// Attach clones it into worker Solvers once the context is frozen.
package sharedctx

import (
	"github.com/pkg/errors"

	"github.com/go-clasp/clasp/internal/clause"
	"github.com/go-clasp/clasp/internal/depgraph"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/solver"
	"github.com/go-clasp/clasp/internal/ufs"
)

// ShareMode selects which parts of a frozen context are physically
// shared (a single pointer referenced by every attached Solver) versus
// cloned into each Solver's own private store. Only the short-
// implication graph's binary/ternary arcs are built for true concurrent
// sharing (shortimp.Graph's CAS-based append path, §4.2); everything
// else is cloned per Solver, since clause.Clause mutates its own watch
// position in place during propagation and so is not safe to hand to
// more than one concurrently running Solver (§9's per-solver-scratch
// design note, which this implementation doesn't carry all the way
// through for long clauses).
type ShareMode uint8

const (
	ShareAuto ShareMode = iota
	ShareProblem
	ShareLearnt
	ShareAll
	ShareNone
)

// SharedContext owns the master Solver that accumulates a problem's
// variables and constraints at decision level 0, plus the bookkeeping
// (variable roles, dependency graph, step-literal clauses) that a
// front-end builds before calling EndInit.
type SharedContext struct {
	master *solver.Solver
	opts   solver.Options

	share ShareMode

	varInfo []litvar.VarInfo
	frozen  bool

	graph    *depgraph.Graph
	checker  *ufs.Checker
	useGraph bool

	stepVar     litvar.Var
	hasStepVar  bool
	stepClauses []*clause.Clause
}

// New returns an empty SharedContext whose master solver uses opts. The
// master's short-implication graph is always built in shared mode
// (solver.NewShared) so a later Attach can hand attached Solvers the
// same instance under ShareProblem/ShareAll without first replaying
// every binary/ternary clause.
func New(opts solver.Options) *SharedContext {
	return &SharedContext{
		master: solver.NewShared(opts),
		opts:   opts,
		share:  ShareAuto,
	}
}

// SetShareMode configures how a later Attach divides shared vs. cloned
// state. It must be called before EndInit.
func (sc *SharedContext) SetShareMode(m ShareMode) { sc.share = m }

// SetShareModeString is SetShareMode parsed from §6's share_mode
// configuration key (one of "auto", "problem", "learnt", "all", "none"),
// the form a front end reads out of config.Config.ShareMode.
func (sc *SharedContext) SetShareModeString(s string) error {
	switch s {
	case "", "auto":
		sc.share = ShareAuto
	case "problem":
		sc.share = ShareProblem
	case "learnt":
		sc.share = ShareLearnt
	case "all":
		sc.share = ShareAll
	case "none":
		sc.share = ShareNone
	default:
		return errors.Errorf("sharedctx: unknown share_mode %q", s)
	}
	return nil
}

// Graph lazily allocates the dependency graph backing the unfounded-set
// checker, for front-ends that ground a non-tight logic program. Callers
// populate it via AddAtom/AddBody/AddPositiveDependency/AddDefiningBody
// before EndInit; EndInit registers the resulting checker as a post-
// propagator if any atom was added.
func (sc *SharedContext) Graph() *depgraph.Graph {
	if sc.graph == nil {
		sc.graph = depgraph.New()
	}
	sc.useGraph = true
	return sc.graph
}

// AddVars grows the master solver by n fresh variables of the given
// type, returning the id of the first one (the rest follow
// contiguously), mirroring the original's addVars(n, type) -> first_id.
func (sc *SharedContext) AddVars(n int, t litvar.VarType) litvar.Var {
	first := litvar.Var(-1)
	for i := 0; i < n; i++ {
		v := sc.master.Grow()
		if i == 0 {
			first = v
		}
		sc.varInfo = append(sc.varInfo, litvar.NewVarInfo(t))
	}
	return first
}

// VarInfo returns v's role/flag bundle.
func (sc *SharedContext) VarInfo(v litvar.Var) litvar.VarInfo { return sc.varInfo[v] }

// Freeze marks v as frozen: its truth value must not be eliminated by
// root-level simplification (§3, preprocessing interacting with
// incremental solving).
func (sc *SharedContext) Freeze(v litvar.Var) { sc.varInfo[v].SetFrozen(true) }

// Eliminate clears v's frozen flag, allowing a later preprocessing pass
// to remove it once it is no longer referenced by a live constraint.
// The original performs the actual variable elimination during
// preprocessing; this implementation only tracks the flag; removal
// itself is out of scope (no preprocessor is implemented).
func (sc *SharedContext) Eliminate(v litvar.Var) { sc.varInfo[v].SetFrozen(false) }

// StartAddConstraints returns the master solver handle constraints are
// added against. hint is advisory (a capacity hint for the caller's own
// storage) and unused here; the master solver grows its clause storage
// lazily.
func (sc *SharedContext) StartAddConstraints(hint int) *solver.Solver {
	_ = hint
	return sc.master
}

// AddClause adds a problem clause to the master solver (§3).
func (sc *SharedContext) AddClause(lits []litvar.Literal) error {
	return sc.master.AddClause(lits)
}

// RequestStepVar allocates (or returns the already-allocated) step
// variable of §3/§6: a fresh plain variable that AddStepClause requires
// to exist. The variable is never assumed, and AddStepClause does not
// add it to the clauses it installs.
//
// The original retracts a step by flipping the step literal false at
// decision level 0, which this solver's Assignment can't do once a
// root literal has been forced true (that would register as a
// conflict, not an un-assignment). Instead Unfreeze tracks step clauses
// by pointer and calls solver.Solver.RemoveClause directly; functionally
// equivalent for a context with one step in flight at a time, which is
// the only case this implementation supports.
func (sc *SharedContext) RequestStepVar() litvar.Var {
	if !sc.hasStepVar {
		sc.stepVar = sc.AddVars(1, litvar.VarPlain)
		sc.hasStepVar = true
	}
	return sc.stepVar
}

// AddStepClause adds a clause tagged clause.Volatile, scoped to the
// current step so a later Unfreeze can retract it. It must be called
// after RequestStepVar.
func (sc *SharedContext) AddStepClause(lits []litvar.Literal) error {
	if !sc.hasStepVar {
		return errors.New("sharedctx: AddStepClause called before RequestStepVar")
	}
	c, err := sc.master.AddVolatileClause(lits, clause.Volatile)
	if err != nil {
		return err
	}
	sc.stepClauses = append(sc.stepClauses, c)
	return nil
}

// EndInit freezes the context: it registers the unfounded-set checker
// (if a non-empty dependency graph was built via Graph) as a post-
// propagator on the master solver, then reports whether the master
// solver is still satisfiable at the root. attachAll is accepted for
// parity with the original's endInit(attachAll) signature; this
// implementation always prepares every variable for sharing, so it has
// no effect.
func (sc *SharedContext) EndInit(attachAll bool) bool {
	_ = attachAll
	if sc.frozen {
		return !sc.master.Unsat()
	}
	sc.frozen = true
	if sc.useGraph && sc.graph != nil && sc.graph.NumAtoms() > 0 {
		sc.checker = ufs.New(sc.graph)
		sc.master.RegisterPostPropagator(sc.checker)
	}
	return !sc.master.Unsat()
}

// Unfreeze retracts every clause AddStepClause added since the last Unfreeze,
// readying the context for a new step (§3/§6 "enable_enumeration_
// assumption interaction with the step literal", resolved here by
// dropping the old step's volatile clauses outright rather than
// re-deriving their falsity through a flipped literal).
func (sc *SharedContext) Unfreeze() bool {
	for _, c := range sc.stepClauses {
		sc.master.RemoveClause(c)
	}
	sc.stepClauses = nil
	sc.hasStepVar = false
	return !sc.master.Unsat()
}

// Master returns the accumulating solver directly, for callers (tests,
// a single-threaded front-end) that don't need a separate attached
// Solver.
func (sc *SharedContext) Master() *solver.Solver { return sc.master }

// Attach builds a new worker Solver over the frozen context (EndInit
// must have already run) and returns it ready to Solve, mirroring the
// original's pushSolver(). Under ShareProblem/ShareAll/ShareAuto, the
// worker shares the master's *shortimp.Graph pointer (so binary/ternary
// problem arcs aren't duplicated) and re-watches the master's long
// clauses in place via solver.Solver.WatchExisting rather than cloning
// their literals; under ShareLearnt/ShareNone, it instead replays every
// problem clause into a private store via AddClause. Either way, if
// EndInit registered an unfounded-set checker, the same *ufs.Checker is
// also registered on the new Solver: it holds no sweep state between
// calls, so sharing the one instance across every attached Solver is
// safe.
func (sc *SharedContext) Attach() *solver.Solver {
	var w *solver.Solver
	switch sc.share {
	case ShareLearnt, ShareNone:
		w = solver.New(sc.opts)
		w.GrowTo(sc.master.NumVars())
		for _, c := range sc.master.Problem() {
			_ = w.AddClause(append([]litvar.Literal(nil), c.Literals()...))
		}
	default: // ShareAuto, ShareProblem, ShareAll
		w = solver.NewAttached(sc.master.ShortGraph(), sc.opts)
		w.GrowTo(sc.master.NumVars())
		// A shared clause.Clause was already simplified against every
		// root unit the master has forced so far; replay those same
		// units before re-watching it, or the worker's fresh Assignment
		// would disagree with literals the clause no longer carries.
		for _, l := range sc.master.RootUnits() {
			w.Force(l, nil)
		}
		for _, c := range sc.master.Problem() {
			w.WatchExisting(c)
		}
	}
	if sc.checker != nil {
		// Safe to share one *ufs.Checker across every attached Solver: it
		// holds no sweep state between calls (Reset/UndoLevel are no-ops),
		// reading only the live ctl it's handed each call.
		w.RegisterPostPropagator(sc.checker)
	}
	return w
}

// NumVars reports how many variables have been added.
func (sc *SharedContext) NumVars() int { return sc.master.NumVars() }
