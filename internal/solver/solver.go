// Package solver implements the per-context CDCL search loop of §4: unit
// propagation over the short-implication graph and long-clause watch
// lists, first-UIP conflict analysis, clause recording, learnt-database
// reduction and restarts. It ties together litvar/assign/shortimp/
// clause/learnt/heuristic, none of which know about each other.
package solver

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/clause"
	"github.com/go-clasp/clasp/internal/heuristic"
	"github.com/go-clasp/clasp/internal/learnt"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/postprop"
	"github.com/go-clasp/clasp/internal/shortimp"
)

// ErrRootConflict names the condition of a problem found unsatisfiable
// at decision level 0 (§7, error taxonomy: a "logic" condition, not a
// runtime failure). No function in this package returns it: AddClause
// and AddVolatileClause report a root-level conflict through Unsat().
var ErrRootConflict = errors.New("solver: root-level conflict")

// watchEntry is one long-clause watcher, carrying a blocker literal so
// Propagate can skip loading the clause when the watch fires spuriously
// (§4.3), mirroring the teacher's watcher/guard pair.
type watchEntry struct {
	c       *clause.Clause
	blocker litvar.Literal
}

// Options configures a Solver. Zero-value Options yields sane defaults
// via New.
type Options struct {
	ClauseDecay float64 // e.g. 0.999
	VarDecay    float64 // e.g. 0.95
	PhaseSaving bool

	Heuristic heuristic.Kind

	RestartInit int     // conflicts before the first restart, e.g. 100
	RestartInc  float64 // restart budget growth factor, e.g. 1.1
	ReduceInc   float64 // learnt-budget growth factor, e.g. 1.05

	Logger logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.ClauseDecay == 0 {
		o.ClauseDecay = 0.999
	}
	if o.VarDecay == 0 {
		o.VarDecay = 0.95
	}
	if o.Heuristic == "" {
		o.Heuristic = heuristic.KindVSIDS
	}
	if o.RestartInit == 0 {
		o.RestartInit = 100
	}
	if o.RestartInc == 0 {
		o.RestartInc = 1.1
	}
	if o.ReduceInc == 0 {
		o.ReduceInc = 1.05
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Solver is one context's search engine. It is not safe for concurrent
// use; cross-solver sharing goes through shortimp.Graph's shared mode
// and internal/distributor's learnt-clause ring instead (wired at the
// facade layer, which owns the pool of attached Solvers).
type Solver struct {
	opts Options
	log  logrus.FieldLogger

	assign *assign.Assignment
	short  *shortimp.Graph
	heur   heuristic.Heuristic

	watchers [][]watchEntry
	problem  []*clause.Clause
	learnts  *learnt.DB
	post     postprop.Chain

	qHead int // index into assign.Trail() of the next literal to propagate

	unsat bool

	model []bool // snapshot of the last total assignment Solve accepted

	seen      *assign.ResetSet
	tmpLearnt []litvar.Literal

	// shortLBD/longLBD track the literal block distance of recent learnt
	// clauses over a short and a long window; search restarts early when
	// the short-term average climbs well above the long-term one (§4.6,
	// glucose-style), rather than only on the geometric conflict budget.
	shortLBD, longLBD ema

	Conflicts int64
	Restarts  int64
	Decisions int64

	learntSink func(lits []litvar.Literal, lbd int)
}

// New returns an empty Solver (no variables yet).
func New(opts Options) *Solver {
	opts = opts.withDefaults()
	return &Solver{
		opts:     opts,
		log:      opts.Logger,
		assign:   assign.New(),
		short:    shortimp.New(false),
		heur:     heuristic.New(heuristic.Options{Kind: opts.Heuristic, VarDecay: opts.VarDecay, PhaseSaving: opts.PhaseSaving}),
		learnts:  learnt.New(opts.ClauseDecay),
		seen:     &assign.ResetSet{},
		shortLBD: newEMA(0.05),
		longLBD:  newEMA(0.999),
	}
}

// NewShared is like New but builds its short-implication graph in
// shared mode (shortimp.New(true)), so a later sharedctx.Attach can hand
// the same *shortimp.Graph to worker Solvers via NewAttached instead of
// replaying every binary/ternary problem clause into a private copy.
func NewShared(opts Options) *Solver {
	opts = opts.withDefaults()
	return &Solver{
		opts:     opts,
		log:      opts.Logger,
		assign:   assign.New(),
		short:    shortimp.New(true),
		heur:     heuristic.New(heuristic.Options{Kind: opts.Heuristic, VarDecay: opts.VarDecay, PhaseSaving: opts.PhaseSaving}),
		learnts:  learnt.New(opts.ClauseDecay),
		seen:     &assign.ResetSet{},
		shortLBD: newEMA(0.05),
		longLBD:  newEMA(0.999),
	}
}

// NewAttached returns a Solver whose short-implication graph is short
// itself rather than a private copy, for the ShareProblem/ShareAll
// sharedctx.Attach path (§5/§6): binary/ternary problem arcs then
// propagate through one shared, append-only shortimp.Graph instead of
// being replayed into a private one per worker. short must have been
// constructed with shortimp.New(true) and already grown to the right
// variable count; NewAttached does not grow it further.
func NewAttached(short *shortimp.Graph, opts Options) *Solver {
	opts = opts.withDefaults()
	return &Solver{
		opts:     opts,
		log:      opts.Logger,
		assign:   assign.New(),
		short:    short,
		heur:     heuristic.New(heuristic.Options{Kind: opts.Heuristic, VarDecay: opts.VarDecay, PhaseSaving: opts.PhaseSaving}),
		learnts:  learnt.New(opts.ClauseDecay),
		seen:     &assign.ResetSet{},
		shortLBD: newEMA(0.05),
		longLBD:  newEMA(0.999),
	}
}

// ShortGraph returns the solver's short-implication graph, for
// sharedctx.Attach to hand to sibling Solvers under ShareProblem/
// ShareAll.
func (s *Solver) ShortGraph() *shortimp.Graph { return s.short }

// RootUnits returns the literals forced at decision level 0 so far
// (unit problem clauses, and anything unit propagation derived from
// them). sharedctx.Attach replays these onto a freshly built worker
// Solver before re-watching the master's clauses, since a shared
// *clause.Clause pointer was simplified against these units already and
// a worker that never forced them would see an inconsistent clause.
func (s *Solver) RootUnits() []litvar.Literal {
	trail := s.assign.Trail()
	return trail[:s.assign.LevelStart(1)]
}

// Problem returns the master solver's long problem clauses, for
// sharedctx.Attach to replay (clone) or re-watch (share) onto a worker
// Solver.
func (s *Solver) Problem() []*clause.Clause { return s.problem }

// WatchExisting registers an already-built clause's watches with s
// directly, skipping clause.New's simplification pass, and records it
// among s's own problem clauses so simplifyProblem/Delete still see it.
// Used by sharedctx.Attach's ShareProblem/ShareAll path.
func (s *Solver) WatchExisting(c *clause.Clause) {
	clause.InstallWatches(c, s)
	s.problem = append(s.problem, c)
}

// Grow adds one fresh variable, returning its id.
func (s *Solver) Grow() litvar.Var {
	v := litvar.Var(s.assign.NumVars())
	s.assign.Grow()
	s.short.Grow()
	s.heur.Grow()
	s.watchers = append(s.watchers, nil, nil)
	s.seen.Grow()
	return v
}

// GrowTo grows every piece of per-solver state except the short-
// implication graph up to n variables, for a Solver built with
// NewAttached whose short graph is already sized (it is shared with the
// master and other attached Solvers, so growing it again here would
// double-count its literal slices).
func (s *Solver) GrowTo(n int) {
	for s.assign.NumVars() < n {
		s.assign.Grow()
		s.heur.Grow()
		s.watchers = append(s.watchers, nil, nil)
		s.seen.Grow()
	}
}

// NumVars returns the number of variables tracked.
func (s *Solver) NumVars() int { return s.assign.NumVars() }

// NumAssigned returns the number of literals on the trail.
func (s *Solver) NumAssigned() int { return len(s.assign.Trail()) }

// Trail returns the current trail (forced/decided literals in
// assignment order). Callers must not retain the returned slice past
// the next mutating call.
func (s *Solver) Trail() []litvar.Literal { return s.assign.Trail() }

// DecisionLevel returns the current decision level.
func (s *Solver) DecisionLevel() int { return s.assign.DecisionLevel() }

// VarValue reports v's current value.
func (s *Solver) VarValue(v litvar.Var) litvar.LBool { return s.assign.VarValue(v) }

// Value implements postprop.Control, reporting a literal's current value.
func (s *Solver) Value(l litvar.Literal) litvar.LBool { return s.assign.Value(l) }

// Force implements postprop.Control: it asserts l with the given reason
// outside the normal decision/implication path, used by post-propagators
// (the unfounded checker, external theory propagators) to assign
// literals once they've determined the implication themselves.
func (s *Solver) Force(l litvar.Literal, reason assign.Reason) bool {
	return s.assign.Force(l, reason)
}

// RegisterPostPropagator installs p in the post-propagator chain
// consulted at every propagation fixpoint (§4.5/§4.6). It must only be
// called at decision level 0, before or after AddClause but before the
// first Solve. It then propagates to a fixpoint, so a root-level
// conflict that p detects over the clauses already added marks the
// Solver unsat.
func (s *Solver) RegisterPostPropagator(p postprop.PostPropagator) {
	s.post.Register(p)
	if s.DecisionLevel() == 0 && !s.unsat && !s.propagateToFixpoint() {
		s.unsat = true
	}
}

// Unsat reports whether the problem was found unsatisfiable at the root.
func (s *Solver) Unsat() bool { return s.unsat }

// Watch implements clause.Watcher.
func (s *Solver) Watch(c *clause.Clause, at litvar.Literal, blocker litvar.Literal) {
	s.watchers[at] = append(s.watchers[at], watchEntry{c: c, blocker: blocker})
}

// Unwatch implements clause.Watcher.
func (s *Solver) Unwatch(c *clause.Clause, at litvar.Literal) {
	ws := s.watchers[at]
	k := 0
	for _, w := range ws {
		if w.c != c {
			ws[k] = w
			k++
		}
	}
	s.watchers[at] = ws[:k]
}

// AddClause adds a problem clause (§3). It must only be called at
// decision level 0. A nil error with s.Unsat() true means the clause
// made the problem root-unsatisfiable; that is not itself an error
// return because it's the expected outcome of grounding a contradictory
// problem, not a programmer mistake.
func (s *Solver) AddClause(lits []litvar.Literal) error {
	if s.DecisionLevel() != 0 {
		return errors.Errorf("solver: AddClause called at decision level %d, want 0", s.DecisionLevel())
	}
	if s.unsat {
		return nil
	}

	switch {
	case len(lits) == 2:
		s.short.AddBinary(false, lits[0], lits[1])
		if !s.forceUnitsOf(lits) {
			s.unsat = true
		}
	case len(lits) == 3:
		s.short.AddTernary(false, lits[0], lits[1], lits[2])
		if !s.forceUnitsOf(lits) {
			s.unsat = true
		}
	default:
		c, ok := clause.New(s.assign, s, append([]litvar.Literal(nil), lits...), clause.Problem)
		if !ok {
			s.unsat = true
			return nil
		}
		if c != nil {
			s.problem = append(s.problem, c)
		}
	}
	if !s.propagateToFixpoint() {
		s.unsat = true
	}
	return nil
}

// AddVolatileClause adds a clause with a non-Problem lifetime (Volatile
// or VolatileStatic), used by the shared-context layer's step mechanism
// (§3/§6) to install constraints that a later Unfreeze retracts by
// pointer rather than by re-deriving falsity. It must only be called at
// decision level 0, mirroring AddClause, and only supports clauses of
// two or more literals (the step mechanism never needs a volatile unit
// clause).
func (s *Solver) AddVolatileClause(lits []litvar.Literal, lifetime clause.Lifetime) (*clause.Clause, error) {
	if s.DecisionLevel() != 0 {
		return nil, errors.Errorf("solver: AddVolatileClause called at decision level %d, want 0", s.DecisionLevel())
	}
	if s.unsat {
		return nil, nil
	}
	c, ok := clause.New(s.assign, s, append([]litvar.Literal(nil), lits...), lifetime)
	if !ok {
		s.unsat = true
		return nil, nil
	}
	if !s.propagateToFixpoint() {
		s.unsat = true
	}
	return c, nil
}

// RemoveClause retracts a clause previously returned by AddVolatileClause,
// unwatching it from this solver. It must only be called at decision
// level 0.
func (s *Solver) RemoveClause(c *clause.Clause) {
	if c != nil {
		c.Delete(s)
	}
}

// forceUnitsOf asserts a short clause's literals at decision level 0 if
// the clause is already unit or conflicting under the current root
// assignment (mirrors the simplification clause.New performs for long
// problem clauses, specialised to the two/three-literal case that
// shortimp owns directly instead of going through clause.Clause).
func (s *Solver) forceUnitsOf(lits []litvar.Literal) bool {
	unknown := 0
	var last litvar.Literal
	for _, l := range lits {
		switch s.assign.Value(l) {
		case litvar.LTrue:
			return true
		case litvar.LUnknown:
			unknown++
			last = l
		}
	}
	if unknown == 0 {
		return false // every literal false: root conflict
	}
	if unknown == 1 {
		return s.assign.Force(last, nil)
	}
	return true
}

// propagateToFixpoint drives propagateAll and reports false on conflict,
// used for the root-level (decision level 0) case where a conflict means
// the whole problem is unsatisfiable rather than something to analyze.
func (s *Solver) propagateToFixpoint() bool {
	_, conflict := s.propagateAll()
	return !conflict
}

// propagateAll runs the three propagation sub-steps of §4.5 to a joint
// fixpoint: short-implication/long-clause propagation via Propagate, then
// the post-propagator chain (unfounded check, external theories). Either
// step may force further literals; whenever the chain does, propagation
// restarts at step 1 on the newly forced trail suffix, exactly as §4.5
// specifies, until a full pass leaves the trail unchanged.
func (s *Solver) propagateAll() (assign.Reason, bool) {
	for {
		if reason, conflict := s.Propagate(); conflict {
			return reason, true
		}
		if s.post.Len() == 0 {
			return nil, false
		}
		before := len(s.assign.Trail())
		if reason, conflict := s.post.PropagateFixpoint(s); conflict {
			return reason, true
		}
		if len(s.assign.Trail()) == before {
			return nil, false
		}
	}
}

// Propagate processes the trail up to its current end, visiting the
// short-implication graph and the long-clause watch lists for every
// newly forced literal. It returns the conflicting Reason and true if
// propagation reached a conflict, in which case the trail is left
// exactly as it stood at the conflict (callers must backjump via
// UndoUntil before assuming or forcing again).
//
// Unlike the teacher's solver.go, which pushes newly forced literals
// onto a separate ring-buffer queue, this walks assign.Assignment's
// trail directly with a qHead index: the trail is already the ordered
// record Force/Assume append to, so a second queue would just duplicate
// it.
func (s *Solver) Propagate() (assign.Reason, bool) {
	for s.qHead < len(s.assign.Trail()) {
		p := s.assign.Trail()[s.qHead]
		s.qHead++

		if reason, conflict := s.short.Propagate(s.assign, p); conflict {
			return reason, true
		}

		ws := s.watchers[p]
		k := 0
		for i := 0; i < len(ws); i++ {
			w := ws[i]
			if s.assign.Value(w.blocker) == litvar.LTrue {
				ws[k] = w
				k++
				continue
			}
			if w.c.Propagate(s.assign, s, p) {
				continue
			}
			// Conflicting: keep remaining watchers, drop the queue.
			for j := i + 1; j < len(ws); j++ {
				ws[k] = ws[j]
				k++
			}
			s.watchers[p] = ws[:k]
			return w.c, true
		}
		s.watchers[p] = ws[:k]
	}
	return nil, false
}

// analyze performs first-UIP conflict analysis (§4.5): it resolves
// backwards from the conflicting reason over the trail until exactly one
// literal from the current decision level remains, which becomes the
// asserting literal of the learnt clause. It returns the learnt
// clause's literals (asserting literal first) and the backjump level.
func (s *Solver) analyze(conflict assign.Reason) ([]litvar.Literal, int) {
	s.tmpLearnt = s.tmpLearnt[:0]
	s.tmpLearnt = append(s.tmpLearnt, assign.NoLiteral) // reserved for the UIP
	s.seen.Clear()

	nImplicationPoints := 0
	backtrackLevel := 0
	l := assign.NoLiteral
	trail := s.assign.Trail()
	next := len(trail) - 1

	var explained []litvar.Literal
	for {
		explained = explained[:0]
		explained = conflict.Explain(l, explained)
		for _, q := range explained {
			v := q.VarID()
			if s.seen.Contains(int(v)) {
				continue
			}
			s.seen.Add(int(v))
			s.heur.Bump(v)
			if s.assign.Level(v) == s.DecisionLevel() {
				nImplicationPoints++
				continue
			}
			s.tmpLearnt = append(s.tmpLearnt, q.Opposite())
			if lvl := s.assign.Level(v); lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		var v litvar.Var
		for {
			l = trail[next]
			next--
			v = l.VarID()
			if s.seen.Contains(int(v)) {
				break
			}
		}
		conflict = s.assign.ReasonOf(v)

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	s.tmpLearnt[0] = l.Opposite()
	return append([]litvar.Literal(nil), s.tmpLearnt...), backtrackLevel
}

// record installs a freshly learnt clause and asserts its UIP literal,
// dispatching to the short-implication graph for binary/ternary clauses
// (§4.2) and to clause.New/learnt.DB otherwise (§4.4).
func (s *Solver) record(lits []litvar.Literal) {
	switch len(lits) {
	case 1:
		s.assign.Force(lits[0], nil)
	case 2:
		s.short.AddBinary(true, lits[0], lits[1])
		s.assign.Force(lits[0], shortimp.ReasonBinary(lits[1].Opposite(), lits[0]))
	case 3:
		s.short.AddTernary(true, lits[0], lits[1], lits[2])
		s.assign.Force(lits[0], shortimp.ReasonTernary(lits[2].Opposite(), lits[1], lits[0]))
	default:
		c, _ := clause.New(s.assign, s, lits, clause.ConflictLoop)
		s.assign.Force(lits[0], c)
		s.learnts.Add(c)
		s.learnts.Bump(c)
	}
	if s.learntSink != nil {
		s.learntSink(append([]litvar.Literal(nil), lits...), s.lbdOf(lits))
	}
}

// RegisterLearntSink installs a callback invoked with every freshly
// learnt clause's literals and LBD, right after it is recorded. Used
// by the facade layer to publish learnt clauses onto an
// internal/distributor ring for the rest of an attached Solver pool.
func (s *Solver) RegisterLearntSink(f func(lits []litvar.Literal, lbd int)) {
	s.learntSink = f
}

// ImportClause adds a clause learnt by another attached Solver. A short
// clause goes through the same short.AddBinary/AddTernary learnt path
// record uses, at any decision level. A long one is added via
// AddVolatileClause with the Volatile lifetime, so, like that call, it
// returns an error above decision level 0. Nothing retracts an imported
// long clause at a later Unfreeze; it stays watched for the Solver's
// lifetime.
func (s *Solver) ImportClause(lits []litvar.Literal) error {
	switch len(lits) {
	case 2:
		s.short.AddBinary(true, lits[0], lits[1])
		return nil
	case 3:
		s.short.AddTernary(true, lits[0], lits[1], lits[2])
		return nil
	default:
		_, err := s.AddVolatileClause(lits, clause.Volatile)
		return err
	}
}

// lbdOf returns the number of distinct decision levels among lits,
// mirroring clause.computeLBD but usable here before the clause object
// (for a 2/3-literal clause there may be none) exists.
func (s *Solver) lbdOf(lits []litvar.Literal) int {
	seen := map[int]struct{}{}
	for _, l := range lits {
		seen[s.assign.Level(l.VarID())] = struct{}{}
	}
	return len(seen)
}

// cancelUntil backjumps to level, notifying the heuristic of every
// unassigned variable's saved phase and rewinding the propagation
// cursor to match.
func (s *Solver) cancelUntil(level int) {
	for lvl := s.DecisionLevel(); lvl > level; lvl-- {
		s.post.UndoLevel(lvl)
	}
	s.assign.UndoUntil(level, func(l litvar.Literal) {
		s.heur.Unassign(l.VarID(), s.assign.Value(l))
	})
	s.qHead = s.assign.LevelStart(level)
}

func (s *Solver) isAssigned(v litvar.Var) bool {
	return s.assign.VarValue(v) != litvar.LUnknown
}

// Assume pushes a new decision level and assigns l.
func (s *Solver) Assume(l litvar.Literal) bool {
	s.Decisions++
	return s.assign.Assume(l)
}

// Solve runs the search loop to completion (or until maxConflicts is
// reached, when it returns LUnknown). Each restart round still grows its
// conflict budget geometrically (§4.6), but search also cuts a round
// short once the short-term learnt-clause LBD average climbs well above
// the long-term average (glucose-style: the search is thrashing on hard
// conflicts), tracked by shortLBD/longLBD. Progress is logged through the
// injected logger instead of the teacher's fmt.Println table.
func (s *Solver) Solve(maxConflicts int64) (litvar.LBool, error) {
	if s.unsat {
		return litvar.LFalse, nil
	}

	restartBudget := float64(s.opts.RestartInit)
	reduceBudget := len(s.problem) / 3
	if reduceBudget < 16 {
		reduceBudget = 16
	}
	start := time.Now()

	for {
		status, conflictsThisRun := s.search(int64(restartBudget), reduceBudget, maxConflicts)
		if status != litvar.LUnknown {
			s.log.WithFields(logrus.Fields{
				"conflicts": s.Conflicts,
				"restarts":  s.Restarts,
				"learnts":   s.learnts.Len(),
				"elapsed":   time.Since(start).String(),
			}).Debug("solver: search finished")
			if status == litvar.LTrue {
				s.model = make([]bool, s.NumVars())
				for v := range s.model {
					s.model[v] = s.assign.VarValue(litvar.Var(v)) == litvar.LTrue
				}
			}
			s.cancelUntil(0)
			return status, nil
		}
		if maxConflicts >= 0 && s.Conflicts >= maxConflicts {
			s.cancelUntil(0)
			return litvar.LUnknown, nil
		}
		_ = conflictsThisRun
		restartBudget *= s.opts.RestartInc
		reduceBudget += reduceBudget / 20
	}
}

// search runs until a model is found, the problem is refuted, or
// conflictBudget conflicts have been spent in this restart round,
// returning LUnknown in the last case.
func (s *Solver) search(conflictBudget int64, reduceBudget int, maxConflicts int64) (litvar.LBool, int64) {
	s.Restarts++
	var conflicts int64

	for {
		if maxConflicts >= 0 && s.Conflicts >= maxConflicts {
			return litvar.LUnknown, conflicts
		}

		reason, conflict := s.propagateAll()
		if conflict {
			s.Conflicts++
			conflicts++

			if s.DecisionLevel() == 0 {
				s.unsat = true
				return litvar.LFalse, conflicts
			}

			learntLits, backtrackLevel := s.analyze(reason)
			s.cancelUntil(backtrackLevel)
			s.shortLBD.add(float64(s.lbdOf(learntLits)))
			s.longLBD.add(float64(s.lbdOf(learntLits)))
			s.record(learntLits)

			s.heur.Decay()
			s.learnts.Decay()

			if conflicts >= 50 && s.shortLBD.val() > 1.25*s.longLBD.val() {
				s.cancelUntil(0)
				return litvar.LUnknown, conflicts
			}
			continue
		}

		if s.DecisionLevel() == 0 {
			s.simplifyProblem()
		}

		if s.learnts.Len()-s.NumAssigned() >= reduceBudget {
			s.learnts.Reduce(s.assign, s)
		}

		if s.NumAssigned() == s.NumVars() {
			if s.post.Len() > 0 && !s.post.IsModel(s) {
				// A post-propagator (e.g. the unfounded checker) rejected
				// the total assignment without a ready conflict; loop back
				// to propagate whatever it forced while rejecting.
				continue
			}
			return litvar.LTrue, conflicts
		}

		if conflicts >= conflictBudget {
			s.cancelUntil(0)
			return litvar.LUnknown, conflicts
		}

		l := s.heur.Select(s.isAssigned)
		s.Assume(l)
	}
}

// simplifyProblem drops problem clauses already satisfied at the root
// level. Root-fixed literals are also pushed through the short-
// implication graph's RemoveTrue so its arcs stop re-triggering on
// clauses that are already satisfied; RemoveTrue is idempotent so
// re-running it over the whole root prefix each time is harmless.
func (s *Solver) simplifyProblem() {
	for _, l := range s.assign.Trail()[:s.assign.LevelStart(1)] {
		s.short.RemoveTrue(l)
	}

	k := 0
	for _, c := range s.problem {
		if c.Simplify(s.assign) {
			c.Delete(s)
			continue
		}
		s.problem[k] = c
		k++
	}
	s.problem = s.problem[:k]
}

// Model copies out the satisfying assignment found by the last Solve
// call that returned LTrue. Callers must only call this after Solve
// returns LTrue.
func (s *Solver) Model() []bool {
	return append([]bool(nil), s.model...)
}
