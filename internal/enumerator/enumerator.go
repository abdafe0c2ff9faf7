// Package enumerator implements the model-classification/blocking-
// clause hook of §4.9: called once per total assignment the solver
// finds, it classifies the model (stable / brave / cautious /
// optimisation), reports it, and either blocks it so search continues
// to the next model or tightens an optimisation bound.
package enumerator

import (
	"github.com/go-clasp/clasp/internal/clause"
	"github.com/go-clasp/clasp/internal/litvar"
)

// Mode selects how successive models are combined (§6's solve.enum_mode).
type Mode int

const (
	ModeAuto Mode = iota
	ModeBrave
	ModeCautious
	ModeRecord
	ModeDomRecord
	ModeQuery
)

// OptMode selects whether/how a minimize statement's cost is tracked
// (§6's solve.opt_mode).
type OptMode int

const (
	OptIgnore OptMode = iota
	OptOptimise
	OptEnumOpt
)

// SolveControl is the restricted view §4.9 grants the enumerator hook:
// it can read the model just found and add a clause scoped to the
// current solving step, but it has no access to watch-list state or
// decision control, which stay the search loop's exclusive business.
type SolveControl interface {
	Model() []bool
	NumVars() int
	AddVolatileClause(lits []litvar.Literal, lifetime clause.Lifetime) (*clause.Clause, error)
}

// Enumerator drives §4.9's model handling across one solve call.
type Enumerator struct {
	mode    Mode
	optMode OptMode
	onModel func(model []bool)

	minimize []litvar.Literal // the minimize statement's literals (unweighted; see Handle's doc comment)

	models    [][]bool
	brave     []bool
	cautious  []bool
	haveFirst bool

	bound    int // current best cost; -1 until a model has been found
	Optimal  bool
}

// New returns an Enumerator in the given mode.
func New(mode Mode, optMode OptMode) *Enumerator {
	return &Enumerator{mode: mode, optMode: optMode, bound: -1}
}

// OnModel installs a callback invoked with every model Handle accepts,
// mirroring the front-end's usual model-printing hook.
func (e *Enumerator) OnModel(f func(model []bool)) { e.onModel = f }

// SetMinimize installs the minimize statement's literals: a solution's
// cost is the count of these that are true. Weighted minimize
// statements (§6 mentions only an unweighted cost here; weight support
// lives in the dependency-graph's PotentialWeight machinery, not here)
// are out of scope for this pass.
func (e *Enumerator) SetMinimize(lits []litvar.Literal) { e.minimize = lits }

// Models returns every model accepted so far.
func (e *Enumerator) Models() [][]bool { return e.models }

// Brave returns the literal-wise union of every model seen (ModeBrave).
func (e *Enumerator) Brave() []bool { return e.brave }

// Cautious returns the literal-wise intersection of every model seen
// (ModeCautious).
func (e *Enumerator) Cautious() []bool { return e.cautious }

// Bound reports the best (lowest) cost found so far, or -1 if no model
// has been classified yet.
func (e *Enumerator) Bound() int { return e.bound }

// Handle processes one total assignment found by the search loop: it
// records/classifies the model, invokes the model callback, and adds
// whatever clause should keep (or stop) enumeration, via ctl's
// restricted view. It returns whether the search should keep looking
// for further models.
//
// Optimisation bound tightening here is a deliberately simplified,
// sound approximation of §4.9's "commit a new cost bound and assert a
// stronger learnt minimisation constraint": a true cost-threshold
// clause needs a pseudo-boolean/cardinality propagator this pass
// doesn't build (see internal/depgraph.Body.PotentialWeight's comment
// for the related, still-unwired weight machinery), so instead Handle
// forbids exactly the set of minimize literals the current model made
// true (a plain clause: at least one of them must now be false). That
// is weaker than a real cost bound — it doesn't forbid every
// worse-or-equal-cost model in one step — but it is sound: repeating
// the same model, or any model with the exact same true-minimize-set,
// becomes unsatisfiable, so optimisation search still makes monotone
// progress toward the true optimum, just more slowly than a native PB
// encoding would.
func (e *Enumerator) Handle(ctl SolveControl) (keepGoing bool, err error) {
	model := ctl.Model()
	e.models = append(e.models, append([]bool(nil), model...))
	e.classify(model)
	if e.onModel != nil {
		e.onModel(model)
	}

	if len(e.minimize) > 0 && e.optMode != OptIgnore {
		cost := e.costOf(model)
		improved := e.bound < 0 || cost < e.bound
		if improved {
			e.bound = cost
		}
		if cost == 0 {
			e.Optimal = true
			return false, nil
		}
		blocker := make([]litvar.Literal, 0, len(e.minimize))
		for _, l := range e.minimize {
			if ctl.Model()[l.VarID()] == l.IsPositive() {
				blocker = append(blocker, l.Opposite())
			}
		}
		if _, err := ctl.AddVolatileClause(blocker, clause.Volatile); err != nil {
			return false, err
		}
		return true, nil
	}

	blocker := make([]litvar.Literal, ctl.NumVars())
	for v := 0; v < ctl.NumVars(); v++ {
		if model[v] {
			blocker[v] = litvar.NegativeLiteral(litvar.Var(v))
		} else {
			blocker[v] = litvar.PositiveLiteral(litvar.Var(v))
		}
	}
	if _, err := ctl.AddVolatileClause(blocker, clause.Volatile); err != nil {
		return false, err
	}
	return true, nil
}

// costOf counts how many of the minimize statement's literals are true
// in model.
func (e *Enumerator) costOf(model []bool) int {
	cost := 0
	for _, l := range e.minimize {
		if model[l.VarID()] == l.IsPositive() {
			cost++
		}
	}
	return cost
}

// classify updates the brave/cautious running accumulators.
func (e *Enumerator) classify(model []bool) {
	switch e.mode {
	case ModeBrave:
		if !e.haveFirst {
			e.brave = append([]bool(nil), model...)
		} else {
			for i, b := range model {
				e.brave[i] = e.brave[i] || b
			}
		}
	case ModeCautious:
		if !e.haveFirst {
			e.cautious = append([]bool(nil), model...)
		} else {
			for i, b := range model {
				e.cautious[i] = e.cautious[i] && b
			}
		}
	}
	e.haveFirst = true
}
