// Package propagator adapts a user-supplied theory extension (§4.6's
// PropagatorExtension) into the solver's postprop.PostPropagator chain.
// The four-callback shape (init/propagate/undo/check) mirrors clingo's
// public Propagator API (libgringo/clingo.h's clingo_propagator_t), the
// one piece of this system meant for callers outside the solver core
// itself to implement.
package propagator

import (
	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/postprop"
)

// trailReader is satisfied by *solver.Solver; Adapter type-asserts for
// it rather than widening postprop.Control (which every other
// propagator in the chain also receives) for a capability only this
// adapter needs.
type trailReader interface {
	Trail() []litvar.Literal
}

// Extension is a user-supplied theory propagator. Its shape follows
// clingo's init/propagate/undo/check callbacks, adapted to this
// solver's existing Reason-based conflict protocol instead of clingo's
// separate "add a clause, then ask to propagate it" dance: that dance
// needs non-root clause learning outside conflict analysis, which this
// solver core doesn't otherwise support, so Propagate/Check report a
// conflict the same way every other PostPropagator does (§4.6).
type Extension interface {
	// Init registers, via watch, the solver literals this extension
	// wants to be notified about whenever they're assigned true. It
	// runs once, before the first PropagateFixpoint.
	Init(watch func(lits ...litvar.Literal))

	// Propagate receives the subset of this extension's watched
	// literals that became true since the last call (in this decision
	// level), and may force further literals via ctl.Force. Returning a
	// non-nil Reason and true reports a conflict.
	Propagate(ctl postprop.Control, changes []litvar.Literal) (assign.Reason, bool)

	// Undo is notified, in descending level order, of watched literals
	// being unassigned by backtracking. No literal may be forced here
	// (mirrors clingo's "no clauses must be propagated" note).
	Undo(changes []litvar.Literal)

	// Check runs once against a total assignment, independent of
	// whether any watched literal changed (mirrors clingo's check(),
	// "called even if no watches have been added"). It reports whether
	// the assignment is acceptable; like postprop.PostPropagator.IsModel
	// itself, a false return without having forced anything via ctl.Force
	// would stall the search, so a rejecting Check is expected to force
	// at least one literal before returning false.
	Check(ctl postprop.Control) bool
}

// Adapter wraps one Extension as a postprop.PostPropagator.
type Adapter struct {
	ext      Extension
	priority postprop.Priority
	watched  map[litvar.Literal]bool

	reported     int // trail length already scanned for watched literals
	levelChanges map[int][]litvar.Literal
}

// New returns an Adapter running ext at priority (typically
// postprop.ClassGeneral, unless ext's theory has a reason to run
// earlier or later in the chain) and calls ext.Init immediately to
// collect its watch set.
func New(ext Extension, priority postprop.Priority) *Adapter {
	a := &Adapter{
		ext:          ext,
		priority:     priority,
		watched:      map[litvar.Literal]bool{},
		levelChanges: map[int][]litvar.Literal{},
	}
	ext.Init(func(lits ...litvar.Literal) {
		for _, l := range lits {
			a.watched[l] = true
		}
	})
	return a
}

// Priority implements postprop.PostPropagator.
func (a *Adapter) Priority() postprop.Priority { return a.priority }

// PropagateFixpoint scans the trail grown since the last call for newly
// true watched literals and forwards them to ext.Propagate. The whole
// batch is attributed to the current decision level: propagateAll never
// interleaves a fresh Assume with a PostPropagator pass mid-batch, so
// every literal seen in one call belongs to the same, just-started
// level (or level 0, for the very first call).
func (a *Adapter) PropagateFixpoint(ctl postprop.Control, lowerBound postprop.Priority) (assign.Reason, bool) {
	tr, ok := ctl.(trailReader)
	if !ok {
		return nil, false
	}
	trail := tr.Trail()
	if a.reported > len(trail) {
		a.reported = 0 // defensive: a rewound trail we didn't see via UndoLevel
	}
	var changes []litvar.Literal
	for _, l := range trail[a.reported:] {
		if a.watched[l] {
			changes = append(changes, l)
		}
	}
	a.reported = len(trail)
	if len(changes) == 0 {
		return nil, false
	}
	level := ctl.DecisionLevel()
	a.levelChanges[level] = append(a.levelChanges[level], changes...)
	return a.ext.Propagate(ctl, changes)
}

// IsModel runs ext.Check against the total assignment.
func (a *Adapter) IsModel(ctl postprop.Control) bool {
	return a.ext.Check(ctl)
}

// Reset clears nothing extra: per-level change tracking is already
// self-cleaning via UndoLevel, and ext owns whatever sweep state it
// keeps between Propagate calls.
func (a *Adapter) Reset() {}

// UndoLevel notifies ext of every watched literal that became true at
// level, in the order PropagateFixpoint observed them, then forgets
// that level's record.
func (a *Adapter) UndoLevel(level int) {
	changes, ok := a.levelChanges[level]
	if !ok {
		return
	}
	delete(a.levelChanges, level)
	a.ext.Undo(changes)
	if a.reported > 0 {
		a.reported -= len(changes)
		if a.reported < 0 {
			a.reported = 0
		}
	}
}
