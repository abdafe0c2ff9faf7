// Package assign implements the per-solver partial assignment and trail
// (§4.1). Each attached Solver owns one Assignment; it is never shared.
package assign

import "github.com/go-clasp/clasp/internal/litvar"

// NoLiteral is passed to Reason.Explain when the reason itself is the
// conflicting constraint, rather than the antecedent of some forced
// literal l.
const NoLiteral litvar.Literal = -1

// Reason identifies what forced a literal onto the trail. A decision
// literal has a nil Reason. Reasons are stored as an opaque interface so
// that clause.Clause, shortimp's inline binary/ternary antecedents, and
// external propagators (§4.8) can all supply one without this package
// importing any of them.
type Reason interface {
	// Explain appends to out, and returns, the literals that explain why
	// l was forced by this reason (reconstructing the antecedent clause
	// on demand), or why this reason is presently conflicting when l is
	// NoLiteral. The returned literals are the negation of the
	// antecedent's other members, per the first-UIP resolution step of
	// §4.5.
	Explain(l litvar.Literal, out []litvar.Literal) []litvar.Literal
}

// Assignment holds, for every variable, its current value, decision
// level and reason, plus the trail that orders assigned literals.
type Assignment struct {
	values []litvar.LBool // indexed by Literal.Index()
	level  []int32        // indexed by Var
	reason []Reason       // indexed by Var

	trail    []litvar.Literal
	trailLim []int32 // trail index of the first literal of each decision level
}

// New returns an empty Assignment.
func New() *Assignment {
	return &Assignment{}
}

// Grow extends the assignment to accommodate one more variable.
func (a *Assignment) Grow() {
	a.values = append(a.values, litvar.LUnknown, litvar.LUnknown)
	a.level = append(a.level, -1)
	a.reason = append(a.reason, nil)
}

// NumVars returns the number of variables currently tracked.
func (a *Assignment) NumVars() int {
	return len(a.level)
}

// DecisionLevel returns the current decision level. Level 0 is the root.
func (a *Assignment) DecisionLevel() int {
	return len(a.trailLim)
}

// Value returns the current value of a literal.
func (a *Assignment) Value(l litvar.Literal) litvar.LBool {
	return a.values[l.Index()]
}

// VarValue returns the current value of a variable (as its positive
// literal's value).
func (a *Assignment) VarValue(v litvar.Var) litvar.LBool {
	return a.values[litvar.PositiveLiteral(v).Index()]
}

// Level returns the decision level at which v was assigned, or -1 if it
// is currently unassigned.
func (a *Assignment) Level(v litvar.Var) int {
	return int(a.level[v])
}

// ReasonOf materialises the antecedent clause for v's assignment, or nil
// for a decision literal.
func (a *Assignment) ReasonOf(v litvar.Var) Reason {
	return a.reason[v]
}

// Trail returns the ordered slice of assigned literals. Callers must not
// mutate the returned slice.
func (a *Assignment) Trail() []litvar.Literal {
	return a.trail
}

// Assume pushes a new decision level and assigns l at it. It returns
// false if l is already false (a conflicting assumption).
func (a *Assignment) Assume(l litvar.Literal) bool {
	a.trailLim = append(a.trailLim, int32(len(a.trail)))
	return a.Force(l, nil)
}

// Force assigns l at the current decision level with the given reason.
// It returns false if l was already false (a conflict), true if l was
// already true or was newly assigned.
func (a *Assignment) Force(l litvar.Literal, reason Reason) bool {
	switch a.Value(l) {
	case litvar.LFalse:
		return false
	case litvar.LTrue:
		return true
	default:
		v := l.VarID()
		a.values[l.Index()] = litvar.LTrue
		a.values[l.Opposite().Index()] = litvar.LFalse
		a.level[v] = int32(a.DecisionLevel())
		a.reason[v] = reason
		a.trail = append(a.trail, l)
		return true
	}
}

// UndoUntil pops trail entries assigned above the given level, clearing
// their assignment. unassign is invoked once per popped literal (in LIFO
// trail order) so callers (the heuristic's phase cache, the unfounded
// checker's source-pointer invalidation) can react.
func (a *Assignment) UndoUntil(level int, unassign func(litvar.Literal)) {
	for a.DecisionLevel() > level {
		start := a.trailLim[len(a.trailLim)-1]
		for i := len(a.trail) - 1; i >= int(start); i-- {
			l := a.trail[i]
			v := l.VarID()
			a.values[l.Index()] = litvar.LUnknown
			a.values[l.Opposite().Index()] = litvar.LUnknown
			a.reason[v] = nil
			a.level[v] = -1
			if unassign != nil {
				unassign(l)
			}
		}
		a.trail = a.trail[:start]
		a.trailLim = a.trailLim[:len(a.trailLim)-1]
	}
}

// LevelStart returns the trail index of the first literal assigned at
// the given decision level, or len(trail) if level is the current
// (still-growing) level.
func (a *Assignment) LevelStart(level int) int {
	if level >= len(a.trailLim) {
		return len(a.trail)
	}
	return int(a.trailLim[level])
}
