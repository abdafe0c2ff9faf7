// Package clause implements long-clause storage and the two-watched-
// literal propagation scheme of §3/§4.3, plus the learnt-clause
// lifecycle (problem / static / conflict-loop / volatile / volatile-
// static) described in §3 "Problem vs learnt lifecycle".
package clause

import (
	"strings"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/litvar"
)

// Lifetime classifies a learnt clause's retention policy (§3).
type Lifetime uint8

const (
	// Problem marks a clause added before endInit; never deleted except
	// by eliminate/unfreeze.
	Problem Lifetime = iota
	// Static learnt clauses are never deleted by clause-DB reduction.
	Static
	// ConflictLoop learnt clauses (ordinary conflict clauses and loop
	// nogoods from the unfounded checker) are subject to LearntDB
	// reduction.
	ConflictLoop
	// Volatile learnt clauses are deleted at the end of the current
	// solving step.
	Volatile
	// VolatileStatic clauses are kept for one step (immune to
	// reduction during it) then deleted at step end.
	VolatileStatic
)

func (l Lifetime) IsLearnt() bool { return l != Problem }

// Watcher is the subset of Solver state a Clause needs to register and
// move its watched literals; kept as an interface so this package does
// not depend on the solver package.
type Watcher interface {
	Watch(c *Clause, at litvar.Literal, blocker litvar.Literal)
	Unwatch(c *Clause, at litvar.Literal)
}

// Clause is a stored constraint of two or more literals with the
// semantics "at least one literal is true" (§3). The first two
// positions are always the watched literals.
type Clause struct {
	literals []litvar.Literal

	lifetime Lifetime
	activity float64
	lbd      int32

	// protected exempts a learnt clause from the next ReduceDB pass; set
	// when the clause takes part in the current conflict's resolution
	// (§4.4) and cleared the first time reduction considers it.
	protected bool

	// deleted is set once Delete has run so that stale references found
	// via a reason pointer can detect the clause is gone.
	deleted bool

	// prevPos speeds up the search for a new watch by resuming from
	// where the last swap left off, mirroring the teacher's advanced
	// clause representation.
	prevPos int
}

// New constructs a clause from tmpLiterals, performing the same
// simplification the teacher performs for problem clauses (duplicate and
// tautology removal, dropping already-false literals) when learnt is
// false. It returns (nil, true) for a tautological or already-satisfied
// clause, (nil, ok) for a clause that reduces to zero or one literals
// (the unit case is enqueued directly via a.Force), and otherwise a new
// *Clause registered with w.
//
// tmpLiterals is consumed: its backing array may be reordered or
// truncated.
func New(a *assign.Assignment, w Watcher, tmpLiterals []litvar.Literal, lifetime Lifetime) (*Clause, bool) {
	size := len(tmpLiterals)

	if lifetime == Problem {
		seen := map[litvar.Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch a.Value(tmpLiterals[i]) {
			case litvar.LTrue:
				return nil, true
			case litvar.LFalse:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, a.Force(tmpLiterals[0], nil)
	default:
		c := allocClause(tmpLiterals, lifetime)

		if lifetime.IsLearnt() {
			// Put the literal from the highest decision level in position
			// 1 so the second watch tracks the backjump target (§4.5).
			maxLevel := -1
			wl := 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := a.Level(c.literals[i].VarID()); lvl > maxLevel {
					maxLevel = lvl
					wl = i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
			c.lbd = computeLBD(a, c.literals)
		}

		w.Watch(c, c.literals[0].Opposite(), c.literals[1])
		w.Watch(c, c.literals[1].Opposite(), c.literals[0])
		return c, true
	}
}

// InstallWatches registers c's two watched literals with w, without
// re-running New's simplification pass. It is used to attach a worker
// Solver to a clause already built against the master Solver (§5/§6
// ShareProblem/ShareAll), so the same *Clause is watched from more than
// one Solver's watch lists. Callers taking this path accept that
// swapWatch's in-place literal reordering is then unsynchronized across
// whichever Solvers hold the pointer; see context.ShareMode's doc
// comment for the scope this is limited to.
func InstallWatches(c *Clause, w Watcher) {
	w.Watch(c, c.literals[0].Opposite(), c.literals[1])
	w.Watch(c, c.literals[1].Opposite(), c.literals[0])
}

// computeLBD returns the literal block distance: the number of distinct
// decision levels among the clause's literals (§4.4).
func computeLBD(a *assign.Assignment, lits []litvar.Literal) int32 {
	seen := map[int]struct{}{}
	for _, l := range lits {
		seen[a.Level(l.VarID())] = struct{}{}
	}
	return int32(len(seen))
}

// Literals returns the clause's literals. Callers must not retain or
// mutate the returned slice beyond the current propagation step.
func (c *Clause) Literals() []litvar.Literal { return c.literals }

func (c *Clause) Lifetime() Lifetime { return c.lifetime }
func (c *Clause) LBD() int32         { return c.lbd }
func (c *Clause) Activity() float64  { return c.activity }
func (c *Clause) BumpActivity(inc float64) { c.activity += inc }
func (c *Clause) RescaleActivity(factor float64) { c.activity *= factor }

// IsGlue reports whether c's LBD is at or below the glue threshold,
// exempting it from deletion regardless of activity (§4.4).
func (c *Clause) IsGlue(glueLBD int32) bool {
	return c.lifetime.IsLearnt() && c.lbd <= glueLBD
}

func (c *Clause) Protected() bool   { return c.protected }
func (c *Clause) SetProtected(b bool) { c.protected = b }
func (c *Clause) Deleted() bool     { return c.deleted }

// Locked reports whether c is currently the antecedent of its first
// watched literal's assignment; locked clauses must survive ReduceDB
// even if otherwise eligible (§4.4).
func (c *Clause) Locked(a *assign.Assignment) bool {
	return a.ReasonOf(c.literals[0].VarID()) == assign.Reason(c)
}

// Delete unregisters c's watches and releases its literal storage. c
// must not be used afterwards.
func (c *Clause) Delete(w Watcher) {
	w.Unwatch(c, c.literals[0].Opposite())
	w.Unwatch(c, c.literals[1].Opposite())
	freeClause(c)
	c.deleted = true
	c.literals = nil
}

// Simplify drops literals already false at the root level and reports
// whether the clause is now satisfied (in which case the caller should
// Delete it).
func (c *Clause) Simplify(a *assign.Assignment) bool {
	k := 0
	for _, l := range c.literals {
		switch a.Value(l) {
		case litvar.LTrue:
			return true
		case litvar.LFalse:
			// drop
		default:
			c.literals[k] = l
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// Propagate is called when l (one of c's watched literals' negation)
// has just become true. It returns false if c became conflicting under
// the current assignment.
func (c *Clause) Propagate(a *assign.Assignment, w Watcher, l litvar.Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if a.Value(c.literals[0]) == litvar.LTrue {
		w.Watch(c, l, c.literals[0])
		return true
	}

	if c.prevPos < 2 || c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	if i, ok := c.findWatch(a, c.prevPos, len(c.literals)); ok {
		c.swapWatch(w, l, i)
		return true
	}
	if i, ok := c.findWatch(a, 2, c.prevPos); ok {
		c.swapWatch(w, l, i)
		return true
	}

	w.Watch(c, l, c.literals[0])
	return a.Force(c.literals[0], c)
}

func (c *Clause) findWatch(a *assign.Assignment, from, to int) (int, bool) {
	for i := from; i < to; i++ {
		if a.Value(c.literals[i]) != litvar.LFalse {
			return i, true
		}
	}
	return 0, false
}

func (c *Clause) swapWatch(w Watcher, l litvar.Literal, i int) {
	c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
	c.prevPos = i
	w.Watch(c, c.literals[1].Opposite(), c.literals[0])
}

// Explain implements assign.Reason.
func (c *Clause) Explain(l litvar.Literal, out []litvar.Literal) []litvar.Literal {
	if l == assign.NoLiteral {
		for _, lit := range c.literals {
			out = append(out, lit.Opposite())
		}
	} else {
		for _, lit := range c.literals[1:] {
			out = append(out, lit.Opposite())
		}
	}
	return out
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
