// Package learnt implements the LearntDB of §4.4: activity and LBD
// bookkeeping for conflict/loop learnt clauses, and the reduction policy
// that periodically halves the database.
package learnt

import (
	"sort"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/clause"
)

// GlueLBD is the literal block distance at or below which a learnt
// clause is considered "glue" and exempt from deletion (§4.4).
const GlueLBD = 2

// DB tracks the conflict/loop learnt clauses of one Solver. Static and
// volatile clauses (§3) are owned by the Solver directly and never
// passed here, since they are not subject to reduction.
type DB struct {
	clauses []*clause.Clause

	inc   float64
	decay float64
}

// New returns an empty DB with the given clause-activity decay factor
// (§4.4; e.g. 0.999, mirroring the teacher's clauseDecay).
func New(decay float64) *DB {
	return &DB{inc: 1, decay: decay}
}

// Add registers a freshly learnt conflict/loop clause.
func (db *DB) Add(c *clause.Clause) {
	db.clauses = append(db.clauses, c)
}

// Len returns the number of tracked clauses.
func (db *DB) Len() int { return len(db.clauses) }

// Bump increases c's activity and, if the running increment has grown
// too large, rescales every tracked clause's activity down together so
// relative ordering is preserved (§4.4, mirrors BumpVarActivity's
// sibling for clauses).
func (db *DB) Bump(c *clause.Clause) {
	c.BumpActivity(db.inc)
	c.SetProtected(true)
	if c.Activity() > 1e100 {
		db.inc *= 1e-100
		for _, l := range db.clauses {
			l.RescaleActivity(1e-100)
		}
	}
}

// Decay ages the activity increment, making future bumps relatively
// larger (§4.4).
func (db *DB) Decay() {
	db.inc /= db.decay
}

// Reduce drops the worse half of the database, per the ordering in
// §4.4: (not glue, LBD desc, activity asc), while preserving any clause
// that is currently locked (acting as a trail antecedent) or protected
// (took part in the most recent conflict's resolution).
func (db *DB) Reduce(a *assign.Assignment, w clause.Watcher) {
	sort.Slice(db.clauses, func(i, j int) bool {
		ci, cj := db.clauses[i], db.clauses[j]
		gi, gj := ci.IsGlue(GlueLBD), cj.IsGlue(GlueLBD)
		if gi != gj {
			return gj // glue clauses sort last (kept)
		}
		if ci.LBD() != cj.LBD() {
			return ci.LBD() > cj.LBD() // higher LBD considered worse, sorts first (to be dropped)
		}
		return ci.Activity() < cj.Activity()
	})

	kept := db.clauses[:0]
	half := len(db.clauses) / 2
	for i, c := range db.clauses {
		if i < half && !c.Locked(a) && !c.Protected() {
			c.Delete(w)
			continue
		}
		c.SetProtected(false)
		kept = append(kept, c)
	}
	db.clauses = kept
}

// ShouldReduce reports whether the database has grown past the moving
// budget described in §4.4 (roughly, more learnt clauses outstanding
// than currently-assigned variables beyond the target).
func ShouldReduce(learntCount, numAssigned, budget int) bool {
	return learntCount-numAssigned >= budget
}
