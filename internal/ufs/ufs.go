// Package ufs implements the unfounded-set checker of §4.7: the
// post-propagator that enforces stable-model semantics for a logic
// program with recursion, given the program's atom/body dependency
// graph (internal/depgraph) split into strongly connected components.
package ufs

import (
	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/depgraph"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/postprop"
)

// Checker is a PostPropagator running at postprop.ClassUFS priority. It
// is grouped once per strongly connected component so each sweep only
// walks atoms that can actually be unfounded.
type Checker struct {
	graph *depgraph.Graph
	sccs  [][]depgraph.AtomID
}

// New builds a Checker over g, computing g's SCCs if that hasn't been
// done already (ComputeSCCs is idempotent to call again, so a caller
// that already grouped atoms into rules elsewhere doesn't need to
// special-case this).
func New(g *depgraph.Graph) *Checker {
	g.ComputeSCCs()
	c := &Checker{graph: g}
	groups := map[int][]depgraph.AtomID{}
	var order []int
	for i := 0; i < g.NumAtoms(); i++ {
		a := depgraph.AtomID(i)
		scc := g.Atom(a).SCC()
		if scc == depgraph.NoSCC {
			continue
		}
		if _, ok := groups[scc]; !ok {
			order = append(order, scc)
		}
		groups[scc] = append(groups[scc], a)
	}
	for _, scc := range order {
		c.sccs = append(c.sccs, groups[scc])
	}
	return c
}

// Priority implements postprop.PostPropagator.
func (c *Checker) Priority() postprop.Priority { return postprop.ClassUFS }

// PropagateFixpoint computes, for every non-trivial SCC, the greatest
// unfounded set consistent with the current assignment (§4.7's
// source-pointer algorithm reduced to its fixpoint characterization:
// see unfoundedSet) and forces each unfounded atom false with a shared
// loop-formula reason.
func (c *Checker) PropagateFixpoint(ctl postprop.Control, lowerBound postprop.Priority) (assign.Reason, bool) {
	for _, atoms := range c.sccs {
		unfounded := c.unfoundedSet(ctl, atoms)
		if len(unfounded) == 0 {
			continue
		}
		boundary := c.boundaryReason(ctl, unfounded)
		for a := range unfounded {
			atom := c.graph.Atom(a)
			r := &reason{lits: boundary, self: atom.Lit}
			if !ctl.Force(atom.Lit.Opposite(), r) {
				return r, true
			}
		}
	}
	return nil, false
}

// IsModel defensively re-checks that no atom left true still belongs to
// an unfounded set (§4.7's "last chance to reject a total assignment");
// PropagateFixpoint above should already have forced every unfounded
// atom false or raised a conflict, so this only guards against a caller
// accepting a model without first driving propagation to a fixpoint.
func (c *Checker) IsModel(ctl postprop.Control) bool {
	for _, atoms := range c.sccs {
		for a := range c.unfoundedSet(ctl, atoms) {
			if ctl.Value(c.graph.Atom(a).Lit) != litvar.LFalse {
				return false
			}
		}
	}
	return true
}

// Reset clears sweep state; the checker keeps none between calls, since
// unfoundedSet recomputes from the live assignment each time.
func (c *Checker) Reset() {}

// UndoLevel is a no-op for the same reason: nothing is cached across
// propagation rounds.
func (c *Checker) UndoLevel(level int) {}

// unfoundedSet computes the greatest unfounded subset of atoms (all in
// one SCC) under the current assignment: a shrinking fixpoint that
// starts by assuming every not-yet-false atom is unfounded and removes
// one once it finds a live body none of whose positive predecessors are
// still (circularly) unresolved. Starting from the full candidate set
// is essential: a pure cycle with no base case ("a :- b. b :- a." and
// nothing else) has every atom "supported" by another atom that is
// itself only supported by the first, so a fixpoint that instead grows
// from empty — treating any live, not-yet-proven-unfounded predecessor
// as real support — never finds a reason to add either atom and
// converges on the empty set, silently accepting a model with no
// stable derivation. Shrinking from the full set forces each atom to
// prove it has a source outside the circularity before it is excused.
func (c *Checker) unfoundedSet(ctl postprop.Control, atoms []depgraph.AtomID) map[depgraph.AtomID]bool {
	unfounded := map[depgraph.AtomID]bool{}
	for _, a := range atoms {
		if ctl.Value(c.graph.Atom(a).Lit) != litvar.LFalse {
			unfounded[a] = true
		}
	}
	for {
		changed := false
		for a := range unfounded {
			if c.hasSupport(ctl, c.graph.Atom(a), unfounded) {
				delete(unfounded, a)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return unfounded
}

// hasSupport reports whether atom has a live (non-false) defining body
// none of whose positive predecessors are still in the unfounded
// candidate set. A predecessor outside the SCC is never a member of
// unfounded (that map holds only this SCC's atoms), so such a body
// always counts as real, external support; an in-SCC predecessor
// counts only once it has itself been removed from unfounded, i.e.
// proven to have a source of its own.
func (c *Checker) hasSupport(ctl postprop.Control, atom *depgraph.Atom, unfounded map[depgraph.AtomID]bool) bool {
	for _, bid := range atom.Bodies {
		b := c.graph.Body(bid)
		if ctl.Value(b.Lit) == litvar.LFalse {
			continue
		}
		blocked := false
		for _, p := range b.Preds {
			if unfounded[p] {
				blocked = true
				break
			}
		}
		if !blocked {
			return true
		}
	}
	return false
}

// boundaryReason collects the external-false-body literals justifying
// every atom in unfounded being unsupported: a standard loop formula
// (¬a ∨ B1 ∨ B2 ∨ ...) shared across the whole set, where B1, B2, ... are
// all defining bodies of any atom in the set that are currently false,
// whether or not they depend on the set. Bodies that are not false
// contribute nothing: each has a positive predecessor in the set, so its
// unavailability is implied by the other unfounded atoms' own
// forced-false literals, which Explain need not restate since analysis
// resolves through them separately when it reaches their trail entries.
func (c *Checker) boundaryReason(ctl postprop.Control, unfounded map[depgraph.AtomID]bool) []litvar.Literal {
	seen := map[litvar.Literal]bool{}
	var lits []litvar.Literal
	for a := range unfounded {
		atom := c.graph.Atom(a)
		for _, bid := range atom.Bodies {
			b := c.graph.Body(bid)
			if ctl.Value(b.Lit) != litvar.LFalse {
				continue
			}
			lit := b.Lit.Opposite()
			if seen[lit] {
				continue
			}
			seen[lit] = true
			lits = append(lits, lit)
		}
	}
	return lits
}

// reason implements assign.Reason for a literal forced false by the
// unfounded-set checker, materialising its external literals eagerly
// (the "only_reason" strategy of §4.7) rather than re-deriving them from
// checker state that may have moved on by the time analysis calls
// Explain.
type reason struct {
	lits []litvar.Literal
	self litvar.Literal
}

func (r *reason) Explain(l litvar.Literal, out []litvar.Literal) []litvar.Literal {
	out = append(out, r.lits...)
	if l == assign.NoLiteral {
		out = append(out, r.self)
	}
	return out
}
