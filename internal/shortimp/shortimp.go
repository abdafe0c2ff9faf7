// Package shortimp implements the ShortImplicationsGraph of §3/§4.2: the
// binary and ternary clauses of the problem, addressed directly by
// literal so that propagating them never touches the long-clause watch
// lists. It also hosts the lock-free learnt-block chains used when a
// SharedContext runs in shared mode (§5).
package shortimp

import (
	"sync/atomic"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/litvar"
)

type ternaryPair struct {
	q, r litvar.Literal
}

// Graph is the per-context (or, for learnt entries under shared mode,
// cross-solver) short implication graph.
type Graph struct {
	// Problem entries, indexed by the triggering literal.
	bin  [][]litvar.Literal
	tern [][]ternaryPair

	// Unary implications used by the equivalence preprocessor and the
	// initial propagation (§3): literal p implies literal q directly.
	unary [][]litvar.Literal

	// Learnt entries. In non-shared mode these are plain slices like the
	// problem ones; in shared mode they are lock-free block chains (see
	// learntHead below) so concurrent solvers can append without
	// touching each other's reads.
	shared     bool
	learntBin  [][]litvar.Literal
	learntTern [][]ternaryPair
	learntHead []atomic.Pointer[learntBlock]

	numBinProblem, numBinLearnt   int
	numTernProblem, numTernLearnt int
}

// learntBlock is one node of the lock-free singly-linked list of learnt
// short implications chained off a literal in shared mode (§4.2, §9).
// Nodes are only ever prepended (CAS on the head) and never unlinked:
// RemoveTrue leaves a shared graph unchanged, and nothing reclaims nodes
// at step end; the garbage collector frees them once the graph itself
// is dropped. Readers only ever walk forward over a snapshot they
// already hold.
type learntBlock struct {
	bin  []litvar.Literal
	tern []ternaryPair
	next *learntBlock
}

// New returns an empty graph. shared selects whether learnt short
// implications are appended through the lock-free block-chain path
// (multi-threaded solving, §5) or a plain per-context slice (single
// solver).
func New(shared bool) *Graph {
	return &Graph{shared: shared}
}

// Grow extends the graph to cover one freshly-added variable (two new
// literals).
func (g *Graph) Grow() {
	g.bin = append(g.bin, nil, nil)
	g.tern = append(g.tern, nil, nil)
	g.unary = append(g.unary, nil, nil)
	if g.shared {
		g.learntHead = append(g.learntHead, atomic.Pointer[learntBlock]{}, atomic.Pointer[learntBlock]{})
	} else {
		g.learntBin = append(g.learntBin, nil, nil)
		g.learntTern = append(g.learntTern, nil, nil)
	}
}

// AddUnary records that p implies q directly (§3). Used by the
// equivalence preprocessor; idempotent.
func (g *Graph) AddUnary(p, q litvar.Literal) bool {
	for _, x := range g.unary[p] {
		if x == q {
			return false
		}
	}
	g.unary[p] = append(g.unary[p], q)
	return true
}

// Unary returns the literals directly implied by p.
func (g *Graph) Unary(p litvar.Literal) []litvar.Literal {
	return g.unary[p]
}

// AddBinary adds the binary clause (x ∨ y), i.e. the pair of arcs
// ¬x → y and ¬y → x. Returns false if the arc already exists (the
// addition is a no-op, matching the "idempotent" contract of §4.2).
func (g *Graph) AddBinary(learnt bool, x, y litvar.Literal) bool {
	px, py := x.Opposite(), y.Opposite()
	if g.hasBinary(px, y) {
		return false
	}
	if learnt {
		g.appendLearntBin(px, y)
		g.appendLearntBin(py, x)
		g.numBinLearnt++
	} else {
		g.bin[px] = append(g.bin[px], y)
		g.bin[py] = append(g.bin[py], x)
		g.numBinProblem++
	}
	return true
}

func (g *Graph) hasBinary(trigger, target litvar.Literal) bool {
	for _, l := range g.bin[trigger] {
		if l == target {
			return true
		}
	}
	if g.shared {
		for b := g.learntHead[trigger].Load(); b != nil; b = b.next {
			for _, l := range b.bin {
				if l == target {
					return true
				}
			}
		}
	} else {
		for _, l := range g.learntBin[trigger] {
			if l == target {
				return true
			}
		}
	}
	return false
}

func (g *Graph) appendLearntBin(trigger, target litvar.Literal) {
	if !g.shared {
		g.learntBin[trigger] = append(g.learntBin[trigger], target)
		return
	}
	for {
		head := g.learntHead[trigger].Load()
		node := &learntBlock{bin: []litvar.Literal{target}, next: head}
		if g.learntHead[trigger].CompareAndSwap(head, node) {
			return
		}
	}
}

// AddTernary adds the ternary clause (x ∨ y ∨ z), registering the three
// rotations described in §3.
func (g *Graph) AddTernary(learnt bool, x, y, z litvar.Literal) bool {
	px, py, pz := x.Opposite(), y.Opposite(), z.Opposite()
	if g.hasTernary(px, y, z) {
		return false
	}
	if learnt {
		g.appendLearntTern(px, y, z)
		g.appendLearntTern(py, x, z)
		g.appendLearntTern(pz, x, y)
		g.numTernLearnt++
	} else {
		g.tern[px] = append(g.tern[px], ternaryPair{y, z})
		g.tern[py] = append(g.tern[py], ternaryPair{x, z})
		g.tern[pz] = append(g.tern[pz], ternaryPair{x, y})
		g.numTernProblem++
	}
	return true
}

func (g *Graph) hasTernary(trigger, a, b litvar.Literal) bool {
	match := func(p ternaryPair) bool {
		return (p.q == a && p.r == b) || (p.q == b && p.r == a)
	}
	for _, p := range g.tern[trigger] {
		if match(p) {
			return true
		}
	}
	if g.shared {
		for n := g.learntHead[trigger].Load(); n != nil; n = n.next {
			for _, p := range n.tern {
				if match(p) {
					return true
				}
			}
		}
	} else {
		for _, p := range g.learntTern[trigger] {
			if match(p) {
				return true
			}
		}
	}
	return false
}

func (g *Graph) appendLearntTern(trigger, a, b litvar.Literal) {
	if !g.shared {
		g.learntTern[trigger] = append(g.learntTern[trigger], ternaryPair{a, b})
		return
	}
	for {
		head := g.learntHead[trigger].Load()
		node := &learntBlock{tern: []ternaryPair{{a, b}}, next: head}
		if g.learntHead[trigger].CompareAndSwap(head, node) {
			return
		}
	}
}

// binReason explains a binary clause (x ∨ y), stored as the arc
// trigger → other (e.g. ¬x → y). Explaining why l (= other) was forced
// only needs trigger (the clause's one other literal); explaining the
// conflict itself (l = assign.NoLiteral) needs both of the clause's
// literals negated, i.e. trigger and other's negation, since both are
// true under the falsifying assignment.
type binReason struct{ trigger, other litvar.Literal }

func (r binReason) Explain(l litvar.Literal, out []litvar.Literal) []litvar.Literal {
	if l == assign.NoLiteral {
		return append(out, r.trigger, r.other.Opposite())
	}
	return append(out, r.trigger)
}

// ternReason explains a ternary clause (x ∨ y ∨ z), stored as the arc
// trigger → (q, r) (e.g. ¬x → (y, z)). Explaining why one of q/r was
// forced needs trigger plus the other of the pair, negated (the two
// already-true literals that left the forced one as the sole
// possibility); explaining the conflict itself (l = assign.NoLiteral)
// needs all three of the clause's literals negated, since q and r are
// both false under the falsifying assignment.
type ternReason struct{ trigger, q, r litvar.Literal }

func (tr ternReason) Explain(l litvar.Literal, out []litvar.Literal) []litvar.Literal {
	switch {
	case l == assign.NoLiteral:
		return append(out, tr.trigger, tr.q.Opposite(), tr.r.Opposite())
	case l == tr.q:
		return append(out, tr.trigger, tr.r.Opposite())
	default:
		return append(out, tr.trigger, tr.q.Opposite())
	}
}

// ReasonBinary returns the assign.Reason a caller outside this package
// (the solver, recording a freshly learnt binary clause) needs to force
// the clause's asserting literal with the same explanation a graph-
// internal propagation would have produced.
func ReasonBinary(trigger, other litvar.Literal) assign.Reason {
	return binReason{trigger: trigger, other: other}
}

// ReasonTernary is ReasonBinary's three-literal counterpart: q is the
// clause's other already-false literal, r is the one being forced (or,
// for a conflict reason, either of the two — both are false there).
func ReasonTernary(trigger, q, r litvar.Literal) assign.Reason {
	return ternReason{trigger: trigger, q: q, r: r}
}

// Propagate visits every binary and ternary arc triggered by p (just
// forced true) and propagates or detects a conflict. It returns the
// conflicting Reason and true if a conflict was found.
func (g *Graph) Propagate(a *assign.Assignment, p litvar.Literal) (assign.Reason, bool) {
	for _, q := range g.bin[p] {
		if ok, reason := g.forceBinary(a, p, q); !ok {
			return reason, true
		}
	}
	if g.shared {
		for n := g.learntHead[p].Load(); n != nil; n = n.next {
			for _, q := range n.bin {
				if ok, reason := g.forceBinary(a, p, q); !ok {
					return reason, true
				}
			}
		}
	} else {
		for _, q := range g.learntBin[p] {
			if ok, reason := g.forceBinary(a, p, q); !ok {
				return reason, true
			}
		}
	}

	for _, pair := range g.tern[p] {
		if ok, reason := g.forceTernary(a, p, pair); !ok {
			return reason, true
		}
	}
	if g.shared {
		for n := g.learntHead[p].Load(); n != nil; n = n.next {
			for _, pair := range n.tern {
				if ok, reason := g.forceTernary(a, p, pair); !ok {
					return reason, true
				}
			}
		}
	} else {
		for _, pair := range g.learntTern[p] {
			if ok, reason := g.forceTernary(a, p, pair); !ok {
				return reason, true
			}
		}
	}

	return nil, false
}

func (g *Graph) forceBinary(a *assign.Assignment, trigger, q litvar.Literal) (bool, assign.Reason) {
	switch a.Value(q) {
	case litvar.LFalse:
		return false, binReason{trigger: trigger, other: q}
	case litvar.LTrue:
		return true, nil
	default:
		a.Force(q, binReason{trigger: trigger, other: q})
		return true, nil
	}
}

func (g *Graph) forceTernary(a *assign.Assignment, trigger litvar.Literal, pair ternaryPair) (bool, assign.Reason) {
	vq, vr := a.Value(pair.q), a.Value(pair.r)
	if vq == litvar.LTrue || vr == litvar.LTrue {
		return true, nil
	}
	switch {
	case vq == litvar.LFalse && vr == litvar.LFalse:
		return false, ternReason{trigger: trigger, q: pair.q, r: pair.r}
	case vq == litvar.LFalse:
		a.Force(pair.r, ternReason{trigger: trigger, q: pair.q, r: pair.r})
		return true, nil
	case vr == litvar.LFalse:
		a.Force(pair.q, ternReason{trigger: trigger, q: pair.r, r: pair.q})
		return true, nil
	default:
		return true, nil // both unknown: nothing to propagate yet
	}
}

// RemoveTrue simplifies the graph once p is fixed true at the root
// level (§4.2) by dropping p's own trigger lists: every arc in them
// comes from a clause containing ¬p, and at the root those arcs have
// already fired and never fire again. Arcs of clauses that contain p
// stay in place. In shared mode other Solvers read the same lists and
// may not have p fixed, so RemoveTrue leaves a shared graph unchanged.
func (g *Graph) RemoveTrue(p litvar.Literal) {
	if g.shared {
		return
	}
	g.bin[p] = nil
	g.tern[p] = nil
	g.learntBin[p] = nil
	g.learntTern[p] = nil
}

// ReverseArc reports whether trigger directly implies target (via a
// binary arc, or a ternary arc whose other literal is already false at
// or below maxLevel). Conflict-clause minimisation (§4.5) uses this to
// check whether a literal already in the learnt clause subsumes a
// candidate redundant literal without having to materialise the full
// antecedent.
func (g *Graph) ReverseArc(trigger, target litvar.Literal, maxLevel int, levelOf func(litvar.Var) int) bool {
	for _, l := range g.bin[trigger] {
		if l == target {
			return true
		}
	}
	for _, pair := range g.tern[trigger] {
		var other litvar.Literal
		switch target {
		case pair.q:
			other = pair.r
		case pair.r:
			other = pair.q
		default:
			continue
		}
		if levelOf(other.VarID()) <= maxLevel {
			return true
		}
	}
	return false
}

// Counts returns the number of problem and learnt binary/ternary
// entries, used for statistics reporting.
func (g *Graph) Counts() (binProblem, binLearnt, ternProblem, ternLearnt int) {
	return g.numBinProblem, g.numBinLearnt, g.numTernProblem, g.numTernLearnt
}
