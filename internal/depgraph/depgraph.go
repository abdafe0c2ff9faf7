// Package depgraph builds the atom/body dependency graph of a ground
// logic program (§3 "Dependency graph", §9 "cyclic pointer graphs
// ... resolved by an arena") and partitions it into strongly connected
// components. Atoms and bodies live in two parallel arenas addressed by
// typed indices (AtomID, BodyID) rather than pointers, mirroring the
// original's node/edge arena and sidestepping Go's lack of intrusive
// cyclic pointer structures.
package depgraph

import "github.com/go-clasp/clasp/internal/litvar"

// AtomID indexes an Atom in a Graph's arena.
type AtomID int

// BodyID indexes a Body in a Graph's arena.
type BodyID int

// NoSCC marks a node that is not part of any non-trivial strongly
// connected component (it needs no unfounded-set checking).
const NoSCC = -1

// Atom is one node of the dependency graph: a program atom together with
// the bodies that can support it (its "defining" bodies, i.e. the
// right-hand sides of rules with this atom in the head).
type Atom struct {
	Lit     litvar.Literal
	Bodies  []BodyID
	scc     int
	selfDep bool
}

// SCC returns the atom's strongly connected component id, or NoSCC.
func (a *Atom) SCC() int { return a.scc }

// Body is one node of the dependency graph: a rule body together with
// the atoms it positively depends on (Preds, with their weights for
// weight-constraint bodies) and the atoms it supports (Heads).
type Body struct {
	Lit   litvar.Literal
	Preds []AtomID
	// Weights holds, parallel to Preds, the contribution each predecessor
	// makes to the body's potential weight (1 for a normal/count body,
	// the rule's stated weight for a weight-constraint body).
	Weights []int
	Bound   int // 0 for a normal/count body with no weight bound
	Heads   []AtomID
	scc     int
}

// SCC returns the body's strongly connected component id, or NoSCC.
func (b *Body) SCC() int { return b.scc }

// PotentialWeight sums the weights of predecessors not currently false,
// given notFalse reporting whether a predecessor atom's literal is
// presently non-false; sourcing a body requires this to still reach
// Bound (§4.7 "extended bodies").
func (b *Body) PotentialWeight(notFalse func(atom AtomID) bool) int {
	total := 0
	for i, p := range b.Preds {
		if !notFalse(p) {
			continue
		}
		w := 1
		if i < len(b.Weights) {
			w = b.Weights[i]
		}
		total += w
	}
	return total
}

// Graph is the full atom/body dependency graph for one ground program.
type Graph struct {
	atoms  []Atom
	bodies []Body
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{}
}

// AddAtom registers a new atom with literal lit and returns its id.
func (g *Graph) AddAtom(lit litvar.Literal) AtomID {
	g.atoms = append(g.atoms, Atom{Lit: lit, scc: NoSCC})
	return AtomID(len(g.atoms) - 1)
}

// AddBody registers a new (initially predecessor-less) body with literal
// lit and returns its id.
func (g *Graph) AddBody(lit litvar.Literal) BodyID {
	g.bodies = append(g.bodies, Body{Lit: lit, scc: NoSCC})
	return BodyID(len(g.bodies) - 1)
}

// AddPositiveDependency records that body depends positively on atom,
// with weight contributing to the body's potential-weight counter when
// it is a weight-constraint body (weight 1 for an ordinary body).
func (g *Graph) AddPositiveDependency(body BodyID, atom AtomID, weight int) {
	b := &g.bodies[body]
	b.Preds = append(b.Preds, atom)
	b.Weights = append(b.Weights, weight)
}

// SetBound sets a weight-constraint body's bound (the minimum potential
// weight required for the body to remain supportable).
func (g *Graph) SetBound(body BodyID, bound int) {
	g.bodies[body].Bound = bound
}

// AddDefiningBody records that body is one of atom's supporting bodies
// (the rule "atom :- body"), linking both directions: atom.Bodies gains
// body, and body.Heads gains atom.
func (g *Graph) AddDefiningBody(atom AtomID, body BodyID) {
	g.atoms[atom].Bodies = append(g.atoms[atom].Bodies, body)
	g.bodies[body].Heads = append(g.bodies[body].Heads, atom)
	for _, p := range g.bodies[body].Preds {
		if p == atom {
			g.atoms[atom].selfDep = true
		}
	}
}

// Atom returns a pointer to the atom with the given id.
func (g *Graph) Atom(id AtomID) *Atom { return &g.atoms[id] }

// Body returns a pointer to the body with the given id.
func (g *Graph) Body(id BodyID) *Body { return &g.bodies[id] }

// NumAtoms returns the number of atoms registered.
func (g *Graph) NumAtoms() int { return len(g.atoms) }

// NumBodies returns the number of bodies registered.
func (g *Graph) NumBodies() int { return len(g.bodies) }

// node identifies one element of the combined atom+body graph Tarjan
// walks: atoms occupy [0, numAtoms), bodies occupy
// [numAtoms, numAtoms+numBodies).
type node int

func (g *Graph) atomNode(a AtomID) node { return node(a) }
func (g *Graph) bodyNode(b BodyID) node { return node(len(g.atoms)) + node(b) }

func (g *Graph) successors(n node) []node {
	if int(n) < len(g.atoms) {
		a := &g.atoms[n]
		out := make([]node, len(a.Bodies))
		for i, b := range a.Bodies {
			out[i] = g.bodyNode(b)
		}
		return out
	}
	b := &g.bodies[int(n)-len(g.atoms)]
	out := make([]node, len(b.Preds))
	for i, a := range b.Preds {
		out[i] = g.atomNode(a)
	}
	return out
}

// tarjan is the bookkeeping for a single run of Tarjan's strongly
// connected components algorithm over the combined atom/body graph.
type tarjan struct {
	g        *Graph
	index    []int
	lowlink  []int
	onStack  []bool
	stack    []node
	next     int
	sccCount int
	sccOf    []int
}

// ComputeSCCs partitions the graph into strongly connected components
// via positive dependency edges (atom -> supporting body, body ->
// positive predecessor atom), following §9's guidance to resolve the
// cyclic atom/body graph with typed-index arenas rather than pointers.
// Components of size one with no self-loop are left at NoSCC (they need
// no unfounded-set checking, §4.7); every other component gets a fresh,
// non-negative id.
func (g *Graph) ComputeSCCs() {
	n := len(g.atoms) + len(g.bodies)
	t := &tarjan{
		g:       g,
		index:   make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
		sccOf:   make([]int, n),
	}
	for i := range t.index {
		t.index[i] = -1
	}

	for v := 0; v < n; v++ {
		if t.index[v] == -1 {
			t.strongConnect(node(v))
		}
	}

	for a := range g.atoms {
		g.atoms[a].scc = t.sccOf[a]
	}
	for b := range g.bodies {
		g.bodies[b].scc = t.sccOf[len(g.atoms)+b]
	}
}

func (t *tarjan) strongConnect(v node) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.successors(v) {
		switch {
		case t.index[w] == -1:
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		case t.onStack[w]:
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}

	var component []node
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		component = append(component, w)
		if w == v {
			break
		}
	}

	trivial := len(component) == 1 && !t.g.selfLoops(component[0])
	id := NoSCC
	if !trivial {
		id = t.sccCount
		t.sccCount++
	}
	for _, w := range component {
		t.sccOf[w] = id
	}
}

// selfLoops reports whether n has an edge to itself (a size-one
// component is still non-trivial if the single node depends on itself,
// e.g. "a :- a, not b.").
func (g *Graph) selfLoops(n node) bool {
	for _, w := range g.successors(n) {
		if w == n {
			return true
		}
	}
	return false
}
