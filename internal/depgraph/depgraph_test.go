package depgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-clasp/clasp/internal/litvar"
)

// buildLoop encodes "a :- b. b :- a. a :- not c. c :- not a." (§8
// concrete scenario 3): a and b form a non-trivial SCC through two
// bodies that each positively depend on the other atom; c depends on a
// only negatively, so it sits outside the loop.
func buildLoop(t *testing.T) (g *Graph, a, b, c AtomID) {
	t.Helper()
	g = New()
	a = g.AddAtom(litvar.PositiveLiteral(0))
	b = g.AddAtom(litvar.PositiveLiteral(1))
	c = g.AddAtom(litvar.PositiveLiteral(2))

	bodyB := g.AddBody(litvar.PositiveLiteral(1)) // "b" as a body literal alias
	g.AddPositiveDependency(bodyB, b, 1)
	g.AddDefiningBody(a, bodyB)

	bodyA := g.AddBody(litvar.PositiveLiteral(0))
	g.AddPositiveDependency(bodyA, a, 1)
	g.AddDefiningBody(b, bodyA)

	// "a :- not c" and "c :- not a" are negative dependencies: no edge
	// is added to the graph for them (only positive dependencies can
	// form an unfounded loop, §4.7).
	notC := g.AddBody(litvar.NegativeLiteral(2))
	g.AddDefiningBody(a, notC)
	notA := g.AddBody(litvar.NegativeLiteral(0))
	g.AddDefiningBody(c, notA)

	return g, a, b, c
}

func TestComputeSCCs_LoopFormsOneComponent(t *testing.T) {
	g, a, b, c := buildLoop(t)
	g.ComputeSCCs()

	require.NotEqual(t, NoSCC, g.Atom(a).SCC(), "a must be in a non-trivial SCC")
	require.Equal(t, g.Atom(a).SCC(), g.Atom(b).SCC(), "a and b must share their SCC")
	require.Equal(t, NoSCC, g.Atom(c).SCC(), "c has no positive loop and must stay NoSCC")
}

func TestComputeSCCs_TightProgramHasNoComponents(t *testing.T) {
	// "x1 :- not x2." is tight: no atom depends on another positively.
	g := New()
	x1 := g.AddAtom(litvar.PositiveLiteral(0))
	g.AddAtom(litvar.PositiveLiteral(1))
	body := g.AddBody(litvar.NegativeLiteral(1))
	g.AddDefiningBody(x1, body)

	g.ComputeSCCs()
	require.Equal(t, NoSCC, g.Atom(x1).SCC())
}

func TestComputeSCCs_SelfLoopIsNonTrivial(t *testing.T) {
	// "a :- a." is a size-one component that still needs checking.
	g := New()
	a := g.AddAtom(litvar.PositiveLiteral(0))
	body := g.AddBody(litvar.PositiveLiteral(0))
	g.AddPositiveDependency(body, a, 1)
	g.AddDefiningBody(a, body)

	g.ComputeSCCs()
	require.NotEqual(t, NoSCC, g.Atom(a).SCC())
}

func TestBody_PotentialWeight(t *testing.T) {
	g, a, b, _ := buildLoop(t)
	bodyB := g.Body(0)
	require.ElementsMatch(t, []AtomID{b}, bodyB.Preds)

	notFalseAll := func(AtomID) bool { return true }
	require.Equal(t, 1, bodyB.PotentialWeight(notFalseAll))

	notFalseNone := func(AtomID) bool { return false }
	require.Equal(t, 0, bodyB.PotentialWeight(notFalseNone))
	_ = a
}
