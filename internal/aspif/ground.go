package aspif

import (
	"github.com/go-clasp/clasp/internal/depgraph"
	"github.com/go-clasp/clasp/internal/litvar"
)

// GroundTarget is the subset of internal/context.SharedContext's surface
// Ground needs: a place to grow variables, assert clauses, and record
// dependency-graph structure for the unfounded-set checker. Defined as
// an interface here, the way internal/dimacs.Target decouples that
// package's Load from SharedContext, rather than importing
// internal/context directly.
type GroundTarget interface {
	AddVars(n int, t litvar.VarType) litvar.Var
	AddClause(lits []litvar.Literal) error
	Graph() *depgraph.Graph
}

// GroundResult collects what Ground could not fold directly into
// clauses and dependency-graph edges: the minimize statement's
// literals, handed by the caller to internal/enumerator.
type GroundResult struct {
	Minimize []litvar.Literal
}

// atomTable maps an aspif atom id onto the solver variable and
// dependency-graph atom id standing in for it, creating both lazily so
// an atom mentioned only in a body (never a head) still gets a literal.
type atomTable struct {
	target GroundTarget
	vars   map[int]litvar.Var
	gids   map[int]depgraph.AtomID
}

func newAtomTable(target GroundTarget) *atomTable {
	return &atomTable{target: target, vars: map[int]litvar.Var{}, gids: map[int]depgraph.AtomID{}}
}

func (t *atomTable) get(atom int) (litvar.Var, depgraph.AtomID) {
	if v, ok := t.vars[atom]; ok {
		return v, t.gids[atom]
	}
	v := t.target.AddVars(1, litvar.VarPlain)
	g := t.target.Graph().AddAtom(litvar.PositiveLiteral(v))
	t.vars[atom] = v
	t.gids[atom] = g
	return v, g
}

// literal resolves a body literal's signed atom id: positive means the
// atom itself, negative means its default-negation ("not atom").
func (t *atomTable) literal(signedAtom int) litvar.Literal {
	v, _ := t.get(abs(signedAtom))
	if signedAtom < 0 {
		return litvar.NegativeLiteral(v)
	}
	return litvar.PositiveLiteral(v)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Ground folds p's normal rules into target's clause database and
// dependency graph, giving internal/ufs enough structure to enforce
// stable-model semantics on a possibly-recursive program (§4.7).
//
// Choice rules, disjunctive (multi-atom head) rules, and weight/
// cardinality bodies are outside this pass's scope: Ground skips those
// statements rather than mistranslate them (a real grounder would
// extend the switch below, not this package's other callers). Project,
// Output, External, Assume, Heuristic, Edge, and Theory statements are
// likewise left for a richer front end to interpret; Minimise is the
// one non-Rule statement Ground does resolve, since internal/enumerator
// already knows what to do with a flat literal list.
func Ground(p *Program, target GroundTarget) (GroundResult, error) {
	atoms := newAtomTable(target)
	var result GroundResult

	for _, stmt := range p.Statements {
		switch s := stmt.(type) {
		case Rule:
			if s.BodyType != BodyNormal || s.HeadType != HeadDisjunctive || len(s.Head) != 1 {
				continue
			}
			if err := groundNormalRule(atoms, target, s); err != nil {
				return result, err
			}
		case Minimise:
			for _, wl := range s.Literals {
				result.Minimize = append(result.Minimize, atoms.literal(wl.Literal))
			}
		}
	}
	return result, nil
}

// groundNormalRule asserts a fresh body literal equivalent to the
// conjunction of r.Body (body -> each conjunct; the conjunction ->
// body), then head <- body, and registers both directions of the atom/
// body dependency so internal/ufs can reject a model where head is
// true only through a support cycle with no external base case.
func groundNormalRule(atoms *atomTable, target GroundTarget, r Rule) error {
	bodyVar := target.AddVars(1, litvar.VarPlain)
	bodyLit := litvar.PositiveLiteral(bodyVar)

	bodyLits := make([]litvar.Literal, len(r.Body))
	for i, wl := range r.Body {
		bodyLits[i] = atoms.literal(wl.Literal)
	}

	for _, l := range bodyLits {
		if err := target.AddClause([]litvar.Literal{bodyLit.Opposite(), l}); err != nil {
			return err
		}
	}
	conj := make([]litvar.Literal, 0, len(bodyLits)+1)
	for _, l := range bodyLits {
		conj = append(conj, l.Opposite())
	}
	conj = append(conj, bodyLit)
	if err := target.AddClause(conj); err != nil {
		return err
	}

	headVar, headGID := atoms.get(r.Head[0])
	if err := target.AddClause([]litvar.Literal{bodyLit.Opposite(), litvar.PositiveLiteral(headVar)}); err != nil {
		return err
	}

	g := target.Graph()
	bodyGID := g.AddBody(bodyLit)
	for _, wl := range r.Body {
		if wl.Literal > 0 {
			_, predGID := atoms.get(wl.Literal)
			g.AddPositiveDependency(bodyGID, predGID, 1)
		}
	}
	g.AddDefiningBody(headGID, bodyGID)
	return nil
}
