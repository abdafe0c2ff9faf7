package heuristic

import "github.com/go-clasp/clasp/internal/litvar"

// unit is the static "unit" heuristic: no scoring at all, variables are
// tried in ascending index order and always assigned true first. It
// backs both solver.heuristic=unit and =none (§6), matching a bare
// sequential order with no bookkeeping cost.
type unit struct {
	n int
}

func newUnit() *unit {
	return &unit{}
}

func (h *unit) Grow()                                       { h.n++ }
func (h *unit) Bump(v litvar.Var)                            {}
func (h *unit) Decay()                                       {}
func (h *unit) Unassign(v litvar.Var, wasValue litvar.LBool) {}

func (h *unit) Select(isAssigned func(litvar.Var) bool) litvar.Literal {
	for v := 0; v < h.n; v++ {
		if !isAssigned(litvar.Var(v)) {
			return litvar.PositiveLiteral(litvar.Var(v))
		}
	}
	panic("heuristic: no unassigned variable left to select")
}
