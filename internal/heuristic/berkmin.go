package heuristic

import "github.com/go-clasp/clasp/internal/litvar"

// berkmin approximates the Berkmin heuristic: prefer a variable from the
// most recently involved conflict (the last variables bumped during
// conflict analysis, §4.5) before falling back to a VSIDS score order.
// Bump is called once per resolved literal during analyse, so the last
// run of Bump calls is exactly "the top of the most recent conflict
// clause" that Berkmin wants to try first.
type berkmin struct {
	scores *vsids
	stack  []int32 // most-recently-bumped variables, back is most recent
}

func newBerkmin(decay float64, phaseSaving bool) *berkmin {
	return &berkmin{scores: newVSIDS(decay, phaseSaving)}
}

func (h *berkmin) Grow() { h.scores.Grow() }

func (h *berkmin) Bump(v litvar.Var) {
	h.scores.Bump(v)
	h.stack = append(h.stack, int32(v))
}

func (h *berkmin) Decay() { h.scores.Decay() }

func (h *berkmin) Unassign(v litvar.Var, wasValue litvar.LBool) {
	h.scores.Unassign(v, wasValue)
}

func (h *berkmin) Select(isAssigned func(litvar.Var) bool) litvar.Literal {
	for len(h.stack) > 0 {
		v := litvar.Var(h.stack[len(h.stack)-1])
		h.stack = h.stack[:len(h.stack)-1]
		if !isAssigned(v) {
			if h.scores.phases[v] == litvar.LFalse {
				return litvar.NegativeLiteral(v)
			}
			return litvar.PositiveLiteral(v)
		}
	}
	return h.scores.Select(isAssigned)
}
