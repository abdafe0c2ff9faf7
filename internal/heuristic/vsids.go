package heuristic

import (
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/rhartert/yagh"
)

// vsids is the classic variable-state independent decaying sum
// heuristic, grounded on the teacher's VarOrder: a yagh min-heap keyed
// by negated score so Pop() returns the highest-scoring free variable.
type vsids struct {
	order *yagh.IntMap[float64]

	scores []float64
	inc    float64
	decay  float64

	phases      []litvar.LBool
	phaseSaving bool
}

func newVSIDS(decay float64, phaseSaving bool) *vsids {
	if decay <= 0 || decay > 1 {
		decay = 0.95
	}
	return &vsids{
		order:       yagh.New[float64](0),
		inc:         1,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

func (h *vsids) Grow() {
	v := len(h.scores)
	h.scores = append(h.scores, 0)
	h.phases = append(h.phases, litvar.LUnknown)
	h.order.GrowBy(1)
	h.order.Put(v, 0)
}

func (h *vsids) Bump(v litvar.Var) {
	idx := int(v)
	h.scores[idx] += h.inc
	if h.order.Contains(idx) {
		h.order.Put(idx, -h.scores[idx])
	}
	if h.scores[idx] > 1e100 {
		h.rescale()
	}
}

func (h *vsids) rescale() {
	h.inc *= 1e-100
	for v, s := range h.scores {
		h.scores[v] = s * 1e-100
		if h.order.Contains(v) {
			h.order.Put(v, -h.scores[v])
		}
	}
}

func (h *vsids) Decay() {
	h.inc /= h.decay
	if h.inc > 1e100 {
		h.rescale()
	}
}

func (h *vsids) Unassign(v litvar.Var, wasValue litvar.LBool) {
	idx := int(v)
	if h.phaseSaving {
		h.phases[idx] = wasValue
	}
	h.order.Put(idx, -h.scores[idx])
}

func (h *vsids) Select(isAssigned func(litvar.Var) bool) litvar.Literal {
	for {
		next, ok := h.order.Pop()
		if !ok {
			panic("heuristic: no unassigned variable left to select")
		}
		v := litvar.Var(next.Elem)
		if isAssigned(v) {
			continue
		}
		switch h.phases[next.Elem] {
		case litvar.LFalse:
			return litvar.NegativeLiteral(v)
		default:
			return litvar.PositiveLiteral(v)
		}
	}
}
