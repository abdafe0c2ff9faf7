package heuristic

import "github.com/go-clasp/clasp/internal/litvar"

// vmtf implements variable move-to-front: a doubly linked list of all
// variables, with bumped variables relinked at the head. Decisions pick
// the first unassigned variable walking from the head, which is exactly
// the last-bumped-and-not-yet-assigned variable in practice.
type vmtf struct {
	prev, next []int32 // -1 is the list sentinel
	head, tail int32

	phases      []litvar.LBool
	phaseSaving bool
}

func newVMTF(phaseSaving bool) *vmtf {
	return &vmtf{head: -1, tail: -1, phaseSaving: phaseSaving}
}

func (h *vmtf) Grow() {
	v := int32(len(h.prev))
	h.prev = append(h.prev, -1)
	h.next = append(h.next, -1)
	h.phases = append(h.phases, litvar.LUnknown)

	if h.tail == -1 {
		h.head, h.tail = v, v
		return
	}
	h.next[h.tail] = v
	h.prev[v] = h.tail
	h.tail = v
}

func (h *vmtf) unlink(v int32) {
	p, n := h.prev[v], h.next[v]
	if p != -1 {
		h.next[p] = n
	} else {
		h.head = n
	}
	if n != -1 {
		h.prev[n] = p
	} else {
		h.tail = p
	}
	h.prev[v], h.next[v] = -1, -1
}

func (h *vmtf) pushFront(v int32) {
	if h.head == v {
		return
	}
	h.unlink(v)
	old := h.head
	h.prev[v] = -1
	h.next[v] = old
	if old != -1 {
		h.prev[old] = v
	} else {
		h.tail = v
	}
	h.head = v
}

func (h *vmtf) Bump(v litvar.Var) {
	h.pushFront(int32(v))
}

func (h *vmtf) Decay() {}

func (h *vmtf) Unassign(v litvar.Var, wasValue litvar.LBool) {
	if h.phaseSaving {
		h.phases[v] = wasValue
	}
}

func (h *vmtf) Select(isAssigned func(litvar.Var) bool) litvar.Literal {
	for v := h.head; v != -1; v = h.next[v] {
		if isAssigned(litvar.Var(v)) {
			continue
		}
		if h.phases[v] == litvar.LFalse {
			return litvar.NegativeLiteral(litvar.Var(v))
		}
		return litvar.PositiveLiteral(litvar.Var(v))
	}
	panic("heuristic: no unassigned variable left to select")
}
