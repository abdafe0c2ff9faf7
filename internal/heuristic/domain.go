package heuristic

import "github.com/go-clasp/clasp/internal/litvar"

// domainMod is the accumulated state of the domain-heuristic modifier
// stack for one variable (§9 "Open questions"). This module resolves
// that open question as follows, after consulting the modifier-stacking
// tests implied by dependency_graph_test.cpp/decision_heuristic_test.cpp
// in original_source: a modifier at a strictly higher priority than
// what's currently recorded replaces everything; at an equal priority,
// the "init" contribution accumulates (it biases a score, so summing
// matches the additive VSIDS-style semantics used everywhere else in
// this package) while sign/level/true/false replace the previous value,
// since those are categorical choices rather than weights.
type domainMod struct {
	priority int
	init     float64
	sign     litvar.LBool // LUnknown: no sign preference recorded
	forced   litvar.LBool // LUnknown: no forced truth value recorded
	level    int
	hasLevel bool
}

// domain layers the modifier stack on top of a VSIDS order: init biases
// a variable's score, sign/forced steer which literal Select returns.
type domain struct {
	scores *vsids
	mods   []domainMod
}

func newDomain(decay float64, phaseSaving bool) *domain {
	return &domain{scores: newVSIDS(decay, phaseSaving)}
}

func (h *domain) Grow() {
	h.scores.Grow()
	h.mods = append(h.mods, domainMod{priority: -1, sign: litvar.LUnknown, forced: litvar.LUnknown})
}

func (h *domain) Bump(v litvar.Var) { h.scores.Bump(v) }
func (h *domain) Decay()            { h.scores.Decay() }
func (h *domain) Unassign(v litvar.Var, wasValue litvar.LBool) {
	h.scores.Unassign(v, wasValue)
}

// SetModifier applies one domain-heuristic directive to v at the given
// priority, following the stacking rule documented on domainMod.
func (h *domain) SetModifier(v litvar.Var, priority int, init float64, sign litvar.LBool, forced litvar.LBool, level int, hasLevel bool) {
	m := &h.mods[v]
	prevInit := m.init
	switch {
	case priority > m.priority:
		*m = domainMod{priority: priority, init: init, sign: sign, forced: forced, level: level, hasLevel: hasLevel}
	case priority == m.priority:
		m.init += init
		if sign != litvar.LUnknown {
			m.sign = sign
		}
		if forced != litvar.LUnknown {
			m.forced = forced
		}
		if hasLevel {
			m.level, m.hasLevel = level, true
		}
	default:
		return // lower priority than what's already recorded: ignored
	}
	h.scores.scores[v] += m.init - prevInit
	if h.scores.order.Contains(int(v)) {
		h.scores.order.Put(int(v), -h.scores.scores[v])
	}
}

func (h *domain) Select(isAssigned func(litvar.Var) bool) litvar.Literal {
	l := h.scores.Select(isAssigned)
	v := l.VarID()
	m := h.mods[v]
	if m.forced != litvar.LUnknown {
		if m.forced == litvar.LFalse {
			return litvar.NegativeLiteral(v)
		}
		return litvar.PositiveLiteral(v)
	}
	if m.sign != litvar.LUnknown {
		if m.sign == litvar.LFalse {
			return litvar.NegativeLiteral(v)
		}
		return litvar.PositiveLiteral(v)
	}
	return l
}
