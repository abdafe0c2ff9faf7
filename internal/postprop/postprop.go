// Package postprop implements the post-propagator chain of §4.6: a
// priority-ordered list of auxiliary propagators (unfounded check,
// acyclicity, external theories) consulted at every propagation
// fixpoint once the short-implication graph and long-clause watch lists
// have nothing further to say.
package postprop

import (
	"sort"

	"github.com/go-clasp/clasp/internal/assign"
	"github.com/go-clasp/clasp/internal/litvar"
)

// Priority orders the chain (§4.6); lower values run earlier. The names
// match the reserved slots the source names, so a registration site
// reads as "this runs where X used to run" rather than a bare number.
type Priority int

const (
	ClassSimple Priority = iota
	ClassGeneral
	ClassUFS
	ReservedLook
	ReservedMsg
	ReservedUFS
)

// Control is the subset of Solver state a post-propagator needs: reading
// the current assignment and forcing further literals. It deliberately
// excludes watch registration and decision-level control, which stay the
// Solver's exclusive business.
type Control interface {
	Value(l litvar.Literal) litvar.LBool
	Force(l litvar.Literal, reason assign.Reason) bool
	DecisionLevel() int
}

// PostPropagator is one link of the chain (§4.6).
type PostPropagator interface {
	Priority() Priority

	// PropagateFixpoint runs this propagator to a fixpoint within its own
	// priority class, given that every propagator of strictly lower
	// priority already reached its own fixpoint on the current trail. It
	// returns a conflicting Reason and true on conflict.
	PropagateFixpoint(ctl Control, lowerBound Priority) (assign.Reason, bool)

	// IsModel is the last check before a total assignment is accepted as
	// a model. Returning false without a Force/conflict means the
	// propagator needs another propagation pass first.
	IsModel(ctl Control) bool

	// Reset clears sweep state accumulated since the chain's last full
	// fixpoint.
	Reset()

	// UndoLevel is invoked once per decision level popped during
	// backtracking, in descending level order.
	UndoLevel(level int)
}

// Chain is a priority-ordered list of PostPropagators. It is not safe
// for concurrent use; each Solver owns one.
type Chain struct {
	props []PostPropagator
}

// Register inserts p at its Priority, keeping the chain sorted ascending
// (earliest-to-run first). Registering the same pointer twice is a
// no-op.
func (ch *Chain) Register(p PostPropagator) {
	for _, existing := range ch.props {
		if existing == p {
			return
		}
	}
	i := sort.Search(len(ch.props), func(i int) bool { return ch.props[i].Priority() > p.Priority() })
	ch.props = append(ch.props, nil)
	copy(ch.props[i+1:], ch.props[i:])
	ch.props[i] = p
}

// Len reports how many propagators are registered.
func (ch *Chain) Len() int { return len(ch.props) }

// PropagateFixpoint runs every registered propagator once, in priority
// order, stopping at the first conflict. The caller is expected to
// re-drive short/long-clause propagation and call this again whenever a
// propagator forces a new literal, per §4.5's "propagation restarts at
// step 1 unless the post-propagator declares a fixpoint".
func (ch *Chain) PropagateFixpoint(ctl Control) (assign.Reason, bool) {
	for _, p := range ch.props {
		if reason, conflict := p.PropagateFixpoint(ctl, p.Priority()); conflict {
			return reason, true
		}
	}
	return nil, false
}

// IsModel asks every propagator to bless a total assignment, stopping at
// the first rejection.
func (ch *Chain) IsModel(ctl Control) bool {
	for _, p := range ch.props {
		if !p.IsModel(ctl) {
			return false
		}
	}
	return true
}

// Reset clears every propagator's sweep state.
func (ch *Chain) Reset() {
	for _, p := range ch.props {
		p.Reset()
	}
}

// UndoLevel notifies every propagator that level was popped.
func (ch *Chain) UndoLevel(level int) {
	for _, p := range ch.props {
		p.UndoLevel(level)
	}
}
