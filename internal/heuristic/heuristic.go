// Package heuristic implements the branching-decision strategies of §2/
// §4.5: VSIDS, VMTF, a simplified Berkmin, and the domain heuristic
// modifier stack, all behind one Heuristic interface so the Solver's
// CDCL loop never needs to know which is active.
package heuristic

import "github.com/go-clasp/clasp/internal/litvar"

// Heuristic selects the next decision literal and reacts to variable
// bumps and unassignment so the underlying ordering structure stays
// current.
type Heuristic interface {
	// Grow informs the heuristic that one more variable now exists.
	Grow()
	// Bump records that v took part in the current conflict's
	// resolution (§4.5) and should be considered more promising.
	Bump(v litvar.Var)
	// Decay ages the bump increment (VSIDS-style heuristics only; a
	// no-op for strategies without one).
	Decay()
	// Unassign is invoked when v is unassigned by backtracking so the
	// heuristic can make it selectable again and, where applicable,
	// update its saved phase.
	Unassign(v litvar.Var, wasValue litvar.LBool)
	// Select returns the next decision literal. isAssigned reports
	// whether a given variable is already assigned; Select must keep pulling
	// candidates until it finds one for which isAssigned returns false.
	Select(isAssigned func(litvar.Var) bool) litvar.Literal
}

// Kind names the heuristic strategies recognised by the
// solver.heuristic configuration key (§6).
type Kind string

const (
	KindVSIDS   Kind = "vsids"
	KindVMTF    Kind = "vmtf"
	KindBerkmin Kind = "berkmin"
	KindDomain  Kind = "domain"
	KindUnit    Kind = "unit"
	KindNone    Kind = "none"
)

// Options configures any of the strategies that need it.
type Options struct {
	Kind          Kind
	VarDecay      float64 // VSIDS-score decay (vsids, berkmin, domain; VMTF ignores it), e.g. 0.95
	PhaseSaving   bool
}

// New constructs the heuristic named by opts.Kind.
func New(opts Options) Heuristic {
	switch opts.Kind {
	case KindVMTF:
		return newVMTF(opts.PhaseSaving)
	case KindBerkmin:
		return newBerkmin(opts.VarDecay, opts.PhaseSaving)
	case KindDomain:
		return newDomain(opts.VarDecay, opts.PhaseSaving)
	case KindUnit:
		return newUnit()
	case KindNone:
		return newUnit()
	default:
		return newVSIDS(opts.VarDecay, opts.PhaseSaving)
	}
}
