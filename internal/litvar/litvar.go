// Package litvar defines the bit-packed literal and variable types shared
// by every other package in the solver core.
package litvar

import "fmt"

// Var identifies a problem variable. Variables are numbered 0..N-1
// internally, and every id, 0 included, is an ordinary problem variable;
// no id is reserved as a constantly-true sentinel.
type Var int32

// Literal is a signed reference to a variable, packed as a single machine
// word: (var << 1) | sign. Bit 0 is the sign bit (0 = positive, 1 =
// negative); the remaining bits hold the variable id. This mirrors the
// teacher's encoding but is given its own named type so the "watch" flag
// reserved by higher layers (§3, ShortImplicationGraph shared-mode
// bookkeeping) doesn't have to be smuggled into the same word.
type Literal int32

// PositiveLiteral returns the literal asserting that v is true.
func PositiveLiteral(v Var) Literal {
	return Literal(v) << 1
}

// NegativeLiteral returns the literal asserting that v is false.
func NegativeLiteral(v Var) Literal {
	return Literal(v)<<1 | 1
}

// VarID returns the variable the literal refers to.
func (l Literal) VarID() Var {
	return Var(l >> 1)
}

// IsPositive returns true if l is not negated.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Index returns a dense, zero-based index suitable for indexing
// per-literal slices (watch lists, implication graphs, assignments).
func (l Literal) Index() int {
	return int(l)
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}

// VarType distinguishes the role a variable plays in the dependency graph
// used by the unfounded-set checker (§3). A variable may represent a
// logic-program atom, a rule body, both (hybrid, e.g. a body whose
// literal also names an atom alias), or neither (a plain SAT/PB
// variable with no ASP role).
type VarType uint8

const (
	// VarPlain is an ordinary SAT/PB variable with no dependency-graph role.
	VarPlain VarType = iota
	VarAtom
	VarBody
	VarHybrid
)

// VarInfo bundles the mark bits and role tag that the original source
// packs into a single byte per variable (§3, §9 "bit-packed literals").
// It is kept as an explicit newtype with accessor methods rather than a
// bag of bit constants so that callers never have to know the bit
// layout.
type VarInfo struct {
	bits uint8
}

const (
	flagFrozen uint8 = 1 << iota
	flagInput
	flagOutput
	flagNegAntecedent
	typeShift = 4
	typeMask  = 0b11 << typeShift
)

// NewVarInfo returns a VarInfo for a variable of the given type. Every
// flag starts false; set them via the Set* methods.
func NewVarInfo(t VarType) VarInfo {
	return VarInfo{bits: uint8(t) << typeShift}
}

func (vi VarInfo) Type() VarType {
	return VarType((vi.bits & typeMask) >> typeShift)
}

func (vi VarInfo) Frozen() bool           { return vi.bits&flagFrozen != 0 }
func (vi VarInfo) Input() bool            { return vi.bits&flagInput != 0 }
func (vi VarInfo) Output() bool           { return vi.bits&flagOutput != 0 }
func (vi VarInfo) InNegAntecedent() bool  { return vi.bits&flagNegAntecedent != 0 }

func (vi *VarInfo) SetFrozen(b bool)          { vi.set(flagFrozen, b) }
func (vi *VarInfo) SetInput(b bool)           { vi.set(flagInput, b) }
func (vi *VarInfo) SetOutput(b bool)          { vi.set(flagOutput, b) }
func (vi *VarInfo) SetInNegAntecedent(b bool) { vi.set(flagNegAntecedent, b) }

func (vi *VarInfo) set(flag uint8, b bool) {
	if b {
		vi.bits |= flag
	} else {
		vi.bits &^= flag
	}
}

// LBool is a lifted boolean with three states, used throughout for
// partial assignments.
type LBool int8

const (
	LFalse LBool = -1
	LUnknown LBool = 0
	LTrue LBool = 1
)

// Lift converts a plain bool to its corresponding LBool.
func Lift(b bool) LBool {
	if b {
		return LTrue
	}
	return LFalse
}

// Opposite returns the negation of l (Unknown is its own negation).
func (l LBool) Opposite() LBool {
	return -l
}

func (l LBool) String() string {
	switch l {
	case LTrue:
		return "true"
	case LFalse:
		return "false"
	default:
		return "unknown"
	}
}
