// Package distributor implements §4.10's multi-threaded learnt-clause
// sharing ring: a bounded, lock-free ring of published clauses, each
// tagged with a bitmask of which solvers still owe a read. A solver
// publishes a clause once and every other attached solver picks it up
// at its own pace by clearing its own bit; the ring is deliberately
// lossy under overload (an unread entry is simply overwritten once the
// ring wraps), matching the original's bounded-distributor-size
// tradeoff (§5: "no cross-solver happens-before... Distributor ring via
// atomic CAS").
package distributor

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/go-clasp/clasp/internal/litvar"
)

// Policy filters which learnt clauses are worth distributing at all
// (§4.10's "policy max-size/max-LBD/allowed-types filter").
type Policy struct {
	MaxSize int // 0 means unbounded
	MaxLBD  int // 0 means unbounded

	// Logger receives a debug line whenever the ring wraps over an entry
	// some solver hadn't read yet. Defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// Accepts reports whether c passes the policy's size/LBD thresholds.
func (p Policy) Accepts(c *Clause) bool {
	if p.MaxSize > 0 && len(c.Literals) > p.MaxSize {
		return false
	}
	if p.MaxLBD > 0 && c.LBD > p.MaxLBD {
		return false
	}
	return true
}

// Clause is a learnt clause as shared across solvers: plain literal
// data, copied rather than pointer-shared, so that two Solvers can each
// hold their own stable slice (see internal/context's ShareMode doc
// comment for why long clauses are not pointer-shared across
// concurrently-running Solvers).
type Clause struct {
	Literals []litvar.Literal
	LBD      int
}

type slot struct {
	clause atomic.Pointer[Clause]
	mask   atomic.Uint64
}

// Distributor is one cluster's learnt-clause ring, shared by every
// Solver attached to the same SharedContext. numSolvers must not exceed
// 64 (one bit per solver id).
type Distributor struct {
	slots   []slot
	next    atomic.Uint64
	allMask uint64
	policy  Policy
}

// New returns an empty ring of ringSize slots serving numSolvers
// solvers under policy.
func New(ringSize, numSolvers int, policy Policy) *Distributor {
	if ringSize < 1 {
		ringSize = 1
	}
	if policy.Logger == nil {
		policy.Logger = logrus.StandardLogger()
	}
	var all uint64
	if numSolvers >= 64 {
		all = ^uint64(0)
	} else {
		all = (uint64(1) << uint(numSolvers)) - 1
	}
	return &Distributor{slots: make([]slot, ringSize), allMask: all, policy: policy}
}

// Publish offers a learnt clause produced by solver `from` to every
// other solver. It returns false without publishing if the policy
// rejects the clause. Publishing always succeeds otherwise: the ring
// slot chosen is claimed unconditionally, overwriting whatever
// (possibly still partially unread) entry was there before.
func (d *Distributor) Publish(from int, c *Clause) bool {
	if !d.policy.Accepts(c) {
		return false
	}
	idx := int((d.next.Add(1) - 1) % uint64(len(d.slots)))
	s := &d.slots[idx]
	if prev := s.mask.Load(); prev != 0 {
		d.policy.Logger.WithFields(logrus.Fields{
			"slot":        idx,
			"unread_mask": prev,
		}).Debug("distributor: ring wrapped over an unread clause")
	}
	s.clause.Store(c)
	mask := d.allMask
	if from >= 0 && from < 64 {
		mask &^= uint64(1) << uint(from)
	}
	s.mask.Store(mask)
	return true
}

// Receive appends every clause still owed to solver id onto dst and
// returns the extended slice, clearing solver id's bit on each slot it
// reads. Once a slot's mask reaches zero every target has read it; the
// slot's storage is simply left in place until the next Publish
// overwrites it; no separate free-list bookkeeping is needed.
func (d *Distributor) Receive(id int, dst []*Clause) []*Clause {
	if id < 0 || id >= 64 {
		return dst
	}
	bit := uint64(1) << uint(id)
	for i := range d.slots {
		s := &d.slots[i]
		for {
			m := s.mask.Load()
			if m&bit == 0 {
				break
			}
			if s.mask.CompareAndSwap(m, m&^bit) {
				if c := s.clause.Load(); c != nil {
					dst = append(dst, c)
				}
				break
			}
		}
	}
	return dst
}

// RingSize returns the number of slots in the ring.
func (d *Distributor) RingSize() int { return len(d.slots) }
