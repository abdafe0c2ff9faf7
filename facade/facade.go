// Package facade implements §5's concurrency and resource model on top
// of internal/context's Attach mechanism: a bounded pool of Solvers,
// one per OS-level goroutine, searching the same (possibly shared)
// problem in parallel, the first model or refutation winning and
// interrupting the rest. Worker lifetime is managed with
// golang.org/x/sync/errgroup, the same pattern the rest of the example
// pack uses for bounded fan-out over a fixed worker count.
package facade

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	sharedctx "github.com/go-clasp/clasp/internal/context"
	"github.com/go-clasp/clasp/internal/distributor"
	"github.com/go-clasp/clasp/internal/enumerator"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/postprop"
	"github.com/go-clasp/clasp/internal/propagator"
	"github.com/go-clasp/clasp/internal/solver"
)

// distRingSize is the distributor ring's slot count per run. A larger
// ring tolerates a longer gap between a worker publishing a learnt
// clause and its peers polling for it before the ring wraps and drops
// the unread entry; §5 names no fixed size, so this picks a modest
// constant in line with clasp's own small default distributor buffer.
const distRingSize = 256

// Status is the outcome of a parallel solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusSat
	StatusUnsat
)

// Result is what RunParallel returns: which worker won (if any) and,
// for a Sat result, its model.
type Result struct {
	Status   Status
	Model    []bool
	WinnerID int
}

// conflictSlice bounds how many conflicts a single Solve call may spend
// before a worker polls the interrupt flag again (§5: "interrupt()
// atomic/poll-based" — there is no way to preempt a Solver mid-conflict,
// only between search rounds).
const conflictSlice = 5000

// Facade drives a SharedContext's attached Solvers as a single
// front-end solve call (§6's solve/solveAsync surface).
type Facade struct {
	ctx         *sharedctx.SharedContext
	interrupted atomic.Bool
	newExt      func() propagator.Extension
}

// New returns a Facade driving ctx's solvers.
func New(ctx *sharedctx.SharedContext) *Facade {
	return &Facade{ctx: ctx}
}

// Interrupt asks every in-flight RunParallel call to stop at its next
// poll point. Safe to call from any goroutine, any number of times.
func (f *Facade) Interrupt() { f.interrupted.Store(true) }

// RegisterExtension arranges for every Solver this Facade attaches
// (one per RunParallel worker, or RunEnumerate's single worker) to run
// its own instance of an Extension produced by newExt at
// postprop.ClassGeneral, the way clingo's embedding API lets a caller
// add a theory propagator before solving starts (§4.6). newExt is
// called once per attached Solver rather than sharing one Extension,
// since an Extension's Init/Undo state is tied to a single Solver's
// trail.
func (f *Facade) RegisterExtension(newExt func() propagator.Extension) {
	f.newExt = newExt
}

func (f *Facade) attach() *solver.Solver {
	w := f.ctx.Attach()
	if f.newExt != nil {
		w.RegisterPostPropagator(propagator.New(f.newExt(), postprop.ClassGeneral))
	}
	return w
}

// RunParallel attaches n Solvers to the shared context and searches for
// a model (or refutation) under assumptions concurrently, returning as
// soon as the first worker reaches a definite answer. ctx cancellation
// interrupts every worker and returns its error. There is deliberately
// no cross-solver happens-before beyond the single atomic CAS that
// records the winner (§5): whichever worker's CAS lands first owns the
// result, and its identity is the only synchronization the rest of the
// pool observes before stopping.
func (f *Facade) RunParallel(ctx context.Context, n int, assumptions []litvar.Literal) (Result, error) {
	f.interrupted.Store(false)
	g, gctx := errgroup.WithContext(ctx)

	var winner atomic.Int32
	winner.Store(-1)
	results := make([]Result, n)

	// Every solver in the pool shares one learnt-clause ring (§4.10):
	// whatever a worker derives is offered to the rest, and each worker
	// drains what's owed to it once per conflict slice.
	dist := distributor.New(distRingSize, n, distributor.Policy{MaxLBD: 8})

	go func() {
		<-gctx.Done()
		f.Interrupt()
	}()

	for i := 0; i < n; i++ {
		id := i
		g.Go(func() error {
			w := f.attach()
			w.RegisterLearntSink(func(lits []litvar.Literal, lbd int) {
				dist.Publish(id, &distributor.Clause{Literals: lits, LBD: lbd})
			})
			for _, l := range assumptions {
				if !w.Force(l, nil) {
					if winner.CompareAndSwap(-1, int32(id)) {
						results[id] = Result{Status: StatusUnsat, WinnerID: id}
						f.Interrupt()
					}
					return nil
				}
			}
			var imported []*distributor.Clause
			for {
				if f.interrupted.Load() {
					return nil
				}
				imported = dist.Receive(id, imported[:0])
				for _, c := range imported {
					if err := w.ImportClause(c.Literals); err != nil {
						return err
					}
				}
				status, err := w.Solve(conflictSlice)
				if err != nil {
					return err
				}
				switch status {
				case litvar.LTrue:
					if winner.CompareAndSwap(-1, int32(id)) {
						results[id] = Result{Status: StatusSat, Model: w.Model(), WinnerID: id}
						f.Interrupt()
					}
					return nil
				case litvar.LFalse:
					if winner.CompareAndSwap(-1, int32(id)) {
						results[id] = Result{Status: StatusUnsat, WinnerID: id}
						f.Interrupt()
					}
					return nil
				default: // LUnknown: this slice's conflict budget ran out, poll and resume
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	id := winner.Load()
	if id < 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{Status: StatusUnknown}, nil
	}
	return results[id], nil
}

// EnumResult is what RunEnumerate returns once it stops looking for
// further models.
type EnumResult struct {
	Status   Status
	Models   [][]bool
	Brave    []bool
	Cautious []bool
	Optimal  bool
	Bound    int
}

// RunEnumerate drives a single attached Solver through §4.9's
// model-enumeration loop: each total assignment found is handed to e,
// which decides (by mode) whether to keep searching for another one.
// Unlike RunParallel's portfolio race, enumeration is inherently
// sequential — brave/cautious/optimise all accumulate state across
// successive models of the *same* search, not a race between
// independent ones, so this runs one Solver rather than a pool.
func (f *Facade) RunEnumerate(ctx context.Context, e *enumerator.Enumerator, assumptions []litvar.Literal) (EnumResult, error) {
	f.interrupted.Store(false)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			f.Interrupt()
		case <-done:
		}
	}()

	w := f.attach()
	for _, l := range assumptions {
		if !w.Force(l, nil) {
			return EnumResult{Status: StatusUnsat, Bound: -1}, nil
		}
	}

	for {
		if f.interrupted.Load() {
			return EnumResult{Status: StatusUnknown, Models: e.Models(), Brave: e.Brave(), Cautious: e.Cautious(), Optimal: e.Optimal, Bound: e.Bound()}, nil
		}
		status, err := w.Solve(conflictSlice)
		if err != nil {
			return EnumResult{}, err
		}
		switch status {
		case litvar.LTrue:
			keepGoing, err := e.Handle(w)
			if err != nil {
				return EnumResult{}, err
			}
			if !keepGoing {
				return EnumResult{Status: StatusSat, Models: e.Models(), Brave: e.Brave(), Cautious: e.Cautious(), Optimal: e.Optimal, Bound: e.Bound()}, nil
			}
		case litvar.LFalse:
			status := StatusUnsat
			if len(e.Models()) > 0 {
				status = StatusSat
			}
			return EnumResult{Status: status, Models: e.Models(), Brave: e.Brave(), Cautious: e.Cautious(), Optimal: e.Optimal, Bound: e.Bound()}, nil
		default: // LUnknown: this slice's conflict budget ran out, poll and resume
		}
	}
}
