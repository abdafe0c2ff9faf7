// Package dimacs reads the DIMACS CNF input format (§6) straight into a
// solver.Solver, using the real github.com/rhartert/dimacs streaming
// parser instead of a hand-rolled scanner.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	rdimacs "github.com/rhartert/dimacs"

	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/solver"
)

var _ Target = (*solver.Solver)(nil)

// Target is the subset of solver.Solver (or a SharedContext facade over
// it) a DIMACS load needs. The package imports solver only for the
// compile-time check above that *solver.Solver satisfies it.
type Target interface {
	Grow() litvar.Var
	AddClause(lits []litvar.Literal) error
}

// Load reads a DIMACS CNF formula from r and adds its variables and
// clauses to target.
func Load(r io.Reader, target Target) error {
	return rdimacs.ReadBuilder(r, &builder{target: target})
}

// LoadFile opens filename, transparently gzip-decompressing it if
// gzipped is set, and loads its DIMACS CNF formula into target.
func LoadFile(filename string, gzipped bool, target Target) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer f.Close()

	r := io.Reader(f)
	if gzipped {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("dimacs: %q is not gzip-compressed: %w", filename, err)
		}
		defer gr.Close()
		r = gr
	}
	return Load(r, target)
}

// builder adapts a Target to rdimacs.ReadBuilder's callback interface.
type builder struct {
	target Target
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q, want \"cnf\"", problem)
	}
	for i := 0; i < nVars; i++ {
		b.target.Grow()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	lits := make([]litvar.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			lits[i] = litvar.NegativeLiteral(litvar.Var(-l - 1))
		} else {
			lits[i] = litvar.PositiveLiteral(litvar.Var(l - 1))
		}
	}
	return b.target.AddClause(lits)
}

func (b *builder) Comment(_ string) error { return nil }
