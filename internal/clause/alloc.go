package clause

import (
	"math/bits"
	"sync"

	"github.com/go-clasp/clasp/internal/litvar"
)

// nPools slice pools of growing capacity buckets, adapted from the
// teacher's clauses_alloc.go so that clause churn during conflict
// learning and ReduceDB doesn't pressure the garbage collector with
// short-lived literal slices.
const nPools = 6

var pools [nPools]sync.Pool

func init() {
	for i := range pools {
		capa := 1 << (i + 1)
		pools[i].New = func() any {
			s := make([]litvar.Literal, 0, capa)
			return &s
		}
	}
}

func poolIndex(capa int) int {
	if capa <= 2 {
		return 0
	}
	idx := bits.Len(uint(capa-1)) - 1
	if idx >= nPools {
		return nPools - 1
	}
	return idx
}

func allocClause(lits []litvar.Literal, lifetime Lifetime) *Clause {
	idx := poolIndex(len(lits))
	ref := pools[idx].Get().(*[]litvar.Literal)
	buf := (*ref)[:0]
	if cap(buf) < len(lits) {
		buf = make([]litvar.Literal, 0, len(lits))
	}
	buf = append(buf, lits...)
	return &Clause{literals: buf, lifetime: lifetime, prevPos: 2}
}

// freeClause returns c's backing storage to its pool. Called from
// Delete; c.literals must not be used afterwards.
func freeClause(c *Clause) {
	if c.literals == nil {
		return
	}
	idx := poolIndex(cap(c.literals))
	reset := c.literals[:0]
	pools[idx].Put(&reset)
}
