// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"github.com/google/btree"
	"github.com/rollupstate/restore/common"
)

// idPool tracks unused account ids. Unused ids below next are kept as
// disjoint, non-adjacent ranges ordered by their lower bound, so the smallest
// unused id is found in O(log n) and sparse id sets stay small.
type idPool struct {
	free *btree.BTreeG[idRange]
	next uint64 // all ids >= next are unused
}

// idRange covers the ids in [from, to).
type idRange struct {
	from, to uint64
}

func newIdPool() *idPool {
	return &idPool{free: btree.NewG(16, func(a, b idRange) bool {
		return a.from < b.from
	})}
}

// peek returns the smallest unused id. It may be beyond the tree's capacity.
func (p *idPool) peek() uint64 {
	if r, found := p.free.Min(); found {
		return r.from
	}
	return p.next
}

// take marks the given id as used.
func (p *idPool) take(id common.AccountId) {
	x := uint64(id)
	if x >= p.next {
		if x > p.next {
			p.free.ReplaceOrInsert(idRange{p.next, x})
		}
		p.next = x + 1
		return
	}
	r, found := p.rangeAt(x)
	if !found || x >= r.to {
		return
	}
	p.free.Delete(r)
	if r.from < x {
		p.free.ReplaceOrInsert(idRange{r.from, x})
	}
	if x+1 < r.to {
		p.free.ReplaceOrInsert(idRange{x + 1, r.to})
	}
}

// release marks the given id as unused.
func (p *idPool) release(id common.AccountId) {
	x := uint64(id)
	if x >= p.next {
		return
	}
	res := idRange{x, x + 1}
	if prev, found := p.rangeAt(x); found {
		if x < prev.to {
			return
		}
		if prev.to == x {
			p.free.Delete(prev)
			res.from = prev.from
		}
	}
	if succ, found := p.free.Delete(idRange{from: x + 1}); found {
		res.to = succ.to
	}
	if res.to == p.next {
		p.next = res.from
		return
	}
	p.free.ReplaceOrInsert(res)
}

// rangeAt returns the free range with the largest lower bound not above x.
func (p *idPool) rangeAt(x uint64) (idRange, bool) {
	var res idRange
	found := false
	p.free.DescendLessOrEqual(idRange{from: x}, func(r idRange) bool {
		res, found = r, true
		return false
	})
	return res, found
}

// numRanges returns the number of free ranges below the high-water mark.
func (p *idPool) numRanges() int {
	return p.free.Len()
}
