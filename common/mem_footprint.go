// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MemoryFootprint describes the memory consumption of a data structure as a
// tree of named components.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
}

// NewMemoryFootprint creates a footprint of the given number of bytes, excluding subcomponents.
func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: map[string]*MemoryFootprint{},
	}
}

// AddChild attaches the footprint of a subcomponent. Nil footprints are ignored.
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	if child != nil {
		mf.children[name] = child
	}
}

// Value returns the bytes consumed by the structure itself.
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total returns the bytes consumed by the structure and all its subcomponents.
// Components reachable through multiple paths are counted once.
func (mf *MemoryFootprint) Total() uintptr {
	return mf.total(map[*MemoryFootprint]struct{}{})
}

func (mf *MemoryFootprint) total(seen map[*MemoryFootprint]struct{}) uintptr {
	if _, found := seen[mf]; found {
		return 0
	}
	seen[mf] = struct{}{}
	res := mf.value
	for _, child := range mf.children {
		res += child.total(seen)
	}
	return res
}

// String lists the totals of all components, children before their parent
// and siblings in name order.
func (mf *MemoryFootprint) String() string {
	var sb strings.Builder
	mf.print(&sb, ".", map[*MemoryFootprint]struct{}{})
	return sb.String()
}

func (mf *MemoryFootprint) print(sb *strings.Builder, path string, visiting map[*MemoryFootprint]struct{}) {
	visiting[mf] = struct{}{}
	names := maps.Keys(mf.children)
	slices.Sort(names)
	for _, name := range names {
		child := mf.children[name]
		if _, found := visiting[child]; found {
			continue
		}
		child.print(sb, path+"/"+name, visiting)
	}
	delete(visiting, mf)
	fmt.Fprintf(sb, "%s %s\n", formatBytes(mf.Total()), path)
}

func formatBytes(bytes uintptr) string {
	const prefixes = " KMGTPE"
	value := float64(bytes)
	exp := 0
	for value >= 1024 && exp+1 < len(prefixes) {
		value /= 1024
		exp++
	}
	return fmt.Sprintf("%6.1f %cB", value, prefixes[exp])
}
