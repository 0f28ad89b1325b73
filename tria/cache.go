// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// cache.go: derived data recomputed after every structural change:
// trailing empty levels are dropped, the neighbor table is rebuilt, active
// cells are numbered densely and per-level counts are refreshed.

package tria

import "github.com/katalvlaran/lvmesh/refcell"

type numberCache struct {
	used, active           [refcell.MaxDim + 1][]int
	usedTotal, activeTotal [refcell.MaxDim + 1]int
	usedVertices           int
}

func (t *Triangulation) recompute() {
	t.trimLevels()
	t.rebuildNeighbors()
	t.countAndIndex()
}

func (t *Triangulation) trimLevels() {
	for sd := 1; sd <= t.dim; sd++ {
		levels := t.s.objs[sd]
		for len(levels) > 0 {
			last := levels[len(levels)-1]
			live := false
			for _, u := range last.used {
				if u {
					live = true
					break
				}
			}
			if live {
				break
			}
			levels = levels[:len(levels)-1]
		}
		t.s.objs[sd] = levels
		if sd == t.dim {
			t.s.cells = t.s.cells[:len(levels)]
		}
	}
}

func (t *Triangulation) countAndIndex() {
	var nc numberCache
	next := 0
	for sd := 1; sd <= t.dim; sd++ {
		nc.used[sd] = make([]int, len(t.s.objs[sd]))
		nc.active[sd] = make([]int, len(t.s.objs[sd]))
		for lvl, ol := range t.s.objs[sd] {
			for i := 0; i < ol.size(); i++ {
				if !ol.used[i] {
					continue
				}
				nc.used[sd][lvl]++
				if ol.children[i] >= 0 {
					if sd == t.dim {
						t.s.cells[lvl].activeIndex[i] = -1
					}
					continue
				}
				nc.active[sd][lvl]++
				if sd == t.dim {
					t.s.cells[lvl].activeIndex[i] = next
					next++
				}
			}
			nc.usedTotal[sd] += nc.used[sd][lvl]
			nc.activeTotal[sd] += nc.active[sd][lvl]
		}
	}
	for _, u := range t.s.vertexUsed {
		if u {
			nc.usedVertices++
		}
	}
	t.cache = nc
}
