// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// coarsen.go: removal of flagged sibling groups and garbage collection of
// the faces, edges and vertices no longer referenced by any cell.

package tria

import (
	"github.com/katalvlaran/lvmesh/refcell"
	"github.com/katalvlaran/lvmesh/types"
)

// coarsenable returns the parents on level lvl whose children are all
// active and flagged for coarsening.
func (t *Triangulation) coarsenable(lvl int) []int {
	var out []int
	ol := t.s.objs[t.dim][lvl]
	for i := 0; i < ol.size(); i++ {
		if ol.used[i] && ol.children[i] >= 0 && t.childrenCoarsenFlagged(ref{lvl, i}) {
			out = append(out, i)
		}
	}

	return out
}

func (t *Triangulation) childrenCoarsenFlagged(p ref) bool {
	first := t.s.objs[t.dim][p.level].children[p.index]
	if first < 0 {
		return false
	}
	ol := t.s.objs[t.dim][p.level+1]
	cl := t.s.cells[p.level+1]
	for c := 0; c < refcell.NChildren(t.dim); c++ {
		if !ol.active(first+c) || !cl.coarsen[first+c] {
			return false
		}
	}

	return true
}

// parentsToCoarsen lists every parent whose children will be removed.
func (t *Triangulation) parentsToCoarsen() []ref {
	var out []ref
	for lvl := t.s.nLevels(t.dim) - 2; lvl >= 0; lvl-- {
		for _, i := range t.coarsenable(lvl) {
			out = append(out, ref{lvl, i})
		}
	}

	return out
}

// executeCoarsening removes the children of the given parents and collects
// unreferenced objects and vertices.
func (t *Triangulation) executeCoarsening(parents []ref) {
	if len(parents) == 0 {
		return
	}
	nc := refcell.NChildren(t.dim)
	for _, p := range parents {
		pl := t.s.objs[t.dim][p.level]
		first := pl.children[p.index]
		for c := 0; c < nc; c++ {
			t.s.retire(t.dim, ref{p.level + 1, first + c})
		}
		cl := t.s.objs[t.dim][p.level+1]
		cl.freeGroups = append(cl.freeGroups, first)
		pl.children[p.index] = types.InvalidIndex
	}
	t.sweep()
}

// sweep retires every face and edge not reachable from a used cell and
// releases every vertex not referenced by a used object.
func (t *Triangulation) sweep() {
	s := t.s
	marks := make([][][]bool, t.dim)
	for sd := 1; sd < t.dim; sd++ {
		marks[sd] = make([][]bool, s.nLevels(sd))
		for lvl, ol := range s.objs[sd] {
			marks[sd][lvl] = make([]bool, ol.size())
		}
	}
	var mark func(sd int, r ref)
	mark = func(sd int, r ref) {
		if marks[sd][r.level][r.index] {
			return
		}
		marks[sd][r.level][r.index] = true
		if sd >= 2 {
			for _, fr := range s.objs[sd][r.level].faceRefs(r.index) {
				mark(sd-1, fr)
			}
		}
	}
	if t.dim >= 2 {
		for _, ol := range s.objs[t.dim] {
			for i := 0; i < ol.size(); i++ {
				if ol.used[i] {
					for _, fr := range ol.faceRefs(i) {
						mark(t.dim-1, fr)
					}
				}
			}
		}
	}

	// Children are kept or dropped as a group.
	for sd := t.dim - 1; sd >= 1; sd-- {
		nc := refcell.NChildren(sd)
		for lvl, ol := range s.objs[sd] {
			for i := 0; i < ol.size(); i++ {
				first := ol.children[i]
				if !ol.used[i] || first < 0 {
					continue
				}
				keep := false
				for c := 0; c < nc; c++ {
					keep = keep || marks[sd][lvl+1][first+c]
				}
				if keep {
					for c := 0; c < nc; c++ {
						mark(sd, ref{lvl + 1, first + c})
					}
				}
			}
		}
	}

	// Deepest level first so that groups go before their parents.
	for sd := 1; sd < t.dim; sd++ {
		nc := refcell.NChildren(sd)
		for lvl := s.nLevels(sd) - 1; lvl >= 0; lvl-- {
			ol := s.objs[sd][lvl]
			for i := 0; i < ol.size(); i++ {
				if !ol.used[i] || marks[sd][lvl][i] {
					continue
				}
				if p := ol.parent[i]; p >= 0 {
					// retire the whole group once, from its first member
					if lvl == 0 || s.objs[sd][lvl-1].children[p] != i {
						continue
					}
					for c := 0; c < nc; c++ {
						s.retire(sd, ref{lvl, i + c})
					}
					ol.freeGroups = append(ol.freeGroups, i)
					s.objs[sd][lvl-1].children[p] = types.InvalidIndex
					continue
				}
				s.retire(sd, ref{lvl, i})
				ol.freeSingles = append(ol.freeSingles, i)
			}
		}
	}

	referenced := make([]bool, len(s.vertices))
	for sd := 1; sd <= t.dim; sd++ {
		for _, ol := range s.objs[sd] {
			for i := 0; i < ol.size(); i++ {
				if ol.used[i] {
					for _, v := range ol.verts(i) {
						referenced[v] = true
					}
				}
			}
		}
	}
	for v, u := range s.vertexUsed {
		if u && !referenced[v] {
			s.vertexUsed[v] = false
			s.freeVertices = append(s.freeVertices, v)
			delete(s.vertexBoundary, v)
			delete(s.vertexManifold, v)
		}
	}
}
