// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// prepare.go: flag regularization and smoothing.
//
// Order of work:
//  1. Flags on non-active cells are dropped.
//  2. Refined islands are flagged for coarsening (once, when enabled).
//  3. Until nothing changes:
//     a. coarsen flags that would break one-irregularity, sibling
//        atomicity or the enabled coarsening rules are cleared;
//     b. coarser face neighbors (and, in 3D, coarser edge neighbors) of
//        cells flagged for refinement are flagged as well;
//     c. the enabled refinement smoothing rules add refine flags.
//
// Refine flags are only ever added and coarsen flags only ever removed
// inside the loop, so it terminates. Smoothing bits apply for dim >= 2.

package tria

import (
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/refcell"
)

// PrepareCoarseningAndRefinement adjusts the flags so that executing them
// keeps the mesh one-irregular and honors the smoothing policy. It reports
// whether any flag changed.
func (t *Triangulation) PrepareCoarseningAndRefinement() (bool, error) {
	release, err := t.guard("PrepareCoarseningAndRefinement")
	if err != nil {
		return false, err
	}
	defer release()

	return t.prepare(), nil
}

func (t *Triangulation) prepare() bool {
	before := t.flagState()
	t.dropInactiveFlags()
	if t.dim >= 2 && t.smoothing&(EliminateRefinedInnerIslands|EliminateRefinedBoundaryIslands) != 0 {
		t.eliminateRefinedIslands()
	}
	for pass := 1; ; pass++ {
		changed := t.fixCoarsenFlags()
		if t.regularize() {
			changed = true
		}
		if t.dim >= 2 && t.smoothRefinement() {
			changed = true
		}
		t.log.Debug("prepare pass", zap.Int("pass", pass), zap.Bool("flags_changed", changed))
		if !changed {
			break
		}
	}

	return !slices.Equal(before, t.flagState())
}

func (t *Triangulation) flagState() []bool {
	var out []bool
	for _, cl := range t.s.cells {
		out = append(out, cl.refine...)
		out = append(out, cl.coarsen...)
	}

	return out
}

func (t *Triangulation) dropInactiveFlags() {
	for lvl, ol := range t.s.objs[t.dim] {
		cl := t.s.cells[lvl]
		for i := 0; i < ol.size(); i++ {
			if !ol.active(i) {
				cl.refine[i] = false
				cl.coarsen[i] = false
			}
		}
	}
}

// forActive calls fn for every active cell.
func (t *Triangulation) forActive(fn func(r ref, cl *cellLevel)) {
	for lvl, ol := range t.s.objs[t.dim] {
		cl := t.s.cells[lvl]
		for i := 0; i < ol.size(); i++ {
			if ol.active(i) {
				fn(ref{lvl, i}, cl)
			}
		}
	}
}

// forParents calls fn for every used cell that has children.
func (t *Triangulation) forParents(fn func(p ref)) {
	for lvl, ol := range t.s.objs[t.dim] {
		for i := 0; i < ol.size(); i++ {
			if ol.used[i] && ol.children[i] >= 0 {
				fn(ref{lvl, i})
			}
		}
	}
}

func (t *Triangulation) neighborRef(r ref, f int) (ref, bool) {
	n := t.s.cells[r.level].neighborRefs(r.index)[f]

	return n, n.valid()
}

func (t *Triangulation) hasChildren(r ref) bool { return t.s.objs[t.dim][r.level].children[r.index] >= 0 }

func (t *Triangulation) refineFlag(r ref) bool { return t.s.cells[r.level].refine[r.index] }

func (t *Triangulation) coarsenFlag(r ref) bool { return t.s.cells[r.level].coarsen[r.index] }

// flagRefine sets the refine flag of an active cell and drops its coarsen
// flag. It reports whether anything changed.
func (t *Triangulation) flagRefine(r ref) bool {
	cl := t.s.cells[r.level]
	if cl.refine[r.index] {
		return false
	}
	cl.refine[r.index] = true
	cl.coarsen[r.index] = false

	return true
}

func (t *Triangulation) children(p ref) []ref {
	first := t.s.objs[t.dim][p.level].children[p.index]
	out := make([]ref, refcell.NChildren(t.dim))
	for c := range out {
		out[c] = ref{p.level + 1, first + c}
	}

	return out
}

func (t *Triangulation) allChildrenActive(p ref) bool {
	for _, c := range t.children(p) {
		if t.hasChildren(c) {
			return false
		}
	}

	return true
}

// willBeRefined reports whether n, a neighbor on the same level as some
// cell, has or will get children that survive this cycle.
func (t *Triangulation) willBeRefined(n ref) bool {
	if t.hasChildren(n) {
		return !t.childrenCoarsenFlagged(n)
	}

	return t.refineFlag(n)
}

func (t *Triangulation) fixCoarsenFlags() bool {
	changed := false
	for {
		pass := false
		var users map[ref][]ref
		if t.dim == 3 {
			users = t.lineUsers(false)
		}
		t.forActive(func(r ref, cl *cellLevel) {
			if !cl.coarsen[r.index] || t.keepCoarsenFlag(r, users) {
				return
			}
			cl.coarsen[r.index] = false
			pass = true
		})
		t.forParents(func(p ref) {
			kids := t.children(p)
			flagged := 0
			for _, c := range kids {
				if !t.hasChildren(c) && t.coarsenFlag(c) {
					flagged++
				}
			}
			if flagged == 0 {
				return
			}
			ok := flagged == len(kids)
			if ok && t.dim >= 2 && t.smoothing.Has(PatchLevel1) {
				ok = t.patchLevel1Coarsenable(p)
			}
			if ok && t.dim >= 2 && t.smoothing.Has(DoNotProduceUnrefinedIslands) {
				ok = !t.wouldBeUnrefinedIsland(p)
			}
			if ok {
				return
			}
			for _, c := range kids {
				t.s.cells[c.level].coarsen[c.index] = false
			}
			pass = true
		})
		if !pass {
			return changed
		}
		changed = true
	}
}

func (t *Triangulation) keepCoarsenFlag(r ref, users map[ref][]ref) bool {
	switch {
	case r.level == 0:
		return false
	case t.dim >= 2 && r.level == 1 && t.smoothing.Has(CoarsestLevel1):
		return false
	case t.refineFlag(r):
		return false
	}
	for f := 0; f < refcell.NFaces(t.dim); f++ {
		n, ok := t.neighborRef(r, f)
		if !ok || n.level != r.level {
			continue
		}
		if t.hasChildren(n) {
			if !t.childrenCoarsenFlagged(n) {
				return false
			}
		} else if t.refineFlag(n) {
			return false
		}
	}
	if t.dim == 3 {
		// Finer cells around an edge must go away together with this cell.
		for _, l := range t.cellLines(r) {
			first := t.s.objs[1][l.level].children[l.index]
			if first < 0 {
				continue
			}
			for c := 0; c < 2; c++ {
				for _, u := range users[ref{l.level + 1, first + c}] {
					if u.level > r.level && (t.hasChildren(u) || !t.coarsenFlag(u)) {
						return false
					}
				}
			}
		}
	}

	return true
}

// patchLevel1Coarsenable reports whether removing p's children keeps the
// mesh a union of complete patches: every child of p's parent must lose its
// children too.
func (t *Triangulation) patchLevel1Coarsenable(p ref) bool {
	gp := t.s.objs[t.dim][p.level].parent[p.index]
	if p.level == 0 || gp < 0 {
		return false
	}
	for _, s := range t.children(ref{p.level - 1, gp}) {
		if !t.childrenCoarsenFlagged(s) {
			return false
		}
	}

	return true
}

func (t *Triangulation) wouldBeUnrefinedIsland(p ref) bool {
	total, refined := 0, 0
	for f := 0; f < refcell.NFaces(t.dim); f++ {
		n, ok := t.neighborRef(p, f)
		if !ok {
			continue
		}
		total++
		if n.level == p.level && t.willBeRefined(n) {
			refined++
		}
	}

	return 2*refined > total
}

func (t *Triangulation) eliminateRefinedIslands() {
	t.forParents(func(p ref) {
		if !t.allChildrenActive(p) {
			return
		}
		kids := t.children(p)
		for _, c := range kids {
			if t.refineFlag(c) {
				return
			}
		}
		total, refined, boundary := 0, 0, false
		for f := 0; f < refcell.NFaces(t.dim); f++ {
			n, ok := t.neighborRef(p, f)
			if !ok {
				boundary = true
				continue
			}
			total++
			if n.level == p.level && (t.hasChildren(n) || t.refineFlag(n)) {
				refined++
			}
		}
		if total == 0 || 2*refined >= total {
			return
		}
		if boundary && !t.smoothing.Has(EliminateRefinedBoundaryIslands) {
			return
		}
		if !boundary && !t.smoothing.Has(EliminateRefinedInnerIslands) {
			return
		}
		for _, c := range kids {
			t.s.cells[c.level].coarsen[c.index] = true
		}
	})
}

// regularize flags coarser face neighbors (and coarser edge neighbors in 3D)
// of cells flagged for refinement.
func (t *Triangulation) regularize() bool {
	changed := false
	for {
		pass := false
		for lvl := t.s.nLevels(t.dim) - 1; lvl >= 0; lvl-- {
			ol := t.s.objs[t.dim][lvl]
			cl := t.s.cells[lvl]
			for i := 0; i < ol.size(); i++ {
				if !ol.active(i) || !cl.refine[i] {
					continue
				}
				for f := 0; f < refcell.NFaces(t.dim); f++ {
					n, ok := t.neighborRef(ref{lvl, i}, f)
					if ok && n.level < lvl && t.flagRefine(n) {
						pass = true
					}
				}
			}
		}
		if t.dim == 3 && t.edgeClosure() {
			pass = true
		}
		if !pass {
			return changed
		}
		changed = true
	}
}

func (t *Triangulation) edgeClosure() bool {
	users := t.lineUsers(true)
	changed := false
	t.forActive(func(r ref, cl *cellLevel) {
		if !cl.refine[r.index] {
			return
		}
		for _, l := range t.cellLines(r) {
			p := t.s.objs[1][l.level].parent[l.index]
			if p < 0 {
				continue
			}
			for _, u := range users[ref{l.level - 1, p}] {
				if u.level < r.level && t.flagRefine(u) {
					changed = true
				}
			}
		}
	})

	return changed
}

// cellLines returns the twelve edges of a hexahedral cell.
func (t *Triangulation) cellLines(r ref) []ref {
	seen := make([]ref, 0, 12)
	quads := t.s.objs[2]
	for _, q := range t.s.objs[3][r.level].faceRefs(r.index) {
		for _, l := range quads[q.level].faceRefs(q.index) {
			if !slices.Contains(seen, l) {
				seen = append(seen, l)
			}
		}
	}

	return seen
}

// lineUsers maps every edge to the cells having it as an edge.
func (t *Triangulation) lineUsers(activeOnly bool) map[ref][]ref {
	users := make(map[ref][]ref)
	for lvl, ol := range t.s.objs[t.dim] {
		for i := 0; i < ol.size(); i++ {
			if !ol.used[i] || (activeOnly && ol.children[i] >= 0) {
				continue
			}
			r := ref{lvl, i}
			for _, l := range t.cellLines(r) {
				users[l] = append(users[l], r)
			}
		}
	}

	return users
}

func (t *Triangulation) smoothRefinement() bool {
	changed := false
	if t.smoothing.Has(LimitLevelDifferenceAtVertices) && t.limitLevelDifference() {
		changed = true
	}
	if t.smoothing.Has(EliminateUnrefinedIslands) && t.eliminateUnrefinedIslands() {
		changed = true
	}
	if t.smoothing.Has(PatchLevel1) && t.patchLevel1Refine() {
		changed = true
	}

	return changed
}

func (t *Triangulation) effectiveLevel(r ref) int {
	switch {
	case t.refineFlag(r):
		return r.level + 1
	case t.coarsenFlag(r):
		return r.level - 1
	default:
		return r.level
	}
}

// limitLevelDifference makes the effective levels of cells sharing a vertex
// differ by at most one.
func (t *Triangulation) limitLevelDifference() bool {
	changed := false
	for {
		top := make([]int, len(t.s.vertices))
		for i := range top {
			top[i] = -1
		}
		t.forActive(func(r ref, _ *cellLevel) {
			e := t.effectiveLevel(r)
			for _, v := range t.s.objs[t.dim][r.level].verts(r.index) {
				top[v] = max(top[v], e)
			}
		})
		pass := false
		t.forActive(func(r ref, cl *cellLevel) {
			e := t.effectiveLevel(r)
			for _, v := range t.s.objs[t.dim][r.level].verts(r.index) {
				if top[v] <= e+1 {
					continue
				}
				if cl.coarsen[r.index] {
					cl.coarsen[r.index] = false
				} else {
					t.flagRefine(r)
				}
				pass = true
				return
			}
		})
		if !pass {
			return changed
		}
		changed = true
	}
}

// eliminateUnrefinedIslands refines cells most of whose neighbors are or
// will be refined.
func (t *Triangulation) eliminateUnrefinedIslands() bool {
	changed := false
	t.forActive(func(r ref, cl *cellLevel) {
		if cl.refine[r.index] {
			return
		}
		total, refined := 0, 0
		for f := 0; f < refcell.NFaces(t.dim); f++ {
			n, ok := t.neighborRef(r, f)
			if !ok {
				continue
			}
			total++
			if n.level == r.level && (t.hasChildren(n) || t.refineFlag(n)) {
				refined++
			}
		}
		if 2*refined > total && t.flagRefine(r) {
			changed = true
		}
	})

	return changed
}

// patchLevel1Refine refines the remaining siblings of any cell that is or
// will be refined.
func (t *Triangulation) patchLevel1Refine() bool {
	changed := false
	t.forParents(func(p ref) {
		kids := t.children(p)
		hit := false
		for _, c := range kids {
			if t.hasChildren(c) || t.refineFlag(c) {
				hit = true
				break
			}
		}
		if !hit {
			return
		}
		for _, c := range kids {
			if !t.hasChildren(c) && t.flagRefine(c) {
				changed = true
			}
		}
	})

	return changed
}
