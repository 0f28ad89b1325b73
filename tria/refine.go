// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// refine.go: isotropic refinement of flagged cells.
//
// Refining an object of dimension s first refines its facets (recursively),
// then fills the 3^s refinement lattice: corners are the object's vertices,
// centers of proper sub-objects are taken from their (already refined)
// children, and the object's own center is a new vertex placed by the
// object's manifold. Children are cut from the lattice; facets of children
// that are not children of the object's facets are created as parentless
// interior objects on the child level.

package tria

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/geometry"
	"github.com/katalvlaran/lvmesh/refcell"
	"github.com/katalvlaran/lvmesh/types"
)

// refineObject gives object r of dimension sd its 2^sd children.
func (t *Triangulation) refineObject(sd int, r ref) {
	s := t.s
	ol := s.objs[sd][r.level]
	if ol.children[r.index] >= 0 {
		return
	}
	verts := append([]int(nil), ol.verts(r.index)...)
	if sd >= 2 {
		for _, fr := range append([]ref(nil), ol.faceRefs(r.index)...) {
			t.refineObject(sd-1, fr)
		}
	}

	bnd, man := ol.boundary[r.index], ol.manifold[r.index]
	interior := bnd
	if sd == t.dim {
		interior = types.InternalFaceBoundaryID
	}

	lattice := refcell.Lattice(sd)
	lat := make([]int, len(lattice))
	for i, lp := range lattice {
		switch k := len(lp.Free); {
		case k == 0:
			lat[i] = verts[lp.Corners[0]]
		case k < sd:
			sub, ok := s.lookup(k, pick(verts, lp.Corners))
			if !ok {
				// facets are refined first, so every proper sub-object is registered
				panic(fmt.Sprintf("tria: refine %d-object %v: no %d-object on vertices %v",
					sd, r, k, pick(verts, lp.Corners)))
			}
			lat[i] = s.centerVertex(k, sub)
		default:
			lat[i] = t.newCenter(sd, r, verts, man)
		}
	}

	nc := refcell.NChildren(sd)
	first := s.allocate(sd, r.level+1, nc, true)
	ol.children[r.index] = first
	child := s.objs[sd][r.level+1]
	for c := 0; c < nc; c++ {
		cr := ref{r.level + 1, first + c}
		cv := pick(lat, refcell.ChildLattice(sd)[c])
		s.place(sd, cr, cv, r.index, bnd, man)
		if sd >= 2 {
			for f := 0; f < refcell.NFaces(sd); f++ {
				fr := s.ensure(sd-1, pick(cv, refcell.FaceVertices(sd, f)), r.level+1, interior, man)
				child.faces[cr.index*child.nf+f] = fr
			}
		}
		if sd < t.dim {
			s.register(sd, cr)
		} else {
			s.cells[cr.level].material[cr.index] = s.cells[r.level].material[r.index]
		}
	}
}

// newCenter places the center vertex of object r through its manifold.
func (t *Triangulation) newCenter(sd int, r ref, verts []int, man types.ManifoldID) int {
	pts := t.s.points(verts)
	w := make([]float64, len(pts))
	for i := range w {
		w[i] = 1 / float64(len(pts))
	}
	p := t.resolveManifold(man).NewPoint(pts, w)

	return t.s.addVertex(p)
}

// executeRefinement refines every flagged active cell, lowest level first.
// It returns the refined cells and the coarse ancestors of distorted children.
func (t *Triangulation) executeRefinement() ([]ref, []CellID) {
	var refined []ref
	nLevels := t.s.nLevels(t.dim)
	for lvl := 0; lvl < nLevels; lvl++ {
		cl := t.s.cells[lvl]
		ol := t.s.objs[t.dim][lvl]
		for i := 0; i < ol.size(); i++ {
			if !ol.active(i) || !cl.refine[i] {
				continue
			}
			cl.refine[i] = false
			cl.coarsen[i] = false
			t.refineObject(t.dim, ref{lvl, i})
			refined = append(refined, ref{lvl, i})
		}
	}

	var distorted []CellID
	if t.checkDistortion && t.dim == t.spacedim {
		seen := make(map[CellID]bool)
		for _, r := range refined {
			if !t.childrenDistorted(r) {
				continue
			}
			root := t.coarseAncestor(r)
			if !seen[root] {
				seen[root] = true
				distorted = append(distorted, root)
			}
		}
	}

	return refined, distorted
}

func (t *Triangulation) childrenDistorted(r ref) bool {
	first := t.s.objs[t.dim][r.level].children[r.index]
	next := t.s.objs[t.dim][r.level+1]
	for c := 0; c < refcell.NChildren(t.dim); c++ {
		if geometry.IsDistorted(t.dim, t.spacedim, t.s.points(next.verts(first+c))) {
			return true
		}
	}

	return false
}

func (t *Triangulation) coarseAncestor(r ref) CellID {
	for r.level > 0 {
		r = ref{r.level - 1, t.s.objs[t.dim][r.level].parent[r.index]}
	}

	return CellID{Level: 0, Index: r.index}
}
