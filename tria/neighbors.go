// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// neighbors.go: face-neighbor table of all used cells.
//
// The neighbor across face f of a cell on level L is the cell on level L that
// shares the identical face object. When no such cell exists the cell
// inherits its parent's neighbor across the same face (coarser, active) if
// the face lies on the parent's face, and has no neighbor otherwise.
//
// Complexity: O(cells * faces) expected time, rebuilt after every
// structural change.

package tria

import "github.com/katalvlaran/lvmesh/refcell"

// faceToken identifies face f of cell r: the face object for dim >= 2 and
// the vertex for dim == 1.
func (t *Triangulation) faceToken(r ref, f int) ref {
	ol := t.s.objs[t.dim][r.level]
	if t.dim == 1 {
		return ref{0, ol.verts(r.index)[f]}
	}

	return ol.faceRefs(r.index)[f]
}

// sharedFace returns the local face of cell n equal to face f of cell c, or -1.
func (t *Triangulation) sharedFace(n, c ref, f int) int {
	tok := t.faceToken(c, f)
	for g := 0; g < refcell.NFaces(t.dim); g++ {
		if t.faceToken(n, g) == tok {
			return g
		}
	}

	return -1
}

type faceOwner struct {
	index, face int
}

func (t *Triangulation) rebuildNeighbors() {
	nf := refcell.NFaces(t.dim)
	for lvl, ol := range t.s.objs[t.dim] {
		cl := t.s.cells[lvl]
		for i := range cl.neighbors {
			cl.neighbors[i] = noRef
		}
		open := make(map[ref]faceOwner, ol.size())
		for i := 0; i < ol.size(); i++ {
			if !ol.used[i] {
				continue
			}
			for f := 0; f < nf; f++ {
				tok := t.faceToken(ref{lvl, i}, f)
				if o, ok := open[tok]; ok {
					cl.neighbors[i*nf+f] = ref{lvl, o.index}
					cl.neighbors[o.index*nf+o.face] = ref{lvl, i}
					delete(open, tok)
					continue
				}
				open[tok] = faceOwner{index: i, face: f}
			}
		}
		if lvl == 0 {
			continue
		}
		parents := t.s.objs[t.dim][lvl-1]
		pcl := t.s.cells[lvl-1]
		for _, o := range open {
			p := ol.parent[o.index]
			if p < 0 {
				continue
			}
			child := o.index - parents.children[p]
			if refcell.FaceOnParent(child, o.face) {
				cl.neighbors[o.index*nf+o.face] = pcl.neighbors[p*nf+o.face]
			}
		}
	}
}
