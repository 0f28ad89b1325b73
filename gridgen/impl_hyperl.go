// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// impl_hyperl.go: HyperL, the cube with its upper corner removed.
//
// Contract:
//   - dim 2 or 3, left < right.
//   - The cube [left,right]^dim is cut into 2^dim cells of half width and
//     the cell at the upper corner is dropped, leaving 2^dim-1 cells.
//   - With WithColorize the faces of the re-entrant corner get id 2*dim.

package gridgen

import (
	"github.com/katalvlaran/lvmesh/tria"
)

const methodHyperL = "HyperL"

// HyperL builds the L-shaped (2D) or Fichera-corner (3D) domain.
func HyperL(left, right float64) Constructor {
	return func(tr *tria.Triangulation, cfg genConfig) error {
		dim := tr.Dim()
		if dim < 2 {
			return genErrorf(methodHyperL, "dim=%d: %w", dim, ErrUnsupportedDim)
		}
		if left >= right {
			return genErrorf(methodHyperL, "left=%g right=%g: %w", left, right, ErrBadExtent)
		}
		p1, p2 := cubeCorners(dim, left, right)
		b, err := newBox(methodHyperL, dim, p1, p2)
		if err != nil {
			return err
		}

		reps := make([]int, dim)
		for a := range reps {
			reps[a] = 2
		}
		verts, cells := b.lattice(reps)
		// The upper corner cell is the last one in lexicographic order.
		cells = cells[:len(cells)-1]
		verts, cells, err = tria.MergeDuplicateVertices(verts, cells, b.tol())
		if err != nil {
			return genErrorf(methodHyperL, "%w", err)
		}

		return create(methodHyperL, tr, cfg, b, verts, cells)
	}
}
