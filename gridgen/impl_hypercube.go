// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// impl_hypercube.go: HyperCube, HyperRectangle and SubdividedHyperRectangle.
//
// Contract:
//   - dim 1, 2 or 3; reps has one entry per dimension, each >= 1.
//   - p1 and p2 may be given in any order; their coordinates must differ
//     along every one of the first dim axes.
//   - Vertices are numbered lexicographically (x fastest), cells likewise.
//   - WithJitter moves only vertices strictly inside the box.
//
// Complexity: O(prod(reps[a]+1)) vertices and O(prod(reps[a])) cells.

package gridgen

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/tria"
)

const (
	methodHyperCube      = "HyperCube"
	methodHyperRectangle = "HyperRectangle"
	methodSubdivided     = "SubdividedHyperRectangle"
	minReps              = 1
)

// HyperCube builds [left,right]^dim as a single cell.
func HyperCube(left, right float64) Constructor {
	return func(tr *tria.Triangulation, cfg genConfig) error {
		if left >= right {
			return genErrorf(methodHyperCube, "left=%g right=%g: %w", left, right, ErrBadExtent)
		}
		p1, p2 := cubeCorners(tr.Dim(), left, right)

		return buildBox(methodHyperCube, tr, cfg, ones(tr.Dim()), p1, p2)
	}
}

// HyperRectangle builds the axis-aligned box spanned by p1 and p2 as a
// single cell.
func HyperRectangle(p1, p2 r3.Vec) Constructor {
	return func(tr *tria.Triangulation, cfg genConfig) error {
		return buildBox(methodHyperRectangle, tr, cfg, ones(tr.Dim()), p1, p2)
	}
}

// SubdividedHyperRectangle builds the box spanned by p1 and p2 cut into
// reps[a] cells along axis a.
func SubdividedHyperRectangle(reps []int, p1, p2 r3.Vec) Constructor {
	reps = append([]int(nil), reps...)
	return func(tr *tria.Triangulation, cfg genConfig) error {
		if len(reps) != tr.Dim() {
			return genErrorf(methodSubdivided, "%d repetition counts for dim %d: %w", len(reps), tr.Dim(), ErrUnsupportedDim)
		}
		for a, r := range reps {
			if r < minReps {
				return genErrorf(methodSubdivided, "reps[%d]=%d (must be >= %d): %w", a, r, minReps, ErrTooFewCells)
			}
		}

		return buildBox(methodSubdivided, tr, cfg, reps, p1, p2)
	}
}

func buildBox(method string, tr *tria.Triangulation, cfg genConfig, reps []int, p1, p2 r3.Vec) error {
	b, err := newBox(method, tr.Dim(), p1, p2)
	if err != nil {
		return err
	}
	verts, cells := b.lattice(reps)
	b.jitter(verts, reps, cfg)

	return create(method, tr, cfg, b, verts, cells)
}

func cubeCorners(dim int, left, right float64) (r3.Vec, r3.Vec) {
	var p1, p2 r3.Vec
	for a := 0; a < dim; a++ {
		setCoord(&p1, a, left)
		setCoord(&p2, a, right)
	}

	return p1, p2
}

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
