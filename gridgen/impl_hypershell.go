// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// impl_hypershell.go: HyperShell, a 2D annulus.
//
// Contract:
//   - dim 2, 0 < inner < outer, n >= 3 cells around the ring.
//   - Cell i has vertices (inner_i, outer_i, inner_{i+1}, outer_{i+1}) so
//     the reference x direction points outward and y runs counterclockwise.
//   - Every object is bound to one manifold id (the configured one, or 0
//     when the configuration keeps the flat default) and a spherical
//     manifold about center is registered under that id.
//   - With WithColorize the inner circle gets boundary id 0 and the outer
//     circle id 1.

package gridgen

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/manifold"
	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

const (
	methodHyperShell = "HyperShell"
	minShellCells    = 3

	shellManifoldID = types.ManifoldID(0)
	innerBoundaryID = types.BoundaryID(0)
	outerBoundaryID = types.BoundaryID(1)
)

// HyperShell builds the annulus inner <= |x-center| <= outer from n cells.
func HyperShell(center r3.Vec, inner, outer float64, n int) Constructor {
	return func(tr *tria.Triangulation, cfg genConfig) error {
		if tr.Dim() != 2 {
			return genErrorf(methodHyperShell, "dim=%d: %w", tr.Dim(), ErrUnsupportedDim)
		}
		if !(inner > 0 && inner < outer) {
			return genErrorf(methodHyperShell, "inner=%g outer=%g: %w", inner, outer, ErrBadRadius)
		}
		if n < minShellCells {
			return genErrorf(methodHyperShell, "n=%d (must be >= %d): %w", n, minShellCells, ErrTooFewCells)
		}

		verts := make([]r3.Vec, 2*n)
		for i := 0; i < n; i++ {
			phi := 2 * math.Pi * float64(i) / float64(n)
			dir := r3.Vec{X: math.Cos(phi), Y: math.Sin(phi)}
			verts[i] = r3.Add(center, r3.Scale(inner, dir))
			verts[n+i] = r3.Add(center, r3.Scale(outer, dir))
		}
		cells := make([]tria.CellData, n)
		for i := range cells {
			next := (i + 1) % n
			cells[i] = tria.NewCellData(i, n+i, next, n+next)
		}

		m := cfg.manifold
		if m.IsFlat() {
			m = shellManifoldID
		}
		cfg.manifold = m
		tagCells(cells, cfg)
		if err := tr.Create(verts, cells, tria.SubCellSet{}); err != nil {
			return genErrorf(methodHyperShell, "%w", err)
		}
		if err := tr.SetAllManifoldIDs(m); err != nil {
			return genErrorf(methodHyperShell, "%w", err)
		}
		if err := tr.SetManifold(m, manifold.NewSpherical(center)); err != nil {
			return genErrorf(methodHyperShell, "%w", err)
		}
		if !cfg.colorize {
			return nil
		}
		for c := range tr.Cells() {
			if err := c.Face(0).SetBoundaryID(innerBoundaryID); err != nil {
				return genErrorf(methodHyperShell, "%w", err)
			}
			if err := c.Face(1).SetBoundaryID(outerBoundaryID); err != nil {
				return genErrorf(methodHyperShell, "%w", err)
			}
		}

		return nil
	}
}
