// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// helpers.go: lattice construction and tagging shared by the recipes.

package gridgen

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

// coord returns component a of p.
func coord(p r3.Vec, a int) float64 {
	switch a {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// setCoord sets component a of p to x.
func setCoord(p *r3.Vec, a int, x float64) {
	switch a {
	case 0:
		p.X = x
	case 1:
		p.Y = x
	default:
		p.Z = x
	}
}

// box is an axis-aligned box with lo[a] < hi[a] along the first dim axes.
type box struct {
	dim    int
	lo, hi r3.Vec
}

// newBox orders p1 and p2 per axis and rejects zero widths among the
// first dim axes. Coordinates beyond dim are taken from p1.
func newBox(method string, dim int, p1, p2 r3.Vec) (box, error) {
	b := box{dim: dim, lo: p1, hi: p1}
	for a := 0; a < dim; a++ {
		x, y := coord(p1, a), coord(p2, a)
		if x == y {
			return box{}, genErrorf(method, "axis %d has zero width: %w", a, ErrBadExtent)
		}
		setCoord(&b.lo, a, math.Min(x, y))
		setCoord(&b.hi, a, math.Max(x, y))
	}

	return b, nil
}

// tol is the absolute coordinate tolerance for this box.
func (b box) tol() float64 { return relTol * r3.Norm(r3.Sub(b.hi, b.lo)) }

// lattice returns the vertices and cells of the box cut into reps[a] cells
// along axis a. Vertex (i,j,k) has index i + n0*(j + n1*k), n_a = reps[a]+1,
// and cell vertices follow the lexicographic reference ordering.
func (b box) lattice(reps []int) ([]r3.Vec, []tria.CellData) {
	n := [3]int{1, 1, 1}
	for a := 0; a < b.dim; a++ {
		n[a] = reps[a] + 1
	}
	stride := [3]int{1, n[0], n[0] * n[1]}

	verts := make([]r3.Vec, 0, n[0]*n[1]*n[2])
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				p := b.lo
				for a, idx := range [3]int{i, j, k} {
					if a < b.dim {
						setCoord(&p, a, b.at(a, idx, reps[a]))
					}
				}
				verts = append(verts, p)
			}
		}
	}

	var cells []tria.CellData
	for k := 0; k < max(n[2]-1, 1); k++ {
		for j := 0; j < max(n[1]-1, 1); j++ {
			for i := 0; i < n[0]-1; i++ {
				base := i*stride[0] + j*stride[1] + k*stride[2]
				vs := make([]int, 1<<b.dim)
				for v := range vs {
					off := 0
					for a := 0; a < b.dim; a++ {
						off += ((v >> a) & 1) * stride[a]
					}
					vs[v] = base + off
				}
				cells = append(cells, tria.NewCellData(vs...))
			}
		}
	}

	return verts, cells
}

// at is the coordinate of lattice line idx of reps along axis a. The end
// points are returned exactly.
func (b box) at(a, idx, reps int) float64 {
	lo, hi := coord(b.lo, a), coord(b.hi, a)
	if idx == reps {
		return hi
	}

	return lo + (hi-lo)*float64(idx)/float64(reps)
}

// jitter moves every vertex strictly inside the box by a uniform offset of
// at most cfg.jitter times the spacing along each axis.
func (b box) jitter(verts []r3.Vec, reps []int, cfg genConfig) {
	if cfg.jitter == 0 || cfg.rng == nil {
		return
	}
	tol := b.tol()
	for i := range verts {
		if b.onBoundary(verts[i], tol) {
			continue
		}
		for a := 0; a < b.dim; a++ {
			h := (coord(b.hi, a) - coord(b.lo, a)) / float64(reps[a])
			d := (2*cfg.rng.Float64() - 1) * cfg.jitter * h
			setCoord(&verts[i], a, coord(verts[i], a)+d)
		}
	}
}

func (b box) onBoundary(p r3.Vec, tol float64) bool {
	for a := 0; a < b.dim; a++ {
		x := coord(p, a)
		if scalar.EqualWithinAbs(x, coord(b.lo, a), tol) || scalar.EqualWithinAbs(x, coord(b.hi, a), tol) {
			return true
		}
	}

	return false
}

// tagCells applies the configured material and manifold to every cell.
func tagCells(cells []tria.CellData, cfg genConfig) {
	for i := range cells {
		cells[i].MaterialID = cfg.material
		cells[i].ManifoldID = cfg.manifold
	}
}

// colorize tags every boundary face of the coarse mesh by the box plane it
// lies on: 2a for the lower plane of axis a, 2a+1 for the upper one and
// 2*dim for faces off the bounding box.
func (b box) colorize(method string, tr *tria.Triangulation) error {
	tol := b.tol()
	for c := range tr.Cells() {
		for f := 0; f < c.NFaces(); f++ {
			if !c.AtBoundaryFace(f) {
				continue
			}
			a := f / 2
			x := coord(c.Face(f).Center(), a)
			id := types.BoundaryID(2 * b.dim)
			switch {
			case scalar.EqualWithinAbs(x, coord(b.lo, a), tol):
				id = types.BoundaryID(2 * a)
			case scalar.EqualWithinAbs(x, coord(b.hi, a), tol):
				id = types.BoundaryID(2*a + 1)
			}
			if err := c.Face(f).SetBoundaryID(id); err != nil {
				return genErrorf(method, "face %d of cell %v: %w", f, c.ID(), err)
			}
		}
	}

	return nil
}

// create hands the lattice to the engine and applies colorize when asked.
func create(method string, tr *tria.Triangulation, cfg genConfig, b box, verts []r3.Vec, cells []tria.CellData) error {
	tagCells(cells, cfg)
	if err := tr.Create(verts, cells, tria.SubCellSet{}); err != nil {
		return genErrorf(method, "%w", err)
	}
	if cfg.colorize {
		return b.colorize(method, tr)
	}

	return nil
}
