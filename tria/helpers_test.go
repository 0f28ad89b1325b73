// SPDX-License-Identifier: MIT
package tria_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/tria"
)

// newMesh returns an empty mesh or fails the test.
func newMesh(t *testing.T, dim, spacedim int, opts ...tria.Option) *tria.Triangulation {
	t.Helper()
	tr, err := tria.New(dim, spacedim, opts...)
	require.NoError(t, err)

	return tr
}

// grid2D builds nx*ny unit cells; vertex (i,j) has index j*(nx+1)+i.
func grid2D(t *testing.T, nx, ny int, opts ...tria.Option) *tria.Triangulation {
	t.Helper()
	var verts []r3.Vec
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			verts = append(verts, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	v := func(i, j int) int { return j*(nx+1) + i }
	var cells []tria.CellData
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells, tria.NewCellData(v(i, j), v(i+1, j), v(i, j+1), v(i+1, j+1)))
		}
	}
	tr := newMesh(t, 2, 2, opts...)
	require.NoError(t, tr.Create(verts, cells, tria.SubCellSet{}))

	return tr
}

// unitSquare is the one-cell mesh of [0,1]^2.
func unitSquare(t *testing.T, opts ...tria.Option) *tria.Triangulation {
	t.Helper()

	return grid2D(t, 1, 1, opts...)
}

// unitCube is the one-cell mesh of [0,1]^3.
func unitCube(t *testing.T, opts ...tria.Option) *tria.Triangulation {
	t.Helper()
	var verts []r3.Vec
	for v := 0; v < 8; v++ {
		verts = append(verts, r3.Vec{X: float64(v & 1), Y: float64(v >> 1 & 1), Z: float64(v >> 2 & 1)})
	}
	tr := newMesh(t, 3, 3, opts...)
	require.NoError(t, tr.Create(verts, []tria.CellData{tria.NewCellData(0, 1, 2, 3, 4, 5, 6, 7)}, tria.SubCellSet{}))

	return tr
}

// line1D builds n unit cells on the x axis.
func line1D(t *testing.T, n int, opts ...tria.Option) *tria.Triangulation {
	t.Helper()
	var verts []r3.Vec
	var cells []tria.CellData
	for i := 0; i <= n; i++ {
		verts = append(verts, r3.Vec{X: float64(i)})
		if i < n {
			cells = append(cells, tria.NewCellData(i, i+1))
		}
	}
	tr := newMesh(t, 1, 1, opts...)
	require.NoError(t, tr.Create(verts, cells, tria.SubCellSet{}))

	return tr
}

func mustCell(t *testing.T, tr *tria.Triangulation, level, index int) tria.Cell {
	t.Helper()
	c, err := tr.Cell(tria.CellID{Level: level, Index: index})
	require.NoError(t, err)

	return c
}

func refineCells(t *testing.T, tr *tria.Triangulation, cells ...tria.Cell) {
	t.Helper()
	for _, c := range cells {
		require.NoError(t, c.SetRefineFlag())
	}
	require.NoError(t, tr.ExecuteCoarseningAndRefinement())
}

// requireOneIrregular checks that no face or edge of an active cell carries
// grandchildren and that face neighbors differ by at most one level.
func requireOneIrregular(t *testing.T, tr *tria.Triangulation) {
	t.Helper()
	for c := range tr.ActiveCells() {
		for f := 0; f < c.NFaces(); f++ {
			for _, n := range c.ActiveNeighbors(f) {
				d := n.Level() - c.Level()
				require.LessOrEqual(t, d, 1, "cell %s face %d neighbor %s", c.ID(), f, n.ID())
				require.GreaterOrEqual(t, d, -1, "cell %s face %d neighbor %s", c.ID(), f, n.ID())
			}
			if tr.Dim() < 2 {
				continue
			}
			face := c.Face(f)
			for i := 0; i < face.NChildren(); i++ {
				require.False(t, face.Child(i).HasChildren(), "cell %s face %d has grandchildren", c.ID(), f)
			}
		}
		if tr.Dim() == 3 {
			for _, l := range c.Lines() {
				for i := 0; i < l.NChildren(); i++ {
					require.False(t, l.Child(i).HasChildren(), "cell %s edge has grandchildren", c.ID())
				}
			}
		}
	}
}

// requireConsistent checks the level relation and the cached counts.
func requireConsistent(t *testing.T, tr *tria.Triangulation) {
	t.Helper()
	active, used := 0, 0
	seen := make(map[int]bool)
	for c := range tr.Cells() {
		used++
		if p, ok := c.Parent(); ok {
			require.Equal(t, c.Level()-1, p.Level())
			require.True(t, p.HasChildren())
		} else {
			require.Equal(t, 0, c.Level())
		}
		if c.Active() {
			active++
			idx := c.ActiveIndex()
			require.False(t, seen[idx], "active index %d repeated", idx)
			seen[idx] = true
		}
		for _, v := range c.VertexIndices() {
			require.True(t, tr.Vertex(v).Used(), "cell %s uses freed vertex %d", c.ID(), v)
		}
	}
	require.Equal(t, used, tr.NCells())
	require.Equal(t, active, tr.NActiveCells())
	for i := 0; i < active; i++ {
		require.True(t, seen[i], "active index %d missing", i)
	}
	nv := 0
	for _, u := range tr.UsedVertices() {
		if u {
			nv++
		}
	}
	require.Equal(t, nv, tr.NUsedVertices())
	if tr.NLevels() > 0 {
		last, err := tr.Level(tr.NLevels() - 1)
		require.NoError(t, err)
		require.Positive(t, last.NCells())
	}
}
