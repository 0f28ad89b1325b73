// SPDX-License-Identifier: MIT
package tria_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/manifold"
	"github.com/katalvlaran/lvmesh/types"
	"github.com/katalvlaran/lvmesh/tria"
)

// fixedPoint places every new point at P.
type fixedPoint struct{ P r3.Vec }

func (f fixedPoint) NewPoint([]r3.Vec, []float64) r3.Vec { return f.P }

func TestRefineGlobal_Square(t *testing.T) {
	tr := unitSquare(t)
	require.NoError(t, tr.RefineGlobal(1))

	assert.Equal(t, 2, tr.NLevels())
	assert.Equal(t, 4, tr.NActiveCells())
	assert.Equal(t, 5, tr.NCells())
	assert.Equal(t, 9, tr.NUsedVertices())
	assert.Equal(t, 16, tr.NLines())
	assert.Equal(t, 12, tr.NActiveLines())
	assert.False(t, tr.HasHangingNodes())

	root := mustCell(t, tr, 0, 0)
	require.True(t, root.HasChildren())
	assert.Equal(t, 4, root.NChildren())
	var area float64
	for i := 0; i < 4; i++ {
		ch := root.Child(i)
		assert.Equal(t, 1, ch.Level())
		p, ok := ch.Parent()
		require.True(t, ok)
		assert.Equal(t, root.ID(), p.ID())
		area += ch.Measure()
	}
	assert.InDelta(t, 1.0, area, 1e-12)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5}, root.Child(0).Vertex(3))
	requireConsistent(t, tr)
	requireOneIrregular(t, tr)
}

func TestRefine_SingleChild(t *testing.T) {
	tr := unitSquare(t)
	require.NoError(t, tr.RefineGlobal(1))
	refineCells(t, tr, mustCell(t, tr, 0, 0).Child(0))

	assert.Equal(t, 3, tr.NLevels())
	assert.Equal(t, 7, tr.NActiveCells())
	assert.Equal(t, 14, tr.NUsedVertices())
	assert.True(t, tr.HasHangingNodes())

	c1 := mustCell(t, tr, 0, 0).Child(1)
	assert.True(t, c1.Active())
	first := mustCell(t, tr, 0, 0).Child(0)
	for f := 0; f < 4; f++ {
		if !c1.AtBoundaryFace(f) {
			assert.Len(t, c1.ActiveNeighbors(f), map[bool]int{true: 2, false: 1}[f == 0])
		}
	}
	n, ok := first.Child(1).Neighbor(1)
	require.True(t, ok)
	assert.Equal(t, c1.ID(), n.ID())
	assert.True(t, first.Child(1).NeighborIsCoarser(1))
	requireConsistent(t, tr)
	requireOneIrregular(t, tr)
}

func TestRefine_ClosurePullsInCoarserNeighbor(t *testing.T) {
	tr := grid2D(t, 3, 1)
	a, b, c := mustCell(t, tr, 0, 0), mustCell(t, tr, 0, 1), mustCell(t, tr, 0, 2)
	refineCells(t, tr, c)
	require.True(t, b.Active())

	// Child 0 of c touches b.
	refineCells(t, tr, c.Child(0))
	assert.True(t, b.HasChildren())
	assert.True(t, a.Active())
	assert.Equal(t, 1+4+3+4, tr.NActiveCells())
	requireConsistent(t, tr)
	requireOneIrregular(t, tr)
}

func TestRefine_ClosureCascades(t *testing.T) {
	tr := grid2D(t, 2, 1)
	a, b := mustCell(t, tr, 0, 0), mustCell(t, tr, 0, 1)
	refineCells(t, tr, b)
	refineCells(t, tr, b.Child(1))
	require.True(t, a.Active())
	require.True(t, b.Child(0).Active())

	require.NoError(t, b.Child(1).Child(0).SetRefineFlag())
	changed, err := tr.PrepareCoarseningAndRefinement()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, b.Child(0).RefineFlag())
	assert.True(t, a.RefineFlag())

	require.NoError(t, tr.ExecuteCoarseningAndRefinement())
	assert.True(t, a.HasChildren())
	requireOneIrregular(t, tr)
}

func TestRefine_OneDimensional(t *testing.T) {
	tr := line1D(t, 2)
	refineCells(t, tr, mustCell(t, tr, 0, 1))

	assert.Equal(t, 3, tr.NActiveCells())
	assert.Equal(t, 4, tr.NUsedVertices())
	ch := mustCell(t, tr, 0, 1).Child(0)
	assert.Equal(t, r3.Vec{X: 1.5}, ch.Vertex(1))
	n, ok := ch.Neighbor(0)
	require.True(t, ok)
	assert.Equal(t, tria.CellID{Level: 0, Index: 0}, n.ID())
	assert.Equal(t, types.BoundaryID(1), tr.Vertex(2).BoundaryID())

	// refining the neighbor of a level-1 cell's fine child pulls in cell 0
	refineCells(t, tr, ch)
	assert.True(t, mustCell(t, tr, 0, 0).HasChildren())
	requireConsistent(t, tr)
	requireOneIrregular(t, tr)
}

func TestRefineGlobal_Cube(t *testing.T) {
	tr := unitCube(t)
	require.NoError(t, tr.RefineGlobal(1))

	assert.Equal(t, 8, tr.NActiveCells())
	assert.Equal(t, 27, tr.NUsedVertices())
	assert.Equal(t, 54, tr.NActiveLines())
	assert.Equal(t, 36, tr.NActiveQuads())
	assert.Equal(t, 12+54, tr.NLines())
	assert.Equal(t, 6+36, tr.NQuads())

	var vol float64
	for c := range tr.ActiveCells() {
		vol += c.Measure()
	}
	assert.InDelta(t, 1.0, vol, 1e-12)

	require.NoError(t, tr.RefineGlobal(1))
	assert.Equal(t, 64, tr.NActiveCells())
	assert.Equal(t, 125, tr.NUsedVertices())
	requireConsistent(t, tr)
	requireOneIrregular(t, tr)
}

func TestRefine_CubeEdgeClosure(t *testing.T) {
	tr := newMesh(t, 3, 3)
	// two cubes sharing only the edge x=1,y=1
	var verts []r3.Vec
	for v := 0; v < 8; v++ {
		verts = append(verts, r3.Vec{X: float64(v & 1), Y: float64(v >> 1 & 1), Z: float64(v >> 2 & 1)})
	}
	for v := 0; v < 8; v++ {
		verts = append(verts, r3.Vec{X: 1 + float64(v&1), Y: 1 + float64(v>>1&1), Z: float64(v >> 2 & 1)})
	}
	second := tria.NewCellData(3, 9, 10, 11, 7, 13, 14, 15)
	require.NoError(t, tr.Create(verts, []tria.CellData{tria.NewCellData(0, 1, 2, 3, 4, 5, 6, 7), second}, tria.SubCellSet{}))
	assert.Equal(t, 23, tr.NLines())

	a, b := mustCell(t, tr, 0, 0), mustCell(t, tr, 0, 1)
	refineCells(t, tr, b)
	require.True(t, a.Active())

	// child 0 of b touches the shared edge
	refineCells(t, tr, b.Child(0))
	assert.True(t, a.HasChildren())
	requireConsistent(t, tr)
	requireOneIrregular(t, tr)
}

func TestRefine_InheritsTags(t *testing.T) {
	verts := []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	tr := newMesh(t, 2, 2)
	cd := tria.NewCellData(0, 1, 2, 3)
	cd.MaterialID = 9
	require.NoError(t, tr.Create(verts, []tria.CellData{cd}, tria.SubCellSet{
		Lines: []tria.SubCellData{{Vertices: []int{0, 1}, BoundaryID: 4, ManifoldID: types.FlatManifoldID}},
	}))
	require.NoError(t, tr.RefineGlobal(2))

	for c := range tr.ActiveCells() {
		assert.Equal(t, types.MaterialID(9), c.MaterialID())
	}
	count := 0
	for f := range tr.ActiveFaces() {
		if f.BoundaryID() == 4 {
			count++
			assert.InDelta(t, 0.0, f.Center().Y, 1e-12)
		}
	}
	assert.Equal(t, 4, count)
	assert.Equal(t, []types.BoundaryID{0, 4}, tr.BoundaryIDs())
}

func TestRefine_ManifoldPlacement(t *testing.T) {
	verts := []r3.Vec{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	tr := newMesh(t, 2, 2)
	require.NoError(t, tr.Create(verts, []tria.CellData{tria.NewCellData(0, 1, 2, 3)}, tria.SubCellSet{}))
	require.NoError(t, tr.SetManifold(0, manifold.NewSpherical(r3.Vec{})))
	require.NoError(t, tr.SetAllManifoldIDs(0))
	require.NoError(t, tr.RefineGlobal(1))

	c := mustCell(t, tr, 0, 0)
	// midpoint of the inner arc lies on the unit circle
	inner := c.Child(0).Vertex(2)
	assert.InDelta(t, 1.0, r3.Norm(inner), 1e-12)
	assert.InDelta(t, inner.X, inner.Y, 1e-12)
	center := c.Child(0).Vertex(3)
	assert.InDelta(t, 1.5, r3.Norm(center), 1e-12)
}

func TestRefine_UnboundManifoldFallsBackToFlat(t *testing.T) {
	verts := []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	tr := newMesh(t, 2, 2)
	cd := tria.NewCellData(0, 1, 2, 3)
	cd.ManifoldID = 42
	require.NoError(t, tr.Create(verts, []tria.CellData{cd}, tria.SubCellSet{}))
	require.NoError(t, tr.RefineGlobal(1))

	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5}, mustCell(t, tr, 0, 0).Child(0).Vertex(3))
}

func TestRefine_DistortionReported(t *testing.T) {
	verts := []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	tr := newMesh(t, 2, 2, tria.WithDistortionCheck(true))
	cd := tria.NewCellData(0, 1, 2, 3)
	cd.ManifoldID = 5
	require.NoError(t, tr.Create(verts, []tria.CellData{cd}, tria.SubCellSet{}))
	require.NoError(t, tr.SetManifold(5, fixedPoint{P: r3.Vec{X: 10, Y: 10}}))

	err := tr.RefineGlobal(1)
	var de *tria.DistortedCellsError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, []tria.CellID{{Level: 0, Index: 0}}, de.Cells)
	assert.ErrorIs(t, err, tria.ErrDistortedCells)
	// the mesh is refined regardless
	assert.Equal(t, 4, tr.NActiveCells())

	quiet := newMesh(t, 2, 2)
	require.NoError(t, quiet.Create(verts, []tria.CellData{cd}, tria.SubCellSet{}))
	require.NoError(t, quiet.SetManifold(5, fixedPoint{P: r3.Vec{X: 10, Y: 10}}))
	require.NoError(t, quiet.RefineGlobal(1))
}

func TestRefine_CodimensionOne(t *testing.T) {
	// a quad on the unit sphere surface
	s := 1 / math.Sqrt(3)
	verts := []r3.Vec{{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: -s, Y: s, Z: s}, {X: s, Y: s, Z: s}}
	tr := newMesh(t, 2, 3)
	require.NoError(t, tr.Create(verts, []tria.CellData{tria.NewCellData(0, 1, 2, 3)}, tria.SubCellSet{}))
	require.NoError(t, tr.SetManifold(1, manifold.NewSpherical(r3.Vec{})))
	require.NoError(t, tr.SetAllManifoldIDs(1))
	require.NoError(t, tr.RefineGlobal(2))

	for v := range tr.Vertices() {
		assert.InDelta(t, 1.0, r3.Norm(tr.VertexPositions()[v.Index()]), 1e-9)
	}
	assert.Equal(t, 16, tr.NActiveCells())
}
