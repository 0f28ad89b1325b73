// SPDX-License-Identifier: MIT
package gridgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/gridgen"
	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

const eps = 1e-12

func build(t *testing.T, dim, spacedim int, con gridgen.Constructor, opts ...gridgen.Option) *tria.Triangulation {
	t.Helper()
	tr, err := gridgen.Build(dim, spacedim, nil, opts, con)
	require.NoError(t, err)

	return tr
}

func totalMeasure(tr *tria.Triangulation) float64 {
	var sum float64
	for c := range tr.ActiveCells() {
		sum += c.Measure()
	}

	return sum
}

func boundaryFaceCounts(tr *tria.Triangulation) map[types.BoundaryID]int {
	out := make(map[types.BoundaryID]int)
	for f := range tr.ActiveFaces() {
		if b := f.BoundaryID(); !b.IsInternal() {
			out[b]++
		}
	}

	return out
}

func TestHyperCube_AllDimensions(t *testing.T) {
	for dim := 1; dim <= 3; dim++ {
		tr := build(t, dim, dim, gridgen.HyperCube(-1, 1))
		assert.Equal(t, 1, tr.NActiveCells(), "dim %d", dim)
		assert.Equal(t, 1<<dim, tr.NUsedVertices(), "dim %d", dim)
		assert.InDelta(t, float64(int(1)<<dim), totalMeasure(tr), eps, "dim %d", dim)
	}
	// Without colorize only the end points of a 1D mesh are told apart.
	assert.Equal(t, []types.BoundaryID{0, 1}, build(t, 1, 1, gridgen.HyperCube(0, 1)).BoundaryIDs())
	assert.Equal(t, []types.BoundaryID{0}, build(t, 3, 3, gridgen.HyperCube(0, 1)).BoundaryIDs())
}

func TestHyperCube_BadExtent(t *testing.T) {
	tr, err := gridgen.Build(2, 2, nil, nil, gridgen.HyperCube(1, 1))
	require.ErrorIs(t, err, gridgen.ErrBadExtent)
	assert.Nil(t, tr)
}

func TestHyperRectangle_CornersInAnyOrder(t *testing.T) {
	tr := build(t, 2, 2, gridgen.HyperRectangle(r3.Vec{X: 3, Y: 1}, r3.Vec{X: 1, Y: 2}))
	c, err := tr.Cell(tria.CellID{})
	require.NoError(t, err)
	assert.Equal(t, []r3.Vec{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 2}, {X: 3, Y: 2}}, c.Points())
	assert.InDelta(t, 2.0, c.Measure(), eps)

	_, err = gridgen.Build(2, 2, nil, nil, gridgen.HyperRectangle(r3.Vec{X: 1}, r3.Vec{X: 2}))
	require.ErrorIs(t, err, gridgen.ErrBadExtent)
}

func TestSubdividedHyperRectangle_Lattice(t *testing.T) {
	tr := build(t, 2, 2, gridgen.SubdividedHyperRectangle([]int{3, 2}, r3.Vec{}, r3.Vec{X: 3, Y: 2}))
	assert.Equal(t, 6, tr.NActiveCells())
	assert.Equal(t, 12, tr.NUsedVertices())
	assert.Equal(t, 17, tr.NLines())
	assert.InDelta(t, 6.0, totalMeasure(tr), eps)
	assert.Equal(t, 10, boundaryFaceCounts(tr)[0])

	// Vertex (i,j) has index j*4+i and cells follow x first.
	c, err := tr.Cell(tria.CellID{Index: 4})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 9, 10}, c.VertexIndices())
	assert.Equal(t, r3.Vec{X: 1.5, Y: 1.5}, c.Center())
}

func TestSubdividedHyperRectangle_Cube(t *testing.T) {
	tr := build(t, 3, 3, gridgen.SubdividedHyperRectangle([]int{2, 2, 2}, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}))
	assert.Equal(t, 8, tr.NActiveCells())
	assert.Equal(t, 27, tr.NUsedVertices())
	assert.Equal(t, 36, tr.NQuads())
	assert.Equal(t, 54, tr.NLines())
	assert.InDelta(t, 1.0, totalMeasure(tr), eps)
}

func TestSubdividedHyperRectangle_Errors(t *testing.T) {
	cases := []struct {
		name string
		reps []int
		p2   r3.Vec
		want error
	}{
		{"wrong reps length", []int{2}, r3.Vec{X: 1, Y: 1}, gridgen.ErrUnsupportedDim},
		{"zero reps", []int{2, 0}, r3.Vec{X: 1, Y: 1}, gridgen.ErrTooFewCells},
		{"flat box", []int{2, 2}, r3.Vec{X: 1}, gridgen.ErrBadExtent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgen.Build(2, 2, nil, nil, gridgen.SubdividedHyperRectangle(tc.reps, r3.Vec{}, tc.p2))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestColorize_Box(t *testing.T) {
	tr := build(t, 2, 2, gridgen.SubdividedHyperRectangle([]int{2, 1}, r3.Vec{}, r3.Vec{X: 2, Y: 1}), gridgen.WithColorize())
	assert.Equal(t, []types.BoundaryID{0, 1, 2, 3}, tr.BoundaryIDs())
	assert.Equal(t, map[types.BoundaryID]int{0: 1, 1: 1, 2: 2, 3: 2}, boundaryFaceCounts(tr))
	for f := range tr.ActiveFaces() {
		switch f.BoundaryID() {
		case 0:
			assert.InDelta(t, 0.0, f.Center().X, eps)
		case 1:
			assert.InDelta(t, 2.0, f.Center().X, eps)
		case 2:
			assert.InDelta(t, 0.0, f.Center().Y, eps)
		case 3:
			assert.InDelta(t, 1.0, f.Center().Y, eps)
		}
	}

	cube := build(t, 3, 3, gridgen.HyperCube(0, 1), gridgen.WithColorize())
	assert.Equal(t, []types.BoundaryID{0, 1, 2, 3, 4, 5}, cube.BoundaryIDs())

	line := build(t, 1, 1, gridgen.SubdividedHyperRectangle([]int{4}, r3.Vec{}, r3.Vec{X: 1}), gridgen.WithColorize())
	assert.Equal(t, types.BoundaryID(0), line.Vertex(0).BoundaryID())
	assert.Equal(t, types.BoundaryID(1), line.Vertex(4).BoundaryID())
	assert.True(t, line.Vertex(2).BoundaryID().IsInternal())
}

func TestHyperL(t *testing.T) {
	tr := build(t, 2, 2, gridgen.HyperL(-1, 1), gridgen.WithColorize())
	assert.Equal(t, 3, tr.NActiveCells())
	assert.Equal(t, 8, tr.NVertices())
	assert.Equal(t, 8, tr.NUsedVertices())
	assert.InDelta(t, 3.0, totalMeasure(tr), eps)
	assert.Equal(t, map[types.BoundaryID]int{0: 2, 1: 1, 2: 2, 3: 1, 4: 2}, boundaryFaceCounts(tr))

	fichera := build(t, 3, 3, gridgen.HyperL(0, 2))
	assert.Equal(t, 7, fichera.NActiveCells())
	assert.Equal(t, 26, fichera.NUsedVertices())
	assert.InDelta(t, 7.0, totalMeasure(fichera), eps)

	_, err := gridgen.Build(1, 1, nil, nil, gridgen.HyperL(-1, 1))
	require.ErrorIs(t, err, gridgen.ErrUnsupportedDim)
	_, err = gridgen.Build(2, 2, nil, nil, gridgen.HyperL(1, -1))
	require.ErrorIs(t, err, gridgen.ErrBadExtent)
}

func TestHyperShell_RefinesOntoCircles(t *testing.T) {
	tr := build(t, 2, 2, gridgen.HyperShell(r3.Vec{}, 1, 2, 8), gridgen.WithColorize())
	assert.Equal(t, 8, tr.NActiveCells())
	assert.Equal(t, 16, tr.NUsedVertices())
	assert.Equal(t, []types.BoundaryID{0, 1}, tr.BoundaryIDs())
	assert.Equal(t, []types.ManifoldID{0}, tr.ManifoldIDs())

	require.NoError(t, tr.RefineGlobal(2))
	assert.Equal(t, 128, tr.NActiveCells())
	for f := range tr.ActiveFaces() {
		b := f.BoundaryID()
		if b.IsInternal() {
			continue
		}
		want := 1.0
		if b == 1 {
			want = 2
		}
		for _, p := range f.Points() {
			assert.InDelta(t, want, r3.Norm(p), 1e-9)
		}
	}
}

func TestHyperShell_Errors(t *testing.T) {
	_, err := gridgen.Build(3, 3, nil, nil, gridgen.HyperShell(r3.Vec{}, 1, 2, 8))
	require.ErrorIs(t, err, gridgen.ErrUnsupportedDim)
	_, err = gridgen.Build(2, 2, nil, nil, gridgen.HyperShell(r3.Vec{}, 2, 1, 8))
	require.ErrorIs(t, err, gridgen.ErrBadRadius)
	_, err = gridgen.Build(2, 2, nil, nil, gridgen.HyperShell(r3.Vec{}, 0, 1, 8))
	require.ErrorIs(t, err, gridgen.ErrBadRadius)
	_, err = gridgen.Build(2, 2, nil, nil, gridgen.HyperShell(r3.Vec{}, 1, 2, 2))
	require.ErrorIs(t, err, gridgen.ErrTooFewCells)
}

func TestWithJitter(t *testing.T) {
	reps := []int{4, 4}
	con := gridgen.SubdividedHyperRectangle(reps, r3.Vec{}, r3.Vec{X: 1, Y: 1})
	plain := build(t, 2, 2, con).VertexPositions()
	a := build(t, 2, 2, con, gridgen.WithJitter(0.3, 7)).VertexPositions()
	b := build(t, 2, 2, con, gridgen.WithJitter(0.3, 7)).VertexPositions()
	require.Equal(t, a, b, "same seed, same mesh")

	moved := 0
	for i, p := range plain {
		interior := p.X > 0 && p.X < 1 && p.Y > 0 && p.Y < 1
		if !interior {
			assert.Equal(t, p, a[i], "boundary vertex %d", i)
			continue
		}
		if p != a[i] {
			moved++
		}
		assert.LessOrEqual(t, abs(a[i].X-p.X), 0.3*0.25+eps)
		assert.LessOrEqual(t, abs(a[i].Y-p.Y), 0.3*0.25+eps)
	}
	assert.Equal(t, 9, moved)

	assert.Panics(t, func() { gridgen.WithJitter(0.5, 1) })
	assert.Panics(t, func() { gridgen.WithJitter(-0.1, 1) })
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestCellTags(t *testing.T) {
	tr := build(t, 2, 2, gridgen.SubdividedHyperRectangle([]int{2, 2}, r3.Vec{}, r3.Vec{X: 1, Y: 1}),
		gridgen.WithMaterial(3), gridgen.WithManifoldID(5))
	for c := range tr.ActiveCells() {
		assert.Equal(t, types.MaterialID(3), c.MaterialID())
		assert.Equal(t, types.ManifoldID(5), c.ManifoldID())
	}
	assert.Equal(t, []types.MaterialID{3}, tr.MaterialIDs())
}

func TestFill(t *testing.T) {
	tr, err := tria.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, gridgen.Fill(tr, gridgen.HyperCube(0, 1)))
	assert.Equal(t, 1, tr.NActiveCells())

	require.ErrorIs(t, gridgen.Fill(tr, gridgen.HyperCube(0, 1)), gridgen.ErrNotEmpty)
	require.ErrorIs(t, gridgen.Fill(tr, nil), gridgen.ErrNilConstructor)

	_, err = gridgen.Build(2, 2, nil, nil, nil)
	require.ErrorIs(t, err, gridgen.ErrNilConstructor)
	_, err = gridgen.Build(3, 2, nil, nil, gridgen.HyperCube(0, 1))
	require.ErrorIs(t, err, tria.ErrDimension)
}

func TestBuild_PassesTriangulationOptions(t *testing.T) {
	tr, err := gridgen.Build(2, 2, []tria.Option{tria.WithSmoothing(tria.MaximumSmoothing)}, nil, gridgen.HyperCube(0, 1))
	require.NoError(t, err)
	assert.Equal(t, tria.MaximumSmoothing, tr.Smoothing())
}
