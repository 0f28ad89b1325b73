// SPDX-License-Identifier: MIT
package refcell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/refcell"
)

func TestCounts(t *testing.T) {
	for s, want := range []struct{ v, f, c, lattice int }{
		{1, 0, 1, 1}, {2, 2, 2, 3}, {4, 4, 4, 9}, {8, 6, 8, 27},
	} {
		assert.Equal(t, want.v, refcell.NVertices(s))
		assert.Equal(t, want.f, refcell.NFaces(s))
		assert.Equal(t, want.c, refcell.NChildren(s))
		assert.Len(t, refcell.Lattice(s), want.lattice)
	}
}

func TestFaceVertices(t *testing.T) {
	assert.Equal(t, []int{0, 2}, refcell.FaceVertices(2, 0))
	assert.Equal(t, []int{1, 3}, refcell.FaceVertices(2, 1))
	assert.Equal(t, []int{0, 1}, refcell.FaceVertices(2, 2))
	assert.Equal(t, []int{2, 3}, refcell.FaceVertices(2, 3))
	assert.Equal(t, []int{4, 5, 6, 7}, refcell.FaceVertices(3, 5))
	for s := 1; s <= refcell.MaxDim; s++ {
		assert.Equal(t, refcell.SubObjects(s, s-1), faces(s))
	}
}

func faces(s int) [][]int {
	out := make([][]int, refcell.NFaces(s))
	for f := range out {
		out[f] = refcell.FaceVertices(s, f)
	}

	return out
}

func TestSubObjects(t *testing.T) {
	assert.Len(t, refcell.SubObjects(3, 1), 12)
	assert.Len(t, refcell.SubObjects(3, 2), 6)
	assert.Len(t, refcell.SubObjects(3, 0), 8)
	assert.Equal(t, [][]int{{0, 1, 2, 3, 4, 5, 6, 7}}, refcell.SubObjects(3, 3))
	assert.Equal(t, []int{0, 1}, refcell.SubObjects(2, 1)[2])
}

func TestLattice(t *testing.T) {
	lat := refcell.Lattice(2)
	center := lat[4]
	assert.Equal(t, []int{1, 1}, center.Coord)
	assert.Equal(t, []int{0, 1}, center.Free)
	assert.Equal(t, []int{0, 1, 2, 3}, center.Corners)

	edge := lat[3] // coord (0,1): midpoint of the x=0 edge
	assert.Equal(t, []int{1}, edge.Free)
	assert.Equal(t, []int{0, 2}, edge.Corners)

	assert.Equal(t, []int{3}, lat[8].Corners)
}

func TestChildLattice(t *testing.T) {
	for s := 1; s <= refcell.MaxDim; s++ {
		children := refcell.ChildLattice(s)
		require.Len(t, children, refcell.NChildren(s))
		lat := refcell.Lattice(s)
		for c, verts := range children {
			// vertex v of child c sits at lattice point c+v
			for v, idx := range verts {
				for axis := 0; axis < s; axis++ {
					assert.Equal(t, (c>>axis&1)+(v>>axis&1), lat[idx].Coord[axis])
				}
			}
			// the parent center is vertex CenterOfChildZero of child 0 only
			if c == 0 {
				assert.Len(t, lat[verts[refcell.CenterOfChildZero(s)]].Free, s)
			}
		}
	}
}

func TestFaceOnParent(t *testing.T) {
	assert.True(t, refcell.FaceOnParent(0, 0))
	assert.False(t, refcell.FaceOnParent(0, 1))
	assert.True(t, refcell.FaceOnParent(3, 1))
	assert.True(t, refcell.FaceOnParent(3, 3))
	assert.False(t, refcell.FaceOnParent(3, 2))
	assert.True(t, refcell.FaceOnParent(5, 5))
}
