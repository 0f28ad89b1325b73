// SPDX-License-Identifier: MIT
package tria_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

func TestUserFlags(t *testing.T) {
	tr := grid2D(t, 2, 1)
	c := mustCell(t, tr, 0, 1)
	c.SetUserFlag()
	c.Face(0).SetUserFlag()

	cells, err := tr.SaveUserFlags(2)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, cells)

	var buf bytes.Buffer
	require.NoError(t, tr.WriteUserFlags(&buf, 1))
	tr.ClearUserFlags()
	assert.False(t, c.UserFlag())
	assert.False(t, c.Face(0).UserFlag())

	require.NoError(t, tr.ReadUserFlags(&buf, 1))
	assert.True(t, c.Face(0).UserFlag())
	assert.False(t, c.UserFlag())

	_, err = tr.SaveUserFlags(3)
	require.ErrorIs(t, err, tria.ErrDimension)
	require.ErrorIs(t, tr.LoadUserFlags(2, []bool{true}), tria.ErrFlagCount)
}

func TestUserData_Modes(t *testing.T) {
	tr := unitSquare(t)
	c := mustCell(t, tr, 0, 0)

	require.NoError(t, c.SetUserIndex(5))
	assert.Equal(t, 5, c.UserIndex())
	require.ErrorIs(t, c.SetUserPointer("x"), tria.ErrUserDataMode)

	idx, err := tr.SaveUserIndices(2)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, idx)

	tr.ClearUserData()
	assert.Zero(t, c.UserIndex())
	require.NoError(t, c.SetUserPointer("x"))
	assert.Equal(t, "x", c.UserPointer())
	require.ErrorIs(t, c.SetUserIndex(1), tria.ErrUserDataMode)
	_, err = tr.SaveUserIndices(2)
	require.ErrorIs(t, err, tria.ErrUserDataMode)

	tr.ClearUserData()
	require.NoError(t, tr.LoadUserIndices(1, []int{1, 2, 3, 4}))
	assert.Equal(t, 3, c.Face(2).UserIndex())
}

func TestUserData_Pointers(t *testing.T) {
	tr := unitSquare(t)
	c := mustCell(t, tr, 0, 0)
	require.NoError(t, c.SetUserPointer("cell"))

	ptrs, err := tr.SaveUserPointers(2)
	require.NoError(t, err)
	assert.Equal(t, []any{"cell"}, ptrs)

	require.NoError(t, tr.LoadUserPointers(1, []any{nil, 1.5, "left", nil}))
	assert.Equal(t, "left", c.Face(2).UserPointer())
	assert.Nil(t, c.Face(0).UserPointer())
	require.ErrorIs(t, tr.LoadUserPointers(1, []any{nil}), tria.ErrFlagCount)
	_, err = tr.SaveUserPointers(0)
	require.ErrorIs(t, err, tria.ErrDimension)

	tr.ClearUserData()
	require.NoError(t, c.SetUserIndex(1))
	_, err = tr.SaveUserPointers(2)
	require.ErrorIs(t, err, tria.ErrUserDataMode)
	require.ErrorIs(t, tr.LoadUserPointers(2, []any{"x"}), tria.ErrUserDataMode)
}

func TestUserData_RetiredSlotsCleared(t *testing.T) {
	tr := grid2D(t, 2, 1)
	require.NoError(t, tr.RefineGlobal(1))
	want := make([]int, tr.NRawCells())
	for i := range want {
		want[i] = i + 1
	}
	require.NoError(t, tr.LoadUserIndices(2, want))

	parent := mustCell(t, tr, 0, 0)
	first := parent.Child(0).ID().Index
	for i := 0; i < parent.NChildren(); i++ {
		require.NoError(t, parent.Child(i).SetCoarsenFlag())
	}
	require.NoError(t, tr.ExecuteCoarseningAndRefinement())
	require.True(t, parent.Active())

	// level 0 holds two slots; the retired group follows on level 1
	for c := 0; c < 4; c++ {
		want[2+first+c] = 0
	}
	idx, err := tr.SaveUserIndices(2)
	require.NoError(t, err)
	assert.Equal(t, want, idx)
}

func TestReadUserFlags_Errors(t *testing.T) {
	tr := grid2D(t, 2, 1)
	var buf bytes.Buffer
	require.NoError(t, tr.WriteUserFlags(&buf, 2))

	other := unitSquare(t)
	require.ErrorIs(t, other.ReadUserFlags(bytes.NewReader(buf.Bytes()), 2), tria.ErrFlagCount)
	require.ErrorIs(t, other.ReadUserFlags(bytes.NewReader(buf.Bytes()), 3), tria.ErrDimension)
	require.ErrorIs(t, other.ReadUserFlags(bytes.NewReader([]byte("1504 9223372036854775807\n")), 2), tria.ErrFlagCount)
}

func TestAccessor_Tags(t *testing.T) {
	tr := grid2D(t, 2, 1)
	a := mustCell(t, tr, 0, 0)

	require.NoError(t, a.Face(0).SetBoundaryID(3))
	assert.Equal(t, types.BoundaryID(3), a.Face(0).BoundaryID())
	require.ErrorIs(t, a.Face(1).SetBoundaryID(3), tria.ErrBoundaryIDOnInterior)
	require.ErrorIs(t, a.Face(0).SetBoundaryID(types.InternalFaceBoundaryID), tria.ErrBoundaryIDOnInterior)
	require.ErrorIs(t, a.SetBoundaryID(1), tria.ErrBoundaryIDOnInterior)
	require.ErrorIs(t, a.Face(0).SetMaterialID(1), tria.ErrMaterialOnNonCell)

	require.NoError(t, a.SetAllManifoldIDs(8))
	for f := 0; f < 4; f++ {
		assert.Equal(t, types.ManifoldID(8), a.Face(f).ManifoldID())
	}
	b := mustCell(t, tr, 0, 1)
	assert.Equal(t, types.ManifoldID(8), b.Face(0).ManifoldID(), "shared face")
	assert.Equal(t, types.FlatManifoldID, b.ManifoldID())

	_, err := tr.Cell(tria.CellID{Level: 3, Index: 0})
	require.ErrorIs(t, err, tria.ErrInvalidHandle)
}

func TestMetadata_BoundaryManifolds(t *testing.T) {
	tr := grid2D(t, 2, 1)
	a := mustCell(t, tr, 0, 0)
	require.NoError(t, a.Face(0).SetBoundaryID(2))

	require.NoError(t, tr.SetAllManifoldIDsOnBoundaryID(2, 6))
	assert.Equal(t, types.ManifoldID(6), a.Face(0).ManifoldID())
	assert.Equal(t, types.FlatManifoldID, a.Face(2).ManifoldID())

	require.NoError(t, tr.SetAllManifoldIDsOnBoundary(1))
	assert.Equal(t, types.ManifoldID(1), a.Face(2).ManifoldID())
	assert.Equal(t, types.FlatManifoldID, a.Face(1).ManifoldID(), "interior face")

	require.NoError(t, tr.SetAllManifoldIDs(4))
	assert.Equal(t, []types.ManifoldID{4}, tr.ManifoldIDs())
}
