// SPDX-License-Identifier: MIT
package tria_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/tria"
)

func TestSignals_CycleOrder(t *testing.T) {
	tr := unitSquare(t)
	require.NoError(t, tr.RefineGlobal(1))
	root := mustCell(t, tr, 0, 0)
	coarsenChildren(t, root)

	var events []string
	hub := tr.Signals()
	hub.PreRefinement.Connect(func() { events = append(events, "pre") })
	hub.PreCoarseningOnCell.Connect(func(c tria.Cell) {
		// children are still present
		require.True(t, c.HasChildren())
		events = append(events, "coarsen "+c.ID().String())
	})
	hub.PostRefinementOnCell.Connect(func(c tria.Cell) { events = append(events, "refined "+c.ID().String()) })
	hub.PostRefinement.Connect(func() { events = append(events, "post") })
	hub.AnyChange.Connect(func() { events = append(events, "any") })

	require.NoError(t, tr.ExecuteCoarseningAndRefinement())
	assert.Equal(t, []string{"pre", "coarsen 0.0", "post", "any"}, events)

	events = nil
	require.NoError(t, tr.RefineGlobal(1))
	assert.Equal(t, []string{"pre", "refined 0.0", "post", "any"}, events)
}

func TestSignals_Reentrancy(t *testing.T) {
	tr := unitSquare(t)
	var errs []error
	tr.Signals().PostRefinement.Connect(func() {
		errs = append(errs, tr.RefineGlobal(1))
		errs = append(errs, mustCell(t, tr, 0, 0).Child(0).SetRefineFlag())
		errs = append(errs, tr.Clear())
		_, err := tr.PrepareCoarseningAndRefinement()
		errs = append(errs, err)
	})

	require.NoError(t, tr.RefineGlobal(1))
	require.Len(t, errs, 4)
	for _, err := range errs {
		assert.ErrorIs(t, err, tria.ErrReentrant)
	}
	assert.Equal(t, 4, tr.NActiveCells())
	// the guard is released afterwards
	require.NoError(t, mustCell(t, tr, 0, 0).Child(0).SetRefineFlag())
}

func TestSignals_Disconnect(t *testing.T) {
	tr := newMesh(t, 2, 2)
	n := 0
	conn := tr.Signals().Create.Connect(func() { n++ })
	verts := []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	require.NoError(t, tr.Create(verts, []tria.CellData{tria.NewCellData(0, 1, 2, 3)}, tria.SubCellSet{}))
	conn.Disconnect()
	require.NoError(t, tr.Clear())
	require.NoError(t, tr.Create(verts, []tria.CellData{tria.NewCellData(0, 1, 2, 3)}, tria.SubCellSet{}))
	assert.Equal(t, 1, n)
}

func TestSignals_MeshMovement(t *testing.T) {
	tr := unitSquare(t)
	moved := 0
	tr.Signals().MeshMovement.Connect(func() { moved++ })

	require.NoError(t, tr.Transform(func(p r3.Vec) r3.Vec { return r3.Scale(2, p) }))
	assert.InDelta(t, 4.0, mustCell(t, tr, 0, 0).Measure(), 1e-12)
	require.NoError(t, tr.SetVertexPosition(3, r3.Vec{X: 3, Y: 3}))
	require.ErrorIs(t, tr.SetVertexPosition(9, r3.Vec{}), tria.ErrVertexIndex)
	assert.Equal(t, 2, moved)
}

func TestSignals_CellWeight(t *testing.T) {
	tr := unitSquare(t)
	tr.Signals().CellWeight.Connect(func(c tria.Cell, s tria.CellStatus) uint { return 2 })
	tr.Signals().CellWeight.Connect(func(c tria.Cell, s tria.CellStatus) uint {
		if s == tria.CellRefine {
			return 10
		}
		return 1
	})
	c := mustCell(t, tr, 0, 0)
	assert.Equal(t, uint(3), tr.CellWeight(c, tria.CellPersist))
	assert.Equal(t, uint(12), tr.CellWeight(c, tria.CellRefine))

	fired := false
	tr.Signals().PrePartition.Connect(func() { fired = true })
	tr.PrePartition()
	assert.True(t, fired)
}
