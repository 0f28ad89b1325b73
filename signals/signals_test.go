// SPDX-License-Identifier: MIT
package signals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/signals"
)

func TestSignal_OrderAndDisconnect(t *testing.T) {
	var s signals.Signal[func()]
	var got []int
	s.Connect(func() { got = append(got, 1) })
	c := s.Connect(func() { got = append(got, 2) })
	s.Connect(func() { got = append(got, 3) })
	require.Equal(t, 3, s.Len())

	s.Each(func(f func()) { f() })
	assert.Equal(t, []int{1, 2, 3}, got)

	c.Disconnect()
	c.Disconnect()
	got = nil
	s.Each(func(f func()) { f() })
	assert.Equal(t, []int{1, 3}, got)
}

func TestSignal_NilPanics(t *testing.T) {
	var s signals.Signal[func()]
	assert.Panics(t, func() { s.Connect(nil) })
}

func TestHub_AnyChangeAndWeights(t *testing.T) {
	var h signals.Hub[int, string]
	var log []string
	h.Create.Connect(func() { log = append(log, "create") })
	h.PostRefinement.Connect(func() { log = append(log, "post") })
	h.Clear.Connect(func() { log = append(log, "clear") })
	h.AnyChange.Connect(func() { log = append(log, "any") })
	h.MeshMovement.Connect(func() { log = append(log, "move") })

	h.FireCreate()
	h.FirePreRefinement()
	h.FirePostRefinement()
	h.FireMeshMovement()
	h.FireClear()
	assert.Equal(t, []string{"create", "any", "post", "any", "move", "clear", "any"}, log)

	h.CellWeight.Connect(func(c int, st signals.CellStatus) uint { return uint(c) })
	h.CellWeight.Connect(func(c int, st signals.CellStatus) uint {
		if st == signals.CellRefine {
			return 10
		}
		return 0
	})
	assert.Equal(t, uint(13), h.FireCellWeight(3, signals.CellRefine))
	assert.Equal(t, uint(3), h.FireCellWeight(3, signals.CellPersist))

	var dst string
	h.Copy.Connect(func(m string) { dst = m })
	h.FireCopy("other")
	assert.Equal(t, "other", dst)

	h.DisconnectAll()
	log = nil
	h.FireCreate()
	assert.Empty(t, log)
	assert.Equal(t, uint(0), h.FireCellWeight(3, signals.CellRefine))
}

func TestCellStatus_String(t *testing.T) {
	assert.Equal(t, "persist", signals.CellPersist.String())
	assert.Equal(t, "refine", signals.CellRefine.String())
	assert.Equal(t, "coarsen", signals.CellCoarsen.String())
	assert.Equal(t, "unknown", signals.CellStatus(9).String())
}
