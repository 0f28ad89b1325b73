// SPDX-License-Identifier: MIT
package manifold_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/manifold"
	"github.com/katalvlaran/lvmesh/types"
)

func TestFlat_Mean(t *testing.T) {
	p := manifold.Flat{}.NewPoint([]r3.Vec{{X: 0}, {X: 2, Y: 4}}, []float64{0.5, 0.5})
	assert.Equal(t, r3.Vec{X: 1, Y: 2}, p)
}

func TestSpherical_MidpointOnCircle(t *testing.T) {
	s := manifold.NewSpherical(r3.Vec{})
	p := s.NewPoint([]r3.Vec{{X: 1}, {Y: 1}}, []float64{0.5, 0.5})
	assert.InDelta(t, 1.0, r3.Norm(p), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, p.X, 1e-12)
	assert.InDelta(t, math.Sqrt2/2, p.Y, 1e-12)
}

func TestSpherical_DegenerateFallsBack(t *testing.T) {
	s := manifold.NewSpherical(r3.Vec{})
	p := s.NewPoint([]r3.Vec{{X: 1}, {X: -1}}, []float64{0.5, 0.5})
	assert.Equal(t, r3.Vec{}, p)
}

func TestRegistry(t *testing.T) {
	r := manifold.NewRegistry()
	require.ErrorIs(t, r.Set(types.FlatManifoldID, manifold.Flat{}), manifold.ErrFlatID)
	require.ErrorIs(t, r.Set(1, nil), manifold.ErrNilManifold)
	require.NoError(t, r.Set(3, manifold.NewSpherical(r3.Vec{})))
	require.NoError(t, r.Set(1, manifold.Flat{}))
	assert.Equal(t, []types.ManifoldID{1, 3}, r.IDs())

	_, fallback := r.Resolve(7)
	assert.True(t, fallback)
	m, fallback := r.Resolve(3)
	assert.False(t, fallback)
	assert.IsType(t, manifold.Spherical{}, m)

	c := r.Clone()
	r.Reset(3)
	_, ok := r.Get(3)
	assert.False(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)

	r.ResetAll()
	assert.Empty(t, r.IDs())
	_, ok = r.Get(types.FlatManifoldID)
	assert.True(t, ok)
}
