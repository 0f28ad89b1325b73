// SPDX-License-Identifier: MIT
// Package manifold provides the geometric capabilities consulted when a new
// vertex is placed during refinement, and the Registry that maps manifold ids
// to them.
//
// A Manifold receives the vertices of the object being refined together with
// interpolation weights summing to one and returns the new point.
package manifold

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/types"
)

var (
	// ErrFlatID is returned when a capability is bound to the flat sentinel id.
	ErrFlatID = errors.New("manifold: flat manifold id cannot be bound")

	// ErrNilManifold is returned when Set is called with a nil capability.
	ErrNilManifold = errors.New("manifold: nil manifold")
)

// Manifold places new points on a curved or flat geometry.
type Manifold interface {
	// NewPoint returns the point associated with the weighted surrounding points.
	NewPoint(points []r3.Vec, weights []float64) r3.Vec
}

// Flat places new points at the weighted arithmetic mean.
type Flat struct{}

// NewPoint implements Manifold.
func (Flat) NewPoint(points []r3.Vec, weights []float64) r3.Vec {
	var p r3.Vec
	for i, q := range points {
		p = r3.Add(p, r3.Scale(weights[i], q))
	}

	return p
}

// Spherical places new points on spheres around Center: the direction is the
// normalized weighted mean direction and the radius the weighted mean radius.
type Spherical struct {
	Center r3.Vec
}

// NewSpherical returns a spherical capability around center.
func NewSpherical(center r3.Vec) Spherical { return Spherical{Center: center} }

// NewPoint implements Manifold. Degenerate inputs (a point at the center or
// antipodal directions) fall back to the flat mean.
func (s Spherical) NewPoint(points []r3.Vec, weights []float64) r3.Vec {
	var dir r3.Vec
	var radius float64
	for i, q := range points {
		d := r3.Sub(q, s.Center)
		n := r3.Norm(d)
		if n == 0 {
			return Flat{}.NewPoint(points, weights)
		}
		dir = r3.Add(dir, r3.Scale(weights[i]/n, d))
		radius += weights[i] * n
	}
	if r3.Norm(dir) == 0 {
		return Flat{}.NewPoint(points, weights)
	}

	return r3.Add(s.Center, r3.Scale(radius, r3.Unit(dir)))
}

// Registry maps manifold ids to capabilities. The zero value is not usable;
// call NewRegistry. A Registry is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[types.ManifoldID]Manifold
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[types.ManifoldID]Manifold)}
}

// Set binds id to m, replacing any previous binding.
func (r *Registry) Set(id types.ManifoldID, m Manifold) error {
	if id.IsFlat() {
		return fmt.Errorf("Set(%d): %w", id, ErrFlatID)
	}
	if m == nil {
		return fmt.Errorf("Set(%d): %w", id, ErrNilManifold)
	}
	r.mu.Lock()
	r.m[id] = m
	r.mu.Unlock()

	return nil
}

// Reset removes the binding of id. Unknown ids are ignored.
func (r *Registry) Reset(id types.ManifoldID) {
	r.mu.Lock()
	delete(r.m, id)
	r.mu.Unlock()
}

// ResetAll removes every binding.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	r.m = make(map[types.ManifoldID]Manifold)
	r.mu.Unlock()
}

// Get returns the capability bound to id. The flat id always resolves to Flat.
func (r *Registry) Get(id types.ManifoldID) (Manifold, bool) {
	if id.IsFlat() {
		return Flat{}, true
	}
	r.mu.RLock()
	m, ok := r.m[id]
	r.mu.RUnlock()

	return m, ok
}

// Resolve returns the capability bound to id, or Flat when none is bound.
// The second result reports whether a fallback happened.
func (r *Registry) Resolve(id types.ManifoldID) (Manifold, bool) {
	if m, ok := r.Get(id); ok {
		return m, false
	}

	return Flat{}, true
}

// IDs returns the bound ids in increasing order.
func (r *Registry) IDs() []types.ManifoldID {
	r.mu.RLock()
	out := make([]types.ManifoldID, 0, len(r.m))
	for id := range r.m {
		out = append(out, id)
	}
	r.mu.RUnlock()
	slices.Sort(out)

	return out
}

// Clone returns a registry holding the same capability references.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	r.mu.RLock()
	for id, m := range r.m {
		c.m[id] = m
	}
	r.mu.RUnlock()

	return c
}
