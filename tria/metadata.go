// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// metadata.go: bulk tag assignment and vertex movement.

package tria

import (
	"cmp"
	"maps"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/types"
)

func sortedKeys[K cmp.Ordered](m map[K]bool) []K {
	return slices.Sorted(maps.Keys(m))
}

// SetAllManifoldIDs assigns m to every used object of every dimension >= 1.
func (t *Triangulation) SetAllManifoldIDs(m types.ManifoldID) error {
	if err := t.checkIdle("SetAllManifoldIDs"); err != nil {
		return err
	}
	for sd := 1; sd <= t.dim; sd++ {
		for _, ol := range t.s.objs[sd] {
			for i := range ol.manifold {
				if ol.used[i] {
					ol.manifold[i] = m
				}
			}
		}
	}

	return nil
}

// boundaryObjects visits every used face and edge (vertex in 1D) on the boundary.
func (t *Triangulation) boundaryObjects(fn func(o Object)) {
	if t.dim == 1 {
		for _, v := range slices.Sorted(maps.Keys(t.s.vertexBoundary)) {
			fn(t.Vertex(v))
		}
		return
	}
	for sd := 1; sd < t.dim; sd++ {
		for o := range t.Objects(sd) {
			if !o.BoundaryID().IsInternal() {
				fn(o)
			}
		}
	}
}

// SetAllManifoldIDsOnBoundary assigns m to every boundary face and edge.
func (t *Triangulation) SetAllManifoldIDsOnBoundary(m types.ManifoldID) error {
	if err := t.checkIdle("SetAllManifoldIDsOnBoundary"); err != nil {
		return err
	}
	t.boundaryObjects(func(o Object) { t.setManifold(o, m) })

	return nil
}

// SetAllManifoldIDsOnBoundaryID assigns m to every boundary face and edge
// carrying boundary id b.
func (t *Triangulation) SetAllManifoldIDsOnBoundaryID(b types.BoundaryID, m types.ManifoldID) error {
	if err := t.checkIdle("SetAllManifoldIDsOnBoundaryID"); err != nil {
		return err
	}
	t.boundaryObjects(func(o Object) {
		if o.BoundaryID() == b {
			t.setManifold(o, m)
		}
	})

	return nil
}

func (t *Triangulation) setManifold(o Object, m types.ManifoldID) {
	if o.sd == 0 {
		t.s.vertexManifold[o.r.index] = m
		return
	}
	o.ol().manifold[o.r.index] = m
}

// Transform moves every used vertex through fn and fires mesh_movement.
func (t *Triangulation) Transform(fn func(r3.Vec) r3.Vec) error {
	release, err := t.guard("Transform")
	if err != nil {
		return err
	}
	defer release()
	for v, u := range t.s.vertexUsed {
		if u {
			t.s.vertices[v] = fn(t.s.vertices[v])
		}
	}
	t.hub.FireMeshMovement()

	return nil
}

// SetVertexPosition moves one used vertex and fires mesh_movement.
func (t *Triangulation) SetVertexPosition(v int, p r3.Vec) error {
	release, err := t.guard("SetVertexPosition")
	if err != nil {
		return err
	}
	defer release()
	if v < 0 || v >= len(t.s.vertices) || !t.s.vertexUsed[v] {
		return precondition("SetVertexPosition", ErrVertexIndex, "vertex %d", v)
	}
	t.s.vertices[v] = p
	t.hub.FireMeshMovement()

	return nil
}
