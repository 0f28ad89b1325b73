// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// options.go: functional options for New.
//
// Contract:
//   - Option constructors validate their input and panic on meaningless
//     values (nil logger, negative tolerance). Mesh operations never panic.

package tria

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/manifold"
)

// Option customizes a Triangulation at construction time.
type Option func(*Triangulation)

// WithSmoothing sets the smoothing policy applied by
// PrepareCoarseningAndRefinement.
func WithSmoothing(s MeshSmoothing) Option {
	return func(t *Triangulation) { t.smoothing = s }
}

// WithDistortionCheck enables the check for cells with a non-positive
// Jacobian determinant after Create and after refinement.
func WithDistortionCheck(on bool) Option {
	return func(t *Triangulation) { t.checkDistortion = on }
}

// WithVertexTolerance sets the distance below which two vertices handed to
// Create count as coincident. Panics if tol is negative.
func WithVertexTolerance(tol float64) Option {
	if tol < 0 {
		panic("tria: WithVertexTolerance(negative)")
	}

	return func(t *Triangulation) { t.vertexTol = tol }
}

// WithLogger routes diagnostics to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("tria: WithLogger(nil)")
	}

	return func(t *Triangulation) { t.log = l }
}

// WithManifolds shares an existing registry instead of a private one. Panics on nil.
func WithManifolds(r *manifold.Registry) Option {
	if r == nil {
		panic("tria: WithManifolds(nil)")
	}

	return func(t *Triangulation) { t.manifolds = r }
}
