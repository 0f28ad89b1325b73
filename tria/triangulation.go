// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// triangulation.go: the Triangulation type, its constructor and the
// operations that act on the mesh as a whole.

package tria

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/manifold"
	"github.com/katalvlaran/lvmesh/signals"
	"github.com/katalvlaran/lvmesh/types"
)

// Hub is the notification hub type of a Triangulation.
type Hub = signals.Hub[Cell, *Triangulation]

type userDataMode int

const (
	userDataNone userDataMode = iota
	userDataIndex
	userDataPointer
)

// Triangulation is a hierarchical hypercube mesh of dimension Dim embedded in
// SpaceDim-dimensional space.
//
// A Triangulation is not safe for concurrent mutation; concurrent readers are
// fine while no mutation is in progress.
type Triangulation struct {
	dim, spacedim int

	smoothing       MeshSmoothing
	checkDistortion bool
	vertexTol       float64
	log             *zap.Logger

	s         *store
	manifolds *manifold.Registry
	hub       Hub
	cache     numberCache
	userMode  userDataMode

	// busy is set while a mutation or its notifications are in progress.
	busy bool
	// warned holds manifold ids for which the flat fallback was already logged.
	warned map[types.ManifoldID]bool
}

// New returns an empty mesh. Requires 1 <= dim <= spacedim <= 3.
func New(dim, spacedim int, opts ...Option) (*Triangulation, error) {
	if dim < 1 || dim > 3 || spacedim < dim || spacedim > 3 {
		return nil, precondition("New", ErrDimension, "dim=%d spacedim=%d", dim, spacedim)
	}
	t := &Triangulation{
		dim:      dim,
		spacedim: spacedim,
		log:      zap.NewNop(),
		warned:   make(map[types.ManifoldID]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.manifolds == nil {
		t.manifolds = manifold.NewRegistry()
	}
	t.s = newStore(dim)
	t.recompute()

	return t, nil
}

// Dim returns the dimension of the cells.
func (t *Triangulation) Dim() int { return t.dim }

// SpaceDim returns the dimension of the embedding space.
func (t *Triangulation) SpaceDim() int { return t.spacedim }

// Smoothing returns the active smoothing policy.
func (t *Triangulation) Smoothing() MeshSmoothing { return t.smoothing }

// SetSmoothing replaces the smoothing policy.
func (t *Triangulation) SetSmoothing(s MeshSmoothing) { t.smoothing = s }

// CheckDistortion reports whether the distortion check is enabled.
func (t *Triangulation) CheckDistortion() bool { return t.checkDistortion }

// Signals returns the notification hub. Subscribers must not mutate the mesh.
func (t *Triangulation) Signals() *Hub { return &t.hub }

// Manifolds returns the manifold registry consulted during refinement.
func (t *Triangulation) Manifolds() *manifold.Registry { return t.manifolds }

// Logger returns the diagnostics logger.
func (t *Triangulation) Logger() *zap.Logger { return t.log }

// Empty reports whether the mesh holds no cells.
func (t *Triangulation) Empty() bool { return t.s.empty() }

// guard marks the mesh busy for the duration of a mutation. The returned
// function releases it.
func (t *Triangulation) guard(op string) (func(), error) {
	if t.busy {
		return nil, precondition(op, ErrReentrant, "called while notifications are running")
	}
	t.busy = true

	return func() { t.busy = false }, nil
}

// Clear removes every entity and fires the clear notification. Manifold
// bindings, smoothing and subscribers are kept.
func (t *Triangulation) Clear() error {
	release, err := t.guard("Clear")
	if err != nil {
		return err
	}
	defer release()
	t.clear()

	return nil
}

func (t *Triangulation) clear() {
	t.s = newStore(t.dim)
	t.userMode = userDataNone
	t.recompute()
	t.hub.FireClear()
	t.log.Debug("mesh cleared", zap.Int("dim", t.dim))
}

// resolveManifold returns the capability for id, logging once per id when
// the flat fallback is used.
func (t *Triangulation) resolveManifold(id types.ManifoldID) manifold.Manifold {
	m, fallback := t.manifolds.Resolve(id)
	if fallback && !t.warned[id] {
		t.warned[id] = true
		t.log.Warn("no manifold bound to id, using flat geometry", zap.Uint32("manifold_id", uint32(id)))
	}

	return m
}

// SetManifold binds id to m in the mesh's registry.
func (t *Triangulation) SetManifold(id types.ManifoldID, m manifold.Manifold) error {
	if err := t.manifolds.Set(id, m); err != nil {
		return precondition("SetManifold", ErrPrecondition, "%v", err)
	}
	delete(t.warned, id)

	return nil
}

// ResetManifold removes the binding of id.
func (t *Triangulation) ResetManifold(id types.ManifoldID) { t.manifolds.Reset(id) }

// ResetAllManifolds removes every binding.
func (t *Triangulation) ResetAllManifolds() { t.manifolds.ResetAll() }

// GetManifold returns the capability bound to id; the flat id always resolves.
func (t *Triangulation) GetManifold(id types.ManifoldID) (manifold.Manifold, bool) {
	return t.manifolds.Get(id)
}
