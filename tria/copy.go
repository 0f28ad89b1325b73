// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// copy.go: deep copies between meshes.

package tria

// CopyTriangulation makes the empty mesh t a deep copy of src: entities,
// tags, flags, smoothing and distortion policies and manifold bindings.
// Subscribers are not copied. Fires copy on src, then create on t.
func (t *Triangulation) CopyTriangulation(src *Triangulation) error {
	if src == nil || src == t {
		return precondition("CopyTriangulation", ErrPrecondition, "source must be another mesh")
	}
	release, err := t.guard("CopyTriangulation")
	if err != nil {
		return err
	}
	defer release()
	srcRelease, err := src.guard("CopyTriangulation")
	if err != nil {
		return err
	}
	defer srcRelease()
	if !t.s.empty() {
		return precondition("CopyTriangulation", ErrNotEmpty, "destination has %d level(s)", t.NLevels())
	}
	if src.dim != t.dim || src.spacedim != t.spacedim {
		return precondition("CopyTriangulation", ErrDimension, "source %d/%d, destination %d/%d", src.dim, src.spacedim, t.dim, t.spacedim)
	}

	t.s = src.s.clone()
	t.smoothing = src.smoothing
	t.checkDistortion = src.checkDistortion
	t.vertexTol = src.vertexTol
	t.manifolds = src.manifolds.Clone()
	t.userMode = src.userMode
	t.recompute()

	src.hub.FireCopy(t)
	t.hub.FireCreate()

	return nil
}

// Clone returns a new mesh that is a deep copy of t, sharing its logger.
func (t *Triangulation) Clone() (*Triangulation, error) {
	c, err := New(t.dim, t.spacedim, WithLogger(t.log))
	if err != nil {
		return nil, err
	}
	if err := c.CopyTriangulation(t); err != nil {
		return nil, err
	}

	return c, nil
}
