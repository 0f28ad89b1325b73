// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// api.go: public entry points.
//
// Contract:
//   - Build creates the triangulation, resolves the configuration and runs
//     one recipe. Fill does the same against a caller-owned, empty mesh.
//   - A recipe validates its parameters before touching the mesh; on error
//     the mesh is left empty.
//   - Determinism: equal inputs and options (including the jitter seed)
//     produce identical meshes.

package gridgen

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/tria"
)

// Constructor populates an empty triangulation. Implementations return
// sentinel errors and never panic.
type Constructor func(tr *tria.Triangulation, cfg genConfig) error

// Build creates a dim-dimensional mesh in spacedim-dimensional space with
// the triangulation options topts and runs con with the options gopts.
// Errors from tria.New and from the recipe are wrapped with "Build".
func Build(dim, spacedim int, topts []tria.Option, gopts []Option, con Constructor) (*tria.Triangulation, error) {
	if con == nil {
		return nil, fmt.Errorf("Build: %w", ErrNilConstructor)
	}
	tr, err := tria.New(dim, spacedim, topts...)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	if err := con(tr, newGenConfig(gopts...)); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return tr, nil
}

// Fill runs con against tr, which must be empty.
func Fill(tr *tria.Triangulation, con Constructor, opts ...Option) error {
	if con == nil {
		return fmt.Errorf("Fill: %w", ErrNilConstructor)
	}
	if !tr.Empty() {
		return fmt.Errorf("Fill: %d active cell(s): %w", tr.NActiveCells(), ErrNotEmpty)
	}
	if err := con(tr, newGenConfig(opts...)); err != nil {
		return fmt.Errorf("Fill: %w", err)
	}

	return nil
}
