// SPDX-License-Identifier: MIT

// Package lvmesh is an in-memory engine for hierarchical hypercube meshes:
// intervals in 1D, quadrilaterals in 2D and hexahedra in 3D, refined and
// coarsened adaptively while keeping a consistent multilevel hierarchy.
//
// What is in the box:
//
//	types/      identifier types and the invalid sentinels
//	refcell/    reference-cell tables (vertices, faces, children per dimension)
//	geometry/   measures, centers and Jacobian checks on vertex lists
//	manifold/   flat and spherical descriptions used to place new vertices
//	signals/    ordered listeners notified around mesh changes
//	tria/       the triangulation: creation, flags, refinement, coarsening, queries
//	flagio/     text streams for refine, coarsen and user flag vectors
//	gridgen/    coarse mesh recipes (hypercube, subdivided box, L shape, shell)
//	patch/      breadth-first walks and connected regions over active cells
//	codec/      YAML and JSON snapshot documents
//	store/      SQLite repository of named snapshots
//	config/     YAML/TOML settings for meshes, logging and storage
//	cmd/meshctl  command line front end
//
// Quick start:
//
//	tr, _ := gridgen.Build(2, 2, nil, nil, gridgen.HyperCube(0, 1))
//	_ = tr.RefineGlobal(2)
//	for c := range tr.ActiveCells() {
//		if c.Center().X < 0.25 {
//			_ = c.SetRefineFlag()
//		}
//	}
//	_ = tr.ExecuteCoarseningAndRefinement()
//
//	go get github.com/katalvlaran/lvmesh
package lvmesh
