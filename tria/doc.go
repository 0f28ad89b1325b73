// SPDX-License-Identifier: MIT
// Package tria implements a hierarchical, adaptively refinable mesh of
// lines (1D), quadrilaterals (2D) or hexahedra (3D) embedded in one to three
// space dimensions.
//
// What:
//
//   - A coarse mesh is built once from vertices and cell descriptions
//     (Create). Every later mesh is derived from it by isotropic refinement
//     (each cell splits into 2^dim children) and by coarsening (a complete
//     group of siblings is removed and their parent becomes active again).
//   - All entities live in per-level arenas addressed by (level, index).
//     Object and Cell are small value handles into those arenas.
//   - Faces and, in 3D, edges are shared between neighboring cells.
//     Boundary faces carry a BoundaryID, every object carries a ManifoldID
//     and cells carry a MaterialID. Children inherit their parent's tags.
//
// Refinement cycle:
//
//	flags -> PrepareCoarseningAndRefinement -> ExecuteCoarseningAndRefinement
//
// Preparation keeps the mesh one-irregular (neighbors across a face or an
// edge differ by at most one level), makes coarsening all-or-nothing per
// sibling group and applies the MeshSmoothing policy.
//
// Notifications:
//
//	Signals() exposes a hub with create, pre/post refinement, clear, copy,
//	mesh movement, per-cell and cell-weight channels. Callbacks run
//	synchronously in registration order and must not mutate the mesh:
//	mutations from inside a callback fail with ErrReentrant.
//
// Errors:
//
//	Every failure is an error matching a sentinel of this package through
//	errors.Is; inverted input cells yield *OrientationError and distorted
//	children *DistortedCellsError.
//
// Concurrency:
//
//	A Triangulation is not safe for concurrent mutation. Readers may share
//	it while no mutation runs.
package tria
