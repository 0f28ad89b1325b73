// SPDX-License-Identifier: MIT

// Package gridgen builds coarse meshes for the tria engine.
//
// Every recipe is a Constructor: a closure that receives an empty
// *tria.Triangulation plus the resolved generator configuration and hands
// the engine a vertex list, a cell list and (optionally) boundary and
// manifold tags. Build creates the triangulation and runs one recipe; Fill
// runs a recipe against a triangulation the caller already owns.
//
// Recipes:
//
//   - HyperCube(left, right):              [left,right]^dim as a single cell.
//   - HyperRectangle(p1, p2):              the axis-aligned box spanned by p1 and p2.
//   - SubdividedHyperRectangle(reps, p1, p2): the same box cut into reps[a] cells along axis a.
//   - HyperL(left, right):                 the cube [left,right]^dim with the upper corner
//     quadrant (octant in 3D) removed, 2^dim-1 cells.
//   - HyperShell(center, inner, outer, n): a 2D annulus of n cells bound to a
//     spherical manifold.
//
// Options:
//
//   - WithColorize():       boundary faces on the lower/upper plane of axis a get
//     ids 2a and 2a+1; faces off the bounding box (HyperL re-entrant corner)
//     get 2*dim; shells tag the inner circle 0 and the outer circle 1.
//   - WithMaterial(m):      material id of every generated cell.
//   - WithManifoldID(m):    manifold id of every generated cell.
//   - WithJitter(f, seed):  moves interior vertices of subdivided boxes by up to
//     f times the local spacing, reproducibly for a given seed.
//
// Errors are package sentinels wrapped with the recipe name; branch with
// errors.Is. Option constructors panic on meaningless values, recipes never
// panic.
package gridgen
