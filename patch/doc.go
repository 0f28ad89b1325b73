// SPDX-License-Identifier: MIT

// Package patch walks the dual graph of a mesh: active cells are the nodes
// and two cells are adjacent when they share (part of) a face.
//
// Walk is a breadth-first search with hooks, a depth limit, a neighbor
// filter and context cancellation. Around collects the layered patch of a
// cell and Components splits the cells matching a predicate into
// face-connected groups, e.g. to find islands of cells flagged for
// refinement.
//
// The walk reads the mesh only; do not mutate the triangulation from the
// hooks.
package patch
