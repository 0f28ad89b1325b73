// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// merge.go: removal of coincident and unused vertices from raw input.

package tria

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// MergeDuplicateVertices collapses vertices closer than tol onto the one
// with the smallest index, drops vertices no cell references and renumbers
// the cells. The inputs are not modified. A cell vertex outside the vertex
// list fails with ErrVertexIndex.
func MergeDuplicateVertices(vertices []r3.Vec, cells []CellData, tol float64) ([]r3.Vec, []CellData, error) {
	for i, c := range cells {
		for _, v := range c.Vertices {
			if v < 0 || v >= len(vertices) {
				return nil, nil, precondition("MergeDuplicateVertices", ErrVertexIndex, "cell %d vertex %d out of range", i, v)
			}
		}
	}
	parent := make([]int, len(vertices))
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	order := make([]int, len(vertices))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case vertices[a].X < vertices[b].X:
			return -1
		case vertices[a].X > vertices[b].X:
			return 1
		default:
			return a - b
		}
	})
	for i, a := range order {
		for _, b := range order[i+1:] {
			if vertices[b].X-vertices[a].X > tol {
				break
			}
			if r3.Norm(r3.Sub(vertices[a], vertices[b])) <= tol {
				ra, rb := find(a), find(b)
				parent[max(ra, rb)] = min(ra, rb)
			}
		}
	}
	repr := make([]int, len(vertices))
	for i := range repr {
		repr[i] = find(i)
	}

	used := make([]bool, len(vertices))
	for _, c := range cells {
		for _, v := range c.Vertices {
			used[repr[v]] = true
		}
	}
	newIndex := make([]int, len(vertices))
	var out []r3.Vec
	for v := range vertices {
		newIndex[v] = -1
		if used[v] {
			newIndex[v] = len(out)
			out = append(out, vertices[v])
		}
	}
	outCells := make([]CellData, len(cells))
	for i, c := range cells {
		outCells[i] = c
		outCells[i].Vertices = make([]int, len(c.Vertices))
		for j, v := range c.Vertices {
			outCells[i].Vertices[j] = newIndex[repr[v]]
		}
	}

	return out, outCells, nil
}
