// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// iterators.go: lazy, restartable traversals and counts.
//
// Every traversal visits levels in increasing order and indices in
// increasing order within a level. Sequences read the live mesh: do not
// mutate the mesh while ranging over one.

package tria

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/types"
)

func (t *Triangulation) objects(sd int, activeOnly bool) iter.Seq[Object] {
	return func(yield func(Object) bool) {
		if sd == 0 {
			for v, u := range t.s.vertexUsed {
				if u && !yield(t.Vertex(v)) {
					return
				}
			}
			return
		}
		if sd > t.dim {
			return
		}
		for lvl, ol := range t.s.objs[sd] {
			for i := 0; i < ol.size(); i++ {
				if !ol.used[i] || (activeOnly && ol.children[i] >= 0) {
					continue
				}
				if !yield(t.object(sd, ref{lvl, i})) {
					return
				}
			}
		}
	}
}

func asCells(seq iter.Seq[Object]) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for o := range seq {
			if !yield(Cell{Object: o}) {
				return
			}
		}
	}
}

// Cells visits every used cell.
func (t *Triangulation) Cells() iter.Seq[Cell] { return asCells(t.objects(t.dim, false)) }

// ActiveCells visits every used cell without children.
func (t *Triangulation) ActiveCells() iter.Seq[Cell] { return asCells(t.objects(t.dim, true)) }

// Objects visits every used object of structural dimension sd (0 = vertices).
func (t *Triangulation) Objects(sd int) iter.Seq[Object] { return t.objects(sd, false) }

// ActiveObjects visits every used object of dimension sd without children.
func (t *Triangulation) ActiveObjects(sd int) iter.Seq[Object] { return t.objects(sd, true) }

// Faces visits every used face: objects of dimension Dim-1, vertices in 1D.
func (t *Triangulation) Faces() iter.Seq[Object] { return t.objects(t.dim-1, false) }

// ActiveFaces visits every used face without children.
func (t *Triangulation) ActiveFaces() iter.Seq[Object] { return t.objects(t.dim-1, true) }

// Lines visits every used line.
func (t *Triangulation) Lines() iter.Seq[Object] { return t.objects(1, false) }

// Quads visits every used quadrilateral.
func (t *Triangulation) Quads() iter.Seq[Object] { return t.objects(2, false) }

// Hexes visits every used hexahedron.
func (t *Triangulation) Hexes() iter.Seq[Object] { return t.objects(3, false) }

// Vertices visits every used vertex.
func (t *Triangulation) Vertices() iter.Seq[Object] { return t.objects(0, false) }

// LevelView restricts traversals and counts to one level.
type LevelView struct {
	t     *Triangulation
	level int
}

// Level returns a view of level l. Fails if l >= NLevels.
func (t *Triangulation) Level(l int) (LevelView, error) {
	if l < 0 || l >= t.NLevels() {
		return LevelView{}, precondition("Level", ErrLevelOutOfRange, "level %d, have %d", l, t.NLevels())
	}

	return LevelView{t: t, level: l}, nil
}

func (v LevelView) cells(activeOnly, raw bool) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		ol := v.t.s.objs[v.t.dim][v.level]
		for i := 0; i < ol.size(); i++ {
			if !raw && (!ol.used[i] || (activeOnly && ol.children[i] >= 0)) {
				continue
			}
			if !yield(v.t.cell(ref{v.level, i})) {
				return
			}
		}
	}
}

// Cells visits the used cells of the level.
func (v LevelView) Cells() iter.Seq[Cell] { return v.cells(false, false) }

// ActiveCells visits the active cells of the level.
func (v LevelView) ActiveCells() iter.Seq[Cell] { return v.cells(true, false) }

// RawCells visits every slot of the level, used or not.
func (v LevelView) RawCells() iter.Seq[Cell] { return v.cells(false, true) }

// NCells returns the number of used cells on the level.
func (v LevelView) NCells() int { return v.t.cache.used[v.t.dim][v.level] }

// NActiveCells returns the number of active cells on the level.
func (v LevelView) NActiveCells() int { return v.t.cache.active[v.t.dim][v.level] }

// NRawCells returns the number of slots on the level.
func (v LevelView) NRawCells() int { return v.t.s.objs[v.t.dim][v.level].size() }

// NLevels returns the number of levels holding used cells.
func (t *Triangulation) NLevels() int { return len(t.s.objs[t.dim]) }

// NCells returns the number of used cells on all levels.
func (t *Triangulation) NCells() int { return t.cache.usedTotal[t.dim] }

// NActiveCells returns the number of active cells.
func (t *Triangulation) NActiveCells() int { return t.cache.activeTotal[t.dim] }

// NRawCells returns the number of cell slots on all levels, used or not.
func (t *Triangulation) NRawCells() int {
	n := 0
	for _, ol := range t.s.objs[t.dim] {
		n += ol.size()
	}

	return n
}

// NObjects returns the number of used objects of dimension sd.
func (t *Triangulation) NObjects(sd int) int {
	switch {
	case sd == 0:
		return t.cache.usedVertices
	case sd < 0 || sd > t.dim:
		return 0
	default:
		return t.cache.usedTotal[sd]
	}
}

// NActiveObjects returns the number of used objects of dimension sd without children.
func (t *Triangulation) NActiveObjects(sd int) int {
	switch {
	case sd == 0:
		return t.cache.usedVertices
	case sd < 0 || sd > t.dim:
		return 0
	default:
		return t.cache.activeTotal[sd]
	}
}

// NLines returns the number of used lines.
func (t *Triangulation) NLines() int { return t.NObjects(1) }

// NActiveLines returns the number of active lines.
func (t *Triangulation) NActiveLines() int { return t.NActiveObjects(1) }

// NQuads returns the number of used quadrilaterals.
func (t *Triangulation) NQuads() int { return t.NObjects(2) }

// NActiveQuads returns the number of active quadrilaterals.
func (t *Triangulation) NActiveQuads() int { return t.NActiveObjects(2) }

// NHexes returns the number of used hexahedra.
func (t *Triangulation) NHexes() int { return t.NObjects(3) }

// NActiveHexes returns the number of active hexahedra.
func (t *Triangulation) NActiveHexes() int { return t.NActiveObjects(3) }

// NFaces returns the number of used faces (used vertices in 1D).
func (t *Triangulation) NFaces() int { return t.NObjects(t.dim - 1) }

// NActiveFaces returns the number of active faces.
func (t *Triangulation) NActiveFaces() int { return t.NActiveObjects(t.dim - 1) }

// NVertices returns the length of the vertex array, including unused slots.
func (t *Triangulation) NVertices() int { return len(t.s.vertices) }

// NUsedVertices returns the number of vertices referenced by some object.
func (t *Triangulation) NUsedVertices() int { return t.cache.usedVertices }

// VertexPositions returns a copy of the vertex array.
func (t *Triangulation) VertexPositions() []r3.Vec { return append([]r3.Vec(nil), t.s.vertices...) }

// UsedVertices returns a copy of the used bits of the vertex array.
func (t *Triangulation) UsedVertices() []bool { return append([]bool(nil), t.s.vertexUsed...) }

// HasHangingNodes reports whether some active cell has a coarser neighbor.
func (t *Triangulation) HasHangingNodes() bool {
	for c := range t.ActiveCells() {
		for f := 0; f < c.NFaces(); f++ {
			if c.NeighborIsCoarser(f) {
				return true
			}
		}
	}

	return false
}

// MaxAdjacentCells returns the largest number of coarse cells sharing a vertex.
func (t *Triangulation) MaxAdjacentCells() int {
	if t.NLevels() == 0 {
		return 0
	}
	count := make(map[int]int)
	best := 0
	ol := t.s.objs[t.dim][0]
	for i := 0; i < ol.size(); i++ {
		if !ol.used[i] {
			continue
		}
		for _, v := range ol.verts(i) {
			count[v]++
			best = max(best, count[v])
		}
	}

	return best
}

// ActiveCellByIndex returns the active cell with dense index i.
func (t *Triangulation) ActiveCellByIndex(i int) (Cell, bool) {
	for c := range t.ActiveCells() {
		if c.ActiveIndex() == i {
			return c, true
		}
	}

	return Cell{}, false
}

// BoundaryIDs returns the distinct boundary ids of all boundary faces.
func (t *Triangulation) BoundaryIDs() []types.BoundaryID {
	set := make(map[types.BoundaryID]bool)
	for f := range t.ActiveFaces() {
		if b := f.BoundaryID(); !b.IsInternal() {
			set[b] = true
		}
	}

	return sortedKeys(set)
}

// ManifoldIDs returns the distinct manifold ids of all used objects,
// including the flat sentinel when present.
func (t *Triangulation) ManifoldIDs() []types.ManifoldID {
	set := make(map[types.ManifoldID]bool)
	for sd := 1; sd <= t.dim; sd++ {
		for o := range t.Objects(sd) {
			set[o.ManifoldID()] = true
		}
	}
	for _, m := range t.s.vertexManifold {
		set[m] = true
	}

	return sortedKeys(set)
}

// MaterialIDs returns the distinct material ids of the active cells.
func (t *Triangulation) MaterialIDs() []types.MaterialID {
	set := make(map[types.MaterialID]bool)
	for c := range t.ActiveCells() {
		set[c.MaterialID()] = true
	}

	return sortedKeys(set)
}
