// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// accessor.go: lightweight handles to mesh objects.
//
// An Object addresses any entity (vertex, line, quad, hex) by structural
// dimension, level and index; a Cell is an Object of structural dimension
// Dim with the cell-only operations added. Handles are plain values: they
// stay valid across mutations as long as the addressed slot is used.

package tria

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/geometry"
	"github.com/katalvlaran/lvmesh/refcell"
	"github.com/katalvlaran/lvmesh/types"
)

// Object is a handle to a vertex (StructDim 0), line, quad or hex.
type Object struct {
	t  *Triangulation
	sd int
	r  ref
}

// Cell is a handle to an object of structural dimension Dim.
type Cell struct {
	Object
}

func (t *Triangulation) object(sd int, r ref) Object { return Object{t: t, sd: sd, r: r} }

func (t *Triangulation) cell(r ref) Cell { return Cell{Object: t.object(t.dim, r)} }

// Vertex returns the handle of vertex v.
func (t *Triangulation) Vertex(v int) Object { return t.object(0, ref{0, v}) }

// Cell returns the handle of the cell with the given id.
func (t *Triangulation) Cell(id CellID) (Cell, error) {
	c := t.cell(ref{id.Level, id.Index})
	if !c.Used() {
		return Cell{}, precondition("Cell", ErrInvalidHandle, "no used cell %s", id)
	}

	return c, nil
}

func (o Object) ol() *objectLevel { return o.t.s.objs[o.sd][o.r.level] }

// Triangulation returns the mesh the handle belongs to.
func (o Object) Triangulation() *Triangulation { return o.t }

// StructDim returns 0 for vertices, 1 for lines, 2 for quads, 3 for hexes.
func (o Object) StructDim() int { return o.sd }

// Level returns the refinement level; vertices report 0.
func (o Object) Level() int { return o.r.level }

// Index returns the index within the level (the vertex index for vertices).
func (o Object) Index() int { return o.r.index }

// Used reports whether the handle addresses a live entity.
func (o Object) Used() bool {
	if o.t == nil || o.r.level < 0 || o.r.index < 0 {
		return false
	}
	if o.sd == 0 {
		return o.r.index < len(o.t.s.vertexUsed) && o.t.s.vertexUsed[o.r.index]
	}
	if o.sd > o.t.dim || o.r.level >= o.t.s.nLevels(o.sd) || o.r.index >= o.ol().size() {
		return false
	}

	return o.ol().used[o.r.index]
}

// HasChildren reports whether the object has been refined.
func (o Object) HasChildren() bool {
	return o.sd > 0 && o.Used() && o.ol().children[o.r.index] >= 0
}

// Active reports whether the object is used and has no children.
func (o Object) Active() bool { return o.Used() && !o.HasChildren() }

// NChildren returns 2^StructDim for refined objects and 0 otherwise.
func (o Object) NChildren() int {
	if !o.HasChildren() {
		return 0
	}

	return refcell.NChildren(o.sd)
}

// Child returns child i. The handle is invalid if the object has no children.
func (o Object) Child(i int) Object {
	if !o.HasChildren() {
		return Object{}
	}

	return o.t.object(o.sd, ref{o.r.level + 1, o.ol().children[o.r.index] + i})
}

// Parent returns the object this one was created from by refinement.
// Coarse objects and interior objects created during refinement have none.
func (o Object) Parent() (Object, bool) {
	if o.sd == 0 || !o.Used() {
		return Object{}, false
	}
	p := o.ol().parent[o.r.index]
	if p < 0 {
		return Object{}, false
	}

	return o.t.object(o.sd, ref{o.r.level - 1, p}), true
}

// NVertices returns 2^StructDim.
func (o Object) NVertices() int { return refcell.NVertices(o.sd) }

// VertexIndex returns the global index of local vertex i.
func (o Object) VertexIndex(i int) int {
	if o.sd == 0 {
		return o.r.index
	}

	return o.ol().verts(o.r.index)[i]
}

// VertexIndices returns a copy of the global vertex indices.
func (o Object) VertexIndices() []int {
	if o.sd == 0 {
		return []int{o.r.index}
	}

	return append([]int(nil), o.ol().verts(o.r.index)...)
}

// Vertex returns the position of local vertex i.
func (o Object) Vertex(i int) r3.Vec { return o.t.s.vertices[o.VertexIndex(i)] }

// Points returns the positions of all vertices in local order.
func (o Object) Points() []r3.Vec { return o.t.s.points(o.VertexIndices()) }

// NFaces returns the number of facets: 2*StructDim.
func (o Object) NFaces() int { return refcell.NFaces(o.sd) }

// Face returns facet f. Facets of lines are vertices.
func (o Object) Face(f int) Object {
	switch {
	case o.sd == 0:
		return Object{}
	case o.sd == 1:
		return o.t.Vertex(o.ol().verts(o.r.index)[f])
	default:
		return o.t.object(o.sd-1, o.ol().faceRefs(o.r.index)[f])
	}
}

// Lines returns the edges of a quad or hex.
func (o Object) Lines() []Object {
	switch o.sd {
	case 2:
		out := make([]Object, 4)
		for f := range out {
			out[f] = o.Face(f)
		}
		return out
	case 3:
		var out []Object
		seen := make(map[ref]bool, 12)
		for f := 0; f < 6; f++ {
			q := o.Face(f)
			for e := 0; e < 4; e++ {
				l := q.Face(e)
				if !seen[l.r] {
					seen[l.r] = true
					out = append(out, l)
				}
			}
		}
		return out
	default:
		return nil
	}
}

// Center returns the mean of the vertices.
func (o Object) Center() r3.Vec { return geometry.Center(o.Points()) }

// Measure returns the length, area or volume; vertices measure 0.
func (o Object) Measure() float64 {
	if o.sd == 0 {
		return 0
	}
	m, err := geometry.Measure(o.sd, o.t.spacedim, o.Points())
	if err != nil {
		return 0
	}

	return m
}

// Diameter returns the largest vertex distance.
func (o Object) Diameter() float64 { return geometry.Diameter(o.Points()) }

// BoundaryID returns the boundary id, or the internal sentinel for interior
// objects and cells.
func (o Object) BoundaryID() types.BoundaryID {
	switch {
	case o.sd == 0:
		if b, ok := o.t.s.vertexBoundary[o.r.index]; ok && o.t.dim == 1 {
			return b
		}
		return types.InternalFaceBoundaryID
	case o.sd == o.t.dim:
		return types.InternalFaceBoundaryID
	default:
		return o.ol().boundary[o.r.index]
	}
}

// AtBoundary reports whether a face or edge lies on the domain boundary, or
// whether a cell has at least one face there.
func (o Object) AtBoundary() bool {
	if o.sd == o.t.dim && o.sd > 0 {
		for f := 0; f < o.NFaces(); f++ {
			if o.Face(f).AtBoundary() {
				return true
			}
		}
		return false
	}

	return !o.BoundaryID().IsInternal()
}

// SetBoundaryID tags a boundary face or edge. Interior objects and cells
// cannot carry a boundary id other than the internal sentinel.
func (o Object) SetBoundaryID(b types.BoundaryID) error {
	if err := o.t.checkIdle("SetBoundaryID"); err != nil {
		return err
	}
	if !o.Used() {
		return precondition("SetBoundaryID", ErrInvalidHandle, "unused object")
	}
	if o.sd == o.t.dim {
		return precondition("SetBoundaryID", ErrBoundaryIDOnInterior, "cells carry no boundary id")
	}
	cur := o.BoundaryID()
	if cur.IsInternal() && !b.IsInternal() {
		return precondition("SetBoundaryID", ErrBoundaryIDOnInterior, "object is interior")
	}
	if !cur.IsInternal() && b.IsInternal() {
		return precondition("SetBoundaryID", ErrBoundaryIDOnInterior, "boundary object cannot become interior")
	}
	if cur.IsInternal() {
		return nil
	}
	if o.sd == 0 {
		o.t.s.vertexBoundary[o.r.index] = b
		return nil
	}
	o.ol().boundary[o.r.index] = b

	return nil
}

// SetAllBoundaryIDs tags a boundary face together with its edges.
func (o Object) SetAllBoundaryIDs(b types.BoundaryID) error {
	if err := o.SetBoundaryID(b); err != nil {
		return err
	}
	if o.sd >= 2 {
		for _, l := range o.Lines() {
			if err := l.SetBoundaryID(b); err != nil {
				return err
			}
		}
	}

	return nil
}

// ManifoldID returns the manifold id.
func (o Object) ManifoldID() types.ManifoldID {
	if o.sd == 0 {
		if m, ok := o.t.s.vertexManifold[o.r.index]; ok {
			return m
		}
		return types.FlatManifoldID
	}

	return o.ol().manifold[o.r.index]
}

// SetManifoldID sets the manifold id of the object.
func (o Object) SetManifoldID(m types.ManifoldID) error {
	if err := o.t.checkIdle("SetManifoldID"); err != nil {
		return err
	}
	if !o.Used() {
		return precondition("SetManifoldID", ErrInvalidHandle, "unused object")
	}
	if o.sd == 0 {
		if o.t.dim != 1 {
			return precondition("SetManifoldID", ErrPrecondition, "vertices carry no manifold id for dim > 1")
		}
		o.t.s.vertexManifold[o.r.index] = m
		return nil
	}
	o.ol().manifold[o.r.index] = m

	return nil
}

// SetAllManifoldIDs sets the manifold id of the object and of every
// lower-dimensional object bounding it.
func (o Object) SetAllManifoldIDs(m types.ManifoldID) error {
	if err := o.SetManifoldID(m); err != nil {
		return err
	}
	if o.sd >= 2 {
		for f := 0; f < o.NFaces(); f++ {
			if err := o.Face(f).SetAllManifoldIDs(m); err != nil {
				return err
			}
		}
	}

	return nil
}

// MaterialID returns the material of a cell and 0 for other objects.
func (o Object) MaterialID() types.MaterialID {
	if o.sd != o.t.dim {
		return 0
	}

	return o.t.s.cells[o.r.level].material[o.r.index]
}

// SetMaterialID sets the material of a cell.
func (o Object) SetMaterialID(m types.MaterialID) error {
	if err := o.t.checkIdle("SetMaterialID"); err != nil {
		return err
	}
	if o.sd != o.t.dim {
		return precondition("SetMaterialID", ErrMaterialOnNonCell, "structdim %d", o.sd)
	}
	if !o.Used() {
		return precondition("SetMaterialID", ErrInvalidHandle, "unused cell")
	}
	o.t.s.cells[o.r.level].material[o.r.index] = m

	return nil
}

// UserFlag returns the user flag. Vertices carry none.
func (o Object) UserFlag() bool {
	if o.sd == 0 {
		return false
	}

	return o.ol().userFlag[o.r.index]
}

// SetUserFlag raises the user flag.
func (o Object) SetUserFlag() {
	if o.sd > 0 {
		o.ol().userFlag[o.r.index] = true
	}
}

// ClearUserFlag lowers the user flag.
func (o Object) ClearUserFlag() {
	if o.sd > 0 {
		o.ol().userFlag[o.r.index] = false
	}
}

// UserIndex returns the user index (0 when unset).
func (o Object) UserIndex() int {
	if o.sd == 0 {
		return 0
	}

	return o.ol().userIndex[o.r.index]
}

// SetUserIndex stores an index. Fails while user pointers are in use.
func (o Object) SetUserIndex(i int) error {
	if o.sd == 0 {
		return precondition("SetUserIndex", ErrPrecondition, "vertices carry no user data")
	}
	if o.t.userMode == userDataPointer {
		return precondition("SetUserIndex", ErrUserDataMode, "user pointers in use")
	}
	o.t.userMode = userDataIndex
	o.ol().userIndex[o.r.index] = i

	return nil
}

// UserPointer returns the user pointer (nil when unset).
func (o Object) UserPointer() any {
	if o.sd == 0 {
		return nil
	}

	return o.ol().userPtr[o.r.index]
}

// SetUserPointer stores an opaque value. Fails while user indices are in use.
func (o Object) SetUserPointer(p any) error {
	if o.sd == 0 {
		return precondition("SetUserPointer", ErrPrecondition, "vertices carry no user data")
	}
	if o.t.userMode == userDataIndex {
		return precondition("SetUserPointer", ErrUserDataMode, "user indices in use")
	}
	o.t.userMode = userDataPointer
	o.ol().userPtr[o.r.index] = p

	return nil
}

// AsCell converts the handle when its structural dimension equals Dim.
func (o Object) AsCell() (Cell, bool) {
	if o.t == nil || o.sd != o.t.dim {
		return Cell{}, false
	}

	return Cell{Object: o}, true
}

func (c Cell) cl() *cellLevel { return c.t.s.cells[c.r.level] }

// ID returns the level/index pair of the cell.
func (c Cell) ID() CellID { return CellID{Level: c.r.level, Index: c.r.index} }

// Child returns child cell i.
func (c Cell) Child(i int) Cell { return Cell{Object: c.Object.Child(i)} }

// Parent returns the parent cell; level-0 cells have none.
func (c Cell) Parent() (Cell, bool) {
	p, ok := c.Object.Parent()

	return Cell{Object: p}, ok
}

// ActiveIndex returns the dense index among active cells, or -1.
func (c Cell) ActiveIndex() int {
	if !c.Active() {
		return types.InvalidIndex
	}

	return c.cl().activeIndex[c.r.index]
}

// RefineFlag reports whether the cell is flagged for refinement.
func (c Cell) RefineFlag() bool { return c.Used() && c.cl().refine[c.r.index] }

// CoarsenFlag reports whether the cell is flagged for coarsening.
func (c Cell) CoarsenFlag() bool { return c.Used() && c.cl().coarsen[c.r.index] }

func (c Cell) checkFlaggable(op string) error {
	if err := c.t.checkIdle(op); err != nil {
		return err
	}
	if !c.Used() {
		return precondition(op, ErrInvalidHandle, "unused cell")
	}
	if c.HasChildren() {
		return precondition(op, ErrNotActive, "cell %s has children", c.ID())
	}

	return nil
}

// SetRefineFlag flags an active cell for refinement.
func (c Cell) SetRefineFlag() error {
	if err := c.checkFlaggable("SetRefineFlag"); err != nil {
		return err
	}
	c.cl().refine[c.r.index] = true

	return nil
}

// ClearRefineFlag removes the refinement flag.
func (c Cell) ClearRefineFlag() error {
	if err := c.checkFlaggable("ClearRefineFlag"); err != nil {
		return err
	}
	c.cl().refine[c.r.index] = false

	return nil
}

// SetCoarsenFlag flags an active cell for coarsening.
func (c Cell) SetCoarsenFlag() error {
	if err := c.checkFlaggable("SetCoarsenFlag"); err != nil {
		return err
	}
	c.cl().coarsen[c.r.index] = true

	return nil
}

// ClearCoarsenFlag removes the coarsening flag.
func (c Cell) ClearCoarsenFlag() error {
	if err := c.checkFlaggable("ClearCoarsenFlag"); err != nil {
		return err
	}
	c.cl().coarsen[c.r.index] = false

	return nil
}

// Neighbor returns the cell across face f: the same-level neighbor when it
// exists, otherwise the coarser active cell. The second result is false at
// the boundary.
func (c Cell) Neighbor(f int) (Cell, bool) {
	n := c.cl().neighborRefs(c.r.index)[f]
	if !n.valid() {
		return Cell{}, false
	}

	return c.t.cell(n), true
}

// AtBoundaryFace reports whether face f has no neighbor.
func (c Cell) AtBoundaryFace(f int) bool {
	_, ok := c.Neighbor(f)

	return !ok
}

// NeighborIsCoarser reports whether the neighbor across f is on a lower level.
func (c Cell) NeighborIsCoarser(f int) bool {
	n, ok := c.Neighbor(f)

	return ok && n.Level() < c.Level()
}

// ActiveNeighbors returns the active cells sharing a part of face f.
func (c Cell) ActiveNeighbors(f int) []Cell {
	n, ok := c.Neighbor(f)
	if !ok {
		return nil
	}
	if n.Level() < c.Level() || n.Active() {
		return []Cell{n}
	}
	// n is refined: descend through the children touching the shared face.
	opp := c.t.sharedFace(n.r, c.r, f)
	if opp < 0 {
		return nil
	}
	var out []Cell
	var walk func(x Cell)
	walk = func(x Cell) {
		if x.Active() {
			out = append(out, x)
			return
		}
		for i := 0; i < x.NChildren(); i++ {
			if refcell.FaceOnParent(i, opp) {
				walk(x.Child(i))
			}
		}
	}
	walk(n)

	return out
}
