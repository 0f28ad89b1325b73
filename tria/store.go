// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// store.go: arena storage of the entity hierarchy.
//
// Layout:
//   - objs[sd][level] holds every object of structural dimension sd (1..dim)
//     created on that level as parallel slices indexed by the object index.
//   - cells[level] holds the cell-only attributes, aligned with objs[dim][level].
//   - Vertices live in one flat array; a vertex is never leveled.
//   - keys[sd] maps the sorted vertex tuple of every used shared object
//     (1 <= sd < dim) to its handle, so neighbors reuse the same face or edge.
//
// Slots are never compacted: retired slots go to a free list and are reused by
// later allocations, so handles of live objects are stable.

package tria

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/refcell"
	"github.com/katalvlaran/lvmesh/types"
)

// ref is the internal handle of an object within its structural dimension.
type ref struct {
	level, index int
}

var noRef = ref{level: types.InvalidIndex, index: types.InvalidIndex}

func (r ref) valid() bool { return r.level >= 0 && r.index >= 0 }

// objKey is the sorted vertex tuple of a shared object, padded with -1.
type objKey [4]int

func keyOf(verts []int) objKey {
	k := objKey{-1, -1, -1, -1}
	n := copy(k[:], verts)
	slices.Sort(k[:n])

	return k
}

type objectLevel struct {
	nv, nf int

	used      []bool
	vertices  []int
	children  []int
	parent    []int
	faces     []ref
	boundary  []types.BoundaryID
	manifold  []types.ManifoldID
	userFlag  []bool
	userIndex []int
	userPtr   []any

	freeGroups  []int
	freeSingles []int
}

func newObjectLevel(sd int) *objectLevel {
	ol := &objectLevel{nv: refcell.NVertices(sd)}
	if sd >= 2 {
		ol.nf = refcell.NFaces(sd)
	}

	return ol
}

func (ol *objectLevel) size() int { return len(ol.used) }

func (ol *objectLevel) grow(n int) int {
	start := len(ol.used)
	for i := 0; i < n; i++ {
		ol.used = append(ol.used, false)
		for j := 0; j < ol.nv; j++ {
			ol.vertices = append(ol.vertices, types.InvalidIndex)
		}
		ol.children = append(ol.children, types.InvalidIndex)
		ol.parent = append(ol.parent, types.InvalidIndex)
		for j := 0; j < ol.nf; j++ {
			ol.faces = append(ol.faces, noRef)
		}
		ol.boundary = append(ol.boundary, types.InternalFaceBoundaryID)
		ol.manifold = append(ol.manifold, types.FlatManifoldID)
		ol.userFlag = append(ol.userFlag, false)
		ol.userIndex = append(ol.userIndex, 0)
		ol.userPtr = append(ol.userPtr, nil)
	}

	return start
}

func (ol *objectLevel) verts(i int) []int { return ol.vertices[i*ol.nv : (i+1)*ol.nv] }

func (ol *objectLevel) faceRefs(i int) []ref { return ol.faces[i*ol.nf : (i+1)*ol.nf] }

func (ol *objectLevel) active(i int) bool { return ol.used[i] && ol.children[i] < 0 }

type cellLevel struct {
	nf int

	material    []types.MaterialID
	refine      []bool
	coarsen     []bool
	activeIndex []int
	neighbors   []ref
}

func (cl *cellLevel) grow(n int) {
	for i := 0; i < n; i++ {
		cl.material = append(cl.material, 0)
		cl.refine = append(cl.refine, false)
		cl.coarsen = append(cl.coarsen, false)
		cl.activeIndex = append(cl.activeIndex, types.InvalidIndex)
		for j := 0; j < cl.nf; j++ {
			cl.neighbors = append(cl.neighbors, noRef)
		}
	}
}

func (cl *cellLevel) neighborRefs(i int) []ref { return cl.neighbors[i*cl.nf : (i+1)*cl.nf] }

type store struct {
	dim int

	objs  [refcell.MaxDim + 1][]*objectLevel
	cells []*cellLevel
	keys  [refcell.MaxDim]map[objKey]ref

	vertices     []r3.Vec
	vertexUsed   []bool
	freeVertices []int

	// dim == 1 only: tags of boundary vertices.
	vertexBoundary map[int]types.BoundaryID
	vertexManifold map[int]types.ManifoldID
}

func newStore(dim int) *store {
	s := &store{
		dim:            dim,
		vertexBoundary: make(map[int]types.BoundaryID),
		vertexManifold: make(map[int]types.ManifoldID),
	}
	for sd := 1; sd < dim; sd++ {
		s.keys[sd] = make(map[objKey]ref)
	}

	return s
}

func (s *store) empty() bool { return len(s.cells) == 0 }

func (s *store) nLevels(sd int) int { return len(s.objs[sd]) }

func (s *store) level(sd, lvl int) *objectLevel { return s.objs[sd][lvl] }

func (s *store) ensureLevel(sd, lvl int) {
	for len(s.objs[sd]) <= lvl {
		s.objs[sd] = append(s.objs[sd], newObjectLevel(sd))
		if sd == s.dim {
			s.cells = append(s.cells, &cellLevel{nf: refcell.NFaces(s.dim)})
		}
	}
}

// allocate reserves n unused slots on (sd, lvl) and returns the first index.
// Groups are the 2^sd children of one parent and are reused as a whole.
func (s *store) allocate(sd, lvl, n int, group bool) int {
	s.ensureLevel(sd, lvl)
	ol := s.objs[sd][lvl]
	if group && len(ol.freeGroups) > 0 {
		start := ol.freeGroups[len(ol.freeGroups)-1]
		ol.freeGroups = ol.freeGroups[:len(ol.freeGroups)-1]
		return start
	}
	if !group && n == 1 && len(ol.freeSingles) > 0 {
		start := ol.freeSingles[len(ol.freeSingles)-1]
		ol.freeSingles = ol.freeSingles[:len(ol.freeSingles)-1]
		return start
	}
	start := ol.grow(n)
	if sd == s.dim {
		s.cells[lvl].grow(n)
	}

	return start
}

// place marks slot r as a used, childless object with the given vertices and tags.
func (s *store) place(sd int, r ref, verts []int, parent int, b types.BoundaryID, m types.ManifoldID) {
	ol := s.objs[sd][r.level]
	ol.used[r.index] = true
	copy(ol.verts(r.index), verts)
	ol.children[r.index] = types.InvalidIndex
	ol.parent[r.index] = parent
	ol.boundary[r.index] = b
	ol.manifold[r.index] = m
	ol.userFlag[r.index] = false
	ol.userIndex[r.index] = 0
	ol.userPtr[r.index] = nil
	if sd == s.dim {
		cl := s.cells[r.level]
		cl.refine[r.index] = false
		cl.coarsen[r.index] = false
	}
}

// retire marks slot r unused and drops its key. The caller returns the slot
// to a free list.
func (s *store) retire(sd int, r ref) {
	ol := s.objs[sd][r.level]
	if sd < s.dim {
		delete(s.keys[sd], keyOf(ol.verts(r.index)))
	}
	ol.used[r.index] = false
	ol.children[r.index] = types.InvalidIndex
	ol.parent[r.index] = types.InvalidIndex
	for i := range ol.faceRefs(r.index) {
		ol.faces[r.index*ol.nf+i] = noRef
	}
	ol.userFlag[r.index] = false
	ol.userIndex[r.index] = 0
	ol.userPtr[r.index] = nil
	if sd == s.dim {
		cl := s.cells[r.level]
		cl.refine[r.index] = false
		cl.coarsen[r.index] = false
		cl.activeIndex[r.index] = types.InvalidIndex
	}
}

func (s *store) register(sd int, r ref) {
	s.keys[sd][keyOf(s.objs[sd][r.level].verts(r.index))] = r
}

func (s *store) lookup(sd int, verts []int) (ref, bool) {
	r, ok := s.keys[sd][keyOf(verts)]

	return r, ok
}

// centerVertex returns the vertex created at the center of a refined object:
// the last vertex of its first child.
func (s *store) centerVertex(sd int, r ref) int {
	first := s.objs[sd][r.level].children[r.index]

	return s.objs[sd][r.level+1].verts(first)[refcell.CenterOfChildZero(sd)]
}

func (s *store) addVertex(p r3.Vec) int {
	if n := len(s.freeVertices); n > 0 {
		v := s.freeVertices[n-1]
		s.freeVertices = s.freeVertices[:n-1]
		s.vertices[v] = p
		s.vertexUsed[v] = true
		return v
	}
	s.vertices = append(s.vertices, p)
	s.vertexUsed = append(s.vertexUsed, true)

	return len(s.vertices) - 1
}

func (s *store) points(verts []int) []r3.Vec {
	out := make([]r3.Vec, len(verts))
	for i, v := range verts {
		out[i] = s.vertices[v]
	}

	return out
}

// rebuildFreeLists recomputes free slots after a bulk load. Every unused
// slot becomes a single; groups are re-formed by later coarsening.
func (s *store) rebuildFreeLists() {
	for sd := 1; sd <= s.dim; sd++ {
		for _, ol := range s.objs[sd] {
			ol.freeGroups, ol.freeSingles = nil, nil
			for i := ol.size() - 1; i >= 0; i-- {
				if !ol.used[i] {
					ol.freeSingles = append(ol.freeSingles, i)
				}
			}
		}
	}
	s.freeVertices = nil
	for v := len(s.vertexUsed) - 1; v >= 0; v-- {
		if !s.vertexUsed[v] {
			s.freeVertices = append(s.freeVertices, v)
		}
	}
}

// rebuildKeys recomputes the lookup maps of shared objects.
func (s *store) rebuildKeys() {
	for sd := 1; sd < s.dim; sd++ {
		s.keys[sd] = make(map[objKey]ref)
		for lvl, ol := range s.objs[sd] {
			for i := 0; i < ol.size(); i++ {
				if ol.used[i] {
					s.register(sd, ref{lvl, i})
				}
			}
		}
	}
}

func (s *store) clone() *store {
	c := newStore(s.dim)
	for sd := 1; sd <= s.dim; sd++ {
		for _, ol := range s.objs[sd] {
			n := *ol
			n.used = slices.Clone(ol.used)
			n.vertices = slices.Clone(ol.vertices)
			n.children = slices.Clone(ol.children)
			n.parent = slices.Clone(ol.parent)
			n.faces = slices.Clone(ol.faces)
			n.boundary = slices.Clone(ol.boundary)
			n.manifold = slices.Clone(ol.manifold)
			n.userFlag = slices.Clone(ol.userFlag)
			n.userIndex = slices.Clone(ol.userIndex)
			n.userPtr = slices.Clone(ol.userPtr)
			n.freeGroups = slices.Clone(ol.freeGroups)
			n.freeSingles = slices.Clone(ol.freeSingles)
			c.objs[sd] = append(c.objs[sd], &n)
		}
	}
	for _, cl := range s.cells {
		n := *cl
		n.material = slices.Clone(cl.material)
		n.refine = slices.Clone(cl.refine)
		n.coarsen = slices.Clone(cl.coarsen)
		n.activeIndex = slices.Clone(cl.activeIndex)
		n.neighbors = slices.Clone(cl.neighbors)
		c.cells = append(c.cells, &n)
	}
	c.vertices = slices.Clone(s.vertices)
	c.vertexUsed = slices.Clone(s.vertexUsed)
	c.freeVertices = slices.Clone(s.freeVertices)
	for v, b := range s.vertexBoundary {
		c.vertexBoundary[v] = b
	}
	for v, m := range s.vertexManifold {
		c.vertexManifold[v] = m
	}
	c.rebuildKeys()

	return c
}
