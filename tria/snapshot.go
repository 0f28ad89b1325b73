// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// snapshot.go: a plain-data image of the whole mesh and its restoration.
//
// A Snapshot carries every persisted attribute: vertices and their used
// bits, the per-level object arrays of each structural dimension, the
// per-level cell attributes, the smoothing policy, the distortion policy,
// the anisotropy flag and, in 1D, the vertex tags. Derived data (neighbor
// table, active indices, counts, lookup maps, free lists) is rebuilt on load.

package tria

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/refcell"
	"github.com/katalvlaran/lvmesh/types"
)

// Ref addresses an object by level and index in a Snapshot.
type Ref struct {
	Level int
	Index int
}

// ObjectLevelSnapshot holds the objects of one structural dimension on one level.
type ObjectLevelSnapshot struct {
	Used        []bool
	Vertices    []int
	Children    []int
	Parents     []int
	Faces       []Ref
	BoundaryIDs []types.BoundaryID
	ManifoldIDs []types.ManifoldID
	UserFlags   []bool

	// Retired slots awaiting reuse: first indices of sibling groups and
	// single slots, in reuse order (last one first).
	FreeGroups  []int
	FreeSingles []int
}

// CellLevelSnapshot holds the cell-only attributes of one level.
type CellLevelSnapshot struct {
	MaterialIDs  []types.MaterialID
	RefineFlags  []bool
	CoarsenFlags []bool
}

// Snapshot is a self-contained image of a mesh.
type Snapshot struct {
	Dim             int
	SpaceDim        int
	Smoothing       MeshSmoothing
	CheckDistortion bool
	Anisotropic     bool

	Vertices   []r3.Vec
	VertexUsed []bool

	// Objects[sd-1][level] for sd in 1..Dim.
	Objects [][]ObjectLevelSnapshot
	Cells   []CellLevelSnapshot

	VertexBoundaryIDs map[int]types.BoundaryID
	VertexManifoldIDs map[int]types.ManifoldID
}

// Snapshot captures the current state.
func (t *Triangulation) Snapshot() *Snapshot {
	s := t.s
	snap := &Snapshot{
		Dim:               t.dim,
		SpaceDim:          t.spacedim,
		Smoothing:         t.smoothing,
		CheckDistortion:   t.checkDistortion,
		Vertices:          slices.Clone(s.vertices),
		VertexUsed:        slices.Clone(s.vertexUsed),
		Objects:           make([][]ObjectLevelSnapshot, t.dim),
		VertexBoundaryIDs: maps.Clone(s.vertexBoundary),
		VertexManifoldIDs: maps.Clone(s.vertexManifold),
	}
	for sd := 1; sd <= t.dim; sd++ {
		for _, ol := range s.objs[sd] {
			ls := ObjectLevelSnapshot{
				Used:        slices.Clone(ol.used),
				Vertices:    slices.Clone(ol.vertices),
				Children:    slices.Clone(ol.children),
				Parents:     slices.Clone(ol.parent),
				BoundaryIDs: slices.Clone(ol.boundary),
				ManifoldIDs: slices.Clone(ol.manifold),
				UserFlags:   slices.Clone(ol.userFlag),
				FreeGroups:  cloneNonEmpty(ol.freeGroups),
				FreeSingles: cloneNonEmpty(ol.freeSingles),
			}
			for _, f := range ol.faces {
				ls.Faces = append(ls.Faces, Ref{Level: f.level, Index: f.index})
			}
			snap.Objects[sd-1] = append(snap.Objects[sd-1], ls)
		}
	}
	for _, cl := range s.cells {
		snap.Cells = append(snap.Cells, CellLevelSnapshot{
			MaterialIDs:  slices.Clone(cl.material),
			RefineFlags:  slices.Clone(cl.refine),
			CoarsenFlags: slices.Clone(cl.coarsen),
		})
	}

	return snap
}

// Load replaces the mesh content with snap. It fires clear and then create.
// The snapshot must have been taken under the same distortion policy.
func (t *Triangulation) Load(snap *Snapshot) error {
	release, err := t.guard("Load")
	if err != nil {
		return err
	}
	defer release()
	if snap == nil {
		return precondition("Load", ErrSnapshot, "nil snapshot")
	}
	if snap.CheckDistortion != t.checkDistortion {
		return precondition("Load", ErrPolicyMismatch, "snapshot %v, mesh %v", snap.CheckDistortion, t.checkDistortion)
	}
	s, err := t.restore(snap)
	if err != nil {
		return err
	}

	t.clear()
	t.s = s
	t.smoothing = snap.Smoothing
	t.recompute()
	t.log.Info("mesh loaded", zap.Int("levels", t.NLevels()), zap.Int("active_cells", t.NActiveCells()))
	t.hub.FireCreate()

	return nil
}

func (t *Triangulation) restore(snap *Snapshot) (*store, error) {
	bad := func(format string, args ...any) error {
		return precondition("Load", ErrSnapshot, format, args...)
	}
	if snap.Dim != t.dim || snap.SpaceDim != t.spacedim {
		return nil, bad("dimension %d/%d, mesh %d/%d", snap.Dim, snap.SpaceDim, t.dim, t.spacedim)
	}
	if snap.Anisotropic {
		return nil, bad("anisotropic refinement is not supported")
	}
	if len(snap.VertexUsed) != len(snap.Vertices) {
		return nil, bad("vertex arrays differ in length")
	}
	if len(snap.Objects) != t.dim {
		return nil, bad("%d object dimensions, want %d", len(snap.Objects), t.dim)
	}
	if len(snap.Cells) != len(snap.Objects[t.dim-1]) {
		return nil, bad("%d cell levels, %d object levels", len(snap.Cells), len(snap.Objects[t.dim-1]))
	}

	s := newStore(t.dim)
	s.vertices = slices.Clone(snap.Vertices)
	s.vertexUsed = slices.Clone(snap.VertexUsed)
	for v, b := range snap.VertexBoundaryIDs {
		s.vertexBoundary[v] = b
	}
	for v, m := range snap.VertexManifoldIDs {
		s.vertexManifold[v] = m
	}
	nVert := len(s.vertices)

	for sd := 1; sd <= t.dim; sd++ {
		levels := snap.Objects[sd-1]
		for lvl, ls := range levels {
			ol := newObjectLevel(sd)
			n := len(ls.Used)
			if len(ls.Vertices) != n*ol.nv || len(ls.Children) != n || len(ls.Parents) != n ||
				len(ls.Faces) != n*ol.nf || len(ls.BoundaryIDs) != n || len(ls.ManifoldIDs) != n || len(ls.UserFlags) != n {
				return nil, bad("structdim %d level %d: inconsistent array lengths", sd, lvl)
			}
			ol.grow(n)
			copy(ol.used, ls.Used)
			copy(ol.vertices, ls.Vertices)
			copy(ol.children, ls.Children)
			copy(ol.parent, ls.Parents)
			copy(ol.boundary, ls.BoundaryIDs)
			copy(ol.manifold, ls.ManifoldIDs)
			copy(ol.userFlag, ls.UserFlags)
			// Retired slots keep their invalid links; only used slots are checked.
			for i := 0; i < n; i++ {
				if !ls.Used[i] {
					continue
				}
				for _, v := range ol.verts(i) {
					if v < 0 || v >= nVert {
						return nil, bad("structdim %d level %d: vertex %d out of range", sd, lvl, v)
					}
				}
				if c := ls.Children[i]; c >= 0 && (lvl+1 >= len(levels) || c+refcell.NChildren(sd) > len(levels[lvl+1].Used)) {
					return nil, bad("structdim %d level %d: child index %d out of range", sd, lvl, c)
				}
				if p := ls.Parents[i]; p >= 0 && (lvl == 0 || p >= len(levels[lvl-1].Used)) {
					return nil, bad("structdim %d level %d: parent index %d out of range", sd, lvl, p)
				}
				for j := i * ol.nf; j < (i+1)*ol.nf; j++ {
					f := ls.Faces[j]
					if f.Level < 0 || f.Index < 0 || f.Level >= len(snap.Objects[sd-2]) || f.Index >= len(snap.Objects[sd-2][f.Level].Used) {
						return nil, bad("structdim %d level %d: face %d out of range", sd, lvl, j)
					}
					ol.faces[j] = ref{f.Level, f.Index}
				}
			}
			s.objs[sd] = append(s.objs[sd], ol)
		}
	}
	s.rebuildFreeLists()
	for sd := 1; sd <= t.dim; sd++ {
		for lvl, ls := range snap.Objects[sd-1] {
			if len(ls.FreeGroups) == 0 && len(ls.FreeSingles) == 0 {
				continue
			}
			if err := restoreFreeLists(s.objs[sd][lvl], sd, ls); err != nil {
				return nil, bad("structdim %d level %d: %v", sd, lvl, err)
			}
		}
	}
	for lvl, cs := range snap.Cells {
		n := s.objs[t.dim][lvl].size()
		if len(cs.MaterialIDs) != n || len(cs.RefineFlags) != n || len(cs.CoarsenFlags) != n {
			return nil, bad("cell level %d: inconsistent array lengths", lvl)
		}
		cl := &cellLevel{nf: refcell.NFaces(t.dim)}
		cl.grow(n)
		copy(cl.material, cs.MaterialIDs)
		copy(cl.refine, cs.RefineFlags)
		copy(cl.coarsen, cs.CoarsenFlags)
		s.cells = append(s.cells, cl)
	}
	s.rebuildKeys()

	return s, nil
}

// restoreFreeLists installs the free lists of ls on ol. Every listed slot
// must be unused and listed once; every unused slot must be listed.
func restoreFreeLists(ol *objectLevel, sd int, ls ObjectLevelSnapshot) error {
	listed := make([]bool, ol.size())
	take := func(i int) error {
		if i < 0 || i >= ol.size() || ol.used[i] || listed[i] {
			return fmt.Errorf("free slot %d is not a distinct unused slot", i)
		}
		listed[i] = true
		return nil
	}
	nc := refcell.NChildren(sd)
	for _, g := range ls.FreeGroups {
		for c := 0; c < nc; c++ {
			if err := take(g + c); err != nil {
				return err
			}
		}
	}
	for _, i := range ls.FreeSingles {
		if err := take(i); err != nil {
			return err
		}
	}
	for i, u := range ol.used {
		if !u && !listed[i] {
			return fmt.Errorf("unused slot %d is not on a free list", i)
		}
	}
	ol.freeGroups = slices.Clone(ls.FreeGroups)
	ol.freeSingles = slices.Clone(ls.FreeSingles)

	return nil
}

func cloneNonEmpty(s []int) []int {
	if len(s) == 0 {
		return nil
	}

	return slices.Clone(s)
}
