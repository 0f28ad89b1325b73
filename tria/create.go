// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// create.go: building the coarse mesh from a vertex list and cell descriptions.
//
// Contract:
//   - The mesh must be empty; nothing is mutated unless every check passes.
//   - Cells list 2^dim vertex indices in lexicographic order.
//   - Faces shared by two cells are interior, faces used once are boundary
//     faces with boundary id 0 (their edges too in 3D). In 1D the boundary
//     vertex that is local vertex i of its cell gets boundary id i.
//   - SubCellSet entries override tags of existing lines and quads.

package tria

import (
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/geometry"
	"github.com/katalvlaran/lvmesh/refcell"
	"github.com/katalvlaran/lvmesh/types"
)

// Create populates an empty mesh with level-0 cells.
func (t *Triangulation) Create(vertices []r3.Vec, cells []CellData, sub SubCellSet) error {
	release, err := t.guard("Create")
	if err != nil {
		return err
	}
	defer release()
	if !t.s.empty() {
		return precondition("Create", ErrNotEmpty, "%d level(s) present", t.NLevels())
	}
	if len(cells) == 0 {
		return precondition("Create", ErrConnectivity, "no cells")
	}

	used, err := t.validateCells(vertices, cells)
	if err != nil {
		return err
	}
	if a, b, ok := findCoincident(vertices, used, t.vertexTol); ok {
		return precondition("Create", ErrDuplicateVertex, "vertices %d and %d", a, b)
	}
	if t.dim == t.spacedim {
		var bad []int
		for i, c := range cells {
			m, _ := geometry.Measure(t.dim, t.spacedim, pick(vertices, c.Vertices))
			if m <= 0 {
				bad = append(bad, i)
			}
		}
		if len(bad) > 0 {
			return &OrientationError{Cells: bad}
		}
	}

	s, err := t.buildCoarse(vertices, used, cells)
	if err != nil {
		return err
	}
	if err := applySubCells(s, sub); err != nil {
		return err
	}

	t.s = s
	t.recompute()
	t.log.Info("coarse mesh created",
		zap.Int("dim", t.dim),
		zap.Int("spacedim", t.spacedim),
		zap.Int("cells", len(cells)),
		zap.Int("vertices", t.NUsedVertices()))
	t.hub.FireCreate()

	if t.checkDistortion && t.dim == t.spacedim {
		var distorted []CellID
		for c := range t.ActiveCells() {
			if geometry.IsDistorted(t.dim, t.spacedim, c.Points()) {
				distorted = append(distorted, c.ID())
			}
		}
		if len(distorted) > 0 {
			return &DistortedCellsError{Cells: distorted}
		}
	}

	return nil
}

func (t *Triangulation) validateCells(vertices []r3.Vec, cells []CellData) ([]bool, error) {
	nv := refcell.NVertices(t.dim)
	used := make([]bool, len(vertices))
	for i, c := range cells {
		if len(c.Vertices) != nv {
			return nil, precondition("Create", ErrVertexIndex, "cell %d has %d vertices, want %d", i, len(c.Vertices), nv)
		}
		for j, v := range c.Vertices {
			if v < 0 || v >= len(vertices) {
				return nil, precondition("Create", ErrVertexIndex, "cell %d vertex %d out of range", i, v)
			}
			if slices.Contains(c.Vertices[:j], v) {
				return nil, precondition("Create", ErrVertexIndex, "cell %d repeats vertex %d", i, v)
			}
			used[v] = true
		}
	}

	return used, nil
}

func (t *Triangulation) buildCoarse(vertices []r3.Vec, used []bool, cells []CellData) (*store, error) {
	s := newStore(t.dim)
	s.vertices = slices.Clone(vertices)
	s.vertexUsed = used
	for v, u := range used {
		if !u {
			s.freeVertices = append(s.freeVertices, v)
		}
	}
	slices.Reverse(s.freeVertices)

	s.allocate(t.dim, 0, len(cells), false)
	for i, c := range cells {
		s.place(t.dim, ref{0, i}, c.Vertices, types.InvalidIndex, types.InternalFaceBoundaryID, c.ManifoldID)
		s.cells[0].material[i] = c.MaterialID
	}

	if t.dim == 1 {
		count := make(map[int]int)
		local := make(map[int]int)
		for _, c := range cells {
			for j, v := range c.Vertices {
				count[v]++
				local[v] = j
			}
		}
		for v, n := range count {
			switch {
			case n > 2:
				return nil, precondition("Create", ErrConnectivity, "vertex %d shared by %d cells", v, n)
			case n == 1:
				s.vertexBoundary[v] = types.BoundaryID(local[v])
			}
		}
		return s, nil
	}

	nf := refcell.NFaces(t.dim)
	usage := make(map[ref]int)
	cellsL := s.objs[t.dim][0]
	for i := range cells {
		cv := cellsL.verts(i)
		for f := 0; f < nf; f++ {
			fr := s.ensure(t.dim-1, pick(cv, refcell.FaceVertices(t.dim, f)), 0, types.InternalFaceBoundaryID, types.FlatManifoldID)
			cellsL.faces[i*nf+f] = fr
			usage[fr]++
			if usage[fr] > 2 {
				return nil, precondition("Create", ErrConnectivity, "face of cell %d shared by more than two cells", i)
			}
		}
	}
	faces := s.objs[t.dim-1][0]
	for fr, n := range usage {
		if n != 1 {
			continue
		}
		faces.boundary[fr.index] = 0
		if t.dim == 3 {
			for _, lr := range faces.faceRefs(fr.index) {
				s.objs[1][0].boundary[lr.index] = 0
			}
		}
	}

	return s, nil
}

func applySubCells(s *store, sub SubCellSet) error {
	groups := []struct {
		sd   int
		data []SubCellData
	}{{1, sub.Lines}, {2, sub.Quads}}
	for _, g := range groups {
		if len(g.data) == 0 {
			continue
		}
		if g.sd >= s.dim {
			return precondition("Create", ErrNoSuchSubEntity, "structdim %d overrides in a %dD mesh", g.sd, s.dim)
		}
		for i, d := range g.data {
			r, ok := s.lookup(g.sd, d.Vertices)
			if !ok {
				return precondition("Create", ErrNoSuchSubEntity, "structdim %d entry %d: %v", g.sd, i, d.Vertices)
			}
			ol := s.objs[g.sd][r.level]
			cur := ol.boundary[r.index]
			if cur.IsInternal() && !d.BoundaryID.IsInternal() {
				return precondition("Create", ErrBoundaryIDOnInterior, "structdim %d entry %d: %v", g.sd, i, d.Vertices)
			}
			if !d.BoundaryID.IsInternal() {
				ol.boundary[r.index] = d.BoundaryID
			}
			ol.manifold[r.index] = d.ManifoldID
		}
	}

	return nil
}

// ensure returns the shared object with the given vertices, creating it
// (and, for quads, its edges) on level lvl when it does not exist yet.
func (s *store) ensure(sd int, verts []int, lvl int, b types.BoundaryID, m types.ManifoldID) ref {
	if r, ok := s.lookup(sd, verts); ok {
		return r
	}
	r := ref{lvl, s.allocate(sd, lvl, 1, false)}
	s.place(sd, r, verts, types.InvalidIndex, b, m)
	if sd >= 2 {
		ol := s.objs[sd][lvl]
		for f := 0; f < refcell.NFaces(sd); f++ {
			fr := s.ensure(sd-1, pick(verts, refcell.FaceVertices(sd, f)), lvl, b, m)
			ol.faces[r.index*ol.nf+f] = fr
		}
	}
	s.register(sd, r)

	return r
}

func pick[T any](src []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}

	return out
}

// findCoincident reports two used vertices closer than tol (equal when tol is 0).
func findCoincident(vertices []r3.Vec, used []bool, tol float64) (int, int, bool) {
	var idx []int
	for v, u := range used {
		if u {
			idx = append(idx, v)
		}
	}
	slices.SortFunc(idx, func(a, b int) int {
		switch {
		case vertices[a].X < vertices[b].X:
			return -1
		case vertices[a].X > vertices[b].X:
			return 1
		default:
			return a - b
		}
	})
	for i, a := range idx {
		for _, b := range idx[i+1:] {
			if vertices[b].X-vertices[a].X > tol {
				break
			}
			if r3.Norm(r3.Sub(vertices[a], vertices[b])) <= tol {
				return min(a, b), max(a, b), true
			}
		}
	}

	return 0, 0, false
}
