// SPDX-License-Identifier: MIT
// Package refcell holds the combinatorial tables of the reference hypercube
// in structural dimensions 0..3 (vertex, line, quadrilateral, hexahedron).
//
// Vertex numbering is lexicographic: local vertex v of an s-cube sits at the
// reference coordinates (bit0(v), bit1(v), bit2(v)). Face f of an s-cube is the
// facet orthogonal to axis f/2 on side f%2; its vertices are listed in
// increasing local order, which is again a lexicographic (s-1)-cube.
//
// Refinement is described by the lattice of the once-refined cube: 3^s points
// with coordinates in {0,1,2}^s. A lattice point whose coordinates contain k
// ones is the center of a k-dimensional sub-object of the parent (k == 0 is a
// parent vertex, k == s the parent center). Child c (lexicographic in {0,1}^s)
// has its vertex v at lattice point c+v.
//
// All tables are computed once at init and are read-only afterwards.
package refcell

// MaxDim is the largest supported structural dimension.
const MaxDim = 3

// LatticePoint describes one point of the refinement lattice.
type LatticePoint struct {
	// Coord holds the lattice coordinates, one per axis, each in {0,1,2}.
	Coord []int
	// Free lists the axes whose coordinate equals 1.
	Free []int
	// Corners lists the local parent vertices spanning the sub-object whose
	// center this point is, lexicographic over the free axes.
	Corners []int
}

type table struct {
	faces    [][]int
	subs     [][][]int // subs[k] = sub-objects of structdim k
	lattice  []LatticePoint
	children [][]int
}

var tables [MaxDim + 1]table

func init() {
	for s := 0; s <= MaxDim; s++ {
		tables[s] = build(s)
	}
}

// NVertices returns the number of vertices of an s-cube.
func NVertices(s int) int { return 1 << s }

// NFaces returns the number of facets of an s-cube (0 for a vertex).
func NFaces(s int) int { return 2 * s }

// NChildren returns the number of children produced by isotropic refinement.
func NChildren(s int) int { return 1 << s }

// FaceVertices returns the local vertex indices of face f of an s-cube.
func FaceVertices(s, f int) []int { return tables[s].faces[f] }

// FaceOnParent reports whether face f of child c lies on face f of its parent.
func FaceOnParent(c, f int) bool { return (c>>(f/2))&1 == f%2 }

// SubObjects returns every k-dimensional sub-object of an s-cube as a list of
// local vertex indices. For k == s-1 the order equals the face numbering.
func SubObjects(s, k int) [][]int { return tables[s].subs[k] }

// Lattice returns the 3^s lattice points of the once-refined s-cube.
func Lattice(s int) []LatticePoint { return tables[s].lattice }

// ChildLattice returns, for every child c, the lattice indices of its vertices.
func ChildLattice(s int) [][]int { return tables[s].children }

// CenterOfChildZero is the local vertex of child 0 that coincides with the
// parent center.
func CenterOfChildZero(s int) int { return (1 << s) - 1 }

func build(s int) table {
	var tb table

	tb.faces = make([][]int, NFaces(s))
	for f := range tb.faces {
		axis, side := f/2, f%2
		for v := 0; v < NVertices(s); v++ {
			if (v>>axis)&1 == side {
				tb.faces[f] = append(tb.faces[f], v)
			}
		}
	}

	tb.subs = make([][][]int, s+1)
	for k := 0; k <= s; k++ {
		tb.subs[k] = subObjects(s, k)
	}

	n := 1
	for i := 0; i < s; i++ {
		n *= 3
	}
	tb.lattice = make([]LatticePoint, n)
	for i := 0; i < n; i++ {
		tb.lattice[i] = latticePoint(s, i)
	}

	tb.children = make([][]int, NChildren(s))
	for c := range tb.children {
		tb.children[c] = make([]int, NVertices(s))
		for v := 0; v < NVertices(s); v++ {
			idx, mul := 0, 1
			for axis := 0; axis < s; axis++ {
				idx += (((c >> axis) & 1) + ((v >> axis) & 1)) * mul
				mul *= 3
			}
			tb.children[c][v] = idx
		}
	}

	return tb
}

// subObjects enumerates fixed-axis sets in increasing order and, for each,
// the fixed values counting with the first fixed axis fastest.
func subObjects(s, k int) [][]int {
	var out [][]int
	for _, fixed := range combinations(s, s-k) {
		free := complement(s, fixed)
		for pattern := 0; pattern < 1<<len(fixed); pattern++ {
			base := 0
			for j, axis := range fixed {
				base |= ((pattern >> j) & 1) << axis
			}
			out = append(out, span(base, free))
		}
	}

	return out
}

func latticePoint(s, idx int) LatticePoint {
	lp := LatticePoint{Coord: make([]int, s)}
	base := 0
	for axis := 0; axis < s; axis++ {
		c := idx % 3
		idx /= 3
		lp.Coord[axis] = c
		switch c {
		case 1:
			lp.Free = append(lp.Free, axis)
		case 2:
			base |= 1 << axis
		}
	}
	lp.Corners = span(base, lp.Free)

	return lp
}

// span lists the vertices obtained from base by varying the free axes,
// first free axis fastest.
func span(base int, free []int) []int {
	out := make([]int, 0, 1<<len(free))
	for b := 0; b < 1<<len(free); b++ {
		v := base
		for j, axis := range free {
			v |= ((b >> j) & 1) << axis
		}
		out = append(out, v)
	}

	return out
}

// combinations returns all size-r subsets of {0..n-1} in lexicographic order.
func combinations(n, r int) [][]int {
	var out [][]int
	var rec func(start int, cur []int)
	rec = func(start int, cur []int) {
		if len(cur) == r {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i < n; i++ {
			rec(i+1, append(cur, i))
		}
	}
	rec(0, nil)

	return out
}

func complement(n int, set []int) []int {
	in := make([]bool, n)
	for _, a := range set {
		in[a] = true
	}
	out := make([]int, 0, n-len(set))
	for a := 0; a < n; a++ {
		if !in[a] {
			out = append(out, a)
		}
	}

	return out
}
