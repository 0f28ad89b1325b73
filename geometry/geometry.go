// SPDX-License-Identifier: MIT
// Package geometry evaluates the multilinear map of a reference hypercube
// onto physical space: Jacobians, signed measures, centers and diameters.
//
// Points are gonum r3.Vec values; for spacedim < 3 the trailing components are
// ignored. Vertices are expected in lexicographic order (see package refcell).
//
// Complexity: every function is O(2^dim) per evaluation point.
package geometry

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDimension is returned when dim/spacedim lie outside 1 <= dim <= spacedim <= 3
// or when the number of points does not match 2^dim.
var ErrDimension = errors.New("geometry: unsupported dimension or point count")

// gauss2 holds the two-point Gauss rule on [0,1]; it integrates the Jacobian
// determinant of a multilinear map exactly.
var gauss2 = [2]float64{0.5 - 0.5/math.Sqrt(3), 0.5 + 0.5/math.Sqrt(3)}

func check(dim, spacedim int, pts []r3.Vec) error {
	if dim < 1 || dim > 3 || spacedim < dim || spacedim > 3 || len(pts) != 1<<dim {
		return ErrDimension
	}

	return nil
}

// Jacobian returns the columns dx/dxi_d of the multilinear map at the
// reference point xi. Only the first dim columns are meaningful.
func Jacobian(dim int, pts []r3.Vec, xi [3]float64) [3]r3.Vec {
	var cols [3]r3.Vec
	for v, p := range pts {
		for d := 0; d < dim; d++ {
			w := 1.0
			for i := 0; i < dim; i++ {
				bit := (v >> i) & 1
				switch {
				case i == d && bit == 1:
					// derivative of xi_d
				case i == d:
					w = -w
				case bit == 1:
					w *= xi[i]
				default:
					w *= 1 - xi[i]
				}
			}
			cols[d] = r3.Add(cols[d], r3.Scale(w, p))
		}
	}

	return cols
}

// det returns the signed volume element when dim == spacedim and the
// Gram root otherwise.
func det(dim, spacedim int, c [3]r3.Vec) float64 {
	if dim == spacedim {
		switch dim {
		case 1:
			return c[0].X
		case 2:
			return c[0].X*c[1].Y - c[0].Y*c[1].X
		default:
			return r3.Dot(c[0], r3.Cross(c[1], c[2]))
		}
	}
	if dim == 1 {
		return r3.Norm(c[0])
	}

	return r3.Norm(r3.Cross(c[0], c[1]))
}

// Measure returns the length, area or volume of the object. When
// dim == spacedim the result is signed: it is negative for inverted cells.
func Measure(dim, spacedim int, pts []r3.Vec) (float64, error) {
	if err := check(dim, spacedim, pts); err != nil {
		return 0, err
	}
	var xi [3]float64
	var sum float64
	n := 1 << dim
	for q := 0; q < n; q++ {
		w := 1.0
		for d := 0; d < dim; d++ {
			xi[d] = gauss2[(q>>d)&1]
			w *= 0.5
		}
		sum += w * det(dim, spacedim, Jacobian(dim, pts, xi))
	}

	return sum, nil
}

// VertexDeterminants returns the Jacobian determinant evaluated at every
// vertex of the object. A non-positive value marks a distorted cell.
// Only meaningful for dim == spacedim.
func VertexDeterminants(dim, spacedim int, pts []r3.Vec) ([]float64, error) {
	if err := check(dim, spacedim, pts); err != nil {
		return nil, err
	}
	out := make([]float64, len(pts))
	for v := range pts {
		var xi [3]float64
		for d := 0; d < dim; d++ {
			xi[d] = float64((v >> d) & 1)
		}
		out[v] = det(dim, spacedim, Jacobian(dim, pts, xi))
	}

	return out, nil
}

// IsDistorted reports whether any vertex determinant is not strictly positive.
func IsDistorted(dim, spacedim int, pts []r3.Vec) bool {
	dets, err := VertexDeterminants(dim, spacedim, pts)
	if err != nil {
		return false
	}

	return floats.Min(dets) <= 0
}

// Center returns the arithmetic mean of the points.
func Center(pts []r3.Vec) r3.Vec {
	var c r3.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = r3.Add(c, p)
	}

	return r3.Scale(1/float64(len(pts)), c)
}

// Diameter returns the largest distance between any two points.
func Diameter(pts []r3.Vec) float64 {
	var d float64
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d = math.Max(d, r3.Norm(r3.Sub(pts[i], pts[j])))
		}
	}

	return d
}
