// SPDX-License-Identifier: MIT
// Package types declares the integer tag types shared by every lvmesh package
// together with their sentinel values.
//
// Tags:
//
//	BoundaryID  – attached to faces (and edges in 3D) at the domain boundary.
//	ManifoldID  – attached to any object, selects the geometry used to place new vertices.
//	MaterialID  – attached to cells only, inherited verbatim by children.
//
// Sentinels:
//
//	InternalFaceBoundaryID – the boundary id carried by every interior face or edge.
//	FlatManifoldID         – "no curved geometry": new points are arithmetic averages.
package types

import "math"

// BoundaryID tags faces and edges that lie on the domain boundary.
type BoundaryID uint32

// ManifoldID selects the geometric capability that governs an object.
type ManifoldID uint32

// MaterialID is a user-domain tag carried by cells.
type MaterialID uint32

const (
	// InternalFaceBoundaryID marks faces and edges in the interior of the domain.
	InternalFaceBoundaryID BoundaryID = math.MaxUint32

	// FlatManifoldID means straight-line / multilinear interpolation; no capability lookup.
	FlatManifoldID ManifoldID = math.MaxUint32

	// InvalidIndex is the index value of absent parents, children and neighbors.
	InvalidIndex = -1
)

// IsInternal reports whether b is the interior sentinel.
func (b BoundaryID) IsInternal() bool { return b == InternalFaceBoundaryID }

// IsFlat reports whether m is the flat sentinel.
func (m ManifoldID) IsFlat() bool { return m == FlatManifoldID }
