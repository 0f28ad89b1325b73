// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// types.go: public value types of the mesh API.

package tria

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/lvmesh/types"
)

// CellID addresses a cell by level and index within the level.
type CellID struct {
	Level int
	Index int
}

// String returns "level.index".
func (id CellID) String() string { return fmt.Sprintf("%d.%d", id.Level, id.Index) }

// CellData describes one coarse cell handed to Create.
//
// Vertices lists 2^dim vertex indices in lexicographic order. ManifoldID
// should be types.FlatManifoldID unless a curved geometry is intended; use
// NewCellData to get that default.
type CellData struct {
	Vertices   []int
	MaterialID types.MaterialID
	ManifoldID types.ManifoldID
}

// NewCellData returns a CellData with material 0 and the flat manifold.
func NewCellData(vertices ...int) CellData {
	return CellData{Vertices: vertices, ManifoldID: types.FlatManifoldID}
}

// SubCellData overrides the tags of one existing line or quad of the coarse mesh.
type SubCellData struct {
	Vertices   []int
	BoundaryID types.BoundaryID
	ManifoldID types.ManifoldID
}

// SubCellSet groups the line (dim >= 2) and quad (dim == 3) overrides.
type SubCellSet struct {
	Lines []SubCellData
	Quads []SubCellData
}

// MeshSmoothing is a bit set of automatic flag adjustments applied before
// refinement. Bits only take effect for dim >= 2.
type MeshSmoothing uint32

const (
	SmoothingNone MeshSmoothing = 0

	// LimitLevelDifferenceAtVertices refines cells whose level differs by
	// more than one from another cell sharing a vertex.
	LimitLevelDifferenceAtVertices MeshSmoothing = 0x1
	// EliminateUnrefinedIslands refines cells most of whose neighbors are refined.
	EliminateUnrefinedIslands MeshSmoothing = 0x2
	// PatchLevel1 keeps the mesh a union of complete sibling patches.
	PatchLevel1 MeshSmoothing = 0x4
	// CoarsestLevel1 forbids coarsening cells of level 1.
	CoarsestLevel1 MeshSmoothing = 0x8
	// AllowAnisotropicSmoothing is accepted for compatibility; refinement is isotropic.
	AllowAnisotropicSmoothing MeshSmoothing = 0x10
	// EliminateRefinedInnerIslands coarsens refined interior cells surrounded by unrefined ones.
	EliminateRefinedInnerIslands MeshSmoothing = 0x100
	// EliminateRefinedBoundaryIslands does the same for cells at the boundary.
	EliminateRefinedBoundaryIslands MeshSmoothing = 0x200
	// DoNotProduceUnrefinedIslands blocks coarsening that would create an unrefined island.
	DoNotProduceUnrefinedIslands MeshSmoothing = 0x400

	SmoothingOnRefinement = LimitLevelDifferenceAtVertices | EliminateUnrefinedIslands
	SmoothingOnCoarsening = EliminateRefinedInnerIslands | EliminateRefinedBoundaryIslands | DoNotProduceUnrefinedIslands

	MaximumSmoothing = SmoothingOnRefinement | SmoothingOnCoarsening | PatchLevel1 | CoarsestLevel1
)

type smoothingName struct {
	bit  MeshSmoothing
	name string
}

var smoothingNames = []smoothingName{
	{LimitLevelDifferenceAtVertices, "limit_level_difference_at_vertices"},
	{EliminateUnrefinedIslands, "eliminate_unrefined_islands"},
	{PatchLevel1, "patch_level_1"},
	{CoarsestLevel1, "coarsest_level_1"},
	{AllowAnisotropicSmoothing, "allow_anisotropic_smoothing"},
	{EliminateRefinedInnerIslands, "eliminate_refined_inner_islands"},
	{EliminateRefinedBoundaryIslands, "eliminate_refined_boundary_islands"},
	{DoNotProduceUnrefinedIslands, "do_not_produce_unrefined_islands"},
}

var smoothingGroups = map[string]MeshSmoothing{
	"none":                    SmoothingNone,
	"smoothing_on_refinement": SmoothingOnRefinement,
	"smoothing_on_coarsening": SmoothingOnCoarsening,
	"maximum_smoothing":       MaximumSmoothing,
}

// Has reports whether every bit of b is set in s.
func (s MeshSmoothing) Has(b MeshSmoothing) bool { return s&b == b }

// String lists the set bits joined by "|", or "none".
func (s MeshSmoothing) String() string {
	if s == SmoothingNone {
		return "none"
	}
	var parts []string
	for _, n := range smoothingNames {
		if s&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseMeshSmoothing parses bit names or group names separated by "|" or ",".
func ParseMeshSmoothing(text string) (MeshSmoothing, error) {
	var s MeshSmoothing
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == '|' || r == ',' || r == ' ' })
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if g, ok := smoothingGroups[f]; ok {
			s |= g
			continue
		}
		i := slices.IndexFunc(smoothingNames, func(n smoothingName) bool { return n.name == f })
		if i < 0 {
			return 0, fmt.Errorf("ParseMeshSmoothing: unknown flag %q", f)
		}
		s |= smoothingNames[i].bit
	}

	return s, nil
}
