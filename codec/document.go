// SPDX-License-Identifier: MIT
// Package: lvmesh/codec
//
// document.go: the serialized layout shared by the YAML and JSON codecs.
//
// Vertices are written with all three components. The smoothing policy is
// written by name so documents stay readable. Every per-object array is
// written even when empty; the loader checks their lengths.

package codec

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

// documentVersion is bumped on incompatible layout changes.
const documentVersion = 1

type document struct {
	Version         int    `yaml:"version" json:"version"`
	Dim             int    `yaml:"dim" json:"dim"`
	SpaceDim        int    `yaml:"spacedim" json:"spacedim"`
	Smoothing       string `yaml:"smoothing" json:"smoothing"`
	CheckDistortion bool   `yaml:"check_distortion" json:"check_distortion"`
	Anisotropic     bool   `yaml:"anisotropic,omitempty" json:"anisotropic,omitempty"`

	Vertices   [][]float64 `yaml:"vertices" json:"vertices"`
	VertexUsed []bool      `yaml:"vertex_used,flow" json:"vertex_used"`

	// Objects[sd-1] lists the levels of structural dimension sd.
	Objects [][]objectLevel `yaml:"objects" json:"objects"`
	Cells   []cellLevel     `yaml:"cells" json:"cells"`

	VertexBoundaryIDs map[int]types.BoundaryID `yaml:"vertex_boundary_ids,omitempty" json:"vertex_boundary_ids,omitempty"`
	VertexManifoldIDs map[int]types.ManifoldID `yaml:"vertex_manifold_ids,omitempty" json:"vertex_manifold_ids,omitempty"`
}

type objectLevel struct {
	Used        []bool             `yaml:"used,flow" json:"used"`
	Vertices    []int              `yaml:"vertices,flow" json:"vertices"`
	Children    []int              `yaml:"children,flow" json:"children"`
	Parents     []int              `yaml:"parents,flow" json:"parents"`
	Faces       []int              `yaml:"faces,flow" json:"faces"`
	BoundaryIDs []types.BoundaryID `yaml:"boundary_ids,flow" json:"boundary_ids"`
	ManifoldIDs []types.ManifoldID `yaml:"manifold_ids,flow" json:"manifold_ids"`
	UserFlags   []bool             `yaml:"user_flags,flow" json:"user_flags"`
	FreeGroups  []int              `yaml:"free_groups,flow,omitempty" json:"free_groups,omitempty"`
	FreeSingles []int              `yaml:"free_singles,flow,omitempty" json:"free_singles,omitempty"`
}

type cellLevel struct {
	MaterialIDs  []types.MaterialID `yaml:"material_ids,flow" json:"material_ids"`
	RefineFlags  []bool             `yaml:"refine_flags,flow" json:"refine_flags"`
	CoarsenFlags []bool             `yaml:"coarsen_flags,flow" json:"coarsen_flags"`
}

// fromSnapshot flattens face refs into level,index pairs.
func fromSnapshot(snap *tria.Snapshot) *document {
	doc := &document{
		Version:           documentVersion,
		Dim:               snap.Dim,
		SpaceDim:          snap.SpaceDim,
		Smoothing:         snap.Smoothing.String(),
		CheckDistortion:   snap.CheckDistortion,
		Anisotropic:       snap.Anisotropic,
		Vertices:          make([][]float64, len(snap.Vertices)),
		VertexUsed:        snap.VertexUsed,
		Objects:           make([][]objectLevel, len(snap.Objects)),
		VertexBoundaryIDs: snap.VertexBoundaryIDs,
		VertexManifoldIDs: snap.VertexManifoldIDs,
	}
	for i, p := range snap.Vertices {
		doc.Vertices[i] = []float64{p.X, p.Y, p.Z}
	}
	for sd, levels := range snap.Objects {
		for _, ls := range levels {
			faces := make([]int, 0, 2*len(ls.Faces))
			for _, f := range ls.Faces {
				faces = append(faces, f.Level, f.Index)
			}
			doc.Objects[sd] = append(doc.Objects[sd], objectLevel{
				Used:        ls.Used,
				Vertices:    ls.Vertices,
				Children:    ls.Children,
				Parents:     ls.Parents,
				Faces:       faces,
				BoundaryIDs: ls.BoundaryIDs,
				ManifoldIDs: ls.ManifoldIDs,
				UserFlags:   ls.UserFlags,
				FreeGroups:  ls.FreeGroups,
				FreeSingles: ls.FreeSingles,
			})
		}
	}
	for _, cl := range snap.Cells {
		doc.Cells = append(doc.Cells, cellLevel{
			MaterialIDs:  cl.MaterialIDs,
			RefineFlags:  cl.RefineFlags,
			CoarsenFlags: cl.CoarsenFlags,
		})
	}

	return doc
}

// toSnapshot checks the document shape; tria.Load validates the content.
func (doc *document) toSnapshot() (*tria.Snapshot, error) {
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("version %d, want %d: %w", doc.Version, documentVersion, ErrDocument)
	}
	smoothing, err := tria.ParseMeshSmoothing(doc.Smoothing)
	if err != nil {
		return nil, fmt.Errorf("smoothing: %v: %w", err, ErrDocument)
	}
	snap := &tria.Snapshot{
		Dim:               doc.Dim,
		SpaceDim:          doc.SpaceDim,
		Smoothing:         smoothing,
		CheckDistortion:   doc.CheckDistortion,
		Anisotropic:       doc.Anisotropic,
		Vertices:          make([]r3.Vec, len(doc.Vertices)),
		VertexUsed:        doc.VertexUsed,
		Objects:           make([][]tria.ObjectLevelSnapshot, len(doc.Objects)),
		VertexBoundaryIDs: doc.VertexBoundaryIDs,
		VertexManifoldIDs: doc.VertexManifoldIDs,
	}
	for i, p := range doc.Vertices {
		if len(p) != 3 {
			return nil, fmt.Errorf("vertex %d has %d components: %w", i, len(p), ErrDocument)
		}
		snap.Vertices[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	}
	for sd, levels := range doc.Objects {
		for lvl, ol := range levels {
			if len(ol.Faces)%2 != 0 {
				return nil, fmt.Errorf("structdim %d level %d: odd face list: %w", sd+1, lvl, ErrDocument)
			}
			faces := make([]tria.Ref, 0, len(ol.Faces)/2)
			for i := 0; i < len(ol.Faces); i += 2 {
				faces = append(faces, tria.Ref{Level: ol.Faces[i], Index: ol.Faces[i+1]})
			}
			snap.Objects[sd] = append(snap.Objects[sd], tria.ObjectLevelSnapshot{
				Used:        ol.Used,
				Vertices:    ol.Vertices,
				Children:    ol.Children,
				Parents:     ol.Parents,
				Faces:       faces,
				BoundaryIDs: ol.BoundaryIDs,
				ManifoldIDs: ol.ManifoldIDs,
				UserFlags:   ol.UserFlags,
				FreeGroups:  ol.FreeGroups,
				FreeSingles: ol.FreeSingles,
			})
		}
	}
	for _, cl := range doc.Cells {
		snap.Cells = append(snap.Cells, tria.CellLevelSnapshot{
			MaterialIDs:  cl.MaterialIDs,
			RefineFlags:  cl.RefineFlags,
			CoarsenFlags: cl.CoarsenFlags,
		})
	}

	return snap, nil
}
