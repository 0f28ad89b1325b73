// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// execute.go: the refinement cycle.
//
// Sequence of one cycle:
//
//	prepare flags -> pre_refinement -> pre_coarsening_on_cell (per parent)
//	-> refine -> coarsen -> recompute caches
//	-> post_refinement_on_cell (per refined cell) -> post_refinement
//
// Distortion found while refining is reported after the whole cycle, when
// the mesh is already in its new state.

package tria

import (
	"go.uber.org/zap"
)

// ExecuteCoarseningAndRefinement applies the refine and coarsen flags.
// It returns a *DistortedCellsError when the distortion check is enabled and
// some new cell is inverted; the mesh is updated regardless.
func (t *Triangulation) ExecuteCoarseningAndRefinement() error {
	release, err := t.guard("ExecuteCoarseningAndRefinement")
	if err != nil {
		return err
	}
	defer release()
	if t.s.empty() {
		return nil
	}

	return t.executeCycle()
}

func (t *Triangulation) executeCycle() error {
	t.prepare()
	t.hub.FirePreRefinement()

	parents := t.parentsToCoarsen()
	for _, p := range parents {
		t.hub.FirePreCoarseningOnCell(t.cell(p))
	}

	nv := t.NUsedVertices()
	refined, distorted := t.executeRefinement()
	newVertices := t.NUsedVertices() - nv
	t.executeCoarsening(parents)
	t.recompute()

	for _, r := range refined {
		t.hub.FirePostRefinementOnCell(t.cell(r))
	}
	t.log.Debug("refinement cycle done",
		zap.Int("refined", len(refined)),
		zap.Int("coarsened", len(parents)),
		zap.Int("new_vertices", newVertices),
		zap.Int("levels", t.NLevels()),
		zap.Int("active_cells", t.NActiveCells()))
	t.hub.FirePostRefinement()

	if len(distorted) > 0 {
		t.log.Warn("refinement produced distorted cells", zap.Stringers("coarse_cells", distorted))
		return &DistortedCellsError{Cells: distorted}
	}

	return nil
}

// RefineGlobal refines every active cell, times times. A distortion error
// stops the loop early.
func (t *Triangulation) RefineGlobal(times int) error {
	for i := 0; i < times; i++ {
		if err := t.SetAllRefineFlags(); err != nil {
			return err
		}
		if err := t.ExecuteCoarseningAndRefinement(); err != nil {
			return err
		}
	}

	return nil
}

// CellWeight returns the summed weight subscribers assign to c for status.
func (t *Triangulation) CellWeight(c Cell, status CellStatus) uint {
	return t.hub.FireCellWeight(c, status)
}

// PrePartition fires the pre-partition notification.
func (t *Triangulation) PrePartition() { t.hub.FirePrePartition() }
