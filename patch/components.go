// SPDX-License-Identifier: MIT
// Package: lvmesh/patch
//
// components.go: cell patches and connected components built on Walk.

package patch

import (
	"context"

	"github.com/katalvlaran/lvmesh/tria"
)

// Around returns the active cells within layers face crossings of id,
// nearest first. layers == 0 returns the cell alone.
func Around(tr *tria.Triangulation, id tria.CellID, layers int) ([]tria.CellID, error) {
	if layers == 0 {
		res, err := Walk(tr, id, WithFilterNeighbor(func(_, _ tria.Cell) bool { return false }))
		if err != nil {
			return nil, err
		}
		return res.Order, nil
	}
	res, err := Walk(tr, id, WithMaxDepth(layers))
	if err != nil {
		return nil, err
	}

	return res.Order, nil
}

// Components partitions the active cells satisfying keep into groups
// connected through shared faces. Groups are ordered by their first cell in
// active-cell order, and each group lists its cells in walk order. A nil
// keep accepts every cell.
func Components(ctx context.Context, tr *tria.Triangulation, keep func(tria.Cell) bool) ([][]tria.CellID, error) {
	if tr == nil {
		return nil, ErrNilMesh
	}
	if keep == nil {
		keep = func(tria.Cell) bool { return true }
	}
	seen := make(map[tria.CellID]bool)
	var out [][]tria.CellID
	for c := range tr.ActiveCells() {
		if seen[c.ID()] || !keep(c) {
			continue
		}
		res, err := Walk(tr, c.ID(),
			WithContext(ctx),
			WithFilterNeighbor(func(_, n tria.Cell) bool { return keep(n) }))
		if err != nil {
			return nil, err
		}
		for _, id := range res.Order {
			seen[id] = true
		}
		out = append(out, res.Order)
	}

	return out, nil
}
