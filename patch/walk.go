// SPDX-License-Identifier: MIT
// Package: lvmesh/patch
//
// walk.go: breadth-first search over the face adjacency of active cells.

package patch

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/tria"
)

type queueItem struct {
	cell  tria.Cell
	depth int
}

type walker struct {
	opts    Options
	queue   []queueItem
	visited map[tria.CellID]bool
	res     *Result
}

// Walk visits the active cells reachable from start by crossing faces,
// nearest first. Across a face with a refined neighbor every active cell
// touching that face is a neighbor; across a coarser neighbor, the coarser
// cell is.
//
// Returns ErrNilMesh, ErrStartNotActive, ErrOptionViolation, the context
// error on cancellation, or a wrapped OnVisit error. The partial result is
// returned alongside errors raised during the walk.
func Walk(tr *tria.Triangulation, start tria.CellID, opts ...Option) (*Result, error) {
	if tr == nil {
		return nil, ErrNilMesh
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	c, err := tr.Cell(start)
	if err != nil || !c.Active() {
		return nil, fmt.Errorf("%w: %v", ErrStartNotActive, start)
	}

	n := tr.NActiveCells()
	w := &walker{
		opts:    o,
		queue:   make([]queueItem, 0, n),
		visited: make(map[tria.CellID]bool, n),
		res: &Result{
			Order:  make([]tria.CellID, 0, n),
			Depth:  make(map[tria.CellID]int, n),
			Parent: make(map[tria.CellID]tria.CellID, n),
		},
	}
	w.enqueue(c, 0, nil)

	return w.res, w.loop()
}

func (w *walker) enqueue(c tria.Cell, d int, parent *tria.Cell) {
	id := c.ID()
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != nil {
		w.res.Parent[id] = parent.ID()
	}
	w.opts.OnEnqueue(c, d)
	w.queue = append(w.queue, queueItem{cell: c, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.cell.ID())
		if err := w.opts.OnVisit(item.cell, item.depth); err != nil {
			return fmt.Errorf("patch: OnVisit error at %v: %w", item.cell.ID(), err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for f := 0; f < item.cell.NFaces(); f++ {
		for _, nbr := range item.cell.ActiveNeighbors(f) {
			if w.visited[nbr.ID()] || !w.opts.FilterNeighbor(item.cell, nbr) {
				continue
			}
			w.enqueue(nbr, next, &item.cell)
		}
	}
}
