// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// flags.go: bulk flag operations and flag persistence.
//
// Flag vectors cover every cell slot, levels in increasing order and indices
// in increasing order, so their length is NRawCells. Loading a vector only
// raises flags on active cells.

package tria

import (
	"errors"
	"io"

	"github.com/katalvlaran/lvmesh/flagio"
	"github.com/katalvlaran/lvmesh/signals"
)

// CellStatus is re-exported from package signals for cell-weight callbacks.
type CellStatus = signals.CellStatus

const (
	CellPersist = signals.CellPersist
	CellRefine  = signals.CellRefine
	CellCoarsen = signals.CellCoarsen
)

// Magic numbers framing the flag streams.
const (
	RefineFlagsBegin  uint32 = 0xa3f0
	RefineFlagsEnd    uint32 = 0xa3f1
	CoarsenFlagsBegin uint32 = 0xc05e
	CoarsenFlagsEnd   uint32 = 0xc05f
	UserFlagsBegin    uint32 = 0x05e0
	UserFlagsEnd      uint32 = 0x05e1
)

func (t *Triangulation) checkIdle(op string) error {
	if t.busy {
		return precondition(op, ErrReentrant, "called while notifications are running")
	}

	return nil
}

// SetAllRefineFlags flags every active cell for refinement.
func (t *Triangulation) SetAllRefineFlags() error {
	if err := t.checkIdle("SetAllRefineFlags"); err != nil {
		return err
	}
	t.forActive(func(r ref, cl *cellLevel) {
		cl.refine[r.index] = true
		cl.coarsen[r.index] = false
	})

	return nil
}

// ClearFlags lowers every refine and coarsen flag.
func (t *Triangulation) ClearFlags() error {
	if err := t.checkIdle("ClearFlags"); err != nil {
		return err
	}
	for _, cl := range t.s.cells {
		clear(cl.refine)
		clear(cl.coarsen)
	}

	return nil
}

// ClearRefineFlags lowers every refine flag.
func (t *Triangulation) ClearRefineFlags() error {
	if err := t.checkIdle("ClearRefineFlags"); err != nil {
		return err
	}
	for _, cl := range t.s.cells {
		clear(cl.refine)
	}

	return nil
}

// ClearCoarsenFlags lowers every coarsen flag.
func (t *Triangulation) ClearCoarsenFlags() error {
	if err := t.checkIdle("ClearCoarsenFlags"); err != nil {
		return err
	}
	for _, cl := range t.s.cells {
		clear(cl.coarsen)
	}

	return nil
}

func (t *Triangulation) saveFlags(pick func(*cellLevel) []bool) []bool {
	out := make([]bool, 0, t.NRawCells())
	for _, cl := range t.s.cells {
		out = append(out, pick(cl)...)
	}

	return out
}

func (t *Triangulation) loadFlags(op string, v []bool, pick func(*cellLevel) []bool) error {
	if err := t.checkIdle(op); err != nil {
		return err
	}
	if len(v) != t.NRawCells() {
		return precondition(op, ErrFlagCount, "got %d, want %d", len(v), t.NRawCells())
	}
	pos := 0
	for lvl, ol := range t.s.objs[t.dim] {
		for i := 0; i < ol.size(); i++ {
			if v[pos+i] && !ol.active(i) {
				return precondition(op, ErrNotActive, "flag on cell %s", CellID{lvl, i})
			}
		}
		pos += ol.size()
	}
	pos = 0
	for _, cl := range t.s.cells {
		dst := pick(cl)
		copy(dst, v[pos:pos+len(dst)])
		pos += len(dst)
	}

	return nil
}

func refineOf(cl *cellLevel) []bool  { return cl.refine }
func coarsenOf(cl *cellLevel) []bool { return cl.coarsen }

// SaveRefineFlags returns the refine flags of all cell slots.
func (t *Triangulation) SaveRefineFlags() []bool { return t.saveFlags(refineOf) }

// LoadRefineFlags replaces the refine flags.
func (t *Triangulation) LoadRefineFlags(v []bool) error {
	return t.loadFlags("LoadRefineFlags", v, refineOf)
}

// SaveCoarsenFlags returns the coarsen flags of all cell slots.
func (t *Triangulation) SaveCoarsenFlags() []bool { return t.saveFlags(coarsenOf) }

// LoadCoarsenFlags replaces the coarsen flags.
func (t *Triangulation) LoadCoarsenFlags(v []bool) error {
	return t.loadFlags("LoadCoarsenFlags", v, coarsenOf)
}

// WriteRefineFlags writes the refine flags in the framed text format.
func (t *Triangulation) WriteRefineFlags(w io.Writer) error {
	return flagio.Write(w, RefineFlagsBegin, t.SaveRefineFlags(), RefineFlagsEnd)
}

// ReadRefineFlags reads and applies refine flags written by WriteRefineFlags.
func (t *Triangulation) ReadRefineFlags(r io.Reader) error {
	v, err := flagio.ReadN(r, RefineFlagsBegin, RefineFlagsEnd, t.NRawCells())
	if err != nil {
		return streamError("ReadRefineFlags", err)
	}

	return t.LoadRefineFlags(v)
}

// WriteCoarsenFlags writes the coarsen flags in the framed text format.
func (t *Triangulation) WriteCoarsenFlags(w io.Writer) error {
	return flagio.Write(w, CoarsenFlagsBegin, t.SaveCoarsenFlags(), CoarsenFlagsEnd)
}

// ReadCoarsenFlags reads and applies coarsen flags written by WriteCoarsenFlags.
func (t *Triangulation) ReadCoarsenFlags(r io.Reader) error {
	v, err := flagio.ReadN(r, CoarsenFlagsBegin, CoarsenFlagsEnd, t.NRawCells())
	if err != nil {
		return streamError("ReadCoarsenFlags", err)
	}

	return t.LoadCoarsenFlags(v)
}

// streamError reports a flag stream failure; a length mismatch counts as ErrFlagCount.
func streamError(op string, err error) error {
	if errors.Is(err, flagio.ErrLength) {
		return precondition(op, ErrFlagCount, "%v", err)
	}

	return precondition(op, err, "%v", err)
}
