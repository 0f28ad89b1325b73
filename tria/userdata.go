// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// userdata.go: per-object user flags and user data in bulk.
//
// User data is either an index or an opaque pointer per object; the mesh
// remembers which form is in use and rejects the other until ClearUserData.

package tria

import (
	"io"

	"github.com/katalvlaran/lvmesh/flagio"
)

func (t *Triangulation) checkStructDim(op string, sd int) error {
	if sd < 1 || sd > t.dim {
		return precondition(op, ErrDimension, "structdim %d not in [1,%d]", sd, t.dim)
	}

	return nil
}

// nSlots counts the slots of dimension sd over all levels, used or not.
func (t *Triangulation) nSlots(sd int) int {
	n := 0
	for _, ol := range t.s.objs[sd] {
		n += ol.size()
	}

	return n
}

// ClearUserFlags lowers the user flag of every object.
func (t *Triangulation) ClearUserFlags() {
	for sd := 1; sd <= t.dim; sd++ {
		for _, ol := range t.s.objs[sd] {
			clear(ol.userFlag)
		}
	}
}

// SaveUserFlags returns the user flags of all slots of dimension sd.
func (t *Triangulation) SaveUserFlags(sd int) ([]bool, error) {
	if err := t.checkStructDim("SaveUserFlags", sd); err != nil {
		return nil, err
	}
	var out []bool
	for _, ol := range t.s.objs[sd] {
		out = append(out, ol.userFlag...)
	}

	return out, nil
}

// LoadUserFlags replaces the user flags of dimension sd.
func (t *Triangulation) LoadUserFlags(sd int, v []bool) error {
	if err := t.checkStructDim("LoadUserFlags", sd); err != nil {
		return err
	}
	if n := t.nSlots(sd); len(v) != n {
		return precondition("LoadUserFlags", ErrFlagCount, "got %d, want %d", len(v), n)
	}
	pos := 0
	for _, ol := range t.s.objs[sd] {
		copy(ol.userFlag, v[pos:pos+ol.size()])
		pos += ol.size()
	}

	return nil
}

// WriteUserFlags writes the user flags of dimension sd in the framed text format.
func (t *Triangulation) WriteUserFlags(w io.Writer, sd int) error {
	v, err := t.SaveUserFlags(sd)
	if err != nil {
		return err
	}

	return flagio.Write(w, UserFlagsBegin, v, UserFlagsEnd)
}

// ReadUserFlags reads user flags of dimension sd written by WriteUserFlags.
func (t *Triangulation) ReadUserFlags(r io.Reader, sd int) error {
	if err := t.checkStructDim("ReadUserFlags", sd); err != nil {
		return err
	}
	v, err := flagio.ReadN(r, UserFlagsBegin, UserFlagsEnd, t.nSlots(sd))
	if err != nil {
		return streamError("ReadUserFlags", err)
	}

	return t.LoadUserFlags(sd, v)
}

// ClearUserData resets every user index and pointer and forgets the mode.
func (t *Triangulation) ClearUserData() {
	for sd := 1; sd <= t.dim; sd++ {
		for _, ol := range t.s.objs[sd] {
			clear(ol.userIndex)
			clear(ol.userPtr)
		}
	}
	t.userMode = userDataNone
}

// SaveUserIndices returns the user indices of all slots of dimension sd.
func (t *Triangulation) SaveUserIndices(sd int) ([]int, error) {
	if err := t.checkStructDim("SaveUserIndices", sd); err != nil {
		return nil, err
	}
	if t.userMode == userDataPointer {
		return nil, precondition("SaveUserIndices", ErrUserDataMode, "user pointers in use")
	}
	var out []int
	for _, ol := range t.s.objs[sd] {
		out = append(out, ol.userIndex...)
	}

	return out, nil
}

// LoadUserIndices replaces the user indices of dimension sd.
func (t *Triangulation) LoadUserIndices(sd int, v []int) error {
	if err := t.checkStructDim("LoadUserIndices", sd); err != nil {
		return err
	}
	if t.userMode == userDataPointer {
		return precondition("LoadUserIndices", ErrUserDataMode, "user pointers in use")
	}
	if n := t.nSlots(sd); len(v) != n {
		return precondition("LoadUserIndices", ErrFlagCount, "got %d, want %d", len(v), n)
	}
	pos := 0
	for _, ol := range t.s.objs[sd] {
		copy(ol.userIndex, v[pos:pos+ol.size()])
		pos += ol.size()
	}
	t.userMode = userDataIndex

	return nil
}

// SaveUserPointers returns the user pointers of all slots of dimension sd.
func (t *Triangulation) SaveUserPointers(sd int) ([]any, error) {
	if err := t.checkStructDim("SaveUserPointers", sd); err != nil {
		return nil, err
	}
	if t.userMode == userDataIndex {
		return nil, precondition("SaveUserPointers", ErrUserDataMode, "user indices in use")
	}
	var out []any
	for _, ol := range t.s.objs[sd] {
		out = append(out, ol.userPtr...)
	}

	return out, nil
}

// LoadUserPointers replaces the user pointers of dimension sd.
func (t *Triangulation) LoadUserPointers(sd int, v []any) error {
	if err := t.checkStructDim("LoadUserPointers", sd); err != nil {
		return err
	}
	if t.userMode == userDataIndex {
		return precondition("LoadUserPointers", ErrUserDataMode, "user indices in use")
	}
	if n := t.nSlots(sd); len(v) != n {
		return precondition("LoadUserPointers", ErrFlagCount, "got %d, want %d", len(v), n)
	}
	pos := 0
	for _, ol := range t.s.objs[sd] {
		copy(ol.userPtr, v[pos:pos+ol.size()])
		pos += ol.size()
	}
	t.userMode = userDataPointer

	return nil
}
