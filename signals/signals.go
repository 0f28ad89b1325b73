// SPDX-License-Identifier: MIT
// Package signals implements the change-notification hub of a mesh: named
// channels to which observers subscribe callbacks that are invoked
// synchronously, in registration order, at well-defined points of a mesh
// mutation.
//
// The hub is generic over the cell handle type C and the mesh type M so that
// it carries no dependency on the mesh package itself.
//
// Callbacks must not mutate the mesh that fires them; the mesh enforces this
// with its own reentrancy guard.
package signals

import (
	"reflect"
	"sync"
)

// CellStatus tells a cell-weight callback what will happen to a cell.
type CellStatus int

const (
	// CellPersist means the cell is kept as is.
	CellPersist CellStatus = iota
	// CellRefine means the cell is about to be refined.
	CellRefine
	// CellCoarsen means the cell's children are about to be removed.
	CellCoarsen
)

// String returns a stable name for s.
func (s CellStatus) String() string {
	switch s {
	case CellPersist:
		return "persist"
	case CellRefine:
		return "refine"
	case CellCoarsen:
		return "coarsen"
	default:
		return "unknown"
	}
}

type slot[F any] struct {
	id uint64
	fn F
}

// Signal is an ordered list of subscribers of callback type F.
type Signal[F any] struct {
	mu    sync.Mutex
	next  uint64
	slots []slot[F]
}

// Connection identifies one subscription.
type Connection struct {
	disconnect func()
}

// Disconnect removes the subscription. Calling it more than once is a no-op.
func (c Connection) Disconnect() {
	if c.disconnect != nil {
		c.disconnect()
	}
}

// Connect appends fn to the subscriber list. Panics on a nil callback.
func (s *Signal[F]) Connect(fn F) Connection {
	if v := reflect.ValueOf(fn); !v.IsValid() || (v.Kind() == reflect.Func && v.IsNil()) {
		panic("signals: Connect(nil)")
	}
	s.mu.Lock()
	id := s.next
	s.next++
	s.slots = append(s.slots, slot[F]{id: id, fn: fn})
	s.mu.Unlock()

	return Connection{disconnect: func() { s.remove(id) }}
}

func (s *Signal[F]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sl := range s.slots {
		if sl.id == id {
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribers.
func (s *Signal[F]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.slots)
}

// DisconnectAll removes every subscriber.
func (s *Signal[F]) DisconnectAll() {
	s.mu.Lock()
	s.slots = nil
	s.mu.Unlock()
}

// snapshot copies the subscriber list so callbacks may disconnect themselves.
func (s *Signal[F]) snapshot() []F {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]F, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.fn
	}

	return out
}

// Each invokes visit for every subscriber in registration order.
func (s *Signal[F]) Each(visit func(F)) {
	for _, fn := range s.snapshot() {
		visit(fn)
	}
}

// Hub groups the channels a mesh fires.
//
// AnyChange fires after Create, PostRefinement and Clear.
type Hub[C any, M any] struct {
	Create         Signal[func()]
	PreRefinement  Signal[func()]
	PostRefinement Signal[func()]
	PrePartition   Signal[func()]
	MeshMovement   Signal[func()]
	Clear          Signal[func()]
	AnyChange      Signal[func()]

	PreCoarseningOnCell  Signal[func(C)]
	PostRefinementOnCell Signal[func(C)]

	// Copy receives the destination mesh of a copy.
	Copy Signal[func(M)]

	// CellWeight callbacks are summed by FireCellWeight.
	CellWeight Signal[func(C, CellStatus) uint]
}

func fire(s *Signal[func()]) { s.Each(func(f func()) { f() }) }

// FireCreate fires Create then AnyChange.
func (h *Hub[C, M]) FireCreate() {
	fire(&h.Create)
	fire(&h.AnyChange)
}

// FirePreRefinement fires PreRefinement.
func (h *Hub[C, M]) FirePreRefinement() { fire(&h.PreRefinement) }

// FirePostRefinement fires PostRefinement then AnyChange.
func (h *Hub[C, M]) FirePostRefinement() {
	fire(&h.PostRefinement)
	fire(&h.AnyChange)
}

// FirePrePartition fires PrePartition.
func (h *Hub[C, M]) FirePrePartition() { fire(&h.PrePartition) }

// FireMeshMovement fires MeshMovement.
func (h *Hub[C, M]) FireMeshMovement() { fire(&h.MeshMovement) }

// FireClear fires Clear then AnyChange.
func (h *Hub[C, M]) FireClear() {
	fire(&h.Clear)
	fire(&h.AnyChange)
}

// FirePreCoarseningOnCell fires PreCoarseningOnCell for c.
func (h *Hub[C, M]) FirePreCoarseningOnCell(c C) {
	h.PreCoarseningOnCell.Each(func(f func(C)) { f(c) })
}

// FirePostRefinementOnCell fires PostRefinementOnCell for c.
func (h *Hub[C, M]) FirePostRefinementOnCell(c C) {
	h.PostRefinementOnCell.Each(func(f func(C)) { f(c) })
}

// FireCopy fires Copy with the destination mesh.
func (h *Hub[C, M]) FireCopy(dst M) {
	h.Copy.Each(func(f func(M)) { f(dst) })
}

// FireCellWeight returns the sum of all CellWeight subscribers for c.
func (h *Hub[C, M]) FireCellWeight(c C, status CellStatus) uint {
	var sum uint
	h.CellWeight.Each(func(f func(C, CellStatus) uint) { sum += f(c, status) })

	return sum
}

// DisconnectAll removes every subscriber from every channel.
func (h *Hub[C, M]) DisconnectAll() {
	h.Create.DisconnectAll()
	h.PreRefinement.DisconnectAll()
	h.PostRefinement.DisconnectAll()
	h.PrePartition.DisconnectAll()
	h.MeshMovement.DisconnectAll()
	h.Clear.DisconnectAll()
	h.AnyChange.DisconnectAll()
	h.PreCoarseningOnCell.DisconnectAll()
	h.PostRefinementOnCell.DisconnectAll()
	h.Copy.DisconnectAll()
	h.CellWeight.DisconnectAll()
}
