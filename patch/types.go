// SPDX-License-Identifier: MIT
// Package: lvmesh/patch
//
// types.go: options, sentinel errors and the walk result.

package patch

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmesh/tria"
)

// Sentinel errors for walks.
var (
	// ErrNilMesh is returned when a nil triangulation is passed.
	ErrNilMesh = errors.New("patch: triangulation is nil")

	// ErrStartNotActive is returned when the start cell does not exist or
	// has children.
	ErrStartNotActive = errors.New("patch: start cell is not active")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("patch: invalid option supplied")
)

// Option configures a walk. An invalid Option is recorded and surfaced as
// ErrOptionViolation when the walk starts.
type Option func(*Options)

// Options holds the parameters and hooks of a walk.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a cell is first reached, with its depth.
	OnEnqueue func(c tria.Cell, depth int)

	// OnVisit is called when a cell is visited. A non-nil error aborts the
	// walk and is returned wrapped.
	OnVisit func(c tria.Cell, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this many face crossings.
	MaxDepth int

	// FilterNeighbor can skip a crossing from curr to neighbor.
	FilterNeighbor func(curr, neighbor tria.Cell) bool

	err error
}

// DefaultOptions returns a background context, no depth limit, no filter
// and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnEnqueue:      func(tria.Cell, int) {},
		OnVisit:        func(tria.Cell, int) error { return nil },
		FilterNeighbor: func(_, _ tria.Cell) bool { return true },
	}
}

// WithContext sets the context checked between visits.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback run when a cell is first reached.
func WithOnEnqueue(fn func(c tria.Cell, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback run on visit; an error stops the walk.
func WithOnVisit(fn func(c tria.Cell, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to d face crossings. Zero means no limit,
// negative values are rejected.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors for which fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor tria.Cell) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result is the outcome of a walk:
//   - Order: cells in visit sequence.
//   - Depth: number of face crossings from the start.
//   - Parent: the cell each cell was reached from.
type Result struct {
	Order  []tria.CellID
	Depth  map[tria.CellID]int
	Parent map[tria.CellID]tria.CellID
}

// PathTo reconstructs the chain of face-adjacent cells from the start to dest.
func (r *Result) PathTo(dest tria.CellID) ([]tria.CellID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("patch: cell %v not reached", dest)
	}
	var path []tria.CellID
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
