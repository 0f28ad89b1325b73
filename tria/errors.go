// SPDX-License-Identifier: MIT
// Package: lvmesh/tria
//
// errors.go: sentinel errors and structured error types.
//
// Contract:
//   - Every failing operation returns an error that matches one of the
//     sentinels below through errors.Is.
//   - Structured errors (*OrientationError, *DistortedCellsError,
//     *PreconditionError) unwrap to their sentinel.
//   - No operation panics on caller input.

package tria

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is the family sentinel of every *PreconditionError.
	ErrPrecondition = errors.New("tria: precondition violated")

	// ErrNotEmpty indicates that an operation requires an empty mesh.
	ErrNotEmpty = errors.New("tria: mesh is not empty")

	// ErrEmpty indicates that an operation requires a populated mesh.
	ErrEmpty = errors.New("tria: mesh is empty")

	// ErrDimension indicates an unsupported dim/spacedim combination.
	ErrDimension = errors.New("tria: unsupported dimension")

	// ErrLevelOutOfRange indicates a level argument >= NLevels.
	ErrLevelOutOfRange = errors.New("tria: level out of range")

	// ErrNotActive indicates a flag operation on a cell that has children.
	ErrNotActive = errors.New("tria: cell is not active")

	// ErrInvalidHandle indicates an accessor that refers to no used entity.
	ErrInvalidHandle = errors.New("tria: invalid or unused handle")

	// ErrReentrant indicates a mutation requested from inside a callback.
	ErrReentrant = errors.New("tria: mutation during notification")

	// ErrUserDataMode indicates mixing user indices and user pointers.
	ErrUserDataMode = errors.New("tria: user data mode conflict")

	// ErrVertexIndex indicates a cell that references a vertex out of range
	// or the same vertex twice.
	ErrVertexIndex = errors.New("tria: bad vertex index")

	// ErrDuplicateVertex indicates two used vertices at the same position.
	ErrDuplicateVertex = errors.New("tria: coincident vertices")

	// ErrConnectivity indicates a non-manifold or otherwise inconsistent input.
	ErrConnectivity = errors.New("tria: inconsistent connectivity")

	// ErrNoSuchSubEntity indicates a sub-cell override naming no existing line or quad.
	ErrNoSuchSubEntity = errors.New("tria: sub-cell data names no existing entity")

	// ErrBoundaryIDOnInterior indicates a boundary id assigned to an interior object.
	ErrBoundaryIDOnInterior = errors.New("tria: boundary id on interior object")

	// ErrMaterialOnNonCell indicates a material id assigned to a face or edge.
	ErrMaterialOnNonCell = errors.New("tria: material id on non-cell object")

	// ErrInvertedCells is the sentinel of *OrientationError.
	ErrInvertedCells = errors.New("tria: cells with non-positive measure")

	// ErrDistortedCells is the sentinel of *DistortedCellsError.
	ErrDistortedCells = errors.New("tria: distorted cells")

	// ErrFlagCount indicates a flag vector whose length differs from the raw cell count.
	ErrFlagCount = errors.New("tria: flag vector length mismatch")

	// ErrPolicyMismatch indicates a snapshot saved under a different distortion policy.
	ErrPolicyMismatch = errors.New("tria: distortion policy mismatch")

	// ErrSnapshot indicates a structurally inconsistent snapshot.
	ErrSnapshot = errors.New("tria: corrupt snapshot")
)

// PreconditionError reports a violated operation precondition.
type PreconditionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("tria: %s: %s", e.Op, e.Reason)
}

// Unwrap returns the specific sentinel, falling back to ErrPrecondition.
func (e *PreconditionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPrecondition}
	}

	return []error{ErrPrecondition, e.Err}
}

func precondition(op string, sentinel error, format string, args ...any) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...), Err: sentinel}
}

// OrientationError lists the input cells (by position in the cell list)
// whose signed measure is not strictly positive.
type OrientationError struct {
	Cells []int
}

func (e *OrientationError) Error() string {
	return fmt.Sprintf("tria: %d cell(s) with non-positive measure: %v", len(e.Cells), e.Cells)
}

// Unwrap returns ErrInvertedCells.
func (e *OrientationError) Unwrap() error { return ErrInvertedCells }

// DistortedCellsError lists the coarse-mesh ancestors of cells whose children
// have a non-positive Jacobian determinant at some vertex. The mesh has
// already been mutated when this error is returned.
type DistortedCellsError struct {
	Cells []CellID
}

func (e *DistortedCellsError) Error() string {
	return fmt.Sprintf("tria: %d coarse cell(s) produced distorted children: %v", len(e.Cells), e.Cells)
}

// Unwrap returns ErrDistortedCells.
func (e *DistortedCellsError) Unwrap() error { return ErrDistortedCells }
