// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// errors.go: sentinel errors for the gridgen package.
//
// Callers branch with errors.Is; recipes attach the method name with %w.

package gridgen

import (
	"errors"
	"fmt"
)

// ErrTooFewCells indicates a subdivision count below one.
var ErrTooFewCells = errors.New("gridgen: subdivision count too small")

// ErrBadExtent indicates a box with zero width along some axis, or
// left >= right for cube recipes.
var ErrBadExtent = errors.New("gridgen: degenerate extent")

// ErrBadRadius indicates shell radii that are not 0 < inner < outer.
var ErrBadRadius = errors.New("gridgen: invalid shell radii")

// ErrUnsupportedDim indicates a recipe that is not defined for the
// dimension of the target triangulation.
var ErrUnsupportedDim = errors.New("gridgen: unsupported dimension")

// ErrNotEmpty indicates Fill was handed a triangulation that already has cells.
var ErrNotEmpty = errors.New("gridgen: triangulation not empty")

// ErrNilConstructor indicates a nil recipe passed to Build or Fill.
var ErrNilConstructor = errors.New("gridgen: nil constructor")

// genErrorf prefixes an error with the recipe name, keeping the sentinel
// reachable through errors.Is.
func genErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}
