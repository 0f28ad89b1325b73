// SPDX-License-Identifier: MIT
// Package: lvmesh/codec
//
// flags.go: refine and coarsen flags of a mesh as one text stream.

package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/lvmesh/tria"
)

// WriteFlags writes the refine flags and then the coarsen flags of tr in
// the magic-framed bit format.
func WriteFlags(w io.Writer, tr *tria.Triangulation) error {
	if err := tr.WriteRefineFlags(w); err != nil {
		return fmt.Errorf("WriteFlags: refine: %w", err)
	}
	if err := tr.WriteCoarsenFlags(w); err != nil {
		return fmt.Errorf("WriteFlags: coarsen: %w", err)
	}

	return nil
}

// ReadFlags reads a stream written by WriteFlags into tr. The mesh must
// have the same raw cell count as the one the flags were saved from.
func ReadFlags(r io.Reader, tr *tria.Triangulation) error {
	br := bufio.NewReader(r)
	if err := tr.ReadRefineFlags(br); err != nil {
		return fmt.Errorf("ReadFlags: refine: %w", err)
	}
	if err := tr.ReadCoarsenFlags(br); err != nil {
		return fmt.Errorf("ReadFlags: coarsen: %w", err)
	}

	return nil
}
