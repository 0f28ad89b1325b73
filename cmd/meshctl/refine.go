// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/codec"
	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

type refineFlags struct {
	global     int
	flagsFile  string
	atBoundary int
	cycles     int
	coarsen    bool
	as, out    string
}

func newRefineCmd(a *app) *cobra.Command {
	f := &refineFlags{}
	cmd := &cobra.Command{
		Use:   "refine <name>",
		Short: "Refine or coarsen a stored mesh",
		Long: `Load a stored mesh, apply one kind of adaptation and store the result
back under the same name (or --as another one).

  --global N        refine every active cell N times
  --flags FILE      execute refine/coarsen flags saved in the flag stream format
  --at-boundary ID  refine the active cells touching boundary ID, --cycles times
  --coarsen         flag every active cell for coarsening and execute once`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.refine(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.global, "global", 0, "global refinements")
	fl.StringVar(&f.flagsFile, "flags", "", "flag stream file to execute")
	fl.IntVar(&f.atBoundary, "at-boundary", -1, "refine cells touching this boundary id")
	fl.IntVar(&f.cycles, "cycles", 1, "cycles for --at-boundary")
	fl.BoolVar(&f.coarsen, "coarsen", false, "coarsen every sibling group once")
	fl.StringVar(&f.as, "as", "", "store the result under this name")
	fl.StringVar(&f.out, "out", "", "also write the result to this snapshot file")

	return cmd
}

func (a *app) refine(cmd *cobra.Command, name string, f *refineFlags) error {
	repo, err := a.openStore()
	if err != nil {
		return err
	}
	defer repo.Close()
	tr, err := a.loadStored(cmd.Context(), repo, name)
	if err != nil {
		return err
	}
	before := tr.NActiveCells()

	if err := f.apply(tr); err != nil {
		var distorted *tria.DistortedCellsError
		if !errors.As(err, &distorted) {
			return err
		}
		a.log.Warn("refinement produced distorted cells", zap.Int("cells", len(distorted.Cells)))
	}
	a.log.Info("mesh adapted",
		zap.String("name", name),
		zap.Int("active_before", before),
		zap.Int("active_after", tr.NActiveCells()))

	target := name
	if f.as != "" {
		target = f.as
	}

	return a.emit(cmd, tr, target, f.out)
}

func (f *refineFlags) apply(tr *tria.Triangulation) error {
	switch {
	case f.flagsFile != "":
		fh, err := os.Open(f.flagsFile)
		if err != nil {
			return err
		}
		defer fh.Close()
		if err := codec.ReadFlags(fh, tr); err != nil {
			return err
		}
		return tr.ExecuteCoarseningAndRefinement()
	case f.atBoundary >= 0:
		for i := 0; i < f.cycles; i++ {
			if err := flagAtBoundary(tr, types.BoundaryID(f.atBoundary)); err != nil {
				return err
			}
			if err := tr.ExecuteCoarseningAndRefinement(); err != nil {
				return err
			}
		}
		return nil
	case f.coarsen:
		for c := range tr.ActiveCells() {
			if c.Level() == 0 {
				continue
			}
			if err := c.SetCoarsenFlag(); err != nil {
				return err
			}
		}
		return tr.ExecuteCoarseningAndRefinement()
	case f.global > 0:
		return tr.RefineGlobal(f.global)
	default:
		return fmt.Errorf("refine: nothing to do (use --global, --flags, --at-boundary or --coarsen)")
	}
}

// flagAtBoundary flags every active cell with a face on boundary b.
func flagAtBoundary(tr *tria.Triangulation, b types.BoundaryID) error {
	var marked []tria.Cell
	for c := range tr.ActiveCells() {
		for f := 0; f < c.NFaces(); f++ {
			if c.AtBoundaryFace(f) && c.Face(f).BoundaryID() == b {
				marked = append(marked, c)
				break
			}
		}
	}
	for _, c := range marked {
		if err := c.SetRefineFlag(); err != nil {
			return err
		}
	}

	return nil
}
