// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/codec"
	"github.com/katalvlaran/lvmesh/gridgen"
	"github.com/katalvlaran/lvmesh/tria"
	"github.com/katalvlaran/lvmesh/types"
)

type generateFlags struct {
	dim, spacedim int
	reps          []int
	lo, hi        []float64
	left, right   float64
	center        []float64
	inner, outer  float64
	shellCells    int
	colorize      bool
	material      uint32
	jitter        float64
	seed          uint64
	refine        int
	save, out     string
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <cube|rectangle|l|shell>",
		Short: "Build a coarse mesh from a recipe",
		Long: `Build a coarse mesh from a recipe, optionally refine it globally, and
either store it (--save), write it to a file (--out, format by extension)
or print its statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.dim, "dim", 0, "mesh dimension (default from config)")
	fl.IntVar(&f.spacedim, "spacedim", 0, "space dimension (default from config, at least dim)")
	fl.IntSliceVar(&f.reps, "reps", nil, "cells per axis for rectangle (default 1 per axis)")
	fl.Float64SliceVar(&f.lo, "lo", nil, "lower corner for rectangle (default origin)")
	fl.Float64SliceVar(&f.hi, "hi", nil, "upper corner for rectangle (default all ones)")
	fl.Float64Var(&f.left, "left", 0, "lower bound for cube and l")
	fl.Float64Var(&f.right, "right", 1, "upper bound for cube and l")
	fl.Float64SliceVar(&f.center, "center", nil, "shell center (default origin)")
	fl.Float64Var(&f.inner, "inner", 0.5, "shell inner radius")
	fl.Float64Var(&f.outer, "outer", 1, "shell outer radius")
	fl.IntVar(&f.shellCells, "cells", 8, "shell cells around the ring")
	fl.BoolVar(&f.colorize, "colorize", false, "one boundary id per side")
	fl.Uint32Var(&f.material, "material", 0, "material id of every cell")
	fl.Float64Var(&f.jitter, "jitter", 0, "random interior vertex displacement, fraction of the spacing")
	fl.Uint64Var(&f.seed, "seed", 1, "jitter seed")
	fl.IntVar(&f.refine, "refine", 0, "global refinements after construction")
	fl.StringVar(&f.save, "save", "", "store the mesh under this name")
	fl.StringVar(&f.out, "out", "", "write the mesh snapshot to this file")

	return cmd
}

func (a *app) generate(cmd *cobra.Command, recipe string, f *generateFlags) error {
	dim, spacedim := f.dim, f.spacedim
	if dim == 0 {
		dim = a.cfg.Mesh.Dim
	}
	if spacedim == 0 {
		spacedim = max(a.cfg.Mesh.SpaceDim, dim)
	}

	con, err := f.constructor(recipe, dim)
	if err != nil {
		return err
	}
	gopts := []gridgen.Option{gridgen.WithMaterial(types.MaterialID(f.material))}
	if f.colorize {
		gopts = append(gopts, gridgen.WithColorize())
	}
	if f.jitter > 0 {
		if f.jitter >= 0.5 {
			return fmt.Errorf("--jitter %g: must be below 0.5", f.jitter)
		}
		gopts = append(gopts, gridgen.WithJitter(f.jitter, f.seed))
	}
	topts, err := a.meshOptions()
	if err != nil {
		return err
	}

	tr, err := gridgen.Build(dim, spacedim, topts, gopts, con)
	if err != nil {
		return err
	}
	if err := tr.RefineGlobal(f.refine); err != nil {
		return err
	}
	a.log.Info("mesh generated",
		zap.String("recipe", recipe),
		zap.Int("dim", dim),
		zap.Int("active_cells", tr.NActiveCells()))

	return a.emit(cmd, tr, f.save, f.out)
}

func (f *generateFlags) constructor(recipe string, dim int) (gridgen.Constructor, error) {
	switch strings.ToLower(recipe) {
	case "cube", "hypercube":
		return gridgen.HyperCube(f.left, f.right), nil
	case "rectangle", "box":
		reps := f.reps
		if len(reps) == 0 {
			reps = make([]int, dim)
			for i := range reps {
				reps[i] = 1
			}
		}
		hi := f.hi
		if len(hi) == 0 {
			hi = []float64{1, 1, 1}
		}
		return gridgen.SubdividedHyperRectangle(reps, vec(f.lo), vec(hi)), nil
	case "l", "hyperl":
		return gridgen.HyperL(f.left, f.right), nil
	case "shell", "hypershell":
		return gridgen.HyperShell(vec(f.center), f.inner, f.outer, f.shellCells), nil
	default:
		return nil, fmt.Errorf("unknown recipe %q (want cube, rectangle, l or shell)", recipe)
	}
}

// vec reads up to three components; missing ones are zero.
func vec(c []float64) r3.Vec {
	var p [3]float64
	copy(p[:], c)

	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

// emit stores the mesh, writes it to a file, or prints its statistics when
// neither destination is given.
func (a *app) emit(cmd *cobra.Command, tr *tria.Triangulation, name, out string) error {
	if name == "" && out == "" {
		printStats(cmd.OutOrStdout(), tr)
		return nil
	}
	if name != "" {
		repo, err := a.openStore()
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.Save(cmd.Context(), name, tr); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %q: %d active cells\n", name, tr.NActiveCells())
	}
	if out != "" {
		if err := writeSnapshot(out, tr.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	}

	return nil
}

func writeSnapshot(path string, snap *tria.Snapshot) error {
	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Export(snap, fh); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}

func readSnapshot(path string) (*tria.Snapshot, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return c.Parse(fh)
}
