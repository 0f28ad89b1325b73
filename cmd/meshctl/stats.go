// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmesh/tria"
)

func newStatsCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "stats [name]",
		Short: "Print counts and tags of a stored mesh or a snapshot file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tr *tria.Triangulation
			switch {
			case file != "":
				snap, err := readSnapshot(file)
				if err != nil {
					return err
				}
				if tr, err = a.meshFromSnapshot(snap); err != nil {
					return err
				}
			case len(args) == 1:
				repo, err := a.openStore()
				if err != nil {
					return err
				}
				defer repo.Close()
				if tr, err = a.loadStored(cmd.Context(), repo, args[0]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("stats: give a stored mesh name or --file")
			}
			printStats(cmd.OutOrStdout(), tr)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read the mesh from a snapshot file instead of the store")

	return cmd
}

func printStats(w io.Writer, tr *tria.Triangulation) {
	fmt.Fprintf(w, "dim: %d spacedim: %d\n", tr.Dim(), tr.SpaceDim())
	fmt.Fprintf(w, "levels: %d\n", tr.NLevels())
	for l := 0; l < tr.NLevels(); l++ {
		lv, err := tr.Level(l)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  level %d: %d cells, %d active\n", l, lv.NCells(), lv.NActiveCells())
	}
	fmt.Fprintf(w, "cells: %d active: %d\n", tr.NCells(), tr.NActiveCells())
	fmt.Fprintf(w, "faces: %d active: %d\n", tr.NFaces(), tr.NActiveFaces())
	fmt.Fprintf(w, "vertices: %d used: %d\n", tr.NVertices(), tr.NUsedVertices())
	fmt.Fprintf(w, "boundary ids: %v\n", tr.BoundaryIDs())
	fmt.Fprintf(w, "material ids: %v\n", tr.MaterialIDs())
	fmt.Fprintf(w, "smoothing: %s\n", tr.Smoothing())
	fmt.Fprintf(w, "hanging nodes: %t\n", tr.HasHangingNodes())
}
