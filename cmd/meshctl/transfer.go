// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newSaveCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Import a snapshot file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			tr, err := a.meshFromSnapshot(snap)
			if err != nil {
				return err
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			return a.emit(cmd, tr, name, "")
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "store name (default: file name without extension)")

	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Export a stored mesh to a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("load: --out is required")
			}
			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()
			tr, err := a.loadStored(cmd.Context(), repo, args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd, tr, "", out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "snapshot file to write (.yaml, .yml or .json)")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored meshes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()
			entries, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%dD/%dD\tlevels=%d\tactive=%d\tvertices=%d\t%s\t%s\n",
					e.Name, e.Dim, e.SpaceDim, e.Levels, e.ActiveCells, e.Vertices, e.Format,
					e.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
