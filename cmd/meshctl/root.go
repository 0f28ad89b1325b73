// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/codec"
	"github.com/katalvlaran/lvmesh/config"
	"github.com/katalvlaran/lvmesh/internal/logger"
	"github.com/katalvlaran/lvmesh/store"
	"github.com/katalvlaran/lvmesh/tria"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	dbPath     string

	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "meshctl",
		Short:         "Generate, refine and store hierarchical hypercube meshes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "override the configured snapshot database")

	root.AddCommand(
		newGenerateCmd(a),
		newRefineCmd(a),
		newStatsCmd(a),
		newSaveCmd(a),
		newLoadCmd(a),
		newListCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.dbPath != "" {
		cfg.Store.Path = a.dbPath
	}
	a.cfg = cfg

	lc := logger.Config{
		Level:      cfg.Logging.Level,
		Console:    cmd.ErrOrStderr(),
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
	a.log, a.closeLog = logger.New(lc)

	return nil
}

// meshOptions returns the configured triangulation options plus the logger.
func (a *app) meshOptions() ([]tria.Option, error) {
	opts, err := a.cfg.Options()
	if err != nil {
		return nil, err
	}

	return append(opts, tria.WithLogger(a.log)), nil
}

func (a *app) openStore() (*store.Repository, error) {
	c, err := codec.ForFormat(a.cfg.Store.Format)
	if err != nil {
		return nil, err
	}

	return store.New(a.cfg.Store.Path, store.WithLogger(a.log), store.WithCodec(c))
}

// meshFromSnapshot builds an empty triangulation matching snap and loads it.
// The distortion policy comes from the snapshot so the load is accepted.
func (a *app) meshFromSnapshot(snap *tria.Snapshot) (*tria.Triangulation, error) {
	opts, err := a.meshOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, tria.WithDistortionCheck(snap.CheckDistortion))
	tr, err := tria.New(snap.Dim, snap.SpaceDim, opts...)
	if err != nil {
		return nil, err
	}
	if err := tr.Load(snap); err != nil {
		return nil, err
	}

	return tr, nil
}

// loadStored opens the store and loads the snapshot called name.
func (a *app) loadStored(ctx context.Context, repo *store.Repository, name string) (*tria.Triangulation, error) {
	snap, err := repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	tr, err := a.meshFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	return tr, nil
}
