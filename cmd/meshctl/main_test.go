// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/codec"
	"github.com/katalvlaran/lvmesh/gridgen"
)

// run executes meshctl with args against db and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", db, "--log-level", "warn"}, args...))
	err := root.Execute()

	return out.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := run(t, db, args...)
	require.NoError(t, err, "meshctl %v", args)

	return out
}

func TestGenerateStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")
	out := mustRun(t, db, "generate", "rectangle", "--reps", "2,2", "--colorize")
	assert.Contains(t, out, "dim: 2 spacedim: 2")
	assert.Contains(t, out, "cells: 4 active: 4")
	assert.Contains(t, out, "vertices: 9 used: 9")
	assert.Contains(t, out, "boundary ids: [0 1 2 3]")
	assert.Contains(t, out, "hanging nodes: false")

	_, err := run(t, db, "generate", "torus")
	assert.ErrorContains(t, err, "unknown recipe")
	_, err = run(t, db, "generate", "cube", "--jitter", "0.7")
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "m.db")

	out := mustRun(t, db, "generate", "cube", "--refine", "1", "--save", "square")
	assert.Contains(t, out, `saved "square": 4 active cells`)

	out = mustRun(t, db, "refine", "square", "--global", "1", "--as", "fine")
	assert.Contains(t, out, `saved "fine": 16 active cells`)

	out = mustRun(t, db, "list")
	assert.Contains(t, out, "fine\t2D/2D\tlevels=3\tactive=16\tvertices=25")
	assert.Contains(t, out, "square\t2D/2D\tlevels=2\tactive=4\tvertices=9")

	file := filepath.Join(dir, "fine.yaml")
	out = mustRun(t, db, "load", "fine", "--out", file)
	assert.Contains(t, out, "wrote "+file)

	out = mustRun(t, db, "stats", "--file", file)
	assert.Contains(t, out, "levels: 3")
	assert.Contains(t, out, "  level 2: 16 cells, 16 active")
	assert.Contains(t, out, "cells: 21 active: 16")

	// The file name becomes the store name.
	out = mustRun(t, db, "save", file)
	assert.Contains(t, out, `saved "fine": 16 active cells`)
	out = mustRun(t, db, "save", file, "--name", "copy")
	assert.Contains(t, out, `saved "copy": 16 active cells`)
	out = mustRun(t, db, "stats", "copy")
	assert.Contains(t, out, "cells: 21 active: 16")

	_, err := run(t, db, "stats", "missing")
	assert.Error(t, err)
	_, err = run(t, db, "load", "fine")
	assert.ErrorContains(t, err, "--out is required")
}

func TestRefineAdaptive(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")
	mustRun(t, db, "generate", "cube", "--colorize", "--refine", "1", "--save", "m")

	// Two of the four cells touch the left side.
	out := mustRun(t, db, "refine", "m", "--at-boundary", "0")
	assert.Contains(t, out, `saved "m": 10 active cells`)
	out = mustRun(t, db, "stats", "m")
	assert.Contains(t, out, "hanging nodes: true")

	out = mustRun(t, db, "refine", "m", "--coarsen")
	assert.Contains(t, out, `saved "m": 4 active cells`)

	_, err := run(t, db, "refine", "m")
	assert.ErrorContains(t, err, "nothing to do")
}

func TestRefineFromFlagFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "m.db")
	mustRun(t, db, "generate", "rectangle", "--reps", "2,1", "--save", "m")

	tr, err := gridgen.Build(2, 2, nil, nil,
		gridgen.SubdividedHyperRectangle([]int{2, 1}, vec(nil), vec([]float64{1, 1})))
	require.NoError(t, err)
	for c := range tr.ActiveCells() {
		require.NoError(t, c.SetRefineFlag())
		break
	}
	flags := filepath.Join(dir, "m.flags")
	fh, err := os.Create(flags)
	require.NoError(t, err)
	require.NoError(t, codec.WriteFlags(fh, tr))
	require.NoError(t, fh.Close())

	out := mustRun(t, db, "refine", "m", "--flags", flags)
	assert.Contains(t, out, `saved "m": 5 active cells`)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "meshctl.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[mesh]
dim = 3
spacedim = 3

[store]
path = "`+filepath.ToSlash(filepath.Join(dir, "cfg.db"))+`"
format = "json"
`), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"-c", cfg, "generate", "cube", "--refine", "1", "--save", "cube"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `saved "cube": 8 active cells`)

	root = newRootCmd()
	out.Reset()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"-c", cfg, "list"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "cube\t3D/3D\tlevels=2\tactive=8\tvertices=27\tjson")
}
