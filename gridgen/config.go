// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// config.go: resolved generator configuration and its defaults.
//
// Defaults:
//   - colorize = false  (every boundary face keeps id 0)
//   - material = 0
//   - manifold = types.FlatManifoldID
//   - jitter   = 0      (no rng)

package gridgen

import (
	"math/rand/v2"

	"github.com/katalvlaran/lvmesh/types"
)

// genConfig aggregates the knobs recipes read. It is passed by value.
type genConfig struct {
	colorize bool
	material types.MaterialID
	manifold types.ManifoldID

	// jitter is the displacement bound relative to the local spacing; rng
	// is set together with it.
	jitter float64
	rng    *rand.Rand
}

const (
	defaultMaterial = types.MaterialID(0)
	defaultJitter   = 0.0

	maxJitter    = 0.5
	jitterStream = 0x9e3779b97f4a7c15

	// relTol is the coordinate tolerance, relative to the domain size, used
	// to classify boundary faces and to merge lattice vertices.
	relTol = 1e-10
)

// newGenConfig applies opts over the defaults, last one wins.
func newGenConfig(opts ...Option) genConfig {
	cfg := genConfig{
		material: defaultMaterial,
		manifold: types.FlatManifoldID,
		jitter:   defaultJitter,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
