// SPDX-License-Identifier: MIT
// Package: lvmesh/gridgen
//
// options.go: functional options for the recipes.
//
// Option constructors validate their arguments and panic on meaningless
// values. Recipes never panic.

package gridgen

import (
	"math/rand/v2"

	"github.com/katalvlaran/lvmesh/types"
)

// Option customizes a recipe by mutating the generator configuration
// before construction begins.
type Option func(*genConfig)

// WithColorize assigns distinct boundary ids per side of the domain.
func WithColorize() Option {
	return func(c *genConfig) { c.colorize = true }
}

// WithMaterial sets the material id of every generated cell.
func WithMaterial(m types.MaterialID) Option {
	return func(c *genConfig) { c.material = m }
}

// WithManifoldID sets the manifold id of every generated cell. Faces and
// edges keep the flat manifold unless the recipe binds them itself.
func WithManifoldID(m types.ManifoldID) Option {
	return func(c *genConfig) { c.manifold = m }
}

// WithJitter displaces interior vertices of subdivided boxes by a uniform
// random offset of at most factor times the spacing along each axis.
// Panics unless 0 <= factor < 0.5, which keeps every cell oriented.
func WithJitter(factor float64, seed uint64) Option {
	if factor < 0 || factor >= maxJitter {
		panic("gridgen: WithJitter(factor outside [0,0.5))")
	}
	return func(c *genConfig) {
		c.jitter = factor
		c.rng = rand.New(rand.NewPCG(seed, seed^jitterStream))
	}
}
