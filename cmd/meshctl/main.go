// SPDX-License-Identifier: MIT

// Command meshctl generates, refines, inspects and stores hierarchical
// hypercube meshes.
//
// Usage:
//
//	meshctl generate rectangle --reps 4,4 --colorize --save square
//	meshctl refine square --global 2
//	meshctl refine square --flags marked.txt --as square-adapted
//	meshctl stats square
//	meshctl save mesh.yaml --name imported
//	meshctl load square --out square.json
//	meshctl list
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
