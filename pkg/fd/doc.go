// Package fd implements a constraint-propagation search engine for
// Sudoku-style puzzles on square grids whose side length N = d*d can
// reach 512. A puzzle is partitioned into N rows, N columns, and N boxes
// of shape d*d; the two main diagonals are optionally constrained as well
// (X-Sudoku).
//
// The package is organized as a bit-set value representation genericized
// over width (valueset.go, valueset_leaf.go, valueset_pair.go), a
// constraint handler framework (handlers.go) built on a House
// all-different enforcer (regin.go) and a dirty-handler dispatch queue
// (accumulator.go), a backtracking search engine (engine.go), and a clue
// minimizer (minimizer.go) built on top of it.
//
// Everything outside this package — puzzle text parsing, file/stdin
// loading, progress-bar rendering, CLI flag handling — is deliberately
// out of scope: fd consumes a Constraint and produces a stream of
// Outputs, and is otherwise oblivious to IO.
package fd
