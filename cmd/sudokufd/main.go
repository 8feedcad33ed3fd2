// Command sudokufd solves, minimizes, generates, and counts solutions for
// square constraint-grid puzzles (classical and X-Sudoku variants) up to
// 512x512.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
