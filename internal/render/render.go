// Package render turns fd solutions, guess trails, and counters into the
// plain-text grid and summary formats the CLI prints.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gitrdm/sudokufd/pkg/fd"
)

// Output renders a single fd.Output the way the given constraint's grid
// should be displayed: a solution or guesses grid, or an empty string for
// OutputEmpty.
func Output(c *fd.Constraint, out fd.Output) string {
	switch out.Type {
	case fd.OutputSolution:
		return Solution(c, out.Solution)
	case fd.OutputGuesses:
		return Guesses(c, out.Guesses)
	default:
		return ""
	}
}

// Solution renders a fully assigned solution grid.
func Solution(c *fd.Constraint, solution []fd.CellValue) string {
	cells := make([]*fd.CellValue, len(solution))
	for i := range solution {
		v := solution[i]
		cells[i] = &v
	}
	return renderGrid(c.Shape, cells)
}

// Guesses renders a partial grid built from a guess trail, blank where no
// guess touched a cell.
func Guesses(c *fd.Constraint, guesses fd.FixedValues) string {
	cells := make([]*fd.CellValue, c.Shape.NumCells)
	for _, g := range guesses {
		v := g.Value
		cells[g.Cell] = &v
	}
	return renderGrid(c.Shape, cells)
}

func renderGrid(shape fd.Shape, cells []*fd.CellValue) string {
	if len(cells) != shape.NumCells {
		panic(fmt.Sprintf("render: grid has %d cells, shape wants %d", len(cells), shape.NumCells))
	}

	sideLen := shape.NumValues
	padSize := len(strconv.Itoa(shape.NumValues)) + 1

	var b strings.Builder
	for r := 0; r < sideLen; r++ {
		for col := 0; col < sideLen; col++ {
			index := shape.CellIndex(r, col)
			display := "."
			if v := cells[index]; v != nil {
				display = strconv.Itoa(v.Display())
			}
			for i := 0; i < padSize-len(display); i++ {
				b.WriteByte(' ')
			}
			b.WriteString(display)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Counters renders a one-line summary of solver progress counters.
func Counters(c *fd.Counters) string {
	return fmt.Sprintf(
		"solutions=%d guesses=%d backtracks=%d constraints=%d cells=%d values=%d progress=%.1f%%",
		c.Solutions, c.Guesses, c.Backtracks, c.ConstraintsProcessed, c.CellsSearched, c.ValuesTried, c.ProgressRatio*100,
	)
}

// MinimizerCounters renders a one-line summary of minimizer progress
// counters, including the wrapped solver counters.
func MinimizerCounters(c *fd.MinimizerCounters) string {
	return fmt.Sprintf(
		"tried=%d removed=%d | %s",
		c.CellsTried, c.CellsRemoved, Counters(&c.Solver),
	)
}
