package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFromGrid(values []int) FixedValues {
	fv := make(FixedValues, len(values))
	for i, v := range values {
		fv[i] = FixedValue{Cell: i, Value: DisplayValue(v)}
	}
	return fv
}

func checkDistinctGroup(t *testing.T, solution []CellValue, cells []int, n int) {
	t.Helper()
	seen := map[CellValue]bool{}
	for _, c := range cells {
		v := solution[c]
		require.False(t, seen[v], "value %d repeats in group %v", v, cells)
		seen[v] = true
	}
	assert.Len(t, seen, n)
}

func assertValidSolution(t *testing.T, solution []CellValue, shape Shape, xSudoku bool) {
	t.Helper()
	n := shape.NumValues
	for r := 0; r < n; r++ {
		row := make([]int, n)
		for c := 0; c < n; c++ {
			row[c] = shape.CellIndex(r, c)
		}
		checkDistinctGroup(t, solution, row, n)
	}
	for c := 0; c < n; c++ {
		col := make([]int, n)
		for r := 0; r < n; r++ {
			col[r] = shape.CellIndex(r, c)
		}
		checkDistinctGroup(t, solution, col, n)
	}
	boxSize := shape.BoxSize
	for b := 0; b < n; b++ {
		box := make([]int, n)
		for i := 0; i < n; i++ {
			r := (b%boxSize)*boxSize + i/boxSize
			c := (b/boxSize)*boxSize + i%boxSize
			box[i] = shape.CellIndex(r, c)
		}
		checkDistinctGroup(t, solution, box, n)
	}
	if xSudoku {
		diag := make([]int, n)
		anti := make([]int, n)
		for r := 0; r < n; r++ {
			diag[r] = shape.CellIndex(r, r)
			anti[r] = shape.CellIndex(r, n-1-r)
		}
		checkDistinctGroup(t, solution, diag, n)
		checkDistinctGroup(t, solution, anti, n)
	}
}

func Test4x4FullySpecifiedSolvesToItself(t *testing.T) {
	values := []int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}
	c := &Constraint{Shape: NewShape(2), FixedValues: fixedFromGrid(values)}
	iter := NewSolutionIter(c, Config{})

	out, ok := iter.Next()
	require.True(t, ok)
	assertValidSolution(t, out.Solution, c.Shape, false)
	for i, v := range values {
		assert.Equal(t, DisplayValue(v), out.Solution[i])
	}

	_, ok = iter.Next()
	assert.False(t, ok, "fully specified grid has exactly one solution")
}

func Test4x4EmptyGridHasMultipleDistinctSolutions(t *testing.T) {
	c := &Constraint{Shape: NewShape(2)}
	iter := NewSolutionIter(c, Config{})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		out, ok := iter.Next()
		require.True(t, ok)
		assertValidSolution(t, out.Solution, c.Shape, false)

		key := ""
		for _, v := range out.Solution {
			key += string(rune('0' + v))
		}
		assert.False(t, seen[key], "solver repeated a solution")
		seen[key] = true
	}
}

func Test9x9MissingOneBoxHasUniqueSolution(t *testing.T) {
	// A fully valid, fully specified solution to a classical Sudoku with
	// the top-left box blanked out. Removing one box from an otherwise
	// complete valid grid always leaves exactly one way to complete it:
	// every cell in that box is pinned by its row and column complements.
	full := []int{
		5, 3, 4, 6, 7, 8, 9, 1, 2,
		6, 7, 2, 1, 9, 5, 3, 4, 8,
		1, 9, 8, 3, 4, 2, 5, 6, 7,
		8, 5, 9, 7, 6, 1, 4, 2, 3,
		4, 2, 6, 8, 5, 3, 7, 9, 1,
		7, 1, 3, 9, 2, 4, 8, 5, 6,
		9, 6, 1, 5, 3, 7, 2, 8, 4,
		2, 8, 7, 4, 1, 9, 6, 3, 5,
		3, 4, 5, 2, 8, 6, 1, 7, 9,
	}
	shape := NewShape(3)
	blanked := map[int]bool{}
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			blanked[shape.CellIndex(r, col)] = true
		}
	}

	var fixed FixedValues
	for i, v := range full {
		if blanked[i] {
			continue
		}
		fixed = append(fixed, FixedValue{Cell: i, Value: DisplayValue(v)})
	}

	c := &Constraint{Shape: shape, FixedValues: fixed}
	iter := NewSolutionIter(c, Config{})

	out, ok := iter.Next()
	require.True(t, ok)
	assertValidSolution(t, out.Solution, shape, false)
	for i, v := range full {
		assert.Equal(t, DisplayValue(v), out.Solution[i])
	}

	_, ok = iter.Next()
	assert.False(t, ok)
}

func classicalGridWithRepeatingDiagonal() []int {
	return []int{
		5, 3, 4, 6, 7, 8, 9, 1, 2,
		6, 7, 2, 1, 9, 5, 3, 4, 8,
		1, 9, 8, 3, 4, 2, 5, 6, 7,
		8, 5, 9, 7, 6, 1, 4, 2, 3,
		4, 2, 6, 8, 5, 3, 7, 9, 1,
		7, 1, 3, 9, 2, 4, 8, 5, 6,
		9, 6, 1, 5, 3, 7, 2, 8, 4,
		2, 8, 7, 4, 1, 9, 6, 3, 5,
		3, 4, 5, 2, 8, 6, 1, 7, 9,
	}
}

func TestXSudokuTogglesSolvability(t *testing.T) {
	full := classicalGridWithRepeatingDiagonal()
	shape := NewShape(3)

	plain := &Constraint{Shape: shape, FixedValues: fixedFromGrid(full)}
	iter := NewSolutionIter(plain, Config{})
	_, ok := iter.Next()
	assert.True(t, ok, "classical rules alone must accept this grid")

	diagonal := &Constraint{Shape: shape, FixedValues: fixedFromGrid(full), XSudoku: true}
	xIter := NewSolutionIter(diagonal, Config{})
	_, ok = xIter.Next()
	assert.False(t, ok, "this grid's main diagonal repeats a digit, so X-Sudoku rules must reject it")
}

func Test16x16WithFewCluesFindsAtLeastOneValidSolution(t *testing.T) {
	shape := NewShape(4)
	fixed := FixedValues{
		{Cell: shape.CellIndex(0, 0), Value: DisplayValue(1)},
		{Cell: shape.CellIndex(1, 1), Value: DisplayValue(2)},
		{Cell: shape.CellIndex(2, 2), Value: DisplayValue(3)},
	}
	c := &Constraint{Shape: shape, FixedValues: fixed}
	iter := NewSolutionIter(c, Config{})

	out, ok := iter.Next()
	require.True(t, ok)
	assertValidSolution(t, out.Solution, shape, false)
	assert.Equal(t, DisplayValue(1), out.Solution[shape.CellIndex(0, 0)])
	assert.Equal(t, DisplayValue(2), out.Solution[shape.CellIndex(1, 1)])
	assert.Equal(t, DisplayValue(3), out.Solution[shape.CellIndex(2, 2)])
}

func TestNoGuessesRejectsAPuzzleThatNeedsSearch(t *testing.T) {
	c := &Constraint{Shape: NewShape(2)}

	withGuesses := NewSolutionIter(c, Config{})
	_, ok := withGuesses.Next()
	require.True(t, ok, "an empty grid must be solvable when guessing is allowed")

	noGuesses := NewSolutionIter(c, Config{NoGuesses: true})
	_, ok = noGuesses.Next()
	assert.False(t, ok, "pure propagation alone cannot solve an empty grid")
}

func TestOutputGuessesReproducesSolution(t *testing.T) {
	c := &Constraint{Shape: NewShape(2)}
	iter := NewSolutionIter(c, Config{OutputType: OutputGuesses})

	out, ok := iter.Next()
	require.True(t, ok)
	assert.Equal(t, OutputGuesses, out.Type)
	assert.NotEmpty(t, out.Guesses)

	replay := &Constraint{Shape: NewShape(2), FixedValues: out.Guesses}
	replayIter := NewSolutionIter(replay, Config{NoGuesses: true})
	replayOut, ok := replayIter.Next()
	require.True(t, ok, "the recorded guesses plus propagation must reach a solution with no further search")
	assertValidSolution(t, replayOut.Solution, c.Shape, false)
}

func TestResetFixedValuesReusesEngine(t *testing.T) {
	iter := NewSolutionIter(&Constraint{Shape: NewShape(2)}, Config{})

	first, ok := iter.Next()
	require.True(t, ok)

	iter.ResetFixedValues(fixedFromGrid([]int{
		1, 2, 3, 4,
		3, 4, 1, 2,
		2, 1, 4, 3,
		4, 3, 2, 1,
	}))
	second, ok := iter.Next()
	require.True(t, ok)
	assert.Equal(t, DisplayValue(1), second.Solution[0])

	_ = first
}
