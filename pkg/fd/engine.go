package fd

import (
	"fmt"
	"math/rand"
)

// OutputType selects what an Engine yields for each solution found.
type OutputType int

const (
	// OutputSolution yields the full assignment for every cell.
	OutputSolution OutputType = iota
	// OutputGuesses yields only the cells the search had to branch on,
	// which together with propagation reproduce the solution.
	OutputGuesses
	// OutputEmpty yields nothing per solution; used for counting and by
	// the Minimizer, which only cares how many solutions exist.
	OutputEmpty
)

// Output is one result yielded by a SolutionIter.
type Output struct {
	Type     OutputType
	Solution []CellValue
	Guesses  FixedValues
}

// Counters accumulates solver statistics. ProgressRatio and Solutions are
// reset to zero by ResetFixedValues; the rest accumulate for the life of
// the Engine.
type Counters struct {
	Solutions            uint64
	Guesses              uint64
	ValuesTried          uint64
	CellsSearched        uint64
	ConstraintsProcessed uint64
	Backtracks           uint64
	ProgressRatio        float64
}

// ProgressCallback observes solver progress. It receives a live pointer
// to the Engine's counters and must not retain it past the call.
type ProgressCallback func(*Counters)

// Config configures a SolutionIter (or, via Minimizer, the solver it
// drives internally).
type Config struct {
	NoGuesses        bool
	SearchRandomizer *rand.Rand
	OutputType       OutputType
	ProgressCallback ProgressCallback
}

// SolutionIter is the bit-width-erased handle returned to callers: the
// concrete ValueSet representation chosen from a Constraint's shape at
// construction time is hidden behind this interface, so calling code
// never has to name it.
type SolutionIter interface {
	// Next advances the search and returns the next Output, or ok=false
	// once the search space is exhausted.
	Next() (Output, bool)
	// ResetFixedValues restarts the search from scratch with a new set
	// of clues, reusing all of the iterator's internal scratch storage.
	ResetFixedValues(fixed FixedValues)
}

// NewSolutionIter builds a SolutionIter for constraint, selecting the
// narrowest ValueSet representation that covers its shape.
func NewSolutionIter(constraint *Constraint, config Config) SolutionIter {
	validateConstraint(constraint)

	n := constraint.Shape.NumValues
	switch {
	case n <= 32:
		return NewEngine[Bits32](constraint, config)
	case n <= 64:
		return NewEngine[Bits64](constraint, config)
	case n <= 128:
		return NewEngine[Bits128](constraint, config)
	case n <= 256:
		return NewEngine[Pair[Bits128]](constraint, config)
	default:
		return NewEngine[Pair[Pair[Bits128]]](constraint, config)
	}
}

const (
	backtrackDecayInterval = 50
	progressUpdateMask     = uint64(1)<<21 - 1
)

// Engine runs the backtracking search for one Constraint over one
// concrete ValueSet representation S. Guessed cells are tried in
// most-constrained-first order, with each cell's candidate count divided
// down by its recent backtrack count, and with a growable stack of grid
// snapshots reused across calls.
type Engine[S ValueSet[S]] struct {
	started   bool
	cellOrder []int
	recStack  []int
	gridStack [][]S
	fullCell  S

	handlerSet  *HandlerSet[S]
	accumulator *CellAccumulator

	backtrackTriggers  []uint32
	progressRatioStack []float64
	progressNextCheck  uint64

	counters Counters
	config   Config
	numCells int
}

// NewEngine builds an Engine for constraint over ValueSet representation S.
func NewEngine[S ValueSet[S]](constraint *Constraint, config Config) *Engine[S] {
	numCells := constraint.Shape.NumCells
	handlerSet := MakeHandlers[S](constraint)
	accumulator := NewCellAccumulator(numCells, handlerSet.cellsPerHandler())

	cellOrder := make([]int, numCells)
	for i := range cellOrder {
		cellOrder[i] = i
	}
	if config.SearchRandomizer != nil {
		config.SearchRandomizer.Shuffle(numCells, func(i, j int) {
			cellOrder[i], cellOrder[j] = cellOrder[j], cellOrder[i]
		})
	}

	var zero S
	e := &Engine[S]{
		cellOrder:           cellOrder,
		recStack:            make([]int, 0, numCells),
		gridStack:           [][]S{make([]S, numCells)},
		fullCell:            zero.Full(constraint.Shape.NumValues),
		handlerSet:          handlerSet,
		accumulator:         accumulator,
		backtrackTriggers:   make([]uint32, numCells),
		progressRatioStack:  make([]float64, numCells+1),
		config:              config,
		numCells:            numCells,
	}
	e.ResetFixedValues(constraint.FixedValues)
	return e
}

// ResetFixedValues restarts the search with a new clue set, reusing the
// engine's scratch storage.
func (e *Engine[S]) ResetFixedValues(fixed FixedValues) {
	e.started = false
	e.recStack = e.recStack[:0]

	grid := e.gridStack[0]
	for i := range grid {
		grid[i] = e.fullCell
	}
	var zero S
	for _, fv := range fixed {
		grid[fv.Cell] = zero.FromValue(int(fv.Value))
	}

	e.counters.ProgressRatio = 0
	e.counters.Solutions = 0
}

func (e *Engine[S]) maybeCall() {
	if e.config.ProgressCallback != nil {
		e.config.ProgressCallback(&e.counters)
	}
}

func (e *Engine[S]) maybeCallThrottled() {
	if e.config.ProgressCallback == nil {
		return
	}
	if e.counters.ConstraintsProcessed > e.progressNextCheck {
		e.progressNextCheck = e.counters.ConstraintsProcessed | progressUpdateMask
		e.maybeCall()
	}
}

func (e *Engine[S]) pushGridOntoStack() {
	gridIndex := len(e.recStack)
	if len(e.gridStack) == gridIndex+1 {
		next := make([]S, e.numCells)
		copy(next, e.gridStack[gridIndex])
		e.gridStack = append(e.gridStack, next)
		return
	}
	copy(e.gridStack[gridIndex+1], e.gridStack[gridIndex])
}

func (e *Engine[S]) recordBacktrack(cell int) {
	e.counters.Backtracks++
	if e.counters.Backtracks%backtrackDecayInterval == 0 {
		for i := range e.backtrackTriggers {
			e.backtrackTriggers[i] >>= 1
		}
	}
	e.backtrackTriggers[cell]++
}

// skipFixedCells moves every already-singleton cell in cellOrder[start:]
// to the front of that slice, returning the index of the first cell
// still holding multiple candidates.
func (e *Engine[S]) skipFixedCells(start int) int {
	gridIndex := len(e.recStack)
	grid := e.gridStack[gridIndex]

	cellIndex := start
	for i := start; i < len(e.cellOrder); i++ {
		cell := e.cellOrder[i]
		if !grid[cell].HasMultiple() {
			e.cellOrder[i], e.cellOrder[cellIndex] = e.cellOrder[cellIndex], e.cellOrder[i]
			cellIndex++
			e.counters.ValuesTried++
		}
	}
	return cellIndex
}

// updateCellOrder selects the best cell to branch on next from
// cellOrder[cellIndex:], swapping it to the front of that slice. "Best"
// is the smallest score: the remaining-candidate count, divided by the
// cell's backtrack counter when that counter exceeds 1. Equal scores go
// to the cell earliest in cellOrder.
func (e *Engine[S]) updateCellOrder(cellIndex int) {
	gridIndex := len(e.recStack)
	grid := e.gridStack[gridIndex]

	bestIndex := cellIndex
	var bestScore uint32
	found := false
	for i := cellIndex; i < len(e.cellOrder); i++ {
		cell := e.cellOrder[i]
		count := uint32(grid[cell].Count())
		bt := e.backtrackTriggers[cell]
		score := count
		if bt > 1 {
			score = count / bt
		}
		if !found || score < bestScore {
			bestScore = score
			bestIndex = i
			found = true
		}
	}
	e.cellOrder[bestIndex], e.cellOrder[cellIndex] = e.cellOrder[cellIndex], e.cellOrder[bestIndex]
}

func (e *Engine[S]) enforceConsistency() error {
	for {
		idx, ok := e.accumulator.Pop()
		if !ok {
			return nil
		}
		e.accumulator.Hold(idx)
		e.counters.ConstraintsProcessed++

		gridIndex := len(e.recStack)
		if err := e.handlerSet.RunHandler(idx, e.gridStack[gridIndex], e.accumulator); err != nil {
			e.accumulator.Clear()
			return err
		}
		e.accumulator.ClearHold()
	}
}

// run drives the search state machine forward until the next solution or
// exhaustion, returning the winning grid frame on success.
func (e *Engine[S]) run() ([]S, bool) {
	newCellIndex := false
	progressDelta := 1.0
	numCells := e.numCells
	rememberGuesses := e.config.OutputType == OutputGuesses

	if !e.started {
		e.started = true
		e.maybeCall()

		for i := 0; i < numCells; i++ {
			e.accumulator.Add(i)
		}

		if e.enforceConsistency() == nil {
			firstCellIndex := 0
			if e.config.NoGuesses {
				if e.skipFixedCells(0) != numCells {
					e.maybeCall()
					return nil, false
				}
				firstCellIndex = numCells
			}
			e.recStack = append(e.recStack, firstCellIndex)
			newCellIndex = true
		}
		e.maybeCall()
	}

	for len(e.recStack) > 0 {
		cellIndex := e.recStack[len(e.recStack)-1]
		e.recStack = e.recStack[:len(e.recStack)-1]
		gridIndex := len(e.recStack)

		if newCellIndex {
			newCellIndex = false
			cellIndex = e.skipFixedCells(cellIndex)

			if cellIndex == numCells {
				e.counters.Solutions++
				e.counters.ProgressRatio += progressDelta
				e.maybeCall()
				return e.gridStack[gridIndex], true
			}

			e.updateCellOrder(cellIndex)
			count := e.gridStack[gridIndex][e.cellOrder[cellIndex]].Count()
			e.progressRatioStack[gridIndex] = progressDelta / float64(count)
			e.counters.CellsSearched++
		}
		progressDelta = e.progressRatioStack[gridIndex]

		cell := e.cellOrder[cellIndex]
		e.counters.ValuesTried++

		if rememberGuesses || e.gridStack[gridIndex][cell].HasMultiple() {
			rest, v, ok := e.gridStack[gridIndex][cell].Pop()
			if !ok {
				// Nothing left to try at this cell: treat as a backtrack
				// rather than planting a bogus value (can only arise for
				// a singleton cell revisited under OutputGuesses after
				// its sole value already failed).
				e.counters.ProgressRatio += progressDelta
				e.recordBacktrack(cell)
				continue
			}
			e.gridStack[gridIndex][cell] = rest

			e.counters.Guesses++
			e.maybeCallThrottled()

			e.pushGridOntoStack()
			e.recStack = append(e.recStack, cellIndex)

			var zero S
			e.gridStack[gridIndex+1][cell] = zero.FromValue(v)
		}

		e.accumulator.Add(cell)
		if err := e.enforceConsistency(); err == nil {
			e.recStack = append(e.recStack, cellIndex+1)
			newCellIndex = true
		} else {
			e.counters.ProgressRatio += progressDelta
			e.recordBacktrack(cell)
		}
	}

	e.maybeCall()
	return nil, false
}

// Next implements SolutionIter.
func (e *Engine[S]) Next() (Output, bool) {
	grid, ok := e.run()
	if !ok {
		return Output{}, false
	}

	switch e.config.OutputType {
	case OutputEmpty:
		return Output{Type: OutputEmpty}, true
	case OutputGuesses:
		solution := gridToSolution(grid)
		guesses := make(FixedValues, 0, len(e.recStack))
		for _, i := range e.recStack {
			cell := e.cellOrder[i]
			guesses = append(guesses, FixedValue{Cell: cell, Value: solution[cell]})
		}
		return Output{Type: OutputGuesses, Guesses: guesses}, true
	default:
		return Output{Type: OutputSolution, Solution: gridToSolution(grid)}, true
	}
}

func gridToSolution[S ValueSet[S]](grid []S) []CellValue {
	out := make([]CellValue, len(grid))
	for i, vs := range grid {
		v, ok := vs.Value()
		if !ok {
			panic(fmt.Sprintf("fd: solution grid has non-singleton cell %d: %v", i, vs))
		}
		out[i] = CellValue(v)
	}
	return out
}
