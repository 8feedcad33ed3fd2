package fd

import "math/rand"

// MinimizerCounters reports a Minimizer's own progress plus a live
// snapshot of the underlying solver's Counters.
type MinimizerCounters struct {
	CellsTried   uint64
	CellsRemoved uint64
	Solver       Counters
}

// MinimizerProgressCallback observes minimizer progress.
type MinimizerProgressCallback func(*MinimizerCounters)

// Minimizer repeatedly tries to drop one clue at a time from a
// Constraint while the puzzle continues to solve uniquely. Clues are
// tried from the end of the given order backward (that order is
// optionally shuffled at construction); a clue
// that turns out to be required once removal breaks uniqueness is kept
// and never retried.
type Minimizer struct {
	iter      SolutionIter
	remaining FixedValues
	required  FixedValues

	counters         MinimizerCounters
	progressCallback MinimizerProgressCallback
}

// NewMinimizer builds a Minimizer over constraint. If rng is non-nil the
// order clues are considered for removal is shuffled; config's
// OutputType is overridden to OutputEmpty since the minimizer only cares
// how many solutions exist, never what they are.
func NewMinimizer(constraint *Constraint, config Config, rng *rand.Rand, progress MinimizerProgressCallback) *Minimizer {
	remaining := make(FixedValues, len(constraint.FixedValues))
	copy(remaining, constraint.FixedValues)
	if rng != nil {
		rng.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
	}

	m := &Minimizer{
		remaining:        remaining,
		required:         make(FixedValues, 0, len(remaining)),
		progressCallback: progress,
	}

	solverConfig := config
	solverConfig.OutputType = OutputEmpty
	solverConfig.ProgressCallback = func(c *Counters) {
		m.counters.Solver = *c
		if m.progressCallback != nil {
			m.progressCallback(&m.counters)
		}
	}

	m.iter = NewSolutionIter(&Constraint{
		Shape:       constraint.Shape,
		XSudoku:     constraint.XSudoku,
		FixedValues: constraint.FixedValues,
	}, solverConfig)

	return m
}

// Next tries to remove one more clue and returns the resulting
// FixedValues, which still solves uniquely. It returns ok=false once
// every remaining clue has been found to be required.
func (m *Minimizer) Next() (FixedValues, bool) {
	for len(m.remaining) > 0 {
		item := m.remaining[len(m.remaining)-1]
		m.remaining = m.remaining[:len(m.remaining)-1]

		candidate := make(FixedValues, 0, len(m.remaining)+len(m.required))
		candidate = append(candidate, m.remaining...)
		candidate = append(candidate, m.required...)

		m.iter.ResetFixedValues(candidate)
		m.counters.CellsTried++
		if m.progressCallback != nil {
			m.progressCallback(&m.counters)
		}

		if _, ok := m.iter.Next(); !ok {
			// Dropping this clue leaves no solution at all: keep it.
			m.required = append(m.required, item)
			continue
		}

		if _, ok := m.iter.Next(); !ok {
			// Exactly one solution without this clue: it was redundant.
			m.counters.CellsRemoved++
			return candidate, true
		}

		// Two or more solutions: this clue was needed for uniqueness.
		m.required = append(m.required, item)
	}
	return nil, false
}
