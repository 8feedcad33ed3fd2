package fd

// constraintHandler is the common shape of the two handler kinds a
// HandlerSet dispatches: House and SameValue. Both reduce to "given the
// cells I reference, narrow the grid or report a contradiction"; the
// AllDifferentEnforcer is threaded through explicitly since only House
// uses it.
type constraintHandler[S ValueSet[S]] interface {
	cellsOf() []int
	run(grid []S, accum *CellAccumulator, allDiff *AllDifferentEnforcer[S]) error
}

// House enforces that its N cells hold N distinct values covering the
// full range: a row, column, box, or (for X-Sudoku) a diagonal.
type House[S ValueSet[S]] struct {
	cells             []int
	fullValues        S
	numValues         int
	candidateMatching []S
}

// NewHouse builds a House over cells, which must number exactly
// numValues.
func NewHouse[S ValueSet[S]](cells []int, numValues int) *House[S] {
	var zero S
	matching := make([]S, len(cells))
	for i := range matching {
		matching[i] = zero.Empty()
	}
	return &House[S]{
		cells:             cells,
		numValues:         numValues,
		fullValues:        zero.Full(numValues),
		candidateMatching: matching,
	}
}

func (h *House[S]) cellsOf() []int { return h.cells }

func (h *House[S]) run(grid []S, accum *CellAccumulator, allDiff *AllDifferentEnforcer[S]) error {
	var zero S
	union := zero.Empty()
	numFixed := 0
	for _, cell := range h.cells {
		v := grid[cell]
		union = union.Union(v)
		if !v.HasMultiple() {
			numFixed++
		}
	}

	if !union.Equal(h.fullValues) {
		return errContradiction
	}
	if numFixed == h.numValues {
		return nil
	}

	return allDiff.EnforceAllDifferent(grid, h.cells, h.candidateMatching, accum)
}

// SameValue enforces that two disjoint groups of cells hold exactly the
// same set of values — the "pointing/claiming" deduction that follows
// from two houses sharing a box_size-sized intersection: the rest of
// each house minus the shared cells must carry the same values as the
// rest of the other.
type SameValue[S ValueSet[S]] struct {
	cells          []int
	groupA, groupB []int
}

// NewSameValue builds a SameValue handler relating disjoint cell groups a
// and b, which must be equal in size.
func NewSameValue[S ValueSet[S]](a, b []int) *SameValue[S] {
	cells := make([]int, 0, len(a)+len(b))
	cells = append(cells, a...)
	cells = append(cells, b...)
	return &SameValue[S]{cells: cells, groupA: a, groupB: b}
}

func (sv *SameValue[S]) cellsOf() []int { return sv.cells }

func (sv *SameValue[S]) run(grid []S, accum *CellAccumulator, _ *AllDifferentEnforcer[S]) error {
	var zero S
	valuesA := zero.Empty()
	for _, c := range sv.groupA {
		valuesA = valuesA.Union(grid[c])
	}
	valuesB := zero.Empty()
	for _, c := range sv.groupB {
		valuesB = valuesB.Union(grid[c])
	}

	if valuesA.Equal(valuesB) {
		return nil
	}

	values := valuesA.Intersection(valuesB)
	if values.Count() < len(sv.groupA) {
		return errContradiction
	}

	if !valuesA.Equal(values) {
		if err := restrictToValues(grid, values, sv.groupA, accum); err != nil {
			return err
		}
	}
	if !valuesB.Equal(values) {
		if err := restrictToValues(grid, values, sv.groupB, accum); err != nil {
			return err
		}
	}
	return nil
}

func restrictToValues[S ValueSet[S]](grid []S, allowed S, cells []int, accum *CellAccumulator) error {
	for _, c := range cells {
		narrowed := grid[c].Intersection(allowed)
		if narrowed.IsEmpty() {
			return errContradiction
		}
		if !narrowed.Equal(grid[c]) {
			grid[c] = narrowed
			accum.Add(c)
		}
	}
	return nil
}

// HandlerSet holds every handler active for one Constraint and the
// single AllDifferentEnforcer its House handlers share.
type HandlerSet[S ValueSet[S]] struct {
	handlers []constraintHandler[S]
	allDiff  *AllDifferentEnforcer[S]
}

// RunHandler invokes the handler at index against grid.
func (hs *HandlerSet[S]) RunHandler(index int, grid []S, accum *CellAccumulator) error {
	return hs.handlers[index].run(grid, accum, hs.allDiff)
}

// Len reports the number of handlers.
func (hs *HandlerSet[S]) Len() int { return len(hs.handlers) }

func (hs *HandlerSet[S]) cellsPerHandler() [][]int {
	out := make([][]int, len(hs.handlers))
	for i, h := range hs.handlers {
		out[i] = h.cellsOf()
	}
	return out
}

// maxSizeForIntersections bounds the O(houses^2) house-intersection
// construction step: above this many values per house, the quadratic
// scan is skipped and only row/column/box/diagonal houses are built.
const maxSizeForIntersections = 100

// makeHouses builds the row, column, and box houses for shape, plus the
// two main diagonals when xSudoku is set.
func makeHouses(shape Shape, xSudoku bool) [][]int {
	n := shape.NumValues
	boxSize := shape.BoxSize
	houses := make([][]int, 0, n*3+2)

	for r := 0; r < n; r++ {
		house := make([]int, n)
		for c := 0; c < n; c++ {
			house[c] = shape.CellIndex(r, c)
		}
		houses = append(houses, house)
	}

	for c := 0; c < n; c++ {
		house := make([]int, n)
		for r := 0; r < n; r++ {
			house[r] = shape.CellIndex(r, c)
		}
		houses = append(houses, house)
	}

	for b := 0; b < n; b++ {
		house := make([]int, n)
		for i := 0; i < n; i++ {
			r := (b%boxSize)*boxSize + i/boxSize
			c := (b/boxSize)*boxSize + i%boxSize
			house[i] = shape.CellIndex(r, c)
		}
		houses = append(houses, house)
	}

	if xSudoku {
		diag := make([]int, n)
		anti := make([]int, n)
		for r := 0; r < n; r++ {
			diag[r] = shape.CellIndex(r, r)
			anti[r] = shape.CellIndex(r, n-1-r)
		}
		houses = append(houses, diag, anti)
	}

	return houses
}

func intersectionSize(a, b []int) int {
	set := make(map[int]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	count := 0
	for _, v := range a {
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}

func difference(a, b []int) []int {
	set := make(map[int]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]int, 0, len(a))
	for _, v := range a {
		if _, ok := set[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// makeHouseIntersections emits a SameValue handler for every pair of
// houses whose intersection has exactly boxSize cells: the values in one
// house but outside the intersection must match the values in the other
// house but outside the intersection (pointing/claiming).
func makeHouseIntersections[S ValueSet[S]](houses [][]int, boxSize int) []constraintHandler[S] {
	var handlers []constraintHandler[S]
	for i, a := range houses {
		for _, b := range houses[i+1:] {
			if intersectionSize(a, b) == boxSize {
				handlers = append(handlers, NewSameValue[S](difference(a, b), difference(b, a)))
			}
		}
	}
	return handlers
}

// MakeHandlers builds the full HandlerSet for a Constraint's shape and
// X-Sudoku setting.
func MakeHandlers[S ValueSet[S]](c *Constraint) *HandlerSet[S] {
	houses := makeHouses(c.Shape, c.XSudoku)

	handlers := make([]constraintHandler[S], 0, len(houses))
	for _, house := range houses {
		handlers = append(handlers, NewHouse[S](house, c.Shape.NumValues))
	}

	if c.Shape.NumValues <= maxSizeForIntersections {
		handlers = append(handlers, makeHouseIntersections[S](houses, c.Shape.BoxSize)...)
	}

	return &HandlerSet[S]{
		handlers: handlers,
		allDiff:  NewAllDifferentEnforcer[S](c.Shape.NumValues),
	}
}
