package fd

// AllDifferentEnforcer filters a house of exactly numValues cells down to
// the values that can still participate in some all-different assignment,
// via Regin's algorithm: a maximum bipartite matching between cells and
// values (Ford-Fulkerson augmenting paths), edge reversal, then an
// iterative Tarjan strongly-connected-components pass that finds every
// edge that can never lie on a maximum matching and removes it.
//
// All scratch storage is owned by the enforcer and reused across calls;
// a single instance is built per HandlerSet, shared by all of its houses,
// and lives for the lifetime of the Engine.
type AllDifferentEnforcer[S ValueSet[S]] struct {
	numValues int

	cellNodes    []S   // working copy of each house cell's candidates
	assignees    []int // value -> cell currently matched to it
	assigneesInv []S   // cell -> singleton set of the value it's matched to
	cellAssigned []bool

	ids       []int
	lowlinks  []int
	recStack  []int
	dataStack []int
}

// NewAllDifferentEnforcer allocates an enforcer for houses of exactly
// numValues cells drawn from numValues distinct values.
func NewAllDifferentEnforcer[S ValueSet[S]](numValues int) *AllDifferentEnforcer[S] {
	var zero S
	assigneesInv := make([]S, numValues)
	for i := range assigneesInv {
		assigneesInv[i] = zero.Empty()
	}
	return &AllDifferentEnforcer[S]{
		numValues:    numValues,
		cellNodes:    make([]S, numValues),
		assignees:    make([]int, numValues),
		assigneesInv: assigneesInv,
		cellAssigned: make([]bool, numValues),
		ids:          make([]int, numValues),
		lowlinks:     make([]int, numValues),
		recStack:     make([]int, 0, numValues),
		dataStack:    make([]int, 0, numValues),
	}
}

// EnforceAllDifferent narrows grid's values at cells so that no value is
// forced to repeat across them, queuing any cell it narrows onto accum.
// hint, if non-nil, is a per-cell-position singleton-value hint from the
// caller's previous call (a warm start for the matching phase); on
// success the new matching is written back into hint for next time.
func (e *AllDifferentEnforcer[S]) EnforceAllDifferent(grid []S, cells []int, hint []S, accum *CellAccumulator) error {
	for i, cell := range cells {
		e.cellNodes[i] = grid[cell]
	}

	if !e.maxMatching(hint) {
		return errContradiction
	}

	var zero S
	for i, assignee := range e.assignees {
		iSet := zero.FromValue(i)
		e.cellNodes[assignee] = e.cellNodes[assignee].Without(iSet)
		e.assigneesInv[assignee] = iSet
	}

	e.removeSCC()

	for i, cell := range cells {
		if !e.cellNodes[i].IsEmpty() {
			grid[cell] = grid[cell].Without(e.cellNodes[i])
			accum.Add(cell)
		}
	}

	if hint != nil {
		copy(hint, e.assigneesInv[:len(hint)])
	}

	return nil
}

// maxMatching computes a maximum matching between cellNodes (indexed 0..
// numValues-1, one per house cell) and values 0..numValues-1, seeding it
// from hint when a hinted value is still a live candidate for its cell.
// Returns false if no perfect matching exists (a contradiction).
func (e *AllDifferentEnforcer[S]) maxMatching(hint []S) bool {
	var zero S
	assigned := zero.Empty()
	for i := range e.cellAssigned {
		e.cellAssigned[i] = false
	}

	if hint != nil {
		for i, h := range hint {
			v, ok := h.Value()
			if !ok {
				continue
			}
			vSet := zero.FromValue(v)
			if !assigned.Intersection(vSet).IsEmpty() {
				continue
			}
			if e.cellNodes[i].Intersection(vSet).IsEmpty() {
				continue
			}
			e.assignees[v] = i
			e.cellAssigned[i] = true
			assigned = assigned.Union(vSet)
		}
	}

	for i := range e.cellNodes {
		if e.cellAssigned[i] {
			continue
		}

		values := e.cellNodes[i].Without(assigned)
		if !values.IsEmpty() {
			v, _ := values.Min()
			e.assignees[v] = i
			assigned = assigned.Union(zero.FromValue(v))
			continue
		}

		matched, ok := e.updateMatching(i, assigned)
		if !ok {
			return false
		}
		assigned = assigned.Union(matched)
	}
	return true
}

// updateMatching looks for an augmenting path starting at cell, using
// recStack as the path of cells visited and dataStack as the parallel
// path of values tried at each step.
func (e *AllDifferentEnforcer[S]) updateMatching(cell int, assigned S) (S, bool) {
	var zero S
	e.recStack = e.recStack[:0]
	e.dataStack = e.dataStack[:0]
	e.recStack = append(e.recStack, cell)

	seen := zero.Empty()

	for len(e.recStack) > 0 {
		c := e.recStack[len(e.recStack)-1]
		values := e.cellNodes[c].Without(seen)

		if values.IsEmpty() {
			e.recStack = e.recStack[:len(e.recStack)-1]
			if len(e.dataStack) > 0 {
				e.dataStack = e.dataStack[:len(e.dataStack)-1]
			}
			continue
		}

		v, _ := values.Min()
		e.dataStack = append(e.dataStack, v)

		nextCell := e.assignees[v]
		nextValues := e.cellNodes[nextCell].Without(assigned)
		if !nextValues.IsEmpty() {
			nextV, _ := nextValues.Min()
			e.assignees[nextV] = nextCell
			for i := range e.dataStack {
				e.assignees[e.dataStack[i]] = e.recStack[i]
			}
			return zero.FromValue(nextV), true
		}

		seen = seen.Union(zero.FromValue(v))
		e.recStack = append(e.recStack, nextCell)
	}

	return zero.Empty(), false
}

// removeSCC runs an iterative Tarjan SCC pass over the reversed matching
// graph: any value edge leaving an SCC can never lie on a maximum
// matching. Edges inside each SCC are stripped from cellNodes, so that
// cellNodes ends up holding exactly the edges to remove from the grid.
func (e *AllDifferentEnforcer[S]) removeSCC() {
	e.recStack = e.recStack[:0]
	e.dataStack = e.dataStack[:0] // acts as the SCC stack here

	var zero S
	seen := zero.Empty()
	invSeen := zero.Empty()
	invStackMember := zero.Empty()
	index := 0
	prevU := 0

	for i := range e.cellNodes {
		iSet := zero.FromValue(i)
		if e.cellNodes[i].IsEmpty() || !seen.Intersection(iSet).IsEmpty() {
			continue
		}

		e.recStack = append(e.recStack, i)

		for len(e.recStack) > 0 {
			u := e.recStack[len(e.recStack)-1]
			uSet := zero.FromValue(u)

			if seen.Intersection(uSet).IsEmpty() {
				e.ids[u] = index
				e.lowlinks[u] = index
				index++
				seen = seen.Union(uSet)

				uInv := e.assigneesInv[u]
				invStackMember = invStackMember.Union(uInv)
				invSeen = invSeen.Union(uInv)
				e.dataStack = append(e.dataStack, u)
			} else if e.lowlinks[prevU] < e.lowlinks[u] {
				e.lowlinks[u] = e.lowlinks[prevU]
			}

			if unseenAdj := e.cellNodes[u].Without(invSeen); !unseenAdj.IsEmpty() {
				v, _ := unseenAdj.Min()
				e.recStack = append(e.recStack, e.assignees[v])
				continue
			}

			stackAdj := e.cellNodes[u].Intersection(invStackMember)
			for !stackAdj.IsEmpty() {
				v, _ := stackAdj.Min()
				stackAdj = stackAdj.Without(zero.FromValue(v))
				n := e.assignees[v]
				if e.ids[n] < e.lowlinks[u] {
					e.lowlinks[u] = e.ids[n]
				}
			}

			if e.lowlinks[u] == e.ids[u] {
				mask := zero.Full(e.numValues)
				for j := len(e.dataStack) - 1; j >= 0; j-- {
					w := e.dataStack[j]
					wInv := e.assigneesInv[w]
					invStackMember = invStackMember.Without(wInv)
					mask = mask.Without(wInv)
					if w == u {
						break
					}
				}
				for len(e.dataStack) > 0 {
					w := e.dataStack[len(e.dataStack)-1]
					e.dataStack = e.dataStack[:len(e.dataStack)-1]
					e.cellNodes[w] = e.cellNodes[w].Intersection(mask)
					if w == u {
						break
					}
				}
			}

			prevU = u
			e.recStack = e.recStack[:len(e.recStack)-1]
		}
	}
}
