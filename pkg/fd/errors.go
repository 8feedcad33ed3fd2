package fd

import "errors"

// errContradiction signals that a handler proved the current partial
// grid unsatisfiable. It is consumed entirely inside the search loop as
// a backtrack trigger; callers only ever see an exhausted SolutionIter,
// never this error.
var errContradiction = errors.New("fd: contradiction")
