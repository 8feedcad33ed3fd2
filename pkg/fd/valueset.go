package fd

// ValueSet is an immutable bit set of candidate values in [0, N). S is the
// concrete implementing type itself, so every set-algebra method is typed
// to return the caller's own representation rather than a boxed
// interface value — the same self-referencing generic shape the search
// engine and handler framework are built on, so the chosen bit width is
// threaded through as a single type parameter instead of being erased
// until the very last layer (SolutionIter).
//
// Implementations never mutate the receiver: every operation returns a
// new value. There is no exported way to iterate a ValueSet's members
// one at a time; every algorithm in this package that needs to visit
// members does so through Min/Pop, which is all Regin's matching phase
// and the search loop ever require.
type ValueSet[S any] interface {
	// Full returns the set containing every value in [0,n).
	Full(n int) S
	// Empty returns the empty set.
	Empty() S
	// FromValue returns the singleton set {v}.
	FromValue(v int) S

	IsEmpty() bool
	Count() int
	// HasMultiple reports whether at least two values are present.
	HasMultiple() bool

	// Min returns the smallest present value, or ok=false if empty.
	Min() (value int, ok bool)
	// Value returns the sole present value, or ok=false unless exactly
	// one value is present.
	Value() (value int, ok bool)
	// Pop returns the set with its smallest value removed, and that value.
	Pop() (rest S, value int, ok bool)

	Union(other S) S
	Intersection(other S) S
	// Without returns the receiver with every member of other removed.
	Without(other S) S
	Equal(other S) bool

	// Width reports the native bit width of the concrete representation.
	Width() int
}

// Full is the free-function form of ValueSet.Full, useful where no live
// value of S is at hand yet.
func Full[S ValueSet[S]](n int) S {
	var zero S
	return zero.Full(n)
}

// Empty is the free-function form of ValueSet.Empty.
func Empty[S ValueSet[S]]() S {
	var zero S
	return zero.Empty()
}

// FromValue is the free-function form of ValueSet.FromValue.
func FromValue[S ValueSet[S]](v int) S {
	var zero S
	return zero.FromValue(v)
}
