package fd

// Pair composes two ValueSet halves of type H into a set twice as wide.
// Pair[Bits128] reaches 256 values; Pair[Pair[Bits128]] reaches 512 via
// two levels of recursive pairing, built on a single 128-bit leaf instead
// of hand-writing 256/512-bit integer arithmetic.
type Pair[H ValueSet[H]] struct {
	Lo, Hi H
}

func halfWidth[H ValueSet[H]]() int {
	var zero H
	return zero.Width()
}

func (Pair[H]) Full(n int) Pair[H] {
	hw := halfWidth[H]()
	var zero H
	switch {
	case n <= 0:
		return Pair[H]{}
	case n <= hw:
		return Pair[H]{Lo: zero.Full(n)}
	case n >= 2*hw:
		full := zero.Full(hw)
		return Pair[H]{Lo: full, Hi: full}
	default:
		return Pair[H]{Lo: zero.Full(hw), Hi: zero.Full(n - hw)}
	}
}

func (Pair[H]) Empty() Pair[H] { return Pair[H]{} }

func (Pair[H]) FromValue(v int) Pair[H] {
	hw := halfWidth[H]()
	var zero H
	if v < hw {
		return Pair[H]{Lo: zero.FromValue(v)}
	}
	return Pair[H]{Hi: zero.FromValue(v - hw)}
}

func (p Pair[H]) IsEmpty() bool { return p.Lo.IsEmpty() && p.Hi.IsEmpty() }
func (p Pair[H]) Count() int    { return p.Lo.Count() + p.Hi.Count() }

func (p Pair[H]) HasMultiple() bool {
	loEmpty, hiEmpty := p.Lo.IsEmpty(), p.Hi.IsEmpty()
	if !loEmpty && !hiEmpty {
		return true
	}
	return p.Lo.HasMultiple() || p.Hi.HasMultiple()
}

func (p Pair[H]) Min() (int, bool) {
	if v, ok := p.Lo.Min(); ok {
		return v, true
	}
	if v, ok := p.Hi.Min(); ok {
		return halfWidth[H]() + v, true
	}
	return 0, false
}

func (p Pair[H]) Value() (int, bool) {
	if p.IsEmpty() || p.HasMultiple() {
		return 0, false
	}
	return p.Min()
}

func (p Pair[H]) Pop() (Pair[H], int, bool) {
	v, ok := p.Min()
	if !ok {
		return p, 0, false
	}
	return p.Without(p.FromValue(v)), v, true
}

func (p Pair[H]) Union(o Pair[H]) Pair[H] {
	return Pair[H]{p.Lo.Union(o.Lo), p.Hi.Union(o.Hi)}
}

func (p Pair[H]) Intersection(o Pair[H]) Pair[H] {
	return Pair[H]{p.Lo.Intersection(o.Lo), p.Hi.Intersection(o.Hi)}
}

func (p Pair[H]) Without(o Pair[H]) Pair[H] {
	return Pair[H]{p.Lo.Without(o.Lo), p.Hi.Without(o.Hi)}
}

func (p Pair[H]) Equal(o Pair[H]) bool {
	return p.Lo.Equal(o.Lo) && p.Hi.Equal(o.Hi)
}

func (Pair[H]) Width() int { return 2 * halfWidth[H]() }
