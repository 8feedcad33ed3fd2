package fd

import "math/bits"

// Bits32 is a ValueSet leaf backed by a single uint32, for grids with
// N up to 32 (box size up to 5... well 25, practically 4x4 through
// 5x5-ish shapes land here; most common sizes up to 25 fit comfortably).
type Bits32 uint32

func (Bits32) Full(n int) Bits32 {
	if n >= 32 {
		return Bits32(^uint32(0))
	}
	return Bits32((uint32(1) << uint(n)) - 1)
}

func (Bits32) Empty() Bits32          { return 0 }
func (Bits32) FromValue(v int) Bits32 { return Bits32(uint32(1) << uint(v)) }

func (b Bits32) IsEmpty() bool     { return b == 0 }
func (b Bits32) Count() int        { return bits.OnesCount32(uint32(b)) }
func (b Bits32) HasMultiple() bool { return uint32(b)&(uint32(b)-1) != 0 }

func (b Bits32) Min() (int, bool) {
	if b == 0 {
		return 0, false
	}
	return bits.TrailingZeros32(uint32(b)), true
}

func (b Bits32) Value() (int, bool) {
	if b == 0 || b.HasMultiple() {
		return 0, false
	}
	return bits.TrailingZeros32(uint32(b)), true
}

func (b Bits32) Pop() (Bits32, int, bool) {
	v, ok := b.Min()
	if !ok {
		return b, 0, false
	}
	return b.Without(Bits32(1 << uint(v))), v, true
}

func (b Bits32) Union(o Bits32) Bits32        { return b | o }
func (b Bits32) Intersection(o Bits32) Bits32 { return b & o }
func (b Bits32) Without(o Bits32) Bits32      { return b &^ o }
func (b Bits32) Equal(o Bits32) bool          { return b == o }
func (Bits32) Width() int                     { return 32 }

// Bits64 is a ValueSet leaf backed by a single uint64, for grids with
// N up to 64.
type Bits64 uint64

func (Bits64) Full(n int) Bits64 {
	if n >= 64 {
		return Bits64(^uint64(0))
	}
	return Bits64((uint64(1) << uint(n)) - 1)
}

func (Bits64) Empty() Bits64          { return 0 }
func (Bits64) FromValue(v int) Bits64 { return Bits64(uint64(1) << uint(v)) }

func (b Bits64) IsEmpty() bool     { return b == 0 }
func (b Bits64) Count() int        { return bits.OnesCount64(uint64(b)) }
func (b Bits64) HasMultiple() bool { return uint64(b)&(uint64(b)-1) != 0 }

func (b Bits64) Min() (int, bool) {
	if b == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(uint64(b)), true
}

func (b Bits64) Value() (int, bool) {
	if b == 0 || b.HasMultiple() {
		return 0, false
	}
	return bits.TrailingZeros64(uint64(b)), true
}

func (b Bits64) Pop() (Bits64, int, bool) {
	v, ok := b.Min()
	if !ok {
		return b, 0, false
	}
	return b.Without(Bits64(1 << uint(v))), v, true
}

func (b Bits64) Union(o Bits64) Bits64        { return b | o }
func (b Bits64) Intersection(o Bits64) Bits64 { return b & o }
func (b Bits64) Without(o Bits64) Bits64      { return b &^ o }
func (b Bits64) Equal(o Bits64) bool          { return b == o }
func (Bits64) Width() int                     { return 64 }

// Bits128 is a ValueSet leaf backed by two uint64 halves, for grids with
// N up to 128 (Lo holds values 0-63, Hi holds values 64-127). It is the
// widest hand-written leaf; 256 and 512 are reached by pairing it with
// itself via Pair.
type Bits128 struct {
	Lo, Hi uint64
}

func fullMask64(n int) uint64 {
	switch {
	case n <= 0:
		return 0
	case n >= 64:
		return ^uint64(0)
	default:
		return (uint64(1) << uint(n)) - 1
	}
}

func (Bits128) Full(n int) Bits128 {
	switch {
	case n <= 0:
		return Bits128{}
	case n <= 64:
		return Bits128{Lo: fullMask64(n)}
	default:
		return Bits128{Lo: ^uint64(0), Hi: fullMask64(n - 64)}
	}
}

func (Bits128) Empty() Bits128 { return Bits128{} }

func (Bits128) FromValue(v int) Bits128 {
	if v < 64 {
		return Bits128{Lo: uint64(1) << uint(v)}
	}
	return Bits128{Hi: uint64(1) << uint(v-64)}
}

func (b Bits128) IsEmpty() bool { return b.Lo == 0 && b.Hi == 0 }
func (b Bits128) Count() int    { return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi) }

func (b Bits128) HasMultiple() bool {
	if b.Lo != 0 && b.Hi != 0 {
		return true
	}
	if b.Lo != 0 {
		return b.Lo&(b.Lo-1) != 0
	}
	return b.Hi&(b.Hi-1) != 0
}

func (b Bits128) Min() (int, bool) {
	if b.Lo != 0 {
		return bits.TrailingZeros64(b.Lo), true
	}
	if b.Hi != 0 {
		return 64 + bits.TrailingZeros64(b.Hi), true
	}
	return 0, false
}

func (b Bits128) Value() (int, bool) {
	if b.IsEmpty() || b.HasMultiple() {
		return 0, false
	}
	return b.Min()
}

func (b Bits128) Pop() (Bits128, int, bool) {
	v, ok := b.Min()
	if !ok {
		return b, 0, false
	}
	return b.Without(b.FromValue(v)), v, true
}

func (b Bits128) Union(o Bits128) Bits128        { return Bits128{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bits128) Intersection(o Bits128) Bits128 { return Bits128{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bits128) Without(o Bits128) Bits128      { return Bits128{b.Lo &^ o.Lo, b.Hi &^ o.Hi} }
func (b Bits128) Equal(o Bits128) bool           { return b.Lo == o.Lo && b.Hi == o.Hi }
func (Bits128) Width() int                       { return 128 }
