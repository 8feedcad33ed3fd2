package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValueSetWidth[S ValueSet[S]](t *testing.T, width, nativeWidth int) {
	t.Helper()

	full := Full[S](width)
	assert.Equal(t, width, full.Count())
	assert.False(t, full.IsEmpty())
	assert.True(t, full.HasMultiple())

	empty := Empty[S]()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, empty.Count())
	_, ok := empty.Min()
	assert.False(t, ok)

	single := FromValue[S](width - 1)
	assert.Equal(t, 1, single.Count())
	assert.False(t, single.HasMultiple())
	v, ok := single.Value()
	require.True(t, ok)
	assert.Equal(t, width-1, v)

	rest, popped, ok := full.Pop()
	require.True(t, ok)
	assert.Equal(t, 0, popped)
	assert.Equal(t, width-1, rest.Count())

	union := empty.Union(single)
	assert.True(t, union.Equal(single))

	inter := full.Intersection(single)
	assert.True(t, inter.Equal(single))

	without := full.Without(single)
	assert.Equal(t, width-1, without.Count())
	assert.False(t, without.Intersection(single).Count() > 0)

	assert.Equal(t, nativeWidth, full.Width())
}

func TestValueSetWidths(t *testing.T) {
	t.Run("Bits32/full-width", func(t *testing.T) { testValueSetWidth[Bits32](t, 32, 32) })
	t.Run("Bits32/narrow", func(t *testing.T) { testValueSetWidth[Bits32](t, 9, 32) })
	t.Run("Bits64/full-width", func(t *testing.T) { testValueSetWidth[Bits64](t, 64, 64) })
	t.Run("Bits64/narrow", func(t *testing.T) { testValueSetWidth[Bits64](t, 25, 64) })
	t.Run("Bits128/full-width", func(t *testing.T) { testValueSetWidth[Bits128](t, 128, 128) })
	t.Run("Bits128/narrow", func(t *testing.T) { testValueSetWidth[Bits128](t, 100, 128) })
	t.Run("Pair256/full-width", func(t *testing.T) { testValueSetWidth[Pair[Bits128]](t, 256, 256) })
	t.Run("Pair256/narrow", func(t *testing.T) { testValueSetWidth[Pair[Bits128]](t, 225, 256) })
	t.Run("Pair512/full-width", func(t *testing.T) { testValueSetWidth[Pair[Pair[Bits128]]](t, 512, 512) })
	t.Run("Pair512/narrow", func(t *testing.T) { testValueSetWidth[Pair[Pair[Bits128]]](t, 484, 512) })
}

func TestBits128CrossesWordBoundary(t *testing.T) {
	low := FromValue[Bits128](63)
	high := FromValue[Bits128](64)
	union := low.Union(high)
	assert.True(t, union.HasMultiple())
	assert.Equal(t, 2, union.Count())
	v, ok := low.Value()
	require.True(t, ok)
	assert.Equal(t, 63, v)
	v, ok = high.Value()
	require.True(t, ok)
	assert.Equal(t, 64, v)
}

func TestPairCrossesHalfBoundary(t *testing.T) {
	low := FromValue[Pair[Bits128]](127)
	high := FromValue[Pair[Bits128]](128)
	full := Full[Pair[Bits128]](256)

	assert.True(t, full.Intersection(low).Equal(low))
	assert.True(t, full.Intersection(high).Equal(high))

	rest, v, ok := low.Union(high).Pop()
	require.True(t, ok)
	assert.Equal(t, 127, v)
	assert.True(t, rest.Equal(high))
}

func TestFullBoundaryAtNativeWidth(t *testing.T) {
	// Full(32) on a Bits32 leaf must set every bit, including bit 31,
	// without overflowing the shift.
	f := Full[Bits32](32)
	assert.Equal(t, Bits32(^uint32(0)), f)
}
