package bitvec_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitvec/bitvec"
)

const (
	l = true
	o = false
)

var sample = []bool{l, o, o, l, l, o, o, l, l, l, o}

// requireCanonical asserts the byte count and zero padding of v.
func requireCanonical(t *testing.T, v *bitvec.BitVec) {
	t.Helper()
	b := v.Bytes()
	require.Len(t, b, (v.Len()+7)/8)
	if rem := v.Len() % 8; rem != 0 {
		require.Zero(t, b[len(b)-1]>>uint(rem), "unused bits of %#v", v)
	}
}

func TestIndex(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	req.True(v.At(0))
	req.False(v.At(4))
	req.True(v.At(15))
}

func TestConstructorsForEmpty(t *testing.T) {
	req := require.New(t)

	v := bitvec.New()
	req.Equal(0, v.Len())
	req.True(v.IsEmpty())
	req.Equal(0, v.Capacity())
	req.Empty(v.Bytes())

	var zero bitvec.BitVec
	req.Equal(0, zero.Len())
	req.Empty(zero.Bytes())

	for _, tc := range []struct{ capacity, want int }{
		{0, 0},
		{1, 8},
		{8, 8},
		{9, 16},
	} {
		v := bitvec.WithCapacity(tc.capacity)
		req.Equal(0, v.Len())
		req.Equal(tc.want, v.Capacity(), "capacity %d", tc.capacity)
		req.Empty(v.Bytes())
	}
}

func TestConvertFromBools(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBools(sample)
	req.Equal(11, v.Len())
	req.Equal([]byte{0x99, 0x03}, v.Bytes())

	v = bitvec.FromSeq(bitvec.FromBools(sample).Values())
	req.Equal(11, v.Len())
	req.Equal([]byte{0x99, 0x03}, v.Bytes())

	v = bitvec.New()
	v.Append(sample...)
	req.Equal([]byte{0x99, 0x03}, v.Bytes())
}

func TestConvertToBools(t *testing.T) {
	v := bitvec.FromBools(sample)
	require.Equal(t, sample, v.Bools())
	require.Empty(t, bitvec.New().Bools())
}

func TestConstructorsFromBytes(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xab, 0xcd})
	req.Equal(16, v.Len())
	req.Equal([]byte{0xab, 0xcd}, v.Bytes())

	for _, tc := range []struct {
		n     int
		value bool
		want  []byte
	}{
		{4, true, []byte{0x0f}},
		{31, true, []byte{0xff, 0xff, 0xff, 0x7f}},
		{4, false, []byte{0x00}},
		{31, false, []byte{0x00, 0x00, 0x00, 0x00}},
		{16, true, []byte{0xff, 0xff}},
		{0, true, []byte{}},
	} {
		v := bitvec.FromElem(tc.n, tc.value)
		req.Equal(tc.n, v.Len())
		req.Equal(tc.want, v.Bytes(), "FromElem(%d, %v)", tc.n, tc.value)
	}
}

func TestFromBytesCopies(t *testing.T) {
	b := []byte{0x01}
	v := bitvec.FromBytes(b)
	b[0] = 0xff
	require.Equal(t, []byte{0x01}, v.Bytes())
}

func TestFromParts(t *testing.T) {
	req := require.New(t)

	v, err := bitvec.FromParts(12, []byte{0xef, 0x05})
	req.NoError(err)
	req.Equal(12, v.Len())
	req.Equal([]byte{0xef, 0x05}, v.Bytes())

	_, err = bitvec.FromParts(12, []byte{0xef, 0xa5})
	req.ErrorIs(err, bitvec.ErrNonZeroPadding)

	_, err = bitvec.FromParts(17, []byte{0xef, 0xa5})
	req.ErrorIs(err, bitvec.ErrLengthMismatch)

	_, err = bitvec.FromParts(-1, nil)
	req.ErrorIs(err, bitvec.ErrLengthMismatch)
}

func TestRoundTripBytes(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 64; n++ {
		b := make([]byte, n)
		r.Read(b)
		require.Equal(t, b, bitvec.FromBytes(b).Bytes())
	}
}

func TestWithBytesMut(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromElem(28, false)
	req.Equal(28, v.Len())
	req.Equal([]byte{0, 0, 0, 0}, v.Bytes())

	// Fill the underlying buffer with all 1s.
	v.WithBytesMut(func(b []byte) {
		req.Len(b, 4)
		for i := range b {
			b[i] = 0xff
		}
	})

	// Expect the unused bits to be zeroed out.
	req.Equal([]byte{0xff, 0xff, 0xff, 0x0f}, v.Bytes())
}

func TestWithBytesMutPanic(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromElem(12, false)
	req.Panics(func() {
		v.WithBytesMut(func(b []byte) {
			b[1] = 0xff
			panic("partial write")
		})
	})
	req.Equal([]byte{0x00, 0x0f}, v.Bytes())
}

func TestWithBytesMutAppend(t *testing.T) {
	v := bitvec.WithCapacity(64)
	v.Push(true)
	v.WithBytesMut(func(b []byte) {
		b = append(b, 0xff)
		_ = b
	})
	require.Equal(t, 1, v.Len())
	v.Resize(16, false)
	require.Equal(t, []byte{0x01, 0x00}, v.Bytes())
}

func TestIntoBytes(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0xe3})
	v.Pop()
	v.Pop()
	req.Equal(54, v.Len())

	b := v.IntoBytes()
	req.Equal([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23}, b)
	req.True(v.IsEmpty())
	req.Empty(v.Bytes())
}

func TestGetSetIndex(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	req.Equal([]byte{0xef, 0xa5, 0x71}, v.Bytes())

	value, ok := v.Get(8)
	req.True(ok)
	req.True(value)
	req.True(v.At(8))

	v.Set(8, true)
	req.True(v.At(8))
	req.Equal([]byte{0xef, 0xa5, 0x71}, v.Bytes())

	v.Set(8, false)
	value, ok = v.Get(8)
	req.True(ok)
	req.False(value)
	req.Equal([]byte{0xef, 0xa4, 0x71}, v.Bytes())

	v.Set(7, false)
	req.False(v.At(7))
	req.Equal([]byte{0x6f, 0xa4, 0x71}, v.Bytes())

	_, ok = v.Get(v.Len())
	req.False(ok)
	_, ok = v.Get(-1)
	req.False(ok)
}

func TestSetValidation(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	req.PanicsWithError("bitvec: index 24 out of bounds [0, 24)", func() { v.Set(24, true) })
	req.Panics(func() { v.Set(-1, true) })
	req.Panics(func() { v.At(24) })
	req.Panics(func() { v.Swap(0, 24) })
	req.Panics(func() { v.Swap(24, 0) })

	// A failed call leaves the vector untouched.
	req.Equal([]byte{0xef, 0xa5, 0x71}, v.Bytes())
}

func TestUnchecked(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromElem(10, false)
	v.SetUnchecked(9, true)
	req.True(v.GetUnchecked(9))
	req.Equal([]byte{0x00, 0x02}, v.Bytes())
}

func TestSwap(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	v.Swap(0, 23)
	req.Equal(24, v.Len())
	req.Equal([]byte{0xee, 0xa5, 0xf1}, v.Bytes())

	v.Swap(0, 5)
	req.Equal(24, v.Len())
	req.Equal([]byte{0xcf, 0xa5, 0xf1}, v.Bytes())

	v.Swap(3, 3)
	req.Equal([]byte{0xcf, 0xa5, 0xf1}, v.Bytes())
}

func TestPopToEmpty(t *testing.T) {
	req := require.New(t)

	v := bitvec.New()
	_, ok := v.Pop()
	req.False(ok)
	_, ok = v.Pop()
	req.False(ok)

	v = bitvec.FromBytes([]byte{0b01111111})
	value, ok := v.Pop()
	req.True(ok)
	req.False(value)
	req.Equal(7, v.Len())
	for i := 0; i < 7; i++ {
		value, ok := v.Pop()
		req.True(ok)
		req.True(value)
	}
	req.Equal(0, v.Len())
	req.Empty(v.Bytes())
	_, ok = v.Pop()
	req.False(ok)
	req.Equal(0, v.Len())
}

func TestPopPush(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0b11100011})
	req.Equal(56, v.Len())

	// Pop 2 bits and expect the byte view to show zeros for them.
	for i := 0; i < 2; i++ {
		value, ok := v.Pop()
		req.True(ok)
		req.True(value)
	}
	req.Equal(54, v.Len())
	req.Equal([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0b00100011}, v.Bytes())

	// Finish popping the byte and expect the view to be one byte shorter.
	for _, want := range []bool{l, o, o, o, l, l} {
		value, ok := v.Pop()
		req.True(ok)
		req.Equal(want, value)
	}
	req.Equal(48, v.Len())
	req.Equal([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45}, v.Bytes())

	// Push another byte in.
	for i := 0; i < 4; i++ {
		v.Push(true)
		v.Push(false)
	}
	req.Equal(56, v.Len())
	req.Equal([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0b01010101}, v.Bytes())
}

func TestPushPopDuality(t *testing.T) {
	req := require.New(t)
	r := rand.New(rand.NewSource(7))

	v := bitvec.FromBytes([]byte{0x5a})
	before := v.Clone()

	pushed := make([]bool, 100)
	for i := range pushed {
		pushed[i] = r.Intn(2) == 1
		v.Push(pushed[i])
		requireCanonical(t, v)
	}
	for i := len(pushed) - 1; i >= 0; i-- {
		value, ok := v.Pop()
		req.True(ok)
		req.Equal(pushed[i], value)
		requireCanonical(t, v)
	}
	req.True(before.Equal(v))
}

func TestClear(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0xe3})
	req.Equal(56, v.Len())
	capacity := v.Capacity()

	v.Clear()
	req.Equal(0, v.Len())
	req.Empty(v.Bytes())
	req.Equal(capacity, v.Capacity())

	v.Push(true)
	req.Equal([]byte{0x01}, v.Bytes())
}

func TestEqual(t *testing.T) {
	req := require.New(t)

	v1 := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	v2 := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	req.True(v1.Equal(v2))

	v2.Push(true)
	req.False(v1.Equal(v2))
	v2.Pop()
	req.True(v1.Equal(v2))

	v2.Set(3, false)
	req.False(v1.Equal(v2))

	// Same bytes, different declared lengths.
	v3 := bitvec.FromElem(9, false)
	v4 := bitvec.FromElem(10, false)
	req.Equal(v3.Bytes(), v4.Bytes())
	req.False(v3.Equal(v4))
}

func TestEqualNil(t *testing.T) {
	req := require.New(t)

	req.True(bitvec.New().Equal(nil))
	req.True(new(bitvec.BitVec).Equal(nil))
	req.False(bitvec.FromElem(1, false).Equal(nil))
}

func TestClone(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	req.True(v.Equal(v.Clone()))

	v.Pop()
	v.Pop()
	c := v.Clone()
	req.True(v.Equal(c))

	c.Set(0, false)
	req.True(v.At(0))
}

func TestCapacityReserve(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	req.Equal(24, v.Len())
	req.GreaterOrEqual(v.Capacity(), v.Len())

	newCapacity := 2 * v.Capacity()
	v.Reserve(newCapacity)
	req.GreaterOrEqual(v.Capacity(), newCapacity)
	req.Equal([]byte{0xef, 0xa5, 0x71}, v.Bytes())
}

func TestTruncateExtend(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	v.Truncate(25)
	req.Equal(24, v.Len())
	req.Equal([]byte{0xef, 0xa5, 0x71}, v.Bytes())

	v.Truncate(12)
	req.Equal(12, v.Len())
	req.Equal([]byte{0xef, 0x05}, v.Bytes())

	v.Extend(bitvec.FromElem(5, true).Values())
	req.Equal(17, v.Len())
	req.Equal([]byte{0xef, 0xf5, 0x01}, v.Bytes())

	v.Append(true, true, true, true, true, true)
	req.Equal(23, v.Len())
	req.Equal([]byte{0xef, 0xf5, 0x7f}, v.Bytes())

	v.Truncate(0)
	req.True(v.IsEmpty())
	req.Empty(v.Bytes())

	req.Panics(func() { v.Truncate(-1) })
}

func TestResize(t *testing.T) {
	req := require.New(t)

	v := bitvec.FromBytes([]byte{0xef, 0xa5, 0x71})
	v.Resize(24, true)
	req.Equal(24, v.Len())
	req.Equal([]byte{0xef, 0xa5, 0x71}, v.Bytes())

	v.Resize(12, true)
	req.Equal(12, v.Len())
	req.Equal([]byte{0xef, 0x05}, v.Bytes())

	v.Resize(17, true)
	req.Equal(17, v.Len())
	req.Equal([]byte{0xef, 0xf5, 0x01}, v.Bytes())

	v.Resize(20, false)
	req.Equal(20, v.Len())
	req.Equal([]byte{0xef, 0xf5, 0x01}, v.Bytes())
}

// TestRandomOperations drives a vector and a []bool model with the same
// random operations and compares them after each step.
func TestRandomOperations(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	v := bitvec.New()
	var model []bool

	for step := 0; step < 5000; step++ {
		switch op := r.Intn(7); op {
		case 0, 1:
			b := r.Intn(2) == 1
			v.Push(b)
			model = append(model, b)
		case 2:
			value, ok := v.Pop()
			require.Equal(t, len(model) > 0, ok)
			if ok {
				require.Equal(t, model[len(model)-1], value)
				model = model[:len(model)-1]
			}
		case 3:
			if len(model) > 0 {
				i := r.Intn(len(model))
				b := r.Intn(2) == 1
				v.Set(i, b)
				model[i] = b
			}
		case 4:
			n := r.Intn(len(model) + 1)
			v.Truncate(n)
			model = model[:n]
		case 5:
			n := r.Intn(len(model) + 20)
			b := r.Intn(2) == 1
			v.Resize(n, b)
			for len(model) < n {
				model = append(model, b)
			}
			model = model[:n]
		case 6:
			v.WithBytesMut(func(b []byte) {
				for i := range b {
					b[i] |= byte(r.Intn(256))
				}
			})
			model = bitvec.FromBytes(v.Bytes()).Bools()[:len(model)]
		}

		require.Equal(t, len(model), v.Len())
		requireCanonical(t, v)
		require.Equal(t, bitvec.FromBools(model).Bytes(), v.Bytes(), "step %d", step)
	}
}
