package bitvec

import "iter"

// Iter is a forward-only cursor over the bits of a BitVec.
//
// Every operation is O(1): the remaining count is exact and skipping ahead
// does not visit the intermediate bits.
type Iter struct {
	vec   *BitVec
	index int
}

// Iter returns a cursor over the bits of v, starting at the first bit.
// The cursor reads v directly; v must not be shortened while the cursor is
// in use.
func (v *BitVec) Iter() *Iter {
	return &Iter{vec: v}
}

// IntoIter moves the bits of v into a cursor that owns them and leaves v
// empty.
func (v *BitVec) IntoIter() *Iter {
	owned := &BitVec{nbits: v.nbits, vec: v.vec}
	v.nbits, v.vec = 0, nil
	return &Iter{vec: owned}
}

// Len returns the exact number of bits left ahead of the cursor.
func (it *Iter) Len() int {
	return max(it.vec.nbits-it.index, 0)
}

// SizeHint returns the lower and upper bounds of the remaining bits, which
// are both exact.
func (it *Iter) SizeHint() (lower, upper int) {
	n := it.Len()
	return n, n
}

// Count returns the number of remaining bits and exhausts the cursor.
func (it *Iter) Count() int {
	n := it.Len()
	it.index = it.vec.nbits
	return n
}

// Last returns the last bit of the vector if any bits remain ahead of the
// cursor, and exhausts the cursor.
func (it *Iter) Last() (value bool, ok bool) {
	n := it.vec.nbits
	if it.index >= n {
		return false, false
	}
	it.index = n
	return it.vec.GetUnchecked(n - 1), true
}

// Nth skips n bits and returns the bit after them. Once the end is
// reached the cursor stays there and ok is false. A negative n skips nothing.
func (it *Iter) Nth(n int) (value bool, ok bool) {
	if n >= it.Len() {
		it.index = it.vec.nbits
	} else if n > 0 {
		it.index += n
	}
	return it.Next()
}

// Next returns the bit under the cursor and advances it.
func (it *Iter) Next() (value bool, ok bool) {
	if it.index >= it.vec.nbits {
		return false, false
	}
	value = it.vec.GetUnchecked(it.index)
	it.index++
	return value, true
}

// Clone returns an independent cursor at the same position over the same
// vector.
func (it *Iter) Clone() *Iter {
	return &Iter{vec: it.vec, index: it.index}
}

// Seq returns the remaining bits as a sequence. Ranging over it advances
// the cursor.
func (it *Iter) Seq() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for {
			b, ok := it.Next()
			if !ok || !yield(b) {
				return
			}
		}
	}
}

// All returns a sequence of (index, bit) pairs, from the lowest index.
func (v *BitVec) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := 0; i < v.nbits; i++ {
			if !yield(i, v.GetUnchecked(i)) {
				return
			}
		}
	}
}

// Values returns a sequence of the bits of v, from the lowest index.
func (v *BitVec) Values() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < v.nbits; i++ {
			if !yield(v.GetUnchecked(i)) {
				return
			}
		}
	}
}

// Bools returns the bits of v as a slice of booleans.
func (v *BitVec) Bools() []bool {
	bools := make([]bool, 0, v.nbits)
	for b := range v.Values() {
		bools = append(bools, b)
	}
	return bools
}
