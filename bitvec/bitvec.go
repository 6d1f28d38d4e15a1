// Package bitvec implements a growable bit vector with a guaranteed LSB 0
// byte representation.
//
// Bit i of the vector lives in byte i/8, at offset i%8 counted from the
// least-significant bit. The backing slice always holds exactly
// ceil(Len()/8) bytes and the unused high bits of the last byte are always
// zero, so the bytes returned by Bytes can be written to disk or to the wire
// as-is, and byte equality coincides with bit-sequence equality.
//
// The API mirrors the usual growable-slice operations (Push, Pop, Truncate,
// Resize, Reserve) as closely as possible.
package bitvec

import (
	"bytes"
	"fmt"
	"iter"
	"slices"
)

// BitVec is a bit vector backed by a byte slice.
// The zero value is an empty vector ready to use.
//
// A BitVec is not safe for concurrent use. Mutating methods require
// exclusive access for their duration.
type BitVec struct {
	nbits int
	vec   []byte
}

// bytesInBits returns ceil(nbits / 8).
func bytesInBits(nbits int) int {
	return (nbits + 7) / 8
}

func byteFromBool(bit bool) byte {
	if bit {
		return 0xff
	}
	return 0
}

// New returns an empty bit vector.
func New() *BitVec {
	return &BitVec{}
}

// WithCapacity returns an empty bit vector able to hold at least capacity
// bits without reallocating. If capacity is 0, the vector does not allocate.
func WithCapacity(capacity int) *BitVec {
	return &BitVec{vec: make([]byte, 0, bytesInBits(capacity))}
}

// FromBytes returns a bit vector of len(b)*8 bits holding a copy of b.
func FromBytes(b []byte) *BitVec {
	return &BitVec{nbits: len(b) * 8, vec: slices.Clone(b)}
}

// FromBools returns a bit vector holding the given booleans, in order.
func FromBools(bools []bool) *BitVec {
	v := WithCapacity(len(bools))
	for _, b := range bools {
		v.Push(b)
	}
	return v
}

// FromElem returns a bit vector of n bits, all set to value.
func FromElem(n int, value bool) *BitVec {
	v := &BitVec{
		nbits: n,
		vec:   bytes.Repeat([]byte{byteFromBool(value)}, bytesInBits(n)),
	}
	v.setUnusedZero()
	return v
}

// FromSeq collects a sequence of booleans into a new bit vector.
func FromSeq(seq iter.Seq[bool]) *BitVec {
	v := New()
	v.Extend(seq)
	return v
}

// FromParts returns a bit vector of nbits bits backed by a copy of b.
// The pair must already be canonical: len(b) must be ceil(nbits/8) and the
// unused bits of the last byte must be zero.
func FromParts(nbits int, b []byte) (*BitVec, error) {
	if nbits < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrLengthMismatch, nbits)
	}
	if err := checkCanonical(uint64(nbits), b); err != nil {
		return nil, err
	}
	return &BitVec{nbits: nbits, vec: slices.Clone(b)}, nil
}

// Bytes returns the backing bytes of the vector. The slice is only valid
// until the next mutation and must not be modified; use WithBytesMut to
// mutate the bytes in place.
func (v *BitVec) Bytes() []byte {
	return v.vec
}

// WithBytesMut invokes f on a mutable view of the backing bytes. Once f
// returns, or panics, the unused bits of the last byte are set back to zero.
// The view has no spare capacity: appending to it inside f does not affect
// the vector.
func (v *BitVec) WithBytesMut(f func(b []byte)) {
	defer v.setUnusedZero()
	f(v.vec[:len(v.vec):len(v.vec)])
}

// IntoBytes returns the backing bytes, of length ceil(Len()/8), and leaves
// v empty. The bit length is not preserved.
func (v *BitVec) IntoBytes() []byte {
	b := v.vec
	v.nbits, v.vec = 0, nil
	return b
}

// Len returns the number of bits in the vector.
func (v *BitVec) Len() int {
	return v.nbits
}

// IsEmpty reports whether the vector holds no bits.
func (v *BitVec) IsEmpty() bool {
	return v.nbits == 0
}

// validateIndex panics with an *IndexError if index is out of range.
func (v *BitVec) validateIndex(index int) {
	if uint(index) >= uint(v.nbits) {
		panic(&IndexError{Index: index, Len: v.nbits})
	}
}

// Get returns the bit at index. ok is false if index is out of range.
func (v *BitVec) Get(index int) (value bool, ok bool) {
	if uint(index) < uint(v.nbits) {
		return v.GetUnchecked(index), true
	}
	return false, false
}

// At returns the bit at index. It panics if index is out of range.
func (v *BitVec) At(index int) bool {
	v.validateIndex(index)
	return v.GetUnchecked(index)
}

// Set sets the bit at index to value. It panics if index is out of range.
func (v *BitVec) Set(index int, value bool) {
	v.validateIndex(index)
	v.SetUnchecked(index, value)
}

// Swap exchanges the bits at i and j. It panics if either index is out of
// range.
func (v *BitVec) Swap(i, j int) {
	v.validateIndex(i)
	v.validateIndex(j)
	vi, vj := v.GetUnchecked(i), v.GetUnchecked(j)
	v.SetUnchecked(i, vj)
	v.SetUnchecked(j, vi)
}

// GetUnchecked returns the bit at index without checking it against Len.
// The caller must guarantee 0 <= index < Len().
func (v *BitVec) GetUnchecked(index int) bool {
	return v.vec[index/8]&(1<<(uint(index)%8)) != 0
}

// SetUnchecked sets the bit at index without checking it against Len.
// The caller must guarantee 0 <= index < Len(); setting a bit past Len
// breaks the zero padding of the last byte.
func (v *BitVec) SetUnchecked(index int, value bool) {
	pattern := byte(1) << (uint(index) % 8)
	if value {
		v.vec[index/8] |= pattern
	} else {
		v.vec[index/8] &^= pattern
	}
}

// Push appends a bit to the end of the vector.
func (v *BitVec) Push(value bool) {
	if v.nbits%8 == 0 {
		var b byte
		if value {
			b = 1
		}
		v.vec = append(v.vec, b)
	} else {
		v.SetUnchecked(v.nbits, value)
	}
	v.nbits++
}

// Pop removes the last bit and returns it. ok is false if the vector is
// empty.
func (v *BitVec) Pop() (value bool, ok bool) {
	if v.nbits == 0 {
		return false, false
	}
	v.nbits--
	value = v.GetUnchecked(v.nbits)
	v.SetUnchecked(v.nbits, false)

	// Drop the last byte once it has no bits in use.
	if v.nbits%8 == 0 {
		v.vec = v.vec[:len(v.vec)-1]
	}
	return value, true
}

// Append pushes the given booleans, in order.
func (v *BitVec) Append(bools ...bool) {
	v.Reserve(len(bools))
	for _, b := range bools {
		v.Push(b)
	}
}

// Extend pushes every boolean produced by seq.
func (v *BitVec) Extend(seq iter.Seq[bool]) {
	for b := range seq {
		v.Push(b)
	}
}

// Clear removes all bits. The capacity is retained.
func (v *BitVec) Clear() {
	v.vec = v.vec[:0]
	v.nbits = 0
}

// Capacity returns the number of bits the vector can hold without
// reallocating.
func (v *BitVec) Capacity() int {
	return cap(v.vec) * 8
}

// Reserve grows the capacity, if necessary, so that at least additional more
// bits can be pushed without reallocating.
func (v *BitVec) Reserve(additional int) {
	v.vec = slices.Grow(v.vec, bytesInBits(additional))
}

// Truncate shortens the vector to n bits. It has no effect if n >= Len().
func (v *BitVec) Truncate(n int) {
	if n < 0 {
		panic(fmt.Sprintf("bitvec: negative length %d", n))
	}
	if n < v.nbits {
		v.vec = v.vec[:bytesInBits(n)]
		v.nbits = n
		v.setUnusedZero()
	}
}

// Resize changes the length of the vector to n bits. New bits are set to
// value; when shrinking, value is ignored.
func (v *BitVec) Resize(n int, value bool) {
	if n > v.nbits {
		additional := n - v.nbits
		v.Reserve(additional)
		for range additional {
			v.Push(value)
		}
	} else {
		v.Truncate(n)
	}
}

// Clone returns a deep copy of the vector.
func (v *BitVec) Clone() *BitVec {
	return &BitVec{nbits: v.nbits, vec: slices.Clone(v.vec)}
}

// Equal reports whether v and other hold the same bits. Vectors of different
// lengths are never equal. A nil other is the empty vector.
func (v *BitVec) Equal(other *BitVec) bool {
	if other == nil {
		return v.nbits == 0
	}
	return v.nbits == other.nbits && bytes.Equal(v.vec, other.vec)
}

// setUnusedZero clears the unused bits of the last byte.
func (v *BitVec) setUnusedZero() {
	rem := uint(v.nbits % 8)
	if rem == 0 {
		return
	}
	v.vec[len(v.vec)-1] &= byte(1)<<rem - 1
}
