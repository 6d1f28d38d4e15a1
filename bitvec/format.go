package bitvec

import (
	"fmt"
	"strings"
	"unicode"
)

// String renders the bits from the lowest index, '1' for set and '.' for
// clear, with a space after every 8 bits. Only Len() bits are rendered.
func (v *BitVec) String() string {
	var sb strings.Builder
	sb.Grow(v.nbits + v.nbits/8)
	for i, bit := range v.All() {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// GoString renders the vector with its length, e.g. "BitVec{3: 1.1}".
// It is used by the %#v verb.
func (v *BitVec) GoString() string {
	return fmt.Sprintf("BitVec{%d: %s}", v.nbits, v.String())
}

// Parse reads a bit pattern in the form produced by String. '1' is a set bit,
// '.' or '0' a clear one, and white space is ignored.
func Parse(s string) (*BitVec, error) {
	v := WithCapacity(len(s))
	for i, r := range s {
		switch {
		case r == '1':
			v.Push(true)
		case r == '.' || r == '0':
			v.Push(false)
		case unicode.IsSpace(r):
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidFormat, r, i)
		}
	}
	return v, nil
}
