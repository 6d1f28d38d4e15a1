package bitvec

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat  = errors.New("invalid bit pattern")
	ErrLengthMismatch = errors.New("byte count doesn't match bit length")
	ErrNonZeroPadding = errors.New("unused trailing bits are not zero")
)

// IndexError is the panic value of indexed accessors called with an index
// outside of [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bitvec: index %d out of bounds [0, %d)", e.Index, e.Len)
}

// checkCanonical verifies that b is the canonical storage of nbits bits.
func checkCanonical(nbits uint64, b []byte) error {
	want := nbits / 8
	rem := nbits % 8
	if rem != 0 {
		want++
	}
	if want != uint64(len(b)) {
		return fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrLengthMismatch, nbits, want, len(b))
	}
	if rem != 0 && b[len(b)-1]&^(byte(1)<<rem-1) != 0 {
		return fmt.Errorf("%w: last byte %#02x for %d bits", ErrNonZeroPadding, b[len(b)-1], nbits)
	}
	return nil
}
