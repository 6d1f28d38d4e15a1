package bitstream

import (
	"io"

	"github.com/spacemeshos/bitvec/bitvec"
)

// BitWriter writes bits to an io.Writer.
// After a write error the writer must not be used again.
type BitWriter struct {
	stream io.Writer

	// pending holds the bits of the current, incomplete byte.
	pending bitvec.BitVec
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.stream = w
	bw.pending.Reserve(8)
	return bw
}

// Pending returns the number of bits written but not yet sent to the
// underlying stream.
func (bw *BitWriter) Pending() int {
	return bw.pending.Len()
}

// WriteBit writes a single bit to the stream, LSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	bw.pending.Push(bool(bit))
	if bw.pending.Len() == 8 {
		return bw.emit()
	}
	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
// If the byte is to be split due to alignment, the LSB pattern is followed in bit-groups.
func (bw *BitWriter) WriteByte(b byte) error {
	if bw.pending.IsEmpty() {
		_, err := bw.stream.Write([]byte{b})
		return err
	}
	for i := 0; i < 8; i++ {
		if err := bw.WriteBit(b&(1<<i) != 0); err != nil {
			return err
		}
	}
	return nil
}

// Write writes all the bits of v to the stream, regardless of the alignment.
func (bw *BitWriter) Write(v *bitvec.BitVec) error {
	next := 0
	if bw.pending.IsEmpty() {
		// Aligned: the whole bytes of v can go out as-is.
		whole := v.Len() / 8
		if whole > 0 {
			if _, err := bw.stream.Write(v.Bytes()[:whole]); err != nil {
				return err
			}
		}
		next = whole * 8
	}
	for i := next; i < v.Len(); i++ {
		if err := bw.WriteBit(Bit(v.GetUnchecked(i))); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the currently pending byte to the stream by filling it with bit.
func (bw *BitWriter) Flush(bit Bit) error {
	if bw.pending.IsEmpty() {
		return nil
	}
	bw.pending.Resize(8, bool(bit))
	return bw.emit()
}

func (bw *BitWriter) emit() error {
	if _, err := bw.stream.Write(bw.pending.Bytes()); err != nil {
		return err
	}
	bw.pending.Clear()
	return nil
}
