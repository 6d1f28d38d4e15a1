package bitstream

import (
	"io"

	"github.com/spacemeshos/bitvec/bitvec"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream  io.Reader
	pending [1]byte

	// left is the number of unread bits in pending.
	left uint8
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	return &BitReader{stream: r}
}

// Read reads the next numBits from the stream into a new bit vector,
// regardless of the alignment, following the LSB pattern.
// It returns io.EOF only if no bits were read.
func (br *BitReader) Read(numBits int) (*bitvec.BitVec, error) {
	data := make([]byte, numBits/8)
	for i := range data {
		b, err := br.ReadByte()
		if err != nil {
			return nil, unexpectedEOF(err, i > 0)
		}
		data[i] = b
	}

	v := bitvec.FromBytes(data)
	v.Reserve(numBits % 8)
	for v.Len() < numBits {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, unexpectedEOF(err, !v.IsEmpty())
		}
		v.Push(bool(bit))
	}

	return v, nil
}

// ReadByte reads the next single byte from the stream, regardless of the alignment.
// If the byte is split, the LSB pattern is followed in bit-groups.
func (br *BitReader) ReadByte() (byte, error) {
	if br.left == 0 {
		if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
			return 0, err
		}
		return br.pending[0], nil
	}

	// The byte stream is not aligned.
	// Use the current byte LS bits, combined with the next byte LS bits as MS bits.
	current := br.pending[0]
	if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
		return 0, unexpectedEOF(err, true)
	}
	current |= br.pending[0] << br.left

	// Keep the bits of the next byte that weren't used.
	br.pending[0] >>= 8 - br.left

	return current, nil
}

// ReadBit reads the next single bit from the stream, LSB first.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.left == 0 {
		if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
			return Zero, err
		}
		br.left = 8
	}
	br.left--

	lsb := Bit(br.pending[0]&1 == 1)
	br.pending[0] >>= 1

	return lsb, nil
}
