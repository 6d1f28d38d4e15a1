package bitvec

import (
	"bytes"
	"encoding"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/nullstyle/go-xdr/xdr3"
)

var (
	_ encoding.BinaryMarshaler   = (*BitVec)(nil)
	_ encoding.BinaryUnmarshaler = (*BitVec)(nil)
	_ json.Marshaler             = (*BitVec)(nil)
	_ json.Unmarshaler           = (*BitVec)(nil)
)

// xdrBitVec is the wire form of a BitVec: the bit length followed by the
// canonical bytes.
type xdrBitVec struct {
	NumBits uint64
	Bytes   []byte
}

// EncodeXDR writes v to w in XDR form and returns the number of bytes
// written.
func (v *BitVec) EncodeXDR(w io.Writer) (int, error) {
	return xdr.Marshal(w, xdrBitVec{NumBits: uint64(v.nbits), Bytes: v.vec})
}

// DecodeXDR reads an XDR encoded vector from r into v. Input that violates
// the padding or length rules is rejected and v is left unchanged.
func (v *BitVec) DecodeXDR(r io.Reader) (int, error) {
	var raw xdrBitVec
	n, err := xdr.Unmarshal(r, &raw)
	if err != nil {
		return n, fmt.Errorf("xdr decoding failure: %w", err)
	}
	if err := v.setParts(raw.NumBits, raw.Bytes); err != nil {
		return n, err
	}
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the XDR form.
func (v *BitVec) MarshalBinary() ([]byte, error) {
	var w bytes.Buffer
	if _, err := v.EncodeXDR(&w); err != nil {
		return nil, fmt.Errorf("serialization failure: %w", err)
	}
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *BitVec) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	if _, err := v.DecodeXDR(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%d trailing bytes after encoded bit vector", r.Len())
	}
	return nil
}

type jsonBitVec struct {
	Len   int    `json:"len"`
	Bytes string `json:"bytes"`
}

func (v *BitVec) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBitVec{Len: v.nbits, Bytes: hex.EncodeToString(v.vec)})
}

func (v *BitVec) UnmarshalJSON(data []byte) error {
	var raw jsonBitVec
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Len < 0 {
		return fmt.Errorf("%w: negative length %d", ErrLengthMismatch, raw.Len)
	}
	b, err := hex.DecodeString(raw.Bytes)
	if err != nil {
		return fmt.Errorf("invalid bytes: %w", err)
	}
	return v.setParts(uint64(raw.Len), b)
}

// setParts replaces the content of v with the canonical pair (nbits, b),
// taking ownership of b.
func (v *BitVec) setParts(nbits uint64, b []byte) error {
	if nbits > math.MaxInt {
		return fmt.Errorf("%w: length %d overflows int", ErrLengthMismatch, nbits)
	}
	if err := checkCanonical(nbits, b); err != nil {
		return err
	}
	v.nbits, v.vec = int(nbits), b
	return nil
}
