// Package persistence stores bit vectors on disk.
//
// Each vector is a single file holding an XDR record with a format version,
// the bit length, a SHA-256 checksum of the bytes and the canonical LSB 0
// bytes themselves. Files are replaced atomically.
package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/natefinch/atomic"
	"github.com/nullstyle/go-xdr/xdr3"
	"github.com/spacemeshos/sha256-simd"

	"github.com/spacemeshos/bitvec/bitvec"
)

const formatVersion = 1

// headerSize is the encoded size of the Version and NumBits fields.
const headerSize = 4 + 8

var (
	ErrNotFound           = errors.New("bit vector not found")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrTooLarge           = errors.New("bit vector too large")
)

type record struct {
	Version  uint32
	NumBits  uint64
	Checksum [32]byte
	Bytes    []byte
}

// header is the leading part of a record.
type header struct {
	Version uint32
	NumBits uint64
}

// Encode writes v to w as a checksummed record.
func Encode(w io.Writer, v *bitvec.BitVec) error {
	rec := record{
		Version:  formatVersion,
		NumBits:  uint64(v.Len()),
		Checksum: sha256.Sum256(v.Bytes()),
		Bytes:    v.Bytes(),
	}
	if _, err := xdr.Marshal(w, rec); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}
	return nil
}

// Decode reads a record written by Encode. Vectors longer than maxBits are
// rejected with ErrTooLarge.
func Decode(r io.Reader, maxBits uint64) (*bitvec.BitVec, error) {
	var rec record
	if _, err := xdr.Unmarshal(r, &rec); err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}

	if rec.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}

	if rec.NumBits > maxBits || rec.NumBits > math.MaxInt {
		return nil, fmt.Errorf("%w: %d bits, max %d", ErrTooLarge, rec.NumBits, maxBits)
	}

	if sha256.Sum256(rec.Bytes) != rec.Checksum {
		return nil, ErrChecksumMismatch
	}

	return bitvec.FromParts(int(rec.NumBits), rec.Bytes)
}

// Save atomically writes v to filename.
func Save(filename string, v *bitvec.BitVec) error {
	var w bytes.Buffer
	if err := Encode(&w, v); err != nil {
		return err
	}
	return writeFile(filename, &w)
}

func writeFile(filename string, r io.Reader) error {
	if err := atomic.WriteFile(filename, r); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}
	return nil
}

// Load reads the vector stored in filename.
func Load(filename string, maxBits uint64) (*bitvec.BitVec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read file failure: %w", err)
	}
	return Decode(bytes.NewReader(data), maxBits)
}

// readHeader reads the format version and bit length of a stored vector
// without reading its bytes.
func readHeader(filename string) (*header, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer file.Close()

	var h header
	if _, err := xdr.Unmarshal(io.LimitReader(file, headerSize), &h); err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}
	if h.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return &h, nil
}
