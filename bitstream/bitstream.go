// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the LSB pattern, where
// least-significant bits are written/read first.
//
// The bit order matches bitvec.BitVec, so a vector written with a BitWriter
// and flushed with Zero produces exactly the vector's canonical bytes.
package bitstream

import "io"

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// unexpectedEOF turns io.EOF into io.ErrUnexpectedEOF once part of a value
// was already consumed.
func unexpectedEOF(err error, partial bool) error {
	if err == io.EOF && partial {
		return io.ErrUnexpectedEOF
	}
	return err
}
