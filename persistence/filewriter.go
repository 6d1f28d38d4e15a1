package persistence

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spacemeshos/bitvec/bitstream"
	"github.com/spacemeshos/bitvec/bitvec"
	"github.com/spacemeshos/bitvec/shared"
)

// FileWriter appends bits to a raw file. The file holds no header: on Close
// the last byte is zero padded, so the file content is the canonical byte
// form of the bits written.
type FileWriter struct {
	file    *os.File
	buf     *bufio.Writer
	bw      *bitstream.BitWriter
	numBits uint64
}

// NewFileWriter opens filename for appending. Appending to a file that
// already has content continues after its last whole byte.
func NewFileWriter(filename string) (*FileWriter, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, shared.OwnerReadWrite)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	buf := bufio.NewWriter(f)
	return &FileWriter{
		file:    f,
		buf:     buf,
		bw:      bitstream.NewWriter(buf),
		numBits: uint64(info.Size()) * 8,
	}, nil
}

func (w *FileWriter) WriteBit(bit bool) error {
	if err := w.bw.WriteBit(bitstream.Bit(bit)); err != nil {
		return err
	}
	w.numBits++
	return nil
}

func (w *FileWriter) Write(v *bitvec.BitVec) error {
	if err := w.bw.Write(v); err != nil {
		return err
	}
	w.numBits += uint64(v.Len())
	return nil
}

// NumBits returns the number of bits in the file, including the ones not
// flushed yet.
func (w *FileWriter) NumBits() uint64 {
	return w.numBits
}

// Flush writes out the buffered whole bytes. Bits of an incomplete byte stay
// pending until Close.
func (w *FileWriter) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush disk writer: %w", err)
	}

	return nil
}

// Close pads and flushes the pending bits, then closes the file. The file
// is closed even if flushing fails; the first error is returned.
func (w *FileWriter) Close() (*os.FileInfo, error) {
	err := w.bw.Flush(bitstream.Zero)
	if err == nil {
		err = w.buf.Flush()
	}

	var info os.FileInfo
	if err == nil {
		info, err = w.file.Stat()
	}

	if closeErr := w.file.Close(); err == nil {
		err = closeErr
	}
	w.file = nil
	w.buf = nil

	if err != nil {
		return nil, err
	}
	return &info, nil
}
