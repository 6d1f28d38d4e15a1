package persistence

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spacemeshos/bitvec/bitstream"
	"github.com/spacemeshos/bitvec/bitvec"
	"github.com/spacemeshos/bitvec/shared"
)

// FileReader reads bits from a raw file written by FileWriter.
type FileReader struct {
	file *os.File
	br   *bitstream.BitReader
}

func NewFileReader(name string) (*FileReader, error) {
	file, err := os.OpenFile(name, os.O_RDONLY, shared.OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for bits reader: %w", err)
	}

	return &FileReader{
		file: file,
		br:   bitstream.NewReader(bufio.NewReader(file)),
	}, nil
}

// Read reads the next numBits of the file.
func (r *FileReader) Read(numBits int) (*bitvec.BitVec, error) {
	return r.br.Read(numBits)
}

func (r *FileReader) ReadBit() (bool, error) {
	bit, err := r.br.ReadBit()
	return bool(bit), err
}

// Width returns the number of bits in the file, padding included.
func (r *FileReader) Width() (uint64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()) * 8, nil
}

func (r *FileReader) Close() error {
	r.br = nil
	return r.file.Close()
}
