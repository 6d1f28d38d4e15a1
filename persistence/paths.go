package persistence

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FileExt is the file name extension of stored bit vectors.
const FileExt = ".bitvec"

const maxNameLength = 128

var ErrInvalidName = errors.New("invalid name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func validateName(name string) error {
	if len(name) > maxNameLength || !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Filename returns the path of the file holding the vector name in datadir.
func Filename(datadir, name string) string {
	return filepath.Join(datadir, name+FileExt)
}

// nameOf returns the vector name of a file in a store directory, or false if
// the file doesn't hold a vector.
func nameOf(filename string) (string, bool) {
	name, ok := strings.CutSuffix(filename, FileExt)
	if !ok || validateName(name) != nil {
		return "", false
	}
	return name, true
}
