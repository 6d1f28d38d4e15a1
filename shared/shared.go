package shared

import (
	"errors"
	"os"
)

const (
	OwnerReadWrite     = os.FileMode(0o600)
	OwnerReadWriteExec = os.FileMode(0o700)
)

var ErrNotEnoughSpace = errors.New("not enough disk space")
