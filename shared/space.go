package shared

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ricochet2200/go-disk-usage/du"
)

// AvailableSpace returns the number of bytes available to the current user on
// the volume holding path. It returns 0 if the volume can't be queried.
func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}

// CheckSpace returns an error wrapping ErrNotEnoughSpace if fewer than
// required bytes are available at path.
func CheckSpace(path string, required uint64) error {
	available := AvailableSpace(path)
	if required > available {
		return fmt.Errorf("%w. required: %v, available: %v",
			ErrNotEnoughSpace, bytefmt.ByteSize(required), bytefmt.ByteSize(available))
	}
	return nil
}
