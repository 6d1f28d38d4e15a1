package persistence

import (
	"sort"
	"strconv"
	"strings"
)

// numericalSorter orders names by the number after their last '-', so that
// "mask-2" sorts before "mask-10". Names are grouped by prefix, and within a
// prefix numbered names come before unnumbered ones.
type numericalSorter []string

// A compile time check to ensure that numericalSorter fully implements sort.Interface.
var _ sort.Interface = (*numericalSorter)(nil)

func (s numericalSorter) Len() int      { return len(s) }
func (s numericalSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s numericalSorter) Less(i, j int) bool {
	prefixA, a, okA := splitIndex(s[i])
	prefixB, b, okB := splitIndex(s[j])

	if prefixA != prefixB {
		return prefixA < prefixB
	}
	if okA != okB {
		return okA
	}
	if a != b {
		return a < b
	}
	// Same number, e.g. "mask-2" and "mask-02".
	return s[i] < s[j]
}

func splitIndex(name string) (prefix string, index uint64, ok bool) {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return name, 0, false
	}
	index, err := strconv.ParseUint(name[i+1:], 10, 64)
	if err != nil {
		return name, 0, false
	}
	return name[:i], index, true
}
