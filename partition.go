package splitter

import (
	"fmt"

	"github.com/beevik/etree"
)

// Isolate separates the generic device from the other devices. Order of the
// remaining devices is preserved. generic is nil when no device has the
// generic id.
func Isolate(devices []*etree.Element) (generic *etree.Element, rest []*etree.Element) {
	rest = make([]*etree.Element, 0, len(devices))
	for _, d := range devices {
		if generic == nil && d.SelectAttrValue(AttrID, "") == GenericID {
			generic = d
			continue
		}
		rest = append(rest, d)
	}
	return generic, rest
}

// SliceSize gives the number of devices assigned to each of the first slices
// when m devices are spread over n slices.
func SliceSize(m, n int) int {
	if m <= 0 || n <= 0 {
		return 0
	}
	return (m + n - 1) / n
}

// Partition splits devices in n contiguous slices of SliceSize devices. Only
// the trailing slices can be shorter or empty.
func Partition(devices []*etree.Element, n int) ([][]*etree.Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: number of files should be at least 1 (got %d)", ErrUsage, n)
	}
	var (
		size   = SliceSize(len(devices), n)
		slices = make([][]*etree.Element, n)
	)
	for k := range slices {
		starts := min(k*size, len(devices))
		ends := min(starts+size, len(devices))
		slices[k] = devices[starts:ends:ends]
	}
	return slices, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
