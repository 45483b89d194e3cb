package packing

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// ScanProgress maps a product id to the number of units scanned into the box.
type ScanProgress map[string]int

// Clone returns an independent copy. A nil progress clones to an empty map.
func (p ScanProgress) Clone() ScanProgress {
	out := make(ScanProgress, len(p))
	maps.Copy(out, p)
	return out
}

// Total is the number of units scanned across all products.
func (p ScanProgress) Total() int {
	total := 0
	for _, count := range p {
		total += count
	}
	return total
}

// IsComplete reports whether every ordered unit has been scanned.
func (p ScanProgress) IsComplete(ordered map[string]int) bool {
	for productID, quantity := range ordered {
		if p[productID] < quantity {
			return false
		}
	}
	return true
}

// Merge returns a copy of p where each entry of update replaces the count of its
// product. Products that update does not mention keep their counts.
//
// Every entry is checked against the ordered quantities: the product must be
// part of the order and the count must lie in [0, ordered]. All offending
// entries are reported together and p is never modified.
func (p ScanProgress) Merge(update ScanProgress, ordered map[string]int) (ScanProgress, error) {
	var err error
	for _, productID := range slices.Sorted(maps.Keys(update)) {
		count := update[productID]
		quantity, ok := ordered[productID]
		if !ok {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"scan progress is invalid",
				fmt.Errorf("product %s is not part of the order", productID),
			))
			continue
		}
		if count < 0 || count > quantity {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("scanned count of "+productID, count, 0, quantity))
		}
	}
	if err != nil {
		return nil, err
	}

	merged := p.Clone()
	maps.Copy(merged, update)
	return merged, nil
}
