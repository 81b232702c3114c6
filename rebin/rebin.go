// Package rebin provides channel grouping strategies for energy rebinning.
//
// A Method partitions a channel index range into contiguous [start, end)
// groups; the record layer merges each group into a single channel. Methods
// are pure functions of the channel count, so the same Method can be applied
// to source and background spectra and yield matching channel sets.
package rebin

import (
	"fmt"

	"github.com/spexlab/spex/errs"
)

// Method partitions n channels into ascending, non-overlapping
// [start, end) groups. Channels not covered by any group are dropped by
// the caller.
type Method func(n int) ([][2]int, error)

// ByFactor merges every factor consecutive channels into one. A trailing
// remainder of fewer than factor channels is dropped.
func ByFactor(factor int) Method {
	return func(n int) ([][2]int, error) {
		if factor < 1 {
			return nil, fmt.Errorf("%w: %d", errs.ErrInvalidRebinFactor, factor)
		}

		groups := make([][2]int, 0, n/factor)
		for start := 0; start+factor <= n; start += factor {
			groups = append(groups, [2]int{start, start + factor})
		}
		if len(groups) == 0 {
			return nil, errs.ErrEmptySelection
		}

		return groups, nil
	}
}

// ByEdges merges channels at the given ascending group boundaries: edges
// [a, b, c] produce groups [a, b) and [b, c).
func ByEdges(edges []int) Method {
	return func(n int) ([][2]int, error) {
		if len(edges) < 2 {
			return nil, errs.ErrEmptySelection
		}

		groups := make([][2]int, 0, len(edges)-1)
		for i := 1; i < len(edges); i++ {
			start, end := edges[i-1], edges[i]
			if start < 0 || end > n || start >= end {
				return nil, fmt.Errorf("%w: edge pair (%d, %d)", errs.ErrInvalidValue, start, end)
			}
			groups = append(groups, [2]int{start, end})
		}

		return groups, nil
	}
}
