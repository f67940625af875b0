// Package stats implements the representative statistical builtins of
// §4.5.1: RANK, LARGE/SMALL, MEDIAN, STDEV/VAR, MODE, PERCENTILE/QUARTILE,
// MAXIFS/MINIFS, and the regression/covariance family.
package stats

import "sort"

// sortedCopy returns a sorted ascending copy of nums, the shared helper that
// LARGE/SMALL, MEDIAN and PERCENTILE/QUARTILE use rather than re-deriving the
// sort in each function (see SPEC_FULL.md "Supplemented features"). RANK
// does not use it.
func sortedCopy(nums []float64) []float64 {
	out := make([]float64, len(nums))
	copy(out, nums)
	sort.Float64s(out)
	return out
}
