package autoart

import (
	"slices"

	"github.com/muesli/clusters"
	"gonum.org/v1/gonum/stat"
)

// runMedianCut splits the sample population into k bins and returns the
// per-bin mean colors with the per-sample assignment. Each step splits
// the bin with the largest single-dimension variance at its median along
// that dimension. When no bin remains splittable (fewer distinct samples
// than requested) fewer centers are returned.
func runMedianCut(samples []clusters.Coordinates, k int) ([]clusters.Coordinates, []int) {
	all := make([]int, len(samples))
	for i := range all {
		all[i] = i
	}
	bins := [][]int{all}
	scratch := make([]float64, len(samples))

	for len(bins) < k {
		bestBin, bestDim := -1, 0
		bestVar := 0.0
		for bi, bin := range bins {
			if len(bin) < 2 {
				continue
			}
			for dim := 0; dim < 3; dim++ {
				vals := scratch[:0]
				for _, si := range bin {
					vals = append(vals, samples[si][dim])
				}
				if v := stat.Variance(vals, nil); v > bestVar {
					bestVar = v
					bestBin, bestDim = bi, dim
				}
			}
		}
		if bestBin < 0 {
			break
		}
		bin := bins[bestBin]
		slices.SortStableFunc(bin, func(p, q int) int {
			if samples[p][bestDim] < samples[q][bestDim] {
				return -1
			}
			if samples[p][bestDim] > samples[q][bestDim] {
				return 1
			}
			return p - q
		})
		mid := len(bin) / 2
		bins[bestBin] = bin[:mid]
		bins = append(bins, bin[mid:])
	}

	centers := make([]clusters.Coordinates, len(bins))
	assign := make([]int, len(samples))
	for bi, bin := range bins {
		mean := clusters.Coordinates{0, 0, 0}
		for _, si := range bin {
			for dim := 0; dim < 3; dim++ {
				mean[dim] += samples[si][dim]
			}
			assign[si] = bi
		}
		for dim := 0; dim < 3; dim++ {
			mean[dim] /= float64(len(bin))
		}
		centers[bi] = mean
	}
	return centers, assign
}
