package autoart

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SimplifyOptions configures the post-quantization palette merge.
type SimplifyOptions struct {
	// MergeThreshold is the maximum complete-linkage CIE76 distance
	// allowed between two groups for them to merge.
	MergeThreshold float64
	// MinPreservationRatio bounds the merge: at least
	// ceil(paletteSize*ratio) groups survive.
	MinPreservationRatio float64
}

func DefaultSimplifyOptions() SimplifyOptions {
	return SimplifyOptions{MergeThreshold: 2.5, MinPreservationRatio: 0.5}
}

// SimplifyPalette merges perceptually near-duplicate palette colors and
// returns the mapping from every original color to its representative.
// Linkage is complete: two groups fuse only while their farthest-apart
// member pair stays within the threshold, which prevents chained
// over-merging. Distances are CIE76 in CIELab space regardless of the
// space used for clustering. Colors that end up alone map to themselves
// exactly, so an all-distinct palette is a no-op.
func SimplifyPalette(palette []PaletteEntry, opts SimplifyOptions) map[RGB]RGB {
	n := len(palette)
	out := make(map[RGB]RGB, n)
	if n == 0 {
		return out
	}
	floor := int(math.Ceil(float64(n) * opts.MinPreservationRatio))
	if floor < 1 {
		floor = 1
	}

	labs := make([][]float64, n)
	for i, e := range palette {
		l, a, b := RGBToLab(CIELab, e.Color)
		labs[i] = []float64{l, a, b}
	}

	// Complete-linkage distance matrix; merges update it with the
	// classic max rule.
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, deltaE76(labs[i], labs[j]))
		}
	}

	groups := make([][]int, n)
	alive := make([]bool, n)
	for i := range groups {
		groups[i] = []int{i}
		alive[i] = true
	}

	count := n
	for count > floor {
		bi, bj := -1, -1
		best := math.MaxFloat64
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !alive[j] {
					continue
				}
				if v := d.At(i, j); v < best {
					best = v
					bi, bj = i, j
				}
			}
		}
		if bi < 0 || best > opts.MergeThreshold {
			break
		}
		for k := 0; k < n; k++ {
			if k == bi || k == bj || !alive[k] {
				continue
			}
			d.SetSym(bi, k, math.Max(d.At(bi, k), d.At(bj, k)))
		}
		groups[bi] = append(groups[bi], groups[bj]...)
		alive[bj] = false
		count--
	}

	for i, members := range groups {
		if !alive[i] {
			continue
		}
		if len(members) == 1 {
			c := palette[members[0]].Color
			out[c] = c
			continue
		}
		var l, a, b float64
		for _, m := range members {
			l += labs[m][0]
			a += labs[m][1]
			b += labs[m][2]
		}
		size := float64(len(members))
		rep := LabToRGB(CIELab, l/size, a/size, b/size)
		for _, m := range members {
			out[palette[m].Color] = rep
		}
	}
	return out
}
