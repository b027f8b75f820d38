package autoart

import "slices"

// Layer is one surviving palette color with its opacity mask. Masks of
// the layers cut from one quantized image are pairwise disjoint and
// together cover exactly its opaque pixels.
type Layer struct {
	Color RGB
	Mask  *Mask
}

const strayMinDim = 3

// RemoveStrayPixels recolors isolated pixels in place: a pixel is stray
// when no opaque 4-neighbor shares its exact color, and it takes the
// most frequent color among those neighbors. Frequency ties pick the
// lowest packed RGB value. Decisions read from a snapshot, so the pass
// is order-independent. Images smaller than 3x3 are left untouched.
func RemoveStrayPixels(b *Bitmap) {
	if b.W < strayMinDim || b.H < strayMinDim {
		return
	}
	src := b.Clone()
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if !src.Opaque(x, y) {
				continue
			}
			c, alpha := src.At(x, y)
			counts := make(map[RGB]int, 4)
			stray := true
			for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
				nx, ny := x+d[0], y+d[1]
				if !src.In(nx, ny) || !src.Opaque(nx, ny) {
					continue
				}
				nc, _ := src.At(nx, ny)
				if nc == c {
					stray = false
					break
				}
				counts[nc]++
			}
			if !stray || len(counts) == 0 {
				continue
			}
			var best RGB
			bestN := 0
			for nc, n := range counts {
				if n > bestN || (n == bestN && nc.packed() < best.packed()) {
					best = nc
					bestN = n
				}
			}
			b.Set(x, y, best, alpha)
		}
	}
}

// ExtractLayers cuts one disjoint opacity mask per surviving palette
// color. The optional stray-pixel pass and simplification remap both
// apply before masks are cut; a pixel joins a layer only when its
// (possibly remapped) quantized color matches exactly and its alpha is
// nonzero. Layers with empty masks are dropped; the rest are ordered by
// descending pixel count.
func ExtractLayers(q *QuantizeResult, opts Options) []Layer {
	work := q.Image
	if opts.RemoveStrayPixels {
		work = work.Clone()
		RemoveStrayPixels(work)
	}
	var remap map[RGB]RGB
	if opts.SimplifiedSplit {
		remap = SimplifyPalette(q.Palette, SimplifyOptions{
			MergeThreshold:       opts.MergeThreshold,
			MinPreservationRatio: opts.MinPreservationRatio,
		})
	}

	index := make(map[RGB]int)
	var layers []Layer
	for y := 0; y < work.H; y++ {
		for x := 0; x < work.W; x++ {
			if !work.Opaque(x, y) {
				continue
			}
			c, _ := work.At(x, y)
			if remap != nil {
				if rep, ok := remap[c]; ok {
					c = rep
				}
			}
			li, ok := index[c]
			if !ok {
				li = len(layers)
				index[c] = li
				layers = append(layers, Layer{Color: c, Mask: NewMask(work.W, work.H)})
			}
			layers[li].Mask.Set(x, y, true)
		}
	}

	slices.SortStableFunc(layers, func(a, b Layer) int {
		na, nb := a.Mask.Count(), b.Mask.Count()
		if na != nb {
			return nb - na
		}
		return int(a.Color.packed()) - int(b.Color.packed())
	})
	return layers
}
