package autoart

import (
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"sync"

	"github.com/muesli/clusters"
)

// PaletteEntry pairs one palette color with its pixel population.
type PaletteEntry struct {
	Color RGB
	Count int
}

// QuantizeResult is the immutable output of one quantization request: a
// repainted pixel buffer and its palette ordered by descending
// population (ties broken by packed RGB value).
type QuantizeResult struct {
	Image   *Bitmap
	Palette []PaletteEntry
}

// Quantize reduces the image to Options.ColorCount colors. Zero-alpha
// pixels are excluded from sampling and stay fully transparent in the
// output. When the input holds fewer distinct opaque colors than
// requested, centroids degenerate into duplicates and collapse into a
// single palette entry rather than being hidden.
func Quantize(b *Bitmap, opts Options) (*QuantizeResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	opaqueIdx := make([]int, 0, b.W*b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.Opaque(x, y) {
				opaqueIdx = append(opaqueIdx, y*b.W+x)
			}
		}
	}
	if len(opaqueIdx) == 0 {
		return nil, fmt.Errorf("%w: no opaque pixels", ErrDegenerateInput)
	}
	if opts.ColorCount > len(opaqueIdx) {
		return nil, fmt.Errorf("%w: color count %d exceeds %d opaque pixels",
			ErrInvalidConfiguration, opts.ColorCount, len(opaqueIdx))
	}

	// Sample set: one observation per opaque pixel, or one per
	// superpixel region when presegmentation is enabled.
	var samples []clusters.Coordinates
	sampleOf := make([]int, b.W*b.H)
	if opts.Superpixels > 0 {
		seg := Presegment(b, opts.ColorSpace, opts.Superpixels)
		regionSample := make([]int, seg.Count)
		for label := 0; label < seg.Count; label++ {
			mean, ok := seg.MeanLab(label)
			if !ok {
				regionSample[label] = -1
				continue
			}
			regionSample[label] = len(samples)
			samples = append(samples, clusters.Coordinates{mean[0], mean[1], mean[2]})
		}
		for _, idx := range opaqueIdx {
			sampleOf[idx] = regionSample[seg.Labels[idx]]
		}
	} else {
		samples = labSamples(b, opts.ColorSpace, opaqueIdx)
		for i, idx := range opaqueIdx {
			sampleOf[idx] = i
		}
	}

	var centers []clusters.Coordinates
	var assign []int
	switch opts.Algorithm {
	case MedianCut:
		centers, assign = runMedianCut(samples, opts.ColorCount)
	default:
		rng := rand.New(rand.NewSource(opts.Seed))
		centers, assign = runKMeans(samples, opts, rng)
	}

	paletteRGB := make([]RGB, len(centers))
	for i, c := range centers {
		paletteRGB[i] = LabToRGB(opts.ColorSpace, c[0], c[1], c[2])
	}

	// Paint the assignment back per pixel and tally populations.
	out := NewBitmap(b.W, b.H)
	tally := make(map[RGB]int, len(paletteRGB))
	for _, idx := range opaqueIdx {
		x, y := idx%b.W, idx/b.W
		_, alpha := b.At(x, y)
		c := paletteRGB[assign[sampleOf[idx]]]
		out.Set(x, y, c, alpha)
		tally[c]++
	}

	palette := make([]PaletteEntry, 0, len(tally))
	for c, n := range tally {
		palette = append(palette, PaletteEntry{Color: c, Count: n})
	}
	slices.SortFunc(palette, func(a, b PaletteEntry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return int(a.Color.packed()) - int(b.Color.packed())
	})
	return &QuantizeResult{Image: out, Palette: palette}, nil
}

// labSamples converts the opaque pixels to perceptual coordinates using
// worker shards over disjoint index ranges.
func labSamples(b *Bitmap, space ColorSpace, opaqueIdx []int) []clusters.Coordinates {
	samples := make([]clusters.Coordinates, len(opaqueIdx))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(opaqueIdx) {
		workers = len(opaqueIdx)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := splitRange(len(opaqueIdx), workers, w)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				idx := opaqueIdx[i]
				c, _ := b.At(idx%b.W, idx/b.W)
				l, a, bb := RGBToLab(space, c)
				samples[i] = clusters.Coordinates{l, a, bb}
			}
		}(start, end)
	}
	wg.Wait()
	return samples
}

func splitRange(length, workers, worker int) (int, int) {
	chunk := length / workers
	rem := length % workers
	start := worker*chunk + min(worker, rem)
	end := start + chunk
	if worker < rem {
		end++
	}
	return start, end
}
