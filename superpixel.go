package autoart

import "math"

const (
	superpixelPasses     = 10
	superpixelEdgeWeight = 10.0
)

// region accumulates running sums over its member pixels so that mean
// queries stay O(1). Color sums only cover opaque members.
type region struct {
	sumL, sumA, sumB float64
	sumX, sumY       float64
	opaque           int
	pixels           int
}

func (r *region) meanLab() (l, a, b float64) {
	n := float64(r.opaque)
	return r.sumL / n, r.sumA / n, r.sumB / n
}

// Segmentation partitions an image into superpixel regions: one label
// per pixel, labels compacted to 0..Count-1.
type Segmentation struct {
	W, H   int
	Count  int
	Labels []int
	means  [][3]float64
	opaque []int
}

// MeanLab returns the mean perceptual color of a region, computed over
// its opaque pixels only. The second result is false for regions with no
// opaque member.
func (s *Segmentation) MeanLab(label int) ([3]float64, bool) {
	if s.opaque[label] == 0 {
		return [3]float64{}, false
	}
	return s.means[label], true
}

// Presegment groups pixels into roughly square regions and relaxes their
// boundaries for a fixed number of passes. Pixels resist moving across
// strong luminance edges through the penalty 1 + edgeWeight*gradient.
// The returned region count may differ from the request.
func Presegment(b *Bitmap, space ColorSpace, count int) *Segmentation {
	w, h := b.W, b.H
	total := w * h
	if count < 1 {
		count = 1
	}

	// Per-pixel Lab plane; transparent pixels carry no color.
	lab := make([]float64, total*3)
	opaque := make([]bool, total)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !b.Opaque(x, y) {
				continue
			}
			c, _ := b.At(x, y)
			l, a, bb := RGBToLab(space, c)
			idx := (y*w + x) * 3
			lab[idx], lab[idx+1], lab[idx+2] = l, a, bb
			opaque[y*w+x] = true
		}
	}

	// Initial square grid.
	block := int(math.Round(math.Sqrt(float64(total) / float64(count))))
	if block < 1 {
		block = 1
	}
	cols := (w + block - 1) / block
	labels := make([]int, total)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			labels[y*w+x] = (y/block)*cols + x/block
		}
	}
	rows := (h + block - 1) / block
	regionCount := cols * rows

	// Normalized luminance gradient, used as the edge penalty term.
	grad := make([]float64, total)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			gx := math.Abs(lab[(idx+1)*3] - lab[(idx-1)*3])
			gy := math.Abs(lab[(idx+w)*3] - lab[(idx-w)*3])
			grad[idx] = (gx + gy) / 200
		}
	}

	regions := make([]region, regionCount)
	recompute := func() {
		for i := range regions {
			regions[i] = region{}
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := y*w + x
				r := &regions[labels[idx]]
				r.pixels++
				r.sumX += float64(x)
				r.sumY += float64(y)
				if !opaque[idx] {
					continue
				}
				r.sumL += lab[idx*3]
				r.sumA += lab[idx*3+1]
				r.sumB += lab[idx*3+2]
				r.opaque++
			}
		}
	}

	dist2 := func(idx, label int) float64 {
		ml, ma, mb := regions[label].meanLab()
		dl := lab[idx*3] - ml
		da := lab[idx*3+1] - ma
		db := lab[idx*3+2] - mb
		return dl*dl + da*da + db*db
	}

	for pass := 0; pass < superpixelPasses; pass++ {
		recompute()
		moved := 0
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				idx := y*w + x
				if !opaque[idx] {
					continue
				}
				own := labels[idx]
				if regions[own].opaque == 0 {
					continue
				}
				dOwn := dist2(idx, own)
				penalty := 1 + superpixelEdgeWeight*grad[idx]
				best := own
				bestD := dOwn
				for _, n := range [4]int{idx - w, idx + 1, idx + w, idx - 1} {
					nl := labels[n]
					if nl == own || regions[nl].opaque == 0 {
						continue
					}
					if d := dist2(idx, nl) * penalty; d < bestD {
						bestD = d
						best = nl
					}
				}
				if best != own {
					labels[idx] = best
					moved++
				}
			}
		}
		if moved == 0 {
			break
		}
	}

	// Compact labels to a dense 0..N-1 range.
	recompute()
	dense := make([]int, regionCount)
	n := 0
	for i := range regions {
		if regions[i].pixels == 0 {
			dense[i] = -1
			continue
		}
		dense[i] = n
		n++
	}
	seg := &Segmentation{
		W:      w,
		H:      h,
		Count:  n,
		Labels: labels,
		means:  make([][3]float64, n),
		opaque: make([]int, n),
	}
	for idx := range labels {
		labels[idx] = dense[labels[idx]]
	}
	for i := range regions {
		d := dense[i]
		if d < 0 {
			continue
		}
		seg.opaque[d] = regions[i].opaque
		if regions[i].opaque > 0 {
			l, a, bb := regions[i].meanLab()
			seg.means[d] = [3]float64{l, a, bb}
		}
	}
	return seg
}
