package autoart

import "testing"

func fillRect(b *Bitmap, x0, y0, x1, y1 int, c RGB) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.Set(x, y, c, 255)
		}
	}
}

func TestPresegmentPartition(t *testing.T) {
	b := NewBitmap(20, 20)
	fillRect(b, 0, 0, 10, 20, RGB{200, 30, 30})
	fillRect(b, 10, 0, 20, 20, RGB{30, 30, 200})

	seg := Presegment(b, OKLab, 16)
	if seg.Count < 1 {
		t.Fatalf("Count = %d", seg.Count)
	}
	used := make([]bool, seg.Count)
	for idx, label := range seg.Labels {
		if label < 0 || label >= seg.Count {
			t.Fatalf("pixel %d has label %d outside [0,%d)", idx, label, seg.Count)
		}
		used[label] = true
	}
	for label, u := range used {
		if !u {
			t.Errorf("label %d is dense but unused", label)
		}
		if _, ok := seg.MeanLab(label); !ok {
			t.Errorf("label %d has no mean on a fully opaque image", label)
		}
	}
}

func TestPresegmentUniformRegionsKeepColor(t *testing.T) {
	// Quadrants align with the initial 4x4 grid blocks, so boundary
	// relaxation has nothing to move and every region stays pure.
	b := NewBitmap(8, 8)
	fillRect(b, 0, 0, 4, 4, RGB{255, 0, 0})
	fillRect(b, 4, 0, 8, 4, RGB{0, 255, 0})
	fillRect(b, 0, 4, 4, 8, RGB{0, 0, 255})
	fillRect(b, 4, 4, 8, 8, RGB{255, 255, 255})

	seg := Presegment(b, CIELab, 4)
	if seg.Count != 4 {
		t.Fatalf("Count = %d, want 4", seg.Count)
	}
	for label := 0; label < seg.Count; label++ {
		mean, ok := seg.MeanLab(label)
		if !ok {
			t.Fatalf("label %d has no mean", label)
		}
		// A pure region's mean converts back to its exact member color.
		c := LabToRGB(CIELab, mean[0], mean[1], mean[2])
		var want RGB
		found := false
		for y := 0; y < 8 && !found; y++ {
			for x := 0; x < 8 && !found; x++ {
				if seg.Labels[y*8+x] == label {
					want, _ = b.At(x, y)
					found = true
				}
			}
		}
		if absDiff8(c.R, want.R) > 1 || absDiff8(c.G, want.G) > 1 || absDiff8(c.B, want.B) > 1 {
			t.Errorf("label %d mean %v, member color %v", label, c, want)
		}
	}
}

func TestPresegmentTransparentRegions(t *testing.T) {
	b := NewBitmap(6, 6) // fully transparent
	seg := Presegment(b, OKLab, 4)
	for label := 0; label < seg.Count; label++ {
		if _, ok := seg.MeanLab(label); ok {
			t.Fatalf("label %d reports a mean with no opaque member", label)
		}
	}
}
