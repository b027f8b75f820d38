package autoart

import "testing"

func absDiff8(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestLabRoundTrip(t *testing.T) {
	for _, space := range []ColorSpace{OKLab, CIELab} {
		for r := 0; r < 256; r += 51 {
			for g := 0; g < 256; g += 51 {
				for b := 0; b < 256; b += 51 {
					in := RGB{uint8(r), uint8(g), uint8(b)}
					l, a, bb := RGBToLab(space, in)
					out := LabToRGB(space, l, a, bb)
					if absDiff8(in.R, out.R) > 1 || absDiff8(in.G, out.G) > 1 || absDiff8(in.B, out.B) > 1 {
						t.Fatalf("%v: %v round-tripped to %v", space, in, out)
					}
				}
			}
		}
	}
}

func TestLabScale(t *testing.T) {
	for _, space := range []ColorSpace{OKLab, CIELab} {
		lb, _, _ := RGBToLab(space, RGB{0, 0, 0})
		lw, _, _ := RGBToLab(space, RGB{255, 255, 255})
		if lb > 1 {
			t.Errorf("%v: black L = %f, want near 0", space, lb)
		}
		if lw < 99 || lw > 101 {
			t.Errorf("%v: white L = %f, want near 100", space, lw)
		}
	}
}

func TestLabToRGBClampsOutOfGamut(t *testing.T) {
	// L far above the white point clamps to pure white.
	if c := LabToRGB(CIELab, 200, 0, 0); c != (RGB{255, 255, 255}) {
		t.Fatalf("got %v, want white", c)
	}
}

func TestDeltaE76(t *testing.T) {
	if d := deltaE76([]float64{0, 0, 0}, []float64{3, 4, 0}); d != 5 {
		t.Fatalf("deltaE76 = %f, want 5", d)
	}
}
