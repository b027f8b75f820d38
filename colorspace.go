package autoart

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// ColorSpace selects the perceptual space used for color distances.
type ColorSpace int

const (
	OKLab ColorSpace = iota
	CIELab
)

func (s ColorSpace) String() string {
	switch s {
	case OKLab:
		return "oklab"
	case CIELab:
		return "cielab"
	default:
		return fmt.Sprintf("colorspace(%d)", int(s))
	}
}

// RGBToLab converts an 8-bit RGB triple to three perceptual coordinates
// in the requested space. Coordinates are scaled so that L spans roughly
// [0,100], the classic CIE76 delta-E range, for both spaces.
func RGBToLab(space ColorSpace, c RGB) (l, a, b float64) {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	switch space {
	case CIELab:
		l, a, b = col.Lab()
	default:
		l, a, b = col.OkLab()
	}
	return l * 100, a * 100, b * 100
}

// LabToRGB is the inverse of RGBToLab. Out-of-gamut results from
// round-trip drift are clamped back into [0,255] per channel.
func LabToRGB(space ColorSpace, l, a, b float64) RGB {
	var col colorful.Color
	switch space {
	case CIELab:
		col = colorful.Lab(l/100, a/100, b/100)
	default:
		col = colorful.OkLab(l/100, a/100, b/100)
	}
	col = col.Clamped()
	return RGB{
		R: uint8(math.Round(col.R * 255)),
		G: uint8(math.Round(col.G * 255)),
		B: uint8(math.Round(col.B * 255)),
	}
}

// deltaE76 is the Euclidean distance between two Lab coordinates.
func deltaE76(p, q []float64) float64 {
	return floats.Distance(p, q, 2)
}
