// Package autoart converts a raster image into a small palette of
// perceptually distinct colors with one binary mask per color, and turns
// each mask into ordered point paths a pointer-driven actuator can
// traverse. All entry points are pure functions over explicit inputs and
// request-scoped configuration; independent invocations may run
// concurrently.
package autoart

import (
	"image"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color triple with structural equality, safe to use as
// a map key.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color formatted as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// packed orders colors for deterministic tie-breaking.
func (c RGB) packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Bitmap is a bounds-checked pixel buffer holding straight-alpha RGBA
// bytes with a fixed stride of four bytes per pixel.
type Bitmap struct {
	W, H int
	Pix  []uint8 // interleaved RGBA, len = W*H*4
}

func NewBitmap(w, h int) *Bitmap {
	if w < 0 || h < 0 {
		panic("autoart: negative bitmap size")
	}
	return &Bitmap{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// BitmapFromImage flattens any image into a Bitmap, normalizing the
// origin to (0,0) and the alpha to straight (non-premultiplied) form.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	b := NewBitmap(w, h)
	copy(b.Pix, nrgba.Pix)
	return b
}

// In reports whether (x, y) lies inside the buffer.
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

func (b *Bitmap) offset(x, y int) int {
	if !b.In(x, y) {
		panic("autoart: pixel access out of bounds")
	}
	return (y*b.W + x) * 4
}

// At returns the color and alpha of the pixel at (x, y).
func (b *Bitmap) At(x, y int) (RGB, uint8) {
	off := b.offset(x, y)
	return RGB{b.Pix[off], b.Pix[off+1], b.Pix[off+2]}, b.Pix[off+3]
}

// Set stores the color and alpha of the pixel at (x, y).
func (b *Bitmap) Set(x, y int, c RGB, alpha uint8) {
	off := b.offset(x, y)
	b.Pix[off] = c.R
	b.Pix[off+1] = c.G
	b.Pix[off+2] = c.B
	b.Pix[off+3] = alpha
}

// Opaque reports whether the pixel at (x, y) has nonzero alpha.
func (b *Bitmap) Opaque(x, y int) bool {
	return b.Pix[b.offset(x, y)+3] != 0
}

func (b *Bitmap) Clone() *Bitmap {
	out := NewBitmap(b.W, b.H)
	copy(out.Pix, b.Pix)
	return out
}

// Image copies the buffer into a standard NRGBA image.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.Pix)
	return img
}
