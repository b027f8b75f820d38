package autoart

// Mask is a boolean opacity grid over an image. Set bits are "ink".
type Mask struct {
	W, H int
	Bits []bool // len = W*H
}

func NewMask(w, h int) *Mask {
	if w < 0 || h < 0 {
		panic("autoart: negative mask size")
	}
	return &Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

func (m *Mask) index(x, y int) int {
	if !m.In(x, y) {
		panic("autoart: mask access out of bounds")
	}
	return y*m.W + x
}

// At reports whether the pixel at (x, y) is ink.
func (m *Mask) At(x, y int) bool {
	return m.Bits[m.index(x, y)]
}

// Set marks or clears the pixel at (x, y).
func (m *Mask) Set(x, y int, ink bool) {
	m.Bits[m.index(x, y)] = ink
}

// Count returns the number of ink pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}
