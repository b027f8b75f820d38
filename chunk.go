package autoart

import (
	"image"
	"slices"
)

var neighbors8 = [8]image.Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Chunks decomposes a mask into its maximal 8-connected components of
// ink pixels, largest first, so perceptually significant coverage is
// drawn early. Points within a chunk are in flood-fill discovery order.
func Chunks(m *Mask) [][]image.Point {
	seen := make([]bool, len(m.Bits))
	var out [][]image.Point
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if !m.Bits[idx] || seen[idx] {
				continue
			}
			seen[idx] = true
			comp := []image.Point{{X: x, Y: y}}
			for head := 0; head < len(comp); head++ {
				p := comp[head]
				for _, d := range neighbors8 {
					n := p.Add(d)
					if !m.In(n.X, n.Y) {
						continue
					}
					nidx := n.Y*m.W + n.X
					if m.Bits[nidx] && !seen[nidx] {
						seen[nidx] = true
						comp = append(comp, n)
					}
				}
			}
			out = append(out, comp)
		}
	}
	slices.SortStableFunc(out, func(a, b []image.Point) int {
		return len(b) - len(a)
	})
	return out
}
