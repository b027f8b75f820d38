package autoart

import (
	"image"
	"testing"
)

func maskFrom(w, h int, points ...image.Point) *Mask {
	m := NewMask(w, h)
	for _, p := range points {
		m.Set(p.X, p.Y, true)
	}
	return m
}

func TestChunksSingleBlob(t *testing.T) {
	m := NewMask(5, 5)
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			m.Set(x, y, true)
		}
	}
	chunks := Chunks(m)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if len(chunks[0]) != 9 {
		t.Fatalf("chunk size = %d, want 9", len(chunks[0]))
	}
}

func TestChunksDiagonalTouch(t *testing.T) {
	m := maskFrom(4, 4, image.Point{0, 0}, image.Point{1, 1})
	if chunks := Chunks(m); len(chunks) != 1 {
		t.Fatalf("diagonal neighbors split into %d chunks", len(chunks))
	}
}

func TestChunksLargestFirst(t *testing.T) {
	m := maskFrom(8, 3,
		image.Point{0, 0},
		image.Point{5, 0}, image.Point{6, 0}, image.Point{5, 1})
	chunks := Chunks(m)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[0]) != 3 || len(chunks[1]) != 1 {
		t.Fatalf("chunk sizes = %d, %d, want 3, 1", len(chunks[0]), len(chunks[1]))
	}
}

func TestChunksEmptyMask(t *testing.T) {
	if chunks := Chunks(NewMask(4, 4)); len(chunks) != 0 {
		t.Fatalf("got %d chunks, want 0", len(chunks))
	}
}
