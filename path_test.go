package autoart

import (
	"image"
	"testing"
)

func coveredExactly(t *testing.T, m *Mask, sets []ActionSet) {
	t.Helper()
	seen := NewMask(m.W, m.H)
	for _, set := range sets {
		for _, p := range set {
			if !m.At(p.X, p.Y) {
				t.Fatalf("point %v is not ink", p)
			}
			seen.Set(p.X, p.Y, true)
		}
	}
	if seen.Count() != m.Count() {
		t.Fatalf("covered %d of %d ink pixels", seen.Count(), m.Count())
	}
}

func consecutiveAdjacent(t *testing.T, sets []ActionSet) {
	t.Helper()
	for _, set := range sets {
		for i := 1; i < len(set); i++ {
			if !adjacent8(set[i-1], set[i]) {
				t.Fatalf("points %v and %v are not 8-adjacent", set[i-1], set[i])
			}
		}
	}
}

func noMergeOpts(algo PathAlgorithm) PathOptions {
	o := DefaultPathOptions()
	o.Algorithm = algo
	o.SmallSetThreshold = 0
	o.SpatialOrdering = false
	return o
}

func TestTraceLayerDFSRing(t *testing.T) {
	m := NewMask(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 0 || x == 4 || y == 0 || y == 4 {
				m.Set(x, y, true)
			}
		}
	}
	sets := TraceLayer(Layer{Color: RGB{}, Mask: m}, noMergeOpts(PathDFS))
	coveredExactly(t, m, sets)
	consecutiveAdjacent(t, sets)
}

func TestTraceLayerDFSBridgesBacktrack(t *testing.T) {
	// A T shape forces the walk back to the junction after finishing one
	// arm; the jump must be filled in with intermediate ink points.
	m := NewMask(7, 4)
	for x := 0; x < 7; x++ {
		m.Set(x, 0, true)
	}
	for y := 1; y < 4; y++ {
		m.Set(3, y, true)
	}
	sets := TraceLayer(Layer{Color: RGB{}, Mask: m}, noMergeOpts(PathDFS))
	coveredExactly(t, m, sets)
	consecutiveAdjacent(t, sets)
}

func TestTraceLayerEdgeFollowBlock(t *testing.T) {
	m := NewMask(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.Set(x, y, true)
		}
	}
	sets := TraceLayer(Layer{Color: RGB{}, Mask: m}, noMergeOpts(PathEdgeFollow))
	want := []ActionSet{{
		{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {1, 1},
	}}
	diff(t, want, sets)
}

func TestTraceLayerEdgeFollowCoverage(t *testing.T) {
	m := NewMask(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%7 != 3 {
				m.Set(x, y, true)
			}
		}
	}
	sets := TraceLayer(Layer{Color: RGB{}, Mask: m}, noMergeOpts(PathEdgeFollow))
	coveredExactly(t, m, sets)
	consecutiveAdjacent(t, sets)
}

func TestTraceLayerEmptyMask(t *testing.T) {
	sets := TraceLayer(Layer{Color: RGB{}, Mask: NewMask(4, 4)}, DefaultPathOptions())
	if len(sets) != 0 {
		t.Fatalf("got %d sets for an empty mask", len(sets))
	}
}

func TestBridgePathStraightLine(t *testing.T) {
	m := NewMask(6, 1)
	for x := 0; x < 5; x++ {
		m.Set(x, 0, true)
	}
	got := bridgePath(m, image.Point{0, 0}, image.Point{4, 0})
	want := []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}
	diff(t, want, got)
}

func TestBridgePathPrefersDiagonals(t *testing.T) {
	m := NewMask(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			m.Set(x, y, true)
		}
	}
	got := bridgePath(m, image.Point{0, 0}, image.Point{3, 3})
	if len(got) != 4 {
		t.Fatalf("path length = %d, want 4", len(got))
	}
	if got[0] != (image.Point{0, 0}) || got[3] != (image.Point{3, 3}) {
		t.Fatalf("endpoints = %v, %v", got[0], got[3])
	}
	consecutiveAdjacent(t, []ActionSet{got})
}

func TestBridgePathUnreachable(t *testing.T) {
	m := maskFrom(5, 1, image.Point{0, 0}, image.Point{4, 0})
	if got := bridgePath(m, image.Point{0, 0}, image.Point{4, 0}); got != nil {
		t.Fatalf("got %v across a gap, want nil", got)
	}
}
