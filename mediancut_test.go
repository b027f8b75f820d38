package autoart

import (
	"testing"

	"github.com/muesli/clusters"
)

func TestMedianCutBalancedSplit(t *testing.T) {
	samples := make([]clusters.Coordinates, 0, 8)
	for i := 0; i < 4; i++ {
		samples = append(samples, clusters.Coordinates{10, 0, 0})
	}
	for i := 0; i < 4; i++ {
		samples = append(samples, clusters.Coordinates{90, 0, 0})
	}
	centers, assign := runMedianCut(samples, 2)
	if len(centers) != 2 {
		t.Fatalf("got %d centers, want 2", len(centers))
	}
	for i, a := range assign {
		want := centers[a][0]
		if samples[i][0] != want {
			t.Fatalf("sample %d (L=%v) assigned to center L=%v", i, samples[i][0], want)
		}
	}
}

func TestMedianCutZeroVarianceStops(t *testing.T) {
	samples := make([]clusters.Coordinates, 6)
	for i := range samples {
		samples[i] = clusters.Coordinates{42, 7, 7}
	}
	centers, assign := runMedianCut(samples, 4)
	if len(centers) != 1 {
		t.Fatalf("got %d centers from identical samples, want 1", len(centers))
	}
	for i, a := range assign {
		if a != 0 {
			t.Fatalf("sample %d assigned to %d", i, a)
		}
	}
}

func TestMedianCutSplitsHighestVarianceDim(t *testing.T) {
	// Variance along the third dimension dominates, so the first split
	// must separate the two b-value groups even though dimension one
	// also varies.
	samples := []clusters.Coordinates{
		{10, 0, -80}, {12, 0, -80}, {14, 0, -80},
		{10, 0, 80}, {12, 0, 80}, {14, 0, 80},
	}
	centers, assign := runMedianCut(samples, 2)
	if len(centers) != 2 {
		t.Fatalf("got %d centers, want 2", len(centers))
	}
	if assign[0] != assign[1] || assign[1] != assign[2] {
		t.Fatalf("low-b group split apart: %v", assign[:3])
	}
	if assign[3] != assign[4] || assign[4] != assign[5] {
		t.Fatalf("high-b group split apart: %v", assign[3:])
	}
	if assign[0] == assign[3] {
		t.Fatal("groups not separated")
	}
}
