package autoart

import (
	"math/rand"
	"runtime"
	"slices"
	"sync"

	"github.com/muesli/clusters"
)

// runKMeans clusters the samples into opts.ColorCount groups and returns
// the final centroids with the per-sample assignment. Assignment uses
// squared Euclidean distance in the active space; any cluster left
// without members after an iteration is reseeded from a uniformly random
// sample so the final palette never carries an empty cluster.
func runKMeans(samples []clusters.Coordinates, opts Options, rng *rand.Rand) ([]clusters.Coordinates, []int) {
	k := opts.ColorCount
	obs := make(clusters.Observations, len(samples))
	for i := range samples {
		obs[i] = samples[i]
	}

	var cc clusters.Clusters
	if opts.Initializer == InitMedianCut {
		centers, _ := runMedianCut(samples, k)
		for _, c := range centers {
			cc = append(cc, clusters.Cluster{Center: slices.Clone(c)})
		}
		// Median cut can come up short on degenerate inputs.
		for len(cc) < k {
			cc = append(cc, clusters.Cluster{Center: slices.Clone(samples[rng.Intn(len(samples))])})
		}
	} else {
		cc = seedPlusPlus(samples, k, rng)
	}

	assign := make([]int, len(samples))
	for i := range assign {
		assign[i] = -1
	}
	for iter := 0; ; iter++ {
		changed := assignPass(cc, obs, assign)
		if changed == 0 || iter+1 >= opts.Iterations {
			break
		}
		cc.Recenter()
		reseedEmpty(cc, samples, rng)
	}
	cc.Recenter()

	// A reseed right before the iteration cap can still leave a cluster
	// without members; settle those with extra assignment passes.
	for attempt := 0; attempt < 4 && reseedEmpty(cc, samples, rng) > 0; attempt++ {
		assignPass(cc, obs, assign)
		cc.Recenter()
	}

	centers := make([]clusters.Coordinates, len(cc))
	for i := range cc {
		centers[i] = cc[i].Center
	}
	return centers, assign
}

// seedPlusPlus picks k initial centroids, each successive one chosen
// with probability proportional to its squared distance from the nearest
// centroid already picked.
func seedPlusPlus(samples []clusters.Coordinates, k int, rng *rand.Rand) clusters.Clusters {
	cc := clusters.Clusters{{Center: slices.Clone(samples[rng.Intn(len(samples))])}}
	d2 := make([]float64, len(samples))
	for i := range d2 {
		d2[i] = samples[i].Distance(cc[0].Center)
	}
	for len(cc) < k {
		total := 0.0
		for _, d := range d2 {
			total += d
		}
		idx := len(samples) - 1
		if total <= 0 {
			idx = rng.Intn(len(samples))
		} else {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range d2 {
				acc += d
				if acc >= target {
					idx = i
					break
				}
			}
		}
		cc = append(cc, clusters.Cluster{Center: slices.Clone(samples[idx])})
		for i := range d2 {
			if d := samples[i].Distance(cc[len(cc)-1].Center); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return cc
}

// assignPass reassigns every sample to its nearest centroid. The nearest
// lookups run across worker shards; membership is then rebuilt in a
// single-threaded reduce so accumulation order stays deterministic.
func assignPass(cc clusters.Clusters, obs clusters.Observations, assign []int) int {
	next := make([]int, len(obs))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(obs) {
		workers = len(obs)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := splitRange(len(obs), workers, w)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				next[i] = cc.Nearest(obs[i])
			}
		}(start, end)
	}
	wg.Wait()

	cc.Reset()
	changed := 0
	for i, ci := range next {
		if ci != assign[i] {
			changed++
			assign[i] = ci
		}
		cc[ci].Append(obs[i])
	}
	return changed
}

func reseedEmpty(cc clusters.Clusters, samples []clusters.Coordinates, rng *rand.Rand) int {
	empties := 0
	for i := range cc {
		if len(cc[i].Observations) == 0 {
			cc[i].Center = slices.Clone(samples[rng.Intn(len(samples))])
			empties++
		}
	}
	return empties
}
