package autoart

import (
	"image"
	"math"
	"slices"
)

func centroid(set ActionSet) (float64, float64) {
	var sx, sy float64
	for _, p := range set {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	n := float64(len(set))
	return sx / n, sy / n
}

func dist(ax, ay, bx, by float64) float64 {
	dx, dy := ax-bx, ay-by
	return math.Sqrt(dx*dx + dy*dy)
}

// OptimizeActionSets merges clusters of short strokes into fewer,
// spatially coherent ones. Small sets (length <= SmallSetThreshold) are
// clustered by transitive centroid proximity; a qualifying cluster's
// points are pooled and re-split into connected components under
// MaxConnectedDistance, so a merge never draws across a gap between
// pixel groups that are not actually touching. The result can therefore
// hold more sets than a naive merge, but each one is geometrically
// sound. Output order is large sets, unmerged small sets, then merged
// sub-paths, optionally reordered into a serpentine sweep. Deterministic
// for a fixed input order, and idempotent while spatial ordering is off.
func OptimizeActionSets(sets []ActionSet, opts PathOptions, height int) []ActionSet {
	if len(sets) == 0 {
		return nil
	}

	cents := make([][2]float64, len(sets))
	for i, s := range sets {
		cents[i][0], cents[i][1] = centroid(s)
	}
	var small, large []int
	for i, s := range sets {
		if len(s) <= opts.SmallSetThreshold {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	// Transitive centroid-proximity expansion over the small sets.
	inCluster := make(map[int]bool, len(small))
	var clusters [][]int
	for _, seed := range small {
		if inCluster[seed] {
			continue
		}
		inCluster[seed] = true
		cluster := []int{seed}
		for head := 0; head < len(cluster); head++ {
			ci := cluster[head]
			for _, sj := range small {
				if inCluster[sj] {
					continue
				}
				if dist(cents[ci][0], cents[ci][1], cents[sj][0], cents[sj][1]) <= opts.ClusterDistance {
					inCluster[sj] = true
					cluster = append(cluster, sj)
				}
			}
		}
		clusters = append(clusters, cluster)
	}

	var out []ActionSet
	for _, li := range large {
		out = append(out, sets[li])
	}
	var merged []ActionSet
	for _, cluster := range clusters {
		if len(cluster) < opts.MinClusterSize {
			for _, si := range cluster {
				out = append(out, sets[si])
			}
			continue
		}
		var pool []image.Point
		seen := make(map[image.Point]bool)
		for _, si := range cluster {
			for _, p := range sets[si] {
				if !seen[p] {
					seen[p] = true
					pool = append(pool, p)
				}
			}
		}
		for _, comp := range connectedPoints(pool, opts.MaxConnectedDistance) {
			merged = append(merged, greedyPath(comp))
		}
	}
	out = append(out, merged...)

	if opts.SpatialOrdering {
		serpentine(out, height)
	}
	return out
}

// connectedPoints partitions points into maximal components in which
// every point is within maxDist of some other member.
func connectedPoints(points []image.Point, maxDist float64) [][]image.Point {
	seen := make([]bool, len(points))
	var comps [][]image.Point
	for i := range points {
		if seen[i] {
			continue
		}
		seen[i] = true
		comp := []image.Point{points[i]}
		frontier := []int{i}
		for len(frontier) > 0 {
			ci := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			for j := range points {
				if seen[j] {
					continue
				}
				if dist(float64(points[ci].X), float64(points[ci].Y),
					float64(points[j].X), float64(points[j].Y)) <= maxDist {
					seen[j] = true
					comp = append(comp, points[j])
					frontier = append(frontier, j)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// greedyPath orders a component's points by nearest-neighbor hops,
// starting at the top-most (then left-most) point.
func greedyPath(points []image.Point) ActionSet {
	start := 0
	for i, p := range points {
		s := points[start]
		if p.Y < s.Y || (p.Y == s.Y && p.X < s.X) {
			start = i
		}
	}
	used := make([]bool, len(points))
	used[start] = true
	path := ActionSet{points[start]}
	cur := start
	for len(path) < len(points) {
		next := -1
		best := math.MaxFloat64
		for j, p := range points {
			if used[j] {
				continue
			}
			d := dist(float64(points[cur].X), float64(points[cur].Y), float64(p.X), float64(p.Y))
			if d < best {
				best = d
				next = j
			}
		}
		used[next] = true
		cur = next
		path = append(path, points[next])
	}
	return path
}

// serpentine sorts sets into horizontal bands by centroid Y, sweeping
// even bands left-to-right and odd bands right-to-left to minimize
// travel between consecutive strokes.
func serpentine(sets []ActionSet, height int) {
	bandH := height / 20
	if bandH < 30 {
		bandH = 30
	}
	slices.SortStableFunc(sets, func(a, b ActionSet) int {
		ax, ay := centroid(a)
		bx, by := centroid(b)
		bandA, bandB := int(ay)/bandH, int(by)/bandH
		if bandA != bandB {
			return bandA - bandB
		}
		if bandA%2 == 1 {
			ax, bx = bx, ax
		}
		switch {
		case ax < bx:
			return -1
		case ax > bx:
			return 1
		default:
			return 0
		}
	})
}
