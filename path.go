package autoart

import "image"

// ActionSet is one continuous stroke: an ordered sequence of pixel
// coordinates in which every consecutive pair is reachable through
// 8-connected ink.
type ActionSet []image.Point

// TraceLayer turns a layer's mask into optimizer-processed strokes
// covering every ink pixel. Chunks are traced largest first; the layer
// owns its visited grid, so independent layers may be traced
// concurrently.
func TraceLayer(l Layer, opts PathOptions) []ActionSet {
	visited := make([]bool, len(l.Mask.Bits))
	var sets []ActionSet
	for _, chunk := range Chunks(l.Mask) {
		sets = append(sets, traceChunk(l.Mask, chunk, visited, opts.Algorithm)...)
	}
	return OptimizeActionSets(sets, opts, l.Mask.H)
}

func traceChunk(m *Mask, chunk []image.Point, visited []bool, algo PathAlgorithm) []ActionSet {
	if algo == PathEdgeFollow {
		return followEdges(m, chunk, visited)
	}
	return traceDFS(m, chunk, visited)
}

func adjacent8(p, q image.Point) bool {
	return abs(p.X-q.X) <= 1 && abs(p.Y-q.Y) <= 1
}

// traceDFS walks the chunk depth-first over an explicit stack. When the
// next pop is not adjacent to the last emitted point (the usual artifact
// of backtracking), the gap is bridged with an A* route over ink, whose
// cells are emitted and marked visited, so consecutive output points are
// always pixel-adjacent.
func traceDFS(m *Mask, chunk []image.Point, visited []bool) []ActionSet {
	var sets []ActionSet
	for _, seed := range chunk {
		if visited[seed.Y*m.W+seed.X] {
			continue
		}
		var path ActionSet
		stack := []image.Point{seed}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pidx := p.Y*m.W + p.X
			if visited[pidx] {
				continue
			}
			if len(path) > 0 && !adjacent8(path[len(path)-1], p) {
				// The chunk is connected, so a route always exists.
				bridge := bridgePath(m, path[len(path)-1], p)
				for _, q := range bridge[1 : len(bridge)-1] {
					visited[q.Y*m.W+q.X] = true
					path = append(path, q)
				}
			}
			visited[pidx] = true
			path = append(path, p)
			for _, d := range neighbors8 {
				n := p.Add(d)
				if m.In(n.X, n.Y) && m.At(n.X, n.Y) && !visited[n.Y*m.W+n.X] {
					stack = append(stack, n)
				}
			}
		}
		sets = append(sets, path)
	}
	return sets
}

// Cardinal headings in clockwise order. Diagonal moves are a fallback
// and leave the heading unchanged.
var cardinals = [4]image.Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

var diagonals = [4]image.Point{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

// followEdges walks the chunk with a wall-following rule: from the
// current heading it tries turn-left, straight, turn-right and reverse
// in that order, then the four diagonals, advancing to the first
// unvisited ink neighbor. Each exhausted walk restarts from a fresh seed
// until the chunk is covered, so one chunk can yield several sets.
func followEdges(m *Mask, chunk []image.Point, visited []bool) []ActionSet {
	free := func(p image.Point) bool {
		return m.In(p.X, p.Y) && m.At(p.X, p.Y) && !visited[p.Y*m.W+p.X]
	}
	var sets []ActionSet
	for _, seed := range chunk {
		if visited[seed.Y*m.W+seed.X] {
			continue
		}
		visited[seed.Y*m.W+seed.X] = true
		path := ActionSet{seed}
		cur := seed
		heading := 1 // east
		for {
			moved := false
			for _, turn := range [4]int{3, 0, 1, 2} { // left, straight, right, reverse
				dir := (heading + turn) % 4
				if n := cur.Add(cardinals[dir]); free(n) {
					cur = n
					heading = dir
					moved = true
					break
				}
			}
			if !moved {
				for _, d := range diagonals {
					if n := cur.Add(d); free(n) {
						cur = n
						moved = true
						break
					}
				}
			}
			if !moved {
				break
			}
			visited[cur.Y*m.W+cur.X] = true
			path = append(path, cur)
		}
		sets = append(sets, path)
	}
	return sets
}
