package autoart

import (
	"container/heap"
	"image"
)

type pathNode struct {
	idx int // pixel index
	g   int
	f   int
}

type nodeHeap []pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(pathNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bridgePath finds a short 8-connected route between two ink pixels,
// stepping only on ink, using A* with a Manhattan heuristic and uniform
// step cost. The heuristic overestimates across diagonal steps, so the
// route is not always minimal. The returned path includes both
// endpoints; nil when the pixels are not connected.
func bridgePath(m *Mask, from, to image.Point) []image.Point {
	start := from.Y*m.W + from.X
	goal := to.Y*m.W + to.X

	gScore := map[int]int{start: 0}
	parent := map[int]int{}
	closed := map[int]bool{}

	h := func(idx int) int {
		return abs(idx%m.W-to.X) + abs(idx/m.W-to.Y)
	}
	open := &nodeHeap{{idx: start, g: 0, f: h(start)}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(pathNode)
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true
		if cur.idx == goal {
			path := []image.Point{to}
			for idx := goal; idx != start; {
				idx = parent[idx]
				path = append(path, image.Point{X: idx % m.W, Y: idx / m.W})
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		p := image.Point{X: cur.idx % m.W, Y: cur.idx / m.W}
		for _, d := range neighbors8 {
			n := p.Add(d)
			if !m.In(n.X, n.Y) || !m.At(n.X, n.Y) {
				continue
			}
			nidx := n.Y*m.W + n.X
			if closed[nidx] {
				continue
			}
			g := cur.g + 1
			if prev, ok := gScore[nidx]; ok && g >= prev {
				continue
			}
			gScore[nidx] = g
			parent[nidx] = cur.idx
			heap.Push(open, pathNode{idx: nidx, g: g, f: g + h(nidx)})
		}
	}
	return nil
}
