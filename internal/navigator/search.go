package navigator

import (
	"math"

	"sunnyway/internal/fibheap"
	"sunnyway/internal/geo"
	"sunnyway/internal/graph"
)

// search is the Dijkstra arena shared by both navigators. Every slice is
// indexed by vertex id and reset at the start of each run.
type search struct {
	g       *graph.Graph
	cost    []float64
	prev    []*graph.Edge
	handles []*fibheap.Entry[int]
	heap    *fibheap.Heap[int]
}

func newSearch(g *graph.Graph) *search {
	n := g.VertexCount()
	return &search{
		g:       g,
		cost:    make([]float64, n),
		prev:    make([]*graph.Edge, n),
		handles: make([]*fibheap.Entry[int], n),
		heap:    fibheap.New[int](),
	}
}

func (s *search) reset() {
	inf := math.Inf(1)
	for i := range s.cost {
		s.cost[i] = inf
		s.prev[i] = nil
		s.handles[i] = nil
	}
	s.heap.Clear()
}

func (s *search) setCost(id int, cost float64) {
	s.cost[id] = cost
	if h := s.handles[id]; h != nil {
		s.heap.DecreaseKey(h, cost)
		return
	}
	s.handles[id] = s.heap.Insert(id, cost)
}

// run finds the cheapest path from..to under weight, entering only vertices
// inside bound. It stops as soon as to is settled and reports whether it was
// reached.
func (s *search) run(from, to int, bound geo.Bound, weight func(*graph.Edge) float64) bool {
	s.reset()
	s.setCost(from, 0)

	for {
		cur, _, ok := s.heap.ExtractMin()
		if !ok {
			return false
		}
		if cur == to {
			return true
		}
		for _, e := range s.g.Vertex(cur).Edges {
			if !bound.Contains(s.g.Point(e.To)) {
				continue
			}
			next := s.cost[cur] + weight(e)
			if next < s.cost[e.To] {
				s.setCost(e.To, next)
				s.prev[e.To] = e
			}
		}
	}
}

// path walks the predecessor edges back from to and returns them in travel
// order.
func (s *search) path(to int) []*graph.Edge {
	n := 0
	for v := to; s.prev[v] != nil; v = s.prev[v].From {
		n++
	}
	edges := make([]*graph.Edge, n)
	for v := to; s.prev[v] != nil; v = s.prev[v].From {
		n--
		edges[n] = s.prev[v]
	}
	return edges
}
