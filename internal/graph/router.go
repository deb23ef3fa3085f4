package graph

import (
	"container/heap"
	"context"
)

// contextCheckInterval is the number of settled vertices between context checks.
const contextCheckInterval = 64

// RouteInfo is a shortest path: its total weight and the edges realizing it in
// travel order.
type RouteInfo[W Weight] struct {
	Weight W
	Edges  []EdgeID
}

// Router runs single-source shortest path queries over a frozen graph. Every
// query allocates its own working state, so one Router serves concurrent
// callers.
type Router[W Weight] struct {
	graph *DirectedWeightedGraph[W]
}

// NewRouter freezes g and returns a router over it.
func NewRouter[W Weight](g *DirectedWeightedGraph[W]) *Router[W] {
	g.Freeze()
	return &Router[W]{graph: g}
}

func (r *Router[W]) Graph() *DirectedWeightedGraph[W] {
	return r.graph
}

// BuildRoute returns the minimal-weight path from one vertex to another. ok is
// false when either vertex is out of range or the target is unreachable.
func (r *Router[W]) BuildRoute(from, to VertexID) (RouteInfo[W], bool) {
	route, ok, _ := r.BuildRouteContext(context.Background(), from, to)
	return route, ok
}

// BuildRouteContext is BuildRoute with cancellation. The only error it returns
// is ctx.Err().
func (r *Router[W]) BuildRouteContext(ctx context.Context, from, to VertexID) (RouteInfo[W], bool, error) {
	if err := ctx.Err(); err != nil {
		return RouteInfo[W]{}, false, err
	}

	g := r.graph
	if !g.hasVertex(from) || !g.hasVertex(to) {
		return RouteInfo[W]{}, false, nil
	}

	n := g.VertexCount()
	dist := make([]W, n)
	reached := make([]bool, n)
	settled := make([]bool, n)
	prevEdge := make([]EdgeID, n)

	reached[from] = true
	prevEdge[from] = -1

	pq := &priorityQueue[W]{}
	heap.Push(pq, &pqItem[W]{vertex: from, dist: 0})

	pops := 0
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem[W])
		current := item.vertex
		if settled[current] {
			continue
		}
		settled[current] = true

		if current == to {
			break
		}

		pops++
		if pops%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return RouteInfo[W]{}, false, err
			}
		}

		for _, edgeID := range g.incidence[current] {
			edge := g.edges[edgeID]
			if settled[edge.To] {
				continue
			}
			tentative := dist[current] + edge.Weight
			if !reached[edge.To] || tentative < dist[edge.To] {
				reached[edge.To] = true
				dist[edge.To] = tentative
				prevEdge[edge.To] = edgeID
				heap.Push(pq, &pqItem[W]{vertex: edge.To, dist: tentative})
			}
		}
	}

	if !reached[to] {
		return RouteInfo[W]{}, false, nil
	}

	return RouteInfo[W]{Weight: dist[to], Edges: r.reconstructPath(prevEdge, to)}, true, nil
}

func (r *Router[W]) reconstructPath(prevEdge []EdgeID, to VertexID) []EdgeID {
	edges := []EdgeID{}
	for v := to; prevEdge[v] >= 0; v = r.graph.edges[prevEdge[v]].From {
		edges = append(edges, prevEdge[v])
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

type pqItem[W Weight] struct {
	vertex VertexID
	dist   W
}

// priorityQueue orders by distance, then by vertex id so that equal-weight
// paths resolve the same way on every query.
type priorityQueue[W Weight] []*pqItem[W]

func (pq priorityQueue[W]) Len() int { return len(pq) }
func (pq priorityQueue[W]) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].vertex < pq[j].vertex
}
func (pq priorityQueue[W]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue[W]) Push(x any) {
	*pq = append(*pq, x.(*pqItem[W]))
}

func (pq *priorityQueue[W]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
