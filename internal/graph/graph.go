// Package graph provides a directed weighted graph over dense integer vertex
// ids and a Dijkstra router that answers repeated queries against it.
package graph

import (
	"errors"
	"fmt"
)

var (
	ErrGraphFrozen      = errors.New("graph is frozen")
	ErrNegativeWeight   = errors.New("edge weight must not be negative")
	ErrVertexOutOfRange = errors.New("vertex id out of range")
)

// Weight is the set of edge weight types the router can sum and compare.
type Weight interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

type VertexID int

type EdgeID int

type Edge[W Weight] struct {
	From   VertexID
	To     VertexID
	Weight W
}

// DirectedWeightedGraph stores edges in insertion order with per-vertex
// incidence lists. Once frozen it is read-only and safe for concurrent use.
type DirectedWeightedGraph[W Weight] struct {
	edges     []Edge[W]
	incidence [][]EdgeID
	frozen    bool
}

func NewDirectedWeightedGraph[W Weight](vertexCount int) *DirectedWeightedGraph[W] {
	return &DirectedWeightedGraph[W]{
		incidence: make([][]EdgeID, vertexCount),
	}
}

// AddEdge appends an edge and returns its id. Ids are assigned sequentially
// starting at 0.
func (g *DirectedWeightedGraph[W]) AddEdge(edge Edge[W]) (EdgeID, error) {
	if g.frozen {
		return 0, ErrGraphFrozen
	}
	if edge.Weight < 0 {
		return 0, fmt.Errorf("edge %d -> %d: %w", edge.From, edge.To, ErrNegativeWeight)
	}
	if !g.hasVertex(edge.From) || !g.hasVertex(edge.To) {
		return 0, fmt.Errorf("edge %d -> %d with %d vertices: %w", edge.From, edge.To, len(g.incidence), ErrVertexOutOfRange)
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge)
	g.incidence[edge.From] = append(g.incidence[edge.From], id)
	return id, nil
}

func (g *DirectedWeightedGraph[W]) Edge(id EdgeID) Edge[W] {
	return g.edges[id]
}

// IncidentEdges returns the ids of the edges leaving v. The slice must not be
// modified.
func (g *DirectedWeightedGraph[W]) IncidentEdges(v VertexID) []EdgeID {
	if !g.hasVertex(v) {
		return nil
	}
	return g.incidence[v]
}

func (g *DirectedWeightedGraph[W]) VertexCount() int {
	return len(g.incidence)
}

func (g *DirectedWeightedGraph[W]) EdgeCount() int {
	return len(g.edges)
}

// Freeze makes the graph read-only. Further AddEdge calls fail with
// ErrGraphFrozen.
func (g *DirectedWeightedGraph[W]) Freeze() {
	g.frozen = true
}

func (g *DirectedWeightedGraph[W]) Frozen() bool {
	return g.frozen
}

func (g *DirectedWeightedGraph[W]) hasVertex(v VertexID) bool {
	return v >= 0 && int(v) < len(g.incidence)
}
