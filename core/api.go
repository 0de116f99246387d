// File: api.go
// Role: read-only query facade over Graph.
// Policy:
//   - Every method returns a snapshot; callers may keep or mutate the result.
//   - Vertices and Edges are sorted; Neighbors preserves insertion order.

package core

import (
	"fmt"
	"sort"
)

// Stats is a point-in-time summary of a Graph.
type Stats struct {
	Vertices     int // |V|
	Edges        int // |E|
	MaxOutDegree int // largest outgoing edge count of any vertex
	Stages       int // number of distinct stage indices
}

// Neighbors returns the outgoing edges of id in insertion order.
// Returns ErrVertexNotFound if id is absent.
// Complexity: O(d) where d is the out-degree.
func (g *Graph) Neighbors(id NodeID) ([]Edge, error) {
	if !g.HasVertex(id) {
		return nil, fmt.Errorf("%w: %s", ErrVertexNotFound, id)
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	src := g.out[id]
	out := make([]Edge, len(src))
	for i, e := range src {
		out[i] = *e
	}

	return out, nil
}

// OutDegree returns the number of outgoing edges of id; 0 if id is absent.
// Complexity: O(1).
func (g *Graph) OutDegree(id NodeID) int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.out[id])
}

// Vertices returns all vertex ids sorted by (Stage, Key).
// Complexity: O(V·log V).
func (g *Graph) Vertices() []NodeID {
	g.muVert.RLock()
	ids := make([]NodeID, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.muVert.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	return ids
}

// Edges returns all edges sorted by (From, To).
// Complexity: O(E·log E).
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	out := make([]Edge, 0, g.edgeCount)
	for _, list := range g.out {
		for _, e := range list {
			out = append(out, *e)
		}
	}
	g.muEdgeAdj.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From.Less(out[j].From)
		}
		return out[i].To.Less(out[j].To)
	})

	return out
}

// VertexCount returns |V|.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns |E|.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.edgeCount
}

// Stats returns a snapshot of graph size figures.
// Complexity: O(V).
func (g *Graph) Stats() Stats {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	s := Stats{Vertices: len(g.vertices), Edges: g.edgeCount}
	stages := make(map[int]struct{})
	for id := range g.vertices {
		stages[id.Stage] = struct{}{}
		if d := len(g.out[id]); d > s.MaxOutDegree {
			s.MaxOutDegree = d
		}
	}
	s.Stages = len(stages)

	return s
}
