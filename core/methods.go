// Package core: mutating Graph methods.
//
// Adjacency is kept twice: an insertion-ordered slice per source for
// deterministic iteration and a nested map for constant-time existence checks.
// Both views share the same *Edge values.

package core

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geotour/cost"
)

// AddVertex inserts id into the graph.
// Returns ErrBadVertex if id.Stage or id.Key is negative.
// If the vertex already exists, this is a no-op (idempotent).
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id NodeID) error {
	if id.Stage < 0 || id.Key < 0 {
		return fmt.Errorf("%w: %s", ErrBadVertex, id)
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, exists := g.vertices[id]; exists {
		return nil
	}
	g.vertices[id] = struct{}{}

	return nil
}

// HasVertex reports whether id exists in the graph.
// Complexity: O(1).
func (g *Graph) HasVertex(id NodeID) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, exists := g.vertices[id]

	return exists
}

// AddEdge inserts the directed edge from→to with cost c, adding both endpoints
// if needed.
//
// If the edge already exists it is left untouched and added is false; the
// stored cost is never overwritten.
//
// Returns ErrBadVertex, ErrLoopNotAllowed, ErrBadWeight, ErrNegativeWeight.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to NodeID, c cost.Cost) (added bool, err error) {
	// 1) Input validation
	if from == to {
		return false, fmt.Errorf("%w: %s", ErrLoopNotAllowed, from)
	}
	if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
		return false, fmt.Errorf("%w: %s→%s weight=%v", ErrBadWeight, from, to, c.Weight)
	}
	if c.Weight < 0 {
		return false, fmt.Errorf("%w: %s→%s weight=%v", ErrNegativeWeight, from, to, c.Weight)
	}

	// 2) Ensure both endpoints exist (idempotent)
	if err = g.AddVertex(from); err != nil {
		return false, err
	}
	if err = g.AddVertex(to); err != nil {
		return false, err
	}

	// 3) Insert under the edge lock
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	inner, ok := g.index[from]
	if !ok {
		inner = make(map[NodeID]*Edge)
		g.index[from] = inner
	}
	if _, exists := inner[to]; exists {
		return false, nil
	}

	e := &Edge{From: from, To: to, Cost: c}
	inner[to] = e
	g.out[from] = append(g.out[from], e)
	g.edgeCount++

	return true, nil
}

// HasEdge reports whether the edge from→to exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to NodeID) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.index[from][to]

	return ok
}

// Edge returns a copy of the edge from→to, or ErrEdgeNotFound.
// Complexity: O(1).
func (g *Graph) Edge(from, to NodeID) (Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.index[from][to]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %s→%s", ErrEdgeNotFound, from, to)
	}

	return *e, nil
}

// Clear removes all vertices and edges.
// Complexity: O(1).
func (g *Graph) Clear() {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	g.vertices = make(map[NodeID]struct{})
	g.out = make(map[NodeID][]*Edge)
	g.index = make(map[NodeID]map[NodeID]*Edge)
	g.edgeCount = 0
}
