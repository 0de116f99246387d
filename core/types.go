package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/geotour/cost"
	"github.com/katalvlaran/geotour/ring"
)

// Sentinel errors for core graph operations.
var (
	// ErrBadVertex indicates a NodeID with a negative stage or a nil key.
	ErrBadVertex = errors.New("core: invalid vertex id")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrNegativeWeight indicates an edge weight below zero.
	ErrNegativeWeight = errors.New("core: negative edge weight")

	// ErrBadWeight indicates a NaN or infinite edge weight.
	ErrBadWeight = errors.New("core: edge weight is not finite")
)

// NodeID identifies one sample of one stage.
//
// Stage 0 is the start point, stages 1..N are the regions in visiting order
// and stage N+1 is the end point. Key is the sample's handle in the stage's
// ring; the start and end stages use key 0.
type NodeID struct {
	Stage int
	Key   ring.Key
}

// String renders the id as "stage:key".
func (n NodeID) String() string {
	return fmt.Sprintf("%d:%d", n.Stage, n.Key)
}

// Less orders ids by stage, then by key.
func (n NodeID) Less(o NodeID) bool {
	if n.Stage != o.Stage {
		return n.Stage < o.Stage
	}

	return n.Key < o.Key
}

// Edge is a directed, weighted connection From→To.
type Edge struct {
	From NodeID
	To   NodeID
	Cost cost.Cost
}

// Weight returns the scalar weight used by shortest-path search.
func (e Edge) Weight() float64 { return e.Cost.Weight }

// GraphOption configures a Graph before first use.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the vertex and adjacency maps for n vertices.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.vertices = make(map[NodeID]struct{}, n)
			g.out = make(map[NodeID][]*Edge, n)
			g.index = make(map[NodeID]map[NodeID]*Edge, n)
		}
	}
}

// Graph is a directed, float-weighted graph over NodeID.
//
// muVert protects vertices; muEdgeAdj protects out, index and edgeCount.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards out, index, edgeCount

	vertices map[NodeID]struct{}

	// out[u] lists u's outgoing edges in insertion order;
	// index[u][v] points at the same *Edge for O(1) lookup.
	out       map[NodeID][]*Edge
	index     map[NodeID]map[NodeID]*Edge
	edgeCount int
}

// NewGraph creates an empty Graph.
// Complexity: O(1), or O(n) with WithCapacity(n).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[NodeID]struct{}),
		out:      make(map[NodeID][]*Edge),
		index:    make(map[NodeID]map[NodeID]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
