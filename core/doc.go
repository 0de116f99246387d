// Package core provides the thread-safe, directed, float-weighted graph that
// carries the layered stage graph of a touring query.
//
// Vertices are NodeID values: a stage index paired with a sample key from
// that stage's ring. Edges carry a full cost.Cost (distance, time and scalar
// weight); shortest-path code reads Cost.Weight.
//
// The graph G = (V,E) has the following behavior:
//
//   - Directed edges only; a stage graph never walks backwards.
//   - At most one edge per ordered pair (from,to). AddEdge on an existing pair
//     is a no-op that reports added=false, which lets a builder re-offer an
//     edge every iteration without cost.
//   - No self-loops.
//   - Weights must be finite and non-negative.
//   - Neighbors(u) returns outgoing edges in insertion order, so shortest-path
//     tie breaking is reproducible run to run.
//   - Vertices() and Edges() return sorted snapshots.
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj). Lock order is always muVert before muEdgeAdj.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id NodeID) error                          // O(1)
//	HasVertex(id NodeID) bool                           // O(1)
//
//	// Edge lifecycle
//	AddEdge(from, to NodeID, c cost.Cost) (bool, error) // O(1) amortized
//	HasEdge(from, to NodeID) bool                       // O(1)
//	Edge(from, to NodeID) (Edge, error)                 // O(1)
//
//	// Query
//	Neighbors(id NodeID) ([]Edge, error)                // O(d)
//	Vertices() []NodeID                                 // O(V·log V)
//	Edges() []Edge                                      // O(E·log E)
//	VertexCount(), EdgeCount() int                      // O(1)
//	Stats() Stats                                       // O(V)
//
//	// Maintenance
//	Clear()                                             // O(1)
//
// Errors:
//
//	ErrBadVertex      – NodeID with a negative stage or key
//	ErrVertexNotFound – missing vertex
//	ErrEdgeNotFound   – missing edge
//	ErrLoopNotAllowed – from == to
//	ErrNegativeWeight – Cost.Weight < 0
//	ErrBadWeight      – Cost.Weight is NaN or ±Inf
package core
