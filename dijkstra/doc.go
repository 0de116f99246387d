// Package dijkstra implements Dijkstra's shortest-path algorithm over the
// float-weighted core.Graph used for layered stage graphs.
//
// Overview:
//
//   - Dijkstra computes minimum-weight distances from one source to every
//     reachable vertex in O((V + E) log V) using a binary heap with lazy
//     decrease-key.
//   - ShortestPath wraps it for the single-pair case that touring queries
//     need: it stops as soon as the destination is settled and rebuilds the
//     vertex sequence from the predecessor map.
//
// Key features:
//
//   - Functional options: Source, WithReturnPath, WithMaxDistance, WithTarget.
//     ShortestPath accepts WithMaxDistance to prune routes above a known bound.
//   - Deterministic output: heap ties are broken by (Stage, Key) and edges are
//     relaxed in insertion order with a strict improvement test.
//
// Error handling (sentinel errors):
//
//   - ErrNoSource:        Source option not supplied.
//   - ErrNilGraph:        nil graph.
//   - ErrSourceNotFound:  source vertex absent.
//   - ErrBadMaxDistance:  MaxDistance < 0 or NaN.
//   - ErrNegativeWeight:  negative weight met during relaxation.
//   - ErrNoPath:          ShortestPath destination unreachable.
//
// Example:
//
//	p, err := dijkstra.ShortestPath(g, start, end)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.Nodes, p.Cost)
package dijkstra
