package core_test

import (
	"fmt"

	"github.com/katalvlaran/geotour/core"
	"github.com/katalvlaran/geotour/cost"
)

// ExampleGraph builds a tiny three-stage graph and inspects it.
func ExampleGraph() {
	g := core.NewGraph()
	start := core.NodeID{Stage: 0}
	end := core.NodeID{Stage: 2}

	// Two samples on the middle stage.
	for k, d := range []float64{2, 3} {
		mid := core.NodeID{Stage: 1, Key: ringKey(k)}
		_, _ = g.AddEdge(start, mid, cost.Cost{Dist: d, Weight: d})
		_, _ = g.AddEdge(mid, end, cost.Cost{Dist: 1, Weight: 1})
	}

	// Offering an existing edge again changes nothing.
	added, _ := g.AddEdge(start, core.NodeID{Stage: 1}, cost.Cost{Weight: 100})

	fmt.Println("Vertices:", g.Vertices())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Re-added:", added)

	// Output:
	// Vertices: [0:0 1:0 1:1 2:0]
	// Edges: 4
	// Re-added: false
}
