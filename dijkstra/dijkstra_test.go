// Package dijkstra_test contains unit tests for the Dijkstra implementation:
// validation order, basic distances, predecessor trees, MaxDistance,
// early exit on Target, and deterministic tie breaking.
package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geotour/core"
	"github.com/katalvlaran/geotour/cost"
	"github.com/katalvlaran/geotour/dijkstra"
	"github.com/katalvlaran/geotour/ring"
)

func n(stage, key int) core.NodeID { return core.NodeID{Stage: stage, Key: ring.Key(key)} }

func addEdge(t *testing.T, g *core.Graph, from, to core.NodeID, w float64) {
	t.Helper()
	_, err := g.AddEdge(from, to, cost.Cost{Dist: w, Weight: w})
	require.NoError(t, err)
}

// triangle builds A→B(1), B→C(2), A→C(5) with A=0:0, B=1:0, C=2:0.
func triangle(t *testing.T) *core.Graph {
	g := core.NewGraph()
	addEdge(t, g, n(0, 0), n(1, 0), 1)
	addEdge(t, g, n(1, 0), n(2, 0), 2)
	addEdge(t, g, n(0, 0), n(2, 0), 5)
	return g
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestDijkstra_Validation(t *testing.T) {
	g := triangle(t)

	_, _, err := dijkstra.Dijkstra(g)
	require.ErrorIs(t, err, dijkstra.ErrNoSource)

	_, _, err = dijkstra.Dijkstra(nil)
	require.ErrorIs(t, err, dijkstra.ErrNoSource, "missing source is reported before nil graph")

	_, _, err = dijkstra.Dijkstra(nil, dijkstra.Source(n(0, 0)))
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, _, err = dijkstra.Dijkstra(g, dijkstra.Source(n(0, 0)), dijkstra.WithMaxDistance(-1))
	require.ErrorIs(t, err, dijkstra.ErrBadMaxDistance)

	_, _, err = dijkstra.Dijkstra(g, dijkstra.Source(n(7, 7)))
	require.ErrorIs(t, err, dijkstra.ErrSourceNotFound)
}

// ------------------------------------------------------------------------
// 2. Distances and predecessors
// ------------------------------------------------------------------------

func TestDijkstra_Triangle(t *testing.T) {
	g := triangle(t)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(n(0, 0)))
	require.NoError(t, err)
	assert.Nil(t, prev, "prev is nil without WithReturnPath")
	assert.Equal(t, 0.0, dist[n(0, 0)])
	assert.Equal(t, 1.0, dist[n(1, 0)])
	assert.Equal(t, 3.0, dist[n(2, 0)])

	_, prev, err = dijkstra.Dijkstra(g, dijkstra.Source(n(0, 0)), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, n(0, 0), prev[n(1, 0)])
	assert.Equal(t, n(1, 0), prev[n(2, 0)])
	_, hasSrc := prev[n(0, 0)]
	assert.False(t, hasSrc)
}

func TestDijkstra_DirectedUnreachable(t *testing.T) {
	g := triangle(t)

	// Edges only go forward; the source of the triangle is unreachable from C.
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(n(2, 0)))
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist[n(0, 0)], 1))
	assert.Equal(t, 0.0, dist[n(2, 0)])
}

func TestDijkstra_MaxDistance(t *testing.T) {
	g := triangle(t)
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(n(0, 0)), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist[n(1, 0)])
	assert.True(t, math.IsInf(dist[n(2, 0)], 1), "C at distance 3 lies beyond the cap")
}

func TestShortestPath_MaxDistanceBound(t *testing.T) {
	// A→C(6) beats the detour A→B(4)→C(4).
	g := core.NewGraph()
	addEdge(t, g, n(0, 0), n(1, 0), 4)
	addEdge(t, g, n(1, 0), n(2, 0), 4)
	addEdge(t, g, n(0, 0), n(2, 0), 6)

	p, err := dijkstra.ShortestPath(g, n(0, 0), n(2, 0), dijkstra.WithMaxDistance(6))
	require.NoError(t, err, "a bound equal to the best cost keeps it")
	assert.Equal(t, []core.NodeID{n(0, 0), n(2, 0)}, p.Nodes)
	assert.Equal(t, 6.0, p.Cost)

	_, err = dijkstra.ShortestPath(g, n(0, 0), n(2, 0), dijkstra.WithMaxDistance(5.5))
	require.ErrorIs(t, err, dijkstra.ErrNoPath)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(n(0, 0)), dijkstra.WithMaxDistance(5.5))
	require.NoError(t, err)
	assert.Equal(t, 4.0, dist[n(1, 0)])
	assert.True(t, math.IsInf(dist[n(2, 0)], 1))
}

func TestDijkstra_FloatWeights(t *testing.T) {
	g := core.NewGraph()
	addEdge(t, g, n(0, 0), n(1, 0), 0.1)
	addEdge(t, g, n(1, 0), n(2, 0), 0.2)
	addEdge(t, g, n(0, 0), n(2, 0), 0.31)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(n(0, 0)))
	require.NoError(t, err)
	assert.InDelta(t, 0.3, dist[n(2, 0)], 1e-12)
}

// ------------------------------------------------------------------------
// 3. ShortestPath
// ------------------------------------------------------------------------

func TestShortestPath(t *testing.T) {
	g := triangle(t)

	p, err := dijkstra.ShortestPath(g, n(0, 0), n(2, 0))
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{n(0, 0), n(1, 0), n(2, 0)}, p.Nodes)
	assert.Equal(t, 3.0, p.Cost)

	p, err = dijkstra.ShortestPath(g, n(1, 0), n(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{n(1, 0)}, p.Nodes)
	assert.Equal(t, 0.0, p.Cost)

	_, err = dijkstra.ShortestPath(g, n(2, 0), n(0, 0))
	require.ErrorIs(t, err, dijkstra.ErrNoPath)

	_, err = dijkstra.ShortestPath(g, n(0, 0), n(9, 0))
	require.ErrorIs(t, err, dijkstra.ErrNoPath)

	_, err = dijkstra.ShortestPath(nil, n(0, 0), n(2, 0))
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)
}

// TestShortestPath_Layered runs a 4-stage graph shaped like a touring query:
// the best route does not start with the cheapest first leg.
func TestShortestPath_Layered(t *testing.T) {
	g := core.NewGraph()
	start, end := n(0, 0), n(3, 0)
	w1 := []float64{4, 1, 3}
	for k, w := range w1 {
		addEdge(t, g, start, n(1, k), w)
	}
	w12 := [][]float64{{1, 1}, {2, 5}, {0, 0}}
	for a := range w12 {
		for b, w := range w12[a] {
			addEdge(t, g, n(1, a), n(2, b), w)
		}
	}
	addEdge(t, g, n(2, 0), end, 1)
	addEdge(t, g, n(2, 1), end, 0.5)

	p, err := dijkstra.ShortestPath(g, start, end)
	require.NoError(t, err)
	// Candidates: 1:1→2:0 = 1+2+1 = 4; 1:2→2:1 = 3+0+0.5 = 3.5.
	assert.Equal(t, []core.NodeID{start, n(1, 2), n(2, 1), end}, p.Nodes)
	assert.InDelta(t, 3.5, p.Cost, 1e-12)
}

// TestShortestPath_TieBreakDeterministic checks that equal-cost routes
// resolve the same way on every run.
func TestShortestPath_TieBreakDeterministic(t *testing.T) {
	build := func() *core.Graph {
		g := core.NewGraph()
		for k := 0; k < 4; k++ {
			addEdge(t, g, n(0, 0), n(1, k), 1)
			addEdge(t, g, n(1, k), n(2, 0), 1)
		}
		return g
	}

	first, err := dijkstra.ShortestPath(build(), n(0, 0), n(2, 0))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := dijkstra.ShortestPath(build(), n(0, 0), n(2, 0))
		require.NoError(t, err)
		require.Equal(t, first.Nodes, again.Nodes)
	}
	assert.Equal(t, n(1, 0), first.Nodes[1])
}
