package stagegraph_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geotour/core"
	"github.com/katalvlaran/geotour/cost"
	"github.com/katalvlaran/geotour/dijkstra"
	"github.com/katalvlaran/geotour/geometry"
	"github.com/katalvlaran/geotour/region"
	"github.com/katalvlaran/geotour/ring"
	"github.com/katalvlaran/geotour/stagegraph"
)

var (
	origin = r2.Point{X: 0, Y: 0}
	target = r2.Point{X: 10, Y: 0}
)

// circleRing samples a unit circle at (5,2) with 4 samples:
// key 0 → (6,2), 1 → (5,3), 2 → (4,2), 3 → (5,1).
func circleRing(t *testing.T) *ring.Ring {
	t.Helper()
	rg, err := region.SampleBoundary(region.NewCircle(r2.Point{X: 5, Y: 2}, 1), 4)
	require.NoError(t, err)
	return rg
}

func node(stage, key int) core.NodeID { return core.NodeID{Stage: stage, Key: ring.Key(key)} }

func TestNew_Errors(t *testing.T) {
	rg := circleRing(t)

	_, err := stagegraph.New(origin, target, []*ring.Ring{rg}, nil, stagegraph.DefaultConfig())
	require.ErrorIs(t, err, stagegraph.ErrNilModel)

	_, err = stagegraph.New(origin, target, []*ring.Ring{rg, nil}, cost.NewDistance(), stagegraph.DefaultConfig())
	require.ErrorIs(t, err, stagegraph.ErrNilRing)

	cfg := stagegraph.Config{Filter: stagegraph.EdgeFilter{Policy: stagegraph.DropShort, MinDist: -1}}
	_, err = stagegraph.New(origin, target, []*ring.Ring{rg}, cost.NewDistance(), cfg)
	require.ErrorIs(t, err, stagegraph.ErrBadFilter)
}

func TestBuilder_BuildFull(t *testing.T) {
	b, err := stagegraph.New(origin, target, []*ring.Ring{circleRing(t)}, cost.NewDistance(), stagegraph.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, b.Stages())
	assert.Equal(t, node(0, 0), b.StartNode())
	assert.Equal(t, node(2, 0), b.EndNode())

	added, err := b.BuildFull()
	require.NoError(t, err)
	assert.Equal(t, 8, added)
	assert.Equal(t, 6, b.Graph().VertexCount())
	assert.Equal(t, 8, b.Cache().Len())

	// A second full build offers only existing edges.
	added, err = b.BuildFull()
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 8, b.Cache().Len())

	p, err := dijkstra.ShortestPath(b.Graph(), b.StartNode(), b.EndNode())
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{node(0, 0), node(1, 3), node(2, 0)}, p.Nodes)
	assert.InDelta(t, 2*math.Sqrt(26), p.Cost, 1e-9)
}

func TestBuilder_ExtendNeighborhood(t *testing.T) {
	rg := circleRing(t)
	b, err := stagegraph.New(origin, target, []*ring.Ring{rg}, cost.NewDistance(), stagegraph.DefaultConfig())
	require.NoError(t, err)
	_, err = b.BuildFull()
	require.NoError(t, err)

	p0, err := dijkstra.ShortestPath(b.Graph(), b.StartNode(), b.EndNode())
	require.NoError(t, err)

	// Refine around the waypoint (key 3 at 270°): new keys 4 (225°) and 5 (315°).
	newKeys, err := rg.InsertAround(p0.Nodes[1].Key)
	require.NoError(t, err)
	require.Equal(t, []ring.Key{4, 5}, newKeys)

	added, err := b.Extend(p0, stagegraph.DefaultRadius)
	require.NoError(t, err)
	assert.Equal(t, 4, added, "start→{4,5} and {4,5}→end")
	for _, k := range newKeys {
		assert.True(t, b.Graph().HasEdge(b.StartNode(), node(1, int(k))))
		assert.True(t, b.Graph().HasEdge(node(1, int(k)), b.EndNode()))
	}

	// The previous best path is still present, so the cost cannot rise.
	p1, err := dijkstra.ShortestPath(b.Graph(), b.StartNode(), b.EndNode())
	require.NoError(t, err)
	assert.LessOrEqual(t, p1.Cost, p0.Cost)
}

func TestBuilder_ExtendBadPath(t *testing.T) {
	b, err := stagegraph.New(origin, target, []*ring.Ring{circleRing(t)}, cost.NewDistance(), stagegraph.DefaultConfig())
	require.NoError(t, err)

	_, err = b.Extend(dijkstra.Path{Nodes: []core.NodeID{node(0, 0), node(2, 0)}}, 2)
	require.ErrorIs(t, err, stagegraph.ErrBadPath)

	_, err = b.Extend(dijkstra.Path{Nodes: []core.NodeID{node(0, 0), node(2, 0), node(1, 0)}}, 2)
	require.ErrorIs(t, err, stagegraph.ErrBadPath)

	_, err = b.Extend(dijkstra.Path{Nodes: []core.NodeID{node(0, 0), node(1, 99), node(2, 0)}}, 2)
	require.ErrorIs(t, err, ring.ErrStaleKey)
}

func TestBuilder_EdgeFilter(t *testing.T) {
	// The start sits exactly on sample 0 of the ring.
	start := r2.Point{X: 6, Y: 2}

	cases := []struct {
		name    string
		policy  stagegraph.FilterPolicy
		hasEdge bool
		dropped int
	}{
		{"KeepShort", stagegraph.KeepShort, true, 0},
		{"DropShort", stagegraph.DropShort, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := stagegraph.Config{Filter: stagegraph.EdgeFilter{Policy: tc.policy, MinDist: stagegraph.DefaultMinDist}}
			b, err := stagegraph.New(start, target, []*ring.Ring{circleRing(t)}, cost.NewDistance(), cfg)
			require.NoError(t, err)

			_, err = b.BuildFull()
			require.NoError(t, err)
			_, err = b.BuildFull()
			require.NoError(t, err)

			assert.Equal(t, tc.hasEdge, b.Graph().HasEdge(b.StartNode(), node(1, 0)))
			assert.Equal(t, tc.dropped, b.Dropped(), "re-offered edges are counted once")
		})
	}
}

func TestBuilder_DropShortKeepsOneEdgePerSource(t *testing.T) {
	// Every sample of the tiny circle lies within MinDist of both endpoints,
	// so the filter rejects every candidate edge.
	rg, err := region.SampleBoundary(region.NewCircle(origin, 0.002), 4)
	require.NoError(t, err)
	cfg := stagegraph.Config{Filter: stagegraph.EdgeFilter{Policy: stagegraph.DropShort, MinDist: stagegraph.DefaultMinDist}}
	b, err := stagegraph.New(origin, origin, []*ring.Ring{rg}, cost.NewDistance(), cfg)
	require.NoError(t, err)

	added, err := b.BuildFull()
	require.NoError(t, err)
	assert.Equal(t, 5, added, "start keeps one edge, each sample keeps its edge to the end")
	assert.Equal(t, 1, b.Graph().OutDegree(b.StartNode()))
	assert.Equal(t, 3, b.Dropped())

	p, err := dijkstra.ShortestPath(b.Graph(), b.StartNode(), b.EndNode())
	require.NoError(t, err)
	assert.InDelta(t, 0.004, p.Cost, 1e-12)

	// A second build re-offers the same candidates and adds nothing.
	added, err = b.BuildFull()
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, 3, b.Dropped())
}

func TestBuilder_LegIndexIsSourceStage(t *testing.T) {
	rg := circleRing(t)
	bounds := geometry.Bounds(origin, target)
	bounds = bounds.AddPoint(r2.Point{X: 5, Y: 3})
	model, err := cost.NewTimeThenDistance(1, []float64{30, 0}, bounds)
	require.NoError(t, err)

	b, err := stagegraph.New(origin, target, []*ring.Ring{rg}, model, stagegraph.DefaultConfig())
	require.NoError(t, err)
	_, err = b.BuildFull()
	require.NoError(t, err)

	first, err := b.Graph().Edge(b.StartNode(), node(1, 3))
	require.NoError(t, err)
	assert.Equal(t, 30.0, first.Cost.Time, "leg 0 carries the dwell floor")

	last, err := b.Graph().Edge(node(1, 3), b.EndNode())
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(26), last.Cost.Time, 1e-9, "leg 1 is pure travel time")
}

func TestBuilder_Position(t *testing.T) {
	b, err := stagegraph.New(origin, target, []*ring.Ring{circleRing(t)}, cost.NewDistance(), stagegraph.DefaultConfig())
	require.NoError(t, err)

	p, err := b.Position(b.StartNode())
	require.NoError(t, err)
	assert.Equal(t, origin, p)

	p, err = b.Position(b.EndNode())
	require.NoError(t, err)
	assert.Equal(t, target, p)

	p, err = b.Position(node(1, 0))
	require.NoError(t, err)
	assert.InDelta(t, 6.0, p.X, 1e-12)
	assert.InDelta(t, 2.0, p.Y, 1e-12)

	_, err = b.Position(node(5, 0))
	require.ErrorIs(t, err, stagegraph.ErrBadStage)
	_, err = b.Position(node(0, 1))
	require.ErrorIs(t, err, stagegraph.ErrBadStage)
	_, err = b.Position(node(1, 42))
	require.ErrorIs(t, err, ring.ErrStaleKey)

	_, err = b.Ring(0)
	require.ErrorIs(t, err, stagegraph.ErrBadStage)
	r, err := b.Ring(1)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "keep-short", stagegraph.KeepShort.String())
	assert.Equal(t, "drop-short", stagegraph.DropShort.String())
	assert.Equal(t, "neighborhood", stagegraph.RebuildNeighborhood.String())
	assert.Equal(t, "full", stagegraph.RebuildFull.String())
	assert.Equal(t, "rebuild(7)", stagegraph.Rebuild(7).String())
}
