package stagegraph

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/geotour/core"
	"github.com/katalvlaran/geotour/cost"
	"github.com/katalvlaran/geotour/dijkstra"
	"github.com/katalvlaran/geotour/ring"
)

// endpointKey is the only key of the start and end stages.
const endpointKey ring.Key = 0

// Builder owns the stage graph and edge cache of one query.
// A Builder is not safe for concurrent use; the rings it reads are mutated
// by the caller between calls.
type Builder struct {
	start, end r2.Point
	rings      []*ring.Ring
	model      *cost.Model
	cfg        Config

	g       *core.Graph
	tau     *Cache
	dropped int
}

// New returns a builder for start → rings[0] → … → rings[N-1] → end.
// The rings slice is copied; the rings themselves are shared with the caller.
func New(start, end r2.Point, rings []*ring.Ring, model *cost.Model, cfg Config) (*Builder, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if err := cfg.Filter.Validate(); err != nil {
		return nil, err
	}
	for i, r := range rings {
		if r == nil || r.Len() == 0 {
			return nil, fmt.Errorf("%w: ring %d", ErrNilRing, i)
		}
	}

	return &Builder{
		start: start,
		end:   end,
		rings: append([]*ring.Ring(nil), rings...),
		model: model,
		cfg:   cfg,
		g:     core.NewGraph(),
		tau:   NewCache(),
	}, nil
}

// Stages returns N+2: the start, one stage per ring, and the end.
func (b *Builder) Stages() int { return len(b.rings) + 2 }

// StartNode returns the virtual start vertex.
func (b *Builder) StartNode() core.NodeID { return core.NodeID{Stage: 0, Key: endpointKey} }

// EndNode returns the virtual end vertex.
func (b *Builder) EndNode() core.NodeID {
	return core.NodeID{Stage: len(b.rings) + 1, Key: endpointKey}
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *core.Graph { return b.g }

// Cache returns the edge cost memo.
func (b *Builder) Cache() *Cache { return b.tau }

// Dropped returns how many distinct candidate edges the filter has rejected
// and that were not kept as a source's only way forward.
func (b *Builder) Dropped() int { return b.dropped }

// Ring returns the ring backing region stage s (1..N).
func (b *Builder) Ring(s int) (*ring.Ring, error) {
	if s < 1 || s > len(b.rings) {
		return nil, fmt.Errorf("%w: stage %d", ErrBadStage, s)
	}

	return b.rings[s-1], nil
}

// Position returns the cartesian position of a vertex.
func (b *Builder) Position(id core.NodeID) (r2.Point, error) {
	switch {
	case id.Stage == 0 && id.Key == endpointKey:
		return b.start, nil
	case id.Stage == len(b.rings)+1 && id.Key == endpointKey:
		return b.end, nil
	case id.Stage >= 1 && id.Stage <= len(b.rings):
		s, err := b.rings[id.Stage-1].Query(id.Key)
		if err != nil {
			return r2.Point{}, err
		}
		return s.Pos, nil
	default:
		return r2.Point{}, fmt.Errorf("%w: %s", ErrBadStage, id)
	}
}

// BuildFull connects every sample of each stage to every sample of the next.
// It can be called again after refinement; existing edges are kept.
//
// Returns the number of edges added.
// Complexity: O(Σ |stage_i|·|stage_{i+1}|).
func (b *Builder) BuildFull() (int, error) {
	total := 0
	for s := 0; s+1 < b.Stages(); s++ {
		n, err := b.connect(s, b.stageKeys(s), b.stageKeys(s+1))
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// Extend connects, for every consecutive pair of waypoints on path, the ring
// neighborhood of radius r around the first waypoint to that around the
// second. The start and end stages contribute only themselves.
//
// path must visit stages 0..N+1 once each, in order (ErrBadPath).
// Returns the number of edges added.
// Complexity: O(N·(2r+1)²).
func (b *Builder) Extend(path dijkstra.Path, r int) (int, error) {
	if len(path.Nodes) != b.Stages() {
		return 0, fmt.Errorf("%w: %d nodes for %d stages", ErrBadPath, len(path.Nodes), b.Stages())
	}
	for i, id := range path.Nodes {
		if id.Stage != i {
			return 0, fmt.Errorf("%w: node %d is %s", ErrBadPath, i, id)
		}
	}

	hoods := make([][]ring.Key, len(path.Nodes))
	for i, id := range path.Nodes {
		keys, err := b.neighborhood(id, r)
		if err != nil {
			return 0, err
		}
		hoods[i] = keys
	}

	total := 0
	for s := 0; s+1 < len(hoods); s++ {
		n, err := b.connect(s, hoods[s], hoods[s+1])
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// stageKeys lists every key of stage s in ring order.
func (b *Builder) stageKeys(s int) []ring.Key {
	if s == 0 || s == len(b.rings)+1 {
		return []ring.Key{endpointKey}
	}

	return b.rings[s-1].Keys()
}

// neighborhood returns the keys around id within radius r on its ring.
func (b *Builder) neighborhood(id core.NodeID, r int) ([]ring.Key, error) {
	if id.Stage == 0 || id.Stage == len(b.rings)+1 {
		return []ring.Key{endpointKey}, nil
	}

	return b.rings[id.Stage-1].Neighborhood(id.Key, r)
}

// connect offers every edge from keys of stage s to keys of stage s+1.
// Leg index equals the source stage.
//
// A source left without any outgoing edge because the filter rejected all of
// its candidates keeps its cheapest one, so every vertex reached from the
// start can always continue toward the end.
func (b *Builder) connect(s int, from, to []ring.Key) (int, error) {
	added := 0
	for _, fk := range from {
		u := core.NodeID{Stage: s, Key: fk}
		pu, err := b.Position(u)
		if err != nil {
			return added, err
		}

		var (
			kept     int
			fallback *candidate
		)
		for _, tk := range to {
			v := core.NodeID{Stage: s + 1, Key: tk}
			c, fresh, err := b.edgeCost(s, u, v, pu)
			if err != nil {
				return added, err
			}
			if !b.cfg.Filter.keep(c) {
				if fresh {
					b.dropped++
				}
				if fallback == nil || c.Weight < fallback.cost.Weight {
					fallback = &candidate{to: v, cost: c, fresh: fresh}
				}
				continue
			}
			kept++
			ok, err := b.g.AddEdge(u, v, c)
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
		}

		if kept == 0 && fallback != nil && b.g.OutDegree(u) == 0 {
			ok, err := b.g.AddEdge(u, fallback.to, fallback.cost)
			if err != nil {
				return added, err
			}
			if ok {
				added++
				if fallback.fresh {
					b.dropped--
				}
			}
		}
	}

	return added, nil
}

// candidate is a filtered edge held back as a source's last resort.
type candidate struct {
	to    core.NodeID
	cost  cost.Cost
	fresh bool
}

// edgeCost returns the memoized cost of u→v, computing it on a miss.
// fresh reports whether this call computed the value.
func (b *Builder) edgeCost(leg int, u, v core.NodeID, pu r2.Point) (c cost.Cost, fresh bool, err error) {
	if hit, ok := b.tau.Get(u, v); ok {
		return hit, false, nil
	}
	pv, err := b.Position(v)
	if err != nil {
		return cost.Cost{}, false, err
	}

	return b.tau.Put(u, v, b.model.Edge(leg, pu, pv)), true, nil
}
