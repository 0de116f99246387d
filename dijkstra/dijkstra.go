package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/geotour/core"
)

// Dijkstra computes shortest distances from Options.Source to every vertex of g.
//
// Returns:
//
//   - dist: vertex → minimum distance (+Inf if unreachable or beyond MaxDistance).
//   - prev: predecessor map if ReturnPath is set, nil otherwise. prev[v] == u
//     means the shortest path to v arrives from u. Unreached vertices and the
//     source have no entry.
//   - err:  validation error, or ErrNegativeWeight if one slips past the graph.
//
// Validation order:
//  1. Source supplied (ErrNoSource).
//  2. g non-nil (ErrNilGraph).
//  3. MaxDistance ≥ 0 (ErrBadMaxDistance).
//  4. g contains Source (ErrSourceNotFound).
//
// Ties between equal distances are broken by vertex order (Stage, Key), and
// edges are relaxed in insertion order with a strict improvement test, so the
// returned predecessor tree is reproducible.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *core.Graph, opts ...Option) (map[core.NodeID]float64, map[core.NodeID]core.NodeID, error) {
	// 1) Build Options
	cfg := DefaultOptions(core.NodeID{})
	cfg.hasSource = false
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate
	if !cfg.hasSource {
		return nil, nil, ErrNoSource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if math.IsNaN(cfg.MaxDistance) || cfg.MaxDistance < 0 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrBadMaxDistance, cfg.MaxDistance)
	}
	if !g.HasVertex(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, cfg.Source)
	}

	// 3) Prepare state
	vertices := g.Vertices()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[core.NodeID]float64, len(vertices)),
		visited: make(map[core.NodeID]bool, len(vertices)),
		pq:      make(nodePQ, 0, len(vertices)),
	}
	if cfg.ReturnPath {
		r.prev = make(map[core.NodeID]core.NodeID, len(vertices))
	}

	// 4) Run
	r.init(vertices)
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	return r.dist, r.prev, nil
}

// ShortestPath returns the minimum-weight path from src to dst.
// opts may add WithMaxDistance; a dst farther than the cap counts as
// unreachable. Returns ErrNoPath if dst is unreachable, plus any error
// Dijkstra reports.
//
// Complexity: O((V + E) log V) worst case; stops once dst is settled.
func ShortestPath(g *core.Graph, src, dst core.NodeID, opts ...Option) (Path, error) {
	if g != nil && !g.HasVertex(dst) {
		return Path{}, fmt.Errorf("%w: %s not in graph", ErrNoPath, dst)
	}
	all := append([]Option{Source(src), WithTarget(dst), WithReturnPath()}, opts...)
	dist, prev, err := Dijkstra(g, all...)
	if err != nil {
		return Path{}, err
	}

	d := dist[dst]
	if math.IsInf(d, 1) {
		return Path{}, fmt.Errorf("%w: %s→%s", ErrNoPath, src, dst)
	}

	// Walk predecessors back from dst, then reverse.
	nodes := []core.NodeID{dst}
	for cur := dst; cur != src; {
		p, ok := prev[cur]
		if !ok {
			return Path{}, fmt.Errorf("%w: broken predecessor chain at %s", ErrNoPath, cur)
		}
		nodes = append(nodes, p)
		cur = p
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return Path{Nodes: nodes, Cost: d}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph
	options Options
	dist    map[core.NodeID]float64
	prev    map[core.NodeID]core.NodeID
	visited map[core.NodeID]bool
	pq      nodePQ
}

// init sets dist = +Inf everywhere and pushes Source at distance zero.
func (r *runner) init(vertices []core.NodeID) {
	for _, v := range vertices {
		r.dist[v] = math.Inf(1)
	}
	r.dist[r.options.Source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process repeatedly settles the closest unvisited vertex and relaxes its
// outgoing edges.
//
// Loop termination conditions:
//
//   - The heap becomes empty.
//   - The minimum distance in the heap exceeds MaxDistance.
//   - Target has been settled.
func (r *runner) process() error {
	cfg := r.options
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u, d := item.id, item.dist

		// Stale entry from lazy decrease-key.
		if r.visited[u] {
			continue
		}
		if d > cfg.MaxDistance {
			break
		}
		r.visited[u] = true

		if cfg.hasTarget && u == cfg.Target {
			break
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve the distance of every out-neighbor of u.
// Assumes r.dist[u] is final.
func (r *runner) relax(u core.NodeID) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %s: %w", u, err)
	}

	for _, e := range neighbors {
		v, w := e.To, e.Weight()

		if w < 0 {
			return fmt.Errorf("%w: edge %s→%s weight=%v", ErrNegativeWeight, u, v, w)
		}

		newDist := r.dist[u] + w
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strict improvement only; the first relaxation to reach a distance wins.
		if newDist >= r.dist[v] {
			continue
		}

		r.dist[v] = newDist
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// nodeItem is a vertex and its tentative distance from the source.
type nodeItem struct {
	id   core.NodeID
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then by id.
// Outdated entries stay in the heap and are skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id.Less(pq[j].id)
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
