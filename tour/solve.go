package tour

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"

	"github.com/katalvlaran/geotour/cost"
	"github.com/katalvlaran/geotour/dijkstra"
	"github.com/katalvlaran/geotour/geometry"
	"github.com/katalvlaran/geotour/region"
	"github.com/katalvlaran/geotour/ring"
	"github.com/katalvlaran/geotour/stagegraph"
)

// Solve returns a route from start through every region, in order, to end.
//
// Steps:
//  1. Validate options, endpoints and every region before any work.
//  2. Sample each boundary into a ring and build the full stage graph.
//  3. Search it (cost C0).
//  4. Repeat until |C1−C0| ≤ AdaptErr, MaxIter is reached or ctx ends:
//     refine every ring around its waypoint, grow the graph, search again (C1).
//
// ctx is checked between iterations only; expiry returns the best route so
// far with Stop == StopDeadline and a nil error.
//
// Complexity: O(Σ|ring_i|·|ring_{i+1}|) for the first build, then
// O(N·(2r+1)² + (V+E)·log V) per iteration with r = NeighborhoodRadius.
func Solve(ctx context.Context, start, end r2.Point, regions []region.Region, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Eager validation
	if err := cfg.validate(len(regions)); err != nil {
		return Result{}, err
	}
	if !geometry.IsFinite(start) || !geometry.IsFinite(end) {
		return Result{}, fmt.Errorf("%w: start=%v end=%v", ErrNonFinitePoint, start, end)
	}
	if err := region.ValidateAll(regions); err != nil {
		return Result{}, err
	}

	log := cfg.Logger.With(zap.Int("regions", len(regions)), zap.Stringer("mode", cfg.Mode))

	// 2) Cost model; M is fixed here from the full query extent.
	bounds := geometry.Bounds(start, end)
	for _, r := range regions {
		rb := r.Bounds()
		bounds = bounds.AddPoint(rb.Lo()).AddPoint(rb.Hi())
	}
	model, err := newModel(&cfg, bounds)
	if err != nil {
		return Result{}, err
	}

	if len(regions) == 0 {
		return direct(start, end, model, log), nil
	}
	if regions[0].Contains(start) {
		log.Debug("tour: start lies inside the first region")
	}

	s := &solver{cfg: cfg, log: log, regions: regions}
	if err = s.init(start, end, model); err != nil {
		return Result{}, err
	}

	return s.run(ctx)
}

// newModel builds the cost model selected by cfg.
func newModel(cfg *Options, bounds r2.Rect) (*cost.Model, error) {
	if cfg.Mode == cost.Distance {
		return cost.NewDistance(), nil
	}

	m, err := cost.NewTimeThenDistance(cfg.Speed, cfg.Dwell, bounds)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// direct answers a query with no regions: the straight segment start→end.
func direct(start, end r2.Point, model *cost.Model, log *zap.Logger) Result {
	c := model.Edge(0, start, end)
	log.Debug("tour: no regions, direct route", zap.Float64("distance", c.Dist))

	return Result{
		Points:    []r2.Point{start, end},
		Distance:  c.Dist,
		Time:      c.Time,
		Cost:      c.Weight,
		Costs:     []float64{c.Weight},
		Converged: true,
		Stop:      StopConverged,
	}
}

// solver holds the per-query state: rings, builder and the current best path.
type solver struct {
	cfg     Options
	log     *zap.Logger
	regions []region.Region

	rings   []*ring.Ring
	builder *stagegraph.Builder
	path    dijkstra.Path
	costs   []float64
}

// init samples every region, builds the full graph and finds the first path.
func (s *solver) init(start, end r2.Point, model *cost.Model) error {
	s.rings = make([]*ring.Ring, len(s.regions))
	for i, r := range s.regions {
		lod := s.cfg.LOD
		if lod == 0 {
			lod = region.DefaultLOD(r)
		}
		rg, err := region.SampleBoundary(r, lod)
		if err != nil {
			return &region.Error{Index: i, Kind: r.Kind(), Err: err}
		}
		s.rings[i] = rg
	}

	b, err := stagegraph.New(start, end, s.rings, model, stagegraph.Config{Filter: s.cfg.EdgeFilter})
	if err != nil {
		return err
	}
	s.builder = b

	if _, err = b.BuildFull(); err != nil {
		return internal(err)
	}
	if s.path, err = s.search(math.Inf(1)); err != nil {
		return err
	}
	s.costs = append(s.costs, s.path.Cost)

	s.log.Debug("tour: initial path",
		zap.Float64("cost", s.path.Cost),
		zap.Int("samples", s.samples()),
		zap.Int("edges", b.Graph().EdgeCount()),
	)

	return nil
}

// run is the refinement loop.
func (s *solver) run(ctx context.Context) (Result, error) {
	var (
		stop = StopMaxIter
		iter int
	)
	for iter < s.cfg.MaxIter {
		if ctx.Err() != nil {
			stop = StopDeadline
			break
		}
		iter++

		added, err := s.refine()
		if err != nil {
			return Result{}, err
		}
		prev := s.path.Cost
		next, err := s.search(prev)
		if err != nil {
			return Result{}, err
		}

		s.path = next
		s.costs = append(s.costs, next.Cost)

		it := Iteration{
			Index:   iter,
			Cost:    next.Cost,
			Delta:   prev - next.Cost,
			Samples: s.samples(),
			Edges:   s.builder.Graph().EdgeCount(),
			Added:   added,
		}
		s.log.Debug("tour: iteration",
			zap.Int("iter", it.Index),
			zap.Float64("cost", it.Cost),
			zap.Float64("delta", it.Delta),
			zap.Int("samples", it.Samples),
			zap.Int("edges", it.Edges),
		)
		if s.cfg.OnIteration != nil {
			s.cfg.OnIteration(it)
		}

		if math.Abs(next.Cost-prev) <= s.cfg.AdaptErr {
			stop = StopConverged
			break
		}
	}

	res, err := s.result(iter, stop)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("tour: stop",
		zap.Stringer("reason", stop),
		zap.Int("iterations", iter),
		zap.Float64("cost", res.Cost),
		zap.Float64("distance", res.Distance),
	)

	return res, nil
}

// refine inserts samples around every interior waypoint and grows the graph.
// It returns the number of edges added.
func (s *solver) refine() (int, error) {
	for _, id := range s.path.Nodes[1 : len(s.path.Nodes)-1] {
		if _, err := s.rings[id.Stage-1].InsertAround(id.Key); err != nil {
			return 0, internal(err)
		}
	}

	var (
		added int
		err   error
	)
	switch s.cfg.Rebuild {
	case stagegraph.RebuildFull:
		added, err = s.builder.BuildFull()
	default:
		added, err = s.builder.Extend(s.path, s.cfg.NeighborhoodRadius)
	}
	if err != nil {
		return 0, internal(err)
	}

	return added, nil
}

// search runs Dijkstra from the start node to the end node, ignoring routes
// that cost more than bound. The previous best route is never removed from
// the graph, so its cost is always a valid bound.
func (s *solver) search(bound float64) (dijkstra.Path, error) {
	p, err := dijkstra.ShortestPath(s.builder.Graph(), s.builder.StartNode(), s.builder.EndNode(),
		dijkstra.WithMaxDistance(bound))
	if err != nil {
		return dijkstra.Path{}, internal(err)
	}

	return p, nil
}

// result assembles the public Result from the current path.
func (s *solver) result(iter int, stop StopReason) (Result, error) {
	g := s.builder.Graph()
	res := Result{
		Points:     make([]r2.Point, 0, len(s.path.Nodes)),
		Visits:     make([]Visit, 0, len(s.regions)),
		Cost:       s.path.Cost,
		Costs:      s.costs,
		Iterations: iter,
		Converged:  stop == StopConverged,
		Stop:       stop,
		Samples:    s.samples(),
		Edges:      g.EdgeCount(),
	}

	for i, id := range s.path.Nodes {
		p, err := s.builder.Position(id)
		if err != nil {
			return Result{}, internal(err)
		}
		res.Points = append(res.Points, p)

		if i > 0 {
			e, err := g.Edge(s.path.Nodes[i-1], id)
			if err != nil {
				return Result{}, internal(err)
			}
			res.Distance += e.Cost.Dist
			res.Time += e.Cost.Time
		}
		if i > 0 && i < len(s.path.Nodes)-1 {
			sample, err := s.rings[id.Stage-1].Query(id.Key)
			if err != nil {
				return Result{}, internal(err)
			}
			res.Visits = append(res.Visits, Visit{Region: id.Stage - 1, Param: sample.Param, Point: sample.Pos})
		}
	}

	return res, nil
}

// samples counts live samples across every ring.
func (s *solver) samples() int {
	n := 0
	for _, r := range s.rings {
		n += r.Len()
	}

	return n
}

// internal wraps a failure that valid input should never produce.
func internal(err error) error {
	if errors.Is(err, ErrInternal) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrInternal, err)
}
