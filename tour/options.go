package tour

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/geotour/cost"
	"github.com/katalvlaran/geotour/stagegraph"
)

// Default settings used by DefaultOptions.
const (
	// DefaultAdaptErr is the convergence tolerance on successive path costs.
	DefaultAdaptErr = 0.01
	// DefaultMaxIter caps the number of refinement iterations.
	DefaultMaxIter = 200
	// DefaultSpeed is the travel speed used in TimeThenDistance mode.
	DefaultSpeed = 1.0
)

// Iteration is reported to Options.OnIteration after every refinement.
type Iteration struct {
	Index   int     // 1-based refinement count
	Cost    float64 // shortest-path weight after this refinement
	Delta   float64 // previous cost minus Cost (never negative)
	Samples int     // live samples across all rings
	Edges   int     // edges in the stage graph
	Added   int     // edges added by this refinement
}

// Options configures Solve.
//
// LOD                – initial samples per circle or arc; 0 picks the per-kind default.
// AdaptErr           – stop once successive costs differ by at most this much.
// MaxIter            – refinement cap; reaching it returns an unconverged result.
// Mode               – cost.Distance or cost.TimeThenDistance.
// Speed, Dwell       – TimeThenDistance parameters; len(Dwell) must be regions+1.
// Rebuild            – how the graph grows after each refinement.
// NeighborhoodRadius – ring radius connected around each waypoint (2 ⇒ 5 samples).
// EdgeFilter         – short-edge policy applied to every leg.
// Logger             – structured logger; nil means silent.
// OnIteration        – optional observer, called synchronously.
type Options struct {
	LOD                int
	AdaptErr           float64
	MaxIter            int
	Mode               cost.Mode
	Speed              float64
	Dwell              []float64
	Rebuild            stagegraph.Rebuild
	NeighborhoodRadius int
	EdgeFilter         stagegraph.EdgeFilter
	Logger             *zap.Logger
	OnIteration        func(Iteration)
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// DefaultOptions returns the defaults: per-kind LOD, AdaptErr 0.01, MaxIter 200,
// Distance mode, neighborhood rebuild with radius 2, KeepShort filter and a
// no-op logger.
func DefaultOptions() Options {
	return Options{
		AdaptErr:           DefaultAdaptErr,
		MaxIter:            DefaultMaxIter,
		Mode:               cost.Distance,
		Speed:              DefaultSpeed,
		Rebuild:            stagegraph.RebuildNeighborhood,
		NeighborhoodRadius: stagegraph.DefaultRadius,
		EdgeFilter:         stagegraph.DefaultEdgeFilter(),
		Logger:             zap.NewNop(),
	}
}

// WithLOD sets the initial sample count for circles and arcs.
func WithLOD(lod int) Option {
	return func(o *Options) { o.LOD = lod }
}

// WithAdaptErr sets the convergence tolerance.
func WithAdaptErr(eps float64) Option {
	return func(o *Options) { o.AdaptErr = eps }
}

// WithMaxIter sets the refinement cap.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.MaxIter = n }
}

// WithDistance selects Distance mode.
func WithDistance() Option {
	return func(o *Options) { o.Mode = cost.Distance }
}

// WithTimeThenDistance selects TimeThenDistance mode with the given speed and
// per-leg minimum times. dwell is copied.
func WithTimeThenDistance(speed float64, dwell []float64) Option {
	return func(o *Options) {
		o.Mode = cost.TimeThenDistance
		o.Speed = speed
		o.Dwell = append([]float64(nil), dwell...)
	}
}

// WithRebuild selects the graph growth strategy.
func WithRebuild(r stagegraph.Rebuild) Option {
	return func(o *Options) { o.Rebuild = r }
}

// WithNeighborhoodRadius sets the ring radius used by neighborhood rebuilds.
func WithNeighborhoodRadius(r int) Option {
	return func(o *Options) { o.NeighborhoodRadius = r }
}

// WithEdgeFilter sets the short-edge policy.
func WithEdgeFilter(f stagegraph.EdgeFilter) Option {
	return func(o *Options) { o.EdgeFilter = f }
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnIteration installs an observer called after every refinement.
func WithOnIteration(fn func(Iteration)) Option {
	return func(o *Options) { o.OnIteration = fn }
}

// validate checks o against a query over n regions.
func (o *Options) validate(n int) error {
	if o.LOD != 0 && o.LOD < 2 {
		return fmt.Errorf("%w: got %d", ErrBadLOD, o.LOD)
	}
	if math.IsNaN(o.AdaptErr) || o.AdaptErr < 0 {
		return fmt.Errorf("%w: got %v", ErrBadTolerance, o.AdaptErr)
	}
	if o.MaxIter < 1 {
		return fmt.Errorf("%w: got %d", ErrBadMaxIter, o.MaxIter)
	}
	if o.NeighborhoodRadius < 1 {
		return fmt.Errorf("%w: got %d", ErrBadNeighborhood, o.NeighborhoodRadius)
	}
	if o.Rebuild != stagegraph.RebuildNeighborhood && o.Rebuild != stagegraph.RebuildFull {
		return fmt.Errorf("%w: %s", ErrBadRebuild, o.Rebuild)
	}
	if err := o.EdgeFilter.Validate(); err != nil {
		return err
	}

	switch o.Mode {
	case cost.Distance:
	case cost.TimeThenDistance:
		if math.IsNaN(o.Speed) || math.IsInf(o.Speed, 0) || o.Speed <= 0 {
			return fmt.Errorf("%w: got %v", ErrBadSpeed, o.Speed)
		}
		if len(o.Dwell) != n+1 {
			return fmt.Errorf("%w: got %d dwell times for %d regions, want %d", ErrDwellLength, len(o.Dwell), n, n+1)
		}
	default:
		return fmt.Errorf("%w: %s", ErrBadMode, o.Mode)
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return nil
}
