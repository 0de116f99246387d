// Package tour finds a short route from a start point through an ordered list
// of regions to an end point, touching each region's boundary once.
//
// Solve discretizes every region boundary into a ring of samples, builds a
// layered graph (start, one stage per region, end) and runs Dijkstra over it.
// It then refines the rings around the waypoints of the best path, grows the
// graph around them and searches again, until two successive path costs
// differ by at most AdaptErr. The graph only ever grows, so the sequence of
// costs is non-increasing.
//
// Errors:
//
//	ErrNonFinitePoint  – start or end has a NaN/Inf coordinate.
//	ErrBadLOD          – LOD is 1 or negative.
//	ErrBadTolerance    – AdaptErr is negative or NaN.
//	ErrBadMaxIter      – MaxIter < 1.
//	ErrBadNeighborhood – NeighborhoodRadius < 1.
//	ErrBadRebuild      – unknown rebuild strategy.
//	ErrBadMode         – unknown cost mode.
//	ErrBadSpeed        – TimeThenDistance speed not positive and finite.
//	ErrDwellLength     – len(Dwell) != len(regions)+1 in TimeThenDistance mode.
//	ErrInternal        – graph construction bug (wraps ring.ErrStaleKey or dijkstra.ErrNoPath).
//
// Degenerate regions are reported as *region.Error naming the region index.
// Running out of iterations or hitting the context deadline is not an error:
// Result.Converged is false and Result.Stop says why.
package tour

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
)

// Sentinel errors for Solve.
var (
	ErrNonFinitePoint  = errors.New("tour: start or end point is not finite")
	ErrBadLOD          = errors.New("tour: lod must be 0 (default) or at least 2")
	ErrBadTolerance    = errors.New("tour: adaptErr must be non-negative")
	ErrBadMaxIter      = errors.New("tour: maxIter must be at least 1")
	ErrBadNeighborhood = errors.New("tour: neighborhood radius must be at least 1")
	ErrBadRebuild      = errors.New("tour: unknown rebuild strategy")
	ErrBadMode         = errors.New("tour: unknown cost mode")
	ErrBadSpeed        = errors.New("tour: speed must be positive and finite")
	ErrDwellLength     = errors.New("tour: dwell length must equal regions+1")
	ErrInternal        = errors.New("tour: internal consistency error")
)

// StopReason says why the refinement loop ended.
type StopReason int

const (
	// StopConverged means two successive costs were within AdaptErr.
	StopConverged StopReason = iota
	// StopMaxIter means MaxIter refinements ran without converging.
	StopMaxIter
	// StopDeadline means the context ended between iterations.
	StopDeadline
)

// String returns the reason name.
func (s StopReason) String() string {
	switch s {
	case StopConverged:
		return "converged"
	case StopMaxIter:
		return "max-iter"
	case StopDeadline:
		return "deadline"
	default:
		return fmt.Sprintf("stop(%d)", int(s))
	}
}

// Visit describes where the route touches one region.
type Visit struct {
	Region int      // index into the regions slice
	Param  float64  // boundary parameter of the touch point
	Point  r2.Point // touch point
}

// Result is the best route found.
type Result struct {
	Points     []r2.Point // start, one touch point per region, end
	Visits     []Visit    // touch points with their boundary parameters
	Distance   float64    // total Euclidean length
	Time       float64    // total time (TimeThenDistance mode only)
	Cost       float64    // shortest-path weight the loop converged on
	Costs      []float64  // C0, C1, … one entry per search
	Iterations int        // refinements performed
	Converged  bool
	Stop       StopReason
	Samples    int // live samples across all rings at the end
	Edges      int // stage graph edges at the end
}
