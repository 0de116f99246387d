// Package stagegraph builds the layered graph a touring query searches.
//
// Stage 0 holds the start point, stages 1..N hold the current samples of each
// region ring in visiting order, and stage N+1 holds the end point. Edges only
// connect stage i to stage i+1, priced by a cost.Model on leg i and memoized
// in a per-query Cache.
//
// The graph is built in full once and then extended: each refinement offers
// edges between the ring neighborhoods of consecutive waypoints on the current
// best path. Offering an edge that already exists is a no-op, so the previous
// best path always survives into the next graph.
//
// Errors:
//
//	ErrNilModel  – New called without a cost model.
//	ErrNilRing   – a region ring is nil or empty.
//	ErrBadPath   – Extend got a path that does not visit every stage once in order.
//	ErrBadStage  – Position got a stage or key outside the builder.
//	ErrBadFilter – MinDist is negative or NaN.
package stagegraph

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/geotour/cost"
)

// Sentinel errors for stage graph construction.
var (
	ErrNilModel  = errors.New("stagegraph: cost model is nil")
	ErrNilRing   = errors.New("stagegraph: region ring is nil or empty")
	ErrBadPath   = errors.New("stagegraph: path does not visit every stage in order")
	ErrBadStage  = errors.New("stagegraph: stage or key out of range")
	ErrBadFilter = errors.New("stagegraph: edge filter MinDist must be non-negative")
)

// DefaultMinDist is the distance below which DropShort discards an edge.
const DefaultMinDist = 0.005

// DefaultRadius is the ring neighborhood radius used by Extend: the touched
// sample plus two samples on each side.
const DefaultRadius = 2

// FilterPolicy selects what happens to very short edges.
type FilterPolicy int

const (
	// KeepShort keeps every edge at its computed cost.
	KeepShort FilterPolicy = iota
	// DropShort omits edges whose distance is below MinDist.
	DropShort
)

// String returns the policy name.
func (p FilterPolicy) String() string {
	switch p {
	case KeepShort:
		return "keep-short"
	case DropShort:
		return "drop-short"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// EdgeFilter decides, uniformly for every leg, which candidate edges enter
// the graph.
type EdgeFilter struct {
	Policy  FilterPolicy
	MinDist float64
}

// DefaultEdgeFilter keeps short edges, with MinDist preset for DropShort.
func DefaultEdgeFilter() EdgeFilter {
	return EdgeFilter{Policy: KeepShort, MinDist: DefaultMinDist}
}

// Validate reports ErrBadFilter for an unusable MinDist.
func (f EdgeFilter) Validate() error {
	if math.IsNaN(f.MinDist) || f.MinDist < 0 {
		return fmt.Errorf("%w: got %v", ErrBadFilter, f.MinDist)
	}

	return nil
}

// keep reports whether an edge with cost c passes the filter.
func (f EdgeFilter) keep(c cost.Cost) bool {
	return f.Policy != DropShort || c.Dist >= f.MinDist
}

// Rebuild selects how the graph grows after each refinement.
type Rebuild int

const (
	// RebuildNeighborhood connects only ring neighborhoods of the current path.
	RebuildNeighborhood Rebuild = iota
	// RebuildFull reconnects every adjacent stage pair.
	RebuildFull
)

// String returns the strategy name.
func (r Rebuild) String() string {
	switch r {
	case RebuildNeighborhood:
		return "neighborhood"
	case RebuildFull:
		return "full"
	default:
		return fmt.Sprintf("rebuild(%d)", int(r))
	}
}

// Config carries builder settings.
type Config struct {
	Filter EdgeFilter
}

// DefaultConfig returns the builder defaults.
func DefaultConfig() Config {
	return Config{Filter: DefaultEdgeFilter()}
}
