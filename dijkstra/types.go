package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/geotour/core"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNoSource indicates that no Source option was supplied.
	ErrNoSource = errors.New("dijkstra: source vertex not set")

	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrSourceNotFound indicates that the source vertex does not exist in the graph.
	ErrSourceNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was encountered.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates a negative or NaN MaxDistance.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrNoPath indicates that the destination is unreachable from the source.
	ErrNoPath = errors.New("dijkstra: no path to destination")
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source           – starting vertex (required, must be present in the graph).
// ReturnPath       – if true, return the predecessor map; otherwise prev is nil.
// MaxDistance      – vertices whose distance would exceed this are not explored.
//
//	Must be ≥ 0. Default is +Inf (no cap).
//
// Target           – if set, the search stops as soon as Target is settled.
type Options struct {
	Source      core.NodeID
	ReturnPath  bool
	MaxDistance float64
	Target      core.NodeID

	hasSource bool
	hasTarget bool
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting vertex. It must be supplied.
func Source(id core.NodeID) Option {
	return func(o *Options) {
		o.Source = id
		o.hasSource = true
	}
}

// WithReturnPath enables generation of the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance caps exploration at max. Negative values make Dijkstra
// return ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithTarget stops the search once id has been settled. Distances of vertices
// not yet settled at that point are upper bounds, not final values.
func WithTarget(id core.NodeID) Option {
	return func(o *Options) {
		o.Target = id
		o.hasTarget = true
	}
}

// DefaultOptions returns an Options struct initialized with defaults for src.
//
// Defaults:
//   - ReturnPath:  false.
//   - MaxDistance: +Inf.
//   - Target:      none.
func DefaultOptions(src core.NodeID) Options {
	return Options{
		Source:      src,
		hasSource:   true,
		MaxDistance: math.Inf(1),
	}
}

// Path is one shortest route from a source to a destination.
type Path struct {
	Nodes []core.NodeID // source first, destination last
	Cost  float64       // sum of edge weights along Nodes
}
