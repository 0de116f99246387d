// Package cost turns a pair of sample positions into an edge weight for the
// layered stage graph.
//
// Two modes are selected once per query:
//
//   - Distance: Weight = Dist = ‖a − b‖.
//   - TimeThenDistance: Time = max(Dist/speed, dwell[leg]) and
//     Weight = Time·M + Dist, where M is 1.2× the diagonal of a box enclosing
//     every point a route can touch. Because no single edge can be longer than
//     that diagonal, a shortest-path search over Weight ranks routes by total
//     time first and breaks ties by total distance.
//
// Legs are numbered by their source stage: leg 0 runs from the start point to
// the first region, leg N from the last region to the end point, so a query
// with N regions needs N+1 dwell entries.
package cost

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/geotour/geometry"
)

// Sentinel errors for cost model construction.
var (
	// ErrBadSpeed indicates a non-positive or non-finite speed.
	ErrBadSpeed = errors.New("cost: speed must be positive and finite")

	// ErrNegativeDwell indicates a negative or non-finite minimum leg time.
	ErrNegativeDwell = errors.New("cost: dwell times must be non-negative and finite")

	// ErrEmptyBounds indicates that the bounding box for M is empty.
	ErrEmptyBounds = errors.New("cost: bounds are empty")
)

// scaleFactor inflates the diagonal so that M strictly exceeds any edge length.
const scaleFactor = 1.2

// minScale keeps time dominant when every point collapses onto one location.
const minScale = 1.0

// Mode selects how edge weights are derived.
type Mode int

const (
	// Distance weights edges by Euclidean length.
	Distance Mode = iota
	// TimeThenDistance weights edges lexicographically by (time, distance).
	TimeThenDistance
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Distance:
		return "distance"
	case TimeThenDistance:
		return "time-then-distance"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Cost is the evaluated price of one edge.
type Cost struct {
	Dist   float64 // Euclidean length
	Time   float64 // leg time; 0 in Distance mode
	Weight float64 // scalar used by the shortest-path search
}

// Add returns the component-wise sum of c and o.
func (c Cost) Add(o Cost) Cost {
	return Cost{Dist: c.Dist + o.Dist, Time: c.Time + o.Time, Weight: c.Weight + o.Weight}
}

// Model evaluates edge costs. It is immutable after construction and may be
// shared by concurrent readers.
type Model struct {
	mode  Mode
	speed float64
	dwell []float64
	m     float64
}

// NewDistance returns a Distance-mode model.
func NewDistance() *Model {
	return &Model{mode: Distance}
}

// NewTimeThenDistance returns a TimeThenDistance-mode model.
//
// bounds must enclose the start, the end and every region; M is derived from
// its diagonal once here and never changes. dwell is copied.
func NewTimeThenDistance(speed float64, dwell []float64, bounds r2.Rect) (*Model, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadSpeed, speed)
	}
	for i, d := range dwell {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return nil, fmt.Errorf("%w: dwell[%d]=%v", ErrNegativeDwell, i, d)
		}
	}
	if bounds.IsEmpty() {
		return nil, ErrEmptyBounds
	}

	return &Model{
		mode:  TimeThenDistance,
		speed: speed,
		dwell: append([]float64(nil), dwell...),
		m:     math.Max(scaleFactor*geometry.Diagonal(bounds), minScale),
	}, nil
}

// Mode returns the model's mode.
func (m *Model) Mode() Mode { return m.mode }

// M returns the time scaling constant (0 in Distance mode).
func (m *Model) M() float64 { return m.m }

// Speed returns the travel speed (0 in Distance mode).
func (m *Model) Speed() float64 { return m.speed }

// Legs returns the number of dwell entries (0 in Distance mode).
func (m *Model) Legs() int { return len(m.dwell) }

// Edge prices the move from a to b on the given leg. Legs without a dwell
// entry are treated as having no minimum time.
func (m *Model) Edge(leg int, a, b r2.Point) Cost {
	d := geometry.Distance(a, b)
	if m.mode == Distance {
		return Cost{Dist: d, Weight: d}
	}

	t := d / m.speed
	if leg >= 0 && leg < len(m.dwell) && m.dwell[leg] > t {
		t = m.dwell[leg]
	}

	return Cost{Dist: d, Time: t, Weight: t*m.m + d}
}
