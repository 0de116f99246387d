// Package region defines the convex touring regions a route must visit and
// the boundary sampler that discretizes them into refinable rings.
//
// A Region is a sealed sum type with three variants:
//
//   - *Circle:  center and radius; boundary parameter is the angle in degrees, [0, 360).
//   - *Polygon: closed vertex loop; boundary parameter is arc length from vertex 0.
//   - *Arc:     counter-clockwise circular arc from StartDeg to EndDeg, wrapping
//     through 0° when EndDeg < StartDeg; boundary parameter is the absolute angle
//     in degrees. Arcs are open.
//
// Every variant implements ring.Boundary, so SampleBoundary can turn any of
// them into a *ring.Ring, and the ring can place new samples anywhere on the
// boundary during refinement.
//
// Errors:
//
//	ErrNilRegion          - a nil Region was supplied.
//	ErrNonFinite          - a coordinate, radius or angle is NaN or infinite.
//	ErrZeroRadius         - circle or arc radius ≤ 0.
//	ErrTooFewVertices     - polygon with fewer than 3 vertices.
//	ErrCoincidentVertices - two consecutive polygon vertices coincide.
//	ErrZeroArea           - polygon vertices are collinear.
//	ErrSelfIntersecting   - two non-adjacent polygon edges intersect.
//	ErrEmptyArc           - arc with zero sweep.
//	ErrArcTooWide         - arc sweep above 360°.
//	ErrBadLOD             - level of detail below 2 for a circle or arc.
//
// Validation failures for a region at a known position in a visiting sequence
// are reported as *Error, which carries the index and unwraps to the sentinel.
package region

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/geotour/ring"
)

// Sentinel errors for region validation and sampling.
var (
	ErrNilRegion          = errors.New("region: region is nil")
	ErrNonFinite          = errors.New("region: non-finite value")
	ErrZeroRadius         = errors.New("region: radius must be positive")
	ErrTooFewVertices     = errors.New("region: polygon needs at least 3 vertices")
	ErrCoincidentVertices = errors.New("region: coincident consecutive vertices")
	ErrZeroArea           = errors.New("region: polygon has zero area")
	ErrSelfIntersecting   = errors.New("region: polygon is self-intersecting")
	ErrEmptyArc           = errors.New("region: arc sweep is zero")
	ErrArcTooWide         = errors.New("region: arc sweep exceeds 360 degrees")
	ErrBadLOD             = errors.New("region: level of detail must be at least 2")
)

// geomTol is the absolute tolerance for coincident points and zero areas.
const geomTol = 1e-12

// Kind tags the Region variant.
type Kind int

// KindUnknown tags a missing (nil) region in an *Error.
const KindUnknown Kind = -1

const (
	// KindCircle tags *Circle.
	KindCircle Kind = iota
	// KindPolygon tags *Polygon.
	KindPolygon
	// KindArc tags *Arc.
	KindArc
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	case KindArc:
		return "arc"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Region is a convex shape whose boundary a route must touch.
// The interface is sealed: only *Circle, *Polygon and *Arc implement it.
type Region interface {
	ring.Boundary

	// Kind reports the variant.
	Kind() Kind

	// Validate reports degenerate geometry with one of the package sentinels.
	Validate() error

	// Bounds returns an axis-aligned box containing the boundary.
	Bounds() r2.Rect

	// Contains reports whether p lies in the closed region (on the curve, for arcs).
	Contains(p r2.Point) bool

	sealed()
}

// Error reports a validation failure for the region at Index of a visiting sequence.
type Error struct {
	Index int
	Kind  Kind
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("region %d (%s): %v", e.Index, e.Kind, e.Err)
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *Error) Unwrap() error { return e.Err }

// ValidateAll validates regions in order and returns the first failure as *Error.
func ValidateAll(regions []Region) error {
	for i, r := range regions {
		if r == nil {
			return &Error{Index: i, Kind: KindUnknown, Err: ErrNilRegion}
		}
		if err := r.Validate(); err != nil {
			return &Error{Index: i, Kind: r.Kind(), Err: err}
		}
	}

	return nil
}
