package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Eps is the absolute tolerance used by orientation tests.
const Eps = 1e-12

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// IsFinite reports whether both coordinates of p are finite numbers.
func IsFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// orientation returns the sign of the cross product (b-a)×(c-a):
// +1 for a counter-clockwise turn, -1 for clockwise, 0 when collinear within Eps.
func orientation(a, b, c r2.Point) int {
	v := b.Sub(a).Cross(c.Sub(a))
	switch {
	case v > Eps:
		return 1
	case v < -Eps:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether c, already known to be collinear with a-b,
// lies within the bounding box of segment a-b.
func onSegment(a, b, c r2.Point) bool {
	return math.Min(a.X, b.X)-Eps <= c.X && c.X <= math.Max(a.X, b.X)+Eps &&
		math.Min(a.Y, b.Y)-Eps <= c.Y && c.Y <= math.Max(a.Y, b.Y)+Eps
}

// SegmentsIntersect reports whether the closed segments p1-p2 and q1-q2 share
// at least one point. Touching endpoints and collinear overlaps count.
func SegmentsIntersect(p1, p2, q1, q2 r2.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	// General case: endpoints of each segment straddle the other.
	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear special cases.
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}

	return false
}

// PointInPolygon reports whether p lies inside poly or on its boundary.
// poly is an implicitly closed vertex loop in either orientation.
//
// Ray casting along +X; points on an edge are detected first so the
// boundary is treated as inside.
func PointInPolygon(p r2.Point, poly []r2.Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	var (
		inside bool
		a, b   r2.Point
		i, j   int
	)
	for i, j = 0, n-1; i < n; j, i = i, i+1 {
		a, b = poly[j], poly[i]
		if orientation(a, b, p) == 0 && onSegment(a, b, p) {
			return true
		}
		if (b.Y > p.Y) != (a.Y > p.Y) {
			xCross := (a.X-b.X)*(p.Y-b.Y)/(a.Y-b.Y) + b.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}

	return inside
}

// SignedArea returns the shoelace area of poly: positive for counter-clockwise
// vertex order, negative for clockwise.
func SignedArea(poly []r2.Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var s float64
	for i := 0; i < n; i++ {
		s += poly[i].Cross(poly[(i+1)%n])
	}

	return s / 2
}

// Bounds returns the smallest axis-aligned rectangle containing pts,
// or r2.EmptyRect() when pts is empty.
func Bounds(pts ...r2.Point) r2.Rect {
	r := r2.EmptyRect()
	for _, p := range pts {
		r = r.AddPoint(p)
	}

	return r
}

// Diagonal returns the length of r's diagonal, 0 for an empty rectangle.
func Diagonal(r r2.Rect) float64 {
	if r.IsEmpty() {
		return 0
	}

	return r.Size().Norm()
}
