package region

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/katalvlaran/geotour/geometry"
)

// Circle is a disk; routes touch its boundary circle.
type Circle struct {
	Center r2.Point
	Radius float64
}

// NewCircle returns a circle with the given center and radius.
func NewCircle(center r2.Point, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

func (*Circle) sealed() {}

// Kind returns KindCircle.
func (*Circle) Kind() Kind { return KindCircle }

// Validate rejects non-finite input and non-positive radii.
func (c *Circle) Validate() error {
	if !geometry.IsFinite(c.Center) || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return ErrNonFinite
	}
	if c.Radius <= 0 {
		return ErrZeroRadius
	}

	return nil
}

// Period is 360: the boundary parameter is an angle in degrees.
func (*Circle) Period() float64 { return 360 }

// PointAt returns the boundary point at deg degrees, measured counter-clockwise from +X.
func (c *Circle) PointAt(deg float64) r2.Point {
	return polar(c.Center, c.Radius, deg)
}

// Bounds returns the circle's bounding square.
func (c *Circle) Bounds() r2.Rect {
	d := r2.Point{X: c.Radius, Y: c.Radius}
	return r2.RectFromPoints(c.Center.Sub(d), c.Center.Add(d))
}

// Contains reports whether p lies in the closed disk.
func (c *Circle) Contains(p r2.Point) bool {
	return geometry.Distance(c.Center, p) <= c.Radius+geomTol
}

// polar returns center + radius·(cos deg, sin deg).
func polar(center r2.Point, radius, deg float64) r2.Point {
	rad := (s1.Angle(deg) * s1.Degree).Radians()
	return r2.Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}
