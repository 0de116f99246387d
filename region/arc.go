package region

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/katalvlaran/geotour/geometry"
)

// Arc is the part of a circle swept counter-clockwise from StartDeg to EndDeg.
//
// By convention StartDeg < EndDeg; an arc that crosses the 0° reference keeps
// going past 360 (e.g. 350→370). NewArc applies that normalization, and every
// method treats EndDeg < StartDeg the same way.
type Arc struct {
	Center   r2.Point
	Radius   float64
	StartDeg float64
	EndDeg   float64
}

// NewArc returns an arc, bumping endDeg by 360 when it lies below startDeg.
func NewArc(center r2.Point, radius, startDeg, endDeg float64) *Arc {
	if endDeg < startDeg {
		endDeg += 360
	}

	return &Arc{Center: center, Radius: radius, StartDeg: startDeg, EndDeg: endDeg}
}

func (*Arc) sealed() {}

// Kind returns KindArc.
func (*Arc) Kind() Kind { return KindArc }

// span returns the normalized [start, end] angles.
func (a *Arc) span() (float64, float64) {
	if a.EndDeg < a.StartDeg {
		return a.StartDeg, a.EndDeg + 360
	}

	return a.StartDeg, a.EndDeg
}

// Sweep returns the swept angle in degrees.
func (a *Arc) Sweep() float64 {
	s, e := a.span()
	return e - s
}

// Validate rejects non-finite values, non-positive radii and empty or
// over-wide sweeps.
func (a *Arc) Validate() error {
	if !geometry.IsFinite(a.Center) {
		return ErrNonFinite
	}
	for _, v := range []float64{a.Radius, a.StartDeg, a.EndDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	if a.Radius <= 0 {
		return ErrZeroRadius
	}
	sweep := a.Sweep()
	if sweep <= geomTol {
		return ErrEmptyArc
	}
	if sweep > 360+geomTol {
		return ErrArcTooWide
	}

	return nil
}

// Period is 0: an arc is an open chain.
func (*Arc) Period() float64 { return 0 }

// PointAt returns the point at absolute angle deg. Angles outside
// [StartDeg, EndDeg] are not clamped.
func (a *Arc) PointAt(deg float64) r2.Point {
	return polar(a.Center, a.Radius, deg)
}

// Start returns the first endpoint of the arc.
func (a *Arc) Start() r2.Point {
	s, _ := a.span()
	return a.PointAt(s)
}

// End returns the last endpoint of the arc.
func (a *Arc) End() r2.Point {
	_, e := a.span()
	return a.PointAt(e)
}

// Bounds returns the tight bounding box: both endpoints plus every axis
// extreme (multiples of 90°) the sweep passes.
func (a *Arc) Bounds() r2.Rect {
	s, e := a.span()
	r := geometry.Bounds(a.PointAt(s), a.PointAt(e))
	for q := math.Ceil(s/90) * 90; q <= e; q += 90 {
		r = r.AddPoint(a.PointAt(q))
	}

	return r
}

// Contains reports whether p lies on the arc curve.
func (a *Arc) Contains(p r2.Point) bool {
	const onCurveTol = 1e-9
	if math.Abs(geometry.Distance(a.Center, p)-a.Radius) > onCurveTol {
		return false
	}

	return a.containsAngle(heading(a.Center, p))
}

// containsAngle reports whether deg (any range) falls within the sweep.
func (a *Arc) containsAngle(deg float64) bool {
	s, e := a.span()
	d := math.Mod(deg-s, 360)
	if d < 0 {
		d += 360
	}

	return d <= e-s+geomTol
}

// heading returns the angle of p seen from center, in degrees within (-180, 180].
func heading(center, p r2.Point) float64 {
	return s1.Angle(math.Atan2(p.Y-center.Y, p.X-center.X)).Degrees()
}
