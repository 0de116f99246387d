package region

import (
	"math"

	"github.com/golang/geo/s1"

	"github.com/katalvlaran/geotour/geometry"
)

// ClipArcToCircle returns the parts of arc that lie inside the closed disk c,
// as sub-arcs of the same circle in increasing angle order.
//
// The points of a circle inside a disk always form one angular interval, so
// intersecting it with the arc's sweep yields zero, one or (when the interval
// wraps around the arc's start) two pieces. Pieces shorter than the geometric
// tolerance are dropped. A nil slice means the arc misses the disk.
//
// Complexity: O(1).
func ClipArcToCircle(arc *Arc, c *Circle) ([]*Arc, error) {
	if arc == nil || c == nil {
		return nil, ErrNilRegion
	}
	if err := arc.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		r = arc.Radius
		R = c.Radius
		D = geometry.Distance(arc.Center, c.Center)
	)

	// Whole supporting circle inside the disk: the arc survives unchanged.
	if D+r <= R+geomTol {
		return []*Arc{{Center: arc.Center, Radius: r, StartDeg: arc.StartDeg, EndDeg: arc.EndDeg}}, nil
	}
	// Disjoint, or the disk sits strictly inside the supporting circle.
	if D >= r+R || D+R <= r {
		return nil, nil
	}

	// Angular interval [mid-half, mid+half] of the supporting circle inside the disk.
	mid := heading(arc.Center, c.Center)
	cosHalf := (r*r + D*D - R*R) / (2 * r * D)
	cosHalf = math.Max(-1, math.Min(1, cosHalf))
	half := s1.Angle(math.Acos(cosHalf)).Degrees()

	// Normalize the sweep so that start ∈ [0, 360).
	s, e := arc.span()
	shift := math.Floor(s/360) * 360
	s, e = s-shift, e-shift

	lo, hi := mid-half, mid+half // lo ∈ [-360, 180]
	var out []*Arc
	for k := -1; k <= 2; k++ {
		a := math.Max(s, lo+360*float64(k))
		b := math.Min(e, hi+360*float64(k))
		if b-a <= geomTol {
			continue
		}
		out = append(out, &Arc{Center: arc.Center, Radius: r, StartDeg: a + shift, EndDeg: b + shift})
	}

	return out, nil
}
