package region

import (
	"fmt"

	"github.com/katalvlaran/geotour/ring"
)

// Default levels of detail per variant.
const (
	// DefaultCircleLOD is the initial sample count for circles.
	DefaultCircleLOD = 12
	// DefaultArcLOD is the initial sample count for arcs.
	DefaultArcLOD = 6
)

// DefaultLOD returns the initial sample count used for r when the caller does
// not override it. Polygons always start from their vertices.
func DefaultLOD(r Region) int {
	switch v := r.(type) {
	case *Circle:
		return DefaultCircleLOD
	case *Arc:
		return DefaultArcLOD
	case *Polygon:
		return len(v.Vertices)
	default:
		return 0
	}
}

// SampleBoundary validates r and returns a ring holding its initial samples.
//
//   - *Circle:  lod samples at i·360/lod degrees, i = 0..lod-1.
//   - *Arc:     lod samples evenly spaced over [StartDeg, EndDeg], both ends included.
//   - *Polygon: one sample per vertex at its arc-length parameter; lod is ignored.
//
// Circles and arcs need lod ≥ 2 (ErrBadLOD).
func SampleBoundary(r Region, lod int) (*ring.Ring, error) {
	if r == nil {
		return nil, ErrNilRegion
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var params []float64
	switch v := r.(type) {
	case *Circle:
		if lod < 2 {
			return nil, fmt.Errorf("%w: got %d", ErrBadLOD, lod)
		}
		params = make([]float64, lod)
		for i := range params {
			params[i] = float64(i) * 360 / float64(lod)
		}

	case *Arc:
		if lod < 2 {
			return nil, fmt.Errorf("%w: got %d", ErrBadLOD, lod)
		}
		s, e := v.span()
		params = make([]float64, lod)
		for i := range params {
			params[i] = s + float64(i)*(e-s)/float64(lod-1)
		}
		params[lod-1] = e

	case *Polygon:
		params = v.VertexParams()

	default:
		return nil, fmt.Errorf("region: unsupported variant %T", r)
	}

	return ring.New(r, params)
}
