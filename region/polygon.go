package region

import (
	"fmt"
	"sort"
	"sync"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/geotour/geometry"
)

// Polygon is a closed vertex loop. Vertices are listed once; the edge from the
// last vertex back to the first is implicit.
//
// The boundary parameter is arc length measured from Vertices[0] along the
// listed order, so vertex i sits at the cumulative length of edges 0..i-1.
//
// Edge lengths are computed once, on first use, and cached. Use a Polygon
// through its pointer only and do not change Vertices after first use; build
// a new one with NewPolygon instead. NewPolygon copies its input, so editing
// the caller's slice afterwards is safe.
type Polygon struct {
	Vertices []r2.Point

	once sync.Once
	cum  []float64 // cum[i] = arc length at vertex i; cum[n] = perimeter
}

// NewPolygon returns a polygon over a copy of vertices.
func NewPolygon(vertices ...r2.Point) *Polygon {
	p := &Polygon{Vertices: append([]r2.Point(nil), vertices...)}
	p.lengths()

	return p
}

func (*Polygon) sealed() {}

// Kind returns KindPolygon.
func (*Polygon) Kind() Kind { return KindPolygon }

// lengths returns the cumulative edge lengths, computing them once.
func (p *Polygon) lengths() []float64 {
	p.once.Do(func() {
		n := len(p.Vertices)
		p.cum = make([]float64, n+1)
		for i := 0; i < n; i++ {
			p.cum[i+1] = p.cum[i] + geometry.Distance(p.Vertices[i], p.Vertices[(i+1)%n])
		}
	})

	return p.cum
}

// Validate rejects polygons that cannot be sampled meaningfully.
//
// Steps:
//  1. At least 3 vertices, all finite.
//  2. No coincident consecutive vertices (including last→first).
//  3. Non-zero signed area.
//  4. No two non-adjacent edges intersect.
//
// Complexity: O(n²) for the pairwise edge test.
func (p *Polygon) Validate() error {
	n := len(p.Vertices)
	if n < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}

	var i, j int
	for i = 0; i < n; i++ {
		if !geometry.IsFinite(p.Vertices[i]) {
			return fmt.Errorf("%w: vertex %d", ErrNonFinite, i)
		}
	}
	for i = 0; i < n; i++ {
		j = (i + 1) % n
		if geometry.Distance(p.Vertices[i], p.Vertices[j]) <= geomTol {
			return fmt.Errorf("%w: vertices %d and %d", ErrCoincidentVertices, i, j)
		}
	}

	area := geometry.SignedArea(p.Vertices)
	if area <= geomTol && area >= -geomTol {
		return ErrZeroArea
	}

	// Edge i runs Vertices[i]→Vertices[i+1]. Adjacent edges share a vertex and
	// are skipped; so are edge 0 and edge n-1.
	for i = 0; i < n; i++ {
		for j = i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if geometry.SegmentsIntersect(p.Vertices[i], p.Vertices[(i+1)%n], p.Vertices[j], p.Vertices[(j+1)%n]) {
				return fmt.Errorf("%w: edges %d and %d", ErrSelfIntersecting, i, j)
			}
		}
	}

	return nil
}

// Period returns the perimeter.
func (p *Polygon) Period() float64 {
	cum := p.lengths()
	return cum[len(cum)-1]
}

// VertexParams returns the boundary parameter of every vertex, in order.
func (p *Polygon) VertexParams() []float64 {
	cum := p.lengths()
	return append([]float64(nil), cum[:len(cum)-1]...)
}

// PointAt returns the boundary point at arc length t (taken modulo the perimeter).
// At a vertex parameter it returns the vertex itself.
func (p *Polygon) PointAt(t float64) r2.Point {
	var (
		cum       = p.lengths()
		n         = len(p.Vertices)
		perimeter = cum[n]
	)
	if n == 0 {
		return r2.Point{}
	}
	if perimeter <= 0 {
		return p.Vertices[0]
	}
	for t < 0 {
		t += perimeter
	}
	for t >= perimeter {
		t -= perimeter
	}

	// First edge whose end lies beyond t.
	e := sort.Search(n, func(i int) bool { return cum[i+1] > t })
	if e == n {
		return p.Vertices[0]
	}

	a, b := p.Vertices[e], p.Vertices[(e+1)%n]
	length := cum[e+1] - cum[e]
	frac := (t - cum[e]) / length

	return a.Add(b.Sub(a).Mul(frac))
}

// Bounds returns the bounding box of the vertices.
func (p *Polygon) Bounds() r2.Rect {
	return geometry.Bounds(p.Vertices...)
}

// Contains reports whether pt lies inside the polygon or on its boundary.
func (p *Polygon) Contains(pt r2.Point) bool {
	return geometry.PointInPolygon(pt, p.Vertices)
}
