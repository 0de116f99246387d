// Package ring implements the refinable sample ring that discretizes one
// region boundary.
//
// A Ring is an arena of samples addressed by dense integer keys. Each sample
// stores the keys of its predecessor and successor; the Nil key marks the two
// ends of an open chain (circular arcs). Closed boundaries (circles, polygons)
// form a proper cycle. Samples are never removed, so a key handed out once
// stays valid for the lifetime of the ring and can be used as a memo key.
//
// Refinement happens through InsertAround, which splices two new samples at the
// parametric midpoints between a sample and its neighbors in O(1).
//
// Complexity:
//
//   - Query, Prev, Next, InsertAround: O(1)
//   - Neighborhood(k, r):             O(r²) worst case (duplicate check on tiny rings)
//   - Traverse, Keys, Check:          O(n)
package ring

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/golang/geo/r2"
)

// Sentinel errors for ring operations.
var (
	// ErrNilBoundary indicates that New was called without a boundary.
	ErrNilBoundary = errors.New("ring: boundary is nil")

	// ErrEmpty indicates that New was called with no parameters.
	ErrEmpty = errors.New("ring: at least one sample is required")

	// ErrBadParam indicates a parameter that is non-finite, out of range,
	// or not strictly increasing.
	ErrBadParam = errors.New("ring: invalid sample parameter")

	// ErrStaleKey indicates a lookup for a key that was never issued.
	ErrStaleKey = errors.New("ring: unknown sample key")

	// ErrBadRadius indicates a negative neighborhood radius.
	ErrBadRadius = errors.New("ring: neighborhood radius must be non-negative")

	// ErrBrokenRing indicates that the prev/next links no longer form a
	// single cycle (closed) or a single chain (open).
	ErrBrokenRing = errors.New("ring: broken links")
)

// Key identifies a sample within its ring. Keys are dense: 0..Len()-1.
type Key int

// Nil is the sentinel key used for a missing neighbor.
const Nil Key = -1

// Boundary is the parameterization a ring samples from.
//
// PointAt maps a boundary parameter to a cartesian position. Period returns
// the parameter length of a closed boundary (360 for a circle in degrees, the
// perimeter for a polygon); an open boundary returns 0.
type Boundary interface {
	PointAt(t float64) r2.Point
	Period() float64
}

// Sample is a point on a region's boundary.
type Sample struct {
	Key   Key      // stable identity
	Param float64  // boundary parameter (degrees or arc length)
	Pos   r2.Point // cartesian position
}

// node is the arena slot backing a Sample.
type node struct {
	Sample
	prev Key
	next Key
}

// Ring is a mutable, grow-only ordered collection of samples.
// A Ring is not safe for concurrent mutation.
type Ring struct {
	boundary Boundary
	period   float64
	nodes    []node
	head     Key
}

// New creates a ring over b with one sample per entry of params, in order.
// params must be finite and strictly increasing; on a closed boundary they
// must also lie in [0, Period).
func New(b Boundary, params []float64) (*Ring, error) {
	if b == nil {
		return nil, ErrNilBoundary
	}
	if len(params) == 0 {
		return nil, ErrEmpty
	}

	period := b.Period()
	r := &Ring{
		boundary: b,
		period:   period,
		nodes:    make([]node, len(params)),
		head:     0,
	}

	n := len(params)
	var i int
	for i = 0; i < n; i++ {
		t := params[i]
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: params[%d]=%v", ErrBadParam, i, t)
		}
		if i > 0 && t <= params[i-1] {
			return nil, fmt.Errorf("%w: params[%d]=%v not above params[%d]=%v", ErrBadParam, i, t, i-1, params[i-1])
		}
		if period > 0 && (t < 0 || t >= period) {
			return nil, fmt.Errorf("%w: params[%d]=%v outside [0,%v)", ErrBadParam, i, t, period)
		}

		r.nodes[i] = node{
			Sample: Sample{Key: Key(i), Param: t, Pos: b.PointAt(t)},
			prev:   Key(i - 1),
			next:   Key(i + 1),
		}
	}

	// Close the loop, or terminate the chain with Nil on both ends.
	if period > 0 {
		r.nodes[0].prev = Key(n - 1)
		r.nodes[n-1].next = 0
	} else {
		r.nodes[0].prev = Nil
		r.nodes[n-1].next = Nil
	}

	return r, nil
}

// Len returns the number of live samples.
func (r *Ring) Len() int { return len(r.nodes) }

// Closed reports whether the ring is a cycle rather than an open chain.
func (r *Ring) Closed() bool { return r.period > 0 }

// Head returns the key traversal starts from.
func (r *Ring) Head() Key { return r.head }

// Boundary returns the parameterization the ring samples from.
func (r *Ring) Boundary() Boundary { return r.boundary }

// valid reports whether k addresses a live sample.
func (r *Ring) valid(k Key) bool { return k >= 0 && int(k) < len(r.nodes) }

// Query returns the sample stored under k.
func (r *Ring) Query(k Key) (Sample, error) {
	if !r.valid(k) {
		return Sample{}, fmt.Errorf("%w: %d", ErrStaleKey, k)
	}

	return r.nodes[k].Sample, nil
}

// Prev returns the key preceding k, or Nil at the start of an open chain.
func (r *Ring) Prev(k Key) (Key, error) {
	if !r.valid(k) {
		return Nil, fmt.Errorf("%w: %d", ErrStaleKey, k)
	}

	return r.nodes[k].prev, nil
}

// Next returns the key following k, or Nil at the end of an open chain.
func (r *Ring) Next(k Key) (Key, error) {
	if !r.valid(k) {
		return Nil, fmt.Errorf("%w: %d", ErrStaleKey, k)
	}

	return r.nodes[k].next, nil
}

// InsertAround refines the ring around sample k. It creates one sample at the
// parametric midpoint between k and its predecessor and one between k and its
// successor, splices both in, and returns the new keys (0, 1 or 2 of them).
//
// A neighbor that is missing (open chain end) or that is k itself (single
// sample ring) is skipped. Existing keys and their positions are untouched.
func (r *Ring) InsertAround(k Key) ([]Key, error) {
	if !r.valid(k) {
		return nil, fmt.Errorf("%w: %d", ErrStaleKey, k)
	}

	var (
		cur     = r.nodes[k]
		hasPrev = cur.prev != Nil && cur.prev != k
		hasNext = cur.next != Nil && cur.next != k
		tPrev   float64
		tNext   float64
	)

	// Both midpoints are computed before any splice so that the two-sample
	// case (prev == next) sees the original neighbor on both sides.
	if hasPrev {
		tPrev = r.midBefore(r.nodes[cur.prev].Param, cur.Param)
	}
	if hasNext {
		tNext = r.midAfter(cur.Param, r.nodes[cur.next].Param)
	}

	added := make([]Key, 0, 2)
	if hasPrev {
		added = append(added, r.splice(cur.prev, k, tPrev))
	}
	if hasNext {
		// Re-read: the previous splice may have rewritten k.prev only.
		added = append(added, r.splice(k, r.nodes[k].next, tNext))
	}

	return added, nil
}

// midBefore returns the midpoint parameter walking backwards from t to its
// predecessor tp, wrapping across the period seam of a closed ring.
func (r *Ring) midBefore(tp, t float64) float64 {
	if r.period > 0 && tp >= t {
		tp -= r.period
	}
	mid := (tp + t) / 2
	if r.period > 0 && mid < 0 {
		mid += r.period
	}

	return mid
}

// midAfter returns the midpoint parameter walking forwards from t to its
// successor tn, wrapping across the period seam of a closed ring.
func (r *Ring) midAfter(t, tn float64) float64 {
	if r.period > 0 && tn <= t {
		tn += r.period
	}
	mid := (t + tn) / 2
	if r.period > 0 && mid >= r.period {
		mid -= r.period
	}

	return mid
}

// splice inserts a new sample with parameter t between the adjacent samples
// a (before) and b (after) and returns its key.
func (r *Ring) splice(a, b Key, t float64) Key {
	k := Key(len(r.nodes))
	r.nodes = append(r.nodes, node{
		Sample: Sample{Key: k, Param: t, Pos: r.boundary.PointAt(t)},
		prev:   a,
		next:   b,
	})
	r.nodes[a].next = k
	r.nodes[b].prev = k

	return k
}

// Traverse yields every live sample once, in ring order starting at Head.
// The sequence is restartable; mutating the ring while iterating is not supported.
func (r *Ring) Traverse() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if len(r.nodes) == 0 {
			return
		}
		k := r.head
		for steps := 0; steps < len(r.nodes); steps++ {
			if !yield(r.nodes[k].Sample) {
				return
			}
			k = r.nodes[k].next
			if k == Nil || k == r.head {
				return
			}
		}
	}
}

// Keys returns the keys of all samples in ring order.
func (r *Ring) Keys() []Key {
	out := make([]Key, 0, len(r.nodes))
	for s := range r.Traverse() {
		out = append(out, s.Key)
	}

	return out
}

// Neighborhood returns k together with up to radius samples on each side of
// it, in ring order and without duplicates. On small closed rings the two
// sides can meet, in which case every sample is returned once.
func (r *Ring) Neighborhood(k Key, radius int) ([]Key, error) {
	if !r.valid(k) {
		return nil, fmt.Errorf("%w: %d", ErrStaleKey, k)
	}
	if radius < 0 {
		return nil, ErrBadRadius
	}

	// Walk backwards first to find the leftmost key, then collect forwards.
	var (
		left = k
		i    int
	)
	for i = 0; i < radius; i++ {
		p := r.nodes[left].prev
		if p == Nil || p == k {
			break
		}
		left = p
	}

	out := make([]Key, 0, 2*radius+1)
	seen := func(x Key) bool {
		for _, y := range out {
			if y == x {
				return true
			}
		}
		return false
	}

	cur := left
	for cur != Nil && !seen(cur) {
		out = append(out, cur)
		if cur == k {
			break
		}
		cur = r.nodes[cur].next
	}
	cur = r.nodes[k].next
	for i = 0; i < radius && cur != Nil && !seen(cur); i++ {
		out = append(out, cur)
		cur = r.nodes[cur].next
	}

	return out, nil
}

// Check verifies the ring invariants: links are mutually consistent and
// traversal from Head visits every sample exactly once (ending at Head for a
// closed ring, at Nil for an open chain).
func (r *Ring) Check() error {
	n := len(r.nodes)
	visited := make([]bool, n)

	var (
		k     = r.head
		count int
	)
	for k != Nil {
		if !r.valid(k) {
			return fmt.Errorf("%w: dangling key %d", ErrBrokenRing, k)
		}
		if visited[k] {
			if r.Closed() && k == r.head && count == n {
				return nil
			}
			return fmt.Errorf("%w: key %d revisited after %d steps", ErrBrokenRing, k, count)
		}
		visited[k] = true
		count++

		next := r.nodes[k].next
		if next != Nil && (!r.valid(next) || r.nodes[next].prev != k) {
			return fmt.Errorf("%w: %d.next=%d does not link back", ErrBrokenRing, k, next)
		}
		k = next
	}

	if r.Closed() {
		return fmt.Errorf("%w: closed ring terminated after %d of %d samples", ErrBrokenRing, count, n)
	}
	if count != n {
		return fmt.Errorf("%w: chain visited %d of %d samples", ErrBrokenRing, count, n)
	}

	return nil
}
