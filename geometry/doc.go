// Package geometry collects the small, stateless planar primitives the touring
// solver leans on: Euclidean distance, segment intersection, point-in-polygon,
// signed area and bounding boxes.
//
// All functions operate on r2.Point from github.com/golang/geo and never
// allocate beyond their return values. None of them log or panic on user input.
//
// Complexity:
//
//   - Distance, SegmentsIntersect, IsFinite: O(1)
//   - PointInPolygon, SignedArea, Bounds:     O(n) in the number of vertices
package geometry
