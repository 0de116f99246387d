// Package geotour finds short routes that start at a point, touch an ordered
// list of planar regions, and end at another point.
//
// 🚀 What is geotour?
//
//	An adaptive visibility-graph solver built from small packages:
//		• geometry/   – point, segment and polygon primitives over golang/geo r2
//		• region/     – circles, polygons and arcs; validation and boundary sampling
//		• ring/       – refinable cyclic or open sample sequences with stable keys
//		• cost/       – Distance and TimeThenDistance edge costs
//		• core/       – thread-safe directed stage graph
//		• dijkstra/   – shortest paths over the stage graph
//		• stagegraph/ – builds and grows the layered graph with a cost cache
//		• tour/       – the refinement loop: sample, search, refine, repeat
//
// ✨ How it works
//
// Each region boundary is sampled into a ring. The start point, one stage per
// region and the end point form a layered graph whose edges join samples of
// consecutive stages. Dijkstra finds the cheapest route; the rings are then
// refined around its waypoints and the graph grows around them. The loop stops
// once two successive route costs differ by at most the tolerance.
//
// Quick ASCII example:
//
//	 S ──────●────────●──────── E
//	        (A)      (B)
//
//	the route S→A→B→E touches circle A, then circle B.
//
// See examples/ for runnable programs and tour.Solve for the entry point.
package geotour
