// Package core_test provides benchmarks for core.Graph operations.
package core_test

import (
	"testing"

	"github.com/katalvlaran/geotour/core"
	"github.com/katalvlaran/geotour/ring"
)

func ringKey(k int) ring.Key { return ring.Key(k) }

// BenchmarkAddEdge measures inserting fresh edges between two stages.
func BenchmarkAddEdge(b *testing.B) {
	g := core.NewGraph()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.AddEdge(id(0, i%1024), id(1, i), w(1))
	}
}

// BenchmarkAddEdge_Existing measures the no-op path taken when a builder
// re-offers an edge that is already present.
func BenchmarkAddEdge_Existing(b *testing.B) {
	g := core.NewGraph()
	_, _ = g.AddEdge(id(0, 0), id(1, 0), w(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.AddEdge(id(0, 0), id(1, 0), w(1))
	}
}

// BenchmarkNeighbors measures the snapshot cost of a 64-edge fan-out.
func BenchmarkNeighbors(b *testing.B) {
	g := core.NewGraph()
	for k := 0; k < 64; k++ {
		_, _ = g.AddEdge(id(0, 0), id(1, k), w(float64(k)))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Neighbors(id(0, 0))
	}
}
