// Package tour_test provides benchmarks for Solve.
package tour_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/geotour/stagegraph"
	"github.com/katalvlaran/geotour/tour"
)

func benchmarkSolve(b *testing.B, n int, rebuild stagegraph.Rebuild) {
	rng := rand.New(rand.NewSource(7))
	regions := randomRegions(rng, n)
	end := r2.Point{X: float64(n)*6 + 4}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tour.Solve(ctx, r2.Point{X: -4}, end, regions, tour.WithRebuild(rebuild)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSolve_Neighborhood10 measures ten regions with neighborhood rebuilds.
func BenchmarkSolve_Neighborhood10(b *testing.B) { benchmarkSolve(b, 10, stagegraph.RebuildNeighborhood) }

// BenchmarkSolve_Full10 measures ten regions with full rebuilds.
func BenchmarkSolve_Full10(b *testing.B) { benchmarkSolve(b, 10, stagegraph.RebuildFull) }

// BenchmarkSolve_Neighborhood50 measures fifty regions with neighborhood rebuilds.
func BenchmarkSolve_Neighborhood50(b *testing.B) { benchmarkSolve(b, 50, stagegraph.RebuildNeighborhood) }
