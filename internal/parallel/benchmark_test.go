package parallel

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkRun measures the cost of spawning and joining one goroutine per
// band with trivial work.
func BenchmarkRun(b *testing.B) {
	for _, n := range []int{1, 2, 8, 32} {
		b.Run(fmt.Sprintf("%d_bands", n), func(b *testing.B) {
			bands := Split(600, n)
			fn := func(context.Context, Band) error { return nil }
			ctx := context.Background()
			b.ReportAllocs()
			for b.Loop() {
				_ = Run(ctx, bands, fn)
			}
		})
	}
}

func BenchmarkSplit(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Split(1080, 16)
	}
}
