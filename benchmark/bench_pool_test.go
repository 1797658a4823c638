//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"testing"

	pool "github.com/dzonerzy/go-argsnap/internal/pool"
)

// Category: pool

func BenchmarkPool_GetPut(b *testing.B) {
	p := pool.NewPool(func() *[]string {
		s := make([]string, 0, 16)
		return &s
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			obj := p.Get()
			p.Put(obj)
		}
	})
}

func BenchmarkPool_WithReset(b *testing.B) {
	p := pool.NewPoolWithReset(
		func() *[]string {
			s := make([]string, 0, 16)
			return &s
		},
		func(s *[]string) { *s = (*s)[:0] },
	)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			obj := p.Get()
			*obj = append(*obj, "a", "b", "c")
			p.Put(obj)
		}
	})
}

func BenchmarkMemoryAllocation(b *testing.B) {
	b.Run("WithPool", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			slice := pool.GetStringSlice()
			*slice = append(*slice, "test1", "test2", "test3")
			pool.PutStringSlice(slice)
		}
	})

	b.Run("WithoutPool", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			slice := make([]string, 0, 16)
			slice = append(slice, "test1", "test2", "test3")
			_ = slice
		}
	})
}
