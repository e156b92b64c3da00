package goMetrics

import (
	"context"
	"math/rand"
	"testing"
)

func BenchmarkRecord(b *testing.B) {
	engine, err := New().Build()
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	ctx := context.Background()
	if err := engine.Register(ctx, "latency", 1, 60_000_000, 3); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	target := ByName("latency")

	values := make([]int64, 1024)
	for i := range values {
		values[i] = rand.Int63n(60_000_000)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := engine.Record(ctx, target, values[i&1023]); err != nil {
			b.Fatalf("Record failed: %v", err)
		}
	}
}

func BenchmarkRecordParallel(b *testing.B) {
	engine, err := New().Build()
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	ctx := context.Background()
	if err := engine.Register(ctx, "latency", 1, 60_000_000, 3); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	target := ByName("latency")

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		v := int64(1)
		for pb.Next() {
			v = (v*2862933555777941757 + 3037000493) & 0x3ffffff
			if err := engine.Record(ctx, target, v); err != nil {
				b.Fatalf("Record failed: %v", err)
			}
		}
	})
}

func BenchmarkValueAtQuantile(b *testing.B) {
	engine, err := New().Build()
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	ctx := context.Background()
	if err := engine.Register(ctx, "latency", 1, 60_000_000, 3); err != nil {
		b.Fatalf("Register failed: %v", err)
	}
	target := ByName("latency")
	for i := 0; i < 100_000; i++ {
		if err := engine.Record(ctx, target, rand.Int63n(60_000_000)); err != nil {
			b.Fatalf("Record failed: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.ValueAtQuantile(ctx, target, 99.9); err != nil {
			b.Fatalf("ValueAtQuantile failed: %v", err)
		}
	}
}
