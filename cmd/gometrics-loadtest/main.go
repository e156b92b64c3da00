package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	goMetrics "github.com/MrEthical07/goMetrics"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		metrics     = flag.Int("metrics", 8, "number of histograms to register")
		concurrency = flag.Int("concurrency", 256, "number of concurrent writers")
		ops         = flag.Int("ops", 1_000_000, "total observations to record")
		maxValue    = flag.Int64("max-value", 60_000_000, "highest trackable value (one minute in microseconds by default)")
		precision   = flag.Int("precision", 3, "significant decimal digits")
		redisAddr   = flag.String("redis-addr", "", "redis address; falls back to REDIS_ADDR, then miniredis")
		prefix      = flag.String("prefix", "gm-load", "counter row key prefix")
		memory      = flag.Bool("memory", false, "use the in-process store instead of redis")
	)
	flag.Parse()

	if *metrics <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "metrics, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := goMetrics.Config{
		Store: goMetrics.StoreConfig{RedisPrefix: *prefix},
		Histogram: goMetrics.HistogramConfig{
			DefaultMin:       1,
			DefaultMax:       *maxValue,
			DefaultPrecision: *precision,
		},
		Export: goMetrics.ExportConfig{
			Namespace: "gometrics",
			Quantiles: []float64{50, 90, 99, 99.9},
		},
	}
	builder := goMetrics.New().WithConfig(cfg)

	cleanup := func() {}
	if *memory {
		fmt.Println("using in-process store")
	} else {
		addr := *redisAddr
		if addr == "" {
			addr = os.Getenv("REDIS_ADDR")
		}

		var client redis.UniversalClient
		if addr == "" {
			mr, err := miniredis.Run()
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
				os.Exit(1)
			}
			client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
			cleanup = func() {
				_ = client.Close()
				mr.Close()
			}
			fmt.Printf("using miniredis at %s\n", mr.Addr())
		} else {
			client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
			cleanup = func() { _ = client.Close() }
			fmt.Printf("using redis at %s\n", addr)
		}
		builder = builder.WithRedis(client)
	}
	defer cleanup()

	engine, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build engine: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, *metrics)
	for i := range names {
		names[i] = fmt.Sprintf("load_metric_%d", i)
		if err := engine.RegisterDefault(ctx, names[i]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to register %s: %v\n", names[i], err)
			os.Exit(1)
		}
	}

	fmt.Printf("recording %d observations across %d metrics with %d writers...\n", *ops, *metrics, *concurrency)

	var (
		wg       sync.WaitGroup
		next     atomic.Int64
		failures atomic.Int64
	)
	start := time.Now()

	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				n := next.Add(1)
				if n > int64(*ops) {
					return
				}
				target := goMetrics.ByName(names[int(n)%len(names)])
				value := 1 + rng.Int63n(*maxValue)
				if err := engine.Record(ctx, target, value); err != nil {
					failures.Add(1)
				}
			}
		}(int64(w) + 1)
	}
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("recorded %d observations in %v (%.0f ops/sec, %d failures)\n",
		*ops, elapsed.Round(time.Millisecond), float64(*ops)/elapsed.Seconds(), failures.Load())

	for _, name := range names {
		summary, err := engine.Summary(ctx, goMetrics.ByName(name), 50, 90, 99, 99.9)
		if err != nil {
			fmt.Fprintf(os.Stderr, "summary of %s failed: %v\n", name, err)
			continue
		}
		fmt.Printf("%s: count=%d min=%d p50=%d p90=%d p99=%d p99.9=%d max=%d mean=%.1f\n",
			name, summary.TotalCount, summary.Min,
			summary.Quantiles[50], summary.Quantiles[90], summary.Quantiles[99], summary.Quantiles[99.9],
			summary.Max, summary.Mean)
	}
}
