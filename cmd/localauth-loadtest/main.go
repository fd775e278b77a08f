package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/futuremakers/localauth"
)

func main() {
	var (
		accounts    = flag.Int("accounts", 1000, "number of accounts to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 50000, "operations per phase (login + session read)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "fma_", "storage key prefix")
	)
	flag.Parse()

	if *accounts <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "accounts, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  *redis.Client
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewClient(&redis.Options{Addr: addr})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	// The simulated latency would dominate every sample, so the benchmark
	// runs with it disabled.
	cfg := localauth.DefaultConfig()
	cfg.Storage.Prefix = *prefix
	cfg.Latency.RegisterDelay = 0
	cfg.Latency.LoginDelay = 0
	cfg.Metrics.Enabled = true

	engine, err := localauth.New().
		WithConfig(cfg).
		WithRedis(client).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	emails := make([]string, *accounts)
	fmt.Printf("seeding %d accounts...\n", *accounts)
	startSeed := time.Now()
	for i := 0; i < *accounts; i++ {
		email := fmt.Sprintf("member-%d@example.com", i)
		emails[i] = email
		if _, err := engine.Register(ctx, localauth.RegisterRequest{
			Name:            fmt.Sprintf("Member %d", i),
			Email:           email,
			Password:        passwordFor(i),
			ConfirmPassword: passwordFor(i),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "seed register failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	loginStats := runLoginPhase(ctx, engine, emails, *ops, *concurrency)
	readStats := runSessionReadPhase(ctx, engine, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("login", loginStats)
	printStats("session-read", readStats)

	snap := engine.MetricsSnapshot()
	fmt.Println("---- engine metrics ----")
	fmt.Printf("login_success=%d login_failure=%d session_established=%d storage_failure=%d\n",
		snap.Counters[localauth.MetricLoginSuccess],
		snap.Counters[localauth.MetricLoginFailure],
		snap.Counters[localauth.MetricSessionEstablished],
		snap.Counters[localauth.MetricStorageFailure],
	)
	if buckets, ok := snap.Histograms[localauth.MetricLoginLatency]; ok {
		fmt.Printf("login_latency_buckets=%v\n", buckets)
	}
}

func runLoginPhase(ctx context.Context, engine *localauth.Engine, emails []string, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(emails))
				t0 := time.Now()
				_, err := engine.Login(ctx, localauth.LoginRequest{
					Email:    emails[idx],
					Password: passwordFor(idx),
				})
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runSessionReadPhase(ctx context.Context, engine *localauth.Engine, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				_, err := engine.CurrentSession(ctx)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func passwordFor(i int) string {
	return fmt.Sprintf("portal-pass-%d", i)
}
