// Command gosession-loadtest drives the session engine through
// create/cancel cycles against a Redis-backed store and reports
// throughput and latency percentiles. With no -redis-addr and no
// REDIS_ADDR, an embedded miniredis is used.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/chain"
	"github.com/MrEthical07/goSession/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		accounts    = flag.Int("accounts", 10000, "number of owner accounts to cycle")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		cycles      = flag.Int("cycles", 5, "create/cancel cycles per account")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gs", "session key prefix")
	)
	flag.Parse()

	if *accounts <= 0 || *concurrency <= 0 || *cycles <= 0 {
		fmt.Fprintln(os.Stderr, "accounts, concurrency, and cycles must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer func() {
		_ = client.Close()
		if cleanup != nil {
			cleanup()
		}
	}()

	sim := chain.NewSim(3 * time.Second)

	var programID session.AccountID
	programID[0] = 0xFF

	cfg := goSession.DefaultConfig()
	cfg.Session.RedisPrefix = *prefix

	engine, err := goSession.New().
		WithConfig(cfg).
		WithProgramID(programID).
		WithChain(sim, sim).
		WithRedis(client).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()
	sim.SetHandler(engine.CleanupHandler())

	owners := make([]session.AccountID, *accounts)
	for i := range owners {
		if _, err := rand.Read(owners[i][:]); err != nil {
			fmt.Fprintf(os.Stderr, "rand: %v\n", err)
			os.Exit(1)
		}
	}

	var (
		ops       atomic.Int64
		failures  atomic.Int64
		mu        sync.Mutex
		latencies []time.Duration
	)

	record := func(start time.Time, err error) {
		elapsed := time.Since(start)
		ops.Add(1)
		if err != nil {
			failures.Add(1)
			return
		}
		mu.Lock()
		latencies = append(latencies, elapsed)
		mu.Unlock()
	}

	work := make(chan session.AccountID, *concurrency)
	var wg sync.WaitGroup
	started := time.Now()

	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for owner := range work {
				var delegate session.AccountID
				if _, err := rand.Read(delegate[:]); err != nil {
					failures.Add(1)
					continue
				}
				req := session.Request{
					Delegate:       delegate,
					Duration:       cfg.MinimumSessionDuration,
					AllowedActions: []session.ActionTag{"move"},
				}

				start := time.Now()
				err := engine.CreateSession(ctx, owner, req, nil)
				record(start, err)
				if err != nil {
					continue
				}

				start = time.Now()
				record(start, engine.DeleteSessionFromAccount(ctx, owner))
			}
		}()
	}

	for c := 0; c < *cycles; c++ {
		for _, owner := range owners {
			work <- owner
		}
	}
	close(work)
	wg.Wait()
	elapsed := time.Since(started)

	mu.Lock()
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p50 := percentile(latencies, 0.50)
	p99 := percentile(latencies, 0.99)
	mu.Unlock()

	fmt.Printf("ops: %d failures: %d elapsed: %s throughput: %.0f ops/s\n",
		ops.Load(), failures.Load(), elapsed.Round(time.Millisecond),
		float64(ops.Load())/elapsed.Seconds())
	fmt.Printf("latency p50: %s p99: %s\n", p50, p99)
	fmt.Printf("pending cleanups: %d\n", sim.Pending())
}

func percentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * q)
	return sorted[idx]
}
