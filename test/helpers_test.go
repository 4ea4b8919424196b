//go:build integration
// +build integration

package test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/chain"
	"github.com/MrEthical07/goSession/session"
)

// redisMode describes which Redis backend the suite runs against.
type redisMode struct {
	name  string
	setup func(t *testing.T) (redis.UniversalClient, func())
}

// redisModes returns the set of Redis backends to test.
// miniredis is always available.
// Real Redis standalone is used when REDIS_ADDR is set (e.g. "127.0.0.1:6379").
func redisModes(t *testing.T) []redisMode {
	t.Helper()
	modes := []redisMode{
		{
			name: "miniredis",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				mr, err := miniredis.Run()
				if err != nil {
					t.Fatalf("miniredis: %v", err)
				}
				rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
				return rdb, func() { _ = rdb.Close(); mr.Close() }
			},
		},
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		modes = append(modes, redisMode{
			name: "standalone:" + addr,
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewClient(&redis.Options{Addr: addr})
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis at %s: %v", addr, err)
				}
				// Flush the test DB to avoid state leaking between runs.
				rdb.FlushDB(context.Background())
				return rdb, func() { rdb.FlushDB(context.Background()); _ = rdb.Close() }
			},
		})
	}

	return modes
}

var programID = accountID(0xFF)

func accountID(b byte) session.AccountID {
	var id session.AccountID
	id[0] = b
	return id
}

// newIntegrationEngine assembles a Redis-backed engine over a simulated
// chain with three-second ticks and wires the cleanup handler.
func newIntegrationEngine(t *testing.T, rdb redis.UniversalClient) (*goSession.Engine, *chain.Sim) {
	t.Helper()

	sim := chain.NewSim(3 * time.Second)
	engine, err := goSession.New().
		WithChain(sim, sim).
		WithProgramID(programID).
		WithRedis(rdb).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	sim.SetHandler(engine.CleanupHandler())
	return engine, sim
}

func grantRequest(delegate session.AccountID) session.Request {
	return session.Request{
		Delegate:       delegate,
		Duration:       3 * time.Minute,
		AllowedActions: []session.ActionTag{"start_game", "move"},
	}
}
