package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rogue-core/pkg/engine"
)

func TestSnapshotFromReflectsEngineState(t *testing.T) {
	e, err := engine.NewEngine(42)
	require.NoError(t, err)

	e.Player.HP = 7
	e.Player.Gold = 30
	snap := SnapshotFrom(e, "you hit the rat")

	assert.Equal(t, 7, snap.HP)
	assert.Equal(t, 30, snap.Gold)
	assert.Equal(t, e.Floor.Level, snap.Floor)
	assert.Equal(t, "you hit the rat", snap.Message)
	assert.False(t, snap.GameOver)
}

func TestHubBroadcastDropsOnFullQueue(t *testing.T) {
	h := newHub(NewMetrics())
	o := &observer{send: make(chan []byte, 1)}
	h.register(o)

	h.broadcast([]byte("one"))
	h.broadcast([]byte("two")) // queue is full, must not block or panic

	require.Len(t, o.send, 1)
	assert.Equal(t, []byte("one"), <-o.send)
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	h := newHub(nil)
	o := &observer{send: make(chan []byte, 1)}
	h.register(o)
	h.unregister(o)

	_, ok := <-o.send
	assert.False(t, ok, "send channel must be closed after unregister")
}

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	rl := &RateLimiter{
		limiters:          make(map[string]*rateLimiterEntry),
		requestsPerSecond: 0, // no steady-state refill within the test
		burst:             2,
		cleanupInterval:   defaultCleanupInterval,
		maxAge:            defaultCleanupInterval * 5,
	}
	defer rl.Close()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"), "burst of 2 must be exhausted on the third call")
}

func TestHealthCheckerReportsUnhealthyOnFailingCheck(t *testing.T) {
	hc := &HealthChecker{checks: make(map[string]func(context.Context) error), server: &Server{}}
	hc.RegisterCheck("always_fails", func(context.Context) error {
		return assert.AnError
	})

	resp := hc.RunHealthChecks(context.Background())
	assert.Equal(t, HealthStatusUnhealthy, resp.Status)
	require.Len(t, resp.Checks, 1)
	assert.Equal(t, HealthStatusUnhealthy, resp.Checks[0].Status)
}
