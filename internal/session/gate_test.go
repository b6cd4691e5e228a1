// File: internal/session/gate_test.go
package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGateHoldsEarlyReportUntilFloor(t *testing.T) {
	g := New(150*time.Millisecond, zap.NewNop())
	g.Start()

	// The provider answers well before the floor.
	g.ReportSession(true)
	assert.Equal(t, StateUnknown, g.Current(), "state stays unknown before the floor elapses")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	started := time.Now()
	state, err := g.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
	assert.GreaterOrEqual(t, time.Since(started), 100*time.Millisecond, "resolution must not beat the floor")
}

func TestGateResolvesOnLateReport(t *testing.T) {
	g := New(10*time.Millisecond, zap.NewNop())
	g.Start()

	// Floor elapses first; the gate still waits for the provider.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StateUnknown, g.Current())

	g.ReportSession(false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	state, err := g.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, state)
}

func TestGateTransitionsAfterResolution(t *testing.T) {
	g := New(time.Millisecond, zap.NewNop())
	g.Start()
	g.ReportSession(false)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := g.Wait(ctx)
	require.NoError(t, err)

	// Sign-in and sign-out take effect immediately once resolved.
	g.ReportSession(true)
	assert.Equal(t, StateAuthenticated, g.Current())
	g.ReportSession(false)
	assert.Equal(t, StateUnauthenticated, g.Current())
}

func TestGateWaitContextExpiry(t *testing.T) {
	g := New(time.Minute, zap.NewNop())
	g.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := g.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateUnknown, state)
}

func TestGateStaysUnknownWithoutReport(t *testing.T) {
	g := New(time.Millisecond, zap.NewNop())
	g.Start()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StateUnknown, g.Current(), "no provider callback means no resolution")
}

func TestGateListenersSeeResolutionAndTransitions(t *testing.T) {
	g := New(time.Millisecond, zap.NewNop())

	var mu sync.Mutex
	var seen []State
	g.Subscribe(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	g.Start()
	g.ReportSession(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := g.Wait(ctx)
	require.NoError(t, err)

	g.ReportSession(false)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 2)
	assert.Equal(t, StateAuthenticated, seen[0])
	assert.Equal(t, StateUnauthenticated, seen[len(seen)-1])
}

func TestGateLateSubscriberGetsCurrentState(t *testing.T) {
	g := New(time.Millisecond, zap.NewNop())
	g.Start()
	g.ReportSession(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := g.Wait(ctx)
	require.NoError(t, err)

	// Subscribing after resolution fires once with the resolved state.
	var seen []State
	g.Subscribe(func(s State) { seen = append(seen, s) })
	require.Len(t, seen, 1)
	assert.Equal(t, StateAuthenticated, seen[0])

	// And the listener keeps receiving later transitions.
	g.ReportSession(false)
	require.Len(t, seen, 2)
	assert.Equal(t, StateUnauthenticated, seen[1])
}

func TestGateStartIsIdempotent(t *testing.T) {
	g := New(time.Millisecond, zap.NewNop())
	g.Start()
	g.Start()
	g.ReportSession(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	state, err := g.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, state)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
}
