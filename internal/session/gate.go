// File: internal/session/gate.go
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the gate's view of the authentication session.
type State int

const (
	// StateUnknown is the initial state, shown as the loading/splash screen.
	StateUnknown State = iota
	// StateAuthenticated means the provider reported a live session.
	StateAuthenticated
	// StateUnauthenticated means the provider reported no session.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Listener receives state transitions once the gate has resolved.
type Listener func(State)

// Gate decides which top-level navigation flow is active. It starts in
// StateUnknown and moves to Authenticated or Unauthenticated on the
// provider's session callback, but never before the minimum display floor
// has elapsed since Start: the loading state lasts max(providerLatency,
// floor). There is no retry — if the provider callback never fires, the gate
// stays StateUnknown forever. That fail-open wait is a known property of the
// design; Wait's ctx is the only way out.
type Gate struct {
	floor  time.Duration
	logger *zap.Logger

	mu        sync.Mutex
	started   bool
	startedAt time.Time
	floorDone bool
	reported  bool
	state     State
	listeners []Listener

	resolved chan struct{}
}

// New creates a gate with the given minimum floor.
func New(floor time.Duration, logger *zap.Logger) *Gate {
	return &Gate{
		floor:    floor,
		logger:   logger.Named("session"),
		state:    StateUnknown,
		resolved: make(chan struct{}),
	}
}

// Start arms the minimum-floor timer. Calling Start more than once is a no-op.
func (g *Gate) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return
	}
	g.started = true
	g.startedAt = time.Now()
	time.AfterFunc(g.floor, g.floorElapsed)
}

func (g *Gate) floorElapsed() {
	g.mu.Lock()
	g.floorDone = true
	notify := g.maybeResolveLocked()
	g.mu.Unlock()
	notify()
}

// ReportSession is the provider session callback. It fires at least once at
// startup and again on every sign-in and sign-out. Before resolution the
// reported state is held back until the floor elapses; afterwards transitions
// take effect immediately.
func (g *Gate) ReportSession(authenticated bool) {
	next := StateUnauthenticated
	if authenticated {
		next = StateAuthenticated
	}

	g.mu.Lock()
	g.state = next
	g.reported = true

	var notify func()
	if g.isResolvedLocked() {
		listeners := append([]Listener(nil), g.listeners...)
		notify = func() {
			for _, l := range listeners {
				l(next)
			}
		}
	} else {
		notify = g.maybeResolveLocked()
	}
	g.mu.Unlock()

	g.logger.Debug("session state reported", zap.Stringer("state", next))
	notify()
}

// maybeResolveLocked closes the resolved channel when both the floor and the
// first provider report are in. It returns the listener notification to run
// after the lock is released.
func (g *Gate) maybeResolveLocked() func() {
	if !g.floorDone || !g.reported || g.isResolvedLocked() {
		return func() {}
	}
	close(g.resolved)
	state := g.state
	listeners := append([]Listener(nil), g.listeners...)
	elapsed := time.Since(g.startedAt)
	return func() {
		g.logger.Info("session gate resolved", zap.Stringer("state", state), zap.Duration("after", elapsed))
		for _, l := range listeners {
			l(state)
		}
	}
}

func (g *Gate) isResolvedLocked() bool {
	select {
	case <-g.resolved:
		return true
	default:
		return false
	}
}

// Current returns the exposed state: StateUnknown until the gate resolves,
// the last reported state afterwards.
func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isResolvedLocked() {
		return StateUnknown
	}
	return g.state
}

// Wait blocks until the gate resolves or ctx is done. On ctx expiry it
// returns StateUnknown and the ctx error.
func (g *Gate) Wait(ctx context.Context) (State, error) {
	select {
	case <-g.resolved:
		return g.Current(), nil
	case <-ctx.Done():
		return StateUnknown, ctx.Err()
	}
}

// Subscribe registers a listener for resolution and later transitions. A
// listener added after the gate has resolved is handed the current state
// immediately, the way a provider session callback fires once on
// registration.
func (g *Gate) Subscribe(l Listener) {
	g.mu.Lock()
	g.listeners = append(g.listeners, l)
	deliver := g.isResolvedLocked()
	state := g.state
	g.mu.Unlock()

	if deliver {
		l(state)
	}
}
