package connection

import (
	"context"
	"sync"
	"time"

	"pantherasmp/clients"
	"pantherasmp/core/log"
)

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// SessionFunc drives one live connection. It must return once the client's
// event queue is closed or ctx is done.
type SessionFunc func(ctx context.Context, world clients.WorldClient)

// TransitionFunc observes every state change.
type TransitionFunc func(from, to State)

// Supervisor keeps a bot connected: dial, run the session, wait a fixed delay, repeat.
// There is no backoff and no retry limit; only ctx stops it.
type Supervisor struct {
	dialer  clients.Dialer
	session SessionFunc
	delay   time.Duration

	mutex        sync.RWMutex
	state        State
	onTransition TransitionFunc
}

func NewSupervisor(dialer clients.Dialer, delay time.Duration, session SessionFunc) *Supervisor {
	return &Supervisor{
		dialer:  dialer,
		session: session,
		delay:   delay,
		state:   StateDisconnected,
	}
}

// OnTransition registers a hook called synchronously on every state change.
func (s *Supervisor) OnTransition(hook TransitionFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.onTransition = hook
}

func (s *Supervisor) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// Run blocks until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		s.connectOnce(ctx, attempt)

		if ctx.Err() != nil {
			log.Info("🔌 Shutdown requested, supervisor stopping")
			return nil
		}

		log.Info("🔄 Reconnecting in %s...", s.delay)
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			log.Info("🔌 Shutdown requested during reconnect wait, supervisor stopping")
			return nil
		}
	}
}

func (s *Supervisor) connectOnce(ctx context.Context, attempt int) {
	s.transition(StateConnecting)
	defer s.transition(StateDisconnected)

	log.Info("🔌 Connection attempt %d", attempt)
	world, err := s.dialer.Dial(ctx)
	if err != nil {
		log.Error("❌ Connection attempt %d failed: %v", attempt, err)
		return
	}

	s.transition(StateConnected)
	log.Info("✅ Connected as %s", world.Username())

	s.session(ctx, world)

	if err := world.Close(); err != nil {
		log.Debug("Closing world client: %v", err)
	}
}

func (s *Supervisor) transition(to State) {
	s.mutex.Lock()
	from := s.state
	s.state = to
	hook := s.onTransition
	s.mutex.Unlock()

	if from == to {
		return
	}
	log.Debug("Connection state %s -> %s", from, to)
	if hook != nil {
		hook(from, to)
	}
}

