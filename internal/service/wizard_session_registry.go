package service

import (
	"sync"
	"sync/atomic"
	"time"

	"nueracare-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for sweeping idle wizard sessions
	sessionCleanupInterval = time.Minute
)

// WizardSession tracks one user's position in the onboarding sequence.
//
// saving is the in-flight guard for a step submission: a second submission
// while one is being persisted is rejected rather than queued.
type WizardSession struct {
	mu       sync.Mutex
	step     entity.WizardStep
	saving   atomic.Bool
	lastUsed atomic.Int64 // Unix nano
}

// Step returns the step the user is currently on.
func (s *WizardSession) Step() entity.WizardStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Advance moves from step to its successor. It reports false if the session
// is no longer on step.
func (s *WizardSession) Advance(from entity.WizardStep) (entity.WizardStep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != from {
		return s.step, false
	}
	next, ok := from.Next()
	if !ok {
		return s.step, false
	}
	s.step = next
	return next, true
}

// BeginSave sets the saving flag. It returns false if a save is already in
// flight.
func (s *WizardSession) BeginSave() bool {
	return s.saving.CompareAndSwap(false, true)
}

func (s *WizardSession) EndSave() {
	s.saving.Store(false)
}

func (s *WizardSession) Saving() bool {
	return s.saving.Load()
}

func (s *WizardSession) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

// WizardSessionRegistry holds one WizardSession per user. Sessions idle for
// longer than the TTL are swept by a background goroutine.
// Call Stop() during graceful shutdown.
type WizardSessionRegistry struct {
	sessions sync.Map // map[string]*WizardSession
	ttl      time.Duration
	log      *logrus.Logger
	now      func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewWizardSessionRegistry(ttl time.Duration, log *logrus.Logger) *WizardSessionRegistry {
	r := &WizardSessionRegistry{
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop()

	return r
}

// Stop shuts down the cleanup goroutine. Safe to call multiple times.
func (r *WizardSessionRegistry) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()
		r.log.Info("WizardSessionRegistry stopped")
	}
}

// Get returns the user's session, starting a new one at the welcome step if
// none exists.
func (r *WizardSessionRegistry) Get(userID string) *WizardSession {
	v, _ := r.sessions.LoadOrStore(userID, &WizardSession{step: entity.StepWelcome})
	session := v.(*WizardSession)
	session.touch(r.now())
	return session
}

// Drop forgets the user's session.
func (r *WizardSessionRegistry) Drop(userID string) {
	r.sessions.Delete(userID)
}

// Len reports the number of live sessions.
func (r *WizardSessionRegistry) Len() int {
	n := 0
	r.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (r *WizardSessionRegistry) cleanupLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			r.log.Debug("Wizard session cleanup goroutine stopping")
			return
		case <-ticker.C:
			r.cleanupIdle()
		}
	}
}

// cleanupIdle drops sessions unused for longer than the TTL. Sessions with a
// save in flight are kept.
func (r *WizardSessionRegistry) cleanupIdle() {
	cutoff := r.now().Add(-r.ttl).UnixNano()
	var cleaned int

	r.sessions.Range(func(key, value any) bool {
		session, ok := value.(*WizardSession)
		if !ok {
			return true
		}
		if session.lastUsed.Load() < cutoff && !session.Saving() {
			r.sessions.Delete(key)
			cleaned++
		}
		return true
	})

	if cleaned > 0 {
		r.log.Debugf("Cleaned up %d idle wizard sessions", cleaned)
	}
}
