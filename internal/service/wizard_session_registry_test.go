package service

import (
	"context"
	"io"
	"testing"
	"time"

	"nueracare-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestWizardSessionRegistry_StartsAtWelcome(t *testing.T) {
	r := NewWizardSessionRegistry(time.Minute, quietLogger())
	defer r.Stop()

	s := r.Get("u1")
	assert.Equal(t, entity.StepWelcome, s.Step())
	assert.Same(t, s, r.Get("u1"))
	assert.Equal(t, 1, r.Len())
}

func TestWizardSession_AdvanceOnlyFromCurrentStep(t *testing.T) {
	r := NewWizardSessionRegistry(time.Minute, quietLogger())
	defer r.Stop()
	s := r.Get("u1")

	next, ok := s.Advance(entity.StepIdentity)
	assert.False(t, ok)
	assert.Equal(t, entity.StepWelcome, next)

	next, ok = s.Advance(entity.StepWelcome)
	require.True(t, ok)
	assert.Equal(t, entity.StepIdentity, next)
	assert.Equal(t, entity.StepIdentity, s.Step())
}

func TestWizardSession_SavingFlag(t *testing.T) {
	s := &WizardSession{step: entity.StepIdentity}

	require.True(t, s.BeginSave())
	assert.False(t, s.BeginSave())
	assert.True(t, s.Saving())

	s.EndSave()
	assert.True(t, s.BeginSave())
}

func TestWizardSessionRegistry_CleanupIdle(t *testing.T) {
	r := NewWizardSessionRegistry(10*time.Minute, quietLogger())
	defer r.Stop()

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return start }
	r.Get("idle")
	busy := r.Get("busy")
	require.True(t, busy.BeginSave())

	r.now = func() time.Time { return start.Add(5 * time.Minute) }
	r.Get("fresh")

	r.now = func() time.Time { return start.Add(11 * time.Minute) }
	r.cleanupIdle()

	assert.Equal(t, 2, r.Len())
	_, ok := r.sessions.Load("idle")
	assert.False(t, ok)
	_, ok = r.sessions.Load("busy")
	assert.True(t, ok)
}

func TestWizardSessionRegistry_StopIsIdempotent(t *testing.T) {
	r := NewWizardSessionRegistry(time.Minute, quietLogger())
	r.Stop()
	r.Stop()
}

func TestLogNotifier_NeverFails(t *testing.T) {
	n := NewNotifier("", "NueraCare <hello@nueracare.app>", quietLogger())
	assert.NoError(t, n.SendWelcome(context.Background(), WelcomeMessage{UserID: "u1", Email: "a@b.com"}))
}
