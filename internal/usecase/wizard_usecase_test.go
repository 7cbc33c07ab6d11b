package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
	repoImpl "nueracare-api/internal/repository"
	"nueracare-api/internal/service"
	"nueracare-api/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []service.WelcomeMessage
	err  error
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, msg service.WelcomeMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

type wizardFixture struct {
	wizard     WizardUsecase
	onboarding *onboardingUsecase
	store      *mockStore
	sessions   *service.WizardSessionRegistry
	notifier   *recordingNotifier
}

func newWizardFixture(t *testing.T, policy WizardPolicy) *wizardFixture {
	t.Helper()
	store := newMockStore()
	onboarding := NewOnboardingUsecase(quietLogger(), repoImpl.NewOnboardingRepository(store)).(*onboardingUsecase)
	onboarding.now = newFakeClock().Now
	sessions := service.NewWizardSessionRegistry(time.Hour, quietLogger())
	t.Cleanup(sessions.Stop)
	notifier := &recordingNotifier{}

	return &wizardFixture{
		wizard:     NewWizardUsecase(quietLogger(), validator.NewValidator(), onboarding, sessions, notifier, policy),
		onboarding: onboarding,
		store:      store,
		sessions:   sessions,
		notifier:   notifier,
	}
}

func (f *wizardFixture) submit(t *testing.T, step entity.WizardStep, payload string) string {
	t.Helper()
	resp, err := f.wizard.SubmitStep(context.Background(), "u1", step, json.RawMessage(payload))
	require.NoError(t, err, step)
	return resp.NextStep
}

var identityPayload = `{"email":"a@b.com","mobileNumber":"+1555","ageGroup":"18-30","firstName":"Ana","preferredName":"Annie"}`

func TestWizard_FullSequence(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{CompleteRedirectDelay: 3 * time.Second})
	ctx := context.Background()

	state, err := f.wizard.GetWizard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "welcome", state.CurrentStep)
	assert.Len(t, state.Steps, 12)

	assert.Equal(t, "identity", f.submit(t, entity.StepWelcome, ``))
	assert.Equal(t, "accessibility", f.submit(t, entity.StepIdentity, identityPayload))
	assert.Equal(t, "health-context", f.submit(t, entity.StepAccessibility, `{"accessibilityNeeds":["large-text"]}`))
	assert.Equal(t, "reminders", f.submit(t, entity.StepHealthContext, `{"focusAreas":["sleep","fitness"],"healthContext":{"hasConditions":true,"conditions":["asthma"]}}`))
	assert.Equal(t, "caregiver", f.submit(t, entity.StepReminders, `{"medicationReminders":true,"reminderTime":"08:30"}`))
	assert.Equal(t, "permissions-camera", f.submit(t, entity.StepCaregiver, `{"hasCaregivers":true,"caregiverName":"Bo","caregiverRelation":"child"}`))
	assert.Equal(t, "permissions-storage", f.submit(t, entity.StepPermissionCamera, `{"granted":true}`))
	assert.Equal(t, "permissions-location", f.submit(t, entity.StepPermissionStorage, `{"granted":false}`))
	assert.Equal(t, "permissions-notifications", f.submit(t, entity.StepPermissionLocation, `{"granted":true}`))
	assert.Equal(t, "first-action", f.submit(t, entity.StepPermissionNotifications, `{"granted":true}`))
	assert.Equal(t, "complete", f.submit(t, entity.StepFirstAction, `{"action":"skip"}`))

	resp, err := f.wizard.SubmitStep(ctx, "u1", entity.StepComplete, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StackMain, resp.Stack)
	assert.True(t, resp.Persisted)
	assert.Equal(t, int64(3000), resp.RedirectAfterMs)

	data, err := f.onboarding.GetOnboardingData(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, data.OnboardingCompleted)
	assert.NotNil(t, data.OnboardingCompletedAt)
	assert.Equal(t, "a@b.com", data.Email)
	assert.Equal(t, []string{"large-text"}, data.AccessibilityNeeds)
	assert.Equal(t, []string{"sleep", "fitness"}, data.FocusAreas)
	assert.Equal(t, []string{"asthma"}, data.HealthContext.Conditions)
	assert.Equal(t, "08:30", data.Reminders.ReminderTime)
	assert.Equal(t, "child", data.CaregiverInfo.CaregiverRelation)
	assert.Equal(t, entity.Permissions{CameraAccess: true, StorageAccess: false, LocationAccess: true, NotificationsAccess: true}, *data.Permissions)
	assert.Equal(t, entity.FirstActionSkip, data.FirstAction)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, service.WelcomeMessage{UserID: "u1", Email: "a@b.com", Name: "Annie"}, f.notifier.sent[0])
	assert.Equal(t, 0, f.sessions.Len())
}

func TestWizard_RejectsSkipAhead(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})

	_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepIdentity, json.RawMessage(identityPayload))
	require.ErrorIs(t, err, ErrStepOutOfOrder)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, entity.StepWelcome, stepErr.Current)
	assert.Equal(t, 0, f.store.Len())
}

func TestWizard_RejectsReplayOfEarlierStep(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	f.submit(t, entity.StepWelcome, ``)
	f.submit(t, entity.StepIdentity, identityPayload)

	_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepIdentity, json.RawMessage(identityPayload))
	assert.ErrorIs(t, err, ErrStepOutOfOrder)
	assert.Equal(t, int32(1), f.store.creates.Load())
}

func TestWizard_UnknownStep(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})

	_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.WizardStep("payment"), nil)
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestWizard_ValidationBlocksWithoutWriting(t *testing.T) {
	tests := []struct {
		name    string
		step    entity.WizardStep
		payload string
		field   string
	}{
		{"identity needs age group", entity.StepIdentity, `{"email":"a@b.com","mobileNumber":"+1555"}`, "ageGroup"},
		{"identity needs mobile number", entity.StepIdentity, `{"email":"a@b.com","ageGroup":"18-30"}`, "mobileNumber"},
		{"health context needs a focus area", entity.StepHealthContext, `{"focusAreas":[]}`, "focusAreas"},
		{"caregiver needs name when affirmed", entity.StepCaregiver, `{"hasCaregivers":true,"caregiverRelation":"spouse"}`, "caregiverName"},
		{"caregiver needs relation when affirmed", entity.StepCaregiver, `{"hasCaregivers":true,"caregiverName":"Bo"}`, "caregiverRelation"},
		{"reminder time format", entity.StepReminders, `{"reminderTime":"8am"}`, "reminderTime"},
		{"first action value", entity.StepFirstAction, `{"action":"dance"}`, "action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWizardFixture(t, WizardPolicy{})
			advanceTo(t, f, tt.step)
			patchesBefore := len(f.store.Patches())
			createsBefore := f.store.creates.Load()

			_, err := f.wizard.SubmitStep(context.Background(), "u1", tt.step, json.RawMessage(tt.payload))
			require.ErrorIs(t, err, ErrStepValidation)

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Contains(t, stepErr.Fields, tt.field)

			assert.Equal(t, patchesBefore, len(f.store.Patches()))
			assert.Equal(t, createsBefore, f.store.creates.Load())
			assert.Equal(t, tt.step, f.sessions.Get("u1").Step())
		})
	}
}

func TestWizard_CaregiverNotRequiredWhenDenied(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	advanceTo(t, f, entity.StepCaregiver)

	assert.Equal(t, "permissions-camera", f.submit(t, entity.StepCaregiver, `{"hasCaregivers":false}`))
}

func TestWizard_IdentityWriteFailureBlocks(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	f.submit(t, entity.StepWelcome, ``)
	f.store.CreateOrReplaceFunc = func(ctx context.Context, doc entity.Document) (entity.Document, error) {
		return nil, repository.NewStoreError(repository.ErrNetwork, "createOrReplace", doc.ID(), nil)
	}

	_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepIdentity, json.RawMessage(identityPayload))
	assert.ErrorIs(t, err, repository.ErrNetwork)
	assert.Equal(t, entity.StepIdentity, f.sessions.Get("u1").Step())

	f.store.CreateOrReplaceFunc = nil
	assert.Equal(t, "accessibility", f.submit(t, entity.StepIdentity, identityPayload))
}

func TestWizard_LaterWriteFailureIsBestEffort(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	advanceTo(t, f, entity.StepAccessibility)
	f.store.PatchFunc = failWith(repository.ErrNetwork)

	resp, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepAccessibility, json.RawMessage(`{"accessibilityNeeds":["voice-input"]}`))
	require.NoError(t, err)
	assert.False(t, resp.Persisted)
	assert.NotEmpty(t, resp.Warning)
	assert.Equal(t, "health-context", resp.NextStep)
}

func TestWizard_StrictWritesBlockEveryStep(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{StrictWrites: true})
	advanceTo(t, f, entity.StepAccessibility)
	f.store.PatchFunc = failWith(repository.ErrNotFound)

	_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepAccessibility, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, entity.StepAccessibility, f.sessions.Get("u1").Step())
}

func TestWizard_CompleteAlwaysGoesToMain(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{CompleteRedirectDelay: 3 * time.Second})
	advanceTo(t, f, entity.StepComplete)
	f.store.PatchFunc = failWith(repository.ErrNetwork)

	resp, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepComplete, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StackMain, resp.Stack)
	assert.False(t, resp.Persisted)
	assert.Equal(t, int64(3000), resp.RedirectAfterMs)
	assert.Empty(t, f.notifier.sent)
	assert.False(t, f.onboarding.IsOnboardingCompleted(context.Background(), "u1"))
}

func TestWizard_NotifierFailureIsIgnored(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	f.notifier.err = errors.New("smtp down")
	advanceTo(t, f, entity.StepComplete)

	resp, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepComplete, nil)
	require.NoError(t, err)
	assert.True(t, resp.Persisted)
	assert.True(t, f.onboarding.IsOnboardingCompleted(context.Background(), "u1"))
}

func TestWizard_IdentityResubmitKeepsCreatedAt(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	ctx := context.Background()
	f.submit(t, entity.StepWelcome, ``)
	f.submit(t, entity.StepIdentity, identityPayload)
	first, err := f.onboarding.GetOnboardingData(ctx, "u1")
	require.NoError(t, err)

	// A restarted wizard starts over at welcome.
	f.sessions.Drop("u1")
	f.submit(t, entity.StepWelcome, ``)
	f.submit(t, entity.StepIdentity, `{"email":"new@b.com","mobileNumber":"+1666","ageGroup":"31-45"}`)

	second, err := f.onboarding.GetOnboardingData(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", second.Email)
	assert.True(t, first.CreatedAt.Equal(*second.CreatedAt))
	assert.True(t, second.UpdatedAt.After(*first.UpdatedAt))
}

func TestWizard_SecondSubmissionWhileSaving(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	advanceTo(t, f, entity.StepAccessibility)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.store.PatchFunc = func(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
		close(entered)
		<-release
		return f.store.MemoryStore.Patch(ctx, id, set)
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepAccessibility, json.RawMessage(`{}`))
		done <- err
	}()

	<-entered
	_, err := f.wizard.SubmitStep(context.Background(), "u1", entity.StepAccessibility, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrStepInFlight)

	state, err := f.wizard.GetWizard(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, state.Saving)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, entity.StepHealthContext, f.sessions.Get("u1").Step())
	assert.Len(t, f.store.Patches(), 1)
}

func TestWizard_ClosedOnceCompleted(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	ctx := context.Background()
	advanceTo(t, f, entity.StepComplete)
	_, err := f.wizard.SubmitStep(ctx, "u1", entity.StepComplete, nil)
	require.NoError(t, err)
	createsBefore := f.store.creates.Load()

	for _, step := range []entity.WizardStep{entity.StepWelcome, entity.StepIdentity} {
		_, err := f.wizard.SubmitStep(ctx, "u1", step, json.RawMessage(identityPayload))
		require.ErrorIs(t, err, ErrWizardClosed, step)

		var stepErr *StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Equal(t, entity.StepComplete, stepErr.Current)
	}

	assert.Equal(t, createsBefore, f.store.creates.Load())
	assert.Equal(t, 0, f.sessions.Len())

	data, err := f.onboarding.GetOnboardingData(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, data.OnboardingCompleted)
	assert.Equal(t, []string{"stress"}, data.FocusAreas)
	assert.Equal(t, entity.FirstActionUploadReport, data.FirstAction)
}

func TestWizard_GetWizardAfterCompletion(t *testing.T) {
	f := newWizardFixture(t, WizardPolicy{})
	ctx := context.Background()
	advanceTo(t, f, entity.StepComplete)
	_, err := f.wizard.SubmitStep(ctx, "u1", entity.StepComplete, nil)
	require.NoError(t, err)

	state, err := f.wizard.GetWizard(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.Equal(t, "complete", state.CurrentStep)
	assert.Equal(t, 0, f.sessions.Len())
}

// advanceTo walks the wizard up to target with valid inputs.
func advanceTo(t *testing.T, f *wizardFixture, target entity.WizardStep) {
	t.Helper()
	inputs := map[entity.WizardStep]string{
		entity.StepWelcome:                 ``,
		entity.StepIdentity:                identityPayload,
		entity.StepAccessibility:           `{}`,
		entity.StepHealthContext:           `{"focusAreas":["stress"]}`,
		entity.StepReminders:               `{}`,
		entity.StepCaregiver:               `{"hasCaregivers":false}`,
		entity.StepPermissionCamera:        `{"granted":true}`,
		entity.StepPermissionStorage:       `{"granted":true}`,
		entity.StepPermissionLocation:      `{"granted":true}`,
		entity.StepPermissionNotifications: `{"granted":true}`,
		entity.StepFirstAction:             `{"action":"upload-report"}`,
	}
	for _, step := range entity.WizardSteps {
		if step == target {
			return
		}
		f.submit(t, step, inputs[step])
	}
	t.Fatalf("step %s not reached", target)
}
