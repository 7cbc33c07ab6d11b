package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nueracare-api/internal/converter"
	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/service"
	"nueracare-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownStep    = errors.New("unknown onboarding step")
	ErrStepOutOfOrder = errors.New("onboarding step is not the current step")
	ErrStepInFlight   = errors.New("onboarding step is already being saved")
	ErrStepValidation = errors.New("onboarding step input is invalid")
	ErrWizardClosed   = errors.New("onboarding is already completed")
)

// StepError carries the wizard position alongside a rejected submission.
type StepError struct {
	Err     error
	Step    entity.WizardStep
	Current entity.WizardStep
	Fields  map[string]string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v (current step %s)", e.Step, e.Err, e.Current)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// WizardPolicy controls how step write failures are handled.
type WizardPolicy struct {
	// StrictWrites blocks navigation on any failed write, not only on the
	// identity step.
	StrictWrites bool
	// CompleteRedirectDelay is how long the client shows the completion
	// screen before mounting the main stack.
	CompleteRedirectDelay time.Duration
}

type WizardUsecase interface {
	GetWizard(ctx context.Context, userID string) (*dto.WizardStateResponse, error)
	SubmitStep(ctx context.Context, userID string, step entity.WizardStep, payload json.RawMessage) (*dto.WizardStepResponse, error)
}

type wizardUsecase struct {
	log               *logrus.Logger
	validator         *validator.CustomValidator
	onboardingUsecase OnboardingUsecase
	sessions          *service.WizardSessionRegistry
	notifier          service.Notifier
	policy            WizardPolicy
}

func NewWizardUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	onboardingUsecase OnboardingUsecase,
	sessions *service.WizardSessionRegistry,
	notifier service.Notifier,
	policy WizardPolicy,
) WizardUsecase {
	return &wizardUsecase{
		log:               log,
		validator:         validator,
		onboardingUsecase: onboardingUsecase,
		sessions:          sessions,
		notifier:          notifier,
		policy:            policy,
	}
}

func (u *wizardUsecase) GetWizard(ctx context.Context, userID string) (*dto.WizardStateResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	steps := make([]string, len(entity.WizardSteps))
	for i, step := range entity.WizardSteps {
		steps[i] = string(step)
	}

	if u.onboardingUsecase.IsOnboardingCompleted(ctx, userID) {
		return &dto.WizardStateResponse{
			CurrentStep: string(entity.StepComplete),
			Steps:       steps,
			Completed:   true,
		}, nil
	}

	session := u.sessions.Get(userID)
	return &dto.WizardStateResponse{
		CurrentStep: string(session.Step()),
		Steps:       steps,
		Saving:      session.Saving(),
	}, nil
}

// SubmitStep validates and persists one step, then moves the session
// forward. Submissions must arrive in order; a step that is already being
// saved rejects a second submission. Once the record is completed no answer
// step is accepted.
func (u *wizardUsecase) SubmitStep(ctx context.Context, userID string, step entity.WizardStep, payload json.RawMessage) (*dto.WizardStepResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if !step.Valid() {
		return nil, &StepError{Err: ErrUnknownStep, Step: step}
	}

	session := u.sessions.Get(userID)
	if !session.BeginSave() {
		return nil, &StepError{Err: ErrStepInFlight, Step: step, Current: session.Step()}
	}
	defer session.EndSave()

	if current := session.Step(); current != step {
		return nil, &StepError{Err: ErrStepOutOfOrder, Step: step, Current: current}
	}

	if step.Terminal() {
		return u.complete(ctx, userID), nil
	}

	if u.onboardingUsecase.IsOnboardingCompleted(ctx, userID) {
		u.sessions.Drop(userID)
		return nil, &StepError{Err: ErrWizardClosed, Step: step, Current: entity.StepComplete}
	}

	input, err := u.decodeStep(step, payload)
	if err != nil {
		return nil, err
	}

	result := &dto.WizardStepResponse{
		Step:      string(step),
		Persisted: true,
	}

	if err := u.persistStep(ctx, userID, step, input); err != nil {
		if step == entity.StepIdentity || u.policy.StrictWrites {
			return nil, err
		}
		u.log.WithFields(logrus.Fields{
			"user_id": userID,
			"step":    step,
		}).Warnf("Failed to save onboarding step, continuing: %+v", err)
		result.Persisted = false
		result.Warning = "Your answers could not be saved right now. You can update them later from your profile."
	}

	next, _ := session.Advance(step)
	result.NextStep = string(next)
	result.Stack = entity.StackOnboarding
	return result, nil
}

// decodeStep parses and validates the step's input. A rejected input is
// never written and leaves the session where it was.
func (u *wizardUsecase) decodeStep(step entity.WizardStep, payload json.RawMessage) (interface{}, error) {
	var input interface{}
	switch step {
	case entity.StepWelcome:
		return nil, nil
	case entity.StepIdentity:
		input = &dto.IdentityStepRequest{}
	case entity.StepAccessibility:
		input = &dto.AccessibilityStepRequest{}
	case entity.StepHealthContext:
		input = &dto.HealthContextStepRequest{}
	case entity.StepReminders:
		input = &dto.RemindersStepRequest{}
	case entity.StepCaregiver:
		input = &dto.CaregiverStepRequest{}
	case entity.StepPermissionCamera, entity.StepPermissionStorage, entity.StepPermissionLocation, entity.StepPermissionNotifications:
		input = &dto.PermissionStepRequest{}
	case entity.StepFirstAction:
		input = &dto.FirstActionStepRequest{}
	default:
		return nil, &StepError{Err: ErrUnknownStep, Step: step}
	}

	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	if err := json.Unmarshal(payload, input); err != nil {
		return nil, &StepError{Err: ErrStepValidation, Step: step, Current: step, Fields: map[string]string{"body": "Invalid request body"}}
	}
	if err := u.validator.Validate(input); err != nil {
		return nil, &StepError{Err: ErrStepValidation, Step: step, Current: step, Fields: u.validator.FormatValidationErrors(err)}
	}
	return input, nil
}

func (u *wizardUsecase) persistStep(ctx context.Context, userID string, step entity.WizardStep, input interface{}) error {
	switch in := input.(type) {
	case nil:
		return nil
	case *dto.IdentityStepRequest:
		return u.saveIdentity(ctx, userID, in)
	case *dto.AccessibilityStepRequest:
		needs := in.AccessibilityNeeds
		if needs == nil {
			needs = []string{}
		}
		return u.onboardingUsecase.UpdateOnboardingField(ctx, userID, entity.FieldAccessibilityNeeds, needs)
	case *dto.HealthContextStepRequest:
		if err := u.onboardingUsecase.UpdateOnboardingField(ctx, userID, entity.FieldFocusAreas, in.FocusAreas); err != nil {
			return err
		}
		if in.HealthContext == nil {
			return nil
		}
		return u.onboardingUsecase.UpdateOnboardingField(ctx, userID, entity.FieldHealthContext, converter.HealthContextToEntity(in.HealthContext))
	case *dto.RemindersStepRequest:
		return u.onboardingUsecase.UpdateOnboardingField(ctx, userID, entity.FieldReminders, converter.RemindersToEntity(in))
	case *dto.CaregiverStepRequest:
		return u.onboardingUsecase.UpdateOnboardingField(ctx, userID, entity.FieldCaregiverInfo, converter.CaregiverToEntity(in))
	case *dto.PermissionStepRequest:
		field, _ := step.PermissionField()
		return u.onboardingUsecase.UpdateOnboardingField(ctx, userID, field, in.Granted)
	case *dto.FirstActionStepRequest:
		return u.onboardingUsecase.UpdateOnboardingField(ctx, userID, entity.FieldFirstAction, in.Action)
	}
	return fmt.Errorf("no writer for step %s", step)
}

// saveIdentity creates the record every later step patches. A repeated
// identity submission keeps the original createdAt.
func (u *wizardUsecase) saveIdentity(ctx context.Context, userID string, in *dto.IdentityStepRequest) error {
	data := converter.IdentityToEntity(in)

	existing, err := u.onboardingUsecase.GetOnboardingData(ctx, userID)
	switch {
	case err == nil:
		data.CreatedAt = existing.CreatedAt
	case !errors.Is(err, ErrOnboardingNotFound):
		u.log.Warnf("Failed to read existing onboarding record, createdAt will be reset: %+v", err)
	}

	return u.onboardingUsecase.SaveOnboardingData(ctx, userID, data)
}

// complete marks onboarding done and always sends the user to the main
// stack; a failed write is logged only.
func (u *wizardUsecase) complete(ctx context.Context, userID string) *dto.WizardStepResponse {
	result := &dto.WizardStepResponse{
		Step:            string(entity.StepComplete),
		Stack:           entity.StackMain,
		Persisted:       true,
		RedirectAfterMs: u.policy.CompleteRedirectDelay.Milliseconds(),
	}

	if err := u.onboardingUsecase.CompleteOnboarding(ctx, userID); err != nil {
		u.log.WithField("user_id", userID).Warnf("Failed to mark onboarding complete, proceeding to dashboard: %+v", err)
		result.Persisted = false
		result.Warning = "Onboarding marked complete. Proceeding to dashboard..."
	} else {
		u.sendWelcome(ctx, userID)
	}

	u.sessions.Drop(userID)
	return result
}

func (u *wizardUsecase) sendWelcome(ctx context.Context, userID string) {
	data, err := u.onboardingUsecase.GetOnboardingData(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load onboarding record for welcome message: %+v", err)
		return
	}

	name := data.PreferredName
	if name == "" {
		name = data.FirstName
	}
	if err := u.notifier.SendWelcome(ctx, service.WelcomeMessage{UserID: userID, Email: data.Email, Name: name}); err != nil {
		u.log.Warnf("Failed to send welcome message: %+v", err)
	}
}
