package entity

// WizardStep identifies one screen of the onboarding sequence.
type WizardStep string

const (
	StepWelcome                 WizardStep = "welcome"
	StepIdentity                WizardStep = "identity"
	StepAccessibility           WizardStep = "accessibility"
	StepHealthContext           WizardStep = "health-context"
	StepReminders               WizardStep = "reminders"
	StepCaregiver               WizardStep = "caregiver"
	StepPermissionCamera        WizardStep = "permissions-camera"
	StepPermissionStorage       WizardStep = "permissions-storage"
	StepPermissionLocation      WizardStep = "permissions-location"
	StepPermissionNotifications WizardStep = "permissions-notifications"
	StepFirstAction             WizardStep = "first-action"
	StepComplete                WizardStep = "complete"
)

// WizardSteps is the fixed onboarding order.
var WizardSteps = []WizardStep{
	StepWelcome,
	StepIdentity,
	StepAccessibility,
	StepHealthContext,
	StepReminders,
	StepCaregiver,
	StepPermissionCamera,
	StepPermissionStorage,
	StepPermissionLocation,
	StepPermissionNotifications,
	StepFirstAction,
	StepComplete,
}

// Index returns the position of the step in WizardSteps, or -1.
func (s WizardStep) Index() int {
	for i, step := range WizardSteps {
		if step == s {
			return i
		}
	}
	return -1
}

func (s WizardStep) Valid() bool {
	return s.Index() >= 0
}

// Next returns the step that follows s. The terminal step has no successor.
func (s WizardStep) Next() (WizardStep, bool) {
	i := s.Index()
	if i < 0 || i == len(WizardSteps)-1 {
		return "", false
	}
	return WizardSteps[i+1], true
}

func (s WizardStep) Terminal() bool {
	return s == StepComplete
}

// PermissionField maps a permission step to the flag it records.
func (s WizardStep) PermissionField() (string, bool) {
	switch s {
	case StepPermissionCamera:
		return FieldPermissionCamera, true
	case StepPermissionStorage:
		return FieldPermissionStorage, true
	case StepPermissionLocation:
		return FieldPermissionLocation, true
	case StepPermissionNotifications:
		return FieldPermissionNotifications, true
	}
	return "", false
}
