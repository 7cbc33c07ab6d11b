package dto

// Step inputs. Each wizard step owns exactly one slice of the onboarding
// record.

type IdentityStepRequest struct {
	Email         string `json:"email" validate:"required,email"`
	FirstName     string `json:"firstName" validate:"max=100"`
	LastName      string `json:"lastName" validate:"max=100"`
	MobileNumber  string `json:"mobileNumber" validate:"required,min=4,max=20"`
	PreferredName string `json:"preferredName" validate:"max=100"`
	AgeGroup      string `json:"ageGroup" validate:"required,oneof=18-30 31-45 46-60 60+"`
}

type AccessibilityStepRequest struct {
	AccessibilityNeeds []string `json:"accessibilityNeeds" validate:"omitempty,dive,oneof=large-text high-contrast screen-reader voice-input closed-captions"`
}

type HealthContextStepRequest struct {
	FocusAreas    []string              `json:"focusAreas" validate:"required,min=1,dive,oneof=heart-health mental-wellness fitness nutrition sleep stress chronic-condition preventive-care"`
	HealthContext *HealthContextPayload `json:"healthContext" validate:"omitempty"`
}

type RemindersStepRequest struct {
	MedicationReminders  bool   `json:"medicationReminders"`
	AppointmentReminders bool   `json:"appointmentReminders"`
	HealthCheckReminders bool   `json:"healthCheckReminders"`
	ReminderTime         string `json:"reminderTime,omitempty" validate:"omitempty,hhmm"`
}

// CaregiverStepRequest requires a name and relation only when the user has
// a caregiver.
type CaregiverStepRequest struct {
	HasCaregivers     bool   `json:"hasCaregivers"`
	CaregiverName     string `json:"caregiverName,omitempty" validate:"required_if=HasCaregivers true,max=100"`
	CaregiverPhone    string `json:"caregiverPhone,omitempty" validate:"max=20"`
	CaregiverRelation string `json:"caregiverRelation,omitempty" validate:"required_if=HasCaregivers true,omitempty,oneof=spouse child parent sibling friend professional other"`
}

type PermissionStepRequest struct {
	Granted bool `json:"granted"`
}

type FirstActionStepRequest struct {
	Action string `json:"action" validate:"required,oneof=upload-report skip"`
}

// WizardStateResponse reports where a user is in the onboarding sequence.
// Completed users report the complete step and no live session.
type WizardStateResponse struct {
	CurrentStep string   `json:"currentStep"`
	Steps       []string `json:"steps"`
	Saving      bool     `json:"saving"`
	Completed   bool     `json:"completed"`
}

// WizardStepResponse is the outcome of a step submission. Persisted is false
// when a best-effort write failed and the wizard advanced anyway.
type WizardStepResponse struct {
	Step            string `json:"step"`
	NextStep        string `json:"nextStep,omitempty"`
	Stack           string `json:"stack,omitempty"`
	Persisted       bool   `json:"persisted"`
	Warning         string `json:"warning,omitempty"`
	RedirectAfterMs int64  `json:"redirectAfterMs,omitempty"`
}
