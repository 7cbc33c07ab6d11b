package dto

import "time"

// SaveOnboardingRequest is the full seed record written by create-or-replace.
type SaveOnboardingRequest struct {
	Email               string                `json:"email" validate:"required,email"`
	FirstName           string                `json:"firstName" validate:"max=100"`
	LastName            string                `json:"lastName" validate:"max=100"`
	MobileNumber        string                `json:"mobileNumber" validate:"required,min=4,max=20"`
	PreferredName       string                `json:"preferredName" validate:"max=100"`
	AgeGroup            string                `json:"ageGroup" validate:"required,oneof=18-30 31-45 46-60 60+"`
	AccessibilityNeeds  []string              `json:"accessibilityNeeds" validate:"omitempty,dive,oneof=large-text high-contrast screen-reader voice-input closed-captions"`
	CaregiverInfo       *CaregiverStepRequest `json:"caregiverInfo" validate:"omitempty"`
	HealthContext       *HealthContextPayload `json:"healthContext" validate:"omitempty"`
	Permissions         *PermissionsPayload   `json:"permissions"`
	Reminders           *RemindersStepRequest `json:"reminders" validate:"omitempty"`
	FocusAreas          []string              `json:"focusAreas" validate:"omitempty,dive,oneof=heart-health mental-wellness fitness nutrition sleep stress chronic-condition preventive-care"`
	FirstAction         string                `json:"firstAction" validate:"omitempty,oneof=upload-report skip"`
	OnboardingCompleted bool                  `json:"onboardingCompleted"`
}

// UpdateFieldRequest patches one field path of the onboarding record.
// Nested fields use dots, e.g. permissions.cameraAccess.
type UpdateFieldRequest struct {
	FieldPath string      `json:"fieldPath" validate:"required,fieldpath"`
	Value     interface{} `json:"value"`
}

type HealthContextPayload struct {
	HasConditions bool     `json:"hasConditions"`
	Conditions    []string `json:"conditions" validate:"omitempty,dive,max=200"`
	Medications   []string `json:"medications" validate:"omitempty,dive,max=200"`
	Allergies     []string `json:"allergies" validate:"omitempty,dive,max=200"`
	Surgeries     []string `json:"surgeries" validate:"omitempty,dive,max=200"`
}

type PermissionsPayload struct {
	CameraAccess        bool `json:"cameraAccess"`
	LocationAccess      bool `json:"locationAccess"`
	NotificationsAccess bool `json:"notificationsAccess"`
	StorageAccess       bool `json:"storageAccess"`
	ContactsAccess      bool `json:"contactsAccess"`
}

// OnboardingResponse represents the onboarding record in responses
type OnboardingResponse struct {
	ID                    string                `json:"id"`
	UserID                string                `json:"userId"`
	Email                 string                `json:"email,omitempty"`
	FirstName             string                `json:"firstName,omitempty"`
	LastName              string                `json:"lastName,omitempty"`
	MobileNumber          string                `json:"mobileNumber,omitempty"`
	PreferredName         string                `json:"preferredName,omitempty"`
	AgeGroup              string                `json:"ageGroup,omitempty"`
	AccessibilityNeeds    []string              `json:"accessibilityNeeds"`
	CaregiverInfo         *CaregiverStepRequest `json:"caregiverInfo,omitempty"`
	HealthContext         *HealthContextPayload `json:"healthContext,omitempty"`
	Permissions           PermissionsPayload    `json:"permissions"`
	Reminders             *RemindersStepRequest `json:"reminders,omitempty"`
	FocusAreas            []string              `json:"focusAreas"`
	FirstAction           string                `json:"firstAction,omitempty"`
	OnboardingCompleted   bool                  `json:"onboardingCompleted"`
	OnboardingCompletedAt *time.Time            `json:"onboardingCompletedAt,omitempty"`
	CreatedAt             *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt             *time.Time            `json:"updatedAt,omitempty"`
}

// CompletionStatusResponse is the completion gate result
type CompletionStatusResponse struct {
	UserID    string `json:"userId"`
	Completed bool   `json:"completed"`
}
