package entity

import (
	"strings"
	"time"
)

// OnboardingIDPrefix prefixes the user's identity-provider subject to form
// the onboarding document key.
const OnboardingIDPrefix = "onboarding-"

// OnboardingID derives the onboarding document key for a user.
func OnboardingID(userID string) string {
	return OnboardingIDPrefix + userID
}

// Top-level onboarding field paths.
const (
	FieldEmail                 = "email"
	FieldFirstName             = "firstName"
	FieldLastName              = "lastName"
	FieldMobileNumber          = "mobileNumber"
	FieldPreferredName         = "preferredName"
	FieldAgeGroup              = "ageGroup"
	FieldAccessibilityNeeds    = "accessibilityNeeds"
	FieldCaregiverInfo         = "caregiverInfo"
	FieldHealthContext         = "healthContext"
	FieldPermissions           = "permissions"
	FieldReminders             = "reminders"
	FieldFocusAreas            = "focusAreas"
	FieldFirstAction           = "firstAction"
	FieldOnboardingCompleted   = "onboardingCompleted"
	FieldOnboardingCompletedAt = "onboardingCompletedAt"
	FieldCreatedAt             = "createdAt"
	FieldUpdatedAt             = "updatedAt"
	FieldClerkID               = "clerkId"
)

// writableFields are the answer fields a client may patch directly. Identity,
// completion and timestamp fields are owned by the server.
var writableFields = map[string]struct{}{
	FieldEmail:              {},
	FieldFirstName:          {},
	FieldLastName:           {},
	FieldMobileNumber:       {},
	FieldPreferredName:      {},
	FieldAgeGroup:           {},
	FieldAccessibilityNeeds: {},
	FieldCaregiverInfo:      {},
	FieldHealthContext:      {},
	FieldPermissions:        {},
	FieldReminders:          {},
	FieldFocusAreas:         {},
	FieldFirstAction:        {},
}

// IsWritableOnboardingField reports whether a dotted field path falls under
// a client-writable answer field.
func IsWritableOnboardingField(path string) bool {
	root, _, _ := strings.Cut(path, ".")
	_, ok := writableFields[root]
	return ok
}

// Nested permission flag paths.
const (
	FieldPermissionCamera        = FieldPermissions + ".cameraAccess"
	FieldPermissionLocation      = FieldPermissions + ".locationAccess"
	FieldPermissionNotifications = FieldPermissions + ".notificationsAccess"
	FieldPermissionStorage       = FieldPermissions + ".storageAccess"
	FieldPermissionContacts      = FieldPermissions + ".contactsAccess"
)

// OnboardingData is the per-user document accumulating wizard answers.
// UserID is persisted as clerkId, the identity-provider subject.
type OnboardingData struct {
	ID                    string         `json:"_id,omitempty"`
	Type                  string         `json:"_type,omitempty"`
	UserID                string         `json:"clerkId"`
	Email                 string         `json:"email,omitempty"`
	FirstName             string         `json:"firstName,omitempty"`
	LastName              string         `json:"lastName,omitempty"`
	MobileNumber          string         `json:"mobileNumber,omitempty"`
	PreferredName         string         `json:"preferredName,omitempty"`
	AgeGroup              string         `json:"ageGroup,omitempty"`
	AccessibilityNeeds    []string       `json:"accessibilityNeeds,omitempty"`
	CaregiverInfo         *CaregiverInfo `json:"caregiverInfo,omitempty"`
	HealthContext         *HealthContext `json:"healthContext,omitempty"`
	Permissions           *Permissions   `json:"permissions,omitempty"`
	Reminders             *Reminders     `json:"reminders,omitempty"`
	FocusAreas            []string       `json:"focusAreas,omitempty"`
	FirstAction           string         `json:"firstAction,omitempty"`
	OnboardingCompleted   bool           `json:"onboardingCompleted"`
	OnboardingCompletedAt *time.Time     `json:"onboardingCompletedAt,omitempty"`
	CreatedAt             *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt             *time.Time     `json:"updatedAt,omitempty"`
}

type CaregiverInfo struct {
	HasCaregivers     bool   `json:"hasCaregivers"`
	CaregiverName     string `json:"caregiverName,omitempty"`
	CaregiverPhone    string `json:"caregiverPhone,omitempty"`
	CaregiverRelation string `json:"caregiverRelation,omitempty"`
}

type HealthContext struct {
	HasConditions bool     `json:"hasConditions"`
	Conditions    []string `json:"conditions,omitempty"`
	Medications   []string `json:"medications,omitempty"`
	Allergies     []string `json:"allergies,omitempty"`
	Surgeries     []string `json:"surgeries,omitempty"`
}

type Permissions struct {
	CameraAccess        bool `json:"cameraAccess"`
	LocationAccess      bool `json:"locationAccess"`
	NotificationsAccess bool `json:"notificationsAccess"`
	StorageAccess       bool `json:"storageAccess"`
	ContactsAccess      bool `json:"contactsAccess"`
}

type Reminders struct {
	MedicationReminders  bool   `json:"medicationReminders"`
	AppointmentReminders bool   `json:"appointmentReminders"`
	HealthCheckReminders bool   `json:"healthCheckReminders"`
	ReminderTime         string `json:"reminderTime,omitempty"`
}

// Age groups
const (
	AgeGroup18To30 = "18-30"
	AgeGroup31To45 = "31-45"
	AgeGroup46To60 = "46-60"
	AgeGroup60Plus = "60+"
)

// Accessibility needs
const (
	AccessibilityLargeText      = "large-text"
	AccessibilityHighContrast   = "high-contrast"
	AccessibilityScreenReader   = "screen-reader"
	AccessibilityVoiceInput     = "voice-input"
	AccessibilityClosedCaptions = "closed-captions"
)

// Caregiver relations
const (
	CaregiverSpouse       = "spouse"
	CaregiverChild        = "child"
	CaregiverParent       = "parent"
	CaregiverSibling      = "sibling"
	CaregiverFriend       = "friend"
	CaregiverProfessional = "professional"
	CaregiverOther        = "other"
)

// Focus areas
const (
	FocusHeartHealth      = "heart-health"
	FocusMentalWellness   = "mental-wellness"
	FocusFitness          = "fitness"
	FocusNutrition        = "nutrition"
	FocusSleep            = "sleep"
	FocusStress           = "stress"
	FocusChronicCondition = "chronic-condition"
	FocusPreventiveCare   = "preventive-care"
)

// First actions
const (
	FirstActionUploadReport = "upload-report"
	FirstActionSkip         = "skip"
)
