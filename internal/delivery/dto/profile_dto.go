package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertProfileRequest replaces the whole profile document
type UpsertProfileRequest struct {
	FirstName       string           `json:"firstName" validate:"max=100"`
	LastName        string           `json:"lastName" validate:"max=100"`
	Email           string           `json:"email" validate:"omitempty,email"`
	ImageURL        string           `json:"imageUrl" validate:"omitempty,url"`
	BloodGroup      string           `json:"bloodGroup" validate:"omitempty,oneof=O+ O- A+ A- B+ B- AB+ AB-"`
	Age             *int             `json:"age" validate:"omitempty,gte=0,lte=130"`
	Height          *decimal.Decimal `json:"height" validate:"omitempty,gt=0,lte=500"`
	Weight          *decimal.Decimal `json:"weight" validate:"omitempty,gt=0,lte=500"`
	ChronicDiseases string           `json:"chronicDiseases" validate:"max=1000"`
	PrimaryLanguage string           `json:"primaryLanguage" validate:"omitempty,oneof=english hindi tamil telugu kannada malayalam"`
	CaregiverName   string           `json:"caregiverName" validate:"max=100"`
	CaregiverPhone  string           `json:"caregiverPhone" validate:"max=20"`
	HighContrast    bool             `json:"highContrast"`
	LargeTextMode   bool             `json:"largeTextMode"`
	ReducedMotion   bool             `json:"reducedMotion"`
	VoiceMode       bool             `json:"voiceMode"`
}

// UpdateProfileRequest patches only the fields that are present
type UpdateProfileRequest struct {
	FirstName       *string          `json:"firstName" validate:"omitempty,max=100"`
	LastName        *string          `json:"lastName" validate:"omitempty,max=100"`
	Email           *string          `json:"email" validate:"omitempty,email"`
	ImageURL        *string          `json:"imageUrl" validate:"omitempty,url"`
	BloodGroup      *string          `json:"bloodGroup" validate:"omitempty,oneof=O+ O- A+ A- B+ B- AB+ AB-"`
	Age             *int             `json:"age" validate:"omitempty,gte=0,lte=130"`
	Height          *decimal.Decimal `json:"height" validate:"omitempty,gt=0,lte=500"`
	Weight          *decimal.Decimal `json:"weight" validate:"omitempty,gt=0,lte=500"`
	ChronicDiseases *string          `json:"chronicDiseases" validate:"omitempty,max=1000"`
	PrimaryLanguage *string          `json:"primaryLanguage" validate:"omitempty,oneof=english hindi tamil telugu kannada malayalam"`
	CaregiverName   *string          `json:"caregiverName" validate:"omitempty,max=100"`
	CaregiverPhone  *string          `json:"caregiverPhone" validate:"omitempty,max=20"`
	HighContrast    *bool            `json:"highContrast"`
	LargeTextMode   *bool            `json:"largeTextMode"`
	ReducedMotion   *bool            `json:"reducedMotion"`
	VoiceMode       *bool            `json:"voiceMode"`
}

// ProfileResponse represents the user profile in responses
type ProfileResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	FirstName       string           `json:"firstName,omitempty"`
	LastName        string           `json:"lastName,omitempty"`
	Email           string           `json:"email,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	BloodGroup      string           `json:"bloodGroup,omitempty"`
	Age             *int             `json:"age,omitempty"`
	Height          *decimal.Decimal `json:"height,omitempty"`
	Weight          *decimal.Decimal `json:"weight,omitempty"`
	BMI             *decimal.Decimal `json:"bmi,omitempty"`
	ChronicDiseases string           `json:"chronicDiseases,omitempty"`
	PrimaryLanguage string           `json:"primaryLanguage,omitempty"`
	CaregiverName   string           `json:"caregiverName,omitempty"`
	CaregiverPhone  string           `json:"caregiverPhone,omitempty"`
	HighContrast    bool             `json:"highContrast"`
	LargeTextMode   bool             `json:"largeTextMode"`
	ReducedMotion   bool             `json:"reducedMotion"`
	VoiceMode       bool             `json:"voiceMode"`
	CreatedAt       *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
}
