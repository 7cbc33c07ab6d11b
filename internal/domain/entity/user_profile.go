package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Profile measurements are stored as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const UserProfileIDPrefix = "user-"

// UserProfileID derives the profile document key for a user.
func UserProfileID(userID string) string {
	return UserProfileIDPrefix + userID
}

// UserProfile holds health and identity display data for the profile screen.
type UserProfile struct {
	ID              string           `json:"_id,omitempty"`
	Type            string           `json:"_type,omitempty"`
	UserID          string           `json:"clerkId"`
	FirstName       string           `json:"firstName,omitempty"`
	LastName        string           `json:"lastName,omitempty"`
	Email           string           `json:"email,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	BloodGroup      string           `json:"bloodGroup,omitempty"`
	Age             *int             `json:"age,omitempty"`
	Height          *decimal.Decimal `json:"height,omitempty"`
	Weight          *decimal.Decimal `json:"weight,omitempty"`
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

// Blood groups
const (
	BloodGroupOPositive  = "O+"
	BloodGroupONegative  = "O-"
	BloodGroupAPositive  = "A+"
	BloodGroupANegative  = "A-"
	BloodGroupBPositive  = "B+"
	BloodGroupBNegative  = "B-"
	BloodGroupABPositive = "AB+"
	BloodGroupABNegative = "AB-"
)

// Primary languages
const (
	LanguageEnglish   = "english"
	LanguageHindi     = "hindi"
	LanguageTamil     = "tamil"
	LanguageTelugu    = "telugu"
	LanguageKannada   = "kannada"
	LanguageMalayalam = "malayalam"
)
