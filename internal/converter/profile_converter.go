package converter

import (
	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UpsertRequestToEntity converts an UpsertProfileRequest DTO to a UserProfile entity
func UpsertRequestToEntity(req *dto.UpsertProfileRequest) *entity.UserProfile {
	return &entity.UserProfile{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		ImageURL:        req.ImageURL,
		BloodGroup:      req.BloodGroup,
		Age:             req.Age,
		Height:          req.Height,
		Weight:          req.Weight,
		ChronicDiseases: req.ChronicDiseases,
		PrimaryLanguage: req.PrimaryLanguage,
		CaregiverName:   req.CaregiverName,
		CaregiverPhone:  req.CaregiverPhone,
		HighContrast:    req.HighContrast,
		LargeTextMode:   req.LargeTextMode,
		ReducedMotion:   req.ReducedMotion,
		VoiceMode:       req.VoiceMode,
	}
}

// UpdateRequestToFields lists the document fields present in the request
func UpdateRequestToFields(req *dto.UpdateProfileRequest) map[string]interface{} {
	fields := map[string]interface{}{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			fields[key] = *v
		}
	}

	setString("firstName", req.FirstName)
	setString("lastName", req.LastName)
	setString("email", req.Email)
	setString("imageUrl", req.ImageURL)
	setString("bloodGroup", req.BloodGroup)
	setString("chronicDiseases", req.ChronicDiseases)
	setString("primaryLanguage", req.PrimaryLanguage)
	setString("caregiverName", req.CaregiverName)
	setString("caregiverPhone", req.CaregiverPhone)
	setBool("highContrast", req.HighContrast)
	setBool("largeTextMode", req.LargeTextMode)
	setBool("reducedMotion", req.ReducedMotion)
	setBool("voiceMode", req.VoiceMode)
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}

	return fields
}

// ProfileToResponse converts a UserProfile entity to ProfileResponse DTO
func ProfileToResponse(profile *entity.UserProfile) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.ProfileResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		Email:           profile.Email,
		ImageURL:        profile.ImageURL,
		BloodGroup:      profile.BloodGroup,
		Age:             profile.Age,
		Height:          profile.Height,
		Weight:          profile.Weight,
		BMI:             BMI(profile.Height, profile.Weight),
		ChronicDiseases: profile.ChronicDiseases,
		PrimaryLanguage: profile.PrimaryLanguage,
		CaregiverName:   profile.CaregiverName,
		CaregiverPhone:  profile.CaregiverPhone,
		HighContrast:    profile.HighContrast,
		LargeTextMode:   profile.LargeTextMode,
		ReducedMotion:   profile.ReducedMotion,
		VoiceMode:       profile.VoiceMode,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}
}

// BMI computes weight(kg) / height(m)^2 rounded to one decimal place, from a
// height in centimetres.
func BMI(heightCm, weightKg *decimal.Decimal) *decimal.Decimal {
	if heightCm == nil || weightKg == nil || !heightCm.IsPositive() || !weightKg.IsPositive() {
		return nil
	}
	meters := heightCm.Div(hundred)
	bmi := weightKg.Div(meters.Mul(meters)).Round(1)
	return &bmi
}
