package converter

import (
	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/domain/entity"
)

// IdentityToEntity converts the identity step into the seed record.
func IdentityToEntity(req *dto.IdentityStepRequest) *entity.OnboardingData {
	return &entity.OnboardingData{
		Email:               req.Email,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		MobileNumber:        req.MobileNumber,
		PreferredName:       req.PreferredName,
		AgeGroup:            req.AgeGroup,
		OnboardingCompleted: false,
	}
}

// SaveRequestToEntity converts a full save request into an onboarding record
func SaveRequestToEntity(req *dto.SaveOnboardingRequest) *entity.OnboardingData {
	data := &entity.OnboardingData{
		Email:               req.Email,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		MobileNumber:        req.MobileNumber,
		PreferredName:       req.PreferredName,
		AgeGroup:            req.AgeGroup,
		AccessibilityNeeds:  req.AccessibilityNeeds,
		FocusAreas:          req.FocusAreas,
		FirstAction:         req.FirstAction,
		OnboardingCompleted: req.OnboardingCompleted,
	}
	if req.CaregiverInfo != nil {
		data.CaregiverInfo = CaregiverToEntity(req.CaregiverInfo)
	}
	if req.HealthContext != nil {
		data.HealthContext = HealthContextToEntity(req.HealthContext)
	}
	if req.Permissions != nil {
		data.Permissions = &entity.Permissions{
			CameraAccess:        req.Permissions.CameraAccess,
			LocationAccess:      req.Permissions.LocationAccess,
			NotificationsAccess: req.Permissions.NotificationsAccess,
			StorageAccess:       req.Permissions.StorageAccess,
			ContactsAccess:      req.Permissions.ContactsAccess,
		}
	}
	if req.Reminders != nil {
		data.Reminders = RemindersToEntity(req.Reminders)
	}
	return data
}

func HealthContextToEntity(p *dto.HealthContextPayload) *entity.HealthContext {
	return &entity.HealthContext{
		HasConditions: p.HasConditions,
		Conditions:    p.Conditions,
		Medications:   p.Medications,
		Allergies:     p.Allergies,
		Surgeries:     p.Surgeries,
	}
}

func RemindersToEntity(req *dto.RemindersStepRequest) *entity.Reminders {
	return &entity.Reminders{
		MedicationReminders:  req.MedicationReminders,
		AppointmentReminders: req.AppointmentReminders,
		HealthCheckReminders: req.HealthCheckReminders,
		ReminderTime:         req.ReminderTime,
	}
}

// CaregiverToEntity drops caregiver details when the user has none.
func CaregiverToEntity(req *dto.CaregiverStepRequest) *entity.CaregiverInfo {
	if !req.HasCaregivers {
		return &entity.CaregiverInfo{HasCaregivers: false}
	}
	return &entity.CaregiverInfo{
		HasCaregivers:     true,
		CaregiverName:     req.CaregiverName,
		CaregiverPhone:    req.CaregiverPhone,
		CaregiverRelation: req.CaregiverRelation,
	}
}

// OnboardingToResponse converts an OnboardingData entity to OnboardingResponse DTO
func OnboardingToResponse(data *entity.OnboardingData) *dto.OnboardingResponse {
	if data == nil {
		return nil
	}

	resp := &dto.OnboardingResponse{
		ID:                    data.ID,
		UserID:                data.UserID,
		Email:                 data.Email,
		FirstName:             data.FirstName,
		LastName:              data.LastName,
		MobileNumber:          data.MobileNumber,
		PreferredName:         data.PreferredName,
		AgeGroup:              data.AgeGroup,
		AccessibilityNeeds:    nonNil(data.AccessibilityNeeds),
		FocusAreas:            nonNil(data.FocusAreas),
		FirstAction:           data.FirstAction,
		OnboardingCompleted:   data.OnboardingCompleted,
		OnboardingCompletedAt: data.OnboardingCompletedAt,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}

	if c := data.CaregiverInfo; c != nil {
		resp.CaregiverInfo = &dto.CaregiverStepRequest{
			HasCaregivers:     c.HasCaregivers,
			CaregiverName:     c.CaregiverName,
			CaregiverPhone:    c.CaregiverPhone,
			CaregiverRelation: c.CaregiverRelation,
		}
	}
	if h := data.HealthContext; h != nil {
		resp.HealthContext = &dto.HealthContextPayload{
			HasConditions: h.HasConditions,
			Conditions:    h.Conditions,
			Medications:   h.Medications,
			Allergies:     h.Allergies,
			Surgeries:     h.Surgeries,
		}
	}
	if p := data.Permissions; p != nil {
		resp.Permissions = dto.PermissionsPayload{
			CameraAccess:        p.CameraAccess,
			LocationAccess:      p.LocationAccess,
			NotificationsAccess: p.NotificationsAccess,
			StorageAccess:       p.StorageAccess,
			ContactsAccess:      p.ContactsAccess,
		}
	}
	if r := data.Reminders; r != nil {
		resp.Reminders = &dto.RemindersStepRequest{
			MedicationReminders:  r.MedicationReminders,
			AppointmentReminders: r.AppointmentReminders,
			HealthCheckReminders: r.HealthCheckReminders,
			ReminderTime:         r.ReminderTime,
		}
	}

	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
