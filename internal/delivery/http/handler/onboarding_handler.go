package handler

import (
	"encoding/json"
	"net/http"

	"nueracare-api/internal/converter"
	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/delivery/http/middleware"
	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/usecase"
	"nueracare-api/pkg/response"
	"nueracare-api/pkg/validator"
)

type OnboardingHandler struct {
	onboardingUsecase usecase.OnboardingUsecase
	validator         *validator.CustomValidator
}

func NewOnboardingHandler(onboardingUsecase usecase.OnboardingUsecase, validator *validator.CustomValidator) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUsecase: onboardingUsecase,
		validator:         validator,
	}
}

func (h *OnboardingHandler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	data, err := h.onboardingUsecase.GetOnboardingData(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrOnboardingNotFound:
			response.NotFound(w, "Onboarding record not found")
		default:
			respondStoreError(w, err, "Failed to get onboarding record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Onboarding record retrieved successfully", converter.OnboardingToResponse(data))
}

func (h *OnboardingHandler) SaveOnboarding(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	// A completed record is closed; replacing it would reopen onboarding.
	if h.onboardingUsecase.IsOnboardingCompleted(r.Context(), userID) {
		response.Conflict(w, "Onboarding is already completed", nil)
		return
	}
	if err := h.onboardingUsecase.SaveOnboardingData(r.Context(), userID, converter.SaveRequestToEntity(&req)); err != nil {
		respondStoreError(w, err, "Failed to save onboarding record")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding record saved successfully", nil)
}

func (h *OnboardingHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}
	if !entity.IsWritableOnboardingField(req.FieldPath) {
		response.ValidationError(w, map[string]string{"fieldPath": "fieldPath cannot be updated"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.onboardingUsecase.UpdateOnboardingField(r.Context(), userID, req.FieldPath, req.Value); err != nil {
		respondStoreError(w, err, "Failed to update onboarding field")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding field updated successfully", nil)
}

func (h *OnboardingHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.onboardingUsecase.CompleteOnboarding(r.Context(), userID); err != nil {
		respondStoreError(w, err, "Failed to complete onboarding")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding completed successfully", dto.CompletionStatusResponse{
		UserID:    userID,
		Completed: true,
	})
}

// GetStatus reports the completion gate. It never fails; an unreadable
// record reads as incomplete.
func (h *OnboardingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	response.Success(w, http.StatusOK, "Onboarding status retrieved successfully", dto.CompletionStatusResponse{
		UserID:    userID,
		Completed: h.onboardingUsecase.IsOnboardingCompleted(r.Context(), userID),
	})
}

func (h *OnboardingHandler) DeleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.onboardingUsecase.DeleteOnboardingData(r.Context(), userID); err != nil {
		respondStoreError(w, err, "Failed to delete onboarding record")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding record deleted successfully", nil)
}
