package handler

import (
	"encoding/json"
	"net/http"

	"nueracare-api/internal/delivery/dto"
	"nueracare-api/internal/delivery/http/middleware"
	"nueracare-api/internal/usecase"
	"nueracare-api/pkg/response"
	"nueracare-api/pkg/validator"
)

type ProfileHandler struct {
	userProfileUsecase usecase.UserProfileUsecase
	validator          *validator.CustomValidator
}

func NewProfileHandler(userProfileUsecase usecase.UserProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		userProfileUsecase: userProfileUsecase,
		validator:          validator,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	profile, err := h.userProfileUsecase.GetUserProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			respondStoreError(w, err, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	profile, err := h.userProfileUsecase.UpsertUserProfile(r.Context(), userID, &req)
	if err != nil {
		respondStoreError(w, err, "Failed to save profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile saved successfully", profile)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	profile, err := h.userProfileUsecase.UpdateUserProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrNothingToUpdate:
			response.BadRequest(w, "No profile fields to update")
		default:
			respondStoreError(w, err, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.userProfileUsecase.DeleteUserProfile(r.Context(), userID); err != nil {
		respondStoreError(w, err, "Failed to delete profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile deleted successfully", nil)
}
