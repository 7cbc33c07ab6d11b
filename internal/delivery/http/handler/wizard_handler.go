package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nueracare-api/internal/delivery/http/middleware"
	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/usecase"
	"nueracare-api/pkg/response"

	"github.com/gorilla/mux"
)

const maxStepBodyBytes = 64 << 10

type WizardHandler struct {
	wizardUsecase usecase.WizardUsecase
}

func NewWizardHandler(wizardUsecase usecase.WizardUsecase) *WizardHandler {
	return &WizardHandler{
		wizardUsecase: wizardUsecase,
	}
}

func (h *WizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	state, err := h.wizardUsecase.GetWizard(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "Failed to get onboarding wizard")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding wizard retrieved successfully", state)
}

func (h *WizardHandler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	step := entity.WizardStep(mux.Vars(r)["step"])

	body, err := io.ReadAll(io.LimitReader(r.Body, maxStepBodyBytes))
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	result, err := h.wizardUsecase.SubmitStep(r.Context(), userID, step, json.RawMessage(body))
	if err != nil {
		var stepErr *usecase.StepError
		if !errors.As(err, &stepErr) {
			respondStoreError(w, err, "Failed to save onboarding step")
			return
		}

		switch {
		case errors.Is(err, usecase.ErrUnknownStep):
			response.NotFound(w, "Onboarding step not found")
		case errors.Is(err, usecase.ErrStepValidation):
			response.ValidationError(w, stepErr.Fields)
		case errors.Is(err, usecase.ErrStepOutOfOrder):
			response.Conflict(w, "Onboarding step is out of order", map[string]string{
				"currentStep": string(stepErr.Current),
			})
		case errors.Is(err, usecase.ErrStepInFlight):
			response.Conflict(w, "Onboarding step is already being saved", map[string]string{
				"currentStep": string(stepErr.Current),
			})
		case errors.Is(err, usecase.ErrWizardClosed):
			response.Conflict(w, "Onboarding is already completed", map[string]string{
				"currentStep": string(stepErr.Current),
				"stack":       entity.StackMain,
			})
		default:
			response.InternalServerError(w, "Failed to save onboarding step")
		}
		return
	}

	response.Success(w, http.StatusOK, "Onboarding step saved successfully", result)
}
