package handler

import (
	"net/http"

	"nueracare-api/internal/delivery/http/middleware"
	"nueracare-api/internal/usecase"
	"nueracare-api/pkg/response"
)

type SessionHandler struct {
	sessionRouterUsecase usecase.SessionRouterUsecase
	overviewUsecase      usecase.OverviewUsecase
}

func NewSessionHandler(sessionRouterUsecase usecase.SessionRouterUsecase, overviewUsecase usecase.OverviewUsecase) *SessionHandler {
	return &SessionHandler{
		sessionRouterUsecase: sessionRouterUsecase,
		overviewUsecase:      overviewUsecase,
	}
}

// GetRoute tells the client which screen stack to mount.
func (h *SessionHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	response.Success(w, http.StatusOK, "Session route resolved", h.sessionRouterUsecase.Resolve(r.Context(), session))
}

func (h *SessionHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	overview, err := h.overviewUsecase.GetOverview(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "Failed to get overview")
		return
	}

	response.Success(w, http.StatusOK, "Overview retrieved successfully", overview)
}
