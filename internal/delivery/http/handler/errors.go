package handler

import (
	"errors"
	"net/http"

	"nueracare-api/internal/domain/repository"
	"nueracare-api/internal/usecase"
	"nueracare-api/pkg/response"
)

// respondStoreError maps document store failures onto the response
// envelope. Anything unrecognised is a 500 with the fallback message.
func respondStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrMissingUserID):
		response.Unauthorized(w, "Session has no user")
	case errors.Is(err, repository.ErrNotFound):
		response.Conflict(w, "Your record is not ready yet, please try again", nil)
	case errors.Is(err, repository.ErrValidation):
		response.UnprocessableEntity(w, "The document was rejected by storage")
	case errors.Is(err, repository.ErrAuth):
		response.InternalServerError(w, "Document storage is misconfigured")
	case errors.Is(err, repository.ErrNetwork):
		response.ServiceUnavailable(w, "Document storage is unavailable, please try again")
	default:
		response.InternalServerError(w, fallback)
	}
}
