package handler

import (
	"errors"
	"net/http"

	"github.com/agriconnect/agrimarket-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// errorStatus maps service sentinels onto HTTP status and a stable error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden, "access_denied"
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, service.ErrInsufficientInventory):
		return http.StatusConflict, "insufficient_inventory"
	case errors.Is(err, service.ErrAlreadyPaid):
		return http.StatusConflict, "already_paid"
	case errors.Is(err, service.ErrCropUnavailable):
		return http.StatusConflict, "crop_unavailable"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, "username_taken"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	}
	return http.StatusBadRequest, "bad_request"
}
