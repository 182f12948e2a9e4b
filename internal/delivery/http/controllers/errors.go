package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/domain"
)

// writeDomainError maps core errors onto the API envelope. Every error the
// core can return is caller-inspectable: validation failures name the field,
// conflicts name the claimed value kind. Anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		helpers.WriteJSONAPIError(w, http.StatusBadRequest, &helpers.APIError{
			Code:    helpers.ErrCodeValidation,
			Message: validation.Error(),
			Field:   validation.Field,
		})
		return
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		helpers.WriteJSONAPIError(w, http.StatusConflict, &helpers.APIError{
			Code:    helpers.ErrCodeConflict,
			Message: conflict.Error(),
			Reason:  string(conflict.Reason),
		})
		return
	}
	var closed *domain.EventClosedError
	if errors.As(err, &closed) {
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeEventClosed, closed.Error())
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	if errors.Is(err, domain.ErrTokenEventMismatch) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}
