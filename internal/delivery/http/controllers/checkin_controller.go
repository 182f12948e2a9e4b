package controllers

import (
	"log/slog"
	"net/http"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/domain"
)

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{Logger: logger, Service: svc}
}

// ScanRequest is the request body for POST /checkins/scan.
type ScanRequest struct {
	EventID string `json:"event_id"`
	QRToken string `json:"qr_token"`
	Method  string `json:"method"`
}

// ScanSuccessResponse is the success envelope for POST /checkins/scan.
type ScanSuccessResponse struct {
	Data  *domain.CheckInResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// Scan godoc
// @Summary Check an attendee in by scanned QR token
// @Description Validates the token against the event and records the arrival once. A replayed scan returns the original check-in with already_checked_in set.
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ScanRequest true "Scan"
// @Success 200 {object} controllers.ScanSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (token belongs to another event)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown event or token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkins/scan [post]
func (c *CheckInController) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.Scan(r.Context(), req.EventID, req.QRToken, req.Method)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
