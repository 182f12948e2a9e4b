package controllers

import (
	"log/slog"
	"net/http"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
	Tokens  domain.TokenService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService, tokens domain.TokenService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
		Tokens:  tokens,
	}
}

// SubmitRegistrationRequest is the request body for POST /registrations.
// Fields arrive as raw strings from the conversational front-end; the core
// performs all structural validation, so no shape checks happen here.
type SubmitRegistrationRequest struct {
	EventID  string `json:"event_id"`
	OwnerID  string `json:"owner_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// RegistrationSuccessResponse is the success envelope for registration endpoints.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Submit godoc
// @Summary Register for an event, or update an existing registration
// @Description Creates a registration for the (event, owner) pair or updates the owner's existing one in place. The response does not distinguish creation from update.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body controllers.SubmitRegistrationRequest true "Submission"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed, error.field names the offending field"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (EMAIL_TAKEN|PHONE_TAKEN) or event_closed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	reg, err := c.Service.Submit(r.Context(), req.EventID, req.OwnerID, req.FullName, req.Email, req.Phone)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// Get godoc
// @Summary Fetch one registration
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) Get(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}

	reg, err := c.Service.GetByID(r.Context(), registrationID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// TokenSuccessResponse is the success envelope for POST /registrations/{registrationID}/qr.
type TokenSuccessResponse struct {
	Data  *domain.QRToken   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// IssueToken godoc
// @Summary Issue or return the registration's QR token
// @Description Idempotent: the first call mints the token, every later call returns the same payload.
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} controllers.TokenSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID}/qr [post]
func (c *RegistrationController) IssueToken(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}

	token, err := c.Tokens.IssueOrGet(r.Context(), registrationID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, token)
}
