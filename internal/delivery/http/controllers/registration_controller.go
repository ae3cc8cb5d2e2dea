package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegistrationRequest is the request body for registering an attendee to a
// session. The conference is derived from the session server-side.
type RegistrationRequest struct {
	SessionID  string `json:"session_id"`
	AttendeeID string `json:"attendee_id"`
}

// Validate implements helpers.Validator.
func (r *RegistrationRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(r.SessionID) {
		errs = append(errs, "session_id must be a UUID")
	}
	if !uuidRegex.MatchString(r.AttendeeID) {
		errs = append(errs, "attendee_id must be a UUID")
	}
	return errs
}

// PaymentRequest is the request body for processing a registration payment.
type PaymentRequest struct {
	RegistrationID string `json:"registration_id"`
}

// Validate implements helpers.Validator.
func (r *PaymentRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(r.RegistrationID) {
		errs = append(errs, "registration_id must be a UUID")
	}
	return errs
}

// CreateRegistration godoc
// @Summary Register an attendee to a session
// @Description Registers an attendee. Rejects with conflict when the session is full, when the attendee is booked into an overlapping session, or when the attendee is already registered for this session.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body controllers.RegistrationRequest true "Registration fields"
// @Success 201 {object} helpers.APIResponse{data=domain.Registration}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [post]
func (c *RegistrationController) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	reg := domain.NewRegistration("", req.SessionID, req.AttendeeID, time.Time{})
	created, err := c.Service.CreateRegistration(r.Context(), reg)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetRegistration godoc
// @Summary Get a registration by ID
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.Registration}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	reg, err := c.Service.GetRegistration(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListSessionRegistrations godoc
// @Summary List the active registrations of a session
// @Tags registrations
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Registration}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID}/registrations [get]
func (c *RegistrationController) ListSessionRegistrations(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	regs, err := c.Service.ListSessionRegistrations(r.Context(), sessionID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// DeleteRegistration godoc
// @Summary Soft-delete a registration
// @Description Frees the seat and the attendee's time slot.
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [delete]
func (c *RegistrationController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	if err := c.Service.DeleteRegistration(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProcessPayment godoc
// @Summary Process payment for a registration
// @Description Runs the payment and returns the registration with its new payment status. A failed payment may be retried; a paid registration is rejected.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body controllers.PaymentRequest true "Registration to charge"
// @Success 200 {object} helpers.APIResponse{data=domain.Registration}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /payments/process [post]
func (c *RegistrationController) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.ProcessPayment(r.Context(), req.RegistrationID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
