package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// SessionRequest is the request body for creating or updating a session.
type SessionRequest struct {
	Name         string          `json:"name"`
	Speaker      string          `json:"speaker"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	MaxAttendees int             `json:"max_attendees"`
	Price        decimal.Decimal `json:"price"`
}

// Validate implements helpers.Validator.
func (r *SessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Speaker) == "" {
		errs = append(errs, "speaker is required")
	}
	if r.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if r.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	if r.MaxAttendees <= 0 {
		errs = append(errs, "max_attendees must be positive")
	}
	if r.Price.IsNegative() {
		errs = append(errs, "price must not be negative")
	}
	return errs
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Creates a session. Rejects with bad_request when the interval is invalid and with conflict when it overlaps another session of the same conference.
// @Tags sessions
// @Accept json
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body controllers.SessionRequest true "Session fields"
// @Success 201 {object} helpers.APIResponse{data=domain.Session}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := pathID(w, r, "conferenceID")
	if !ok {
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	session := domain.NewSession(conferenceID, req.Name, req.Speaker, req.StartTime, req.EndTime, req.MaxAttendees, req.Price, time.Time{}, time.Time{})
	if err := c.Service.CreateSession(r.Context(), session); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// ListConferenceSessions godoc
// @Summary List the sessions of a conference
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Session}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) ListConferenceSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := pathID(w, r, "conferenceID")
	if !ok {
		return
	}
	sessions, err := c.Service.ListConferenceSessions(r.Context(), conferenceID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetSession godoc
// @Summary Get a session by ID
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.Session}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [get]
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	session, err := c.Service.GetSession(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// UpdateSession godoc
// @Summary Update a session
// @Description Updates a session. The overlap check excludes the session itself, so saving unchanged times never conflicts.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Param body body controllers.SessionRequest true "Session fields"
// @Success 200 {object} helpers.APIResponse{data=domain.Session}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [put]
func (c *SessionController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	session := domain.NewSession("", req.Name, req.Speaker, req.StartTime, req.EndTime, req.MaxAttendees, req.Price, time.Time{}, time.Time{})
	session.ID = id
	updated, err := c.Service.UpdateSession(r.Context(), session)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteSession godoc
// @Summary Soft-delete a session
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [delete]
func (c *SessionController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	if err := c.Service.DeleteSession(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
